package reply

import (
	"github.com/sandeepkv93/wonky/internal/model"
)

const botName = "Wonky"

func (s *Sink) Welcome() {
	s.Say("Hello! I'm %s, your slightly wonky task buddy.", botName)
	s.Say("What can I do for you? Type \"help\" to see what I understand.")
}

func (s *Sink) Farewell() {
	s.Say("Bye. Hope to see you again soon!")
}

func (s *Sink) TaskAdded(t model.Task, position, total int) {
	s.Say("Got it. I've added this task:")
	s.Say("  %s", t.Format(position))
	s.Say("Now you have %d task(s) in the list.", total)
}

func (s *Sink) TaskMarked(t model.Task, position int) {
	if t.Done {
		s.Say("Nice! I've marked this task as done:")
	} else {
		s.Say("OK, I've marked this task as not done yet:")
	}
	s.Say("%s", t.Format(position))
}

func (s *Sink) TaskDeleted(t model.Task, position, remaining int) {
	s.Say("Noted. I've removed this task:")
	s.Say("  %s", t.Format(position))
	s.Say("Now you have %d task(s) in the list.", remaining)
}

func (s *Sink) TaskList(tasks []model.Task) {
	if len(tasks) == 0 {
		s.Say("Your list is empty.")
		return
	}
	s.Say("Here are the tasks in your list:")
	for i, t := range tasks {
		s.Say("%s", t.Format(i+1))
	}
}

func (s *Sink) Matches(keyword string, matches []model.Match) {
	if len(matches) == 0 {
		s.Say("No tasks match %q.", keyword)
		return
	}
	s.Say("Here are the matching tasks in your list:")
	for _, m := range matches {
		s.Say("%s", m.Task.Format(m.Position))
	}
}

func (s *Sink) UnknownCommand(token string) {
	s.Say("Sorry, I don't know what %q means.", token)
}

// Suggest appends a typo hint; an empty suggestion says nothing.
func (s *Sink) Suggest(suggestion string) {
	if suggestion == "" {
		return
	}
	s.Say("Did you mean %q?", suggestion)
}
