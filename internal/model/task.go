package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrEmptyDescription = errors.New("model: task description is required")
	ErrInvalidKind      = errors.New("model: invalid task kind")
)

type Kind string

const (
	KindTodo     Kind = "todo"
	KindDeadline Kind = "deadline"
	KindEvent    Kind = "event"
)

func (k Kind) IsValid() bool {
	switch k {
	case KindTodo, KindDeadline, KindEvent:
		return true
	default:
		return false
	}
}

// Letter is the one-letter tag shown in status lines.
func (k Kind) Letter() string {
	switch k {
	case KindTodo:
		return "T"
	case KindDeadline:
		return "D"
	case KindEvent:
		return "E"
	default:
		return "?"
	}
}

// KindFromLetter is the inverse of Letter.
func KindFromLetter(letter string) (Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(letter)) {
	case "T":
		return KindTodo, nil
	case "D":
		return KindDeadline, nil
	case "E":
		return KindEvent, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, letter)
	}
}

type Task struct {
	ID          string
	Kind        Kind
	Command     string
	Description string
	Done        bool
	By          string
	From        string
	To          string
	CreatedAt   time.Time
}

// NewTask trims the description and rejects empty ones. The creating
// command literal defaults to the kind name.
func NewTask(kind Kind, description string) (Task, error) {
	if !kind.IsValid() {
		return Task{}, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	desc := strings.TrimSpace(description)
	if desc == "" {
		return Task{}, ErrEmptyDescription
	}
	return Task{Kind: kind, Command: string(kind), Description: desc}, nil
}

// Literal returns the name of the command that created the task.
func (t Task) Literal() string {
	if t.Command != "" {
		return t.Command
	}
	return string(t.Kind)
}

func (t Task) Validate() error {
	if !t.Kind.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidKind, t.Kind)
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}
	if t.Kind == KindDeadline && strings.TrimSpace(t.By) == "" {
		return errors.New("model: deadline requires a due time")
	}
	if t.Kind == KindEvent && (strings.TrimSpace(t.From) == "" || strings.TrimSpace(t.To) == "") {
		return errors.New("model: event requires a start and an end")
	}
	return nil
}

// Format renders the status line for a 1-based index.
func (t Task) Format(index int) string {
	mark := " "
	if t.Done {
		mark = "X"
	}
	line := fmt.Sprintf("%d. [%s][%s] %s", index, t.Kind.Letter(), mark, t.Description)
	switch t.Kind {
	case KindDeadline:
		line += fmt.Sprintf(" (by: %s)", t.By)
	case KindEvent:
		line += fmt.Sprintf(" (from: %s to: %s)", t.From, t.To)
	}
	return line
}

// DoneLiteral is the human wording of a done flag.
func DoneLiteral(done bool) string {
	if done {
		return "done"
	}
	return "not done"
}
