package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// IndexError reports a 0-based index outside the store.
type IndexError struct {
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("model: index %d out of range [0,%d)", e.Index, e.Size)
}

// Position is the 1-based index shown to the user.
func (e *IndexError) Position() int {
	return e.Index + 1
}

// Match is a task found by Find together with its 1-based position.
type Match struct {
	Position int
	Task     Task
}

// Store is an ordered task list. It is not safe for concurrent use; a
// session owns exactly one.
type Store struct {
	tasks []Task
	now   func() time.Time
	newID func() string
}

func NewStore() *Store {
	return &Store{
		now:   time.Now,
		newID: func() string { return ulid.Make().String() },
	}
}

// Reset drops every task.
func (s *Store) Reset() {
	s.tasks = nil
}

func (s *Store) Len() int {
	return len(s.tasks)
}

// Add appends a task, filling in ID and creation time when missing, and
// returns its 1-based position.
func (s *Store) Add(t Task) (int, Task, error) {
	if err := t.Validate(); err != nil {
		return 0, Task{}, err
	}
	t.Description = strings.TrimSpace(t.Description)
	if t.ID == "" {
		t.ID = s.newID()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = s.now().UTC()
	}
	s.tasks = append(s.tasks, t)
	return len(s.tasks), t, nil
}

func (s *Store) Get(i int) (Task, error) {
	if err := s.check(i); err != nil {
		return Task{}, err
	}
	return s.tasks[i], nil
}

// SetDone sets the done flag of task i. changed is false when the task
// already had the requested state.
func (s *Store) SetDone(i int, done bool) (t Task, changed bool, err error) {
	if err := s.check(i); err != nil {
		return Task{}, false, err
	}
	if s.tasks[i].Done == done {
		return s.tasks[i], false, nil
	}
	s.tasks[i].Done = done
	return s.tasks[i], true, nil
}

func (s *Store) Delete(i int) (Task, error) {
	if err := s.check(i); err != nil {
		return Task{}, err
	}
	removed := s.tasks[i]
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return removed, nil
}

// Restore puts back the identity of a task rebuilt from storage. Empty
// values keep the current ones.
func (s *Store) Restore(i int, id string, createdAt time.Time) error {
	if err := s.check(i); err != nil {
		return err
	}
	if id != "" {
		s.tasks[i].ID = id
	}
	if !createdAt.IsZero() {
		s.tasks[i].CreatedAt = createdAt.UTC()
	}
	return nil
}

// All returns a copy of the tasks in order.
func (s *Store) All() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Find returns tasks whose description contains keyword, case-insensitive.
func (s *Store) Find(keyword string) []Match {
	needle := strings.ToLower(strings.TrimSpace(keyword))
	out := make([]Match, 0)
	if needle == "" {
		return out
	}
	for i, t := range s.tasks {
		if strings.Contains(strings.ToLower(t.Description), needle) {
			out = append(out, Match{Position: i + 1, Task: t})
		}
	}
	return out
}

func (s *Store) check(i int) error {
	if i < 0 || i >= len(s.tasks) {
		return &IndexError{Index: i, Size: len(s.tasks)}
	}
	return nil
}
