package storage

import "time"

// Task is one stored row. Kind holds the one-letter tag.
type Task struct {
	ID          string    `yaml:"id"`
	Position    int       `yaml:"position"`
	Kind        string    `yaml:"kind"`
	Command     string    `yaml:"command"`
	Description string    `yaml:"description"`
	Done        bool      `yaml:"done"`
	By          string    `yaml:"by,omitempty"`
	From        string    `yaml:"from,omitempty"`
	To          string    `yaml:"to,omitempty"`
	CreatedAt   time.Time `yaml:"created_at"`
}
