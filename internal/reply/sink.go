// Package reply accumulates the text answered to one input line.
package reply

import (
	"fmt"
	"strings"
)

// Reply is one flushed turn.
type Reply struct {
	Text     string
	Markdown bool
}

func (r Reply) Empty() bool {
	return strings.TrimSpace(r.Text) == ""
}

// Sink collects reply lines until Flush. The zero value is ready to use.
type Sink struct {
	lines    []string
	markdown bool
}

func NewSink() *Sink {
	return &Sink{}
}

// Say appends one formatted line.
func (s *Sink) Say(format string, args ...any) {
	if len(args) == 0 {
		s.lines = append(s.lines, format)
		return
	}
	s.lines = append(s.lines, fmt.Sprintf(format, args...))
}

// SayMarkdown appends text that front-ends may render as markdown.
func (s *Sink) SayMarkdown(md string) {
	s.lines = append(s.lines, md)
	s.markdown = true
}

// Pending reports whether anything was said since the last flush.
func (s *Sink) Pending() bool {
	return len(s.lines) > 0
}

// Flush returns the accumulated reply and clears the sink.
func (s *Sink) Flush() Reply {
	out := Reply{Text: strings.Join(s.lines, "\n"), Markdown: s.markdown}
	s.lines = nil
	s.markdown = false
	return out
}
