package update

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/wonky/internal/session"
	"github.com/sandeepkv93/wonky/internal/storage"
	"github.com/sandeepkv93/wonky/internal/views"
)

func newTestModel(t *testing.T, opts session.Options) (Model, *session.Session) {
	t.Helper()
	s := session.New(opts)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return NewModel(context.Background(), s), s
}

func typeLine(t *testing.T, m Model, line string) (Model, tea.Cmd) {
	t.Helper()
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(line)})
	next := updated.(Model)
	updated, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model), cmd
}

func lastBubble(m Model) views.Bubble {
	return m.Transcript[len(m.Transcript)-1]
}

func TestNewModelShowsWelcome(t *testing.T) {
	m, _ := newTestModel(t, session.Options{})
	if len(m.Transcript) != 1 || m.Transcript[0].Speaker != views.SpeakerBot {
		t.Fatalf("expected one welcome bubble, got %+v", m.Transcript)
	}
	if !strings.Contains(m.Transcript[0].Text, "Hello") {
		t.Fatalf("unexpected welcome: %q", m.Transcript[0].Text)
	}
}

func TestSubmitAddsUserAndBotBubbles(t *testing.T) {
	m, s := newTestModel(t, session.Options{})
	m, cmd := typeLine(t, m, "todo read book")
	if cmd != nil {
		t.Fatal("expected no command for a normal turn")
	}
	m, _ = typeLine(t, m, "mark 1")
	if len(m.Transcript) != 5 {
		t.Fatalf("expected 5 bubbles, got %d", len(m.Transcript))
	}
	user := m.Transcript[3]
	if user.Speaker != views.SpeakerUser || user.Text != "mark 1" {
		t.Fatalf("unexpected user bubble: %+v", user)
	}
	if bot := lastBubble(m); !strings.Contains(bot.Text, "1. [T][X] read book") {
		t.Fatalf("unexpected bot bubble: %+v", bot)
	}
	if !s.Tasks()[0].Done {
		t.Fatal("expected task done")
	}
	if m.input.Value() != "" {
		t.Fatalf("expected input cleared, got %q", m.input.Value())
	}
}

func TestBlankSubmitMatchesConsole(t *testing.T) {
	m, _ := newTestModel(t, session.Options{})
	m, cmd := typeLine(t, m, "   ")
	if cmd != nil || len(m.Transcript) != 3 {
		t.Fatalf("expected user and bot bubbles, got %+v", m.Transcript)
	}
	if bot := lastBubble(m); !strings.Contains(bot.Text, "Sorry, I don't know what") {
		t.Fatalf("unexpected reply to blank line: %+v", bot)
	}
}

func TestLongInputIsNotTruncated(t *testing.T) {
	m, s := newTestModel(t, session.Options{})
	desc := strings.Repeat("b", 1000)
	m, _ = typeLine(t, m, "todo "+desc)
	tasks := s.Tasks()
	if len(tasks) != 1 || tasks[0].Description != desc {
		t.Fatalf("long input truncated: got %d task(s)", len(tasks))
	}
	if !strings.Contains(lastBubble(m).Text, "Got it.") {
		t.Fatalf("unexpected reply: %+v", lastBubble(m))
	}
}

func TestHelpBubbleIsMarkdown(t *testing.T) {
	m, _ := newTestModel(t, session.Options{})
	m, _ = typeLine(t, m, "help")
	if bot := lastBubble(m); !bot.Markdown {
		t.Fatalf("expected markdown help bubble, got %+v", bot)
	}
}

func TestByeSchedulesExitAndIgnoresInput(t *testing.T) {
	m, s := newTestModel(t, session.Options{})
	m, cmd := typeLine(t, m, "bye")
	if cmd == nil {
		t.Fatal("expected delayed exit command")
	}
	if s.Active() || !strings.Contains(lastBubble(m).Text, "Bye") {
		t.Fatalf("bye not processed: %+v", lastBubble(m))
	}
	msg := cmd()
	if _, ok := msg.(ExitMsg); !ok {
		t.Fatalf("expected ExitMsg, got %T", msg)
	}

	count := len(m.Transcript)
	m, cmd = typeLine(t, m, "todo too late")
	if cmd != nil || len(m.Transcript) != count || len(s.Tasks()) != 0 {
		t.Fatalf("input after bye was processed: %+v", m.Transcript)
	}

	updated, cmd := m.Update(msg)
	if !updated.(Model).Quitting || cmd == nil {
		t.Fatal("expected quit on ExitMsg")
	}
}

func TestCtrlCQuits(t *testing.T) {
	m, _ := newTestModel(t, session.Options{})
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !updated.(Model).Quitting || cmd == nil {
		t.Fatal("expected quit")
	}
}

type readOnlyRepo struct{}

func (readOnlyRepo) ListTasks(context.Context) ([]storage.Task, error) { return nil, nil }
func (readOnlyRepo) ReplaceTasks(context.Context, []storage.Task) error {
	return errors.New("read-only")
}
func (readOnlyRepo) Close() error { return nil }

func TestStorageErrorQuitsWithLastError(t *testing.T) {
	m, _ := newTestModel(t, session.Options{Repository: readOnlyRepo{}})
	m, cmd := typeLine(t, m, "todo read book")
	if cmd == nil || !m.Quitting {
		t.Fatal("expected quit after storage error")
	}
	if !errors.Is(m.LastError, session.ErrStorage) || !m.Status.IsError {
		t.Fatalf("unexpected error state: %v %+v", m.LastError, m.Status)
	}
}

func TestViewAndResize(t *testing.T) {
	m, _ := newTestModel(t, session.Options{})
	m, _ = typeLine(t, m, "todo read book")
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = updated.(Model)
	if m.transcript.Width != 96 || m.transcript.Height != 30-views.ChromeHeight {
		t.Fatalf("unexpected viewport size: %dx%d", m.transcript.Width, m.transcript.Height)
	}
	out := m.View()
	for _, want := range []string{"wonky | 1 task(s) | active", "read book", "enter"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in view:\n%s", want, out)
		}
	}
}
