package views

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRenderAppIncludesSections(t *testing.T) {
	out := RenderApp(AppData{
		Header:     "wonky | 2 task(s)",
		Body:       "transcript",
		Input:      "> todo",
		StatusLine: "error: disk full",
		Footer:     "enter send",
	})
	for _, want := range []string{"wonky | 2 task(s)", "transcript", "> todo", "error: disk full", "enter send"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestRenderBubbleAlignment(t *testing.T) {
	user := RenderBubble(Bubble{Speaker: SpeakerUser, Text: "list"}, 60)
	bot := RenderBubble(Bubble{Speaker: SpeakerBot, Text: "1. [T][ ] read book"}, 60)
	if !strings.Contains(bot, "1. [T][ ] read book") || !strings.Contains(user, "list") {
		t.Fatalf("bubble text missing:\n%s\n%s", user, bot)
	}
	if lipgloss.Width(user) != 60 || lipgloss.Width(bot) != 60 {
		t.Fatalf("expected bubbles placed across width, got %d and %d", lipgloss.Width(user), lipgloss.Width(bot))
	}
	firstUser := strings.Split(user, "\n")[0]
	if !strings.HasPrefix(firstUser, " ") {
		t.Fatalf("expected user bubble right aligned, got %q", firstUser)
	}
}

func TestRenderTranscriptOrder(t *testing.T) {
	out := RenderTranscript([]Bubble{
		{Speaker: SpeakerBot, Text: "hello"},
		{Speaker: SpeakerUser, Text: "bye"},
	}, 0)
	if strings.Index(out, "hello") > strings.Index(out, "bye") {
		t.Fatalf("unexpected order: %q", out)
	}
}

func TestRenderMarkdownEmpty(t *testing.T) {
	if RenderMarkdown("  ") != "" {
		t.Fatal("expected empty render for blank markdown")
	}
	if out := RenderMarkdown("# Commands"); !strings.Contains(out, "Commands") {
		t.Fatalf("unexpected markdown render: %q", out)
	}
}
