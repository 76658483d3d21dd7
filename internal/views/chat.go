package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Speaker string

const (
	SpeakerUser Speaker = "you"
	SpeakerBot  Speaker = "wonky"
)

// Bubble is one chat message.
type Bubble struct {
	Speaker  Speaker
	Text     string
	Markdown bool
}

var (
	userBubbleStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(0, 1)
	botBubbleStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("10")).
			Padding(0, 1)
	speakerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RenderBubble draws one message. User messages hug the right edge of
// width, bot messages the left; markdown bot text goes through glamour.
func RenderBubble(b Bubble, width int) string {
	text := b.Text
	if b.Markdown {
		text = RenderMarkdown(text)
	}
	maxWidth := width * 3 / 4
	if maxWidth < 20 {
		maxWidth = 20
	}
	style := botBubbleStyle
	align := lipgloss.Left
	if b.Speaker == SpeakerUser {
		style = userBubbleStyle
		align = lipgloss.Right
	}
	if lipgloss.Width(text) > maxWidth {
		style = style.Width(maxWidth)
	}
	block := lipgloss.JoinVertical(align, speakerStyle.Render(string(b.Speaker)), style.Render(text))
	if width <= 0 {
		return block
	}
	return lipgloss.PlaceHorizontal(width, align, block)
}

// RenderTranscript stacks every bubble in order.
func RenderTranscript(bubbles []Bubble, width int) string {
	parts := make([]string, 0, len(bubbles))
	for _, b := range bubbles {
		parts = append(parts, RenderBubble(b, width))
	}
	return strings.Join(parts, "\n")
}
