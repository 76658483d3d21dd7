package update

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sandeepkv93/wonky/internal/reply"
	"github.com/sandeepkv93/wonky/internal/session"
	"github.com/sandeepkv93/wonky/internal/views"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

type StatusBar struct {
	Text    string
	IsError bool
}

// ExitMsg ends the program once the farewell had time to render.
type ExitMsg struct{}

// Model is the chat window. It forwards every submitted line to the
// session and shows the flushed reply as a bot bubble.
type Model struct {
	Transcript []views.Bubble
	Status     StatusBar
	LastError  error
	Quitting   bool

	ctx        context.Context
	session    *session.Session
	input      textinput.Model
	transcript viewport.Model
	helpModel  help.Model
	keys       keyMap
	width      int
	height     int
}

// NewModel builds the chat window around s and shows whatever reply s has
// queued, normally the welcome.
func NewModel(ctx context.Context, s *session.Session) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	input := textinput.New()
	input.Placeholder = "type a command, e.g. todo read book"
	input.Prompt = "> "
	input.CharLimit = 0
	input.Focus()

	m := Model{
		ctx:        ctx,
		session:    s,
		input:      input,
		transcript: viewport.New(defaultWidth, defaultHeight-views.ChromeHeight),
		helpModel:  help.New(),
		keys:       defaultKeys(),
		width:      defaultWidth,
		height:     defaultHeight,
	}
	m.appendReply(s.Flush())
	m.refreshTranscript()
	return m
}

func (m *Model) appendReply(r reply.Reply) {
	if r.Empty() {
		return
	}
	m.Transcript = append(m.Transcript, views.Bubble{Speaker: views.SpeakerBot, Text: r.Text, Markdown: r.Markdown})
}

func (m *Model) refreshTranscript() {
	m.transcript.SetContent(views.RenderTranscript(m.Transcript, m.transcript.Width))
	m.transcript.GotoBottom()
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.transcript.Width = width - 4
	bodyHeight := height - views.ChromeHeight
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	m.transcript.Height = bodyHeight
	m.input.Width = width - 4
	m.helpModel.Width = width
	m.refreshTranscript()
}
