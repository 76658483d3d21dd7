package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/wonky/internal/views"
)

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(typed.Width, typed.Height)
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(typed, m.keys.Quit):
			m.Quitting = true
			return m, tea.Quit
		case key.Matches(typed, m.keys.Send):
			return m.submit()
		case key.Matches(typed, m.keys.PageUp), key.Matches(typed, m.keys.PageDown):
			var cmd tea.Cmd
			m.transcript, cmd = m.transcript.Update(typed)
			return m, cmd
		}
		if !m.session.Active() {
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(typed)
		return m, cmd
	case ExitMsg:
		m.Quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit forwards the typed line to the session. A storage failure ends
// the program with LastError set; after a farewell the window lingers for
// the session's exit delay.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if !m.session.Active() {
		return m, nil
	}
	// Blank lines go through like in the console and get the unknown
	// command reply.
	line := m.input.Value()
	m.input.SetValue("")

	err := m.session.ProcessLine(m.ctx, line)
	m.Transcript = append(m.Transcript, views.Bubble{Speaker: views.SpeakerUser, Text: line})
	m.appendReply(m.session.Flush())
	m.refreshTranscript()
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Quitting = true
		return m, tea.Quit
	}

	if !m.session.Active() {
		m.input.Blur()
		m.Status = StatusBar{Text: "session ended"}
		return m, tea.Tick(m.session.ExitDelay(), func(time.Time) tea.Msg { return ExitMsg{} })
	}
	m.Status = StatusBar{}
	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("wonky | %d task(s) | %s", len(m.session.Tasks()), strings.ToLower(string(m.session.State()))),
		Body:       m.transcript.View(),
		Input:      m.input.View(),
		StatusLine: status,
		Footer:     m.helpModel.View(m.keys),
	})
}
