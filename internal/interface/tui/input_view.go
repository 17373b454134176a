package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Submit):
		transcript := m.textarea.Value()
		// Submit is disabled while blank or already processing
		if m.pending || strings.TrimSpace(transcript) == "" {
			return m, nil
		}
		m.pending = true
		m.ctrl.SetTranscript(transcript)
		return m, tea.Batch(architect(m.ctrl, transcript), m.spinner.Tick)

	case key.Matches(msg, keys.Back):
		if !m.pending {
			m.leaveEditor()
		}
		return m, nil
	}

	if m.pending {
		return m, nil
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	m.ctrl.SetTranscript(m.textarea.Value())
	return m, cmd
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Knowledge Architect"))
	b.WriteString("\n")
	b.WriteString(timestampStyle.Render("Transform raw noise into high-fidelity systems and executable roadmaps."))
	b.WriteString("\n\n")

	snap := m.ctrl.Snapshot()
	if snap.Error != "" && !m.pending {
		b.WriteString(errorStyle.Render("✗ " + snap.Error))
		b.WriteString("\n\n")
	}

	b.WriteString(m.textarea.View())
	b.WriteString("\n")

	var footer string
	switch {
	case m.pending:
		footer = m.spinner.View() + " Architecting your system..."
	case strings.TrimSpace(m.textarea.Value()) == "":
		footer = helpStyle.Render("paste a transcript to begin • esc back • ctrl+c quit")
	default:
		footer = helpStyle.Render("ctrl+s architect • esc back • ctrl+c quit")
	}
	b.WriteString(footer)
	return b.String()
}
