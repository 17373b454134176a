package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?":
		m.mode = m.prevMode
		return m, nil
	}

	return m, nil
}

func (m Model) viewHelp() string {
	help := `
Knowledge Architect - Help
══════════════════════════

TRANSCRIPT EDITOR
─────────────────
  Type/paste   Enter the transcript
  ctrl+s       Architect (disabled while blank or processing)
  esc          Back to dashboard or history
  ctrl+c       Quit

DASHBOARD
─────────
  tab/l, →     Next view
  shift+tab, ← Previous view
  1-8          Jump to view (Executive ... Open Loops)
  j/k, ↑/↓     Scroll
  c            Copy The One Move to clipboard
  e            Edit transcript
  n            New session
  d            Delete this blueprint
  h, esc       History
  q            Quit

HISTORY
───────
  ↑/↓, j/k     Navigate saved blueprints
  Enter        Open blueprint
  d            Delete (asks y/n)
  n            New session
  esc          Back

Press esc or ? to return
`

	return helpStyle.Render(help)
}
