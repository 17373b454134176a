package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/neilberkman/kapro/internal/core/models"
)

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		target := *m.confirmDelete
		m.confirmDelete = nil

		// The modal already asked; approve only the session it showed
		removed, err := m.ctrl.Remove(target.ID, func(s models.Session) bool {
			return s.ID == target.ID
		})
		if err != nil {
			return m.setStatus("Delete failed: "+err.Error(), true)
		}
		if !removed {
			return m, nil
		}

		m.refreshHistory()
		snap := m.ctrl.Snapshot()
		switch {
		case snap.Active == nil && len(snap.Sessions) == 0:
			m.mode = inputView
			m.textarea.Focus()
		case snap.Active == nil:
			m.mode = historyView
		case m.mode == dashboardView:
			m.refreshDashboard(true)
		}
		return m.setStatus(fmt.Sprintf("Deleted %q", target.Title), false)

	case "n", "N", "esc", "q":
		m.confirmDelete = nil
		return m, nil
	}
	return m, nil
}

func (m Model) viewConfirm() string {
	s := m.confirmDelete
	body := fmt.Sprintf("Delete this blueprint?\n\n%s\n%s\n\n%s",
		titleStyle.Render(s.Title),
		timestampStyle.Render(formatTimestamp(s.CreatedAt())),
		helpStyle.Render("y delete • n cancel"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modalStyle.Render(body))
}
