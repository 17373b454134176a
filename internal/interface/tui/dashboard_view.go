package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/neilberkman/kapro/internal/core/controller"
	"github.com/neilberkman/kapro/internal/core/views"
)

func (m Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if next, cmd, ok := m.handleGlobalKeys(msg); ok {
		return next, cmd
	}

	snap := m.ctrl.Snapshot()
	switch {
	case key.Matches(msg, keys.NextView):
		m.ctrl.SetView(views.Next(snap.View))
		m.refreshDashboard(true)
		return m, nil

	case key.Matches(msg, keys.PrevView):
		m.ctrl.SetView(views.Prev(snap.View))
		m.refreshDashboard(true)
		return m, nil

	case key.Matches(msg, keys.JumpView):
		all := views.All()
		idx := int(msg.String()[0] - '1')
		if idx >= 0 && idx < len(all) {
			m.ctrl.SetView(all[idx].ID)
			m.refreshDashboard(true)
		}
		return m, nil

	case key.Matches(msg, keys.History), key.Matches(msg, keys.Back):
		m.refreshHistory()
		m.mode = historyView
		return m, nil

	case key.Matches(msg, keys.Edit):
		m.mode = inputView
		m.textarea.SetValue(snap.Transcript)
		m.textarea.Focus()
		return m, textarea.Blink

	case key.Matches(msg, keys.Copy):
		if snap.Active != nil {
			return m, copyOneMove(snap.Active.Data.TheOneMove)
		}
		return m, nil

	case key.Matches(msg, keys.Delete):
		if snap.Active != nil {
			active := *snap.Active
			m.confirmDelete = &active
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// refreshDashboard re-renders the active view into the viewport
func (m *Model) refreshDashboard(top bool) {
	snap := m.ctrl.Snapshot()
	if snap.Active == nil {
		m.viewport.SetContent("")
		return
	}
	width := m.viewport.Width - 2
	m.viewport.SetContent(views.Render(&snap.Active.Data, snap.View, width))
	if top {
		m.viewport.GotoTop()
	}
}

func (m Model) viewDashboard() string {
	snap := m.ctrl.Snapshot()
	if snap.Active == nil {
		return m.viewInput()
	}

	var b strings.Builder
	b.WriteString(renderHeader(snap, m.width))
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderFooter(snap))
	return b.String()
}

func renderHeader(snap controller.Snapshot, width int) string {
	title := titleStyle.Render(snap.Active.Title)
	meta := timestampStyle.Render(fmt.Sprintf("  %s", formatTimestamp(snap.Active.CreatedAt())))

	tabs := make([]string, 0, len(views.All()))
	for i, v := range views.All() {
		label := fmt.Sprintf("%d %s", i+1, v.Label)
		if v.ID == snap.View {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	tabBar := lipgloss.NewStyle().MaxWidth(width).Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))

	return title + meta + "\n" + tabBar + "\n" + strings.Repeat("─", max(width, 1)) + "\n"
}

func (m Model) renderFooter(snap controller.Snapshot) string {
	var status string
	switch {
	case m.pending || snap.State == controller.Processing:
		status = m.spinner.View() + " Architecting your system..."
	case snap.Error != "":
		status = errorStyle.Render("✗ " + snap.Error)
	case m.status != "" && m.statusErr:
		status = errorStyle.Render(m.status)
	case m.status != "":
		status = statusStyle.Render("✓ " + m.status)
	default:
		status = timestampStyle.Render(fmt.Sprintf("%3.f%%", m.viewport.ScrollPercent()*100))
	}
	return status + "\n" + m.help.ShortHelpView(keys.ShortHelp())
}
