package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/neilberkman/kapro/internal/core/controller"
	"github.com/neilberkman/kapro/internal/core/models"
)

type historyItem struct {
	session models.Session
	active  bool
}

func (i historyItem) FilterValue() string {
	return i.session.Title
}

func (i historyItem) Title() string {
	return i.session.Title
}

func (i historyItem) Description() string {
	doc := i.session.Data
	tasks := 0
	for _, col := range doc.Roadmap.Columns {
		tasks += len(col.Tasks)
	}
	return fmt.Sprintf("%s | %d tasks | %d projects",
		formatTimestamp(i.session.CreatedAt()), tasks, len(doc.ProjectModules))
}

// historyDelegate highlights the session currently on the dashboard
type historyDelegate struct {
	list.DefaultDelegate
}

func (d historyDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	h, ok := item.(historyItem)
	if !ok {
		d.DefaultDelegate.Render(w, m, index, item)
		return
	}

	title := h.Title()
	desc := h.Description()

	switch {
	case index == m.Index():
		title = selectedItemStyle.Render("▸ " + title)
		desc = selectedItemStyle.Faint(true).Render("  " + desc)
	case h.active:
		title = activeItemStyle.Render(title)
		desc = itemStyle.Render(desc)
	default:
		title = itemStyle.Render(title)
		desc = itemStyle.Render(desc)
	}

	fmt.Fprintf(w, "%s\n%s", title, desc)
}

func historyItems(snap controller.Snapshot) []list.Item {
	items := make([]list.Item, len(snap.Sessions))
	for i, s := range snap.Sessions {
		items[i] = historyItem{
			session: s,
			active:  snap.Active != nil && snap.Active.ID == s.ID,
		}
	}
	return items
}

func createHistoryList(snap controller.Snapshot, width, height int) list.Model {
	delegate := historyDelegate{DefaultDelegate: list.NewDefaultDelegate()}

	l := list.New(historyItems(snap), delegate, width, height)
	l.Title = "History"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle
	return l
}

// refreshHistory reloads the list from the controller, keeping the cursor
func (m *Model) refreshHistory() {
	idx := m.list.Index()
	m.list.SetItems(historyItems(m.ctrl.Snapshot()))
	if n := len(m.list.Items()); idx >= n {
		idx = n - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}
}

func (m Model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if next, cmd, ok := m.handleGlobalKeys(msg); ok {
		return next, cmd
	}

	switch {
	case key.Matches(msg, keys.Select):
		if selected, ok := m.list.SelectedItem().(historyItem); ok {
			if m.ctrl.Select(selected.session.ID) {
				m.mode = dashboardView
				m.refreshHistory()
				m.refreshDashboard(true)
			}
		}
		return m, nil

	case key.Matches(msg, keys.Delete):
		if selected, ok := m.list.SelectedItem().(historyItem); ok {
			s := selected.session
			m.confirmDelete = &s
		}
		return m, nil

	case key.Matches(msg, keys.History), key.Matches(msg, keys.Back):
		if m.ctrl.Snapshot().Active != nil {
			m.mode = dashboardView
		} else {
			m.mode = inputView
			m.textarea.Focus()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) viewHistory() string {
	if len(m.list.Items()) == 0 {
		return "No saved architectures yet. Press 'n' to start one.\n\n" +
			m.help.ShortHelpView(keys.ShortHelp())
	}
	return m.list.View() + "\n" +
		helpStyle.Render("↑/k up • ↓/j down • enter open • d delete • n new • esc back • q quit")
}

// formatTimestamp renders "3 hours ago (Mar 1, 14:05)"
func formatTimestamp(t time.Time) string {
	return fmt.Sprintf("%s (%s)", humanize.Time(t), t.Format("Jan 2, 15:04"))
}
