package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/neilberkman/kapro/internal/core/controller"
	"github.com/neilberkman/kapro/internal/core/models"
)

type viewMode int

const (
	inputView viewMode = iota
	dashboardView
	historyView
	helpView
)

// Header (title + tabs) and footer (status + help) line counts
const (
	headerLines = 3
	footerLines = 2
)

type Model struct {
	ctrl     *controller.Controller
	mode     viewMode
	prevMode viewMode
	width    int
	height   int

	textarea textarea.Model
	spinner  spinner.Model
	viewport viewport.Model
	list     list.Model
	help     help.Model

	// A submission has been handed to the controller and not yet returned
	pending bool

	// Session awaiting y/n before deletion
	confirmDelete *models.Session

	status    string
	statusErr bool
	statusSeq int
}

// New creates the TUI over ctrl. With a saved session the dashboard opens
// first, otherwise the transcript editor.
func New(ctrl *controller.Controller) Model {
	ta := textarea.New()
	ta.Placeholder = "Drop your transcript or brain-dump here..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.Prompt = "┃ "

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	m := Model{
		ctrl:     ctrl,
		textarea: ta,
		spinner:  sp,
		viewport: viewport.New(80, 20),
		help:     help.New(),
	}

	snap := ctrl.Snapshot()
	m.textarea.SetValue(snap.Transcript)
	m.list = createHistoryList(snap, 80, 20)
	if snap.Active != nil {
		m.mode = dashboardView
		m.refreshDashboard(true)
	} else {
		m.mode = inputView
		m.textarea.Focus()
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if !m.pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case architectDoneMsg:
		m.pending = false
		if msg.err != nil {
			// The controller keeps the user-facing message
			return m, nil
		}
		m.mode = dashboardView
		m.textarea.Blur()
		m.refreshHistory()
		m.refreshDashboard(true)
		return m, nil

	case copiedMsg:
		return m.setStatus(msg.message, !msg.success)

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.confirmDelete != nil {
			return m.updateConfirm(msg)
		}

		switch m.mode {
		case inputView:
			return m.updateInput(msg)
		case dashboardView:
			return m.updateDashboard(msg)
		case historyView:
			return m.updateHistory(msg)
		case helpView:
			return m.updateHelp(msg)
		}
	}

	if m.mode == inputView {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.confirmDelete != nil {
		return m.viewConfirm()
	}

	switch m.mode {
	case dashboardView:
		return m.viewDashboard()
	case historyView:
		return m.viewHistory()
	case helpView:
		return m.viewHelp()
	}
	return m.viewInput()
}

// handleGlobalKeys covers keys shared by every non-editing view
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit, true
	case key.Matches(msg, keys.Help):
		m.prevMode = m.mode
		m.mode = helpView
		return m, nil, true
	case key.Matches(msg, keys.New):
		m.startNewSession()
		return m, textarea.Blink, true
	}
	return m, nil, false
}

// startNewSession clears the controller and opens an empty editor
func (m *Model) startNewSession() {
	m.ctrl.Reset()
	m.textarea.Reset()
	m.textarea.Focus()
	m.mode = inputView
	m.refreshHistory()
}

// leaveEditor goes to the dashboard when a session is active, else history
func (m *Model) leaveEditor() {
	snap := m.ctrl.Snapshot()
	switch {
	case snap.Active != nil:
		m.mode = dashboardView
		m.refreshDashboard(false)
	case len(snap.Sessions) > 0:
		m.mode = historyView
	default:
		return
	}
	m.textarea.Blur()
}

func (m Model) setStatus(text string, isErr bool) (tea.Model, tea.Cmd) {
	m.statusSeq++
	m.status = text
	m.statusErr = isErr
	return m, clearStatusAfter(m.statusSeq)
}

func (m *Model) resize() {
	bodyHeight := m.height - headerLines - footerLines
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	m.textarea.SetWidth(m.width - 2)
	m.textarea.SetHeight(bodyHeight - 4)
	m.viewport.Width = m.width
	m.viewport.Height = bodyHeight
	m.list.SetSize(m.width, bodyHeight)
	m.help.Width = m.width
	m.refreshDashboard(false)
}
