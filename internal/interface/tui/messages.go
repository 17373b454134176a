package tui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/neilberkman/kapro/internal/core/controller"
	"github.com/neilberkman/kapro/internal/core/models"
)

// statusTTL is how long a status line stays visible
const statusTTL = 4 * time.Second

type architectDoneMsg struct {
	session models.Session
	err     error
}

type copiedMsg struct {
	success bool
	message string
}

type clearStatusMsg struct {
	seq int
}

// architect runs the submission off the UI goroutine
func architect(ctrl *controller.Controller, transcript string) tea.Cmd {
	return func() tea.Msg {
		sess, err := ctrl.Submit(context.Background(), transcript)
		return architectDoneMsg{session: sess, err: err}
	}
}

// copyOneMove puts The One Move on the clipboard
func copyOneMove(move models.OneMove) tea.Cmd {
	return func() tea.Msg {
		text := move.Action
		if move.Reason != "" {
			text += "\n\nWhy: " + move.Reason
		}
		if err := clipboard.WriteAll(text); err != nil {
			return copiedMsg{success: false, message: "Clipboard unavailable: " + move.Action}
		}
		return copiedMsg{success: true, message: "The One Move copied to clipboard!"}
	}
}

func clearStatusAfter(seq int) tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}
