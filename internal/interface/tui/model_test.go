package tui

import (
	"context"
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/neilberkman/kapro/internal/core/controller"
	"github.com/neilberkman/kapro/internal/core/document"
	"github.com/neilberkman/kapro/internal/core/history"
	"github.com/neilberkman/kapro/internal/core/models"
	"github.com/neilberkman/kapro/internal/core/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSlot map[string]string

func (m memSlot) Get(key string) (string, bool, error) { v, ok := m[key]; return v, ok, nil }
func (m memSlot) Put(key, value string) error          { m[key] = value; return nil }
func (m memSlot) Delete(key string) error              { delete(m, key); return nil }

type stubArchitect struct {
	doc   *models.Document
	calls int
}

func (s *stubArchitect) Architect(ctx context.Context, transcript string) (*models.Document, error) {
	s.calls++
	return s.doc, nil
}

func newTestModel(t *testing.T) (Model, *stubArchitect) {
	t.Helper()
	raw, err := os.ReadFile("../../core/document/testdata/sample.json")
	require.NoError(t, err)
	doc, err := document.Parse(string(raw))
	require.NoError(t, err)

	gw := &stubArchitect{doc: doc}
	ctrl := controller.New(gw, history.New(memSlot{}))
	m := New(ctrl)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model), gw
}

func press(t *testing.T, m Model, k tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(k)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func submitted(t *testing.T, m Model) Model {
	t.Helper()
	m.textarea.SetValue("Ship v2 by Friday.")
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	require.True(t, m.pending)

	msg := architect(m.ctrl, "Ship v2 by Friday.")()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestNew_StartsInEditor(t *testing.T) {
	m, _ := newTestModel(t)
	assert.Equal(t, inputView, m.mode)
	assert.Contains(t, m.View(), "Knowledge Architect")
}

func TestSubmit_BlankIgnored(t *testing.T) {
	m, gw := newTestModel(t)
	m.textarea.SetValue("   ")
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, cmd)
	assert.False(t, m.pending)
	assert.Equal(t, 0, gw.calls)
}

func TestSubmit_OpensDashboard(t *testing.T) {
	m, gw := newTestModel(t)
	m = submitted(t, m)

	assert.False(t, m.pending)
	assert.Equal(t, dashboardView, m.mode)
	assert.Equal(t, 1, gw.calls)
	assert.Contains(t, m.View(), "v2 Launch")
	assert.Contains(t, m.View(), "Finish v2")
}

func TestDashboard_ViewNavigation(t *testing.T) {
	m, _ := newTestModel(t)
	m = submitted(t, m)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, views.MindMap, m.ctrl.Snapshot().View)

	m, _ = press(t, m, runes("3"))
	assert.Equal(t, views.Roadmap, m.ctrl.Snapshot().View)
	assert.Contains(t, m.View(), "Ship v2")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, views.MindMap, m.ctrl.Snapshot().View)
}

func TestDelete_ConfirmFlow(t *testing.T) {
	m, _ := newTestModel(t)
	m = submitted(t, m)

	m, _ = press(t, m, runes("d"))
	require.NotNil(t, m.confirmDelete)
	assert.Contains(t, m.View(), "Delete this blueprint?")

	m, _ = press(t, m, runes("n"))
	assert.Nil(t, m.confirmDelete)
	assert.Len(t, m.ctrl.Sessions(), 1)

	m, _ = press(t, m, runes("d"))
	m, _ = press(t, m, runes("y"))
	assert.Nil(t, m.confirmDelete)
	assert.Empty(t, m.ctrl.Sessions())
	assert.Equal(t, inputView, m.mode)
}

func TestNewSession_Resets(t *testing.T) {
	m, _ := newTestModel(t)
	m = submitted(t, m)

	m, _ = press(t, m, runes("n"))
	assert.Equal(t, inputView, m.mode)
	assert.Empty(t, m.textarea.Value())
	assert.Equal(t, controller.Idle, m.ctrl.State())
	assert.Len(t, m.ctrl.Sessions(), 1)
}

func TestHistory_Select(t *testing.T) {
	m, _ := newTestModel(t)
	m = submitted(t, m)
	first := m.ctrl.Snapshot().Active.ID
	m, _ = press(t, m, runes("n"))
	m = submitted(t, m)

	m, _ = press(t, m, runes("h"))
	require.Equal(t, historyView, m.mode)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, dashboardView, m.mode)
	assert.Equal(t, first, m.ctrl.Snapshot().Active.ID)
}

func TestHelp_ReturnsToPreviousMode(t *testing.T) {
	m, _ := newTestModel(t)
	m = submitted(t, m)

	m, _ = press(t, m, runes("?"))
	assert.Equal(t, helpView, m.mode)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, dashboardView, m.mode)
}
