// Package controller holds the application state machine: the saved
// sessions, the active session and view, the transcript buffer and the
// in-flight request guard.
package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/neilberkman/kapro/internal/core/history"
	"github.com/neilberkman/kapro/internal/core/llm"
	"github.com/neilberkman/kapro/internal/core/logging"
	"github.com/neilberkman/kapro/internal/core/models"
	"github.com/neilberkman/kapro/internal/core/views"
	"go.uber.org/zap"
)

var (
	// ErrEmptyInput is returned by Submit for a blank transcript
	ErrEmptyInput = llm.ErrEmptyInput

	// ErrBusy is returned by Submit while another request is in flight
	ErrBusy = errors.New("a transcript is already being processed")
)

// MsgSaveFailed is shown when a new session could not be persisted
const MsgSaveFailed = "Could not save the new architecture."

// State is derived, in priority order: Processing, Error, Ready, Idle
type State int

const (
	Idle State = iota
	Processing
	Ready
	Error
)

func (s State) String() string {
	switch s {
	case Processing:
		return "processing"
	case Ready:
		return "ready"
	case Error:
		return "error"
	default:
		return "idle"
	}
}

// Architect produces a document from a transcript. *llm.Gateway implements it.
type Architect interface {
	Architect(ctx context.Context, transcript string) (*models.Document, error)
}

// ConfirmFunc asks the user whether to delete a session
type ConfirmFunc func(models.Session) bool

// Snapshot is a copy of the controller state for rendering
type Snapshot struct {
	State      State
	Sessions   []models.Session
	Active     *models.Session
	View       views.ID
	Error      string
	Transcript string
}

// Controller serializes every state change behind one mutex. The gateway
// call is made without holding it.
type Controller struct {
	mu         sync.Mutex
	gateway    Architect
	store      *history.Store
	logger     *zap.Logger
	sessions   []models.Session
	activeID   string
	view       views.ID
	transcript string
	errMsg     string
	processing bool
}

// Option configures a Controller
type Option func(*Controller)

// WithLogger sets the controller logger
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = logging.OrNop(l) }
}

// New loads the saved sessions and selects the most recent one
func New(gateway Architect, store *history.Store, opts ...Option) *Controller {
	c := &Controller{
		gateway: gateway,
		store:   store,
		logger:  zap.NewNop(),
		view:    views.Default,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.sessions = store.Load()
	if len(c.sessions) > 0 {
		c.activeID = c.sessions[0].ID
	}
	c.logger.Info("controller ready", zap.Int("sessions", len(c.sessions)))
	return c
}

// Submit architects transcript and, on success, stores the result as the
// newest session and makes it active. A blank transcript or a submission
// while another is in flight is rejected without any state change.
func (c *Controller) Submit(ctx context.Context, transcript string) (models.Session, error) {
	c.mu.Lock()
	if strings.TrimSpace(transcript) == "" {
		c.mu.Unlock()
		return models.Session{}, ErrEmptyInput
	}
	if c.processing {
		c.mu.Unlock()
		return models.Session{}, ErrBusy
	}
	c.processing = true
	c.errMsg = ""
	c.transcript = transcript
	c.mu.Unlock()

	doc, err := c.gateway.Architect(ctx, transcript)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.processing = false

	if err != nil {
		c.errMsg = llm.UserMessage(err)
		c.logger.Warn("architect failed", zap.Error(err))
		return models.Session{}, err
	}

	sess := c.store.Create(doc)
	next := make([]models.Session, 0, len(c.sessions)+1)
	next = append(next, sess)
	next = append(next, c.sessions...)
	if err := c.store.Save(next); err != nil {
		c.errMsg = MsgSaveFailed
		c.logger.Error("failed to save session", zap.String("id", sess.ID), zap.Error(err))
		return models.Session{}, fmt.Errorf("save session: %w", err)
	}

	c.sessions = next
	c.activeID = sess.ID
	c.view = views.Default
	c.logger.Info("session created", zap.String("id", sess.ID), zap.String("title", sess.Title))
	return sess, nil
}

// Select makes the session with id active. Unknown ids are ignored.
func (c *Controller) Select(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.find(id) < 0 {
		return false
	}
	c.activeID = id
	c.view = views.Default
	c.errMsg = ""
	return true
}

// Remove deletes the session with id after confirm approves it. When the
// active session is removed the newest remaining one becomes active.
func (c *Controller) Remove(id string, confirm ConfirmFunc) (bool, error) {
	c.mu.Lock()
	i := c.find(id)
	if i < 0 {
		c.mu.Unlock()
		return false, nil
	}
	target := c.sessions[i]
	c.mu.Unlock()

	// The confirmer may block on user input
	if confirm != nil && !confirm(target) {
		return false, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i = c.find(id)
	if i < 0 {
		return false, nil
	}
	next := make([]models.Session, 0, len(c.sessions)-1)
	next = append(next, c.sessions[:i]...)
	next = append(next, c.sessions[i+1:]...)
	if err := c.store.Save(next); err != nil {
		c.logger.Error("failed to save after delete", zap.String("id", id), zap.Error(err))
		return false, fmt.Errorf("delete session: %w", err)
	}

	c.sessions = next
	if c.activeID == id {
		c.activeID = ""
		if len(next) > 0 {
			c.activeID = next[0].ID
		}
	}
	c.logger.Info("session deleted", zap.String("id", id))
	return true, nil
}

// Reset starts a new session: no active session, empty transcript, no error.
// An in-flight request is not cancelled and still commits its result.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.activeID = ""
	c.transcript = ""
	c.errMsg = ""
	c.view = views.Default
}

// SetView changes the active view. Unknown ids are ignored.
func (c *Controller) SetView(id views.ID) bool {
	if !views.Valid(id) {
		return false
	}
	c.mu.Lock()
	c.view = id
	c.mu.Unlock()
	return true
}

// SetTranscript replaces the transcript buffer
func (c *Controller) SetTranscript(s string) {
	c.mu.Lock()
	c.transcript = s
	c.mu.Unlock()
}

// State returns the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state()
}

// Sessions returns a copy of the saved sessions, newest first
func (c *Controller) Sessions() []models.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Session, len(c.sessions))
	copy(out, c.sessions)
	return out
}

// Snapshot copies the full state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		State:      c.state(),
		Sessions:   make([]models.Session, len(c.sessions)),
		View:       c.view,
		Error:      c.errMsg,
		Transcript: c.transcript,
	}
	copy(snap.Sessions, c.sessions)
	if i := c.find(c.activeID); i >= 0 {
		active := snap.Sessions[i]
		snap.Active = &active
	}
	return snap
}

func (c *Controller) state() State {
	switch {
	case c.processing:
		return Processing
	case c.errMsg != "":
		return Error
	case c.activeID != "":
		return Ready
	default:
		return Idle
	}
}

func (c *Controller) find(id string) int {
	if id == "" {
		return -1
	}
	for i, s := range c.sessions {
		if s.ID == id {
			return i
		}
	}
	return -1
}
