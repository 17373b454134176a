// Package history persists the list of architected sessions in a single
// key/value slot. The whole collection is rewritten on every save.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neilberkman/kapro/internal/core/config"
	"github.com/neilberkman/kapro/internal/core/document"
	"github.com/neilberkman/kapro/internal/core/logging"
	"github.com/neilberkman/kapro/internal/core/models"
	"go.uber.org/zap"
)

// Slot is durable string storage addressed by key. *db.DB implements it.
type Slot interface {
	Get(key string) (string, bool, error)
	Put(key, value string) error
	Delete(key string) error
}

// PersistenceCorruptionError describes a stored collection that could not be
// used. Load discards the collection when it sees one.
type PersistenceCorruptionError struct {
	Key    string
	Reason string
	Err    error
}

func (e *PersistenceCorruptionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("history %s corrupt: %s: %v", e.Key, e.Reason, e.Err)
	}
	return fmt.Sprintf("history %s corrupt: %s", e.Key, e.Reason)
}

func (e *PersistenceCorruptionError) Unwrap() error { return e.Err }

// Store loads and saves sessions
type Store struct {
	slot   Slot
	key    string
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// Option configures a Store
type Option func(*Store)

// WithKey changes the slot key (default config.DefaultHistoryKey)
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the store logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.logger = logging.OrNop(l) }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the uuid generator
func WithIDGenerator(f func() string) Option {
	return func(s *Store) { s.newID = f }
}

// New creates a store over slot
func New(slot Slot, opts ...Option) *Store {
	s := &Store{
		slot:   slot,
		key:    config.DefaultHistoryKey,
		logger: zap.NewNop(),
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the slot key
func (s *Store) Key() string { return s.key }

// Load returns the saved sessions, newest first as stored. A missing slot
// yields an empty list. A corrupt slot is logged, deleted and treated as
// empty; Load never fails.
func (s *Store) Load() []models.Session {
	raw, ok, err := s.slot.Get(s.key)
	if err != nil {
		s.logger.Warn("history read failed", zap.String("key", s.key), zap.Error(err))
		return []models.Session{}
	}
	if !ok {
		return []models.Session{}
	}

	sessions, err := s.decode(raw)
	if err != nil {
		s.logger.Warn("discarding history", zap.Error(err))
		if delErr := s.slot.Delete(s.key); delErr != nil {
			s.logger.Warn("failed to delete corrupt history", zap.String("key", s.key), zap.Error(delErr))
		}
		return []models.Session{}
	}

	s.logger.Debug("history loaded", zap.Int("sessions", len(sessions)))
	return sessions
}

// record mirrors models.Session with the payload left raw so it can be
// checked against the document schema before decoding.
type record struct {
	ID        string          `json:"id"`
	Timestamp int64           `json:"timestamp"`
	Title     string          `json:"title"`
	Data      json.RawMessage `json:"data"`
}

func (s *Store) decode(raw string) ([]models.Session, error) {
	corrupt := func(reason string, err error) error {
		return &PersistenceCorruptionError{Key: s.key, Reason: reason, Err: err}
	}

	var records []record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, corrupt("not a JSON array of sessions", err)
	}
	if records == nil {
		return nil, corrupt("null collection", nil)
	}

	sessions := make([]models.Session, 0, len(records))
	seen := make(map[string]bool, len(records))
	for i, r := range records {
		if len(r.Data) == 0 {
			return nil, corrupt(fmt.Sprintf("record %d has no data", i), nil)
		}
		if err := document.ValidateJSON(r.Data); err != nil {
			return nil, corrupt(fmt.Sprintf("record %d data", i), err)
		}

		sess := models.Session{ID: r.ID, Timestamp: r.Timestamp, Title: r.Title}
		if err := json.Unmarshal(r.Data, &sess.Data); err != nil {
			return nil, corrupt(fmt.Sprintf("record %d data", i), err)
		}
		if err := sess.Validate(); err != nil {
			return nil, corrupt(fmt.Sprintf("record %d", i), err)
		}
		if seen[sess.ID] {
			return nil, corrupt(fmt.Sprintf("duplicate id %s", sess.ID), nil)
		}
		seen[sess.ID] = true
		sessions = append(sessions, sess)
	}
	return sessions, nil
}

// Save overwrites the slot with sessions
func (s *Store) Save(sessions []models.Session) error {
	if sessions == nil {
		sessions = []models.Session{}
	}
	data, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := s.slot.Put(s.key, string(data)); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	s.logger.Debug("history saved", zap.Int("sessions", len(sessions)), zap.Int("bytes", len(data)))
	return nil
}

// Create builds a new session for doc with a fresh id and the current
// time. It does not persist anything.
func (s *Store) Create(doc *models.Document) models.Session {
	return models.Session{
		ID:        s.newID(),
		Timestamp: s.now().UnixMilli(),
		Title:     models.TitleFor(doc),
		Data:      *doc,
	}
}

// IsCorruption reports whether err is a PersistenceCorruptionError
func IsCorruption(err error) bool {
	var pErr *PersistenceCorruptionError
	return errors.As(err, &pErr)
}
