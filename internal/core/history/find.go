package history

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/neilberkman/kapro/internal/core/models"
)

var (
	// ErrNotFound means no session matched the id
	ErrNotFound = errors.New("session not found")

	// ErrAmbiguous means an id prefix matched more than one session
	ErrAmbiguous = errors.New("session id prefix is ambiguous")
)

// Find returns the session whose id equals ref, or else the single session
// whose id starts with ref.
func Find(sessions []models.Session, ref string) (models.Session, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.Session{}, ErrNotFound
	}

	var matches []models.Session
	for _, s := range sessions {
		if s.ID == ref {
			return s, nil
		}
		if strings.HasPrefix(s.ID, ref) {
			matches = append(matches, s)
		}
	}

	switch len(matches) {
	case 0:
		return models.Session{}, fmt.Errorf("%w: %s", ErrNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return models.Session{}, fmt.Errorf("%w: %s matches %d sessions", ErrAmbiguous, ref, len(matches))
	}
}

// Since keeps the sessions created at or after t, preserving order
func Since(sessions []models.Session, t time.Time) []models.Session {
	out := make([]models.Session, 0, len(sessions))
	for _, s := range sessions {
		if !s.CreatedAt().Before(t) {
			out = append(out, s)
		}
	}
	return out
}
