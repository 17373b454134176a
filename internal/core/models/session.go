package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultTitle is used when a document has no theme map title
const DefaultTitle = "Untitled Architecture"

var validate = validator.New()

// Session is a persisted, titled wrapper around one Document
type Session struct {
	ID        string   `json:"id" validate:"required,max=128"`
	Timestamp int64    `json:"timestamp" validate:"gt=0"` // milliseconds since epoch
	Title     string   `json:"title" validate:"required"`
	Data      Document `json:"data"`
}

// CreatedAt returns the creation instant
func (s Session) CreatedAt() time.Time {
	return time.UnixMilli(s.Timestamp)
}

// Validate checks the session's own fields. The document payload is checked
// separately against the output schema because presence of keys is lost once
// decoded into Go values.
func (s *Session) Validate() error {
	if err := validate.Struct(s); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// TitleFor derives the session title from a document
func TitleFor(doc *Document) string {
	if doc == nil {
		return DefaultTitle
	}
	if strings.TrimSpace(doc.ThemeMap.Title) != "" {
		return doc.ThemeMap.Title
	}
	return DefaultTitle
}

func formatValidationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "gt":
			msgs = append(msgs, fmt.Sprintf("%s must be greater than %s", field, e.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", field, e.Param()))
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return fmt.Errorf("invalid session: %s", strings.Join(msgs, "; "))
}
