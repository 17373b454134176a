package llm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/neilberkman/kapro/internal/core/document"
)

var (
	// ErrEmptyInput is returned for a blank transcript; the provider is never called
	ErrEmptyInput = errors.New("transcript is empty")

	// ErrEmptyResponse is returned when the provider answered with no text
	ErrEmptyResponse = errors.New("empty response from model")
)

// ProviderError wraps any transport, auth or quota failure from the provider
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// User-facing messages
const (
	MsgGeneric   = "Something went wrong during architecting."
	MsgMalformed = "The AI returned invalid data. Try a shorter transcript or reduce the scope."
)

// UserMessage maps a gateway error to the text shown to the user
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var provErr *ProviderError
	switch {
	case errors.Is(err, document.ErrMalformedOutput):
		return MsgMalformed
	case errors.Is(err, ErrEmptyResponse):
		return MsgGeneric
	case errors.As(err, &provErr):
		if provErr.Err != nil {
			if msg := strings.TrimSpace(provErr.Err.Error()); msg != "" {
				return msg
			}
		}
		return MsgGeneric
	}
	return MsgGeneric
}
