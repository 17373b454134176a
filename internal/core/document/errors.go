package document

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedOutput matches any *MalformedOutputError via errors.Is
var ErrMalformedOutput = errors.New("malformed model output")

// Reasons a candidate document can be rejected
const (
	ReasonEmpty   = "empty"
	ReasonSyntax  = "syntax"
	ReasonMissing = "missing"
	ReasonShape   = "shape"
)

// MalformedOutputError is returned when text cannot be trusted as a Document
type MalformedOutputError struct {
	Reason  string
	Missing []string // key paths, only for ReasonMissing
	Err     error
}

func (e *MalformedOutputError) Error() string {
	switch e.Reason {
	case ReasonEmpty:
		return "malformed model output: empty text"
	case ReasonMissing:
		return "malformed model output: missing required keys: " + strings.Join(e.Missing, ", ")
	}
	if e.Err != nil {
		return fmt.Sprintf("malformed model output (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed model output (%s)", e.Reason)
}

func (e *MalformedOutputError) Unwrap() error { return e.Err }

func (e *MalformedOutputError) Is(target error) bool {
	return target == ErrMalformedOutput
}
