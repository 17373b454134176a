// Package document turns model output text into a trusted models.Document.
//
// Parsing is strict: a single outer code fence is stripped, the remainder
// must be a JSON object, and every required key of the reflected schema must
// be present. Nothing is repaired and no partially valid document is ever
// returned.
package document

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/neilberkman/kapro/internal/core/models"
)

var fencePattern = regexp.MustCompile("(?s)^```(?:json|JSON)?\\s*(.*?)\\s*```$")

// StripFence removes one outer ``` or ```json fence pair. Text that is not
// fully enclosed by a fence is returned trimmed but otherwise unchanged.
func StripFence(text string) string {
	text = strings.TrimSpace(text)
	if m := fencePattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return text
}

// Parse validates raw model output and decodes it into a Document
func Parse(rawText string) (*models.Document, error) {
	text := StripFence(rawText)
	if text == "" {
		return nil, &MalformedOutputError{Reason: ReasonEmpty}
	}

	var generic any
	if err := json.Unmarshal([]byte(text), &generic); err != nil {
		return nil, &MalformedOutputError{Reason: ReasonSyntax, Err: err}
	}
	if err := Validate(generic); err != nil {
		return nil, err
	}

	var doc models.Document
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, &MalformedOutputError{Reason: ReasonShape, Err: err}
	}
	return &doc, nil
}

// Validate checks an already decoded JSON value (as produced by
// json.Unmarshal into an `any`) against the document schema.
func Validate(v any) error {
	if _, ok := v.(map[string]any); !ok {
		return &MalformedOutputError{Reason: ReasonSyntax, Err: errors.New("not a JSON object")}
	}
	s := Schema()
	c := &checker{defs: s.Definitions}
	if err := c.check(s, v, "", 0); err != nil {
		return &MalformedOutputError{Reason: ReasonShape, Err: err}
	}
	if len(c.missing) > 0 {
		return &MalformedOutputError{Reason: ReasonMissing, Missing: c.missing}
	}
	return nil
}

// ValidateJSON is Validate for an undecoded payload
func ValidateJSON(data []byte) error {
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return &MalformedOutputError{Reason: ReasonSyntax, Err: err}
	}
	return Validate(generic)
}
