package llm

import (
	"fmt"

	"github.com/cbroglie/mustache"
	"github.com/neilberkman/kapro/internal/core/config"
)

// BuildTranscriptPrompt renders the user turn: the transcript between
// explicit delimiters followed by the output schema. An empty template
// means config.DefaultTranscriptTemplate.
func BuildTranscriptPrompt(template, transcript, schema string) (string, error) {
	if template == "" {
		template = config.DefaultTranscriptTemplate
	}

	prompt, err := mustache.Render(template, map[string]interface{}{
		"transcript": transcript,
		"schema":     schema,
	})
	if err != nil {
		return "", fmt.Errorf("render transcript prompt: %w", err)
	}
	return prompt, nil
}
