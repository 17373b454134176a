package llm

import (
	"context"
	"fmt"

	"github.com/neilberkman/kapro/internal/core/config"
	"github.com/tmc/langchaingo/llms"
)

// Provider is the interface for LLM backends
type Provider interface {
	// GenerateText runs a single completion and returns the raw text
	GenerateText(ctx context.Context, req Request) (string, error)

	// Name returns the provider name (e.g., "gemini", "bedrock")
	Name() string
}

// Request is one outbound completion
type Request struct {
	System string // System instruction
	Prompt string // User turn
	JSON   bool   // Ask the provider for a JSON-only response
}

// NewProvider builds the provider selected in cfg
func NewProvider(ctx context.Context, cfg config.LLMConfig) (Provider, error) {
	switch cfg.Provider {
	case config.ProviderGemini, "":
		return NewGeminiProvider(ctx, GeminiConfig{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
		})
	case config.ProviderBedrock:
		return NewBedrockProvider(ctx, BedrockConfig{
			Region:      cfg.Region,
			ModelID:     cfg.Model,
			Profile:     cfg.Profile,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
		})
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

// chatModel runs a Request against any langchaingo model
type chatModel struct {
	model       llms.Model
	maxTokens   int
	temperature float64
}

func (c chatModel) generate(ctx context.Context, req Request) (string, error) {
	var messages []llms.MessageContent
	if req.System != "" {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, req.System))
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, req.Prompt))

	opts := []llms.CallOption{
		llms.WithMaxTokens(c.maxTokens),
		llms.WithTemperature(c.temperature),
	}
	if req.JSON {
		opts = append(opts, llms.WithJSONMode())
	}

	resp, err := c.model.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return "", nil
	}
	return resp.Choices[0].Content, nil
}
