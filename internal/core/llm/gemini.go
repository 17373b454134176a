package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms/googleai"
)

// GeminiProvider implements Provider using the Google Gemini API
type GeminiProvider struct {
	chat  chatModel
	model string
}

// GeminiConfig holds configuration for Gemini provider
type GeminiConfig struct {
	APIKey      string
	Model       string // defaults to gemini-2.5-pro
	MaxTokens   int
	Temperature float64
}

// NewGeminiProvider creates a new Gemini provider
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: no API key (set GEMINI_API_KEY or llm.api_key_env)")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-pro"
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 16384
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{
		chat:  chatModel{model: llm, maxTokens: cfg.MaxTokens, temperature: cfg.Temperature},
		model: cfg.Model,
	}, nil
}

// GenerateText implements Provider
func (p *GeminiProvider) GenerateText(ctx context.Context, req Request) (string, error) {
	response, err := p.chat.generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}
	return response, nil
}

// Name implements Provider
func (p *GeminiProvider) Name() string {
	return "gemini"
}
