package llm

import (
	"context"
	"strings"
	"time"

	"github.com/neilberkman/kapro/internal/core/config"
	"github.com/neilberkman/kapro/internal/core/document"
	"github.com/neilberkman/kapro/internal/core/logging"
	"github.com/neilberkman/kapro/internal/core/models"
	"go.uber.org/zap"
)

// Gateway turns a transcript into a Document with exactly one provider call
type Gateway struct {
	provider           Provider
	systemInstruction  string
	transcriptTemplate string
	logger             *zap.Logger
}

// GatewayOption configures a Gateway
type GatewayOption func(*Gateway)

// WithSystemInstruction overrides config.DefaultSystemInstruction
func WithSystemInstruction(s string) GatewayOption {
	return func(g *Gateway) {
		if s != "" {
			g.systemInstruction = s
		}
	}
}

// WithTranscriptTemplate overrides config.DefaultTranscriptTemplate
func WithTranscriptTemplate(t string) GatewayOption {
	return func(g *Gateway) {
		if t != "" {
			g.transcriptTemplate = t
		}
	}
}

// WithLogger sets the gateway logger
func WithLogger(l *zap.Logger) GatewayOption {
	return func(g *Gateway) { g.logger = logging.OrNop(l) }
}

// NewGateway creates a gateway over provider
func NewGateway(provider Provider, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		provider:           provider,
		systemInstruction:  config.DefaultSystemInstruction,
		transcriptTemplate: config.DefaultTranscriptTemplate,
		logger:             zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Architect sends the transcript to the provider and validates the answer.
// There are no retries.
func (g *Gateway) Architect(ctx context.Context, transcript string) (*models.Document, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, ErrEmptyInput
	}

	schema := document.SchemaJSON()
	prompt, err := BuildTranscriptPrompt(g.transcriptTemplate, transcript, schema)
	if err != nil {
		g.logger.Warn("custom transcript template failed, using default", zap.Error(err))
		if prompt, err = BuildTranscriptPrompt(config.DefaultTranscriptTemplate, transcript, schema); err != nil {
			return nil, err
		}
	}

	log := g.logger.With(zap.String("provider", g.provider.Name()))
	log.Info("architect request", zap.Int("transcript_chars", len(transcript)))
	start := time.Now()

	raw, err := g.provider.GenerateText(ctx, Request{
		System: g.systemInstruction,
		Prompt: prompt,
		JSON:   true,
	})
	if err != nil {
		log.Error("provider call failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return nil, &ProviderError{Provider: g.provider.Name(), Err: err}
	}
	if strings.TrimSpace(raw) == "" {
		log.Warn("provider returned empty text", zap.Duration("elapsed", time.Since(start)))
		return nil, ErrEmptyResponse
	}

	doc, err := document.Parse(raw)
	if err != nil {
		log.Warn("model output rejected", zap.Error(err), zap.Int("response_chars", len(raw)))
		log.Debug("rejected model output", zap.String("raw", raw))
		return nil, err
	}

	log.Info("architect complete",
		zap.Duration("elapsed", time.Since(start)),
		zap.String("title", doc.ThemeMap.Title))
	return doc, nil
}
