package cli

import (
	"context"
	"fmt"
	"sync"

	"github.com/neilberkman/kapro/internal/core/config"
	"github.com/neilberkman/kapro/internal/core/controller"
	"github.com/neilberkman/kapro/internal/core/db"
	"github.com/neilberkman/kapro/internal/core/history"
	"github.com/neilberkman/kapro/internal/core/llm"
	"github.com/neilberkman/kapro/internal/core/logging"
	"github.com/neilberkman/kapro/internal/core/models"
	"go.uber.org/zap"
)

// app bundles everything a command needs
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *db.DB
	store  *history.Store
	ctrl   *controller.Controller
}

// openApp loads config, opens the log and database and builds the
// controller. The model provider is created on first use so that commands
// that only read history work without credentials.
func openApp() (*app, error) {
	dir := configDir
	if dir == "" {
		dir = config.Dir()
	}
	cfg, err := config.LoadFrom(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if debug {
		cfg.Debug = true
	}

	logger, err := logging.New(cfg.Dir, cfg.Debug)
	if err != nil {
		return nil, err
	}

	database, err := db.New(cfg.DBPath)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := history.New(database,
		history.WithKey(cfg.HistoryKey),
		history.WithLogger(logger.Named("history")),
	)
	gw := &lazyGateway{cfg: cfg, logger: logger.Named("llm")}
	ctrl := controller.New(gw, store, controller.WithLogger(logger.Named("controller")))

	return &app{cfg: cfg, logger: logger, db: database, store: store, ctrl: ctrl}, nil
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		a.logger.Warn("error closing database", zap.Error(err))
	}
	_ = a.logger.Sync()
}

// lazyGateway builds the provider and gateway on the first request
type lazyGateway struct {
	cfg    *config.Config
	logger *zap.Logger

	once sync.Once
	gw   *llm.Gateway
	err  error
}

func (l *lazyGateway) Architect(ctx context.Context, transcript string) (*models.Document, error) {
	l.once.Do(func() {
		provider, err := llm.NewProvider(ctx, l.cfg.LLM)
		if err != nil {
			l.err = &llm.ProviderError{Provider: l.cfg.LLM.Provider, Err: err}
			return
		}
		l.gw = llm.NewGateway(provider,
			llm.WithSystemInstruction(l.cfg.SystemInstruction),
			llm.WithTranscriptTemplate(l.cfg.TranscriptTemplate),
			llm.WithLogger(l.logger),
		)
	})
	if l.err != nil {
		l.logger.Error("provider unavailable", zap.Error(l.err))
		return nil, l.err
	}
	return l.gw.Architect(ctx, transcript)
}
