package app

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/authgate/pkg/config"
	"github.com/dmitrymomot/authgate/pkg/environment"
	"github.com/dmitrymomot/authgate/pkg/logger"
	"github.com/dmitrymomot/authgate/pkg/requestid"
)

// Run loads the configuration from the environment and serves until SIGINT
// or SIGTERM.
func Run() error {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := NewLogger(cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a, err := New(ctx, cfg, log)
	if err != nil {
		log.ErrorContext(ctx, "startup failed", logger.Error(err))
		return err
	}

	return a.Run(ctx)
}

// NewLogger builds the process logger for cfg.
func NewLogger(cfg Config) *slog.Logger {
	return logger.New(
		logger.WithEnvironment(environment.Parse(cfg.Env), cfg.Service),
		logger.WithConfig(cfg.Log),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
}
