// Package cli provides common CLI initialization utilities.
// This package consolidates the setup every kharcha subcommand repeats:
// environment, configuration, logging and opening the ledger.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"kharcha/internal/backend"
	"kharcha/internal/config"
	"kharcha/internal/ledger"
	applog "kharcha/internal/log"
	"kharcha/internal/prefs"
)

// SetupLogger initializes structured logging from the configuration.
// Returns the configured logger and sets it as the default logger.
func SetupLogger(cfg *config.Config, out io.Writer) *applog.Logger {
	level, err := applog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = applog.DefaultConfig().Level
	}
	if out == nil {
		out = os.Stderr
	}
	logger := applog.New(applog.Config{
		Level:     level,
		Format:    cfg.LogFormat,
		Component: applog.ComponentCLI,
		Output:    out,
	})
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration from path (see config.Load)
// and validates it.
func LoadAndValidateConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Session is an opened ledger with its preferences and backing store.
type Session struct {
	Config *config.Config
	Logger *applog.Logger
	Ledger *ledger.Store
	Prefs  prefs.Prefs

	prefsStore *prefs.Store
	backend    *backend.BackendResult
}

// Open creates the configured backend and loads the ledger and the
// preferences from it.
func Open(ctx context.Context, cfg *config.Config, logger *applog.Logger, opts ...ledger.Option) (*Session, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	res, err := backend.NewFactory(logger).CreateBackend(ctx, bcfg)
	if err != nil {
		return nil, err
	}

	opts = append([]ledger.Option{ledger.WithLogger(logger)}, opts...)
	l, err := ledger.Open(ctx, ledger.NewKVPersister(res.Store, ledger.DocumentKey), opts...)
	if err != nil {
		_ = res.Close()
		return nil, err
	}

	ps := prefs.New(res.Store, prefs.Prefs{Currency: cfg.Currency, TrendMonths: cfg.TrendMonths}, logger)
	p, err := ps.Load(ctx)
	if err != nil {
		_ = res.Close()
		return nil, err
	}

	return &Session{
		Config:     cfg,
		Logger:     logger,
		Ledger:     l,
		Prefs:      p,
		prefsStore: ps,
		backend:    res,
	}, nil
}

// SavePrefs stores p and makes it the session's preferences.
func (s *Session) SavePrefs(ctx context.Context, p prefs.Prefs) error {
	if err := s.prefsStore.Save(ctx, p); err != nil {
		return err
	}
	loaded, err := s.prefsStore.Load(ctx)
	if err != nil {
		return err
	}
	s.Prefs = loaded
	return nil
}

// Close releases the backend.
func (s *Session) Close() error {
	if err := s.backend.Close(); err != nil {
		return fmt.Errorf("close backend: %w", err)
	}
	return nil
}
