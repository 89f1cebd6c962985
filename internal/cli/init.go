// Package cli holds the start-up steps shared by cmd/cashflow and
// cmd/cashflow-ingest.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"cashflow/internal/config"
	"cashflow/internal/core"
	"cashflow/internal/log"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger builds the process logger from LOG_LEVEL and makes it the
// slog default. Unknown levels fall back to info; Validate reports them.
func SetupLogger(level string) *log.Logger {
	cfg := log.DefaultConfig()
	if lvl, err := log.ParseLevel(level); err == nil {
		cfg.Level = lvl
	}
	logger := log.New(cfg)
	log.SetDefault(logger)
	return logger
}

// LoadAndValidateConfig loads configuration for the dashboard.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// LoadAndValidateIngestConfig loads configuration for the ingest command.
func LoadAndValidateIngestConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.ValidateIngest(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// MustLocale resolves the configured locale. Validation already checked it.
func MustLocale(logger *log.Logger, code string) core.Locale {
	loc, err := core.LocaleFor(code)
	if err != nil {
		logger.Error("Unknown locale", log.FieldError, err)
		os.Exit(1)
	}
	return loc
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
