package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"cashflow/internal/backend"
	"cashflow/internal/cli"
	"cashflow/internal/config"
	"cashflow/internal/dashboard"
	apphttp "cashflow/internal/http"
	"cashflow/internal/log"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, stop := cli.SignalContext()
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Dashboard failed", log.FieldError, err)
		stop()
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully", log.FieldOperation, log.OpShutdown)
}

func run(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	loc := cli.MustLocale(logger, cfg.Locale)

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return err
	}
	source, err := backend.NewFactory(logger).CreateReader(ctx, backendCfg)
	if err != nil {
		return fmt.Errorf("create %s reader: %w", backendCfg.Type, err)
	}
	defer func() {
		if err := source.Close(); err != nil {
			logger.Warn("Failed to close data source", log.FieldError, err)
		}
	}()

	data, err := dashboard.Load(ctx, source.Reader, loc)
	if err != nil {
		return err
	}
	logger.Info("Dataset loaded",
		log.FieldOperation, log.OpStartup,
		log.FieldSource, backendCfg.Type.String(),
		log.FieldRecords, data.Len(),
		"months", len(data.Options())-1)

	presenter, err := dashboard.NewPresenter(data, dashboard.Options{
		TickStep:  cfg.TickStep,
		TickRound: cfg.TickRound,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	opts := apphttp.DefaultOptions()
	opts.RequestsPerMinute = cfg.RateLimitPerMinute
	srv, err := apphttp.NewServer(":"+cfg.Port, presenter, logger, opts)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting cashflow dashboard", "port", cfg.Port, log.FieldSource, backendCfg.Type.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on :%s: %w", cfg.Port, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		stats := presenter.CacheStats()
		logger.Info("View cache",
			log.FieldOperation, log.OpShutdown,
			"cache_hits", stats.Hits,
			"cache_misses", stats.Misses)
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
