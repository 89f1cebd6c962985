package main

import (
	"context"
	"fmt"
	"os"

	"cashflow/internal/amqp"
	"cashflow/internal/cli"
	"cashflow/internal/config"
	"cashflow/internal/log"
	"cashflow/internal/notion"
	"cashflow/internal/services"
	"cashflow/internal/sources/csvfile"
	"cashflow/internal/storage"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateIngestConfig(logger)

	ctx, stop := cli.SignalContext()
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Ingest failed", log.FieldError, err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	loc := cli.MustLocale(logger, cfg.Locale)

	sinks := []services.Sink{{
		Name:   services.SinkCSV,
		Path:   cfg.OutputPath,
		Writer: csvfile.New(cfg.OutputPath),
	}}

	if cfg.SnapshotEnabled {
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath, logger)
		if err != nil {
			return fmt.Errorf("open snapshot %s: %w", cfg.SQLiteDBPath, err)
		}
		defer repo.Close()
		sinks = append(sinks, services.Sink{
			Name:   services.SinkSnapshot,
			Path:   cfg.SQLiteDBPath,
			Writer: repo,
		})
	}

	var notifier services.IngestNotifier
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
		if err != nil {
			// Notifications are best effort; the export itself still runs.
			logger.Warn("AMQP unavailable, continuing without notifications",
				log.NewFields().WithOperation(log.OpNotify).WithError(err).ToSlice()...)
		} else {
			defer client.Close()
			notifier = client
		}
	}

	svc, err := services.NewIngestService(services.IngestConfig{
		Fetcher:    notion.NewClient(cfg.NotionToken, cfg.NotionTimeout, notion.DefaultPropertyNames(), logger),
		DatabaseID: cfg.NotionDatabaseID,
		Locale:     loc,
		Sinks:      sinks,
		Notifier:   notifier,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	logger.Info("Starting ingest",
		log.FieldOperation, log.OpStartup,
		log.FieldDatabaseID, cfg.NotionDatabaseID,
		log.FieldFile, cfg.OutputPath)
	_, err = svc.Run(ctx)
	return err
}
