package backend

import (
	"context"
	"fmt"

	"cashflow/internal/log"
	"cashflow/internal/sources/csvfile"
	gsheet "cashflow/internal/sources/google"
	"cashflow/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new reader factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &DefaultFactory{logger: logger}
}

// CreateReader implements Factory.CreateReader
func (f *DefaultFactory) CreateReader(ctx context.Context, config Config) (*ReaderResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case CSVSource:
		f.logger.Info("Using CSV source", log.FieldFile, config.CSVPath)
		return &ReaderResult{Reader: csvfile.New(config.CSVPath)}, nil
	case SQLiteSource:
		return f.createSQLiteReader(ctx, config)
	case SheetsSource:
		return f.createSheetsReader(ctx, config)
	default:
		return nil, fmt.Errorf("unsupported source type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteReader(ctx context.Context, config Config) (*ReaderResult, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	run, ok, err := repo.LastRun(ctx)
	switch {
	case err != nil:
		_ = repo.Close()
		return nil, fmt.Errorf("read last ingest run: %w", err)
	case !ok:
		f.logger.Warn("SQLite snapshot has never been written", log.FieldFile, config.SQLiteDBPath)
	default:
		f.logger.Info("Using SQLite snapshot source",
			log.FieldFile, config.SQLiteDBPath,
			log.FieldRecords, run.Records,
			"completed_at", run.CompletedAt)
	}

	return &ReaderResult{Reader: repo, Cleanup: repo.Close}, nil
}

func (f *DefaultFactory) createSheetsReader(ctx context.Context, config Config) (*ReaderResult, error) {
	reader, err := gsheet.New(ctx, config.GoogleSpreadsheetID, config.GoogleSheetRange, gsheet.Credentials{
		JSON: config.GoogleServiceAccountJSON,
		File: config.GoogleServiceAccountFile,
	}, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Sheets reader: %w", err)
	}

	f.logger.Info("Using Google Sheets source", log.FieldSource, config.GoogleSheetRange)

	return &ReaderResult{Reader: reader}, nil
}
