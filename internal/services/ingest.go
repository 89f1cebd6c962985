package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"cashflow/internal/amqp"
	"cashflow/internal/core"
	"cashflow/internal/log"
	"cashflow/internal/report"
	"cashflow/internal/sources"
)

// RecordFetcher pulls the full record set from the remote database.
type RecordFetcher interface {
	Fetch(ctx context.Context, databaseID string) ([]core.Record, error)
}

// IngestNotifier announces a completed ingest.
type IngestNotifier interface {
	PublishIngestCompleted(ctx context.Context, msg *amqp.IngestCompletedMessage) error
}

// Sink is a named destination for fetched records.
type Sink struct {
	Name   string
	Path   string
	Writer sources.RecordWriter
}

// IngestConfig wires an IngestService.
type IngestConfig struct {
	Fetcher    RecordFetcher
	DatabaseID string
	Locale     core.Locale
	// Sinks are written once the fetch succeeded. The first one is the
	// primary output reported in notifications and is written last; the
	// others are written in parallel before it.
	Sinks    []Sink
	Notifier IngestNotifier // optional
	Logger   *log.Logger
}

// IngestResult summarizes one run.
type IngestResult struct {
	Records  int
	Expenses int
	Duration time.Duration
}

// IngestService copies the remote database into local stores.
type IngestService struct {
	cfg    IngestConfig
	logger *log.Logger
}

func NewIngestService(cfg IngestConfig) (*IngestService, error) {
	if cfg.Fetcher == nil {
		return nil, errors.New("ingest: fetcher is required")
	}
	if len(cfg.Sinks) == 0 {
		return nil, errors.New("ingest: at least one sink is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &IngestService{cfg: cfg, logger: logger.WithComponent(log.ComponentIngest)}, nil
}

// Run fetches every record and writes all sinks. Nothing is written unless
// the whole fetch succeeded. A failed notification is logged, not returned.
func (s *IngestService) Run(ctx context.Context) (IngestResult, error) {
	start := time.Now()

	records, err := s.cfg.Fetcher.Fetch(ctx, s.cfg.DatabaseID)
	if err != nil {
		return IngestResult{}, fmt.Errorf("fetch records: %w", err)
	}

	rows, err := report.Normalize(records, s.cfg.Locale)
	if err != nil {
		return IngestResult{}, fmt.Errorf("normalize records: %w", err)
	}

	// Secondary sinks are transactional. The primary output is replaced only
	// once they all committed, so a failed snapshot leaves it untouched.
	g, gctx := errgroup.WithContext(ctx)
	for _, sink := range s.cfg.Sinks[1:] {
		g.Go(func() error {
			return s.write(gctx, sink, records)
		})
	}
	if err := g.Wait(); err != nil {
		return IngestResult{}, err
	}
	if err := s.write(ctx, s.cfg.Sinks[0], records); err != nil {
		return IngestResult{}, err
	}

	result := IngestResult{
		Records:  len(records),
		Expenses: len(rows),
		Duration: time.Since(start),
	}

	if s.cfg.Notifier != nil {
		msg := amqp.NewIngestCompletedMessage(result.Records, result.Expenses, s.cfg.Sinks[0].Path, s.snapshotPath())
		if err := s.cfg.Notifier.PublishIngestCompleted(ctx, msg); err != nil {
			s.logger.WarnContext(ctx, "Failed to publish ingest notification",
				log.NewFields().WithOperation(log.OpNotify).WithError(err).ToSlice()...)
		}
	}

	s.logger.InfoContext(ctx, "Ingest completed",
		log.FieldRecords, result.Records,
		log.FieldExpenses, result.Expenses,
		log.FieldDuration, result.Duration.Milliseconds())
	return result, nil
}

func (s *IngestService) write(ctx context.Context, sink Sink, records []core.Record) error {
	if err := sink.Writer.WriteRecords(ctx, records); err != nil {
		return fmt.Errorf("write %s: %w", sink.Name, err)
	}
	s.logger.InfoContext(ctx, "Sink written",
		log.FieldOperation, log.OpWrite,
		log.FieldSource, sink.Name,
		log.FieldFile, sink.Path,
		log.FieldRecords, len(records))
	return nil
}

func (s *IngestService) snapshotPath() string {
	for _, sink := range s.cfg.Sinks[1:] {
		if sink.Name == SinkSnapshot {
			return sink.Path
		}
	}
	return ""
}

// Sink names used by the ingest command.
const (
	SinkCSV      = "csv"
	SinkSnapshot = "sqlite"
)
