package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"cashflow/internal/core"
	"cashflow/internal/log"
	"cashflow/internal/sources"
)

const dayLayout = "2006-01-02"

// SQLiteRepository keeps a snapshot of the last ingested records.
type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
	logger  *log.Logger
	now     func() time.Time
}

var (
	_ sources.RecordReader = (*SQLiteRepository)(nil)
	_ sources.RecordWriter = (*SQLiteRepository)(nil)
)

func NewSQLiteRepository(dbPath string, logger *log.Logger) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	version, err := RunMigrations(dbPath)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	logger = logger.WithComponent(log.ComponentStorage)
	logger.Debug("SQLite snapshot ready", log.FieldFile, dbPath, "schema_version", version)

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
		logger:  logger,
		now:     time.Now,
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// WriteRecords replaces the snapshot in a single transaction and records the run.
func (r *SQLiteRepository) WriteRecords(ctx context.Context, records []core.Record) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	q := r.queries.WithTx(tx)
	if err := q.DeleteRecords(ctx); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	for i, rec := range records {
		err := q.InsertRecord(ctx, RecordRow{
			Position:    int64(i),
			ID:          rec.ID,
			UserID:      rec.UserID,
			Day:         rec.Date.Format(dayLayout),
			Description: rec.Description,
			Amount:      rec.Value.String(),
			Qty:         rec.Qty.String(),
			Category:    rec.Category,
			Type:        rec.Type,
		})
		if err != nil {
			return fmt.Errorf("insert record %s: %w", rec.ID, err)
		}
	}
	err = q.InsertIngestRun(ctx, InsertIngestRunParams{
		Records:     int64(len(records)),
		CompletedAt: r.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("record ingest run: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}

	r.logger.InfoContext(ctx, "Snapshot saved to SQLite", log.FieldRecords, len(records))
	return nil
}

// ReadRecords loads the snapshot in insertion order.
func (r *SQLiteRepository) ReadRecords(ctx context.Context) ([]core.Record, error) {
	rows, err := r.queries.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	out := make([]core.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := row.toRecord()
		if err != nil {
			return nil, fmt.Errorf("record at position %d: %w", row.Position, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// LastRun returns when the snapshot was last written. ok is false when no
// ingest has completed yet.
func (r *SQLiteRepository) LastRun(ctx context.Context) (run IngestRun, ok bool, err error) {
	run, err = r.queries.LastIngestRun(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return IngestRun{}, false, nil
	}
	if err != nil {
		return IngestRun{}, false, fmt.Errorf("last ingest run: %w", err)
	}
	return run, true, nil
}

func (row RecordRow) toRecord() (core.Record, error) {
	t, err := time.Parse(dayLayout, row.Day)
	if err != nil {
		return core.Record{}, &core.ParseError{Value: row.Day, Layout: dayLayout, Err: err}
	}
	value, err := core.ParseMoney(row.Amount)
	if err != nil {
		return core.Record{}, err
	}
	qty, err := core.ParseMoney(row.Qty)
	if err != nil {
		return core.Record{}, err
	}
	return core.Record{
		ID:          row.ID,
		UserID:      row.UserID,
		Date:        core.DateOf(t),
		Description: row.Description,
		Value:       value,
		Qty:         qty,
		Category:    row.Category,
		Type:        row.Type,
	}, nil
}
