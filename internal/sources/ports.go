package sources

import (
	"context"

	"cashflow/internal/core"
)

// Ports for record stores.
type (
	// RecordReader loads every record of a store.
	RecordReader interface {
		ReadRecords(ctx context.Context) ([]core.Record, error)
	}

	// RecordWriter replaces the content of a store with records.
	RecordWriter interface {
		WriteRecords(ctx context.Context, records []core.Record) error
	}
)
