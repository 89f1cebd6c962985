// Package backend builds the record reader the dashboard loads from.
package backend

import (
	"context"

	"cashflow/internal/sources"
)

// CleanupFunc releases resources held by a reader.
type CleanupFunc func() error

// ReaderResult contains the reader and an optional cleanup function.
type ReaderResult struct {
	Reader  sources.RecordReader
	Cleanup CleanupFunc
}

// Close runs the cleanup function if there is one.
func (r *ReaderResult) Close() error {
	if r == nil || r.Cleanup == nil {
		return nil
	}
	return r.Cleanup()
}

// Factory creates readers based on configuration
type Factory interface {
	CreateReader(ctx context.Context, config Config) (*ReaderResult, error)
}

// SourceType names where dashboard records come from.
type SourceType string

const (
	CSVSource    SourceType = "csv"
	SQLiteSource SourceType = "sqlite"
	SheetsSource SourceType = "sheets"
)

// String implements fmt.Stringer
func (st SourceType) String() string {
	return string(st)
}

// IsValid returns true if the source type is known
func (st SourceType) IsValid() bool {
	switch st {
	case CSVSource, SQLiteSource, SheetsSource:
		return true
	default:
		return false
	}
}
