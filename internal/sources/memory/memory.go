// Package memory keeps records in process memory.
package memory

import (
	"context"
	"fmt"
	"sync"

	"cashflow/internal/core"
	"cashflow/internal/sources"
)

type Store struct {
	mu     sync.Mutex
	items  []core.Record
	writes int
}

var (
	_ sources.RecordReader = (*Store)(nil)
	_ sources.RecordWriter = (*Store)(nil)
)

// New returns a store seeded with a copy of records.
func New(records ...core.Record) *Store {
	return &Store{items: append([]core.Record(nil), records...)}
}

// ReadRecords returns a copy of the stored records.
func (s *Store) ReadRecords(ctx context.Context) ([]core.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Record(nil), s.items...), nil
}

// WriteRecords replaces the content. An invalid record rejects the whole batch.
func (s *Store) WriteRecords(ctx context.Context, records []core.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("record %d (%s): %w", i, r.ID, err)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]core.Record(nil), records...)
	s.writes++
	return nil
}

// Writes counts successful WriteRecords calls.
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
