// Package csvfile stores records in a CSV file with a header row.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"cashflow/internal/core"
	"cashflow/internal/sources"
)

// Store reads and writes one CSV file.
type Store struct {
	path string
}

var (
	_ sources.RecordReader = (*Store)(nil)
	_ sources.RecordWriter = (*Store)(nil)
)

func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the file the store works on.
func (s *Store) Path() string { return s.path }

// ReadRecords parses the whole file. Columns are located by header name.
func (s *Store) ReadRecords(ctx context.Context) ([]core.Record, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	records, err := Decode(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return records, nil
}

// Decode parses CSV content from r.
func Decode(ctx context.Context, r io.Reader) ([]core.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty file: header row expected")
	}
	if err != nil {
		return nil, err
	}
	cols, err := sources.MapHeader(header)
	if err != nil {
		return nil, err
	}

	var out []core.Record
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if sources.IsBlank(row) {
			continue
		}
		line, _ := cr.FieldPos(0)
		rec, err := cols.Record(row, line)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// WriteRecords replaces the file. Content goes to a temporary file in the
// same directory first, so a failed write leaves the previous file intact.
func (s *Store) WriteRecords(ctx context.Context, records []core.Record) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if err := Encode(ctx, tmp, records); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	committed = true
	return nil
}

// Encode writes records with the standard header to w.
func Encode(ctx context.Context, w io.Writer, records []core.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(sources.Header); err != nil {
		return err
	}
	for _, r := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := cw.Write(sources.Fields(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
