// Package dashboard turns the loaded records into chart series for one
// month selection at a time.
package dashboard

import (
	"context"
	"fmt"

	"cashflow/internal/core"
	"cashflow/internal/report"
	"cashflow/internal/sources"
)

// Dataset is loaded once at startup and read-only afterwards.
type Dataset struct {
	locale core.Locale
	rows   []core.Row
	months []string
}

// NewDataset normalizes records to expense rows, fills calendar gaps and
// sorts the result by date.
func NewDataset(records []core.Record, loc core.Locale) (*Dataset, error) {
	rows, err := report.Normalize(records, loc)
	if err != nil {
		return nil, err
	}
	rows = report.SortByDate(report.FillCalendarGaps(rows, loc))
	return &Dataset{
		locale: loc,
		rows:   rows,
		months: report.MonthYears(rows),
	}, nil
}

// Load reads every record from reader and builds the dataset.
func Load(ctx context.Context, reader sources.RecordReader, loc core.Locale) (*Dataset, error) {
	records, err := reader.ReadRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	ds, err := NewDataset(records, loc)
	if err != nil {
		return nil, fmt.Errorf("build dataset: %w", err)
	}
	return ds, nil
}

// Locale returns the locale the dataset was built with.
func (d *Dataset) Locale() core.Locale { return d.locale }

// Rows returns the calendar-filled expense rows in date order.
func (d *Dataset) Rows() []core.Row {
	return append([]core.Row(nil), d.rows...)
}

// Options returns the dropdown values: the "all" label first, then every
// observed month-year in chronological order.
func (d *Dataset) Options() []string {
	out := make([]string, 0, len(d.months)+1)
	out = append(out, d.locale.AllLabel)
	return append(out, d.months...)
}

// Len returns the number of rows, synthetic ones included.
func (d *Dataset) Len() int { return len(d.rows) }
