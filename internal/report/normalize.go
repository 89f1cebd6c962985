// Package report turns fetched records into the series drawn by the dashboard:
// expense normalization, calendar gap-filling, per-day and per-category totals
// and y-axis ticks.
package report

import (
	"sort"
	"strings"

	"cashflow/internal/core"
)

// Normalize keeps the expense records and converts them to rows.
//
// The amount is always the absolute value of the recorded one: some databases
// store expenses as negative numbers, others as positive, and both must plot as
// a positive magnitude. Categories are grouped without surrounding spaces.
func Normalize(records []core.Record, loc core.Locale) ([]core.Row, error) {
	rows := make([]core.Row, 0, len(records))
	for _, r := range records {
		if !loc.IsExpense(r.Type) {
			continue
		}
		if r.Date.IsZero() {
			return nil, &core.MissingFieldError{RecordID: r.ID, Field: "date"}
		}
		rows = append(rows, core.Row{
			Date:      r.Date,
			Amount:    r.Value.Abs(),
			Category:  strings.TrimSpace(r.Category),
			MonthYear: loc.MonthYear(r.Date),
		})
	}
	return rows, nil
}

// SortByDate returns a copy of rows ordered by date. Rows on the same day keep
// their relative order.
func SortByDate(rows []core.Row) []core.Row {
	out := append([]core.Row(nil), rows...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date.Time)
	})
	return out
}

// MonthYears lists the distinct month-year labels of rows in chronological order.
func MonthYears(rows []core.Row) []string {
	type first struct {
		label string
		date  core.Date
	}
	seen := map[string]struct{}{}
	var labels []first
	for _, r := range rows {
		if _, ok := seen[r.MonthYear]; ok {
			continue
		}
		seen[r.MonthYear] = struct{}{}
		// month-year keys sort by the first day of their month
		labels = append(labels, first{label: r.MonthYear, date: core.NewDate(r.Date.Year(), r.Date.Month(), 1)})
	}
	sort.SliceStable(labels, func(i, j int) bool {
		return labels[i].date.Before(labels[j].date.Time)
	})
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = l.label
	}
	return out
}
