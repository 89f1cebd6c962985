// Package sources reads and writes records in tabular form (CSV files,
// spreadsheet ranges) and defines the ports the rest of the app consumes.
package sources

import (
	"fmt"
	"strings"

	"cashflow/internal/core"
)

// Header is the column layout written by the ingest command.
var Header = []string{"id", "user_id", "date", "description", "amount", "qty", "category", "type"}

type column int

const (
	colID column = iota
	colUserID
	colDate
	colDescription
	colAmount
	colQty
	colCategory
	colType
	numColumns
)

var columnNames = [numColumns]string{"id", "user_id", "date", "description", "amount", "qty", "category", "type"}

// aliases lists accepted header names per column, including the labels of
// older exports.
var aliases = map[string]column{
	"id":          colID,
	"user_id":     colUserID,
	"date":        colDate,
	"tanggal":     colDate,
	"description": colDescription,
	"spent":       colDescription,
	"nama":        colDescription,
	"amount":      colAmount,
	"value":       colAmount,
	"nominal":     colAmount,
	"out":         colAmount,
	"qty":         colQty,
	"jumlah":      colQty,
	"category":    colCategory,
	"kategori":    colCategory,
	"type":        colType,
	"tipe":        colType,
}

var required = []column{colDate, colAmount, colCategory, colType}

// Columns is the position of each known column in a header row, -1 if absent.
type Columns [numColumns]int

// MapHeader locates columns by name. Matching ignores case and surrounding
// spaces; the first occurrence of a column wins.
func MapHeader(header []string) (Columns, error) {
	var cols Columns
	for i := range cols {
		cols[i] = -1
	}
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if c, ok := aliases[key]; ok && cols[c] == -1 {
			cols[c] = i
		}
	}

	var absent []string
	for _, c := range required {
		if cols[c] == -1 {
			absent = append(absent, columnNames[c])
		}
	}
	if len(absent) > 0 {
		return cols, fmt.Errorf("missing required column(s): %s", strings.Join(absent, ", "))
	}
	return cols, nil
}

// Record converts one data row. line is used in error messages only.
// Date, amount and qty cells are trimmed before parsing; text cells are kept
// verbatim so that a written file reads back unchanged.
func (c Columns) Record(row []string, line int) (core.Record, error) {
	get := func(col column) string {
		idx := c[col]
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return row[idx]
	}
	num := func(col column) string { return strings.TrimSpace(get(col)) }

	date, err := core.ParseDate(num(colDate))
	if err != nil {
		return core.Record{}, fmt.Errorf("line %d: %w", line, err)
	}
	amount, err := core.ParseMoney(num(colAmount))
	if err != nil {
		return core.Record{}, fmt.Errorf("line %d: %w", line, err)
	}
	var qty core.Money
	if raw := num(colQty); raw != "" {
		if qty, err = core.ParseMoney(raw); err != nil {
			return core.Record{}, fmt.Errorf("line %d: qty: %w", line, err)
		}
	}

	rec := core.Record{
		ID:          get(colID),
		UserID:      get(colUserID),
		Date:        date,
		Description: get(colDescription),
		Value:       amount,
		Qty:         qty,
		Category:    get(colCategory),
		Type:        get(colType),
	}
	if err := rec.Validate(); err != nil {
		return core.Record{}, fmt.Errorf("line %d: %w", line, err)
	}
	return rec, nil
}

// Fields returns r in Header order.
func Fields(r core.Record) []string {
	return []string{
		r.ID,
		r.UserID,
		core.FormatDate(r.Date),
		r.Description,
		r.Value.String(),
		r.Qty.String(),
		r.Category,
		r.Type,
	}
}

// IsBlank reports whether every cell of row is empty.
func IsBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
