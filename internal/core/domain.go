package core

import (
	"errors"
	"strings"
	"time"
)

const dayKeyLayout = "2006-01-02"

type (
	// Date is a calendar day. The time part is always midnight UTC.
	Date struct {
		time.Time
	}

	// Record is one entry as stored in the remote database or the CSV export.
	Record struct {
		ID          string
		UserID      string
		Date        Date
		Description string
		Value       Money // signed, as recorded at the source
		Qty         Money
		Category    string
		Type        string
	}

	// Row is a normalized expense used for aggregation.
	Row struct {
		Date      Date
		Amount    Money // never negative
		Category  string
		MonthYear string
		// Synthetic marks zero rows inserted by calendar gap-filling.
		Synthetic bool
	}
)

var (
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyCategory = errors.New("empty category")
	ErrEmptyType     = errors.New("empty type")
)

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf drops the clock part of t, keeping the calendar day t falls on in its own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, int(m), d)
}

// AddDays returns the date n days later (or earlier for negative n).
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

// Key returns the ISO form of the day, used for grouping and display.
func (d Date) Key() string {
	return d.Format(dayKeyLayout)
}

// Month returns the month number (1-12).
func (d Date) Month() int {
	return int(d.Time.Month())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (r Record) Validate() error {
	if err := r.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.Category) == "" {
		return ErrEmptyCategory
	}
	if strings.TrimSpace(r.Type) == "" {
		return ErrEmptyType
	}
	return nil
}
