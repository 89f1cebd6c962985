package core

import (
	"fmt"
	"strings"
)

// Locale holds the labels that depend on the language the records were kept in.
type Locale struct {
	Code   string
	Months [12]string
	// ExpenseType is the type label that marks an outgoing entry.
	ExpenseType string
	// Sentinel is the category given to synthetic gap-fill rows.
	Sentinel string
	// AllLabel is the dropdown value meaning "no month filter".
	AllLabel string
}

var (
	English = Locale{
		Code: "en",
		Months: [12]string{
			"January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November", "December",
		},
		ExpenseType: "Expense",
		Sentinel:    "Other",
		AllLabel:    "All months",
	}

	Indonesian = Locale{
		Code: "id",
		Months: [12]string{
			"Januari", "Februari", "Maret", "April", "Mei", "Juni",
			"Juli", "Agustus", "September", "Oktober", "November", "Desember",
		},
		ExpenseType: "Pengeluaran",
		Sentinel:    "Lainnya",
		AllLabel:    "Semua Bulan",
	}
)

// LocaleFor returns the built-in locale for code ("en" or "id").
func LocaleFor(code string) (Locale, error) {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "", "en":
		return English, nil
	case "id":
		return Indonesian, nil
	default:
		return Locale{}, fmt.Errorf("unknown locale %q: must be one of [en id]", code)
	}
}

// MonthYear returns the month-year label of d, e.g. "Mei 2022".
func (l Locale) MonthYear(d Date) string {
	return fmt.Sprintf("%s %d", l.Months[d.Month()-1], d.Year())
}

// IsExpense reports whether a record type label marks an expense.
func (l Locale) IsExpense(recordType string) bool {
	return strings.EqualFold(strings.TrimSpace(recordType), l.ExpenseType)
}
