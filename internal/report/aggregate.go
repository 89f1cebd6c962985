package report

import (
	"sort"
	"strings"

	"cashflow/internal/core"
)

// SelectionKind tells how a dropdown value was interpreted.
type SelectionKind int

const (
	// SelectAll means no month filter was asked for.
	SelectAll SelectionKind = iota
	// SelectMonth restricts rows to one observed month-year.
	SelectMonth
	// SelectFallback is an unrecognized value, treated as SelectAll.
	SelectFallback
)

// Selection is a resolved month filter.
type Selection struct {
	Kind      SelectionKind
	MonthYear string
	// Requested is the raw value the user picked.
	Requested string
}

// ResolveSelection interprets value against the observed month-year labels.
func ResolveSelection(value string, observed []string, loc core.Locale) Selection {
	v := strings.TrimSpace(value)
	switch {
	case v == "" || v == loc.AllLabel:
		return Selection{Kind: SelectAll, Requested: value}
	case contains(observed, v):
		return Selection{Kind: SelectMonth, MonthYear: v, Requested: value}
	default:
		return Selection{Kind: SelectFallback, Requested: value}
	}
}

// Match reports whether r is inside the selection.
func (s Selection) Match(r core.Row) bool {
	if s.Kind != SelectMonth {
		return true
	}
	return r.MonthYear == s.MonthYear
}

// Fallback reports whether the requested value was not recognized.
func (s Selection) Fallback() bool {
	return s.Kind == SelectFallback
}

// ByDay sums amounts per calendar day inside sel, ordered by ascending date.
func ByDay(rows []core.Row, sel Selection) []core.DailyTotal {
	sums := map[string]*core.DailyTotal{}
	for _, r := range rows {
		if !sel.Match(r) {
			continue
		}
		key := r.Date.Key()
		t, ok := sums[key]
		if !ok {
			t = &core.DailyTotal{Date: r.Date, DateLabel: key}
			sums[key] = t
		}
		t.Amount = t.Amount.Add(r.Amount)
	}
	out := make([]core.DailyTotal, 0, len(sums))
	for _, t := range sums {
		t.Display = t.Amount.Display()
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date.Time)
	})
	return out
}

// ByCategory sums amounts per category inside sel, ordered by ascending total
// so that horizontal bars render smallest to largest. Equal totals are ordered
// by category name.
func ByCategory(rows []core.Row, sel Selection) []core.CategoryTotal {
	sums := map[string]core.Money{}
	for _, r := range rows {
		if !sel.Match(r) {
			continue
		}
		sums[r.Category] = sums[r.Category].Add(r.Amount)
	}
	out := make([]core.CategoryTotal, 0, len(sums))
	for name, amt := range sums {
		out = append(out, core.CategoryTotal{Category: name, Amount: amt, Display: amt.Display()})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c < 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
