package report

import "cashflow/internal/core"

// FillCalendarGaps returns rows plus one zero-amount row, tagged with the
// locale's sentinel category, for every day between the earliest and latest
// date that has no row. The input slice is not modified and output order is
// unspecified.
func FillCalendarGaps(rows []core.Row, loc core.Locale) []core.Row {
	if len(rows) == 0 {
		return []core.Row{}
	}
	present := make(map[string]struct{}, len(rows))
	minDate, maxDate := rows[0].Date, rows[0].Date
	for _, r := range rows {
		present[r.Date.Key()] = struct{}{}
		if r.Date.Before(minDate.Time) {
			minDate = r.Date
		}
		if r.Date.After(maxDate.Time) {
			maxDate = r.Date
		}
	}

	out := make([]core.Row, len(rows), len(rows)+len(present))
	copy(out, rows)
	for d := minDate; !d.After(maxDate.Time); d = d.AddDays(1) {
		if _, ok := present[d.Key()]; ok {
			continue
		}
		out = append(out, core.Row{
			Date:      d,
			Amount:    core.Money{},
			Category:  loc.Sentinel,
			MonthYear: loc.MonthYear(d),
			Synthetic: true,
		})
	}
	return out
}
