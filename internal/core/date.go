package core

import (
	"strings"
	"time"
)

// DateLayout is the human readable form used by the note service exports ("May 1, 2022").
const DateLayout = "January 2, 2006"

// ParseDate parses s using DateLayout. Leading and trailing spaces are ignored;
// anything else that does not match the layout is a *ParseError.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, &ParseError{Value: s, Layout: DateLayout, Err: err}
	}
	return DateOf(t), nil
}

// FormatDate is the inverse of ParseDate.
func FormatDate(d Date) string {
	return d.Format(DateLayout)
}
