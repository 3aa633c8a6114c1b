// Package dateutil works with the civil dates the documents store as
// YYYY-MM-DD strings.
package dateutil

import (
	"fmt"
	"time"
)

// Layout is the wire format for every date in the documents.
const Layout = "2006-01-02"

// Parse parses a YYYY-MM-DD string.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// Format renders a time as YYYY-MM-DD.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Today returns the current local date as YYYY-MM-DD.
func Today() string {
	return Format(time.Now())
}

// AddDays adds days (possibly negative) to a YYYY-MM-DD date. It returns ""
// when the input does not parse, mirroring how callers treat unset dates.
func AddDays(date string, days int) string {
	t, err := Parse(date)
	if err != nil {
		return ""
	}
	return Format(t.AddDate(0, 0, days))
}

// DaysBetween returns the number of whole days from a to b, positive when b
// is later. Unparsable inputs yield 0.
func DaysBetween(a, b string) int {
	ta, err := Parse(a)
	if err != nil {
		return 0
	}
	tb, err := Parse(b)
	if err != nil {
		return 0
	}
	return int(tb.Sub(ta).Hours() / 24)
}

// IsBefore reports whether date is strictly before today. An item whose
// nextCheck satisfies this is due for a stock check. Unparsable or empty
// dates are never due.
func IsBefore(date, today string) bool {
	td, err := Parse(date)
	if err != nil {
		return false
	}
	tt, err := Parse(today)
	if err != nil {
		return false
	}
	return td.Before(tt)
}
