// Package dates contains the date algebra used by the scheduling engine.
// All dates cross package boundaries as ISO strings (YYYY-MM-DD); the empty
// string means "no date". The hafiz clock is a stored value, never a
// wall-clock read at query time.
package dates

import "time"

// Layout is the wire format for all engine dates.
const Layout = "2006-01-02"

// Parse converts an ISO date string to a time.Time at UTC midnight.
func Parse(s string) (time.Time, error) {
	return time.Parse(Layout, s)
}

// IsValid reports whether s is a well-formed ISO date.
func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// DayDiff returns the number of days from a to b (positive when b is later).
// An empty or malformed date on either side yields 0, which makes items with
// no next_review count as due.
func DayDiff(a, b string) int {
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

// AddDays returns the date n days after d. Empty input yields empty output.
func AddDays(d string, n int) string {
	t, err := Parse(d)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, n).Format(Layout)
}

// SubDays returns the date n days before d.
func SubDays(d string, n int) string {
	return AddDays(d, -n)
}

// Today returns the wall-clock date. Used only to initialise a hafiz clock
// that has never been set; everything else reads the stored clock.
func Today() string {
	return time.Now().Format(Layout)
}

// Max returns the later of two dates, treating empty as earliest.
func Max(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	if DayDiff(a, b) >= 0 {
		return b
	}
	return a
}
