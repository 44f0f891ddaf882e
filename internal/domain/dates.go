package domain

import (
	"fmt"
	"math"
	"time"
)

// DayLayout is the storage and display format for civil dates.
const DayLayout = "2006-01-02"

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Date builds a civil date at midnight UTC.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD string.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// FormatDay renders t as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}

// AddDays shifts t by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// DaysBetween returns the whole number of days from a to b, rounded to the
// nearest day. Negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	return int(math.Round(FractionalDays(a, b)))
}

// FractionalDays returns the exact number of days from a to b.
func FractionalDays(a, b time.Time) float64 {
	return b.Sub(a).Hours() / 24
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}

// IsWeekend reports whether t is a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// MinDay returns the earlier of a and b.
func MinDay(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}

// MaxDay returns the later of a and b.
func MaxDay(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}
