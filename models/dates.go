package models

import (
	"time"
)

// DateOf truncates t to its calendar date, expressed as midnight UTC.
// The calendar date is taken in t's own location.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole calendar days from 'from' to 'to' (negative if to is earlier)
func DaysBetween(from, to time.Time) int {
	return int(DateOf(to).Sub(DateOf(from)) / (24 * time.Hour))
}
