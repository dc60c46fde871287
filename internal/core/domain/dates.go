package domain

import "time"

// DateOnly truncates a timestamp to midnight UTC so that day arithmetic
// ignores time-of-day and timezone offsets
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CalendarDaysBetween counts whole calendar days from a to b. Negative
// when b precedes a.
func CalendarDaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}

// SameCalendarDay reports whether two timestamps fall on the same UTC day
func SameCalendarDay(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}
