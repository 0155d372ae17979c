package model

import "time"

// WeekStart truncates a date to the Monday starting its ISO week. Two
// expenses fall in the same week bucket iff their truncated dates are
// equal. The result is normalized to midnight UTC so it can serve as a map
// key regardless of the input's location.
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
