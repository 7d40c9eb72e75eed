package service

import (
	"time"

	"github.com/iSadist/chronos/internal"
)

const dateLayout = "2006-01-02"

// ParseDate parses an entry date. The UI sends either a plain ISO date or
// a full RFC3339 timestamp; either way only the calendar day matters.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, internal.NewAppError(400, "Invalid date format. Please use ISO 8601 format.")
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// StartOfMonth returns the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns the last day of t's month. Day zero of the next
// month is the last day of this one.
func EndOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location())
}

// WeekNumber computes the week of t within its own calendar year:
// ceil((daysSinceJan1 + jan1Weekday + 1) / 7). Week 1 starts on Jan 1
// regardless of weekday, so the number is comparable across clients that
// used the same formula.
func WeekNumber(t time.Time) int {
	jan1 := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	days := t.YearDay() - 1
	return (days + int(jan1.Weekday()) + 1 + 6) / 7
}
