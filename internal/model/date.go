package model

import (
	"strings"
	"time"
)

// DateFormat is the calendar date layout used for storage and display.
const DateFormat = "2006-01-02"

// MonthFormat is the layout of month keys such as "2025-03".
const MonthFormat = "2006-01"

var parseLayouts = []string{
	DateFormat,
	"2006-1-2",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
}

// ParseDate reads a date-valued string as a calendar date at local midnight.
// Timestamps keep the calendar day written in their own offset.
// Empty or malformed input yields the zero time and false.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range parseLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return Day(t.Year(), t.Month(), t.Day()), true
	}
	return time.Time{}, false
}

// Day returns local midnight of the given calendar day.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

// StartOfDay truncates t to local midnight. The zero time stays zero.
func StartOfDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	t = t.Local()
	return Day(t.Year(), t.Month(), t.Day())
}

// DaysBetween returns the number of calendar days from "from" to "to".
// It counts days on the calendar rather than 24h spans so DST shifts do not
// move a due date across a window boundary.
func DaysBetween(from, to time.Time) int {
	f := from.Local()
	t := to.Local()
	fu := time.Date(f.Year(), f.Month(), f.Day(), 0, 0, 0, 0, time.UTC)
	tu := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(tu.Sub(fu).Hours() / 24)
}

// FirstOfMonth returns local midnight of the first day of t's month.
func FirstOfMonth(t time.Time) time.Time {
	t = t.Local()
	return Day(t.Year(), t.Month(), 1)
}

// MonthKey formats t as "YYYY-MM". The zero time yields "".
func MonthKey(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(MonthFormat)
}

// FormatDate formats a calendar date, or "" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(DateFormat)
}
