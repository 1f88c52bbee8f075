// Package dateutil provides local-calendar-day keys and calendar arithmetic.
//
// A day key is the canonical "YYYY-MM-DD" string for the local calendar day
// of an instant. It is the join key between timestamped records and
// scheduled days, so everything here works in the machine's local zone and
// adds days as calendar operations, never as fixed millisecond offsets.
package dateutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DayKeyLayout is the time layout for day keys.
const DayKeyLayout = "2006-01-02"

// DayKey returns the local calendar day of t as "YYYY-MM-DD".
func DayKey(t time.Time) string {
	return t.In(time.Local).Format(DayKeyLayout)
}

// CompareDayKeys orders two day keys. The format is fixed-width and
// zero-padded, so lexicographic comparison is chronological.
func CompareDayKeys(a, b string) int {
	return strings.Compare(a, b)
}

// ParseDayKey returns local midnight of the day named by key.
func ParseDayKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(DayKeyLayout, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day key %q: %w", key, err)
	}
	return t, nil
}

// StartOfDay returns local midnight of the calendar day containing t.
func StartOfDay(t time.Time) time.Time {
	lt := t.In(time.Local)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, time.Local)
}

// StartOfWeek returns local midnight of the Monday on or before t.
// Sunday maps to an offset of 6 days back, not 0.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return AddDays(day, -offset)
}

// AddDays adds n calendar days to t. AddDate re-normalizes through the
// calendar, so month and year boundaries and DST transitions keep the
// wall-clock time rather than drifting by an hour.
func AddDays(t time.Time, n int) time.Time {
	return t.In(time.Local).AddDate(0, 0, n)
}

// AtTime returns the instant on day's calendar date at the wall-clock time
// "HH:mm". A malformed clock value falls back to midnight.
func AtTime(day time.Time, clock string) time.Time {
	h, m := ParseClock(clock)
	ld := day.In(time.Local)
	return time.Date(ld.Year(), ld.Month(), ld.Day(), h, m, 0, 0, time.Local)
}

// ParseClock splits an "HH:mm" string into hour and minute, clamped to
// valid ranges. Unparseable input yields 0, 0.
func ParseClock(clock string) (hour, minute int) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0, 0
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, 0
	}
	return h, m
}

// IsAfterCutoff reports whether the local wall-clock time-of-day of t is at
// or after the "HH:mm" cutoff on t's own calendar day.
func IsAfterCutoff(t time.Time, cutoff string) bool {
	h, m := ParseClock(cutoff)
	lt := t.In(time.Local)
	return lt.Hour() > h || (lt.Hour() == h && lt.Minute() >= m)
}

// DaysBetween returns the number of whole calendar days from a's day to
// b's day (negative when b is earlier).
func DaysBetween(a, b time.Time) int {
	da := StartOfDay(a)
	db := StartOfDay(b)
	if da.After(db) {
		return -DaysBetween(b, a)
	}
	days := 0
	for da.Before(db) {
		da = AddDays(da, 1)
		days++
	}
	return days
}
