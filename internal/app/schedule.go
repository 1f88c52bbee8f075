package app

import (
	"time"

	"medtrack/internal/dateutil"
	"medtrack/internal/domain"
)

// NextWeeklyOccurrence returns the smallest instant strictly after "from"
// (or at it, if the slot is still ahead on the same day) that falls on the
// given weekday at the given "HH:mm" wall-clock time. When from lands
// exactly on the slot, the occurrence rolls to the following week.
func NextWeeklyOccurrence(weekday time.Weekday, clock string, from time.Time) time.Time {
	from = from.In(time.Local)
	delta := (int(weekday) - int(from.Weekday()) + 7) % 7
	candidate := dateutil.AtTime(dateutil.AddDays(from, delta), clock)
	if delta == 0 && !candidate.After(from) {
		candidate = dateutil.AtTime(dateutil.AddDays(from, 7), clock)
	}
	return candidate
}

// IsScheduledDay reports whether the given weekday requires a record of the
// given kind. Measurements follow a cadence, not a weekday, so they are
// never "scheduled" here.
func IsScheduledDay(weekday time.Weekday, settings domain.Settings, kind domain.RecordKind) bool {
	switch kind {
	case domain.KindWeight:
		return settings.WeighOn(weekday)
	case domain.KindInjection:
		return settings.InjectionDay != nil && weekday == *settings.InjectionDay
	}
	return false
}

// NextMeasurementDue returns the day key on which the next body
// measurement is due. The due date is the last measurement day plus the
// cadence; once overdue it sticks to today every day until satisfied
// rather than receding into the past. With no prior measurement it is due
// today.
func NextMeasurementDue(lastMeasurementDay string, cadenceDays int, today time.Time) string {
	todayKey := dateutil.DayKey(today)
	if lastMeasurementDay == "" {
		return todayKey
	}
	last, err := dateutil.ParseDayKey(lastMeasurementDay)
	if err != nil {
		return todayKey
	}
	due := dateutil.DayKey(dateutil.AddDays(last, cadenceDays))
	if dateutil.CompareDayKeys(due, todayKey) < 0 {
		return todayKey
	}
	return due
}

// NextReminder resolves the free-form weekly reminder, if configured.
func NextReminder(settings domain.Settings, from time.Time) *time.Time {
	if settings.ReminderDay == nil {
		return nil
	}
	t := NextWeeklyOccurrence(*settings.ReminderDay, settings.ReminderTime, from)
	return &t
}
