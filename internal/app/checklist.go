package app

import (
	"time"

	"medtrack/internal/dateutil"
	"medtrack/internal/domain"
)

// DayCutoff is the local wall-clock time after which today's still-open
// required items carry a warning flag.
const DayCutoff = "12:00"

// BuildChecklistForDay derives the expected items for one calendar day.
// A weight item appears on configured weigh days, an injection item on the
// injection day, and a measurement item only when the day is exactly the
// next measurement due date. Items are late when their day is strictly
// before today and not done.
func BuildChecklistForDay(day time.Time, snap Snapshot, now time.Time) []domain.ChecklistItem {
	dayKey := dateutil.DayKey(day)
	todayKey := dateutil.DayKey(now)
	weekday := dateutil.StartOfDay(day).Weekday()

	var items []domain.ChecklistItem

	if IsScheduledDay(weekday, snap.Settings, domain.KindWeight) {
		items = append(items, newItem(domain.KindWeight, dayKey, true, weightDayKeys(snap.Weights)[dayKey]))
	}
	if IsScheduledDay(weekday, snap.Settings, domain.KindInjection) {
		items = append(items, newItem(domain.KindInjection, dayKey, true, injectionDayKeys(snap.Injections)[dayKey]))
	}

	// Cadence reminders are anchored to an actual prior measurement; a
	// fresh store prompts nothing.
	lastDay := latestMeasurementDay(snap.Measurements)
	due := NextMeasurementDue(lastDay, snap.Settings.MeasurementCadenceDays, now)
	if lastDay != "" && dayKey == due {
		// Measurement reminders are always optional.
		items = append(items, newItem(domain.KindMeasurement, dayKey, false, measurementDayKeys(snap.Measurements)[dayKey]))
	}

	for i := range items {
		it := &items[i]
		if dateutil.CompareDayKeys(it.DateKey, todayKey) < 0 && !it.Done {
			it.Status = domain.StatusLate
		}
		it.WarnAfterCutoff = it.DateKey == todayKey && it.Required && !it.Done &&
			dateutil.IsAfterCutoff(now, DayCutoff)
	}
	return items
}

// BuildUpcoming projects the checklist over today+1 .. today+days,
// keeping only days that have at least one item.
func BuildUpcoming(days int, snap Snapshot, now time.Time) []domain.DayChecklist {
	var out []domain.DayChecklist
	for i := 1; i <= days; i++ {
		day := dateutil.AddDays(now, i)
		items := BuildChecklistForDay(day, snap, now)
		if len(items) == 0 {
			continue
		}
		out = append(out, domain.DayChecklist{DateKey: dateutil.DayKey(day), Items: items})
	}
	return out
}

// BuildOverdue scans today-1 .. today-daysBack for required items that were
// never satisfied, most recent first. This is a backfill scan over current
// records, not a persisted missed log: re-running it with unchanged records
// yields identical output.
func BuildOverdue(daysBack int, snap Snapshot, now time.Time) []domain.ChecklistItem {
	var out []domain.ChecklistItem
	for i := 1; i <= daysBack; i++ {
		day := dateutil.AddDays(now, -i)
		for _, it := range BuildChecklistForDay(day, snap, now) {
			if !it.Required || it.Done {
				continue
			}
			it.Status = domain.StatusLate
			out = append(out, it)
		}
	}
	return out
}

func newItem(kind domain.RecordKind, dayKey string, required, done bool) domain.ChecklistItem {
	status := domain.StatusPending
	if done {
		status = domain.StatusDone
	}
	return domain.ChecklistItem{
		Kind:     kind,
		DateKey:  dayKey,
		Required: required,
		Done:     done,
		Status:   status,
	}
}
