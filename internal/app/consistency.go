package app

import (
	"math"
	"time"

	"medtrack/internal/dateutil"
	"medtrack/internal/domain"
)

// Adherence scoring weights: a weigh-in earns one point, the weekly
// injection two.
const (
	weighInPoints   = 1
	injectionPoints = 2
)

// Lookback bounds for the streak scans.
const (
	maxStreakLookbackDays = 120
	maxStreakWeeks        = 52
)

// WeeklyAdherence is the expected-vs-done summary for one week.
type WeeklyAdherence struct {
	Pct               int    `json:"pct"`
	WeekStart         string `json:"weekStart"`
	DoneWeighIns      int    `json:"doneWeighIns"`
	ExpectedWeighIns  int    `json:"expectedWeighIns"`
	DoneInjection     int    `json:"doneInjection"`
	ExpectedInjection int    `json:"expectedInjection"`
}

// AdherenceForWeek scores the week starting weekOffset weeks before the
// current one (0 = this week). Every scheduled day of the week counts as
// expected, including days still in the future; the percentage is 0, not
// NaN, when nothing is expected.
func AdherenceForWeek(weekOffset int, snap Snapshot, now time.Time) WeeklyAdherence {
	weekStart := dateutil.AddDays(dateutil.StartOfWeek(now), -7*weekOffset)
	weightKeys := weightDayKeys(snap.Weights)
	injectionKeys := injectionDayKeys(snap.Injections)

	a := WeeklyAdherence{WeekStart: dateutil.DayKey(weekStart)}
	for i := 0; i < 7; i++ {
		day := dateutil.AddDays(weekStart, i)
		key := dateutil.DayKey(day)
		weekday := day.Weekday()

		if IsScheduledDay(weekday, snap.Settings, domain.KindWeight) {
			a.ExpectedWeighIns++
			if weightKeys[key] {
				a.DoneWeighIns++
			}
		}
		if IsScheduledDay(weekday, snap.Settings, domain.KindInjection) {
			a.ExpectedInjection = 1
			if injectionKeys[key] {
				a.DoneInjection = 1
			}
		}
	}

	expected := a.ExpectedWeighIns*weighInPoints + a.ExpectedInjection*injectionPoints
	done := a.DoneWeighIns*weighInPoints + a.DoneInjection*injectionPoints
	if expected > 0 {
		a.Pct = int(math.Round(100 * float64(done) / float64(expected)))
	}
	return a
}

// WeighInStreak counts consecutive satisfied weigh-in days scanning
// strictly backward from today. Non-scheduled days are skipped without
// breaking the streak; the first scheduled day without a matching record
// ends it. A single gap anywhere terminates the count at that point.
func WeighInStreak(snap Snapshot, now time.Time) int {
	weightKeys := weightDayKeys(snap.Weights)
	streak := 0
	for i := 0; i <= maxStreakLookbackDays; i++ {
		day := dateutil.AddDays(now, -i)
		if !IsScheduledDay(dateutil.StartOfDay(day).Weekday(), snap.Settings, domain.KindWeight) {
			continue
		}
		if !weightKeys[dateutil.DayKey(day)] {
			break
		}
		streak++
	}
	return streak
}

// InjectionStreak counts consecutive weeks, scanning backward from the
// current week, whose scheduled injection day has a matching record.
func InjectionStreak(snap Snapshot, now time.Time) int {
	injectionKeys := injectionDayKeys(snap.Injections)
	weekStart := dateutil.StartOfWeek(now)
	streak := 0
	for w := 0; w < maxStreakWeeks; w++ {
		start := dateutil.AddDays(weekStart, -7*w)
		delta := (int(*snap.Settings.InjectionDay) - int(start.Weekday()) + 7) % 7
		day := dateutil.AddDays(start, delta)
		if !injectionKeys[dateutil.DayKey(day)] {
			break
		}
		streak++
	}
	return streak
}
