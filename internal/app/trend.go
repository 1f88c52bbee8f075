package app

import (
	"sort"
	"time"

	"medtrack/internal/dateutil"
	"medtrack/internal/domain"
)

// Delta horizons for the dashboard, in days.
var deltaHorizons = []int{7, 14, 30}

// WeightDeltas holds the latest weight and its change against the closest
// sample at-or-before each horizon. A nil delta means no sample was old
// enough; it is never reported as zero.
type WeightDeltas struct {
	LastKg float64   `json:"lastKg"`
	LastAt time.Time `json:"lastAt"`
	D7     *float64  `json:"d7"`
	D14    *float64  `json:"d14"`
	D30    *float64  `json:"d30"`
}

// ComputeWeightDeltas derives the 7/14/30-day weight deltas. For each
// horizon the comparison sample is the one with the greatest timestamp
// at-or-before last minus that many calendar days; no interpolation.
// Returns nil when there are no weight records.
func ComputeWeightDeltas(weights []domain.WeightRecord) *WeightDeltas {
	if len(weights) == 0 {
		return nil
	}
	asc := weightsAscending(weights)
	last := asc[len(asc)-1]
	out := &WeightDeltas{LastKg: last.WeightKg, LastAt: last.Timestamp}

	for _, h := range deltaHorizons {
		cutoff := last.Timestamp.AddDate(0, 0, -h)
		var candidate *domain.WeightRecord
		for i := len(asc) - 1; i >= 0; i-- {
			if !asc[i].Timestamp.After(cutoff) {
				candidate = &asc[i]
				break
			}
		}
		if candidate == nil {
			continue
		}
		d := last.WeightKg - candidate.WeightKg
		switch h {
		case 7:
			out.D7 = &d
		case 14:
			out.D14 = &d
		case 30:
			out.D30 = &d
		}
	}
	return out
}

// Regularity summarizes inter-injection intervals.
type Regularity struct {
	MeanIntervalDays   float64 `json:"meanIntervalDays"`
	OnScheduleFraction float64 `json:"onScheduleFraction"`
	Intervals          int     `json:"intervals"`
}

// On-schedule band for a weekly injection, in days.
const (
	onScheduleMinDays = 6.0
	onScheduleMaxDays = 8.0
)

// ComputeRegularity derives the mean inter-injection interval and the
// fraction of intervals inside the 6-8 day band. Intervals are fractional
// days from real elapsed time. Returns nil (undefined, not zero) with
// fewer than two records.
func ComputeRegularity(injections []domain.InjectionRecord) *Regularity {
	if len(injections) < 2 {
		return nil
	}
	asc := injectionsAscending(injections)
	var sum float64
	onSchedule := 0
	n := len(asc) - 1
	for i := 0; i < n; i++ {
		days := asc[i+1].Timestamp.Sub(asc[i].Timestamp).Hours() / 24
		sum += days
		if days >= onScheduleMinDays && days <= onScheduleMaxDays {
			onSchedule++
		}
	}
	return &Regularity{
		MeanIntervalDays:   sum / float64(n),
		OnScheduleFraction: float64(onSchedule) / float64(n),
		Intervals:          n,
	}
}

// WeightTrend is the first-to-last change over a caller-selected window.
type WeightTrend struct {
	DeltaKg   float64 `json:"deltaKg"`
	PerWeekKg float64 `json:"perWeekKg"`
	Samples   int     `json:"samples"`
}

// ComputeWeightTrend derives the total delta and per-week slope over the
// given (already window-filtered) samples. Elapsed days are floored to 1
// so two same-instant samples cannot blow up the division. Returns nil
// with fewer than two samples.
func ComputeWeightTrend(weights []domain.WeightRecord) *WeightTrend {
	if len(weights) < 2 {
		return nil
	}
	asc := weightsAscending(weights)
	first := asc[0]
	last := asc[len(asc)-1]

	elapsedDays := last.Timestamp.Sub(first.Timestamp).Hours() / 24
	if elapsedDays < 1 {
		elapsedDays = 1
	}
	delta := last.WeightKg - first.WeightKg
	return &WeightTrend{
		DeltaKg:   delta,
		PerWeekKg: delta / (elapsedDays / 7),
		Samples:   len(asc),
	}
}

// ComputeMeasurementDeltas compares the first and last measurement in the
// given window per field. Only fields present at both endpoints produce a
// delta; absent fields are skipped, never treated as zero.
func ComputeMeasurementDeltas(measurements []domain.MeasurementRecord) map[string]float64 {
	if len(measurements) < 2 {
		return nil
	}
	sorted := make([]domain.MeasurementRecord, len(measurements))
	copy(sorted, measurements)
	sort.Slice(sorted, func(i, j int) bool {
		return dateutil.CompareDayKeys(sorted[i].Day, sorted[j].Day) < 0
	})
	first := sorted[0]
	last := sorted[len(sorted)-1]

	deltas := map[string]float64{}
	for _, field := range domain.MeasurementFields {
		a := first.FieldValue(field)
		b := last.FieldValue(field)
		if a == nil || b == nil {
			continue
		}
		deltas[field] = *b - *a
	}
	if len(deltas) == 0 {
		return nil
	}
	return deltas
}

// WeightsWithinDays filters weights to the last n days from now. The
// engines above are window-agnostic; callers apply this first.
func WeightsWithinDays(weights []domain.WeightRecord, n int, now time.Time) []domain.WeightRecord {
	cutoff := now.AddDate(0, 0, -n)
	var out []domain.WeightRecord
	for _, w := range weights {
		if !w.Timestamp.Before(cutoff) {
			out = append(out, w)
		}
	}
	return out
}

// MeasurementsWithinDays filters measurements to the last n days from now.
func MeasurementsWithinDays(measurements []domain.MeasurementRecord, n int, now time.Time) []domain.MeasurementRecord {
	cutoffKey := dateutil.DayKey(dateutil.AddDays(now, -n))
	var out []domain.MeasurementRecord
	for _, m := range measurements {
		if dateutil.CompareDayKeys(m.Day, cutoffKey) >= 0 {
			out = append(out, m)
		}
	}
	return out
}
