// Package app holds the application services and the pure computation
// engines they drive. Every engine function takes an already-fetched
// Snapshot plus "now" and returns plain values with no side effects; only
// the services touch repositories.
package app

import (
	"context"
	"fmt"
	"sort"

	"medtrack/internal/dateutil"
	"medtrack/internal/domain"
)

// Snapshot is the full record state the engines compute over.
type Snapshot struct {
	Injections   []domain.InjectionRecord
	Weights      []domain.WeightRecord
	Measurements []domain.MeasurementRecord
	Settings     domain.Settings
}

// Stores bundles the record repositories behind one snapshot fetch.
type Stores struct {
	Injections   domain.InjectionRepository
	Weights      domain.WeightRepository
	Measurements domain.MeasurementRepository
	Settings     domain.SettingsRepository
}

// Snapshot fetches all records plus normalized settings. The engines are
// never invoked with partial data: any read error aborts the whole fetch.
func (s Stores) Snapshot(ctx context.Context) (Snapshot, error) {
	injections, err := s.Injections.ListInjections(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list injections: %w", err)
	}
	weights, err := s.Weights.ListWeights(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list weights: %w", err)
	}
	measurements, err := s.Measurements.ListMeasurements(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list measurements: %w", err)
	}
	settings, err := s.Settings.GetSettings(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("get settings: %w", err)
	}
	snap := Snapshot{
		Injections:   injections,
		Weights:      weights,
		Measurements: measurements,
	}
	if settings != nil {
		snap.Settings = settings.Normalize()
	} else {
		snap.Settings = domain.Settings{}.Normalize()
	}
	return snap, nil
}

// weightDayKeys returns the set of day keys that have a weight record.
func weightDayKeys(ws []domain.WeightRecord) map[string]bool {
	keys := make(map[string]bool, len(ws))
	for _, w := range ws {
		keys[dateutil.DayKey(w.Timestamp)] = true
	}
	return keys
}

// injectionDayKeys returns the set of day keys that have an injection.
func injectionDayKeys(is []domain.InjectionRecord) map[string]bool {
	keys := make(map[string]bool, len(is))
	for _, r := range is {
		keys[dateutil.DayKey(r.Timestamp)] = true
	}
	return keys
}

// measurementDayKeys returns the set of day keys that have a measurement.
func measurementDayKeys(ms []domain.MeasurementRecord) map[string]bool {
	keys := make(map[string]bool, len(ms))
	for _, m := range ms {
		keys[m.Day] = true
	}
	return keys
}

// latestMeasurementDay returns the most recent measurement day key, or ""
// when there is none.
func latestMeasurementDay(ms []domain.MeasurementRecord) string {
	latest := ""
	for _, m := range ms {
		if dateutil.CompareDayKeys(m.Day, latest) > 0 {
			latest = m.Day
		}
	}
	return latest
}

// weightsAscending returns a copy of ws sorted by ascending timestamp.
func weightsAscending(ws []domain.WeightRecord) []domain.WeightRecord {
	out := make([]domain.WeightRecord, len(ws))
	copy(out, ws)
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out
}

// injectionsAscending returns a copy of is sorted by ascending timestamp.
func injectionsAscending(is []domain.InjectionRecord) []domain.InjectionRecord {
	out := make([]domain.InjectionRecord, len(is))
	copy(out, is)
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out
}
