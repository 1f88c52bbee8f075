package app

import (
	"context"
	"errors"
	"time"
)

// DashboardService aggregates the derived numbers the dashboard renders.
type DashboardService struct {
	stores Stores
}

// NewDashboardService creates a DashboardService over the given stores.
func NewDashboardService(stores Stores) *DashboardService {
	return &DashboardService{stores: stores}
}

// Dashboard is the one-shot aggregate for the main screen.
type Dashboard struct {
	Deltas          *WeightDeltas   `json:"deltas"`
	Adherence       WeeklyAdherence `json:"adherence"`
	WeighInStreak   int             `json:"weighInStreak"`
	InjectionStreak int             `json:"injectionStreak"`
	Regularity      *Regularity     `json:"regularity"`
}

// Get computes the dashboard for the week weekOffset weeks back (0 = the
// current week).
func (s *DashboardService) Get(ctx context.Context, weekOffset int) (Dashboard, error) {
	if weekOffset < 0 {
		return Dashboard{}, errors.New("week offset must be >= 0")
	}
	snap, err := s.stores.Snapshot(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	now := time.Now()
	return Dashboard{
		Deltas:          ComputeWeightDeltas(snap.Weights),
		Adherence:       AdherenceForWeek(weekOffset, snap, now),
		WeighInStreak:   WeighInStreak(snap, now),
		InjectionStreak: InjectionStreak(snap, now),
		Regularity:      ComputeRegularity(snap.Injections),
	}, nil
}

// Report is the window-filtered summary for the clinical report view.
type Report struct {
	WindowDays        int                `json:"windowDays"`
	Trend             *WeightTrend       `json:"trend"`
	MeasurementDeltas map[string]float64 `json:"measurementDeltas"`
	Adherence         WeeklyAdherence    `json:"adherence"`
	Regularity        *Regularity        `json:"regularity"`
}

// Report computes trend and measurement change over the last windowDays.
func (s *DashboardService) Report(ctx context.Context, windowDays int) (Report, error) {
	if windowDays < 1 {
		return Report{}, errors.New("window must be >= 1 day")
	}
	snap, err := s.stores.Snapshot(ctx)
	if err != nil {
		return Report{}, err
	}
	now := time.Now()
	return Report{
		WindowDays:        windowDays,
		Trend:             ComputeWeightTrend(WeightsWithinDays(snap.Weights, windowDays, now)),
		MeasurementDeltas: ComputeMeasurementDeltas(MeasurementsWithinDays(snap.Measurements, windowDays, now)),
		Adherence:         AdherenceForWeek(0, snap, now),
		Regularity:        ComputeRegularity(snap.Injections),
	}, nil
}
