package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"medtrack/internal/dateutil"
	"medtrack/internal/domain"
)

// Validation errors surfaced to the transport layer as bad requests.
var (
	ErrInvalidDose    = errors.New("doseMg must be a positive finite number")
	ErrInvalidWeight  = errors.New("weightKg must be a positive finite number")
	ErrInvalidSite    = errors.New("unknown injection site")
	ErrInvalidDay     = errors.New("day must be a YYYY-MM-DD date")
	ErrInvalidField   = errors.New("measurement fields must be positive finite numbers")
	ErrMissingMedName = errors.New("medicationName is required")
)

// RecordsService owns create/update/delete for the three record kinds and
// the settings row. Normalization happens here so the engines only ever
// see clean records.
type RecordsService struct {
	stores Stores
}

// NewRecordsService creates a RecordsService over the given stores.
func NewRecordsService(stores Stores) *RecordsService {
	return &RecordsService{stores: stores}
}

// ListInjections returns all injections, most recent first.
func (s *RecordsService) ListInjections(ctx context.Context) ([]domain.InjectionRecord, error) {
	return s.stores.Injections.ListInjections(ctx)
}

// SaveInjection validates and stores an injection. A missing ID means
// create; identity is immutable once assigned. Symptom scores are clamped
// to 0-10 and unknown symptom keys dropped.
func (s *RecordsService) SaveInjection(ctx context.Context, rec domain.InjectionRecord) (domain.InjectionRecord, error) {
	if rec.MedicationName == "" {
		return rec, ErrMissingMedName
	}
	if !positiveFinite(rec.DoseMg) {
		return rec, ErrInvalidDose
	}
	if !domain.ValidSite(rec.Site) {
		return rec, ErrInvalidSite
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	rec.Symptoms = clampSymptoms(rec.Symptoms)
	if err := s.stores.Injections.UpsertInjection(ctx, rec); err != nil {
		return rec, fmt.Errorf("save injection: %w", err)
	}
	return rec, nil
}

// DeleteInjection removes an injection by ID.
func (s *RecordsService) DeleteInjection(ctx context.Context, id string) (bool, error) {
	return s.stores.Injections.DeleteInjection(ctx, id)
}

// ListWeights returns all weigh-ins, most recent first.
func (s *RecordsService) ListWeights(ctx context.Context) ([]domain.WeightRecord, error) {
	return s.stores.Weights.ListWeights(ctx)
}

// SaveWeight validates and stores a weigh-in.
func (s *RecordsService) SaveWeight(ctx context.Context, rec domain.WeightRecord) (domain.WeightRecord, error) {
	if !positiveFinite(rec.WeightKg) {
		return rec, ErrInvalidWeight
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	if err := s.stores.Weights.UpsertWeight(ctx, rec); err != nil {
		return rec, fmt.Errorf("save weight: %w", err)
	}
	return rec, nil
}

// DeleteWeight removes a weigh-in by ID.
func (s *RecordsService) DeleteWeight(ctx context.Context, id string) (bool, error) {
	return s.stores.Weights.DeleteWeight(ctx, id)
}

// ListMeasurements returns all measurements, most recent day first.
func (s *RecordsService) ListMeasurements(ctx context.Context) ([]domain.MeasurementRecord, error) {
	return s.stores.Measurements.ListMeasurements(ctx)
}

// SaveMeasurement validates and stores a measurement. Absent fields stay
// absent; zero is not a substitute for "not measured".
func (s *RecordsService) SaveMeasurement(ctx context.Context, rec domain.MeasurementRecord) (domain.MeasurementRecord, error) {
	if _, err := dateutil.ParseDayKey(rec.Day); err != nil {
		return rec, ErrInvalidDay
	}
	for _, field := range domain.MeasurementFields {
		if v := rec.FieldValue(field); v != nil && !positiveFinite(*v) {
			return rec, ErrInvalidField
		}
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if err := s.stores.Measurements.UpsertMeasurement(ctx, rec); err != nil {
		return rec, fmt.Errorf("save measurement: %w", err)
	}
	return rec, nil
}

// DeleteMeasurement removes a measurement by ID.
func (s *RecordsService) DeleteMeasurement(ctx context.Context, id string) (bool, error) {
	return s.stores.Measurements.DeleteMeasurement(ctx, id)
}

// GetSettings returns the normalized settings, falling back to the full
// defaults when none were ever saved.
func (s *RecordsService) GetSettings(ctx context.Context) (domain.Settings, error) {
	stored, err := s.stores.Settings.GetSettings(ctx)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	if stored == nil {
		return domain.Settings{}.Normalize(), nil
	}
	return stored.Normalize(), nil
}

// SaveSettings normalizes once and persists.
func (s *RecordsService) SaveSettings(ctx context.Context, settings domain.Settings) (domain.Settings, error) {
	normalized := settings.Normalize()
	if err := s.stores.Settings.SaveSettings(ctx, normalized); err != nil {
		return normalized, fmt.Errorf("save settings: %w", err)
	}
	return normalized, nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func clampSymptoms(in map[string]int) map[string]int {
	out := make(map[string]int, len(domain.SymptomKeys))
	for _, key := range domain.SymptomKeys {
		v := in[key]
		if v < 0 {
			v = 0
		}
		if v > 10 {
			v = 10
		}
		out[key] = v
	}
	return out
}
