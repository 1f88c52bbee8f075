package app_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"medtrack/internal/adapter/memory"
	"medtrack/internal/app"
	"medtrack/internal/domain"
)

func memStores() app.Stores {
	db := memory.New()
	return app.Stores{Injections: db, Weights: db, Measurements: db, Settings: db}
}

func TestSaveInjectionValidation(t *testing.T) {
	svc := app.NewRecordsService(memStores())

	tests := []struct {
		name string
		rec  domain.InjectionRecord
		want error
	}{
		{"missing medication", domain.InjectionRecord{DoseMg: 0.5, Site: domain.SiteAbdomen}, app.ErrMissingMedName},
		{"zero dose", domain.InjectionRecord{MedicationName: "semaglutide", Site: domain.SiteAbdomen}, app.ErrInvalidDose},
		{"negative dose", domain.InjectionRecord{MedicationName: "semaglutide", DoseMg: -1, Site: domain.SiteAbdomen}, app.ErrInvalidDose},
		{"NaN dose", domain.InjectionRecord{MedicationName: "semaglutide", DoseMg: math.NaN(), Site: domain.SiteAbdomen}, app.ErrInvalidDose},
		{"bad site", domain.InjectionRecord{MedicationName: "semaglutide", DoseMg: 0.5, Site: "forearm"}, app.ErrInvalidSite},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SaveInjection(context.Background(), tc.rec)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestSaveInjectionAssignsIdentityAndClampsSymptoms(t *testing.T) {
	svc := app.NewRecordsService(memStores())
	saved, err := svc.SaveInjection(context.Background(), domain.InjectionRecord{
		MedicationName: "semaglutide",
		DoseMg:         0.5,
		Site:           domain.SiteThighLeft,
		Symptoms:       map[string]int{"nausea": 14, "fatigue": -2, "heartburn": 9},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("expected a generated ID")
	}
	if saved.Timestamp.IsZero() {
		t.Fatal("expected a stamped timestamp")
	}
	if saved.Symptoms["nausea"] != 10 || saved.Symptoms["fatigue"] != 0 {
		t.Fatalf("scores not clamped: %v", saved.Symptoms)
	}
	if _, ok := saved.Symptoms["heartburn"]; ok {
		t.Fatal("unknown symptom keys must be dropped")
	}
	for _, key := range domain.SymptomKeys {
		if _, ok := saved.Symptoms[key]; !ok {
			t.Fatalf("expected %s to be present", key)
		}
	}
}

func TestSaveInjectionUpdateKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	stores := memStores()
	svc := app.NewRecordsService(stores)

	saved, err := svc.SaveInjection(ctx, domain.InjectionRecord{
		MedicationName: "semaglutide", DoseMg: 0.5, Site: domain.SiteAbdomen,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	saved.DoseMg = 1.0
	again, err := svc.SaveInjection(ctx, saved)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.ID != saved.ID {
		t.Fatalf("update must keep the ID: %s != %s", again.ID, saved.ID)
	}
	list, _ := svc.ListInjections(ctx)
	if len(list) != 1 || list[0].DoseMg != 1.0 {
		t.Fatalf("expected one updated record, got %v", list)
	}
}

func TestSaveWeightValidation(t *testing.T) {
	svc := app.NewRecordsService(memStores())
	for _, kg := range []float64{0, -3, math.Inf(1), math.NaN()} {
		if _, err := svc.SaveWeight(context.Background(), domain.WeightRecord{WeightKg: kg}); !errors.Is(err, app.ErrInvalidWeight) {
			t.Fatalf("weight %v: expected ErrInvalidWeight, got %v", kg, err)
		}
	}
}

func TestSaveMeasurementValidation(t *testing.T) {
	svc := app.NewRecordsService(memStores())
	ctx := context.Background()

	if _, err := svc.SaveMeasurement(ctx, domain.MeasurementRecord{Day: "26-03-2026"}); !errors.Is(err, app.ErrInvalidDay) {
		t.Fatalf("expected ErrInvalidDay, got %v", err)
	}

	bad := -4.0
	if _, err := svc.SaveMeasurement(ctx, domain.MeasurementRecord{Day: "2026-03-12", WaistCm: &bad}); !errors.Is(err, app.ErrInvalidField) {
		t.Fatalf("expected ErrInvalidField, got %v", err)
	}

	// All-absent is valid: nothing was measured that day.
	saved, err := svc.SaveMeasurement(ctx, domain.MeasurementRecord{Day: "2026-03-12"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("expected a generated ID")
	}
	if saved.WaistCm != nil {
		t.Fatal("absent fields must stay absent")
	}
}

func TestDeleteReportsExistence(t *testing.T) {
	ctx := context.Background()
	svc := app.NewRecordsService(memStores())

	saved, _ := svc.SaveWeight(ctx, domain.WeightRecord{WeightKg: 82})
	ok, err := svc.DeleteWeight(ctx, saved.ID)
	if err != nil || !ok {
		t.Fatalf("expected delete to hit, got %v/%v", ok, err)
	}
	ok, err = svc.DeleteWeight(ctx, saved.ID)
	if err != nil || ok {
		t.Fatalf("expected second delete to miss, got %v/%v", ok, err)
	}
}

func TestGetSettingsDefaultsWhenUnset(t *testing.T) {
	svc := app.NewRecordsService(memStores())
	got, err := svc.GetSettings(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.WeighDays) != 3 || got.InjectionDay == nil || *got.InjectionDay != time.Saturday || got.MeasurementCadenceDays != 14 {
		t.Fatalf("expected full defaults, got %+v", got)
	}
}

func TestSaveSettingsNormalizes(t *testing.T) {
	svc := app.NewRecordsService(memStores())
	saved, err := svc.SaveSettings(context.Background(), domain.Settings{
		MeasurementCadenceDays: 3, // below the floor
		InjectionTime:          "25:99",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.MeasurementCadenceDays != domain.MinMeasurementDays {
		t.Fatalf("cadence not clamped: %d", saved.MeasurementCadenceDays)
	}
	if saved.InjectionTime != domain.DefaultInjectionTime {
		t.Fatalf("bad clock not replaced: %s", saved.InjectionTime)
	}

	round, err := svc.GetSettings(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if round.MeasurementCadenceDays != saved.MeasurementCadenceDays {
		t.Fatalf("stored settings differ: %+v vs %+v", round, saved)
	}
}

type failingWeightRepo struct{}

func (failingWeightRepo) ListWeights(ctx context.Context) ([]domain.WeightRecord, error) {
	return nil, errors.New("db down")
}
func (failingWeightRepo) UpsertWeight(ctx context.Context, rec domain.WeightRecord) error {
	return errors.New("db down")
}
func (failingWeightRepo) DeleteWeight(ctx context.Context, id string) (bool, error) {
	return false, errors.New("db down")
}

func TestSaveWeightRepoError(t *testing.T) {
	stores := memStores()
	stores.Weights = failingWeightRepo{}
	svc := app.NewRecordsService(stores)
	if _, err := svc.SaveWeight(context.Background(), domain.WeightRecord{WeightKg: 82}); err == nil {
		t.Fatal("expected error from repo")
	}
}

func TestSnapshotAbortsOnReadError(t *testing.T) {
	stores := memStores()
	stores.Weights = failingWeightRepo{}
	if _, err := stores.Snapshot(context.Background()); err == nil {
		t.Fatal("a failed read must abort the snapshot")
	}
}
