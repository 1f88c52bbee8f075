package app_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"medtrack/internal/app"
	"medtrack/internal/domain"
)

func TestBackupRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := memStores()
	records := app.NewRecordsService(src)

	if _, err := records.SaveInjection(ctx, domain.InjectionRecord{
		Timestamp:      localDate(2026, 3, 7, 9, 51),
		MedicationName: "semaglutide",
		DoseMg:         0.5,
		Site:           domain.SiteAbdomen,
		Symptoms:       map[string]int{"nausea": 3},
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := records.SaveWeight(ctx, domain.WeightRecord{
		Timestamp: localDate(2026, 3, 9, 7, 0), WeightKg: 82,
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	waist := 96.5
	if _, err := records.SaveMeasurement(ctx, domain.MeasurementRecord{
		Day: "2026-03-12", WaistCm: &waist,
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var buf bytes.Buffer
	if err := app.NewBackupService(src).Dump(ctx, &buf); err != nil {
		t.Fatalf("dump: %v", err)
	}

	dst := memStores()
	restored, err := app.NewBackupService(dst).Restore(ctx, bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if restored != 3 {
		t.Fatalf("expected 3 restored records, got %d", restored)
	}

	snapA, _ := src.Snapshot(ctx)
	snapB, err := dst.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snapB.Injections) != 1 || len(snapB.Weights) != 1 || len(snapB.Measurements) != 1 {
		t.Fatalf("restore missed records: %+v", snapB)
	}
	if snapB.Injections[0].ID != snapA.Injections[0].ID {
		t.Fatal("restore must keep record identity")
	}
	if snapB.Measurements[0].WaistCm == nil || *snapB.Measurements[0].WaistCm != 96.5 {
		t.Fatalf("measurement field lost in round trip: %+v", snapB.Measurements[0])
	}
}

func TestRestoreIsIdempotent(t *testing.T) {
	ctx := context.Background()
	src := memStores()
	records := app.NewRecordsService(src)
	if _, err := records.SaveWeight(ctx, domain.WeightRecord{WeightKg: 82}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var buf bytes.Buffer
	if err := app.NewBackupService(src).Dump(ctx, &buf); err != nil {
		t.Fatalf("dump: %v", err)
	}

	dst := memStores()
	svc := app.NewBackupService(dst)
	if _, err := svc.Restore(ctx, bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if _, err := svc.Restore(ctx, bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("second restore: %v", err)
	}
	weights, _ := dst.Weights.ListWeights(ctx)
	if len(weights) != 1 {
		t.Fatalf("restoring twice must not duplicate, got %d weights", len(weights))
	}
}

func TestRestoreRejectsUnknownVersion(t *testing.T) {
	body := `{"version": 99, "settings": {}, "weights": []}`
	_, err := app.NewBackupService(memStores()).Restore(context.Background(), strings.NewReader(body))
	if err == nil || !strings.Contains(err.Error(), "version") {
		t.Fatalf("expected version error, got %v", err)
	}
}

func TestRestoreRevalidatesRecords(t *testing.T) {
	// A hand-edited dump with a negative weight must be refused.
	body := `{
  "version": 1,
  "settings": {},
  "weights": [{"id": "w-1", "timestamp": "2026-03-09T07:00:00Z", "weightKg": -5}]
}`
	dst := memStores()
	_, err := app.NewBackupService(dst).Restore(context.Background(), strings.NewReader(body))
	if err == nil {
		t.Fatal("expected validation error")
	}
	weights, _ := dst.Weights.ListWeights(context.Background())
	if len(weights) != 0 {
		t.Fatalf("invalid record must not be stored, got %v", weights)
	}
}
