package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"medtrack/internal/domain"
)

// BackupFormatVersion is bumped when the dump shape changes.
const BackupFormatVersion = 1

// BackupFile is the full JSON dump of records plus settings.
type BackupFile struct {
	Version      int                        `json:"version"`
	ExportedAt   time.Time                  `json:"exportedAt"`
	Settings     domain.Settings            `json:"settings"`
	Injections   []domain.InjectionRecord   `json:"injections"`
	Weights      []domain.WeightRecord      `json:"weights"`
	Measurements []domain.MeasurementRecord `json:"measurements"`
}

// BackupService dumps and restores the whole store as one JSON document.
type BackupService struct {
	records *RecordsService
	stores  Stores
}

// NewBackupService creates a BackupService over the given stores.
func NewBackupService(stores Stores) *BackupService {
	return &BackupService{records: NewRecordsService(stores), stores: stores}
}

// Dump writes the full backup document to w.
func (s *BackupService) Dump(ctx context.Context, w io.Writer) error {
	snap, err := s.stores.Snapshot(ctx)
	if err != nil {
		return err
	}
	file := BackupFile{
		Version:      BackupFormatVersion,
		ExportedAt:   time.Now(),
		Settings:     snap.Settings,
		Injections:   snap.Injections,
		Weights:      snap.Weights,
		Measurements: snap.Measurements,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(file)
}

// Restore reads a backup document and upserts every record through the
// normal validation path, so a hand-edited dump cannot smuggle bad values
// into the store. Existing records with other IDs are left alone.
func (s *BackupService) Restore(ctx context.Context, r io.Reader) (int, error) {
	var file BackupFile
	dec := json.NewDecoder(r)
	if err := dec.Decode(&file); err != nil {
		return 0, fmt.Errorf("decode backup: %w", err)
	}
	if file.Version != BackupFormatVersion {
		return 0, fmt.Errorf("unsupported backup version %d", file.Version)
	}

	restored := 0
	if _, err := s.records.SaveSettings(ctx, file.Settings); err != nil {
		return restored, err
	}
	for _, rec := range file.Injections {
		if _, err := s.records.SaveInjection(ctx, rec); err != nil {
			return restored, fmt.Errorf("injection %s: %w", rec.ID, err)
		}
		restored++
	}
	for _, rec := range file.Weights {
		if _, err := s.records.SaveWeight(ctx, rec); err != nil {
			return restored, fmt.Errorf("weight %s: %w", rec.ID, err)
		}
		restored++
	}
	for _, rec := range file.Measurements {
		if _, err := s.records.SaveMeasurement(ctx, rec); err != nil {
			return restored, fmt.Errorf("measurement %s: %w", rec.ID, err)
		}
		restored++
	}
	return restored, nil
}
