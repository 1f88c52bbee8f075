package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"medtrack/internal/domain"
)

// ListInjections returns all injections, most recent first.
func (d *DB) ListInjections(ctx context.Context) ([]domain.InjectionRecord, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, ts, medication, dose_mg, site, symptoms, notes FROM injections ORDER BY ts DESC;")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.InjectionRecord
	for rows.Next() {
		var r domain.InjectionRecord
		var symptoms []byte
		if err := rows.Scan(&r.ID, &r.Timestamp, &r.MedicationName, &r.DoseMg, &r.Site, &symptoms, &r.Notes); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(symptoms, &r.Symptoms); err != nil {
			return nil, fmt.Errorf("injection %s symptoms: %w", r.ID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// UpsertInjection inserts or replaces an injection by ID.
func (d *DB) UpsertInjection(ctx context.Context, rec domain.InjectionRecord) error {
	symptoms, err := json.Marshal(rec.Symptoms)
	if err != nil {
		return err
	}
	_, err = d.sql.ExecContext(ctx,
		`INSERT INTO injections (id, ts, medication, dose_mg, site, symptoms, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO UPDATE SET
			ts = EXCLUDED.ts, medication = EXCLUDED.medication, dose_mg = EXCLUDED.dose_mg,
			site = EXCLUDED.site, symptoms = EXCLUDED.symptoms, notes = EXCLUDED.notes;`,
		rec.ID, rec.Timestamp.UTC(), rec.MedicationName, rec.DoseMg, string(rec.Site), symptoms, rec.Notes)
	return err
}

// DeleteInjection removes an injection by ID.
func (d *DB) DeleteInjection(ctx context.Context, id string) (bool, error) {
	return d.deleteByID(ctx, "injections", id)
}

// ListWeights returns all weigh-ins, most recent first.
func (d *DB) ListWeights(ctx context.Context) ([]domain.WeightRecord, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, ts, weight_kg, fasting, notes FROM weights ORDER BY ts DESC;")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.WeightRecord
	for rows.Next() {
		var r domain.WeightRecord
		if err := rows.Scan(&r.ID, &r.Timestamp, &r.WeightKg, &r.Fasting, &r.Notes); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// UpsertWeight inserts or replaces a weigh-in by ID.
func (d *DB) UpsertWeight(ctx context.Context, rec domain.WeightRecord) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO weights (id, ts, weight_kg, fasting, notes)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET
			ts = EXCLUDED.ts, weight_kg = EXCLUDED.weight_kg,
			fasting = EXCLUDED.fasting, notes = EXCLUDED.notes;`,
		rec.ID, rec.Timestamp.UTC(), rec.WeightKg, rec.Fasting, rec.Notes)
	return err
}

// DeleteWeight removes a weigh-in by ID.
func (d *DB) DeleteWeight(ctx context.Context, id string) (bool, error) {
	return d.deleteByID(ctx, "weights", id)
}

// ListMeasurements returns all measurements, most recent day first.
func (d *DB) ListMeasurements(ctx context.Context) ([]domain.MeasurementRecord, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT id, day, neck_cm, chest_cm, waist_cm, hips_cm,
			arm_left_cm, arm_right_cm, thigh_left_cm, thigh_right_cm, notes
		 FROM measurements ORDER BY day DESC;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.MeasurementRecord
	for rows.Next() {
		var r domain.MeasurementRecord
		if err := rows.Scan(&r.ID, &r.Day, &r.NeckCm, &r.ChestCm, &r.WaistCm, &r.HipsCm,
			&r.ArmLeftCm, &r.ArmRightCm, &r.ThighLeftCm, &r.ThighRightCm, &r.Notes); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// UpsertMeasurement inserts or replaces a measurement by ID.
func (d *DB) UpsertMeasurement(ctx context.Context, rec domain.MeasurementRecord) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO measurements (id, day, neck_cm, chest_cm, waist_cm, hips_cm,
			arm_left_cm, arm_right_cm, thigh_left_cm, thigh_right_cm, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (id) DO UPDATE SET
			day = EXCLUDED.day, neck_cm = EXCLUDED.neck_cm, chest_cm = EXCLUDED.chest_cm,
			waist_cm = EXCLUDED.waist_cm, hips_cm = EXCLUDED.hips_cm,
			arm_left_cm = EXCLUDED.arm_left_cm, arm_right_cm = EXCLUDED.arm_right_cm,
			thigh_left_cm = EXCLUDED.thigh_left_cm, thigh_right_cm = EXCLUDED.thigh_right_cm,
			notes = EXCLUDED.notes;`,
		rec.ID, rec.Day, rec.NeckCm, rec.ChestCm, rec.WaistCm, rec.HipsCm,
		rec.ArmLeftCm, rec.ArmRightCm, rec.ThighLeftCm, rec.ThighRightCm, rec.Notes)
	return err
}

// DeleteMeasurement removes a measurement by ID.
func (d *DB) DeleteMeasurement(ctx context.Context, id string) (bool, error) {
	return d.deleteByID(ctx, "measurements", id)
}

// GetSettings returns the stored settings, or nil when never saved.
func (d *DB) GetSettings(ctx context.Context) (*domain.Settings, error) {
	var payload []byte
	err := d.sql.QueryRowContext(ctx, "SELECT payload FROM settings WHERE id = 1;").Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var s domain.Settings
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, fmt.Errorf("settings payload: %w", err)
	}
	return &s, nil
}

// SaveSettings replaces the single settings row.
func (d *DB) SaveSettings(ctx context.Context, s domain.Settings) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	_, err = d.sql.ExecContext(ctx,
		"INSERT INTO settings (id, payload) VALUES (1, $1) ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload;",
		payload)
	return err
}

func (d *DB) deleteByID(ctx context.Context, table, id string) (bool, error) {
	res, err := d.sql.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1;", table), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
