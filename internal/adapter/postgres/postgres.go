// Package postgres implements the domain repositories using PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// DB wraps a *sql.DB and implements domain repository interfaces.
type DB struct {
	sql *sql.DB
}

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS injections (
			id TEXT PRIMARY KEY,
			ts TIMESTAMPTZ NOT NULL,
			medication TEXT NOT NULL,
			dose_mg DOUBLE PRECISION NOT NULL,
			site TEXT NOT NULL,
			symptoms JSONB NOT NULL DEFAULT '{}',
			notes TEXT NOT NULL DEFAULT ''
		);`,
		"CREATE INDEX IF NOT EXISTS idx_injections_ts ON injections(ts);",
		`CREATE TABLE IF NOT EXISTS weights (
			id TEXT PRIMARY KEY,
			ts TIMESTAMPTZ NOT NULL,
			weight_kg DOUBLE PRECISION NOT NULL,
			fasting BOOLEAN NOT NULL DEFAULT FALSE,
			notes TEXT NOT NULL DEFAULT ''
		);`,
		"CREATE INDEX IF NOT EXISTS idx_weights_ts ON weights(ts);",
		`CREATE TABLE IF NOT EXISTS measurements (
			id TEXT PRIMARY KEY,
			day TEXT NOT NULL,
			neck_cm DOUBLE PRECISION,
			chest_cm DOUBLE PRECISION,
			waist_cm DOUBLE PRECISION,
			hips_cm DOUBLE PRECISION,
			arm_left_cm DOUBLE PRECISION,
			arm_right_cm DOUBLE PRECISION,
			thigh_left_cm DOUBLE PRECISION,
			thigh_right_cm DOUBLE PRECISION,
			notes TEXT NOT NULL DEFAULT ''
		);`,
		"CREATE INDEX IF NOT EXISTS idx_measurements_day ON measurements(day);",
		`CREATE TABLE IF NOT EXISTS settings (
			id SMALLINT PRIMARY KEY CHECK (id = 1),
			payload JSONB NOT NULL
		);`,
		"CREATE TABLE IF NOT EXISTS users (id BIGSERIAL PRIMARY KEY, username TEXT UNIQUE NOT NULL, password_hash TEXT NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		`CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			user_agent TEXT NOT NULL DEFAULT '',
			ip TEXT NOT NULL DEFAULT '',
			expires_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);`,
		"CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);",
	}

	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
