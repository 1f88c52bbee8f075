// Package memory implements in-memory repositories for development and testing.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"medtrack/internal/dateutil"
	"medtrack/internal/domain"
)

// DB implements every repository port in memory.
type DB struct {
	mu           sync.Mutex
	injections   map[string]domain.InjectionRecord
	weights      map[string]domain.WeightRecord
	measurements map[string]domain.MeasurementRecord
	settings     *domain.Settings
	users        []*domain.User
	sessions     map[string]*domain.Session

	userIDCounter int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		injections:   make(map[string]domain.InjectionRecord),
		weights:      make(map[string]domain.WeightRecord),
		measurements: make(map[string]domain.MeasurementRecord),
		sessions:     make(map[string]*domain.Session),
	}
}

// Ensure interfaces are met.
var _ domain.InjectionRepository = (*DB)(nil)
var _ domain.WeightRepository = (*DB)(nil)
var _ domain.MeasurementRepository = (*DB)(nil)
var _ domain.SettingsRepository = (*DB)(nil)
var _ domain.UserRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// --- InjectionRepository ---

// ListInjections returns all injections, most recent first.
func (db *DB) ListInjections(ctx context.Context) ([]domain.InjectionRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.InjectionRecord, 0, len(db.injections))
	for _, r := range db.injections {
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})
	return result, nil
}

// UpsertInjection inserts or replaces an injection by ID.
func (db *DB) UpsertInjection(ctx context.Context, rec domain.InjectionRecord) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if rec.ID == "" {
		return errors.New("missing injection id")
	}
	db.injections[rec.ID] = rec
	return nil
}

// DeleteInjection removes an injection by ID.
func (db *DB) DeleteInjection(ctx context.Context, id string) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.injections[id]; !ok {
		return false, nil
	}
	delete(db.injections, id)
	return true, nil
}

// --- WeightRepository ---

// ListWeights returns all weigh-ins, most recent first.
func (db *DB) ListWeights(ctx context.Context) ([]domain.WeightRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.WeightRecord, 0, len(db.weights))
	for _, r := range db.weights {
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})
	return result, nil
}

// UpsertWeight inserts or replaces a weigh-in by ID.
func (db *DB) UpsertWeight(ctx context.Context, rec domain.WeightRecord) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if rec.ID == "" {
		return errors.New("missing weight id")
	}
	db.weights[rec.ID] = rec
	return nil
}

// DeleteWeight removes a weigh-in by ID.
func (db *DB) DeleteWeight(ctx context.Context, id string) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.weights[id]; !ok {
		return false, nil
	}
	delete(db.weights, id)
	return true, nil
}

// --- MeasurementRepository ---

// ListMeasurements returns all measurements, most recent day first.
func (db *DB) ListMeasurements(ctx context.Context) ([]domain.MeasurementRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.MeasurementRecord, 0, len(db.measurements))
	for _, r := range db.measurements {
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool {
		return dateutil.CompareDayKeys(result[i].Day, result[j].Day) > 0
	})
	return result, nil
}

// UpsertMeasurement inserts or replaces a measurement by ID.
func (db *DB) UpsertMeasurement(ctx context.Context, rec domain.MeasurementRecord) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if rec.ID == "" {
		return errors.New("missing measurement id")
	}
	db.measurements[rec.ID] = rec
	return nil
}

// DeleteMeasurement removes a measurement by ID.
func (db *DB) DeleteMeasurement(ctx context.Context, id string) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.measurements[id]; !ok {
		return false, nil
	}
	delete(db.measurements, id)
	return true, nil
}

// --- SettingsRepository ---

// GetSettings returns the stored settings, or nil when never saved.
func (db *DB) GetSettings(ctx context.Context) (*domain.Settings, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.settings == nil {
		return nil, nil
	}
	s := *db.settings
	return &s, nil
}

// SaveSettings replaces the settings row.
func (db *DB) SaveSettings(ctx context.Context, s domain.Settings) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.settings = &s
	return nil
}

// --- UserRepository ---

// GetByUsername retrieves a user by username.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

// GetByID retrieves a user by ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

// Create creates a new user.
func (db *DB) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return nil, errors.New("user already exists")
		}
	}

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)
	return u, nil
}

// Count returns the total number of users.
func (db *DB) Count(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users), nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new session repository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = &domain.Session{
		Token:     token,
		UserID:    userID,
		UserAgent: userAgent,
		IP:        ip,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		if time.Now().After(s.ExpiresAt) {
			delete(r.db.sessions, token)
			return nil, nil
		}
		return s, nil
	}
	return nil, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	for k, v := range r.db.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.db.sessions, k)
		}
	}
	return nil
}
