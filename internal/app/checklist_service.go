package app

import (
	"context"
	"errors"
	"time"

	"medtrack/internal/dateutil"
	"medtrack/internal/domain"
)

// ChecklistService serves the daily checklist views over a fresh snapshot.
type ChecklistService struct {
	stores Stores
}

// NewChecklistService creates a ChecklistService over the given stores.
func NewChecklistService(stores Stores) *ChecklistService {
	return &ChecklistService{stores: stores}
}

// TodayChecklist is today's items together with the day they belong to and
// the next free-form reminder, when one is configured.
type TodayChecklist struct {
	DateKey      string                 `json:"dateKey"`
	Items        []domain.ChecklistItem `json:"items"`
	NextReminder *time.Time             `json:"nextReminder"`
}

// Today returns the checklist for the current calendar day.
func (s *ChecklistService) Today(ctx context.Context) (TodayChecklist, error) {
	snap, err := s.stores.Snapshot(ctx)
	if err != nil {
		return TodayChecklist{}, err
	}
	now := time.Now()
	return TodayChecklist{
		DateKey:      dateutil.DayKey(now),
		Items:        BuildChecklistForDay(now, snap, now),
		NextReminder: NextReminder(snap.Settings, now),
	}, nil
}

// Upcoming returns per-day items for the next days calendar days, skipping
// days with nothing scheduled.
func (s *ChecklistService) Upcoming(ctx context.Context, days int) ([]domain.DayChecklist, error) {
	if days < 1 {
		return nil, errors.New("days must be >= 1")
	}
	snap, err := s.stores.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return BuildUpcoming(days, snap, time.Now()), nil
}

// Overdue returns required-but-missed items from the last daysBack days,
// most recent first.
func (s *ChecklistService) Overdue(ctx context.Context, daysBack int) ([]domain.ChecklistItem, error) {
	if daysBack < 1 {
		return nil, errors.New("daysBack must be >= 1")
	}
	snap, err := s.stores.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return BuildOverdue(daysBack, snap, time.Now()), nil
}
