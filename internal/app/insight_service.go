package app

import (
	"context"
	"time"

	"medtrack/internal/domain"
)

// InsightService evaluates the local rule set over a fresh snapshot.
type InsightService struct {
	stores Stores
}

// NewInsightService creates an InsightService over the given stores.
func NewInsightService(stores Stores) *InsightService {
	return &InsightService{stores: stores}
}

// Get recomputes every rule from the current records and settings.
func (s *InsightService) Get(ctx context.Context) ([]domain.InsightItem, error) {
	snap, err := s.stores.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return ComputeInsights(snap, time.Now()), nil
}
