package app

import (
	"context"
	"log"
	"time"
)

// RefreshInterval is how often the today checklist is recomputed so "late"
// and after-cutoff statuses stay fresh without any record change.
const RefreshInterval = 60 * time.Second

// Refresher periodically recomputes the today checklist and hands it to a
// callback. Each tick is an independent pure recomputation over a fresh
// snapshot, so overlapping or skipped ticks are harmless; a failed store
// read just skips that cycle.
type Refresher struct {
	checklist *ChecklistService
	interval  time.Duration
	onUpdate  func(TodayChecklist)
}

// NewRefresher creates a Refresher delivering updates to onUpdate.
func NewRefresher(checklist *ChecklistService, onUpdate func(TodayChecklist)) *Refresher {
	return &Refresher{checklist: checklist, interval: RefreshInterval, onUpdate: onUpdate}
}

// Run ticks until ctx is canceled. It delivers one update immediately.
func (r *Refresher) Run(ctx context.Context) {
	r.tick(ctx)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.tick(ctx)
		}
	}
}

func (r *Refresher) tick(ctx context.Context) {
	today, err := r.checklist.Today(ctx)
	if err != nil {
		log.Printf("checklist refresh skipped: %v", err)
		return
	}
	if r.onUpdate != nil {
		r.onUpdate(today)
	}
}
