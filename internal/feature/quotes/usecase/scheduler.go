package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Syncer runs one sync pass.
type Syncer interface {
	SyncAll(ctx context.Context) (SyncReport, error)
}

// Scheduler runs the sync job on a fixed period and on demand.
// Passes never overlap; on-demand requests made while a pass is running
// collapse into a single follow-up pass.
type Scheduler struct {
	syncer  Syncer
	period  time.Duration
	trigger chan struct{}

	mu sync.Mutex // serializes passes
}

// NewScheduler creates a Scheduler. A non-positive period defaults to 5 minutes.
func NewScheduler(syncer Syncer, period time.Duration) *Scheduler {
	if period <= 0 {
		period = 5 * time.Minute
	}
	return &Scheduler{
		syncer:  syncer,
		period:  period,
		trigger: make(chan struct{}, 1),
	}
}

// TriggerNow requests an immediate sync without waiting for it.
func (s *Scheduler) TriggerNow() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Run syncs once, then on every tick or trigger until ctx is done.
func (s *Scheduler) Run(ctx context.Context) {
	slog.Info("quote sync scheduler started", "period", s.period)
	defer slog.Info("quote sync scheduler stopped")

	s.runOnce(ctx)

	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		case <-s.trigger:
			s.runOnce(ctx)
		}
	}
}

// SyncNow runs a pass in the caller's goroutine, waiting for any pass
// already in progress to finish first.
func (s *Scheduler) SyncNow(ctx context.Context) (SyncReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.syncer.SyncAll(ctx)
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if _, err := s.SyncNow(ctx); err != nil {
		slog.Error("quote sync failed", "error", err)
	}
}
