package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/snip/internal/snip/store"
)

// HousekeepingService periodically trims visits past their retention and
// purges links that have been soft deleted for long enough.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	// Zero disables the corresponding step.
	VisitRetention      time.Duration
	DeletedURLRetention time.Duration

	Now func() time.Time
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:    store,
		Logger:   logger,
		Interval: interval,
	}
}

// Run cleans up immediately and then on every tick until ctx is done.
func (s *HousekeepingService) Run(ctx context.Context) error {
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
	defer s.Logger.Info("housekeeping service stopped")

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Cleanup(ctx)

	for {
		select {
		case <-ticker.C:
			s.Cleanup(ctx)
		case <-ctx.Done():
			return nil
		}
	}
}

// Cleanup performs one pass. Each step is independent, failures in one
// won't stop the others.
func (s *HousekeepingService) Cleanup(ctx context.Context) {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	s.Logger.Debug("starting housekeeping cleanup")

	var successful int

	if s.VisitRetention > 0 {
		n, err := s.Store.Visits().DeleteVisitsBefore(ctx, now.Add(-s.VisitRetention))
		if err != nil {
			s.Logger.Error("failed to delete expired visits", "error", err)
		} else {
			s.Logger.Debug("deleted expired visits", "count", n)
			successful++
		}
	}

	if s.DeletedURLRetention > 0 {
		n, err := s.Store.URLs().PurgeDeletedURLs(ctx, now.Add(-s.DeletedURLRetention))
		if err != nil {
			s.Logger.Error("failed to purge deleted urls", "error", err)
		} else {
			s.Logger.Debug("purged deleted urls", "count", n)
			successful++
		}
	}

	s.Logger.Info("housekeeping cleanup completed", "successful_cleanups", successful)
}
