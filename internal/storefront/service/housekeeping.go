package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/storefront/internal/storefront/store"
)

// HousekeepingService periodically sweeps expired refresh sessions so the
// store does not grow without bound. Readers already ignore expired entries;
// the sweep only reclaims memory.
type HousekeepingService struct {
	Sessions store.Sessions
	Logger   *slog.Logger
	Interval time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

// NewHousekeepingService defaults a non-positive interval to one hour.
func NewHousekeepingService(sessions store.Sessions, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &HousekeepingService{
		Sessions: sessions,
		Logger:   logger,
		Interval: interval,
	}
}

// Run sweeps once immediately and then every Interval until ctx is done.
func (s *HousekeepingService) Run(ctx context.Context) error {
	s.Logger.Info("housekeeping started", "interval", s.Interval)
	defer s.Logger.Info("housekeeping stopped")

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Sweep(ctx)
	for {
		select {
		case <-ticker.C:
			s.Sweep(ctx)
		case <-ctx.Done():
			return nil
		}
	}
}

// Sweep deletes expired sessions and returns how many were removed.
func (s *HousekeepingService) Sweep(ctx context.Context) int {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	n, err := s.Sessions.DeleteExpired(ctx, now)
	if err != nil {
		s.Logger.Error("failed to delete expired sessions", "error", err)
		return 0
	}
	s.Logger.Debug("housekeeping sweep completed", "deleted", n)
	return n
}
