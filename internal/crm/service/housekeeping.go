package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/SGK112/CRM-sub005/internal/crm/metrics"
	"github.com/SGK112/CRM-sub005/internal/crm/store"
)

// DefaultInvitationRetention is how long an expired, unaccepted invitation
// is kept before housekeeping removes it.
const DefaultInvitationRetention = 30 * 24 * time.Hour

// HousekeepingService periodically purges invitations that expired more
// than Retention ago and were never accepted.
type HousekeepingService struct {
	Store     store.Store
	Logger    *slog.Logger
	Interval  time.Duration
	Retention time.Duration
	Metrics   *metrics.Metrics
	Clock     Clock

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService defaults a non-positive interval to 1 hour and a
// non-positive retention to DefaultInvitationRetention.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval, retention time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	if retention <= 0 {
		retention = DefaultInvitationRetention
	}

	return &HousekeepingService{
		Store:     store,
		Logger:    logger,
		Interval:  interval,
		Retention: retention,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start runs the worker in the background until Stop is called.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started",
		"interval", s.Interval,
		"retention", s.Retention,
	)
}

// Stop blocks until an in-progress purge has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.Purge(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Purge(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Purge deletes the stale invitations once and reports how many went.
// Errors are logged, the next tick tries again.
func (s *HousekeepingService) Purge(ctx context.Context) int64 {
	cutoff := s.Clock.now().Add(-s.Retention)
	s.Logger.Info("starting housekeeping cleanup", "cutoff", cutoff)

	n, err := s.Store.Invitations().DeleteStaleInvitations(ctx, cutoff)
	if err != nil {
		s.Logger.Error("failed to delete stale invitations", "error", err)
		return 0
	}

	s.Metrics.ObservePurged(n)
	s.Logger.Info("housekeeping cleanup completed", "invitations_deleted", n)
	return n
}
