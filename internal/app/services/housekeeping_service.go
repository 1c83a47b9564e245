package services

import (
	"context"
	"time"

	"github.com/safatanc/gsalt-deals/internal/infrastructures"
	"github.com/sirupsen/logrus"
)

// HousekeepingService periodically removes expired, unconsumed codes. Expiry is
// already enforced when a code is read, so a missed sweep only costs storage.
type HousekeepingService struct {
	pending   *PendingRedemptionService
	metrics   *infrastructures.Metrics
	logger    *logrus.Logger
	interval  time.Duration
	retention time.Duration
	now       func() time.Time
}

func NewHousekeepingService(pending *PendingRedemptionService, metrics *infrastructures.Metrics, logger *logrus.Logger, config *infrastructures.AppConfig) *HousekeepingService {
	return &HousekeepingService{
		pending:   pending,
		metrics:   metrics,
		logger:    logger,
		interval:  config.HOUSEKEEPING_INTERVAL,
		retention: config.PENDING_RETENTION,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// SweepOnce purges codes whose expiry is older than the retention window.
func (s *HousekeepingService) SweepOnce(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.retention)
	purged, err := s.pending.PurgeExpired(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	if purged > 0 {
		s.metrics.PendingPurged.Add(float64(purged))
		s.logger.WithFields(logrus.Fields{
			"purged": purged,
			"cutoff": cutoff,
		}).Info("expired redemption codes purged")
	}
	return purged, nil
}

// Run sweeps on every tick until ctx is done. A non-positive interval disables it.
func (s *HousekeepingService) Run(ctx context.Context) {
	if s.interval <= 0 {
		s.logger.Info("housekeeping disabled")
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.SweepOnce(ctx); err != nil {
				s.logger.WithError(err).Warn("housekeeping sweep failed")
			}
		}
	}
}
