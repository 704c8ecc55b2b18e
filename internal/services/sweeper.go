package services

import (
	"context"
	"time"

	"github.com/grisascutelnic/DrumBun/pkg/logger"
)

// DefaultSweepInterval is how often the background sweeper checks for rides
// past their departure grace period.
const DefaultSweepInterval = 10 * time.Minute

// Sweeper periodically deactivates expired ride listings. Expiry is evaluated
// lazily by the sweep itself, so a missed tick only delays deactivation.
type Sweeper struct {
	rideService RideService
	interval    time.Duration
	logger      *logger.Logger
}

func NewSweeper(rideService RideService, interval time.Duration, logger *logger.Logger) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Sweeper{
		rideService: rideService,
		interval:    interval,
		logger:      logger,
	}
}

// Start runs the sweep loop until ctx is cancelled. It sweeps once up front so
// a restart clears any backlog immediately.
func (s *Sweeper) Start(ctx context.Context) {
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Ride sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	swept, err := s.rideService.SweepExpired(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Ride sweep failed")
		return
	}
	if swept > 0 {
		s.logger.WithField("swept", swept).Info("Ride sweep completed")
	}
}
