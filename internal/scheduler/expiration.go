package scheduler

import (
	"context"
	"time"

	"github.com/apnmt/payment/internal/config"
	"github.com/apnmt/payment/internal/logger"
	"github.com/apnmt/payment/internal/service"
)

// ExpirationScheduler runs the subscription expiration sweep at a fixed
// interval. Multiple instances may run it concurrently; the sweep's advisory
// lock keeps the work single-flight across the fleet.
type ExpirationScheduler struct {
	interval time.Duration
	service  service.SubscriptionExpirationService
	logger   *logger.Logger

	stop chan struct{}
	done chan struct{}
}

// NewExpirationScheduler creates a new expiration scheduler
func NewExpirationScheduler(cfg *config.Configuration, svc service.SubscriptionExpirationService, log *logger.Logger) *ExpirationScheduler {
	return &ExpirationScheduler{
		interval: cfg.Expiration.Interval,
		service:  svc,
		logger:   log,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the sweep loop in a background goroutine. The first sweep
// runs after one full interval, not immediately, so a restarting fleet does
// not stampede the store.
func (s *ExpirationScheduler) Start() {
	s.logger.Infow("starting expiration scheduler", "interval", s.interval)

	go func() {
		defer close(s.done)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.runOnce()
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop terminates the sweep loop and waits for an in-flight sweep to finish.
func (s *ExpirationScheduler) Stop() {
	close(s.stop)
	<-s.done
	s.logger.Infow("stopped expiration scheduler")
}

func (s *ExpirationScheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()

	if err := s.service.CheckExpirationOfSubscriptions(ctx); err != nil {
		s.logger.Errorw("expiration sweep failed", "error", err)
	}
}
