package sentry

import (
	"time"

	sentrygo "github.com/getsentry/sentry-go"

	"github.com/apnmt/payment/internal/config"
	ierr "github.com/apnmt/payment/internal/errors"
	"github.com/apnmt/payment/internal/logger"
)

// Service owns the Sentry SDK lifecycle. When disabled every method is a
// no-op so callers never need to branch.
type Service struct {
	cfg *config.Configuration
	log *logger.Logger
}

// NewService initializes the Sentry SDK from configuration.
func NewService(cfg *config.Configuration, log *logger.Logger) (*Service, error) {
	s := &Service{cfg: cfg, log: log}

	if !cfg.Sentry.Enabled {
		return s, nil
	}

	err := sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.Sentry.DSN,
		Environment:      cfg.Sentry.Environment,
		TracesSampleRate: cfg.Sentry.SampleRate,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to initialize Sentry").
			Mark(ierr.ErrSystem)
	}

	log.Infow("sentry initialized", "environment", cfg.Sentry.Environment)
	return s, nil
}

// CaptureException forwards an error to Sentry when enabled.
func (s *Service) CaptureException(err error) {
	if !s.cfg.Sentry.Enabled || err == nil {
		return
	}
	sentrygo.CaptureException(err)
}

// Flush drains buffered events before shutdown.
func (s *Service) Flush() {
	if !s.cfg.Sentry.Enabled {
		return
	}
	sentrygo.Flush(2 * time.Second)
}
