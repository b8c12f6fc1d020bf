package service

import (
	"context"

	"github.com/apnmt/payment/internal/domain/events"
	ierr "github.com/apnmt/payment/internal/errors"
	"github.com/apnmt/payment/internal/types"
)

// sweepLockKey serializes the expiration sweep across service instances via
// a postgres advisory lock.
const sweepLockKey = "subscription_expiration_sweep"

// SubscriptionExpirationService detects subscriptions whose billing period
// has lapsed and signals deactivation for the owning organizations.
type SubscriptionExpirationService interface {
	// CheckExpirationOfSubscriptions publishes one deactivation event per
	// expired subscription's organization. It does not mutate subscriptions;
	// expiration is a read-driven trigger and the billing provider remains
	// the source of truth for ending the relationship.
	CheckExpirationOfSubscriptions(ctx context.Context) error
}

type subscriptionExpirationService struct {
	ServiceParams
}

// NewSubscriptionExpirationService creates a new subscription expiration service
func NewSubscriptionExpirationService(params ServiceParams) SubscriptionExpirationService {
	return &subscriptionExpirationService{
		ServiceParams: params,
	}
}

func (s *subscriptionExpirationService) CheckExpirationOfSubscriptions(ctx context.Context) error {
	if s.DB == nil {
		return s.sweep(ctx)
	}

	// Run the sweep under an advisory lock so overlapping schedules on
	// multiple instances do not double-emit within the same window. The next
	// scheduled run re-detects anything a skipped instance would have found.
	return s.DB.WithTx(ctx, func(ctx context.Context) error {
		ok, err := s.DB.TryLockKey(ctx, sweepLockKey)
		if err != nil {
			return ierr.WithError(err).
				WithHint("Failed to acquire expiration sweep lock").
				Mark(ierr.ErrDatabase)
		}
		if !ok {
			s.Logger.Infow("expiration sweep already running elsewhere, skipping")
			return nil
		}
		return s.sweep(ctx)
	})
}

func (s *subscriptionExpirationService) sweep(ctx context.Context) error {
	now := s.Clock.Now()
	s.Logger.Infow("checking subscriptions for expiration", "now", now)

	expired, err := s.SubscriptionRepo.ListExpiredBefore(ctx, now)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to query expired subscriptions").
			Mark(ierr.ErrDatabase)
	}

	for _, sub := range expired {
		// A failure for one organization must not prevent processing of the
		// remaining matches; the next run re-detects still-expired rows.
		cust, err := s.CustomerRepo.Get(ctx, sub.CustomerID)
		if err != nil {
			s.Logger.Errorw("failed to resolve customer for expired subscription",
				"subscription_id", sub.ID,
				"customer_id", sub.CustomerID,
				"error", err,
			)
			continue
		}

		event := events.NewOrganizationActivationEvent(cust.OrganizationID, false, now)
		if err := s.EventPublisher.Publish(ctx, types.TopicOrganizationActivationChanged, event); err != nil {
			s.Logger.Errorw("failed to publish deactivation event",
				"subscription_id", sub.ID,
				"organization_id", cust.OrganizationID,
				"error", err,
			)
			continue
		}

		s.Logger.Infow("published deactivation for expired subscription",
			"subscription_id", sub.ID,
			"organization_id", cust.OrganizationID,
			"expiration_date", sub.ExpirationDate,
		)
	}

	return nil
}
