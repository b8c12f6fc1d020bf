package service

import (
	"context"
	"time"

	"github.com/apnmt/payment/internal/api/dto"
	"github.com/apnmt/payment/internal/domain/events"
	"github.com/apnmt/payment/internal/domain/subscription"
	ierr "github.com/apnmt/payment/internal/errors"
	"github.com/apnmt/payment/internal/types"
	"github.com/sourcegraph/conc/pool"
	"github.com/stripe/stripe-go/v82/webhook"
)

// expirationGracePeriod is added past the provider's period end before the
// local record is considered expired, absorbing clock and delivery skew.
const expirationGracePeriod = 3 * 24 * time.Hour

// reconcileTimeout bounds a single async reconciliation, covering the
// gateway call, the store write and the publish.
const reconcileTimeout = 30 * time.Second

// reconcileLockWait bounds how long a reconciliation waits for the
// per-subscription advisory lock when a redelivery of the same invoice is
// already in flight on another instance.
const reconcileLockWait = 5 * time.Second

// StripeWebhookService translates inbound billing-provider notifications
// into extended local expirations and activation signals.
type StripeWebhookService interface {
	// ProcessEvent verifies the payload signature when a webhook secret is
	// configured, structurally validates the payload and, for invoice payment
	// events, hands reconciliation to the worker pool. It returns before
	// reconciliation completes so the webhook delivery can be acknowledged
	// promptly; when every worker is busy the hand-off itself blocks, so a
	// sustained burst slows acknowledgement instead of growing an unbounded
	// backlog, and the provider's retry schedule absorbs the delay.
	ProcessEvent(payload []byte, signature string) error

	// HandleInvoiceSucceeded runs one reconciliation synchronously:
	// re-fetch the authoritative period end, extend the local expiration by
	// the grace window, and publish an activation event.
	HandleInvoiceSucceeded(ctx context.Context, providerSubscriptionID string) error

	// Close drains the worker pool.
	Close()
}

type stripeWebhookService struct {
	ServiceParams
	workers *pool.Pool
}

// NewStripeWebhookService creates a new stripe webhook service
func NewStripeWebhookService(params ServiceParams) StripeWebhookService {
	return &stripeWebhookService{
		ServiceParams: params,
		workers:       pool.New().WithMaxGoroutines(params.Config.Webhook.Workers),
	}
}

func (s *stripeWebhookService) ProcessEvent(payload []byte, signature string) error {
	if secret := s.Config.Stripe.WebhookSecret; secret != "" {
		if err := webhook.ValidatePayload(payload, signature, secret); err != nil {
			return ierr.WithError(err).
				WithHint("Webhook signature verification failed").
				Mark(ierr.ErrPermissionDenied)
		}
	}

	event, err := dto.ParseProviderEvent(payload)
	if err != nil {
		return err
	}

	if event.Type != dto.ProviderEventInvoicePaymentSucceeded {
		s.Logger.Debugw("ignoring provider event", "event_type", event.Type)
		return nil
	}

	subscriptionID, err := event.InvoiceSubscriptionID()
	if err != nil {
		return err
	}

	// Reconciliation runs detached from the request context so that
	// acknowledging the delivery never waits on gateway or channel latency.
	s.workers.Go(func() {
		ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
		defer cancel()

		if err := s.HandleInvoiceSucceeded(ctx, subscriptionID); err != nil {
			// No retry here; the provider's own webhook retry redelivers.
			s.Logger.Errorw("invoice reconciliation failed",
				"subscription_id", subscriptionID,
				"error", err,
			)
		}
	})

	return nil
}

func (s *stripeWebhookService) HandleInvoiceSucceeded(ctx context.Context, providerSubscriptionID string) error {
	if providerSubscriptionID == "" {
		return ierr.NewError("provider subscription id must not be empty").
			WithHint("Invoice events must reference a subscription").
			Mark(ierr.ErrValidation)
	}

	// Local and provider subscription ids are kept identical.
	sub, err := s.SubscriptionRepo.Get(ctx, providerSubscriptionID)
	if err != nil {
		if ierr.IsNotFound(err) {
			// Likely an out-of-order or foreign event; nothing to reconcile.
			return ierr.WithError(err).
				WithHintf("Invoice references unknown subscription %s", providerSubscriptionID).
				Mark(ierr.ErrNotFound)
		}
		return err
	}

	providerSub, err := s.BillingGateway.GetSubscription(ctx, providerSubscriptionID)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to fetch authoritative period end from billing provider").
			Mark(ierr.ErrHTTPClient)
	}

	// Recompute from the provider's authoritative period end rather than
	// incrementing, so redelivered invoices converge instead of compounding.
	newExpiration := time.Unix(providerSub.PeriodEnd, 0).UTC().Add(expirationGracePeriod)

	sub.ExpirationDate = newExpiration
	sub.UpdatedAt = s.Clock.Now()

	if err := s.saveSubscription(ctx, sub); err != nil {
		return err
	}

	cust, err := s.CustomerRepo.Get(ctx, sub.CustomerID)
	if err != nil {
		return err
	}

	event := events.NewOrganizationActivationEvent(cust.OrganizationID, true, s.Clock.Now())
	if err := s.EventPublisher.Publish(ctx, types.TopicOrganizationActivationChanged, event); err != nil {
		return err
	}

	s.Logger.Infow("extended subscription after successful invoice",
		"subscription_id", sub.ID,
		"organization_id", cust.OrganizationID,
		"expiration_date", newExpiration,
	)
	return nil
}

// saveSubscription persists the reconciled record. With a database attached
// the write runs in a transaction holding a per-subscription advisory lock,
// so concurrent redeliveries of the same invoice serialize instead of
// interleaving their writes.
func (s *stripeWebhookService) saveSubscription(ctx context.Context, sub *subscription.Subscription) error {
	if s.DB == nil {
		return s.SubscriptionRepo.Save(ctx, sub)
	}

	return s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.DB.LockKey(ctx, "subscription:"+sub.ID, reconcileLockWait); err != nil {
			return ierr.WithError(err).
				WithHintf("Failed to lock subscription %s for reconciliation", sub.ID).
				Mark(ierr.ErrDatabase)
		}
		return s.SubscriptionRepo.Save(ctx, sub)
	})
}

func (s *stripeWebhookService) Close() {
	s.workers.Wait()
}
