package service

import (
	"context"
	"time"

	"github.com/apnmt/payment/internal/api/dto"
	"github.com/apnmt/payment/internal/domain/subscription"
	"github.com/apnmt/payment/internal/integration/stripe"
	"github.com/apnmt/payment/internal/types"
	"github.com/samber/lo"
)

// initialExpirationWindow is how long a fresh subscription stays active
// before the first successful invoice must arrive to extend it.
const initialExpirationWindow = time.Hour

// SubscriptionService handles checkout and lifecycle of subscriptions. The
// local id mirrors the provider's subscription id so webhook events resolve
// without a mapping table.
type SubscriptionService interface {
	CreateSubscription(ctx context.Context, req *dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error)
	GetSubscription(ctx context.Context, id string) (*dto.SubscriptionResponse, error)
	ListSubscriptions(ctx context.Context) ([]*dto.SubscriptionResponse, error)
	ListSubscriptionsByCustomer(ctx context.Context, customerID string) ([]*dto.SubscriptionResponse, error)
	CancelSubscription(ctx context.Context, id string) error
}

type subscriptionService struct {
	ServiceParams
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(params ServiceParams) SubscriptionService {
	return &subscriptionService{ServiceParams: params}
}

func (s *subscriptionService) CreateSubscription(ctx context.Context, req *dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cust, err := s.CustomerRepo.Get(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	providerItems := make([]stripe.SubscriptionItemRequest, 0, len(req.Items))
	for _, item := range req.Items {
		if _, err := s.PriceRepo.Get(ctx, item.PriceID); err != nil {
			return nil, err
		}
		quantity := item.Quantity
		if quantity == 0 {
			quantity = 1
		}
		providerItems = append(providerItems, stripe.SubscriptionItemRequest{
			PriceID:  item.PriceID,
			Quantity: quantity,
		})
	}

	providerSub, err := s.BillingGateway.CreateSubscription(ctx, &stripe.CreateSubscriptionRequest{
		CustomerID: cust.ID,
		Items:      providerItems,
	})
	if err != nil {
		return nil, err
	}

	now := s.Clock.Now()
	sub := &subscription.Subscription{
		ID:         providerSub.ID,
		CustomerID: cust.ID,
		// The first invoice webhook extends this; until then the
		// subscription only stays active for the initial window.
		ExpirationDate: now.Add(initialExpirationWindow),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, item := range providerItems {
		sub.AddItem(&subscription.Item{
			ID:       types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION_ITEM),
			PriceID:  item.PriceID,
			Quantity: item.Quantity,
		})
	}

	if err := s.SubscriptionRepo.Save(ctx, sub); err != nil {
		return nil, err
	}

	s.Logger.Infow("created subscription",
		"subscription_id", sub.ID,
		"customer_id", cust.ID,
		"organization_id", cust.OrganizationID,
		"expiration_date", sub.ExpirationDate,
	)
	return dto.NewSubscriptionResponse(sub), nil
}

func (s *subscriptionService) GetSubscription(ctx context.Context, id string) (*dto.SubscriptionResponse, error) {
	sub, err := s.SubscriptionRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewSubscriptionResponse(sub), nil
}

func (s *subscriptionService) ListSubscriptions(ctx context.Context) ([]*dto.SubscriptionResponse, error) {
	subs, err := s.SubscriptionRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.toResponses(subs), nil
}

func (s *subscriptionService) ListSubscriptionsByCustomer(ctx context.Context, customerID string) ([]*dto.SubscriptionResponse, error) {
	subs, err := s.SubscriptionRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(subs), nil
}

func (s *subscriptionService) CancelSubscription(ctx context.Context, id string) error {
	sub, err := s.SubscriptionRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.BillingGateway.CancelSubscription(ctx, sub.ID); err != nil {
		return err
	}

	if err := s.SubscriptionRepo.Delete(ctx, sub.ID); err != nil {
		return err
	}

	s.Logger.Infow("cancelled subscription", "subscription_id", sub.ID)
	return nil
}

func (s *subscriptionService) toResponses(subs []*subscription.Subscription) []*dto.SubscriptionResponse {
	return lo.Map(subs, func(sub *subscription.Subscription, _ int) *dto.SubscriptionResponse {
		return dto.NewSubscriptionResponse(sub)
	})
}
