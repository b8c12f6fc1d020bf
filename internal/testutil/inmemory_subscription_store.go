package testutil

import (
	"context"
	"time"

	"github.com/apnmt/payment/internal/domain/subscription"
	ierr "github.com/apnmt/payment/internal/errors"
)

// InMemorySubscriptionStore implements subscription.Repository
type InMemorySubscriptionStore struct {
	store *InMemoryStore[*subscription.Subscription]
}

// NewInMemorySubscriptionStore creates a new in-memory subscription store
func NewInMemorySubscriptionStore() *InMemorySubscriptionStore {
	return &InMemorySubscriptionStore{
		store: NewInMemoryStore[*subscription.Subscription](),
	}
}

func copySubscription(sub *subscription.Subscription) *subscription.Subscription {
	if sub == nil {
		return nil
	}
	copied := *sub
	copied.Items = make([]*subscription.Item, 0, len(sub.Items))
	for _, item := range sub.Items {
		itemCopy := *item
		copied.Items = append(copied.Items, &itemCopy)
	}
	return &copied
}

func (s *InMemorySubscriptionStore) Get(ctx context.Context, id string) (*subscription.Subscription, error) {
	sub, ok := s.store.Get(ctx, id)
	if !ok {
		return nil, ierr.NewError("subscription not found").
			WithHint("Subscription not found").
			WithReportableDetails(map[string]interface{}{
				"id": id,
			}).
			Mark(ierr.ErrNotFound)
	}
	return copySubscription(sub), nil
}

func (s *InMemorySubscriptionStore) List(ctx context.Context) ([]*subscription.Subscription, error) {
	all := s.store.All(ctx)
	subs := make([]*subscription.Subscription, 0, len(all))
	for _, sub := range all {
		subs = append(subs, copySubscription(sub))
	}
	return subs, nil
}

func (s *InMemorySubscriptionStore) ListByCustomer(ctx context.Context, customerID string) ([]*subscription.Subscription, error) {
	subs := make([]*subscription.Subscription, 0)
	for _, sub := range s.store.All(ctx) {
		if sub.CustomerID == customerID {
			subs = append(subs, copySubscription(sub))
		}
	}
	return subs, nil
}

func (s *InMemorySubscriptionStore) ListExpiredBefore(ctx context.Context, ts time.Time) ([]*subscription.Subscription, error) {
	subs := make([]*subscription.Subscription, 0)
	for _, sub := range s.store.All(ctx) {
		if sub.ExpirationDate.Before(ts) {
			subs = append(subs, copySubscription(sub))
		}
	}
	return subs, nil
}

func (s *InMemorySubscriptionStore) Save(ctx context.Context, sub *subscription.Subscription) error {
	if sub == nil {
		return ierr.NewError("subscription cannot be nil").
			WithHint("Subscription cannot be nil").
			Mark(ierr.ErrValidation)
	}
	s.store.Set(ctx, sub.ID, copySubscription(sub))
	return nil
}

func (s *InMemorySubscriptionStore) Delete(ctx context.Context, id string) error {
	if !s.store.Delete(ctx, id) {
		return ierr.NewError("subscription not found").
			WithHint("Subscription not found").
			WithReportableDetails(map[string]interface{}{
				"id": id,
			}).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
