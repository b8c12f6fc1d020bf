package subscription

import (
	"context"
	"time"
)

// Repository defines the interface for subscription persistence operations.
// Save and Delete cover the subscription together with its owned items; no
// locking is assumed beyond the store's per-call transaction boundary.
type Repository interface {
	// Get retrieves a subscription with its items by ID
	Get(ctx context.Context, id string) (*Subscription, error)

	// List retrieves all subscriptions
	List(ctx context.Context) ([]*Subscription, error)

	// ListByCustomer retrieves all subscriptions owned by a customer
	ListByCustomer(ctx context.Context, customerID string) ([]*Subscription, error)

	// ListExpiredBefore retrieves all subscriptions whose expiration date is
	// strictly before the given instant
	ListExpiredBefore(ctx context.Context, ts time.Time) ([]*Subscription, error)

	// Save creates or updates a subscription and its items
	Save(ctx context.Context, s *Subscription) error

	// Delete removes a subscription and cascades to its items
	Delete(ctx context.Context, id string) error
}
