package testutil

import (
	"context"

	"github.com/apnmt/payment/internal/domain/customer"
	ierr "github.com/apnmt/payment/internal/errors"
)

// InMemoryCustomerStore implements customer.Repository
type InMemoryCustomerStore struct {
	store *InMemoryStore[*customer.Customer]

	// subscriptions, when attached, receives the delete cascade so the
	// in-memory stores mirror the database's referential behavior.
	subscriptions *InMemorySubscriptionStore
}

// NewInMemoryCustomerStore creates a new in-memory customer store
func NewInMemoryCustomerStore() *InMemoryCustomerStore {
	return &InMemoryCustomerStore{
		store: NewInMemoryStore[*customer.Customer](),
	}
}

// WithSubscriptions attaches a subscription store for delete cascades.
func (s *InMemoryCustomerStore) WithSubscriptions(subs *InMemorySubscriptionStore) *InMemoryCustomerStore {
	s.subscriptions = subs
	return s
}

func copyCustomer(c *customer.Customer) *customer.Customer {
	if c == nil {
		return nil
	}
	copied := *c
	return &copied
}

func (s *InMemoryCustomerStore) Get(ctx context.Context, id string) (*customer.Customer, error) {
	c, ok := s.store.Get(ctx, id)
	if !ok {
		return nil, ierr.NewError("customer not found").
			WithHint("Customer not found").
			WithReportableDetails(map[string]interface{}{
				"id": id,
			}).
			Mark(ierr.ErrNotFound)
	}
	return copyCustomer(c), nil
}

func (s *InMemoryCustomerStore) GetByOrganizationID(ctx context.Context, organizationID int64) (*customer.Customer, error) {
	for _, c := range s.store.All(ctx) {
		if c.OrganizationID == organizationID {
			return copyCustomer(c), nil
		}
	}
	return nil, ierr.NewError("customer not found for organization").
		WithHint("Customer not found").
		WithReportableDetails(map[string]interface{}{
			"organization_id": organizationID,
		}).
		Mark(ierr.ErrNotFound)
}

func (s *InMemoryCustomerStore) List(ctx context.Context) ([]*customer.Customer, error) {
	all := s.store.All(ctx)
	customers := make([]*customer.Customer, 0, len(all))
	for _, c := range all {
		customers = append(customers, copyCustomer(c))
	}
	return customers, nil
}

func (s *InMemoryCustomerStore) Save(ctx context.Context, c *customer.Customer) error {
	if c == nil {
		return ierr.NewError("customer cannot be nil").
			WithHint("Customer cannot be nil").
			Mark(ierr.ErrValidation)
	}
	s.store.Set(ctx, c.ID, copyCustomer(c))
	return nil
}

func (s *InMemoryCustomerStore) Delete(ctx context.Context, id string) error {
	if s.subscriptions != nil {
		subs, err := s.subscriptions.ListByCustomer(ctx, id)
		if err != nil {
			return err
		}
		for _, sub := range subs {
			if err := s.subscriptions.Delete(ctx, sub.ID); err != nil {
				return err
			}
		}
	}

	if !s.store.Delete(ctx, id) {
		return ierr.NewError("customer not found").
			WithHint("Customer not found").
			WithReportableDetails(map[string]interface{}{
				"id": id,
			}).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
