package testutil

import (
	"context"

	"github.com/apnmt/payment/internal/domain/price"
	ierr "github.com/apnmt/payment/internal/errors"
)

// InMemoryPriceStore implements price.Repository
type InMemoryPriceStore struct {
	store *InMemoryStore[*price.Price]
}

// NewInMemoryPriceStore creates a new in-memory price store
func NewInMemoryPriceStore() *InMemoryPriceStore {
	return &InMemoryPriceStore{
		store: NewInMemoryStore[*price.Price](),
	}
}

func copyPrice(p *price.Price) *price.Price {
	if p == nil {
		return nil
	}
	copied := *p
	return &copied
}

func (s *InMemoryPriceStore) Get(ctx context.Context, id string) (*price.Price, error) {
	p, ok := s.store.Get(ctx, id)
	if !ok {
		return nil, ierr.NewError("price not found").
			WithHint("Price not found").
			WithReportableDetails(map[string]interface{}{
				"id": id,
			}).
			Mark(ierr.ErrNotFound)
	}
	return copyPrice(p), nil
}

func (s *InMemoryPriceStore) List(ctx context.Context) ([]*price.Price, error) {
	all := s.store.All(ctx)
	prices := make([]*price.Price, 0, len(all))
	for _, p := range all {
		prices = append(prices, copyPrice(p))
	}
	return prices, nil
}

func (s *InMemoryPriceStore) ListByProduct(ctx context.Context, productID string) ([]*price.Price, error) {
	prices := make([]*price.Price, 0)
	for _, p := range s.store.All(ctx) {
		if p.ProductID == productID {
			prices = append(prices, copyPrice(p))
		}
	}
	return prices, nil
}

func (s *InMemoryPriceStore) Save(ctx context.Context, p *price.Price) error {
	if p == nil {
		return ierr.NewError("price cannot be nil").
			WithHint("Price cannot be nil").
			Mark(ierr.ErrValidation)
	}
	s.store.Set(ctx, p.ID, copyPrice(p))
	return nil
}

func (s *InMemoryPriceStore) Delete(ctx context.Context, id string) error {
	if !s.store.Delete(ctx, id) {
		return ierr.NewError("price not found").
			WithHint("Price not found").
			WithReportableDetails(map[string]interface{}{
				"id": id,
			}).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
