package testutil

import (
	"context"

	"github.com/apnmt/payment/internal/domain/product"
	ierr "github.com/apnmt/payment/internal/errors"
)

// InMemoryProductStore implements product.Repository
type InMemoryProductStore struct {
	store *InMemoryStore[*product.Product]
}

// NewInMemoryProductStore creates a new in-memory product store
func NewInMemoryProductStore() *InMemoryProductStore {
	return &InMemoryProductStore{
		store: NewInMemoryStore[*product.Product](),
	}
}

func copyProduct(p *product.Product) *product.Product {
	if p == nil {
		return nil
	}
	copied := *p
	return &copied
}

func (s *InMemoryProductStore) Get(ctx context.Context, id string) (*product.Product, error) {
	p, ok := s.store.Get(ctx, id)
	if !ok {
		return nil, ierr.NewError("product not found").
			WithHint("Product not found").
			WithReportableDetails(map[string]interface{}{
				"id": id,
			}).
			Mark(ierr.ErrNotFound)
	}
	return copyProduct(p), nil
}

func (s *InMemoryProductStore) List(ctx context.Context) ([]*product.Product, error) {
	all := s.store.All(ctx)
	products := make([]*product.Product, 0, len(all))
	for _, p := range all {
		products = append(products, copyProduct(p))
	}
	return products, nil
}

func (s *InMemoryProductStore) Save(ctx context.Context, p *product.Product) error {
	if p == nil {
		return ierr.NewError("product cannot be nil").
			WithHint("Product cannot be nil").
			Mark(ierr.ErrValidation)
	}
	s.store.Set(ctx, p.ID, copyProduct(p))
	return nil
}

func (s *InMemoryProductStore) Delete(ctx context.Context, id string) error {
	if !s.store.Delete(ctx, id) {
		return ierr.NewError("product not found").
			WithHint("Product not found").
			WithReportableDetails(map[string]interface{}{
				"id": id,
			}).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
