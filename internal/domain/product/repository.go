package product

import "context"

// Repository defines the interface for product persistence operations
type Repository interface {
	// Get retrieves a product by ID
	Get(ctx context.Context, id string) (*Product, error)

	// List retrieves all products
	List(ctx context.Context) ([]*Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, p *Product) error

	// Delete removes a product
	Delete(ctx context.Context, id string) error
}
