package price

import "context"

// Repository defines the interface for price persistence operations
type Repository interface {
	// Get retrieves a price by ID
	Get(ctx context.Context, id string) (*Price, error)

	// List retrieves all prices
	List(ctx context.Context) ([]*Price, error)

	// ListByProduct retrieves all prices belonging to a product
	ListByProduct(ctx context.Context, productID string) ([]*Price, error)

	// Save creates or updates a price
	Save(ctx context.Context, p *Price) error

	// Delete removes a price
	Delete(ctx context.Context, id string) error
}
