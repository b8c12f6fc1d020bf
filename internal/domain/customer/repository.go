package customer

import "context"

// Repository defines the interface for customer persistence operations
type Repository interface {
	// Get retrieves a customer by ID
	Get(ctx context.Context, id string) (*Customer, error)

	// GetByOrganizationID retrieves the customer owning the given organization
	GetByOrganizationID(ctx context.Context, organizationID int64) (*Customer, error)

	// List retrieves all customers
	List(ctx context.Context) ([]*Customer, error)

	// Save creates or updates a customer
	Save(ctx context.Context, c *Customer) error

	// Delete removes a customer together with its owned subscriptions and
	// their items within a single store transaction
	Delete(ctx context.Context, id string) error
}
