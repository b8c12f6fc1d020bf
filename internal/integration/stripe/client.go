package stripe

import (
	"context"

	"github.com/apnmt/payment/internal/config"
	ierr "github.com/apnmt/payment/internal/errors"
	"github.com/apnmt/payment/internal/logger"
	stripeclient "github.com/stripe/stripe-go/v82/client"
)

// Gateway defines the interface for billing-provider API operations. The
// gateway never mutates local state; callers apply its responses.
type Gateway interface {
	// GetSubscription fetches the provider's view of a subscription,
	// including the authoritative current period end.
	GetSubscription(ctx context.Context, subscriptionID string) (*ProviderSubscription, error)

	// CreateCustomer creates a customer record at the provider
	CreateCustomer(ctx context.Context, req *CreateCustomerRequest) (*ProviderCustomer, error)

	// CreateProduct creates a product at the provider
	CreateProduct(ctx context.Context, req *CreateProductRequest) (*ProviderProduct, error)

	// CreatePrice creates a price at the provider
	CreatePrice(ctx context.Context, req *CreatePriceRequest) (*ProviderPrice, error)

	// CreateSubscription creates a subscription at the provider
	CreateSubscription(ctx context.Context, req *CreateSubscriptionRequest) (*ProviderSubscription, error)

	// CancelSubscription cancels a subscription at the provider
	CancelSubscription(ctx context.Context, subscriptionID string) error
}

// Client handles Stripe API client setup and configuration
type Client struct {
	api    *stripeclient.API
	logger *logger.Logger
}

// NewClient creates a new Stripe gateway client
func NewClient(cfg *config.Configuration, log *logger.Logger) (Gateway, error) {
	if cfg.Stripe.APIKey == "" {
		return nil, ierr.NewError("stripe api key is not configured").
			WithHint("Set stripe.api_key or APNMT_STRIPE_API_KEY").
			Mark(ierr.ErrValidation)
	}

	api := &stripeclient.API{}
	api.Init(cfg.Stripe.APIKey, nil)

	return &Client{
		api:    api,
		logger: log,
	}, nil
}
