package stripe

import (
	"context"

	ierr "github.com/apnmt/payment/internal/errors"
	stripe "github.com/stripe/stripe-go/v82"
)

// CreateProduct creates a product at Stripe.
func (c *Client) CreateProduct(ctx context.Context, req *CreateProductRequest) (*ProviderProduct, error) {
	params := &stripe.ProductParams{
		Params: stripe.Params{Context: ctx},
		Name:   stripe.String(req.Name),
	}
	if req.Description != "" {
		params.Description = stripe.String(req.Description)
	}

	prod, err := c.api.Products.New(params)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to create product at stripe").
			Mark(ierr.ErrHTTPClient)
	}

	c.logger.Infow("created stripe product", "product_id", prod.ID)

	return &ProviderProduct{
		ID:   prod.ID,
		Name: prod.Name,
	}, nil
}
