package stripe

import (
	"context"
	"strconv"

	ierr "github.com/apnmt/payment/internal/errors"
	stripe "github.com/stripe/stripe-go/v82"
)

// CreateCustomer creates a customer at Stripe. The organization id is
// attached as metadata so provider-side records can be traced back.
func (c *Client) CreateCustomer(ctx context.Context, req *CreateCustomerRequest) (*ProviderCustomer, error) {
	params := &stripe.CustomerParams{
		Params: stripe.Params{Context: ctx},
		Email:  stripe.String(req.Email),
	}
	params.AddMetadata("organization_id", strconv.FormatInt(req.OrganizationID, 10))

	cust, err := c.api.Customers.New(params)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to create customer at stripe").
			Mark(ierr.ErrHTTPClient)
	}

	c.logger.Infow("created stripe customer",
		"customer_id", cust.ID,
		"organization_id", req.OrganizationID,
	)

	return &ProviderCustomer{
		ID:    cust.ID,
		Email: cust.Email,
	}, nil
}
