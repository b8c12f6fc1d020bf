package stripe

import (
	"context"

	ierr "github.com/apnmt/payment/internal/errors"
	"github.com/shopspring/decimal"
	stripe "github.com/stripe/stripe-go/v82"
)

// CreatePrice creates a recurring price at Stripe. The decimal amount is in
// major units and is converted to the minor-unit integer Stripe expects.
func (c *Client) CreatePrice(ctx context.Context, req *CreatePriceRequest) (*ProviderPrice, error) {
	if req.ProductID == "" {
		return nil, ierr.NewError("product id must not be empty").
			WithHint("A provider product id is required").
			Mark(ierr.ErrValidation)
	}

	unitAmount := req.Amount.Mul(decimal.NewFromInt(100)).IntPart()

	params := &stripe.PriceParams{
		Params:     stripe.Params{Context: ctx},
		Product:    stripe.String(req.ProductID),
		Currency:   stripe.String(string(req.Currency)),
		UnitAmount: stripe.Int64(unitAmount),
		Recurring: &stripe.PriceRecurringParams{
			Interval: stripe.String(string(req.Interval)),
		},
	}
	if req.Nickname != "" {
		params.Nickname = stripe.String(req.Nickname)
	}

	price, err := c.api.Prices.New(params)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to create price at stripe").
			Mark(ierr.ErrHTTPClient)
	}

	c.logger.Infow("created stripe price",
		"price_id", price.ID,
		"product_id", req.ProductID,
	)

	return &ProviderPrice{ID: price.ID}, nil
}
