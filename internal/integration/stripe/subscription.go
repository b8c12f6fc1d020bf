package stripe

import (
	"context"

	ierr "github.com/apnmt/payment/internal/errors"
	stripe "github.com/stripe/stripe-go/v82"
)

// GetSubscription fetches the subscription from Stripe and extracts the
// authoritative current period end.
func (c *Client) GetSubscription(ctx context.Context, subscriptionID string) (*ProviderSubscription, error) {
	if subscriptionID == "" {
		return nil, ierr.NewError("subscription id must not be empty").
			WithHint("A provider subscription id is required").
			Mark(ierr.ErrValidation)
	}

	params := &stripe.SubscriptionParams{
		Params: stripe.Params{Context: ctx},
	}

	sub, err := c.api.Subscriptions.Get(subscriptionID, params)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Failed to fetch subscription %s from stripe", subscriptionID).
			Mark(ierr.ErrHTTPClient)
	}

	return &ProviderSubscription{
		ID:        sub.ID,
		Status:    string(sub.Status),
		PeriodEnd: periodEndOf(sub),
	}, nil
}

// CreateSubscription creates the subscription at Stripe. The returned id is
// adopted as the local subscription id so inbound invoice webhooks resolve
// the local record directly.
func (c *Client) CreateSubscription(ctx context.Context, req *CreateSubscriptionRequest) (*ProviderSubscription, error) {
	if req.CustomerID == "" {
		return nil, ierr.NewError("customer id must not be empty").
			WithHint("A provider customer id is required").
			Mark(ierr.ErrValidation)
	}
	if len(req.Items) == 0 {
		return nil, ierr.NewError("subscription needs at least one item").
			WithHint("Provide at least one price line item").
			Mark(ierr.ErrValidation)
	}

	params := &stripe.SubscriptionParams{
		Params:   stripe.Params{Context: ctx},
		Customer: stripe.String(req.CustomerID),
	}
	for _, item := range req.Items {
		params.Items = append(params.Items, &stripe.SubscriptionItemsParams{
			Price:    stripe.String(item.PriceID),
			Quantity: stripe.Int64(item.Quantity),
		})
	}

	sub, err := c.api.Subscriptions.New(params)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to create subscription at stripe").
			Mark(ierr.ErrHTTPClient)
	}

	c.logger.Infow("created stripe subscription",
		"subscription_id", sub.ID,
		"customer_id", req.CustomerID,
	)

	return &ProviderSubscription{
		ID:        sub.ID,
		Status:    string(sub.Status),
		PeriodEnd: periodEndOf(sub),
	}, nil
}

// CancelSubscription cancels the subscription at Stripe.
func (c *Client) CancelSubscription(ctx context.Context, subscriptionID string) error {
	params := &stripe.SubscriptionCancelParams{
		Params: stripe.Params{Context: ctx},
	}
	if _, err := c.api.Subscriptions.Cancel(subscriptionID, params); err != nil {
		return ierr.WithError(err).
			WithHintf("Failed to cancel subscription %s at stripe", subscriptionID).
			Mark(ierr.ErrHTTPClient)
	}
	return nil
}

// periodEndOf extracts the current period end. Stripe tracks the period on
// the subscription items; the subscription's effective period end is the
// latest one across its items.
func periodEndOf(sub *stripe.Subscription) int64 {
	var periodEnd int64
	if sub.Items == nil {
		return 0
	}
	for _, item := range sub.Items.Data {
		if item.CurrentPeriodEnd > periodEnd {
			periodEnd = item.CurrentPeriodEnd
		}
	}
	return periodEnd
}
