package dto

import (
	"time"

	"github.com/apnmt/payment/internal/domain/subscription"
	ierr "github.com/apnmt/payment/internal/errors"
)

// SubscriptionItemRequest is one line item of a checkout request
type SubscriptionItemRequest struct {
	PriceID  string `json:"price_id" binding:"required"`
	Quantity int64  `json:"quantity"`
}

// CreateSubscriptionRequest represents a checkout request: create a
// subscription for a customer with the given line items.
type CreateSubscriptionRequest struct {
	CustomerID string                    `json:"customer_id" binding:"required"`
	Items      []SubscriptionItemRequest `json:"items" binding:"required"`
}

// Validate validates the create subscription request
func (r *CreateSubscriptionRequest) Validate() error {
	if r.CustomerID == "" {
		return ierr.NewError("customer_id is required").
			WithHint("Customer ID is required").
			Mark(ierr.ErrValidation)
	}
	if len(r.Items) == 0 {
		return ierr.NewError("at least one item is required").
			WithHint("A subscription needs at least one price line item").
			Mark(ierr.ErrValidation)
	}
	for _, item := range r.Items {
		if item.PriceID == "" {
			return ierr.NewError("price_id is required for every item").
				WithHint("Each line item must reference a price").
				Mark(ierr.ErrValidation)
		}
		if item.Quantity < 0 {
			return ierr.NewError("quantity must not be negative").
				WithHint("Item quantity must be a positive integer").
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

// SubscriptionItemResponse represents a line item in API responses
type SubscriptionItemResponse struct {
	ID       string `json:"id"`
	PriceID  string `json:"price_id"`
	Quantity int64  `json:"quantity"`
}

// SubscriptionResponse represents a subscription in API responses
type SubscriptionResponse struct {
	ID             string                      `json:"id"`
	CustomerID     string                      `json:"customer_id"`
	ExpirationDate time.Time                   `json:"expiration_date"`
	Items          []*SubscriptionItemResponse `json:"items"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
}

// NewSubscriptionResponse converts a domain subscription to its API representation
func NewSubscriptionResponse(s *subscription.Subscription) *SubscriptionResponse {
	resp := &SubscriptionResponse{
		ID:             s.ID,
		CustomerID:     s.CustomerID,
		ExpirationDate: s.ExpirationDate,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
	for _, item := range s.Items {
		resp.Items = append(resp.Items, &SubscriptionItemResponse{
			ID:       item.ID,
			PriceID:  item.PriceID,
			Quantity: item.Quantity,
		})
	}
	return resp
}
