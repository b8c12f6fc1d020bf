package dto

import (
	"time"

	"github.com/apnmt/payment/internal/domain/price"
	ierr "github.com/apnmt/payment/internal/errors"
	"github.com/apnmt/payment/internal/types"
	"github.com/shopspring/decimal"
)

// CreatePriceRequest represents a request to create a price for a product
type CreatePriceRequest struct {
	ProductID string                `json:"product_id" binding:"required"`
	Nickname  string                `json:"nickname"`
	Currency  types.Currency        `json:"currency" binding:"required"`
	Amount    decimal.Decimal       `json:"amount" binding:"required"`
	Interval  types.BillingInterval `json:"interval" binding:"required"`
}

// Validate validates the create price request
func (r *CreatePriceRequest) Validate() error {
	if r.ProductID == "" {
		return ierr.NewError("product_id is required").
			WithHint("Product ID is required").
			Mark(ierr.ErrValidation)
	}
	if r.Amount.IsZero() || r.Amount.IsNegative() {
		return ierr.NewError("amount must be positive").
			WithHint("Price amount must be greater than zero").
			Mark(ierr.ErrValidation)
	}
	if err := r.Currency.Validate(); err != nil {
		return err
	}
	return r.Interval.Validate()
}

// PriceResponse represents a price in API responses
type PriceResponse struct {
	ID        string                `json:"id"`
	ProductID string                `json:"product_id"`
	Nickname  string                `json:"nickname"`
	Currency  types.Currency        `json:"currency"`
	Amount    decimal.Decimal       `json:"amount"`
	Interval  types.BillingInterval `json:"interval"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// NewPriceResponse converts a domain price to its API representation
func NewPriceResponse(p *price.Price) *PriceResponse {
	return &PriceResponse{
		ID:        p.ID,
		ProductID: p.ProductID,
		Nickname:  p.Nickname,
		Currency:  p.Currency,
		Amount:    p.Amount,
		Interval:  p.Interval,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
