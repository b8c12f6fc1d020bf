package price

import (
	"time"

	"github.com/apnmt/payment/internal/types"
	"github.com/shopspring/decimal"
)

// Price belongs to exactly one product and carries the amount charged per
// billing interval. A price referenced by a live subscription line item is
// immutable on the provider side, so updates here are limited to display
// fields like the nickname.
type Price struct {
	ID        string                `json:"id"`
	ProductID string                `json:"product_id"`
	Nickname  string                `json:"nickname"`
	Currency  types.Currency        `json:"currency"`
	Amount    decimal.Decimal       `json:"amount"`
	Interval  types.BillingInterval `json:"interval"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}
