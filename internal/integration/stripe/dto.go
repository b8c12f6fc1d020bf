package stripe

import (
	"github.com/apnmt/payment/internal/types"
	"github.com/shopspring/decimal"
)

// ProviderSubscription is the provider's view of a subscription. PeriodEnd is
// the authoritative end of the current paid interval in seconds since epoch.
type ProviderSubscription struct {
	ID        string
	Status    string
	PeriodEnd int64
}

// ProviderCustomer is the provider's view of a customer.
type ProviderCustomer struct {
	ID    string
	Email string
}

// ProviderProduct is the provider's view of a product.
type ProviderProduct struct {
	ID   string
	Name string
}

// ProviderPrice is the provider's view of a price.
type ProviderPrice struct {
	ID string
}

// CreateCustomerRequest carries the fields needed to create a provider customer.
type CreateCustomerRequest struct {
	Email          string
	OrganizationID int64
}

// CreateProductRequest carries the fields needed to create a provider product.
type CreateProductRequest struct {
	Name        string
	Description string
}

// CreatePriceRequest carries the fields needed to create a provider price.
type CreatePriceRequest struct {
	ProductID string
	Nickname  string
	Currency  types.Currency
	Amount    decimal.Decimal
	Interval  types.BillingInterval
}

// SubscriptionItemRequest is one line item of a subscription create call.
type SubscriptionItemRequest struct {
	PriceID  string
	Quantity int64
}

// CreateSubscriptionRequest carries the fields needed to create a provider
// subscription.
type CreateSubscriptionRequest struct {
	CustomerID string
	Items      []SubscriptionItemRequest
}
