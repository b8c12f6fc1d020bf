package customer

import "time"

// Customer is the local mirror of a billing-provider customer. The ID is kept
// identical to the provider's customer id once the customer has been created
// there. OrganizationID links the customer to the tenant organization whose
// access is gated by its subscriptions; it is immutable once set.
type Customer struct {
	ID             string    `json:"id"`
	OrganizationID int64     `json:"organization_id"`
	Email          string    `json:"email"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
