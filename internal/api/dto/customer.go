package dto

import (
	"time"

	"github.com/apnmt/payment/internal/domain/customer"
	ierr "github.com/apnmt/payment/internal/errors"
)

// CreateCustomerRequest represents a request to create a billing customer for
// an organization.
type CreateCustomerRequest struct {
	OrganizationID int64  `json:"organization_id" binding:"required"`
	Email          string `json:"email" binding:"required"`
}

// Validate validates the create customer request
func (r *CreateCustomerRequest) Validate() error {
	if r.OrganizationID <= 0 {
		return ierr.NewError("organization_id is required").
			WithHint("Organization ID must be a positive integer").
			Mark(ierr.ErrValidation)
	}
	if r.Email == "" {
		return ierr.NewError("email is required").
			WithHint("Email is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID             string    `json:"id"`
	OrganizationID int64     `json:"organization_id"`
	Email          string    `json:"email"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewCustomerResponse converts a domain customer to its API representation
func NewCustomerResponse(c *customer.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:             c.ID,
		OrganizationID: c.OrganizationID,
		Email:          c.Email,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
