package dto

import (
	"time"

	"github.com/apnmt/payment/internal/domain/product"
	ierr "github.com/apnmt/payment/internal/errors"
)

// CreateProductRequest represents a request to create a billable product
type CreateProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// Validate validates the create product request
func (r *CreateProductRequest) Validate() error {
	if r.Name == "" {
		return ierr.NewError("name is required").
			WithHint("Product name is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewProductResponse converts a domain product to its API representation
func NewProductResponse(p *product.Product) *ProductResponse {
	return &ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
