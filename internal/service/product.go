package service

import (
	"context"

	"github.com/apnmt/payment/internal/api/dto"
	"github.com/apnmt/payment/internal/domain/product"
	"github.com/apnmt/payment/internal/integration/stripe"
)

// ProductService manages billable products. The local id mirrors the
// provider's product id.
type ProductService interface {
	CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error)
	ListProducts(ctx context.Context) ([]*dto.ProductResponse, error)
	DeleteProduct(ctx context.Context, id string) error
}

type productService struct {
	ServiceParams
}

// NewProductService creates a new product service
func NewProductService(params ServiceParams) ProductService {
	return &productService{ServiceParams: params}
}

func (s *productService) CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	providerProd, err := s.BillingGateway.CreateProduct(ctx, &stripe.CreateProductRequest{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return nil, err
	}

	now := s.Clock.Now()
	prod := &product.Product{
		ID:          providerProd.ID,
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.ProductRepo.Save(ctx, prod); err != nil {
		return nil, err
	}

	s.Logger.Infow("created product", "product_id", prod.ID, "name", prod.Name)
	return dto.NewProductResponse(prod), nil
}

func (s *productService) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error) {
	prod, err := s.ProductRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewProductResponse(prod), nil
}

func (s *productService) ListProducts(ctx context.Context) ([]*dto.ProductResponse, error) {
	products, err := s.ProductRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, dto.NewProductResponse(p))
	}
	return responses, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	if _, err := s.ProductRepo.Get(ctx, id); err != nil {
		return err
	}

	if err := s.ProductRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.Logger.Infow("deleted product", "product_id", id)
	return nil
}
