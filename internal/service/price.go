package service

import (
	"context"
	"fmt"

	"github.com/apnmt/payment/internal/api/dto"
	"github.com/apnmt/payment/internal/cache"
	"github.com/apnmt/payment/internal/domain/price"
	"github.com/apnmt/payment/internal/integration/stripe"
	"github.com/samber/lo"
)

const priceCacheKeyPrefix = "price:"

// PriceService manages prices attached to products. Prices are cached on
// read because checkout resolves every line item's price.
type PriceService interface {
	CreatePrice(ctx context.Context, req *dto.CreatePriceRequest) (*dto.PriceResponse, error)
	GetPrice(ctx context.Context, id string) (*dto.PriceResponse, error)
	ListPrices(ctx context.Context) ([]*dto.PriceResponse, error)
	ListPricesByProduct(ctx context.Context, productID string) ([]*dto.PriceResponse, error)
	DeletePrice(ctx context.Context, id string) error
}

type priceService struct {
	ServiceParams
}

// NewPriceService creates a new price service
func NewPriceService(params ServiceParams) PriceService {
	return &priceService{ServiceParams: params}
}

func (s *priceService) CreatePrice(ctx context.Context, req *dto.CreatePriceRequest) (*dto.PriceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// The product must exist locally before a price can reference it.
	if _, err := s.ProductRepo.Get(ctx, req.ProductID); err != nil {
		return nil, err
	}

	providerPrice, err := s.BillingGateway.CreatePrice(ctx, &stripe.CreatePriceRequest{
		ProductID: req.ProductID,
		Nickname:  req.Nickname,
		Currency:  req.Currency,
		Amount:    req.Amount,
		Interval:  req.Interval,
	})
	if err != nil {
		return nil, err
	}

	now := s.Clock.Now()
	p := &price.Price{
		ID:        providerPrice.ID,
		ProductID: req.ProductID,
		Nickname:  req.Nickname,
		Currency:  req.Currency,
		Amount:    req.Amount,
		Interval:  req.Interval,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.PriceRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	s.Logger.Infow("created price",
		"price_id", p.ID,
		"product_id", p.ProductID,
		"amount", p.Amount,
		"currency", p.Currency,
	)
	return dto.NewPriceResponse(p), nil
}

func (s *priceService) GetPrice(ctx context.Context, id string) (*dto.PriceResponse, error) {
	cacheKey := priceCacheKeyPrefix + id
	if cached, found := s.Cache.Get(ctx, cacheKey); found {
		if p, ok := cache.UnmarshalCacheValue[price.Price](cached); ok {
			return dto.NewPriceResponse(p), nil
		}
	}

	p, err := s.PriceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.Cache.Set(ctx, cacheKey, p, cache.ExpiryDefaultInMemory)
	return dto.NewPriceResponse(p), nil
}

func (s *priceService) ListPrices(ctx context.Context) ([]*dto.PriceResponse, error) {
	prices, err := s.PriceRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.toResponses(prices), nil
}

func (s *priceService) ListPricesByProduct(ctx context.Context, productID string) ([]*dto.PriceResponse, error) {
	prices, err := s.PriceRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(prices), nil
}

func (s *priceService) DeletePrice(ctx context.Context, id string) error {
	if _, err := s.PriceRepo.Get(ctx, id); err != nil {
		return err
	}

	if err := s.PriceRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.Cache.Delete(ctx, fmt.Sprintf("%s%s", priceCacheKeyPrefix, id))
	s.Logger.Infow("deleted price", "price_id", id)
	return nil
}

func (s *priceService) toResponses(prices []*price.Price) []*dto.PriceResponse {
	return lo.Map(prices, func(p *price.Price, _ int) *dto.PriceResponse {
		return dto.NewPriceResponse(p)
	})
}
