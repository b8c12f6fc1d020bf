package service

import (
	"context"
	"testing"
	"time"

	"github.com/apnmt/payment/internal/api/dto"
	"github.com/apnmt/payment/internal/domain/price"
	ierr "github.com/apnmt/payment/internal/errors"
	"github.com/apnmt/payment/internal/integration/stripe"
	"github.com/apnmt/payment/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) seedPrice(ctx context.Context, id string) *price.Price {
	p := &price.Price{
		ID:        id,
		ProductID: "prod_1",
		Currency:  types.CurrencyEUR,
		Amount:    decimal.NewFromInt(50),
		Interval:  types.BillingIntervalDay,
		CreatedAt: e.clock.Now(),
		UpdatedAt: e.clock.Now(),
	}
	if err := e.prices.Save(ctx, p); err != nil {
		panic(err)
	}
	return p
}

func TestCreateSubscription_ChecksOutWithInitialWindow(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	svc := NewSubscriptionService(env.params)

	env.seedCustomer(ctx, "cus_1", 1)
	env.seedPrice(ctx, "price_1")

	env.gateway.On("CreateSubscription", mock.Anything, mock.MatchedBy(func(req *stripe.CreateSubscriptionRequest) bool {
		return req.CustomerID == "cus_1" && len(req.Items) == 1 && req.Items[0].PriceID == "price_1"
	})).Return(&stripe.ProviderSubscription{ID: "sub_provider_1", Status: "active"}, nil)

	resp, err := svc.CreateSubscription(ctx, &dto.CreateSubscriptionRequest{
		CustomerID: "cus_1",
		Items:      []dto.SubscriptionItemRequest{{PriceID: "price_1", Quantity: 1}},
	})
	require.NoError(t, err)

	// The local id mirrors the provider's so webhook events resolve directly.
	assert.Equal(t, "sub_provider_1", resp.ID)
	assert.Equal(t, env.clock.Now().Add(time.Hour), resp.ExpirationDate)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "price_1", resp.Items[0].PriceID)

	stored, err := env.subs.Get(ctx, "sub_provider_1")
	require.NoError(t, err)
	assert.Equal(t, "cus_1", stored.CustomerID)
}

func TestCreateSubscription_DefaultsQuantityToOne(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	svc := NewSubscriptionService(env.params)

	env.seedCustomer(ctx, "cus_1", 1)
	env.seedPrice(ctx, "price_1")

	env.gateway.On("CreateSubscription", mock.Anything, mock.MatchedBy(func(req *stripe.CreateSubscriptionRequest) bool {
		return len(req.Items) == 1 && req.Items[0].Quantity == 1
	})).Return(&stripe.ProviderSubscription{ID: "sub_provider_1"}, nil)

	resp, err := svc.CreateSubscription(ctx, &dto.CreateSubscriptionRequest{
		CustomerID: "cus_1",
		Items:      []dto.SubscriptionItemRequest{{PriceID: "price_1"}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Items[0].Quantity)
}

func TestCreateSubscription_UnknownPriceFails(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	svc := NewSubscriptionService(env.params)

	env.seedCustomer(ctx, "cus_1", 1)

	_, err := svc.CreateSubscription(ctx, &dto.CreateSubscriptionRequest{
		CustomerID: "cus_1",
		Items:      []dto.SubscriptionItemRequest{{PriceID: "price_missing", Quantity: 1}},
	})
	require.Error(t, err)
	assert.True(t, ierr.IsNotFound(err))
	env.gateway.AssertNotCalled(t, "CreateSubscription", mock.Anything, mock.Anything)
}

func TestCancelSubscription_CancelsProviderThenDeletes(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	svc := NewSubscriptionService(env.params)

	env.seedCustomer(ctx, "cus_1", 1)
	env.seedSubscription(ctx, "sub_1", "cus_1", env.clock.Now().Add(time.Hour))

	env.gateway.On("CancelSubscription", mock.Anything, "sub_1").Return(nil)

	require.NoError(t, svc.CancelSubscription(ctx, "sub_1"))

	_, err := env.subs.Get(ctx, "sub_1")
	assert.True(t, ierr.IsNotFound(err))
	env.gateway.AssertExpectations(t)
}

func TestCancelSubscription_ProviderFailureKeepsLocalRecord(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	svc := NewSubscriptionService(env.params)

	env.seedCustomer(ctx, "cus_1", 1)
	env.seedSubscription(ctx, "sub_1", "cus_1", env.clock.Now().Add(time.Hour))

	env.gateway.On("CancelSubscription", mock.Anything, "sub_1").
		Return(assert.AnError)

	require.Error(t, svc.CancelSubscription(ctx, "sub_1"))

	_, err := env.subs.Get(ctx, "sub_1")
	assert.NoError(t, err)
}
