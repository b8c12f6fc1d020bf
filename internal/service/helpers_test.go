package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/apnmt/payment/internal/cache"
	"github.com/apnmt/payment/internal/config"
	"github.com/apnmt/payment/internal/domain/customer"
	"github.com/apnmt/payment/internal/domain/events"
	"github.com/apnmt/payment/internal/domain/subscription"
	"github.com/apnmt/payment/internal/integration/stripe"
	"github.com/apnmt/payment/internal/logger"
	"github.com/apnmt/payment/internal/testutil"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// publishedEvent is one captured publish call.
type publishedEvent struct {
	Topic string
	Event *events.Envelope
}

// recordingPublisher implements events.Publisher and captures every publish.
// Setting failNext makes that many publishes fail before recording resumes.
type recordingPublisher struct {
	mu        sync.Mutex
	published []publishedEvent
	failNext  int
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, event *events.Envelope) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failNext > 0 {
		p.failNext--
		return errors.New("publisher unavailable")
	}
	p.published = append(p.published, publishedEvent{Topic: topic, Event: event})
	return nil
}

func (p *recordingPublisher) Events() []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]publishedEvent(nil), p.published...)
}

// MockBillingGateway is a mock implementation of stripe.Gateway
type MockBillingGateway struct {
	mock.Mock
}

func (m *MockBillingGateway) GetSubscription(ctx context.Context, subscriptionID string) (*stripe.ProviderSubscription, error) {
	args := m.Called(ctx, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.ProviderSubscription), args.Error(1)
}

func (m *MockBillingGateway) CreateCustomer(ctx context.Context, req *stripe.CreateCustomerRequest) (*stripe.ProviderCustomer, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.ProviderCustomer), args.Error(1)
}

func (m *MockBillingGateway) CreateProduct(ctx context.Context, req *stripe.CreateProductRequest) (*stripe.ProviderProduct, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.ProviderProduct), args.Error(1)
}

func (m *MockBillingGateway) CreatePrice(ctx context.Context, req *stripe.CreatePriceRequest) (*stripe.ProviderPrice, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.ProviderPrice), args.Error(1)
}

func (m *MockBillingGateway) CreateSubscription(ctx context.Context, req *stripe.CreateSubscriptionRequest) (*stripe.ProviderSubscription, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.ProviderSubscription), args.Error(1)
}

func (m *MockBillingGateway) CancelSubscription(ctx context.Context, subscriptionID string) error {
	args := m.Called(ctx, subscriptionID)
	return args.Error(0)
}

// testEnv bundles the in-memory dependencies of a service under test.
type testEnv struct {
	params    ServiceParams
	clock     *testutil.TestClock
	customers *testutil.InMemoryCustomerStore
	products  *testutil.InMemoryProductStore
	prices    *testutil.InMemoryPriceStore
	subs      *testutil.InMemorySubscriptionStore
	publisher *recordingPublisher
	gateway   *MockBillingGateway
}

func newTestLogger() *logger.Logger {
	zapLogger, _ := zap.NewDevelopment()
	return &logger.Logger{SugaredLogger: zapLogger.Sugar()}
}

func newTestEnv() *testEnv {
	clock := testutil.NewTestClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	subs := testutil.NewInMemorySubscriptionStore()
	customers := testutil.NewInMemoryCustomerStore().WithSubscriptions(subs)
	products := testutil.NewInMemoryProductStore()
	prices := testutil.NewInMemoryPriceStore()
	pub := &recordingPublisher{}
	gateway := new(MockBillingGateway)

	return &testEnv{
		params: ServiceParams{
			Logger:           newTestLogger(),
			Config:           config.GetDefaultConfig(),
			Clock:            clock,
			Cache:            cache.NewInMemoryCache(),
			CustomerRepo:     customers,
			ProductRepo:      products,
			PriceRepo:        prices,
			SubscriptionRepo: subs,
			BillingGateway:   gateway,
			EventPublisher:   pub,
		},
		clock:     clock,
		customers: customers,
		products:  products,
		prices:    prices,
		subs:      subs,
		publisher: pub,
		gateway:   gateway,
	}
}

// seedCustomer stores a customer and returns it.
func (e *testEnv) seedCustomer(ctx context.Context, id string, organizationID int64) *customer.Customer {
	cust := &customer.Customer{
		ID:             id,
		OrganizationID: organizationID,
		Email:          "billing@example.org",
		CreatedAt:      e.clock.Now(),
		UpdatedAt:      e.clock.Now(),
	}
	if err := e.customers.Save(ctx, cust); err != nil {
		panic(err)
	}
	return cust
}

// seedSubscription stores a subscription expiring at the given instant.
func (e *testEnv) seedSubscription(ctx context.Context, id, customerID string, expiration time.Time) *subscription.Subscription {
	sub := &subscription.Subscription{
		ID:             id,
		CustomerID:     customerID,
		ExpirationDate: expiration,
		CreatedAt:      e.clock.Now(),
		UpdatedAt:      e.clock.Now(),
	}
	sub.AddItem(&subscription.Item{
		ID:       id + "_item",
		PriceID:  "price_1",
		Quantity: 1,
	})
	if err := e.subs.Save(ctx, sub); err != nil {
		panic(err)
	}
	return sub
}
