package service

import (
	"github.com/apnmt/payment/internal/cache"
	"github.com/apnmt/payment/internal/config"
	"github.com/apnmt/payment/internal/domain/customer"
	"github.com/apnmt/payment/internal/domain/events"
	"github.com/apnmt/payment/internal/domain/price"
	"github.com/apnmt/payment/internal/domain/product"
	"github.com/apnmt/payment/internal/domain/subscription"
	"github.com/apnmt/payment/internal/integration/stripe"
	"github.com/apnmt/payment/internal/logger"
	"github.com/apnmt/payment/internal/postgres"
	"github.com/apnmt/payment/internal/types"
)

// ServiceParams bundles the dependencies shared by all services. Services
// embed it and pick what they need.
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	Clock  types.Clock
	Cache  cache.Cache

	// DB is optional; services that coordinate across instances (the
	// expiration sweep's advisory lock) use it when present.
	DB *postgres.Client

	CustomerRepo     customer.Repository
	ProductRepo      product.Repository
	PriceRepo        price.Repository
	SubscriptionRepo subscription.Repository

	BillingGateway stripe.Gateway
	EventPublisher events.Publisher
}
