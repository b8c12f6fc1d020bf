package repository

import (
	"github.com/apnmt/payment/internal/domain/customer"
	"github.com/apnmt/payment/internal/domain/price"
	"github.com/apnmt/payment/internal/domain/product"
	"github.com/apnmt/payment/internal/domain/subscription"
	"github.com/apnmt/payment/internal/logger"
	pgclient "github.com/apnmt/payment/internal/postgres"
	pgrepo "github.com/apnmt/payment/internal/repository/postgres"
)

// Repositories bundles the persistence interfaces consumed by the services.
type Repositories struct {
	Customer     customer.Repository
	Product      product.Repository
	Price        price.Repository
	Subscription subscription.Repository
}

// NewPostgresRepositories wires all repositories against one postgres client.
func NewPostgresRepositories(client *pgclient.Client, log *logger.Logger) *Repositories {
	return &Repositories{
		Customer:     pgrepo.NewCustomerRepository(client, log),
		Product:      pgrepo.NewProductRepository(client, log),
		Price:        pgrepo.NewPriceRepository(client, log),
		Subscription: pgrepo.NewSubscriptionRepository(client, log),
	}
}
