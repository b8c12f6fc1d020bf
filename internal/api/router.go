package api

import (
	"net/http"

	"github.com/apnmt/payment/internal/api/cron"
	v1 "github.com/apnmt/payment/internal/api/v1"
	"github.com/apnmt/payment/internal/config"
	"github.com/apnmt/payment/internal/logger"
	"github.com/apnmt/payment/internal/rest/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers bundles all HTTP handlers wired by the router.
type Handlers struct {
	Customer     *v1.CustomerHandler
	Product      *v1.ProductHandler
	Price        *v1.PriceHandler
	Subscription *v1.SubscriptionHandler
	Webhook      *v1.WebhookHandler

	ExpirationCron *cron.ExpirationCronHandler
}

// NewRouter builds the gin engine with the standard middleware chain and all
// public and cron routes.
func NewRouter(handlers Handlers, cfg *config.Configuration, log *logger.Logger) *gin.Engine {
	if cfg.Deployment.Mode == config.ModeProd {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.SentryMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.LoggingMiddleware(log))
	router.Use(middleware.ErrorHandler)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiV1 := router.Group("/v1")
	{
		customers := apiV1.Group("/customers")
		{
			customers.POST("", handlers.Customer.CreateCustomer)
			customers.GET("", handlers.Customer.ListCustomers)
			customers.GET("/:id", handlers.Customer.GetCustomer)
			customers.GET("/organization/:organization_id", handlers.Customer.GetCustomerByOrganization)
			customers.DELETE("/:id", handlers.Customer.DeleteCustomer)
		}

		products := apiV1.Group("/products")
		{
			products.POST("", handlers.Product.CreateProduct)
			products.GET("", handlers.Product.ListProducts)
			products.GET("/:id", handlers.Product.GetProduct)
			products.GET("/:id/prices", handlers.Product.ListProductPrices)
			products.DELETE("/:id", handlers.Product.DeleteProduct)
		}

		prices := apiV1.Group("/prices")
		{
			prices.POST("", handlers.Price.CreatePrice)
			prices.GET("", handlers.Price.ListPrices)
			prices.GET("/:id", handlers.Price.GetPrice)
			prices.DELETE("/:id", handlers.Price.DeletePrice)
		}

		subscriptions := apiV1.Group("/subscriptions")
		{
			subscriptions.POST("", handlers.Subscription.CreateSubscription)
			subscriptions.GET("", handlers.Subscription.ListSubscriptions)
			subscriptions.GET("/:id", handlers.Subscription.GetSubscription)
			subscriptions.DELETE("/:id", handlers.Subscription.CancelSubscription)
		}

		webhooks := apiV1.Group("/webhooks")
		{
			webhooks.POST("/stripe", handlers.Webhook.HandleStripeEvent)
		}
	}

	// Cron routes are meant to be triggered by an external scheduler when the
	// in-process one is disabled.
	cronGroup := router.Group("/cron")
	{
		cronGroup.POST("/subscriptions/expiration", handlers.ExpirationCron.CheckExpirations)
	}

	return router
}
