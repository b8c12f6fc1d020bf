package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apnmt/payment/internal/api"
	"github.com/apnmt/payment/internal/api/cron"
	v1 "github.com/apnmt/payment/internal/api/v1"
	"github.com/apnmt/payment/internal/cache"
	"github.com/apnmt/payment/internal/config"
	"github.com/apnmt/payment/internal/integration/stripe"
	"github.com/apnmt/payment/internal/logger"
	"github.com/apnmt/payment/internal/postgres"
	"github.com/apnmt/payment/internal/pubsub"
	pubsubkafka "github.com/apnmt/payment/internal/pubsub/kafka"
	pubsubmemory "github.com/apnmt/payment/internal/pubsub/memory"
	"github.com/apnmt/payment/internal/publisher"
	"github.com/apnmt/payment/internal/repository"
	"github.com/apnmt/payment/internal/scheduler"
	"github.com/apnmt/payment/internal/sentry"
	"github.com/apnmt/payment/internal/service"
	"github.com/apnmt/payment/internal/types"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.NewLogger(cfg)
	if err != nil {
		panic(err)
	}

	sentryService, err := sentry.NewService(cfg, log)
	if err != nil {
		log.Fatalw("failed to initialize sentry", "error", err)
	}
	defer sentryService.Flush()

	db, err := postgres.NewClient(cfg, log)
	if err != nil {
		log.Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	repos := repository.NewPostgresRepositories(db, log)
	cacheClient := cache.Initialize(cfg, log)

	ps, err := newPubSub(cfg, log)
	if err != nil {
		log.Fatalw("failed to initialize pubsub", "error", err)
	}
	defer ps.Close()

	gateway, err := stripe.NewClient(cfg, log)
	if err != nil {
		log.Fatalw("failed to initialize billing gateway", "error", err)
	}

	params := service.ServiceParams{
		Logger:           log,
		Config:           cfg,
		Clock:            types.NewRealClock(),
		Cache:            cacheClient,
		DB:               db,
		CustomerRepo:     repos.Customer,
		ProductRepo:      repos.Product,
		PriceRepo:        repos.Price,
		SubscriptionRepo: repos.Subscription,
		BillingGateway:   gateway,
		EventPublisher:   publisher.NewActivationPublisher(ps, log),
	}

	customerService := service.NewCustomerService(params)
	productService := service.NewProductService(params)
	priceService := service.NewPriceService(params)
	subscriptionService := service.NewSubscriptionService(params)
	expirationService := service.NewSubscriptionExpirationService(params)
	webhookService := service.NewStripeWebhookService(params)
	defer webhookService.Close()

	router := api.NewRouter(api.Handlers{
		Customer:       v1.NewCustomerHandler(customerService, log),
		Product:        v1.NewProductHandler(productService, priceService, log),
		Price:          v1.NewPriceHandler(priceService, log),
		Subscription:   v1.NewSubscriptionHandler(subscriptionService, log),
		Webhook:        v1.NewWebhookHandler(webhookService, log),
		ExpirationCron: cron.NewExpirationCronHandler(expirationService, log),
	}, cfg, log)

	if cfg.Expiration.SchedulerEnabled {
		sweeper := scheduler.NewExpirationScheduler(cfg, expirationService, log)
		sweeper.Start()
		defer sweeper.Stop()
	}

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}

	go func() {
		log.Infow("starting http server", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("http server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Errorw("forced shutdown", "error", err)
	}
}

// newPubSub selects the messaging backend: kafka when brokers are configured,
// the in-process channel otherwise.
func newPubSub(cfg *config.Configuration, log *logger.Logger) (pubsub.PubSub, error) {
	if len(cfg.Kafka.Brokers) > 0 {
		return pubsubkafka.NewPubSub(cfg, log, cfg.Kafka.ConsumerGroup)
	}
	log.Warnw("no kafka brokers configured, using in-memory pubsub")
	return pubsubmemory.NewPubSub(log), nil
}
