package redis

import (
	"context"
	"time"

	"github.com/apnmt/payment/internal/config"
	ierr "github.com/apnmt/payment/internal/errors"
	"github.com/apnmt/payment/internal/logger"
	"github.com/redis/go-redis/v9"
)

// Client wraps Redis client functionality
type Client struct {
	rdb *redis.Client
	log *logger.Logger
}

// NewClient creates a new Redis client and verifies connectivity.
func NewClient(cfg *config.Configuration, log *logger.Logger) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to connect to Redis").
			Mark(ierr.ErrSystem)
	}

	log.Infow("connected to redis", "address", cfg.Redis.Address)

	return &Client{rdb: rdb, log: log}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Ping checks the Redis connection
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.rdb.Ping(ctx).Result()
	return err
}

// Close closes the Redis client connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
