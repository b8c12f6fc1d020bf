package cache

import (
	"github.com/apnmt/payment/internal/config"
	"github.com/apnmt/payment/internal/logger"
	redisClient "github.com/apnmt/payment/internal/redis"
)

// CacheType represents the type of cache to use
type CacheType string

const (
	// CacheTypeInMemory represents an in-memory cache
	CacheTypeInMemory CacheType = "inmemory"

	// CacheTypeRedis represents a Redis-backed cache
	CacheTypeRedis CacheType = "redis"
)

// Initialize initializes the cache system based on the configured type. When
// Redis is selected but unreachable, it falls back to the in-memory cache.
func Initialize(cfg *config.Configuration, log *logger.Logger) Cache {
	log.Infow("initializing cache system", "type", cfg.Cache.Type)

	switch CacheType(cfg.Cache.Type) {
	case CacheTypeRedis:
		client, err := redisClient.NewClient(cfg, log)
		if err != nil {
			log.Warnw("redis unavailable, falling back to in-memory cache", "error", err)
			return GetInMemoryCache()
		}
		InitializeRedisCache(client, log)
		return GetRedisCache()
	case CacheTypeInMemory:
		fallthrough
	default:
		return GetInMemoryCache()
	}
}
