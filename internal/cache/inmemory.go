package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

type cacheEntry struct {
	value     interface{}
	expiresAt time.Time
}

// InMemoryCache implements the Cache interface with a process-local map.
type InMemoryCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

var (
	inMemoryCache     *InMemoryCache
	inMemoryCacheOnce sync.Once
)

// NewInMemoryCache creates a new in-memory cache
func NewInMemoryCache() *InMemoryCache {
	return &InMemoryCache{
		entries: make(map[string]cacheEntry),
	}
}

// InitializeInMemoryCache initializes the global in-memory cache instance
func InitializeInMemoryCache() {
	inMemoryCacheOnce.Do(func() {
		inMemoryCache = NewInMemoryCache()
	})
}

// GetInMemoryCache returns the global in-memory cache instance
func GetInMemoryCache() *InMemoryCache {
	InitializeInMemoryCache()
	return inMemoryCache
}

func (c *InMemoryCache) Get(ctx context.Context, key string) (interface{}, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		c.Delete(ctx, key)
		return nil, false
	}
	return entry.value, true
}

func (c *InMemoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) {
	if expiration == 0 {
		expiration = ExpiryDefaultInMemory
	}
	c.mu.Lock()
	c.entries[key] = cacheEntry{value: value, expiresAt: time.Now().Add(expiration)}
	c.mu.Unlock()
}

func (c *InMemoryCache) Delete(ctx context.Context, key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

func (c *InMemoryCache) DeleteByPrefix(ctx context.Context, prefix string) {
	c.mu.Lock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}

func (c *InMemoryCache) Flush(ctx context.Context) {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}
