package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResponseCache is a small TTL cache for provider fetch results, backed by
// redis. A nil client turns every operation into a no-op miss, so callers
// never need to branch on whether caching is configured.
type ResponseCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *log.Logger
}

func New(rdb *redis.Client, ttl time.Duration) *ResponseCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ResponseCache{
		rdb:    rdb,
		ttl:    ttl,
		logger: log.New(log.Writer(), "[CACHE] ", log.LstdFlags),
	}
}

func (c *ResponseCache) Get(ctx context.Context, key string) (string, bool) {
	if c == nil || c.rdb == nil {
		return "", false
	}
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Printf("get %s: %v", key, err)
		}
		return "", false
	}
	return val, true
}

func (c *ResponseCache) Set(ctx context.Context, key, value string) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, key, value, c.ttl).Err(); err != nil {
		c.logger.Printf("set %s: %v", key, err)
	}
}
