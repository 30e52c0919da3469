package handlers

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// ResponseCache is the small read-through surface the handlers use for
// responses that are expensive to recompute. Cache trouble is never an
// error: a failed fetch is a miss and the caller recomputes.
type ResponseCache interface {
	Fetch(ctx context.Context, key string) (string, bool)
	Store(ctx context.Context, key, value string, ttl time.Duration)
}

// RedisResponseCache backs ResponseCache with the generic cache client.
type RedisResponseCache struct {
	Client *redis.Client
}

func (c *RedisResponseCache) Fetch(ctx context.Context, key string) (string, bool) {
	val, err := c.Client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (c *RedisResponseCache) Store(ctx context.Context, key, value string, ttl time.Duration) {
	c.Client.Set(ctx, key, value, ttl)
}
