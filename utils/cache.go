// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"voyago/config"

	"github.com/go-redis/redis/v8"
)

var (
	// ThreadStoreClient backs the conversation thread store.
	ThreadStoreClient *redis.Client
	// CacheClient is the generic cache client.
	CacheClient *redis.Client
)

// InitThreadStoreRedis initializes the Redis client holding dialogue threads.
func InitThreadStoreRedis() {
	ThreadStoreClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisThreadDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := ThreadStoreClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (thread store): %v", err)
	}
}

// GetThreadStoreClient returns the Redis client for thread persistence.
func GetThreadStoreClient() *redis.Client {
	if ThreadStoreClient == nil {
		InitThreadStoreRedis()
	}
	return ThreadStoreClient
}

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}
