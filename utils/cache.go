// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"mediq/config"

	"github.com/go-redis/redis/v8"
)

// AuthCacheClient is the dedicated client for authorization caching.
var AuthCacheClient *redis.Client

// InitAuthCache initializes the Redis client for authorization caching (using DB from AppConfig for auth cache).
func InitAuthCache() {
	AuthCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := AuthCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Auth Cache): %v", err)
	}
}

// GetAuthCacheClient returns the Redis client for authorization caching, or
// nil when the cache has not been initialized. Callers treat nil as a cache
// miss and fall back to the repository.
func GetAuthCacheClient() *redis.Client {
	return AuthCacheClient
}

// RefreshAuthCache stores a freshly issued token hash so the next request
// does not need a DB lookup.
func RefreshAuthCache(subject, tokenHash string, ttl time.Duration) {
	client := GetAuthCacheClient()
	if client == nil {
		return
	}
	_ = client.Set(context.Background(), AuthCachePrefix+subject, tokenHash, ttl).Err()
}

// ClearAuthCache drops the cached token hash for a principal, forcing the
// next request back to the repository.
func ClearAuthCache(subject string) {
	client := GetAuthCacheClient()
	if client == nil {
		return
	}
	_ = client.Del(context.Background(), AuthCachePrefix+subject).Err()
}
