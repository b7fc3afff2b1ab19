// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"sylt/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client, used for availability windows.
	CacheClient *redis.Client
	// SyncQueueClient is the dedicated client for the calendar sync queue DB.
	SyncQueueClient *redis.Client
)

// InitRedis initializes all Redis clients.
func InitRedis() {
	InitCache()
	InitSyncQueue()
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
	_, err := CacheClient.Ping(ctx).Result()
	if err != nil {
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

// InitSyncQueue initializes the Redis client backing the calendar sync queue.
func InitSyncQueue() {
	SyncQueueClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSyncQueueDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := SyncQueueClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Sync Queue): %v", err)
	}
}

// GetSyncQueueClient returns the Redis client backing the calendar sync queue.
func GetSyncQueueClient() *redis.Client {
	if SyncQueueClient == nil {
		InitSyncQueue()
	}
	return SyncQueueClient
}
