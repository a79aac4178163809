package config

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
)

// ConnectRedis dials the Redis instance named in the configuration and keeps
// a singleton client for the hospital directory cache. A nil client means the
// directory is served uncached; callers tolerate that.
func ConnectRedis() (*redis.Client, error) {
	var err error
	redisOnce.Do(func() {
		cfg := LoadConfig()
		if cfg != nil && cfg.AppEnv == "test" {
			// Tests run without a Redis instance.
			return
		}

		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err = rdb.Ping(ctx).Err(); err != nil {
			redisClient = nil
			err = fmt.Errorf("redis ping failed: %w", err)
			return
		}

		redisClient = rdb
		log.Printf("Connected to Redis at %s", cfg.RedisAddr)
	})
	return redisClient, err
}

// GetRedisClient returns the singleton client; nil when Redis is unavailable.
func GetRedisClient() *redis.Client {
	return redisClient
}

// SetRedisClientForTesting injects a replacement client. Tests only.
func SetRedisClientForTesting(client *redis.Client) {
	redisClient = client
}
