package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	config "github.com/skillmarkets/backend/configs"
)

var Redis *redis.Client

// InitCache connects the redis client used for listing and search caching.
// The cache is optional; every helper is a no-op when redis is unconfigured.
func InitCache(cfg *config.Config) {
	if cfg.RedisAddr == "" {
		logrus.Warn("redis not configured, caching disabled")
		Redis = nil
		return
	}

	Redis = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	if _, err := Redis.Ping(context.Background()).Result(); err != nil {
		logrus.Warnf("redis unreachable, caching disabled: %v", err)
		Redis = nil
		return
	}
	logrus.Info("redis cache connected")
}

// GetCached reads key into dest, reporting whether it was present.
func GetCached(ctx context.Context, key string, dest any) (bool, error) {
	if Redis == nil {
		return false, nil
	}
	val, err := Redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return true, json.Unmarshal([]byte(val), dest)
}

func SetCached(ctx context.Context, key string, value any, ttl time.Duration) error {
	if Redis == nil {
		return nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return Redis.Set(ctx, key, b, ttl).Err()
}

func InvalidateCache(ctx context.Context, keys ...string) {
	if Redis == nil || len(keys) == 0 {
		return
	}
	if err := Redis.Del(ctx, keys...).Err(); err != nil {
		logrus.Warnf("cache invalidation failed: %v", err)
	}
}

// InvalidateCachePattern drops every key matching pattern. Search results are
// substring matches, so a new offer can affect any cached query, not just the
// one keyed on its exact subject.
func InvalidateCachePattern(ctx context.Context, pattern string) {
	if Redis == nil {
		return
	}
	iter := Redis.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logrus.Warnf("cache scan failed: %v", err)
		return
	}
	InvalidateCache(ctx, keys...)
}
