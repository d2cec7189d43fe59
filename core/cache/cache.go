package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"meetmatch/core/config"
	"meetmatch/core/constants"
	"meetmatch/core/logger"

	"github.com/redis/go-redis/v9"
)

// Cache is a small JSON-over-redis cache used for OAuth state nonces and
// short-lived busy-interval results.
type Cache interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string, dest any) (bool, error)
	Delete(ctx context.Context, key string) error

	SetOAuthState(ctx context.Context, state string) error
	ConsumeOAuthState(ctx context.Context, state string) (bool, error)

	Close() error
}

type redisCache struct {
	client *redis.Client
}

func NewRedisCache(cfg config.RedisConfig) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis cache initialized", "addr", cfg.Addr, "db", cfg.DB)
	return &redisCache{client: client}, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

// Get unmarshals the cached value into dest and reports whether the key
// existed.
func (c *redisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (c *redisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

func (c *redisCache) SetOAuthState(ctx context.Context, state string) error {
	return c.client.Set(ctx, constants.RedisKeyOAuthState+state, "1", constants.OAuthStateTTL).Err()
}

// ConsumeOAuthState validates and deletes a state nonce in one step so a
// nonce cannot be replayed.
func (c *redisCache) ConsumeOAuthState(ctx context.Context, state string) (bool, error) {
	deleted, err := c.client.Del(ctx, constants.RedisKeyOAuthState+state).Result()
	if err != nil {
		return false, err
	}
	return deleted > 0, nil
}

func (c *redisCache) Close() error {
	return c.client.Close()
}
