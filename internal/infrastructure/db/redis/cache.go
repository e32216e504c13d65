package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// PageCache stores JSON-encoded listing pages with a short TTL.
type PageCache struct {
	client *redis.Client
}

// NewPageCache creates a PageCache wrapping the given Redis client.
func NewPageCache(client *redis.Client) *PageCache {
	return &PageCache{client: client}
}

// Get loads the value stored under key into dest. It reports false when
// the key is absent.
func (c *PageCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("cache get: %w", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("cache decode: %w", err)
	}
	return true, nil
}

// Set stores value under key, JSON-encoded, expiring after ttl.
func (c *PageCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	return c.client.Set(ctx, key, raw, ttl).Err()
}
