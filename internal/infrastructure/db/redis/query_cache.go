package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const scanBatch = 200

// QueryCache stores upstream response snapshots in Redis.
// Key format: query:<tenant>:<kind>:<list|detail>:<discriminator>.
// Invalidation deletes by key prefix; a deleted entry is a stale entry,
// and the next read refetches from the CRM API.
type QueryCache struct {
	client *redis.Client
}

func NewQueryCache(client *redis.Client) *QueryCache {
	return &QueryCache{client: client}
}

// Get returns the cached payload and whether a live entry existed.
func (c *QueryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache get: %w", err)
	}
	return data, true, nil
}

// Set stores a payload with the given TTL.
func (c *QueryCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate deletes every key starting with one of the given prefixes.
// SCAN keeps this non-blocking on large keyspaces.
func (c *QueryCache) Invalidate(ctx context.Context, prefixes ...string) error {
	for _, prefix := range prefixes {
		iter := c.client.Scan(ctx, 0, prefix+"*", scanBatch).Iterator()

		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
			if len(keys) >= scanBatch {
				if err := c.client.Del(ctx, keys...).Err(); err != nil {
					return fmt.Errorf("cache invalidate: %w", err)
				}
				keys = keys[:0]
			}
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("cache scan: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("cache invalidate: %w", err)
			}
		}
	}
	return nil
}
