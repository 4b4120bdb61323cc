// Package cache implements the per-user summary cache on Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
)

const keyPrefix = "summary"

// summaryCache implements the adapter.SummaryCache interface.
// Every key a user owns is also tracked in a set so Invalidate can drop them
// without scanning the keyspace.
type summaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSummaryCache creates a new Redis-backed summary cache.
func NewSummaryCache(client *redis.Client, ttl time.Duration) adapter.SummaryCache {
	return &summaryCache{
		client: client,
		ttl:    ttl,
	}
}

func entryKey(userID uuid.UUID, key string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, userID, key)
}

func indexKey(userID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:keys", keyPrefix, userID)
}

// Get loads a cached value into dest. A miss returns (false, nil).
func (c *summaryCache) Get(ctx context.Context, userID uuid.UUID, key string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, entryKey(userID, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cache entry: %w", err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("failed to decode cache entry: %w", err)
	}
	return true, nil
}

// Set stores value under key for the configured TTL.
func (c *summaryCache) Set(ctx context.Context, userID uuid.UUID, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	full := entryKey(userID, key)
	index := indexKey(userID)

	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, full, raw, c.ttl)
		pipe.SAdd(ctx, index, full)
		pipe.Expire(ctx, index, c.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// Invalidate drops every cached entry for the user.
func (c *summaryCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	index := indexKey(userID)

	keys, err := c.client.SMembers(ctx, index).Result()
	if err != nil {
		return fmt.Errorf("failed to list cache entries: %w", err)
	}

	if err := c.client.Del(ctx, append(keys, index)...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}
	return nil
}
