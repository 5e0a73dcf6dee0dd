// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// mockup.go provides a Valkey-backed cache of composed mockup results.
// Results are stored as JSON under their deterministic cache key, so a
// repeated mockup request skips the product/variant/asset lookups entirely.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"aiprintly/internal/models"
)

const (
	// mockupKeyPrefix namespaces mockup entries in Valkey.
	mockupKeyPrefix = "mockup:"

	// DefaultMockupTTL is how long a composed mockup reference stays cached.
	DefaultMockupTTL = 24 * time.Hour
)

// MockupCache stores mockup results in Valkey with a fixed TTL.
type MockupCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewMockupCache creates a mockup cache backed by the given Valkey client.
// A zero ttl selects DefaultMockupTTL.
func NewMockupCache(client *redis.Client, ttl time.Duration) *MockupCache {
	if ttl == 0 {
		ttl = DefaultMockupTTL
	}
	return &MockupCache{client: client, ttl: ttl}
}

// Get returns the cached result for key, or (nil, nil) on a miss.
func (mc *MockupCache) Get(ctx context.Context, key string) (*models.MockupResult, error) {
	val, err := mc.client.Get(ctx, mockupKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mockup cache get %s: %w", key, err)
	}

	var result models.MockupResult
	if err := json.Unmarshal(val, &result); err != nil {
		return nil, fmt.Errorf("mockup cache decode %s: %w", key, err)
	}
	slog.Debug("mockup cache hit", "key", key)
	return &result, nil
}

// Set stores result under key with the configured TTL. Concurrent writers
// for the same key store identical values, so last writer wins.
func (mc *MockupCache) Set(ctx context.Context, key string, result *models.MockupResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("mockup cache encode %s: %w", key, err)
	}
	if err := mc.client.Set(ctx, mockupKeyPrefix+key, data, mc.ttl).Err(); err != nil {
		return fmt.Errorf("mockup cache set %s: %w", key, err)
	}
	return nil
}

// Invalidate removes a single mockup entry.
func (mc *MockupCache) Invalidate(ctx context.Context, key string) {
	if err := mc.client.Del(ctx, mockupKeyPrefix+key).Err(); err != nil {
		slog.Warn("mockup cache invalidate error", "key", key, "error", err)
		return
	}
	slog.Debug("mockup cache invalidated", "key", key)
}

// InvalidateAll removes every mockup entry by scanning for the prefix.
// Used when print-area geometry or preview rendering changes.
func (mc *MockupCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := mc.client.Scan(ctx, cursor, mockupKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("mockup cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := mc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("mockup cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("mockup cache fully cleared", "deleted", deleted)
	}
}
