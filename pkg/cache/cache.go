package cache

import (
	"context"
	"time"
)

// Cache is the contract the application codes against, so the Redis
// implementation can be swapped for an in-memory one in tests.
type Cache interface {
	// Increment atomically increments a counter key and returns the new value.
	Increment(ctx context.Context, key string) (int64, error)

	// GetInt64 reads a counter key, returning 0 when the key is absent.
	GetInt64(ctx context.Context, key string) (int64, error)

	// Expire sets a TTL on an existing key.
	Expire(ctx context.Context, key string, ttl time.Duration) error

	// Delete removes keys.
	Delete(ctx context.Context, keys ...string) error

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
}
