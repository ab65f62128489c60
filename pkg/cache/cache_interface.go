package cache

import (
	"context"
	"time"
)

// Cache is the contract of the cache layer so the Redis implementation can be swapped
// for an in-memory one in tests.
type Cache interface {
	// Get unmarshals the cached value into dest.
	// found is false on a cache miss; dest is left untouched in that case.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value with the given TTL
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes the keys
	Delete(ctx context.Context, keys ...string) error

	Ping(ctx context.Context) error
}
