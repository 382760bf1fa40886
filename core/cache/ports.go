// Package cache holds the key/value port used for short-lived coordination
// state such as per-order reconciliation leases.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when the key is absent or expired.
var ErrNotFound = errors.New("key not found")

// Cache defines the caching operations interface.
// Implementations: RedisAdapter for shared state across processes,
// MemoryAdapter for a single process.
type Cache interface {
	// Get retrieves a value from the cache by key.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with the specified key and TTL.
	// TTL of 0 means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// SetNX stores the value only when the key does not exist yet.
	// It reports whether the value was stored.
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)

	// Delete removes a value from the cache by key.
	Delete(ctx context.Context, key string) error

	// DeleteIfValue removes the key only while it still holds value.
	// It reports whether the key was removed.
	DeleteIfValue(ctx context.Context, key string, value []byte) (bool, error)

	// Ping checks if the cache service is reachable.
	Ping(ctx context.Context) error

	// Close closes the cache connection.
	Close() error
}

// New returns a RedisAdapter when redisURL is set and a MemoryAdapter otherwise.
func New(redisURL string) (Cache, error) {
	if redisURL == "" {
		return NewMemoryAdapter(nil), nil
	}
	return NewRedisAdapter(redisURL)
}
