package cache

import (
	"context"
	"time"
)

// Cache defines the key-value operations the challenge server relies on.
// Both the in-process LRU and Redis implement it, so state can survive a
// restart when Redis is configured.
type Cache interface {
	BasicOps
	LockOps

	// Ping verifies the cache connection is alive
	Ping(ctx context.Context) error

	// Close closes the cache connection
	Close() error
}

// BasicOps defines basic key-value operations
type BasicOps interface {
	// Get retrieves the value for the given key.
	// A missing key yields "" and a nil error.
	Get(ctx context.Context, key string) (string, error)

	// Set stores a key-value pair with optional TTL
	// If ttl is 0, the key will not expire
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// SetNX sets the value only if the key does not exist (atomic operation)
	// Returns true if the key was set, false if it already existed
	SetNX(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)

	// Del deletes one or more keys
	Del(ctx context.Context, keys ...string) error

	// Exists returns the number of given keys that exist
	Exists(ctx context.Context, keys ...string) (int64, error)

	// IncrBy increments the integer value of a key by the given amount
	IncrBy(ctx context.Context, key string, value int64) (int64, error)
}

// LockOps defines lock operations
type LockOps interface {
	// TryLock attempts to acquire a lock
	// Returns true if lock was acquired, false otherwise
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Unlock releases a lock
	Unlock(ctx context.Context, key string) error
}
