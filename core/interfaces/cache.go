// Package interfaces defines the core interfaces used throughout the application.
// These interfaces allow for dependency injection and make the code testable.
package interfaces

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Cache.Get when the key is not present.
// Implementations may wrap it; callers should test with errors.Is.
var ErrCacheMiss = errors.New("cache: key not found")

// Cache defines the interface for the key-value store backing the recipe
// collection. Implementations can be in-memory, Redis, SQLite, or any other
// store that can hold a byte blob under a string key.
//
// Example usage:
//
//	// Store a value with no expiry
//	err := cache.Set(ctx, "recipes", blob, 0)
//
//	// Retrieve a value
//	data, err := cache.Get(ctx, "recipes")
//	if errors.Is(err, interfaces.ErrCacheMiss) {
//		// not cached yet
//	}
//
//	// Delete a value
//	err = cache.Delete(ctx, "recipes")
type Cache interface {
	// Get retrieves a value from the cache by key.
	// Returns ErrCacheMiss (possibly wrapped) if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with the given key and TTL.
	// If ttl is 0, the value must be stored indefinitely.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache by key.
	// Returns nil if the key doesn't exist.
	Delete(ctx context.Context, key string) error
}

// IsCacheMiss reports whether err signals an absent key.
func IsCacheMiss(err error) bool {
	return errors.Is(err, ErrCacheMiss)
}
