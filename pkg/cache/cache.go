// Package cache provides byte-level caching with a TTL.
//
// It backs the httputil remote graph downloads: fetched files are
// validator input, so reusing them changes nothing downstream. Two
// backends are provided: [FileCache] persists entries to a directory, and
// [NullCache] disables caching entirely.
package cache

import (
	"context"
	"time"
)

// Cache stores raw bytes under string keys with an optional TTL.
//
// Implementations must be safe for concurrent use by multiple goroutines.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}
