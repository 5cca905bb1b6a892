// Package cache provides the small key/value cache eeaconf keeps between
// runs.
//
// The artifact resolver uses it to remember remote repository misses so
// that a dependency that is not deployed anywhere does not trigger a round
// of HTTP requests on every configuration pass. Entries expire after a TTL.
//
// Two implementations are provided:
//   - [FileCache]: one JSON file per key below a directory (CLI default)
//   - [NullCache]: stores nothing (--no-cache, tests)
package cache

import (
	"context"
	"time"
)

// Default TTLs for cached entries.
const (
	// TTLMiss is how long a remote "not found" is remembered.
	TTLMiss = 24 * time.Hour
)

// Cache stores opaque byte values under string keys.
type Cache interface {
	// Get returns the value for key. A miss or an expired entry returns
	// (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
