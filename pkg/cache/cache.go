// Package cache stores rendered leaf fragments so repeated sizing passes
// and repeated runs skip the rendering backend.
//
// Backends:
//   - [NullCache]: caching disabled
//   - [FileCache]: per-user directory, used by the CLI
//   - [RedisCache]: shared cache for several machines rendering the same figures
//
// Keys come from a [Keyer], which hashes leaf fingerprints together with the
// requested size and resolution.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiration.
type Cache interface {
	// Get returns the stored value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value; ttl <= 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a value; missing keys are not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// Default entry lifetimes.
const (
	// TTLFragment is the lifetime of a rendered leaf fragment. Fragments are
	// pure functions of their key, so they only expire to bound disk use.
	TTLFragment = 7 * 24 * time.Hour

	// TTLFigure is the lifetime of a composed and serialized figure.
	TTLFigure = 24 * time.Hour
)
