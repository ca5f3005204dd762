// Package cache provides a small key/value cache used to memoize computed
// settlement plans. The settlement engine itself stays stateless; the cache
// sits in front of it at the service layer and any miss simply recomputes.
package cache

import (
	"context"
	"time"
)

// Cache is the narrow interface the services depend on.
type Cache interface {
	// Get returns the cached value and whether it was present.
	Get(ctx context.Context, key string) (string, bool)

	// Set stores a value. A zero ttl means no expiry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Noop is the fallback when no cache backend is configured: every lookup
// misses and the plan is recomputed from scratch.
type Noop struct{}

func (Noop) Get(context.Context, string) (string, bool) { return "", false }

func (Noop) Set(context.Context, string, string, time.Duration) error { return nil }

func (Noop) Delete(context.Context, string) error { return nil }
