// Package cache provides caching for determinization results.
//
// Subset construction is deterministic: the same description and alphabet
// always produce the same machine. That makes results safe to cache under a
// hash of the canonical description. Backends:
//
//   - [FileCache]: directory-based cache for CLI usage
//   - [RedisCache]: Redis-backed cache for the API server
//   - [NullCache]: no-op cache for tests or --no-cache runs
//
// Keys are produced by a [Keyer]; wrap one in [NewScopedKeyer] to namespace
// keys per tenant or per deployment.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long cached machines stay valid. Determinization output
// never goes stale, so the TTL exists only to bound storage.
const DefaultTTL = 30 * 24 * time.Hour

// Cache is the storage interface shared by all backends.
// Get reports a miss with hit=false and a nil error; errors are reserved
// for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer generates cache keys for machine lookups.
type Keyer interface {
	// MachineKey returns the key for a determinized machine, given the
	// SHA-256 hash of the canonical description (see machine.Description.Canonical).
	MachineKey(descriptionHash string) string
}

// DefaultKeyer generates unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// MachineKey generates a key for a determinized machine.
func (k *DefaultKeyer) MachineKey(descriptionHash string) string {
	return "machine:" + descriptionHash
}

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation, e.g. one
// namespace per user in a shared Redis.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// MachineKey generates a prefixed key for a determinized machine.
func (k *ScopedKeyer) MachineKey(descriptionHash string) string {
	return k.prefix + k.inner.MachineKey(descriptionHash)
}
