// Package cache provides byte-oriented key-value storage with expiry.
//
// protonav persists browsing sessions (the breadcrumb trail a user left off
// at) through this package. Three backends implement [Cache]:
//
//   - [FileCache]: JSON files under the XDG cache directory, for the CLI
//   - [RedisCache]: a Redis server, for shared or multi-instance setups
//   - [NullCache]: stores nothing, used when persistence is disabled
//
// Keys are produced by a [Keyer] so that every backend sees the same layout.
package cache

import (
	"context"
	"time"
)

// Cache is a key-value store for opaque byte values.
type Cache interface {
	// Get returns the value for key. The boolean reports a hit; a miss is
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the backend.
	Close() error
}

// Keyer builds storage keys for session data.
type Keyer interface {
	// SessionKey is the key of a stored session.
	SessionKey(sessionID string) string

	// LatestKey is the key pointing at the most recent session for a
	// document fingerprint.
	LatestKey(fingerprint string) string
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default key layout.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SessionKey returns "session:<id>".
func (DefaultKeyer) SessionKey(sessionID string) string {
	return "session:" + sessionID
}

// LatestKey hashes the fingerprint so arbitrary strings make safe keys.
func (DefaultKeyer) LatestKey(fingerprint string) string {
	return digestKey("latest", fingerprint)
}
