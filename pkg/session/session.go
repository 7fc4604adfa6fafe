// Package session persists browsing sessions.
//
// A [Session] records where a user left off in a schema document: the
// breadcrumb trail of definition keys, plus the document's source and
// fingerprint so the trail is only offered again for the same document.
//
// Sessions are stored through a [cache.Cache] backend:
//   - cache.FileCache: JSON files under ~/.cache/protonav, for the CLI
//   - cache.RedisCache: shared storage for the HTTP API
//   - cache.NullCache: persistence disabled
//
// # Usage
//
//	store := session.NewStore(backend, session.Options{TTL: session.DefaultTTL})
//
//	sess := session.New("api.json", fingerprint, trail)
//	if err := store.Save(ctx, sess); err != nil {
//	    return err
//	}
//
//	// Later, for the same document bytes:
//	sess, err := store.Latest(ctx, fingerprint)
package session

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long an unused session is kept.
const DefaultTTL = 30 * 24 * time.Hour

// Session is a saved breadcrumb trail for one document.
type Session struct {
	ID          string    `json:"id"`
	Source      string    `json:"source,omitempty"`
	Fingerprint string    `json:"fingerprint"`
	Trail       []string  `json:"trail"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	ExpiresAt   time.Time `json:"expires_at,omitempty"`
}

// New creates a session with a fresh random ID.
func New(source, fingerprint string, trail []string) *Session {
	now := time.Now()
	return &Session{
		ID:          uuid.NewString(),
		Source:      source,
		Fingerprint: fingerprint,
		Trail:       slices.Clone(trail),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsExpired reports whether the session has passed its expiry.
// Sessions without an expiry never expire.
func (s *Session) IsExpired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// Depth returns the number of entries in the trail.
func (s *Session) Depth() int {
	return len(s.Trail)
}

// Store is the interface for session storage.
type Store interface {
	// Get retrieves a session by ID. Missing sessions return an error with
	// code SESSION_NOT_FOUND, expired ones SESSION_EXPIRED.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Latest retrieves the most recently saved session for a document
	// fingerprint.
	Latest(ctx context.Context, fingerprint string) (*Session, error)

	// Save stores a session and marks it as the latest for its fingerprint.
	Save(ctx context.Context, sess *Session) error

	// Delete removes a session.
	Delete(ctx context.Context, sessionID string) error

	// Close releases the underlying backend.
	Close() error
}
