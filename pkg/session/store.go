package session

import (
	"context"
	"time"

	json "github.com/goccy/go-json"

	"github.com/matzehuels/protonav/pkg/cache"
	"github.com/matzehuels/protonav/pkg/errors"
	"github.com/matzehuels/protonav/pkg/observability"
)

// Options configures a CacheStore.
type Options struct {
	// TTL bounds how long sessions are kept. Zero keeps them forever.
	TTL time.Duration

	// Keyer builds storage keys. Defaults to cache.NewDefaultKeyer.
	Keyer cache.Keyer
}

// CacheStore keeps sessions in a cache.Cache backend.
type CacheStore struct {
	backend cache.Cache
	keyer   cache.Keyer
	ttl     time.Duration
}

// NewStore creates a session store on top of backend.
func NewStore(backend cache.Cache, opts Options) *CacheStore {
	if opts.Keyer == nil {
		opts.Keyer = cache.NewDefaultKeyer()
	}
	return &CacheStore{backend: backend, keyer: opts.Keyer, ttl: opts.TTL}
}

// Get retrieves a session by ID.
func (s *CacheStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	if err := errors.ValidateSessionID(sessionID); err != nil {
		return nil, err
	}

	key := s.keyer.SessionKey(sessionID)
	data, hit, err := s.backend.Get(ctx, key)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "load session %s", sessionID)
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, "session")
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %s not found", sessionID)
	}
	observability.Cache().OnCacheHit(ctx, "session")

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		_ = s.backend.Delete(ctx, key)
		return nil, errors.Wrap(errors.ErrCodeSessionNotFound, err, "session %s is unreadable", sessionID)
	}
	if sess.IsExpired() {
		_ = s.backend.Delete(ctx, key)
		return nil, errors.New(errors.ErrCodeSessionExpired, "session %s expired", sessionID)
	}
	return &sess, nil
}

// Latest retrieves the most recent session saved for fingerprint.
func (s *CacheStore) Latest(ctx context.Context, fingerprint string) (*Session, error) {
	if fingerprint == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "fingerprint cannot be empty")
	}
	id, hit, err := s.backend.Get(ctx, s.keyer.LatestKey(fingerprint))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "load latest session")
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, "latest")
		return nil, errors.New(errors.ErrCodeSessionNotFound, "no saved session for this document")
	}
	observability.Cache().OnCacheHit(ctx, "latest")

	sess, err := s.Get(ctx, string(id))
	if err != nil {
		return nil, err
	}
	if sess.Fingerprint != fingerprint {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "no saved session for this document")
	}
	return sess, nil
}

// Save stores sess, refreshing its timestamps.
func (s *CacheStore) Save(ctx context.Context, sess *Session) error {
	if sess == nil {
		return errors.New(errors.ErrCodeInvalidInput, "session cannot be nil")
	}
	if err := errors.ValidateSessionID(sess.ID); err != nil {
		return err
	}

	now := time.Now()
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = now
	}
	sess.UpdatedAt = now
	sess.ExpiresAt = time.Time{}
	if s.ttl > 0 {
		sess.ExpiresAt = now.Add(s.ttl)
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode session")
	}
	if err := s.backend.Set(ctx, s.keyer.SessionKey(sess.ID), data, s.ttl); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "save session %s", sess.ID)
	}
	observability.Cache().OnCacheSet(ctx, "session", len(data))

	if sess.Fingerprint != "" {
		if err := s.backend.Set(ctx, s.keyer.LatestKey(sess.Fingerprint), []byte(sess.ID), s.ttl); err != nil {
			return errors.Wrap(errors.ErrCodeStorage, err, "index session %s", sess.ID)
		}
		observability.Cache().OnCacheSet(ctx, "latest", len(sess.ID))
	}
	return nil
}

// Delete removes a session. Deleting a missing session is not an error.
func (s *CacheStore) Delete(ctx context.Context, sessionID string) error {
	if err := errors.ValidateSessionID(sessionID); err != nil {
		return err
	}
	if err := s.backend.Delete(ctx, s.keyer.SessionKey(sessionID)); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete session %s", sessionID)
	}
	return nil
}

// Close closes the backend.
func (s *CacheStore) Close() error {
	return s.backend.Close()
}

var _ Store = (*CacheStore)(nil)
