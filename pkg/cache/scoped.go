package cache

// ScopedKeyer wraps a Keyer with a prefix so several tools or tenants can
// share one backend without colliding.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "protonav:")
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
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// SessionKey generates a prefixed session key.
func (k *ScopedKeyer) SessionKey(sessionID string) string {
	return k.prefix + k.inner.SessionKey(sessionID)
}

// LatestKey generates a prefixed latest-session key.
func (k *ScopedKeyer) LatestKey(fingerprint string) string {
	return k.prefix + k.inner.LatestKey(fingerprint)
}
