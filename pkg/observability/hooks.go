// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup
// to receive events about navigation, session storage, and the HTTP API.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetNavigationHooks(&myNavigationHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Navigation().OnDrill(from, to, found)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Navigation Hooks
// =============================================================================

// NavigationHooks receives events from navigators.
//
// Navigation is synchronous and never blocks, so these methods take no
// context. Implementations must be fast and must not call back into the
// navigator that emitted the event.
type NavigationHooks interface {
	// OnDocument records a document (re)load. rootKey is "" when the
	// document was cleared.
	OnDocument(rootKey string, definitions int)

	// OnDrill records a drill from one definition into another. found
	// reports whether the target exists in the document.
	OnDrill(from, to string, found bool)

	// OnJump records a breadcrumb jump. depth is the stack length after the
	// jump; applied is false when the index was out of range.
	OnJump(index, depth int, applied bool)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from session storage.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP API server. The route argument is
// the matched route pattern, such as "/sessions/{id}/drill", and is identical
// for both events of one request.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, route string)

	// OnResponse records a completed response.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopNavigationHooks is a no-op implementation of NavigationHooks.
type NoopNavigationHooks struct{}

func (NoopNavigationHooks) OnDocument(string, int)       {}
func (NoopNavigationHooks) OnDrill(string, string, bool) {}
func (NoopNavigationHooks) OnJump(int, int, bool)        {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	navigationHooks NavigationHooks = NoopNavigationHooks{}
	cacheHooks      CacheHooks      = NoopCacheHooks{}
	httpHooks       HTTPHooks       = NoopHTTPHooks{}
	hooksMu         sync.RWMutex
)

// SetNavigationHooks registers custom navigation hooks.
// This should be called once at application startup before any navigation.
func SetNavigationHooks(h NavigationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		navigationHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before serving requests.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Navigation returns the registered navigation hooks.
func Navigation() NavigationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return navigationHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	navigationHooks = NoopNavigationHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
