// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about configuration passes, artifact resolution, cache
// operations, and HTTP calls.
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
//	    observability.SetConfigureHooks(&myConfigureHooks{})
//	    observability.SetResolveHooks(&myResolveHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Configure().OnPassStart(ctx, project)
//	// ... configure classpath ...
//	observability.Configure().OnPassComplete(ctx, project, annotated, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Configure Hooks
// =============================================================================

// ConfigureHooks receives events from project configuration passes.
type ConfigureHooks interface {
	// OnPassStart records the start of a configuration pass for a project.
	OnPassStart(ctx context.Context, project string)

	// OnPassComplete records the end of a pass and how many classpath
	// entries received an annotation path.
	OnPassComplete(ctx context.Context, project string, annotated int, duration time.Duration, err error)
}

// =============================================================================
// Resolve Hooks
// =============================================================================

// Resolution sources reported to ResolveHooks.
const (
	SourceWorkspace = "workspace"
	SourceLocal     = "local"
	SourceRemote    = "remote"
	SourceSystem    = "system"
)

// ResolveHooks receives events from artifact resolution.
type ResolveHooks interface {
	// OnResolve records the outcome of resolving one artifact.
	// source is empty when resolution failed.
	OnResolve(ctx context.Context, artifact, source string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
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

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopConfigureHooks is a no-op implementation of ConfigureHooks.
type NoopConfigureHooks struct{}

func (NoopConfigureHooks) OnPassStart(context.Context, string)                                 {}
func (NoopConfigureHooks) OnPassComplete(context.Context, string, int, time.Duration, error) {}

// NoopResolveHooks is a no-op implementation of ResolveHooks.
type NoopResolveHooks struct{}

func (NoopResolveHooks) OnResolve(context.Context, string, string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	configureHooks ConfigureHooks = NoopConfigureHooks{}
	resolveHooks   ResolveHooks   = NoopResolveHooks{}
	cacheHooks     CacheHooks     = NoopCacheHooks{}
	httpHooks      HTTPHooks      = NoopHTTPHooks{}
	hooksMu        sync.RWMutex
)

// SetConfigureHooks registers custom configuration pass hooks.
// This should be called once at application startup.
func SetConfigureHooks(h ConfigureHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		configureHooks = h
	}
}

// SetResolveHooks registers custom artifact resolution hooks.
func SetResolveHooks(h ResolveHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		resolveHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Configure returns the registered configuration pass hooks.
func Configure() ConfigureHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return configureHooks
}

// Resolve returns the registered resolution hooks.
func Resolve() ResolveHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return resolveHooks
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
	configureHooks = NoopConfigureHooks{}
	resolveHooks = NoopResolveHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
