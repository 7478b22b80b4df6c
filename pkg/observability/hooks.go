// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about figure sizing, leaf rendering, and cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so there are no import
// cycles and the core packages stay free of observability frameworks.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSizingHooks(&mySizingHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Sizing().OnAttemptStart(ctx, attempt, width, height)
//	// ... allocate ...
//	observability.Sizing().OnAttemptComplete(ctx, attempt, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Sizing Hooks
// =============================================================================

// SizingHooks receives events from size negotiation.
type SizingHooks interface {
	// Whole-figure allocation passes; sizes are in inches.
	OnAttemptStart(ctx context.Context, attempt int, width, height float64)
	OnAttemptComplete(ctx context.Context, attempt int, duration time.Duration, err error)

	// OnRescale records the factor applied before the next attempt.
	OnRescale(ctx context.Context, attempt int, factor float64)

	// OnLeafCorrected records one leaf's correction loop.
	OnLeafCorrected(ctx context.Context, kind string, iterations int, converged bool)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from rendering backends.
type RenderHooks interface {
	OnRenderStart(ctx context.Context, kind string)
	OnRenderComplete(ctx context.Context, kind string, duration time.Duration, err error)
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
// No-op Implementations
// =============================================================================

// NoopSizingHooks is a no-op implementation of SizingHooks.
type NoopSizingHooks struct{}

func (NoopSizingHooks) OnAttemptStart(context.Context, int, float64, float64)        {}
func (NoopSizingHooks) OnAttemptComplete(context.Context, int, time.Duration, error) {}
func (NoopSizingHooks) OnRescale(context.Context, int, float64)                      {}
func (NoopSizingHooks) OnLeafCorrected(context.Context, string, int, bool)           {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, string)                          {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	sizingHooks SizingHooks = NoopSizingHooks{}
	renderHooks RenderHooks = NoopRenderHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetSizingHooks registers custom sizing hooks.
// This should be called once at application startup before any figure is sized.
func SetSizingHooks(h SizingHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sizingHooks = h
	}
}

// SetRenderHooks registers custom render hooks.
// This should be called once at application startup before any rendering.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
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

// Sizing returns the registered sizing hooks.
func Sizing() SizingHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sizingHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	sizingHooks = NoopSizingHooks{}
	renderHooks = NoopRenderHooks{}
	cacheHooks = NoopCacheHooks{}
}
