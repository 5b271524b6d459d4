// Package observability provides hooks for metrics and diagnostics.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register
// hooks at startup to receive events about transform runs and layout
// cache operations; the engine itself keeps no global debug flag.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Hook interfaces per event category
//   - No-op default implementations
//   - Registration of custom implementations at startup
//
// This avoids import cycles (hooks are registered by main, not by
// libraries) and keeps the engine free of observability frameworks.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetTransformHooks(&myTransformHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Transform().OnStage("view-level", nodes, edges, elapsed)
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Transform Hooks
// =============================================================================

// TransformHooks receives events from the transform pipeline.
type TransformHooks interface {
	// OnTransformStart records the start of a transform run over the
	// full model.
	OnTransformStart(nodes, edges int)

	// OnStage records completion of a single filter stage with the
	// surviving node/edge counts.
	OnStage(stage string, nodes, edges int, duration time.Duration)

	// OnLayout records a completed layout computation.
	OnLayout(algorithm string, nodes int, duration time.Duration, cacheHit bool)

	// OnTransformComplete records the finished run with visible counts
	// and the number of non-fatal warnings.
	OnTransformComplete(visibleNodes, visibleEdges, warnings int, duration time.Duration)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from layout cache operations.
type CacheHooks interface {
	// OnHit records a cache hit for the given key.
	OnHit(key string)

	// OnMiss records a cache miss for the given key.
	OnMiss(key string)

	// OnEvict records eviction of the oldest entry.
	OnEvict(key string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopTransformHooks is a no-op implementation of TransformHooks.
type NoopTransformHooks struct{}

func (NoopTransformHooks) OnTransformStart(int, int)                       {}
func (NoopTransformHooks) OnStage(string, int, int, time.Duration)         {}
func (NoopTransformHooks) OnLayout(string, int, time.Duration, bool)       {}
func (NoopTransformHooks) OnTransformComplete(int, int, int, time.Duration) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnHit(string)   {}
func (NoopCacheHooks) OnMiss(string)  {}
func (NoopCacheHooks) OnEvict(string) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	transformHooks TransformHooks = NoopTransformHooks{}
	cacheHooks     CacheHooks     = NoopCacheHooks{}
	hooksMu        sync.RWMutex
)

// SetTransformHooks registers custom transform hooks.
// This should be called once at application startup before any transform runs.
func SetTransformHooks(h TransformHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		transformHooks = h
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

// Transform returns the registered transform hooks.
func Transform() TransformHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return transformHooks
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
	transformHooks = NoopTransformHooks{}
	cacheHooks = NoopCacheHooks{}
}
