// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about layout runs, scene synchronization, and store access.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetEngineHooks(&myEngineHooks{})
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Engine().OnSolveStart(ctx, nodeCount, linkCount)
//	// ... run solver ...
//	observability.Engine().OnSolveComplete(ctx, ticks, alpha, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Engine Hooks
// =============================================================================

// EngineHooks receives events from the layout engine lifecycle.
type EngineHooks interface {
	// Normalization events
	OnNormalizeStart(ctx context.Context, rawNodes, rawLinks int)
	OnNormalizeComplete(ctx context.Context, nodes, links, warnings int, err error)

	// Solver events
	OnSolveStart(ctx context.Context, nodeCount, linkCount int)
	OnSolveComplete(ctx context.Context, ticks uint64, alpha float64, duration time.Duration)

	// Scene events
	OnReconcileComplete(ctx context.Context, nodes, links int, err error)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from graph store operations.
type StoreHooks interface {
	// OnStoreGet records a document read.
	OnStoreGet(ctx context.Context, backend, name string, found bool)

	// OnStorePut records a document write.
	OnStorePut(ctx context.Context, backend, name string, size int)

	// OnStoreError records a backend failure.
	OnStoreError(ctx context.Context, backend, op string, err error)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from export rendering.
type RenderHooks interface {
	// OnRenderStart records the beginning of an export.
	OnRenderStart(ctx context.Context, format string, nodeCount int)

	// OnRenderComplete records a finished export.
	OnRenderComplete(ctx context.Context, format string, bytes int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopEngineHooks is a no-op implementation of EngineHooks.
type NoopEngineHooks struct{}

func (NoopEngineHooks) OnNormalizeStart(context.Context, int, int)                   {}
func (NoopEngineHooks) OnNormalizeComplete(context.Context, int, int, int, error)    {}
func (NoopEngineHooks) OnSolveStart(context.Context, int, int)                       {}
func (NoopEngineHooks) OnSolveComplete(context.Context, uint64, float64, time.Duration) {
}
func (NoopEngineHooks) OnReconcileComplete(context.Context, int, int, error) {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnStoreGet(context.Context, string, string, bool) {}
func (NoopStoreHooks) OnStorePut(context.Context, string, string, int)  {}
func (NoopStoreHooks) OnStoreError(context.Context, string, string, error) {
}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, string, int) {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	engineHooks EngineHooks = NoopEngineHooks{}
	storeHooks  StoreHooks  = NoopStoreHooks{}
	renderHooks RenderHooks = NoopRenderHooks{}
	hooksMu     sync.RWMutex
)

// SetEngineHooks registers custom engine hooks.
// This should be called once at application startup before any layout runs.
func SetEngineHooks(h EngineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		engineHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup before any store operations.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// SetRenderHooks registers custom render hooks.
// This should be called once at application startup before any exports.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// Engine returns the registered engine hooks.
func Engine() EngineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return engineHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	engineHooks = NoopEngineHooks{}
	storeHooks = NoopStoreHooks{}
	renderHooks = NoopRenderHooks{}
}
