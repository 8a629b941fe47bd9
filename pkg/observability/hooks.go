// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup
// to receive events about layer renders, composite merges, placements and
// output writes.
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
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnRenderStart(ctx, "TOP_COPPER[invert,mirror]")
//	// ... export the layer ...
//	observability.Pipeline().OnRenderComplete(ctx, "TOP_COPPER[invert,mirror]", duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the template pipeline.
type PipelineHooks interface {
	// Layer render events
	OnRenderStart(ctx context.Context, layer string)
	OnRenderComplete(ctx context.Context, layer string, duration time.Duration, err error)

	// OnCompositeComplete records the merge of a composite from its layers.
	OnCompositeComplete(ctx context.Context, name string, layers int, duration time.Duration, err error)

	// OnPlaceComplete records the placement of a composite at slot (x, y)
	// rotated by angle degrees.
	OnPlaceComplete(ctx context.Context, name string, x, y int, angle float64)
}

// =============================================================================
// Output Hooks
// =============================================================================

// OutputHooks receives events about the written template.
type OutputHooks interface {
	// OnWrite records a template write.
	OnWrite(ctx context.Context, path string, composites int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnRenderStart(context.Context, string) {}

func (NoopPipelineHooks) OnRenderComplete(context.Context, string, time.Duration, error) {}

func (NoopPipelineHooks) OnCompositeComplete(context.Context, string, int, time.Duration, error) {}

func (NoopPipelineHooks) OnPlaceComplete(context.Context, string, int, int, float64) {}

// NoopOutputHooks is a no-op implementation of OutputHooks.
type NoopOutputHooks struct{}

func (NoopOutputHooks) OnWrite(context.Context, string, int, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	outputHooks   OutputHooks   = NoopOutputHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetOutputHooks registers custom output hooks.
func SetOutputHooks(h OutputHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		outputHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Output returns the registered output hooks.
func Output() OutputHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return outputHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	outputHooks = NoopOutputHooks{}
}
