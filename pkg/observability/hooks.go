// Package observability provides hooks for metrics and tracing of the
// width search.
//
// Libraries call hooks through the global registry; the binary decides at
// startup which backend receives them. Without registration every hook is
// a no-op.
//
// # Architecture
//
//   - [SearchHooks]: annealing lifecycle (start, improvements, cooling, end)
//   - [ScoringHooks]: one call per full re-score with cache traffic
//   - No-op defaults plus a mutex-guarded registry
//   - [PrometheusHooks]: a backend exporting both as Prometheus metrics
//
// # Usage
//
//	reg := prometheus.NewRegistry()
//	h := observability.NewPrometheusHooks(reg)
//	observability.SetSearchHooks(h)
//	observability.SetScoringHooks(h)
//
// Libraries emit events:
//
//	observability.Search().OnBetterWidth(ctx, width, score)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Search Hooks
// =============================================================================

// SearchHooks receives events from the annealing driver.
type SearchHooks interface {
	// OnSearchStart fires once when a search goroutine begins.
	OnSearchStart(ctx context.Context, width string, vertices int)

	// OnBetterWidth fires for the initial solution and every new best width.
	OnBetterWidth(ctx context.Context, width int, score int64)

	// OnImprovement fires for every new best score.
	OnImprovement(ctx context.Context, score int64)

	// OnTemperature fires once per cooling batch.
	OnTemperature(ctx context.Context, temperature float64, score int64)

	// OnSearchComplete fires once when the search goroutine ends.
	OnSearchComplete(ctx context.Context, bestWidth int, iterations int64, duration time.Duration)
}

// =============================================================================
// Scoring Hooks
// =============================================================================

// ScoringHooks receives events from full re-scoring passes.
type ScoringHooks interface {
	// OnRescore records one pass: edges skipped by the threshold, cache
	// hits and misses, and the wall time of the pass.
	OnRescore(ctx context.Context, skipped, hits, misses int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSearchHooks is a no-op implementation of SearchHooks.
type NoopSearchHooks struct{}

func (NoopSearchHooks) OnSearchStart(context.Context, string, int)                  {}
func (NoopSearchHooks) OnBetterWidth(context.Context, int, int64)                   {}
func (NoopSearchHooks) OnImprovement(context.Context, int64)                        {}
func (NoopSearchHooks) OnTemperature(context.Context, float64, int64)               {}
func (NoopSearchHooks) OnSearchComplete(context.Context, int, int64, time.Duration) {}

// NoopScoringHooks is a no-op implementation of ScoringHooks.
type NoopScoringHooks struct{}

func (NoopScoringHooks) OnRescore(context.Context, int, int, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	searchHooks  SearchHooks  = NoopSearchHooks{}
	scoringHooks ScoringHooks = NoopScoringHooks{}
	hooksMu      sync.RWMutex
)

// SetSearchHooks registers custom search hooks.
// This should be called once at startup before any search runs.
func SetSearchHooks(h SearchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		searchHooks = h
	}
}

// SetScoringHooks registers custom scoring hooks.
func SetScoringHooks(h ScoringHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		scoringHooks = h
	}
}

// Search returns the registered search hooks.
func Search() SearchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return searchHooks
}

// Scoring returns the registered scoring hooks.
func Scoring() ScoringHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return scoringHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	searchHooks = NoopSearchHooks{}
	scoringHooks = NoopScoringHooks{}
}
