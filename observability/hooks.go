// Package observability provides hooks for metrics around solver runs.
//
// Libraries call the registered hooks; backends (Prometheus, tests) are
// plugged in by the application at startup, so the solver packages never
// depend on a metrics framework directly.
//
// Register hooks at application startup:
//
//	reg := prometheus.NewRegistry()
//	hooks, err := observability.NewPrometheusHooks(reg)
//	if err != nil { ... }
//	observability.SetSolveHooks(hooks)
//
// Libraries emit events:
//
//	observability.Solve().OnSolveStart(ctx, "greedy", fragments, losses)
//	// ... solve ...
//	observability.Solve().OnSolveComplete(ctx, "greedy", weight, elapsed, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// SolveHooks receives events from heuristic solver runs.
type SolveHooks interface {
	// OnSolveStart is called before a strategy looks at the graph.
	OnSolveStart(ctx context.Context, algorithm string, fragments, losses int)

	// OnSolveComplete is called once per run. weight is the tree weight
	// and meaningless when err is non-nil.
	OnSolveComplete(ctx context.Context, algorithm string, weight float64, duration time.Duration, err error)
}

// NoopSolveHooks is a no-op implementation of SolveHooks.
type NoopSolveHooks struct{}

func (NoopSolveHooks) OnSolveStart(context.Context, string, int, int) {}
func (NoopSolveHooks) OnSolveComplete(context.Context, string, float64, time.Duration, error) {
}

var (
	solveHooks SolveHooks = NoopSolveHooks{}
	hooksMu    sync.RWMutex
)

// SetSolveHooks registers custom solve hooks. Nil is ignored.
// This should be called once at application startup.
func SetSolveHooks(h SolveHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		solveHooks = h
	}
}

// ResetHooks restores the no-op default. Intended for tests.
func ResetHooks() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	solveHooks = NoopSolveHooks{}
}

// Solve returns the registered solve hooks.
func Solve() SolveHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()

	return solveHooks
}
