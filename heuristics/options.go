package heuristics

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/sirius-ms/ftheur/observability"
)

// DefaultCheckInterval is the number of inner steps between two
// cancellation polls inside long scans.
const DefaultCheckInterval = 1024

// Option configures Solve and New.
type Option func(*Options)

// Options holds the resolved configuration of one run.
type Options struct {
	// Algorithm is the strategy Solve dispatches to. Default: CriticalPath2.
	Algorithm Algorithm

	// Prune controls the pruning pass. Default: PruneDefault.
	Prune Prune

	// ReattachIsotopes re-chains isotope fragments. Always on for
	// CriticalPathIsotopes.
	ReattachIsotopes bool

	// Invalidation is the critical-path memo policy. Default: InvalidateAll.
	Invalidation Invalidation

	// Relocation is the ExtendedCriticalPath post-pass. Default: RelocateAll.
	Relocation Relocation

	// CancelCheck, if non-nil, is polled alongside the context; returning
	// true cancels the run.
	CancelCheck func() bool

	// CheckInterval bounds the inner steps between two polls.
	CheckInterval int

	// Logger receives debug records; nil disables logging.
	Logger *log.Logger

	// Hooks receives solve events; nil uses the registered global hooks.
	Hooks observability.SolveHooks
}

// DefaultOptions returns the documented defaults:
//   - CriticalPath2
//   - PruneDefault
//   - InvalidateAll
//   - RelocateAll
//   - CheckInterval = DefaultCheckInterval
//   - no cancel check, logger or hooks
func DefaultOptions() Options {
	return Options{
		Algorithm:     CriticalPath2,
		Prune:         PruneDefault,
		Invalidation:  InvalidateAll,
		Relocation:    RelocateAll,
		CheckInterval: DefaultCheckInterval,
	}
}

// WithAlgorithm selects the strategy. Panics on an unknown value.
func WithAlgorithm(a Algorithm) Option {
	if a < 0 || int(a) >= len(algorithmNames) {
		panic(fmt.Sprintf("heuristics: WithAlgorithm(%d): unknown algorithm", int(a)))
	}

	return func(o *Options) { o.Algorithm = a }
}

// WithPruning overrides the per-algorithm pruning default.
func WithPruning(p Prune) Option {
	if p < PruneDefault || p > PruneNever {
		panic(fmt.Sprintf("heuristics: WithPruning(%d): unknown mode", int(p)))
	}

	return func(o *Options) { o.Prune = p }
}

// WithIsotopeReattachment enables isotope side chains for any algorithm.
func WithIsotopeReattachment() Option {
	return func(o *Options) { o.ReattachIsotopes = true }
}

// WithInvalidation selects the critical-path memo policy.
func WithInvalidation(m Invalidation) Option {
	if m < InvalidateAll || m > InvalidateAncestors {
		panic(fmt.Sprintf("heuristics: WithInvalidation(%d): unknown mode", int(m)))
	}

	return func(o *Options) { o.Invalidation = m }
}

// WithRelocation selects the ExtendedCriticalPath post-pass.
func WithRelocation(r Relocation) Option {
	if r < RelocateAll || r > RelocateNone {
		panic(fmt.Sprintf("heuristics: WithRelocation(%d): unknown mode", int(r)))
	}

	return func(o *Options) { o.Relocation = r }
}

// WithCancelCheck installs an external cancellation predicate.
func WithCancelCheck(fn func() bool) Option {
	return func(o *Options) { o.CancelCheck = fn }
}

// WithCheckInterval sets the poll interval of inner scans. Panics if n < 1.
func WithCheckInterval(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("heuristics: WithCheckInterval(%d): must be >= 1", n))
	}

	return func(o *Options) { o.CheckInterval = n }
}

// WithLogger sets the logger for debug records.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithHooks sets the solve hooks for this run.
func WithHooks(h observability.SolveHooks) Option {
	return func(o *Options) { o.Hooks = h }
}

func resolve(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// shouldPrune resolves o.Prune for the configured algorithm.
func (o Options) shouldPrune() bool {
	switch o.Prune {
	case PruneAlways:
		return true
	case PruneNever:
		return false
	default:
		return o.Algorithm.prunesByDefault()
	}
}
