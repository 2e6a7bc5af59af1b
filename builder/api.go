// SPDX-License-Identifier: MIT
// Package: ftheur/builder
//
// api.go - thin public entry-point for the builder package.
//
// Design contract (strict):
//   - One orchestrator: BuildGraph(bopts, cons...). Creates the core builder,
//     adds the root, resolves cfg, runs cons in order, freezes the graph.
//   - All constructors are implemented in impl_*.go.
//   - Functional options (BuilderOption) resolve into an immutable builderConfig.
//   - Determinism: same options/seed and constructor order ⇒ identical graphs.
//   - Safety: never panic at runtime; return sentinel errors from constructors.

package builder

import (
	"fmt"

	"github.com/sirius-ms/ftheur/core"
)

// Constructor adds fragments and losses below the root of b using the
// resolved builderConfig. Constructors MUST:
//   - Validate parameters early and return sentinel errors (no panics).
//   - Give every child of the root color 0.
//   - Only emit losses from a lower to a higher color.
//   - Preserve determinism for the same config and call order.
type Constructor func(b *core.GraphBuilder, cfg builderConfig) error

// BuildGraph creates a core.GraphBuilder with its root, resolves the builder
// configuration from bopts, applies all constructors in order and builds
// the immutable graph. Constructors share the root, so composing several of
// them yields several precursor candidates competing for color 0.
//
// Complexity: Σ cost of each constructor plus O(V + E) for core Build.
//
// Errors:
//   - Wraps constructor errors via %w; branch with errors.Is against the
//     builder sentinels (ErrTooFewColors, ErrInvalidProbability, ...).
//   - Wraps core.Build errors.
func BuildGraph(bopts []BuilderOption, cons ...Constructor) (*core.Graph, error) {
	b := core.NewGraphBuilder()
	if _, err := b.AddRoot(); err != nil {
		return nil, fmt.Errorf("BuildGraph: %w", err)
	}

	cfg := newBuilderConfig(bopts...)

	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildGraph: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(b, cfg); err != nil {
			return nil, fmt.Errorf("BuildGraph: %w", err)
		}
	}

	g, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("BuildGraph: %w", err)
	}

	return g, nil
}
