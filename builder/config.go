// SPDX-License-Identifier: MIT
// Package: ftheur/builder
//
// config.go - internal configuration and deterministic defaults.
//
// Design:
//   • builderConfig is the single source of truth for all builder knobs.
//   • Defaults are deterministic and documented; no globals.
//   • newBuilderConfig applies options in-order (later overrides earlier).
//
// Deterministic defaults (no surprises):
//   • formulaFn     = DefaultFormulaFn  ("F0","F1",...)
//   • rng           = nil               (pure/deterministic unless seeded)
//   • weightFn      = DefaultWeightFn   (constant DefaultLossWeight)
//   • precursorMass = 500
//   • isotopeProb   = 0

package builder

import "math/rand"

// builderConfig aggregates all knobs used by constructors.
// It is passed by VALUE to constructors (immutable to callers).
type builderConfig struct {
	// Fragment formula scheme: running index -> formula label.
	formulaFn FormulaFn
	// RNG for stochastic choices; nil means "no randomness".
	rng *rand.Rand
	// Weight generator for losses.
	weightFn WeightFn
	// Mass of the color-0 fragments; higher colors get lighter.
	precursorMass float64
	// Probability that RandomDAG marks a non-precursor fragment as isotope.
	isotopeProb float64
}

// Deterministic defaults (named, no magic numbers).
const (
	defaultPrecursorMass = 500.0
	defaultIsotopeProb   = 0.0
)

// newBuilderConfig constructs a config with deterministic defaults and
// applies all options in order.
// Complexity: O(len(opts)) time, O(1) space.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		formulaFn:     DefaultFormulaFn,
		rng:           nil,
		weightFn:      DefaultWeightFn,
		precursorMass: defaultPrecursorMass,
		isotopeProb:   defaultIsotopeProb,
	}

	// Last-wins semantics.
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// weight draws the next loss weight.
func (c builderConfig) weight() float64 { return c.weightFn(c.rng) }

// mass returns the mass of a fragment of color c out of colors colors.
func (c builderConfig) mass(color, colors int) float64 {
	return c.precursorMass * (1 - float64(color)/float64(colors+1))
}
