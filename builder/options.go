// SPDX-License-Identifier: MIT
// Package: ftheur/builder
//
// options.go - functional options for builderConfig.
//
// Option constructors panic on meaningless arguments (programmer errors);
// constructors never panic at runtime.

package builder

import (
	"fmt"
	"math/rand"
)

// BuilderOption mutates builderConfig before constructors run.
type BuilderOption func(*builderConfig)

// WithFormulaScheme sets the formula labelling of generated fragments.
// Panics on nil.
func WithFormulaScheme(fn FormulaFn) BuilderOption {
	if fn == nil {
		panic("builder: WithFormulaScheme(nil)")
	}
	return func(c *builderConfig) {
		c.formulaFn = fn
	}
}

// WithRand injects a shared RNG. Panics on nil.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) {
		c.rng = r
	}
}

// WithSeed installs a fresh RNG seeded with seed.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithWeightFn sets the loss-weight generator. Panics on nil.
func WithWeightFn(fn WeightFn) BuilderOption {
	if fn == nil {
		panic("builder: WithWeightFn(nil)")
	}
	return func(c *builderConfig) {
		c.weightFn = fn
	}
}

// WithPrecursorMass sets the mass of color-0 fragments. Panics if m <= 0.
func WithPrecursorMass(m float64) BuilderOption {
	if m <= 0 {
		panic(fmt.Sprintf("builder: WithPrecursorMass(%g): must be > 0", m))
	}
	return func(c *builderConfig) {
		c.precursorMass = m
	}
}

// WithIsotopeProbability makes RandomDAG mark non-precursor fragments as
// isotope markers with probability p. Panics if p is outside [0,1].
func WithIsotopeProbability(p float64) BuilderOption {
	if p < MinProbability || p > MaxProbability {
		panic(fmt.Sprintf("builder: WithIsotopeProbability(%g): must be in [0,1]", p))
	}
	return func(c *builderConfig) {
		c.isotopeProb = p
	}
}
