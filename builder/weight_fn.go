// SPDX-License-Identifier: MIT
// Package: ftheur/builder
//
// weight_fn.go - loss-weight distributions.
//
// Loss weights are log-likelihood scores and may be negative, so unlike
// edge costs they are not clipped at zero. With a nil RNG every stochastic
// WeightFn falls back to DefaultLossWeight.

package builder

import (
	"fmt"
	"math/rand"
)

// WeightFn draws a loss weight.
type WeightFn func(rng *rand.Rand) float64

// DefaultWeightFn always returns DefaultLossWeight.
func DefaultWeightFn(_ *rand.Rand) float64 {
	return DefaultLossWeight
}

// ConstantWeightFn always returns value.
func ConstantWeightFn(value float64) WeightFn {
	return func(_ *rand.Rand) float64 {
		return value
	}
}

// UniformWeightFn draws from U[min,max]. Panics if max < min.
func UniformWeightFn(min, max float64) WeightFn {
	if max < min {
		panic(fmt.Sprintf("UniformWeightFn: require min ≤ max, got min=%g, max=%g", min, max))
	}
	return func(rng *rand.Rand) float64 {
		if rng == nil {
			return DefaultLossWeight
		}
		if max == min {
			return min
		}

		return min + rng.Float64()*(max-min)
	}
}

// NormalWeightFn draws from N(mean, stddev). Panics if stddev < 0.
func NormalWeightFn(mean, stddev float64) WeightFn {
	if stddev < 0 {
		panic(fmt.Sprintf("NormalWeightFn: stddev must be ≥ 0, got %f", stddev))
	}
	return func(rng *rand.Rand) float64 {
		if rng == nil {
			return DefaultLossWeight
		}

		return rng.NormFloat64()*stddev + mean
	}
}

// ExponentialWeightFn draws from Exp(rate). Panics if rate <= 0.
func ExponentialWeightFn(rate float64) WeightFn {
	if rate <= 0 {
		panic(fmt.Sprintf("ExponentialWeightFn: rate must be > 0, got %f", rate))
	}
	return func(rng *rand.Rand) float64 {
		if rng == nil {
			return DefaultLossWeight
		}

		return rng.ExpFloat64() / rate
	}
}

// WithConstantWeight is WithWeightFn(ConstantWeightFn(w)).
func WithConstantWeight(w float64) BuilderOption {
	return WithWeightFn(ConstantWeightFn(w))
}

// WithUniformWeight is WithWeightFn(UniformWeightFn(min, max)).
func WithUniformWeight(min, max float64) BuilderOption {
	return WithWeightFn(UniformWeightFn(min, max))
}

// WithNormalWeight is WithWeightFn(NormalWeightFn(mean, stddev)).
func WithNormalWeight(mean, stddev float64) BuilderOption {
	return WithWeightFn(NormalWeightFn(mean, stddev))
}

// WithExponentialWeight is WithWeightFn(ExponentialWeightFn(rate)).
func WithExponentialWeight(rate float64) BuilderOption {
	return WithWeightFn(ExponentialWeightFn(rate))
}
