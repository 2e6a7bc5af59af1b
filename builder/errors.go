// SPDX-License-Identifier: MIT
// Package: ftheur/builder
//
// errors.go - sentinel errors of the builder package.
//
// Constructors wrap these with method context:
//
//	fmt.Errorf("%s: colors=%d < min=%d: %w", method, n, min, ErrTooFewColors)

package builder

import "errors"

// ErrTooFewColors indicates a size parameter below the constructor's minimum.
var ErrTooFewColors = errors.New("builder: parameter too small")

// ErrInvalidProbability indicates a probability outside [0,1].
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrNeedRandSource indicates a stochastic constructor without an RNG.
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed indicates a failure while adding fragments or losses.
var ErrConstructFailed = errors.New("builder: construction failed")
