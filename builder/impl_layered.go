// SPDX-License-Identifier: MIT
// Package: ftheur/builder
//
// impl_layered.go - implementation of Layered and RandomDAG constructors.
//
// Canonical model:
//   - colors peaks, perColor candidate fragments per peak. Fragment k of
//     color c has running index c*perColor+k.
//   - root → every color-0 fragment (the precursor candidates).
//   - Layered: every fragment u → every fragment v with color(v) > color(u).
//   - RandomDAG: each of those forward losses is kept independently with
//     probability p; non-precursor fragments become isotope markers with
//     probability cfg.isotopeProb.
//
// Contract:
//   - colors ≥ 1, perColor ≥ 1 (else ErrTooFewColors).
//   - 0 ≤ p ≤ 1 (else ErrInvalidProbability).
//   - cfg.rng must be non-nil when a probability lies strictly in (0,1)
//     (else ErrNeedRandSource).
//
// Complexity:
//   - Time: O(V) fragments + O(V²) loss trials for V = colors·perColor.
//   - Space: O(V) for the fragment IDs.
//
// Determinism:
//   - Fragments in index order; isotope trials drawn at fragment creation.
//   - Loss trials for u asc, v asc; a weight is drawn only for kept losses.

package builder

import (
	"fmt"

	"github.com/sirius-ms/ftheur/core"
)

// Layered returns a Constructor that builds the complete forward DAG over
// colors·perColor candidate fragments.
func Layered(colors, perColor int) Constructor {
	return func(b *core.GraphBuilder, cfg builderConfig) error {
		return layered(b, cfg, MethodLayered, colors, perColor, 1, false)
	}
}

// RandomDAG returns a Constructor that samples the forward losses of
// Layered(colors, perColor) with probability p.
func RandomDAG(colors, perColor int, p float64) Constructor {
	return func(b *core.GraphBuilder, cfg builderConfig) error {
		return layered(b, cfg, MethodRandomDAG, colors, perColor, p, true)
	}
}

func layered(b *core.GraphBuilder, cfg builderConfig, method string, colors, perColor int, p float64, isotopes bool) error {
	// 1) Validate parameters early (zero side effects on invalid input).
	if err := validateMin(method, "colors", colors, MinLayeredColors); err != nil {
		return err
	}
	if err := validateMin(method, "perColor", perColor, MinCandidates); err != nil {
		return err
	}
	if err := validateProbability(method, p); err != nil {
		return err
	}
	iso := 0.0
	if isotopes {
		iso = cfg.isotopeProb
	}
	stochastic := func(q float64) bool { return q > MinProbability && q < MaxProbability }
	if cfg.rng == nil && (stochastic(p) || stochastic(iso)) {
		return fmt.Errorf("%s: rng is required: %w", method, ErrNeedRandSource)
	}
	trial := func(q float64) bool {
		if q >= MaxProbability {
			return true
		}
		if q <= MinProbability {
			return false
		}

		return cfg.rng.Float64() < q
	}

	// 2) Fragments, color-major.
	n := colors * perColor
	ids := make([]int, n)
	var (
		i, c int
		id   int
		err  error
	)
	for i = 0; i < n; i++ {
		c = i / perColor
		if id, err = addFragment(b, cfg, method, i, c, colors, c != PrecursorColor && trial(iso)); err != nil {
			return err
		}
		ids[i] = id
	}

	// 3) Losses: root → precursors, then forward trials.
	for i = 0; i < perColor; i++ {
		if err = addLoss(b, cfg, method, rootID, ids[i]); err != nil {
			return err
		}
	}
	var j int
	for i = 0; i < n; i++ {
		for j = (i/perColor + 1) * perColor; j < n; j++ {
			if !trial(p) {
				continue
			}
			if err = addLoss(b, cfg, method, ids[i], ids[j]); err != nil {
				return err
			}
		}
	}

	return nil
}
