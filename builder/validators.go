// SPDX-License-Identifier: MIT
// Package: ftheur/builder
//
// validators.go - shared parameter checks returning wrapped sentinels.

package builder

import (
	"fmt"

	"github.com/sirius-ms/ftheur/core"
)

func validateMin(method, name string, got, min int) error {
	if got < min {
		return fmt.Errorf("%s: %s=%d < min=%d: %w", method, name, got, min, ErrTooFewColors)
	}

	return nil
}

func validateProbability(method string, p float64) error {
	if p < MinProbability || p > MaxProbability {
		return fmt.Errorf("%s: p=%.6f not in [%.1f,%.1f]: %w",
			method, p, MinProbability, MaxProbability, ErrInvalidProbability)
	}

	return nil
}

// addFragment adds the idx-th generated fragment with the configured
// formula scheme and a color-derived mass.
func addFragment(b *core.GraphBuilder, cfg builderConfig, method string, idx, color, colors int, isotope bool) (int, error) {
	f := core.Fragment{
		Formula: cfg.formulaFn(idx),
		Color:   color,
		PeakID:  color,
		Mass:    cfg.mass(color, colors),
		Isotope: isotope,
	}
	id, err := b.AddFragment(f)
	if err != nil {
		return -1, fmt.Errorf("%s: AddFragment(%s): %w: %w", method, f.Formula, err, ErrConstructFailed)
	}

	return id, nil
}

// addLoss adds src → dst with the next configured weight.
func addLoss(b *core.GraphBuilder, cfg builderConfig, method string, src, dst int) error {
	w := cfg.weight()
	if _, err := b.AddLoss(src, dst, w); err != nil {
		return fmt.Errorf("%s: AddLoss(%d→%d, w=%g): %w: %w", method, src, dst, w, err, ErrConstructFailed)
	}

	return nil
}
