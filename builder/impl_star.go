// SPDX-License-Identifier: MIT
// Package: ftheur/builder
//
// impl_star.go - implementation of Star(colors) constructor.
//
// Contract:
//   - colors ≥ 2 (else ErrTooFewColors).
//   - Adds the precursor P (color 0) below the root, then leaves of colors
//     1..colors-1 in ascending order.
//   - Emits root → P, then P → leaf[i] in ascending leaf order.
//
// Complexity: O(colors) fragments and losses, O(1) extra space.

package builder

import "github.com/sirius-ms/ftheur/core"

// Star returns a Constructor that builds a precursor with direct losses
// to colors-1 peaks.
func Star(colors int) Constructor {
	return func(b *core.GraphBuilder, cfg builderConfig) error {
		if err := validateMin(MethodStar, "colors", colors, MinStarColors); err != nil {
			return err
		}

		hub, err := addFragment(b, cfg, MethodStar, 0, PrecursorColor, colors, false)
		if err != nil {
			return err
		}
		if err = addLoss(b, cfg, MethodStar, rootID, hub); err != nil {
			return err
		}

		var leaf int
		for i := 1; i < colors; i++ {
			if leaf, err = addFragment(b, cfg, MethodStar, i, i, colors, false); err != nil {
				return err
			}
			if err = addLoss(b, cfg, MethodStar, hub, leaf); err != nil {
				return err
			}
		}

		return nil
	}
}
