// SPDX-License-Identifier: MIT
// Package: ftheur/builder
//
// impl_chain.go - implementation of Chain(colors) constructor.
//
// Contract:
//   - colors ≥ 1 (else ErrTooFewColors).
//   - Adds fragments F0..F(colors-1) with colors 0..colors-1 in order.
//   - Emits root → F0, then F(i-1) → Fi for i=1..colors-1.
//   - Weights from cfg.weightFn(cfg.rng), drawn in emission order.
//
// Complexity: O(colors) fragments and losses, O(1) extra space.

package builder

import "github.com/sirius-ms/ftheur/core"

// Chain returns a Constructor that builds a single fragmentation path.
func Chain(colors int) Constructor {
	return func(b *core.GraphBuilder, cfg builderConfig) error {
		if err := validateMin(MethodChain, "colors", colors, MinChainColors); err != nil {
			return err
		}

		prev := rootID
		for i := 0; i < colors; i++ {
			id, err := addFragment(b, cfg, MethodChain, i, i, colors, false)
			if err != nil {
				return err
			}
			if err = addLoss(b, cfg, MethodChain, prev, id); err != nil {
				return err
			}
			prev = id
		}

		return nil
	}
}
