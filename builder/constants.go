// SPDX-License-Identifier: MIT
// Package: ftheur/builder
//
// constants.go - method tags and parameter domains shared by constructors.

package builder

// Method tags used as error context.
const (
	MethodChain     = "Chain"
	MethodStar      = "Star"
	MethodLayered   = "Layered"
	MethodRandomDAG = "RandomDAG"
)

// rootID is the ID core.GraphBuilder.AddRoot assigns.
const rootID = 0

// PrecursorColor is the color shared by all children of the root.
const PrecursorColor = 0

// Parameter minima.
const (
	MinChainColors    = 1
	MinStarColors     = 2
	MinLayeredColors  = 1
	MinCandidates     = 1
	MinProbability    = 0.0
	MaxProbability    = 1.0
	DefaultLossWeight = 1.0
)
