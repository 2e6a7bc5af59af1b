// Package core declares Fragment, Loss, Graph and the sentinel errors of the
// candidate-graph model.
package core

import "errors"

// Sentinel errors for candidate-graph construction.
var (
	// ErrNoRoot indicates Build was called on a builder without a root.
	ErrNoRoot = errors.New("core: graph has no root")

	// ErrDuplicateRoot indicates AddRoot was called more than once.
	ErrDuplicateRoot = errors.New("core: graph already has a root")

	// ErrFragmentNotFound indicates a loss references an unknown fragment ID.
	ErrFragmentNotFound = errors.New("core: fragment not found")

	// ErrSelfLoss indicates a loss whose source and target coincide.
	ErrSelfLoss = errors.New("core: loss source equals target")

	// ErrLossIntoRoot indicates a loss that targets the synthetic root.
	ErrLossIntoRoot = errors.New("core: loss targets the root")

	// ErrNegativeColor indicates a non-root fragment with a negative color.
	ErrNegativeColor = errors.New("core: fragment color is negative")

	// ErrCycleDetected indicates the losses contain a directed cycle.
	ErrCycleDetected = errors.New("core: cycle detected")

	// ErrBadDocument indicates a graph document that cannot be turned into a graph.
	ErrBadDocument = errors.New("core: malformed graph document")
)

// NoColor is the color carried by the synthetic root. The root is never
// subject to the one-fragment-per-color constraint.
const NoColor = -1

// Fragment is a vertex of the candidate graph.
type Fragment struct {
	// ID is the dense vertex index assigned by the builder (root = 0).
	ID int

	// Color identifies the observed peak this fragment explains.
	Color int

	// Formula is the molecular formula (identity) of the fragment.
	Formula string

	// PeakID is the index of the explained peak in the source spectrum.
	PeakID int

	// Mass is the neutral mass of the fragment; used for isotope side chains.
	Mass float64

	// Isotope marks a fragment that stands for an isotopic satellite peak.
	Isotope bool
}

// IsRoot reports whether f is the synthetic root.
func (f Fragment) IsRoot() bool { return f.Color == NoColor }

// Loss is a directed, weighted edge Source → Target.
type Loss struct {
	// ID is the dense edge index assigned by the builder.
	ID int

	// Source is the fragment that loses a substructure.
	Source int

	// Target is the resulting fragment.
	Target int

	// Weight is the score of this hypothesis. It may be negative.
	Weight float64

	// Formula optionally names the lost substructure.
	Formula string
}

// Graph is an immutable candidate graph. All methods are safe for
// concurrent use because nothing mutates a Graph after Build.
type Graph struct {
	fragments []Fragment
	losses    []Loss

	out [][]int // fragment → outgoing loss IDs (insertion order)
	in  [][]int // fragment → incoming loss IDs (insertion order)

	byColor   [][]int // color → fragment IDs (insertion order)
	numColors int
	root      int

	topo []int // topological order of all fragments, root first
}
