package ftree

import "errors"

// Sentinel errors returned by tree assembly and validation.
var (
	// ErrNilGraph indicates a nil *core.Graph.
	ErrNilGraph = errors.New("ftree: graph is nil")

	// ErrNoRootLoss indicates the root has no usable outgoing loss.
	ErrNoRootLoss = errors.New("ftree: root has no usable loss")

	// ErrUnknownLoss indicates a loss ID outside the graph.
	ErrUnknownLoss = errors.New("ftree: unknown loss")

	// ErrColorConflict indicates two selected losses target the same color.
	ErrColorConflict = errors.New("ftree: color selected twice")

	// ErrInvalidTree indicates a broken tree invariant.
	ErrInvalidTree = errors.New("ftree: invalid tree")
)

// Node is one fragment of a solution tree.
type Node struct {
	// Vertex is the ID of the candidate-graph fragment this node stands for.
	Vertex int

	// Formula is the fragment identity; empty for re-chained isotope nodes.
	Formula string

	// PeakID is the explained peak.
	PeakID int

	// Color is the color of the graph fragment.
	Color int

	// Mass is the fragment mass; the only identity of isotope nodes.
	Mass float64

	// Isotope marks a re-chained isotope side-chain node.
	Isotope bool

	// Loss is the ID of the materialized loss entering this node.
	Loss int

	// Weight is the weight of that loss.
	Weight float64

	// Parent is nil for the tree root.
	Parent *Node

	// Children are ordered by attachment.
	Children []*Node
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Tree is a solution: a rooted fragment tree plus the graph→tree mapping.
type Tree struct {
	// Root is the chosen child of the synthetic graph root.
	Root *Node

	// Weight is the sum of all node weights.
	Weight float64

	index map[int]*Node // graph fragment → node
}

// Options configures Assemble.
type Options struct {
	// Prune removes subtrees with non-positive net score.
	Prune bool

	// ReattachIsotopes re-chains isotope fragments as side chains.
	ReattachIsotopes bool
}

// Option is a functional option for Assemble.
type Option func(*Options)

// WithPruning enables the negative-subtree pruning pass.
func WithPruning() Option {
	return func(o *Options) { o.Prune = true }
}

// WithIsotopeReattachment enables isotope side-chain reattachment.
func WithIsotopeReattachment() Option {
	return func(o *Options) { o.ReattachIsotopes = true }
}
