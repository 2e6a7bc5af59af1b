package core

import "fmt"

// GraphBuilder accumulates fragments and losses and freezes them into a
// Graph. A builder is not safe for concurrent use; the resulting Graph is.
type GraphBuilder struct {
	fragments []Fragment
	losses    []Loss
	root      int
}

// NewGraphBuilder returns an empty builder without a root.
// Complexity: O(1).
func NewGraphBuilder() *GraphBuilder {
	return &GraphBuilder{root: -1}
}

// AddRoot inserts the synthetic root and returns its ID. The root must be
// the first fragment, so that it always receives ID 0.
//
// Errors:
//   - ErrDuplicateRoot if a root already exists or fragments were added first.
func (b *GraphBuilder) AddRoot() (int, error) {
	if b.root >= 0 || len(b.fragments) > 0 {
		return -1, ErrDuplicateRoot
	}
	b.root = 0
	b.fragments = append(b.fragments, Fragment{ID: 0, Color: NoColor, PeakID: -1})

	return 0, nil
}

// AddFragment inserts f and returns its dense ID. f.ID is ignored and
// overwritten.
//
// Errors:
//   - ErrNoRoot if AddRoot has not been called.
//   - ErrNegativeColor if f.Color < 0.
func (b *GraphBuilder) AddFragment(f Fragment) (int, error) {
	if b.root < 0 {
		return -1, ErrNoRoot
	}
	if f.Color < 0 {
		return -1, fmt.Errorf("%w: fragment %q color=%d", ErrNegativeColor, f.Formula, f.Color)
	}
	f.ID = len(b.fragments)
	b.fragments = append(b.fragments, f)

	return f.ID, nil
}

// AddLoss inserts the loss source → target with the given weight and
// returns its dense ID.
//
// Errors:
//   - ErrFragmentNotFound if an endpoint is unknown.
//   - ErrSelfLoss if source == target.
//   - ErrLossIntoRoot if target is the root.
func (b *GraphBuilder) AddLoss(source, target int, weight float64) (int, error) {
	return b.AddNamedLoss(source, target, weight, "")
}

// AddNamedLoss is AddLoss with a formula label for the lost substructure.
func (b *GraphBuilder) AddNamedLoss(source, target int, weight float64, formula string) (int, error) {
	n := len(b.fragments)
	if source < 0 || source >= n {
		return -1, fmt.Errorf("%w: source %d", ErrFragmentNotFound, source)
	}
	if target < 0 || target >= n {
		return -1, fmt.Errorf("%w: target %d", ErrFragmentNotFound, target)
	}
	if source == target {
		return -1, fmt.Errorf("%w: %d", ErrSelfLoss, source)
	}
	if target == b.root {
		return -1, fmt.Errorf("%w: %d→%d", ErrLossIntoRoot, source, target)
	}
	id := len(b.losses)
	b.losses = append(b.losses, Loss{ID: id, Source: source, Target: target, Weight: weight, Formula: formula})

	return id, nil
}

// Build validates the accumulated structure and returns an immutable Graph.
// The builder may be reused afterwards; the Graph owns copies of its data.
//
// Steps:
//  1. Require a root.
//  2. Copy fragments and losses, build adjacency and color buckets.
//  3. Compute a topological order; a cycle aborts with ErrCycleDetected.
//
// A root without outgoing losses is accepted here; heuristics report it as
// a configuration error when asked to solve such a graph.
//
// Complexity: O(V + E) time and memory.
func (b *GraphBuilder) Build() (*Graph, error) {
	// 1) Root must exist.
	if b.root < 0 {
		return nil, ErrNoRoot
	}

	// 2) Copy and index.
	g := &Graph{
		fragments: append([]Fragment(nil), b.fragments...),
		losses:    append([]Loss(nil), b.losses...),
		out:       make([][]int, len(b.fragments)),
		in:        make([][]int, len(b.fragments)),
		root:      b.root,
	}
	var (
		l Loss
		f Fragment
	)
	for _, l = range g.losses {
		g.out[l.Source] = append(g.out[l.Source], l.ID)
		g.in[l.Target] = append(g.in[l.Target], l.ID)
	}
	for _, f = range g.fragments {
		if f.Color+1 > g.numColors {
			g.numColors = f.Color + 1
		}
	}
	g.byColor = make([][]int, g.numColors)
	for _, f = range g.fragments {
		if f.Color != NoColor {
			g.byColor[f.Color] = append(g.byColor[f.Color], f.ID)
		}
	}

	// 3) Topological order (also the acyclicity check).
	topo, err := topologicalOrder(g)
	if err != nil {
		return nil, err
	}
	g.topo = topo

	return g, nil
}
