package ftree

import (
	"fmt"
	"math"
	"sort"

	"github.com/sirius-ms/ftheur/core"
)

// Assemble builds the solution tree for the selected losses of g.
//
// Steps:
//  1. Validate loss IDs and color uniqueness of the selection.
//  2. Empty selection (or no selected root loss) → depth-1 tree from the
//     best root loss.
//  3. Sort by target color ascending and materialize breadth-first from the
//     root's chosen child; unreachable losses are dropped.
//  4. Optionally re-chain isotope fragments, then optionally prune.
//
// Returns a fully connected, single-rooted tree or an error, never a
// partial tree.
//
// Complexity: O(k log k + V) for k selected losses.
func Assemble(g *core.Graph, losses []int, opts ...Option) (*Tree, error) {
	var cfg Options
	for _, opt := range opts {
		opt(&cfg)
	}
	if g == nil {
		return nil, ErrNilGraph
	}

	// 1) Validate the selection.
	sel := make([]int, len(losses))
	copy(sel, losses)
	if err := checkSelection(g, sel); err != nil {
		return nil, err
	}

	// 2) Locate the selected root loss.
	rootLoss := -1
	for _, id := range sel {
		if g.Source(id) == g.Root() {
			rootLoss = id
			break
		}
	}
	if rootLoss < 0 {
		return fallbackTree(g)
	}

	// 3) Ascending target color; stable so equal colors keep input order.
	sort.SliceStable(sel, func(i, j int) bool {
		return g.Color(g.Target(sel[i])) < g.Color(g.Target(sel[j]))
	})

	t := &Tree{index: make(map[int]*Node, len(sel))}
	t.Root = t.newNode(g, rootLoss, nil)

	var deferred []int
	bySource := make(map[int][]int, len(sel))
	for _, id := range sel {
		if id == rootLoss {
			continue
		}
		if cfg.ReattachIsotopes && g.IsIsotope(g.Target(id)) {
			deferred = append(deferred, id)
			continue
		}
		bySource[g.Source(id)] = append(bySource[g.Source(id)], id)
	}

	queue := []*Node{t.Root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, id := range bySource[n.Vertex] {
			if _, seen := t.index[g.Target(id)]; seen {
				continue
			}
			queue = append(queue, t.newNode(g, id, n))
		}
	}

	// 4) Isotopes, pruning.
	if len(deferred) > 0 {
		t.reattachIsotopes(g, deferred)
	}
	if cfg.Prune {
		t.Prune()
	}

	return t, nil
}

// checkSelection rejects unknown loss IDs and duplicated target colors.
func checkSelection(g *core.Graph, sel []int) error {
	seen := make(map[int]int, len(sel)) // color → loss
	for _, id := range sel {
		if id < 0 || id >= g.LossCount() {
			return fmt.Errorf("%w: %d", ErrUnknownLoss, id)
		}
		c := g.Color(g.Target(id))
		if prev, dup := seen[c]; dup {
			return fmt.Errorf("%w: color %d by losses %d and %d", ErrColorConflict, c, prev, id)
		}
		seen[c] = id
	}

	return nil
}

// fallbackTree returns the depth-1 tree made of the best root loss.
// NaN weights never win; the first loss wins ties.
func fallbackTree(g *core.Graph) (*Tree, error) {
	best := -1
	bestW := math.Inf(-1)
	for _, id := range g.Outgoing(g.Root()) {
		w := g.Weight(id)
		if math.IsNaN(w) {
			continue
		}
		if best < 0 || w > bestW {
			best, bestW = id, w
		}
	}
	if best < 0 {
		return nil, ErrNoRootLoss
	}
	t := &Tree{index: make(map[int]*Node, 1)}
	t.Root = t.newNode(g, best, nil)

	return t, nil
}

// newNode materializes the target of loss id under parent and books its
// weight.
func (t *Tree) newNode(g *core.Graph, id int, parent *Node) *Node {
	f := g.Fragment(g.Target(id))
	n := &Node{
		Vertex:  f.ID,
		Formula: f.Formula,
		PeakID:  f.PeakID,
		Color:   f.Color,
		Mass:    f.Mass,
		Loss:    id,
		Weight:  g.Weight(id),
		Parent:  parent,
	}
	if parent != nil {
		parent.Children = append(parent.Children, n)
	}
	t.index[f.ID] = n
	t.Weight += n.Weight

	return n
}
