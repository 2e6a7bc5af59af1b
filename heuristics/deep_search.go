package heuristics

import (
	"context"

	"github.com/sirius-ms/ftheur/core"
)

// deepSearch implements DeepSearch (backtrack = true) and TopDown.
type deepSearch struct {
	name      string
	backtrack bool
	opts      Options
}

func (d deepSearch) Name() string { return d.name }

// Select walks depth-first from the root, always descending along the
// heaviest selectable loss of the current fragment (first one on ties).
// DeepSearch keeps the path on an explicit stack and backtracks when the
// current fragment has no selectable loss left; TopDown stops there.
// Negative subtrees are left to the pruning pass.
//
// Complexity: O(V + E) per descent, O(V·deg) overall.
func (d deepSearch) Select(ctx context.Context, g *core.Graph) ([]int, error) {
	if err := checkGraph(g); err != nil {
		return nil, err
	}
	cancel := newCanceler(ctx, d.opts)
	s := newState(g)

	stack := []int{g.Root()}
	var (
		v, best int
		bestW   float64
		found   bool
	)
	for len(stack) > 0 {
		if err := cancel.poll(); err != nil {
			return nil, err
		}
		v = stack[len(stack)-1]

		best, found = -1, false
		if s.isSource(v) {
			for _, id := range g.Outgoing(v) {
				if s.selectable(id) && better(g.Weight(id), found, bestW) {
					best, bestW, found = id, g.Weight(id), true
				}
			}
		}
		if !found {
			if !d.backtrack {
				break
			}
			stack = stack[:len(stack)-1]
			continue
		}
		s.add(best)
		stack = append(stack, g.Target(best))
	}

	return s.selection(), nil
}
