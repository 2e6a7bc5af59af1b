package heuristics

import (
	"context"

	"github.com/sirius-ms/ftheur/core"
)

type extendedCriticalPath struct{ opts Options }

func (extendedCriticalPath) Name() string { return ExtendedCriticalPath.String() }

// Select runs the critical-path loop without compensation, but inserts the
// whole critical path of the chosen fragment in one step. Afterwards the
// configured relocation pass moves selected fragments to heavier parents.
//
// Steps:
//  1. Pick the selectable loss s→t maximizing cp(t) + w(s→t); stop unless
//     positive.
//  2. Insert it, then keep following the argmax of w(u→x) + cp(x) from the
//     newest fragment u while that value is positive.
//  3. Relocate (RelocateAll, RelocateBySpanningTree or RelocateNone).
//
// Complexity: O(k·(E + V)) for k inserted paths with InvalidateAll.
func (x extendedCriticalPath) Select(ctx context.Context, g *core.Graph) ([]int, error) {
	if err := checkGraph(g); err != nil {
		return nil, err
	}
	cancel := newCanceler(ctx, x.opts)
	s := newState(g)
	memo := newCriticalMemo(s, x.opts.Invalidation, nil)

	insert := func(id int) {
		s.add(id)
		memo.invalidate(g.FragmentsOfColor(g.Color(g.Target(id))))
	}
	// bestFrom returns the first loss out of v maximizing w + cp(target),
	// or -1 when nothing is positive.
	bestFrom := func(v int) (int, float64, error) {
		best, bestScore := -1, 0.0
		for _, id := range g.Outgoing(v) {
			if err := cancel.step(); err != nil {
				return -1, 0, err
			}
			if !s.selectable(id) {
				continue
			}
			if sc := memo.get(g.Target(id)) + g.Weight(id); sc > bestScore {
				best, bestScore = id, sc
			}
		}

		return best, bestScore, nil
	}

	for {
		if err := cancel.poll(); err != nil {
			return nil, err
		}

		// 1) Best entry point over all selected fragments.
		best, bestScore := -1, 0.0
		for i := 0; i < len(s.order); i++ {
			if !s.isSource(s.order[i]) {
				continue
			}
			id, sc, err := bestFrom(s.order[i])
			if err != nil {
				return nil, err
			}
			if id >= 0 && sc > bestScore {
				best, bestScore = id, sc
			}
		}
		if best < 0 {
			break
		}

		// 2) The entry loss plus the rest of its path.
		insert(best)
		for u := g.Target(best); ; {
			id, _, err := bestFrom(u)
			if err != nil {
				return nil, err
			}
			if id < 0 {
				break
			}
			insert(id)
			u = g.Target(id)
		}
	}

	// 3) Post-pass.
	switch x.opts.Relocation {
	case RelocateAll:
		relocateAll(s)
	case RelocateBySpanningTree:
		relocateBySpanningTree(s)
	}

	return s.selection(), nil
}
