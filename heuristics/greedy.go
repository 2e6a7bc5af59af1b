package heuristics

import (
	"context"
	"math"
	"sort"

	"github.com/sirius-ms/ftheur/core"
)

type greedy struct{ opts Options }

func (greedy) Name() string { return Greedy.String() }

// Select scans all losses once by descending weight (ties by loss ID).
// A loss s→t is accepted when:
//   - color(t) is still unused,
//   - no other fragment has been recorded for color(t),
//   - the fragment recorded for color(s), if any, is s.
//
// Accepting records s and t for their colors. NaN weights are skipped. The
// result may contain pieces not connected to the root; the solution builder
// drops them.
//
// Complexity: O(E log E).
func (gr greedy) Select(ctx context.Context, g *core.Graph) ([]int, error) {
	if err := checkGraph(g); err != nil {
		return nil, err
	}
	cancel := newCanceler(ctx, gr.opts)

	order := make([]int, 0, g.LossCount())
	for id := 0; id < g.LossCount(); id++ {
		if !math.IsNaN(g.Weight(id)) {
			order = append(order, id)
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return g.Weight(order[i]) > g.Weight(order[j])
	})

	s := newState(g)
	recorded := make([]int, g.NumColors()) // color → fragment
	for i := range recorded {
		recorded[i] = -1
	}
	consistent := func(v int) bool {
		if v == g.Root() {
			return true
		}
		r := recorded[g.Color(v)]

		return r < 0 || r == v
	}

	var src, tgt int
	for _, id := range order {
		if err := cancel.step(); err != nil {
			return nil, err
		}
		src, tgt = g.Source(id), g.Target(id)
		if !s.free(tgt) || !consistent(tgt) || !consistent(src) {
			continue
		}
		if src == g.Root() && s.rootLoss >= 0 {
			continue
		}
		s.add(id)
		recorded[g.Color(tgt)] = tgt
		if src != g.Root() {
			recorded[g.Color(src)] = src
		}
	}
	if err := cancel.poll(); err != nil {
		return nil, err
	}

	return s.selection(), nil
}
