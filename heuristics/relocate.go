package heuristics

// relocateAll moves every selected fragment w below the selected fragment
// offering the strictly heaviest loss into w. The root is never offered:
// it keeps its single child. One pass suffices because the set of selected
// fragments does not change.
//
// Complexity: O(Σ in-degree of selected fragments).
func relocateAll(s *state) {
	g := s.g
	var (
		w, cur, best int
		u            int
	)
	for _, w = range s.order[1:] {
		cur = s.selectedInto(w)
		if cur < 0 || g.Source(cur) == g.Root() {
			continue
		}
		best = cur
		for _, id := range g.Incoming(w) {
			if u = g.Source(id); u == g.Root() || !s.inTree[u] {
				continue
			}
			if g.Weight(id) > g.Weight(best) {
				best = id
			}
		}
		if best != cur {
			s.reassign(best)
		}
	}
}

// relocateBySpanningTree rebuilds the selection as a maximum-weight
// arborescence over the selected fragments, keeping the root's child. On
// an acyclic graph that is every fragment taking its heaviest incoming
// loss from another selected fragment, first in graph order on ties. It
// differs from relocateAll only in that ties may replace the current loss.
//
// Complexity: O(Σ in-degree of selected fragments).
func relocateBySpanningTree(s *state) {
	g := s.g
	var (
		best  int
		bestW float64
		found bool
	)
	for _, w := range s.order[1:] {
		if cur := s.selectedInto(w); cur < 0 || g.Source(cur) == g.Root() {
			continue
		}
		best, found = -1, false
		for _, id := range g.Incoming(w) {
			if u := g.Source(id); u == g.Root() || !s.inTree[u] {
				continue
			}
			if better(g.Weight(id), found, bestW) {
				best, bestW, found = id, g.Weight(id), true
			}
		}
		if found {
			s.reassign(best)
		}
	}
}
