package heuristics_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sirius-ms/ftheur/core"
)

type frag struct {
	name    string
	color   int
	isotope bool
}

type loss struct {
	from, to string
	w        float64
}

// build returns the graph plus a name → fragment ID lookup.
func build(t testing.TB, frags []frag, losses []loss) (*core.Graph, map[string]int) {
	t.Helper()
	b := core.NewGraphBuilder()
	root, err := b.AddRoot()
	require.NoError(t, err)
	ids := map[string]int{"root": root}
	for _, f := range frags {
		id, err := b.AddFragment(core.Fragment{Formula: f.name, Color: f.color, Mass: 100, Isotope: f.isotope})
		require.NoError(t, err)
		ids[f.name] = id
	}
	for _, l := range losses {
		_, err := b.AddLoss(ids[l.from], ids[l.to], l.w)
		require.NoError(t, err)
	}
	g, err := b.Build()
	require.NoError(t, err)

	return g, ids
}

// conflictGraph: root → {A(c1, 5), B(c1, 3)}, A → C(c2, 4).
func conflictGraph(t testing.TB) (*core.Graph, map[string]int) {
	return build(t,
		[]frag{{"A", 1, false}, {"B", 1, false}, {"C", 2, false}},
		[]loss{{"root", "A", 5}, {"root", "B", 3}, {"A", "C", 4}},
	)
}

// lookaheadRelocation: W is selected below A first; once Y is in, Y→W is
// heavier and W must move. Optimum 7.5.
func lookaheadRelocation(t testing.TB) (*core.Graph, map[string]int) {
	return build(t,
		[]frag{{"A", 0, false}, {"W", 1, false}, {"Y", 2, false}, {"Z", 3, false}},
		[]loss{{"root", "A", 1}, {"A", "W", 4}, {"A", "Y", -1}, {"Y", "W", 4.5}, {"Y", "Z", 3}},
	)
}

// directRelocation: inserting Y pays only thanks to moving W. Optimum 6.7.
func directRelocation(t testing.TB) (*core.Graph, map[string]int) {
	return build(t,
		[]frag{{"A", 0, false}, {"W", 1, false}, {"Y", 2, false}, {"Z", 3, false}},
		[]loss{{"root", "A", 1}, {"A", "W", 4}, {"A", "Y", 0.2}, {"Y", "W", 4.5}, {"Y", "Z", 1}},
	)
}

// bruteForce returns the weight of the best colorful arborescence with a
// single root child, by exhaustive search over parent choices in
// topological order. Exponential; keep graphs tiny.
func bruteForce(g *core.Graph) float64 {
	order := g.TopologicalOrder()
	root := g.Root()
	used := make([]bool, g.NumColors())
	in := make([]bool, g.Size())
	in[root] = true
	rootChild := false
	best := math.Inf(-1)

	var rec func(i int, w float64, nonEmpty bool)
	rec = func(i int, w float64, nonEmpty bool) {
		if i == len(order) {
			if nonEmpty && w > best {
				best = w
			}
			return
		}
		v := order[i]
		rec(i+1, w, nonEmpty)
		if v == root || used[g.Color(v)] {
			return
		}
		for _, id := range g.Incoming(v) {
			u := g.Source(id)
			if !in[u] || math.IsNaN(g.Weight(id)) || (u == root && rootChild) {
				continue
			}
			used[g.Color(v)], in[v] = true, true
			if u == root {
				rootChild = true
			}
			rec(i+1, w+g.Weight(id), true)
			used[g.Color(v)], in[v] = false, false
			if u == root {
				rootChild = false
			}
		}
	}
	rec(0, 0, false)

	return best
}

// parallelLosses: Y reaches W twice with the same weight. Moving W below Y
// recovers 1, not 2, so inserting Y does not pay. Optimum 5.
func parallelLosses(t testing.TB) (*core.Graph, map[string]int) {
	return build(t,
		[]frag{{"A", 0, false}, {"W", 1, false}, {"Y", 2, false}},
		[]loss{{"root", "A", 1}, {"A", "W", 4}, {"A", "Y", -1.5}, {"Y", "W", 5}, {"Y", "W", 5}},
	)
}

// sideBranch: descending along the heaviest loss ends at B; the sibling
// C is only found by stepping back to A. Loss IDs follow list order.
func sideBranch(t testing.TB) (*core.Graph, map[string]int) {
	return build(t,
		[]frag{{"A", 0, false}, {"B", 1, false}, {"C", 2, false}},
		[]loss{{"root", "A", 1}, {"A", "B", 3}, {"A", "C", 2}},
	)
}

// deferredCredit: W goes below A first. Afterwards M→X→V is worth 2.5
// plainly, 3.5 once X's recovery of W (6 against 5) is credited along the
// path, and N (same color as M) is worth 3. Loss IDs follow list order.
func deferredCredit(t testing.TB) (*core.Graph, map[string]int) {
	return build(t,
		[]frag{{"A", 0, false}, {"W", 1, false}, {"M", 2, false}, {"N", 2, false}, {"X", 3, false}, {"V", 4, false}},
		[]loss{
			{"root", "A", 1}, // 0
			{"A", "W", 5},    // 1
			{"A", "M", -1},   // 2
			{"A", "N", 3},    // 3
			{"M", "X", -0.5}, // 4
			{"X", "W", 6},    // 5
			{"X", "V", 4},    // 6
		},
	)
}
