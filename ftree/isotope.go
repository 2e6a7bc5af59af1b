package ftree

import (
	"sort"

	"github.com/sirius-ms/ftheur/core"
)

// reattachIsotopes re-chains the deferred isotope losses.
//
// For every deferred loss the parent chain is followed upwards through
// other isotope markers until a materialized chemical fragment (the anchor)
// is found. All isotope fragments sharing an anchor form one chain below
// it, ordered by descending color. Isotope nodes carry no formula; their
// mass is their identity. Losses whose anchor is not in the tree are dropped.
func (t *Tree) reattachIsotopes(g *core.Graph, deferred []int) {
	// target → deferred loss, to walk isotope parents.
	parentLoss := make(map[int]int, len(deferred))
	for _, id := range deferred {
		parentLoss[g.Target(id)] = id
	}

	chains := make(map[int][]int) // anchor vertex → deferred losses
	var anchors []int
	for _, id := range deferred {
		v := g.Source(id)
		for {
			if _, ok := t.index[v]; ok && !g.IsIsotope(v) {
				break
			}
			up, ok := parentLoss[v]
			if !ok {
				v = -1
				break
			}
			v = g.Source(up)
		}
		if v < 0 {
			continue
		}
		if _, ok := chains[v]; !ok {
			anchors = append(anchors, v)
		}
		chains[v] = append(chains[v], id)
	}

	for _, a := range anchors {
		chain := chains[a]
		sort.SliceStable(chain, func(i, j int) bool {
			return g.Color(g.Target(chain[i])) > g.Color(g.Target(chain[j]))
		})
		parent := t.index[a]
		for _, id := range chain {
			n := t.newNode(g, id, parent)
			n.Formula = ""
			n.Isotope = true
			parent = n
		}
	}
}
