package heuristics

import (
	"context"

	"github.com/sirius-ms/ftheur/core"
)

type legacyInsertion struct{ opts Options }

func (legacyInsertion) Name() string { return LegacyInsertion.String() }

// Select performs a local search that keeps no tables between rounds.
// Each round enumerates, for every selected fragment u in insertion order,
// the moves that attach a free fragment x below u:
//
//	gain = w(u→x) + Σ_{y selected} max(0, max_{x→y} w(x→y) − w(sel(y)))
//
// i.e. the insertion itself plus every selected fragment that would move
// one hop further out below x because x reaches it with a heavier loss.
// The single best positive move (first on ties) is applied; the search
// stops when no move gains anything.
//
// Complexity: O(E·deg) per round.
func (l legacyInsertion) Select(ctx context.Context, g *core.Graph) ([]int, error) {
	if err := checkGraph(g); err != nil {
		return nil, err
	}
	cancel := newCanceler(ctx, l.opts)
	s := newState(g)

	var (
		best     int
		bestGain float64
		gain     float64
		err      error
	)
	for {
		if err = cancel.poll(); err != nil {
			return nil, err
		}

		best, bestGain = -1, 0
		for i := 0; i < len(s.order); i++ {
			u := s.order[i]
			if !s.isSource(u) {
				continue
			}
			for _, id := range g.Outgoing(u) {
				if err = cancel.step(); err != nil {
					return nil, err
				}
				if !s.selectable(id) {
					continue
				}
				gain = g.Weight(id) + s.relocationGain(g.Target(id))
				if gain > bestGain {
					best, bestGain = id, gain
				}
			}
		}
		if best < 0 {
			return s.selection(), nil
		}
		s.insertRelocating(best, nil)
	}
}
