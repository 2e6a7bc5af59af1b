package heuristics

import (
	"context"
	"math"

	"github.com/sirius-ms/ftheur/core"
)

// criticalPath implements CriticalPath and CriticalPath2 (and, through
// the dispatcher, CriticalPathIsotopes).
type criticalPath struct {
	name         string
	credit       bool // CriticalPath2: credit compensation along the path
	invalidation Invalidation
	opts         Options
}

func (c *criticalPath) Name() string { return c.name }

// Select grows the selection one loss at a time.
//
// Steps:
//  1. Score every selectable loss s→t as cp(t) + w(s→t) + maxOut(t),
//     scanning selected fragments in insertion order and their losses in
//     graph order; the first maximum wins.
//  2. Stop when no score is positive.
//  3. Insert the winner, moving heavier-reached fragments below it, and
//     invalidate the memo entries that depend on the changes.
//
// Complexity: O(k·(E + V)) for k insertions with InvalidateAll.
func (c *criticalPath) Select(ctx context.Context, g *core.Graph) ([]int, error) {
	if err := checkGraph(g); err != nil {
		return nil, err
	}
	cancel := newCanceler(ctx, c.opts)
	s := newState(g)
	comp := newCompensation(s)

	var bonus func(int) float64
	if c.credit {
		comp.track = true
		bonus = func(v int) float64 {
			if w := comp.gain(v); w > 0 && !math.IsInf(w, 0) {
				return w
			}
			return 0
		}
	}
	memo := newCriticalMemo(s, c.invalidation, bonus)

	var (
		best      int
		bestScore float64
		score     float64
		err       error
	)
	for {
		if err = cancel.poll(); err != nil {
			return nil, err
		}

		// 1) Best selectable loss.
		best, bestScore = -1, 0
		for i := 0; i < len(s.order); i++ {
			v := s.order[i]
			if !s.isSource(v) {
				continue
			}
			for _, id := range g.Outgoing(v) {
				if err = cancel.step(); err != nil {
					return nil, err
				}
				if !s.selectable(id) {
					continue
				}
				t := g.Target(id)
				score = memo.get(t) + g.Weight(id) + comp.gain(t)
				if score > bestScore {
					best, bestScore = id, score
				}
			}
		}

		// 2) No positive move left.
		if best < 0 {
			return s.selection(), nil
		}

		// 3) Insert and invalidate.
		comp.insert(best)
		memo.invalidate(g.FragmentsOfColor(g.Color(g.Target(best))))
		if c.credit {
			memo.invalidate(comp.drain())
		}
	}
}

// checkGraph rejects graphs no strategy can start on.
func checkGraph(g *core.Graph) error {
	if g == nil {
		return ErrNilGraph
	}
	if len(g.Outgoing(g.Root())) == 0 {
		return ErrRootWithoutLosses
	}

	return nil
}
