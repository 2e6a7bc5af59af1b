package heuristics

import (
	"context"
	"math"

	"github.com/sirius-ms/ftheur/core"
)

type fastInsertion struct{ opts Options }

func (fastInsertion) Name() string { return FastInsertion.String() }

// Select repeatedly inserts the free fragment v maximizing
// maxIn(v) + maxOut(v), where maxIn is the heaviest loss into v from a
// selected fragment and maxOut its compensation. Only direct insertions are
// scored; there is no lookahead.
//
// Steps:
//  1. Seed maxIn from the root's losses; the working list holds every
//     non-root fragment in ID order.
//  2. Each round: compact the list (drop used colors), pick the first
//     maximum, stop unless it is positive.
//  3. Insert with relocation, then raise maxIn of the new fragment's
//     free successors.
//
// Complexity: O(V) per round plus O(deg) per insertion.
func (f fastInsertion) Select(ctx context.Context, g *core.Graph) ([]int, error) {
	if err := checkGraph(g); err != nil {
		return nil, err
	}
	cancel := newCanceler(ctx, f.opts)
	s := newState(g)
	comp := newCompensation(s)

	n := g.Size()
	maxIn := make([]float64, n)
	bestIn := make([]int, n)
	for v := range bestIn {
		bestIn[v] = -1
	}
	// offer raises maxIn(Target(id)) when id beats the current best.
	offer := func(id int) {
		t := g.Target(id)
		if !s.selectable(id) || !better(g.Weight(id), bestIn[t] >= 0, maxIn[t]) {
			return
		}
		maxIn[t], bestIn[t] = g.Weight(id), id
	}
	// refresh recomputes bestIn(v) when its loss left the root after the
	// root got its child.
	refresh := func(v int) {
		bestIn[v] = -1
		for _, id := range g.Incoming(v) {
			offer(id)
		}
	}

	// 1) Seed.
	for _, id := range g.Outgoing(g.Root()) {
		offer(id)
	}
	work := make([]int, 0, n-1)
	for v := 0; v < n; v++ {
		if v != g.Root() {
			work = append(work, v)
		}
	}

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

		// 2) Compact and pick.
		kept := work[:0]
		best, bestScore = -1, 0
		for _, v := range work {
			if err = cancel.step(); err != nil {
				return nil, err
			}
			if !s.free(v) {
				continue
			}
			kept = append(kept, v)
			if bestIn[v] >= 0 && !s.selectable(bestIn[v]) {
				refresh(v)
			}
			if bestIn[v] < 0 {
				continue
			}
			score = maxIn[v] + comp.gain(v)
			if score > bestScore && !math.IsNaN(score) {
				best, bestScore = v, score
			}
		}
		work = kept
		if best < 0 {
			return s.selection(), nil
		}

		// 3) Insert, then offer the new fragment's losses.
		comp.insert(bestIn[best])
		for _, id := range g.Outgoing(best) {
			offer(id)
		}
	}
}
