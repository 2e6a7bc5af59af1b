package heuristics

import (
	"container/heap"
	"context"
	"math"

	"github.com/sirius-ms/ftheur/core"
)

type primStar struct{ opts Options }

func (primStar) Name() string { return PrimStar.String() }

// Select grows the selection from the root like Prim's algorithm, always
// taking the heaviest frontier loss.
//
// Steps:
//  1. Push every loss leaving the root.
//  2. Pop the heaviest loss; skip it if its target color became used
//     (lazy deletion) or the root already has its child.
//  3. Accept it and push the new fragment's losses to unused colors.
//  4. Stop when the frontier is empty.
//
// Complexity: O(E log E) time, O(E) memory.
func (p primStar) Select(ctx context.Context, g *core.Graph) ([]int, error) {
	if err := checkGraph(g); err != nil {
		return nil, err
	}
	cancel := newCanceler(ctx, p.opts)
	s := newState(g)

	pq := &lossPQ{g: g}
	push := func(v int) {
		for _, id := range g.Outgoing(v) {
			if s.free(g.Target(id)) && !math.IsNaN(g.Weight(id)) {
				heap.Push(pq, id)
			}
		}
	}
	push(g.Root())

	var id int
	for pq.Len() > 0 {
		if err := cancel.step(); err != nil {
			return nil, err
		}
		id = heap.Pop(pq).(int)
		if !s.selectable(id) {
			continue
		}
		s.add(id)
		push(g.Target(id))
	}
	if err := cancel.poll(); err != nil {
		return nil, err
	}

	return s.selection(), nil
}

// lossPQ is a max-heap of loss IDs by weight; equal weights pop in
// ascending ID order.
type lossPQ struct {
	g   *core.Graph
	ids []int
}

func (pq *lossPQ) Len() int { return len(pq.ids) }

func (pq *lossPQ) Less(i, j int) bool {
	wi, wj := pq.g.Weight(pq.ids[i]), pq.g.Weight(pq.ids[j])
	if wi != wj {
		return wi > wj
	}

	return pq.ids[i] < pq.ids[j]
}

func (pq *lossPQ) Swap(i, j int) { pq.ids[i], pq.ids[j] = pq.ids[j], pq.ids[i] }

func (pq *lossPQ) Push(x interface{}) { pq.ids = append(pq.ids, x.(int)) }

func (pq *lossPQ) Pop() interface{} {
	old := pq.ids
	n := len(old)
	id := old[n-1]
	pq.ids = old[:n-1]

	return id
}
