// Package core - topological ordering and cycle detection.
//
// topologicalOrder is a depth-first sort with white/gray/black vertex states.
// It uses an explicit stack of (vertex, next-outgoing-index) frames so that
// very deep fragmentation chains cannot overflow the goroutine stack.
//
// Complexity:
//
//   - Time:   O(V + E) (each vertex and loss visited once)
//   - Memory: O(V)     (state array, frame stack, order)
package core

import "fmt"

// DFS vertex states.
const (
	white = iota // not visited yet
	gray         // on the current DFS path
	black        // fully explored
)

// frame is one entry of the explicit DFS stack.
type frame struct {
	v    int // vertex
	next int // index into g.out[v] of the next loss to explore
}

// topologicalOrder returns a topological order of g with the root first.
// The root is explored last so that it finishes last and therefore leads
// the reversed post-order; this is valid because nothing enters the root.
func topologicalOrder(g *Graph) ([]int, error) {
	n := len(g.fragments)
	state := make([]uint8, n)
	order := make([]int, 0, n)
	stack := make([]frame, 0, 16)

	visit := func(start int) error {
		state[start] = gray
		stack = append(stack[:0], frame{v: start})
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next < len(g.out[top.v]) {
				w := g.losses[g.out[top.v][top.next]].Target
				top.next++
				switch state[w] {
				case gray:
					// Back edge: w is on the current path.
					return fmt.Errorf("%w: through fragment %d", ErrCycleDetected, w)
				case white:
					state[w] = gray
					stack = append(stack, frame{v: w})
				}
				continue
			}
			// All descendants done.
			state[top.v] = black
			order = append(order, top.v)
			stack = stack[:len(stack)-1]
		}

		return nil
	}

	var v int
	for v = 0; v < n; v++ {
		if v == g.root || state[v] != white {
			continue
		}
		if err := visit(v); err != nil {
			return nil, err
		}
	}
	if state[g.root] == white {
		if err := visit(g.root); err != nil {
			return nil, err
		}
	}

	// Reverse post-order.
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}

	return order, nil
}
