package ftree

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/soniakeys/bits"

	"github.com/sirius-ms/ftheur/core"
)

// weightTol is the relative tolerance of the weight-conservation check.
const weightTol = 1e-9

// NodeOf returns the node standing for graph fragment v.
func (t *Tree) NodeOf(v int) (*Node, bool) {
	n, ok := t.index[v]

	return n, ok
}

// Size returns the number of nodes.
func (t *Tree) Size() int { return len(t.index) }

// Nodes returns all nodes in preorder (children in attachment order).
// Complexity: O(n).
func (t *Tree) Nodes() []*Node {
	if t == nil || t.Root == nil {
		return nil
	}
	out := make([]*Node, 0, len(t.index))
	stack := []*Node{t.Root}
	var i int
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, n)
		// Push in reverse so the first child is visited first.
		for i = len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}

	return out
}

// Losses returns the IDs of the materialized losses in preorder.
func (t *Tree) Losses() []int {
	nodes := t.Nodes()
	out := make([]int, len(nodes))
	for i, n := range nodes {
		out[i] = n.Loss
	}

	return out
}

// Validate checks the tree invariants against g:
//   - every node except the root has exactly one parent and appears once;
//   - no color occurs twice;
//   - every non-isotope node hangs off the source of its loss;
//   - the mapping covers exactly the reachable nodes;
//   - Weight equals the sum of node weights.
//
// Complexity: O(n).
func (t *Tree) Validate(g *core.Graph) error {
	if g == nil {
		return ErrNilGraph
	}
	if t == nil || t.Root == nil {
		return fmt.Errorf("%w: no root", ErrInvalidTree)
	}
	if t.Root.Parent != nil {
		return fmt.Errorf("%w: root has a parent", ErrInvalidTree)
	}

	used := bits.New(g.NumColors())
	seen := make(map[*Node]bool, len(t.index))
	var sum float64
	stack := []*Node{t.Root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[n] {
			return fmt.Errorf("%w: node %d reached twice", ErrInvalidTree, n.Vertex)
		}
		seen[n] = true

		if n.Color < 0 || n.Color >= g.NumColors() {
			return fmt.Errorf("%w: node %d color %d out of range", ErrInvalidTree, n.Vertex, n.Color)
		}
		if used.Bit(n.Color) == 1 {
			return fmt.Errorf("%w: color %d used twice", ErrInvalidTree, n.Color)
		}
		used.SetBit(n.Color, 1)

		if n.Loss < 0 || n.Loss >= g.LossCount() || g.Target(n.Loss) != n.Vertex {
			return fmt.Errorf("%w: node %d has foreign loss %d", ErrInvalidTree, n.Vertex, n.Loss)
		}
		if n.Parent == nil && g.Source(n.Loss) != g.Root() {
			return fmt.Errorf("%w: tree root %d does not hang off the graph root", ErrInvalidTree, n.Vertex)
		}
		if n.Parent != nil && !n.Isotope && g.Source(n.Loss) != n.Parent.Vertex {
			return fmt.Errorf("%w: node %d attached to %d, loss from %d",
				ErrInvalidTree, n.Vertex, n.Parent.Vertex, g.Source(n.Loss))
		}
		if m, ok := t.index[n.Vertex]; !ok || m != n {
			return fmt.Errorf("%w: node %d missing from mapping", ErrInvalidTree, n.Vertex)
		}
		sum += n.Weight

		for _, c := range n.Children {
			if c.Parent != n {
				return fmt.Errorf("%w: node %d has a stale parent link", ErrInvalidTree, c.Vertex)
			}
			stack = append(stack, c)
		}
	}
	if len(seen) != len(t.index) {
		return fmt.Errorf("%w: mapping holds %d nodes, tree %d", ErrInvalidTree, len(t.index), len(seen))
	}
	if math.Abs(sum-t.Weight) > weightTol*math.Max(1, math.Abs(sum)) {
		return fmt.Errorf("%w: weight %g, node sum %g", ErrInvalidTree, t.Weight, sum)
	}

	return nil
}

// Format writes an indented, human-readable rendering of t to w:
//
//	C6H12O6 [c1] +2.500
//	  C6H10O5 [c2] +1.250
func (t *Tree) Format(w io.Writer) error {
	if t == nil || t.Root == nil {
		return nil
	}
	type item struct {
		n     *Node
		depth int
	}
	stack := []item{{t.Root, 0}}
	var sb strings.Builder
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		label := it.n.Formula
		if it.n.Isotope {
			label = fmt.Sprintf("isotope(%.4f)", it.n.Mass)
		}
		fmt.Fprintf(&sb, "%s%s [c%d] %+.3f\n", strings.Repeat("  ", it.depth), label, it.n.Color, it.n.Weight)
		for i := len(it.n.Children) - 1; i >= 0; i-- {
			stack = append(stack, item{it.n.Children[i], it.depth + 1})
		}
	}
	fmt.Fprintf(&sb, "total %.6f\n", t.Weight)
	_, err := io.WriteString(w, sb.String())

	return err
}
