package ftree

// Prune removes every subtree whose net score is not positive and returns
// the number of removed nodes. The tree root is never removed.
//
//	net(v) = w(v) + Σ_{c ∈ children(v)} max(0, net(c))
//
// A child c is detached when net(c) ≤ 0: keeping it can only lower the
// total. Weight is recomputed from the surviving nodes.
//
// Complexity: O(n) time, O(n) memory; no recursion.
func (t *Tree) Prune() int {
	if t == nil || t.Root == nil {
		return 0
	}

	// 1) Post-order scores: children follow parents in preorder, so a
	//    reversed preorder visits every child before its parent.
	order := t.Nodes()
	net := make(map[*Node]float64, len(order))
	var (
		i   int
		n   *Node
		c   *Node
		sum float64
	)
	for i = len(order) - 1; i >= 0; i-- {
		n = order[i]
		sum = n.Weight
		for _, c = range n.Children {
			if net[c] > 0 {
				sum += net[c]
			}
		}
		net[n] = sum
	}

	// 2) Detach non-positive children top-down.
	removed := 0
	for _, n = range order {
		if _, alive := t.index[n.Vertex]; !alive || t.index[n.Vertex] != n {
			continue
		}
		kept := n.Children[:0]
		for _, c = range n.Children {
			if net[c] > 0 {
				kept = append(kept, c)
				continue
			}
			removed += t.unindex(c)
			c.Parent = nil
		}
		n.Children = kept
	}

	// 3) Recompute the weight from scratch.
	t.Weight = 0
	for _, n = range t.Nodes() {
		t.Weight += n.Weight
	}

	return removed
}

// unindex drops the subtree below (and including) n from the mapping and
// returns its size.
func (t *Tree) unindex(n *Node) int {
	count := 0
	stack := []*Node{n}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		delete(t.index, top.Vertex)
		count++
		stack = append(stack, top.Children...)
	}

	return count
}
