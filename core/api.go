// File: api.go
// Role: read-only accessors of an immutable Graph.
// Policy:
//   - No allocation on the hot accessors (Color, Outgoing, Incoming, Loss).
//   - Returned slices are shared with the Graph and MUST NOT be modified.
//     They are capped at their length, so an append always copies.

package core

// Root returns the ID of the synthetic root (always 0).
func (g *Graph) Root() int { return g.root }

// Size returns the number of fragments, root included.
func (g *Graph) Size() int { return len(g.fragments) }

// LossCount returns the number of losses.
func (g *Graph) LossCount() int { return len(g.losses) }

// NumColors returns max(color)+1 over all non-root fragments, i.e. the
// size a per-color table must have.
func (g *Graph) NumColors() int { return g.numColors }

// Fragment returns the fragment with ID v.
func (g *Graph) Fragment(v int) Fragment { return g.fragments[v] }

// Color returns the color of fragment v (NoColor for the root).
func (g *Graph) Color(v int) int { return g.fragments[v].Color }

// IsIsotope reports whether fragment v is an isotope marker.
func (g *Graph) IsIsotope(v int) bool { return g.fragments[v].Isotope }

// Outgoing returns the IDs of losses leaving v, in insertion order.
// The slice is shared and must not be modified.
func (g *Graph) Outgoing(v int) []int { return capped(g.out[v]) }

// Incoming returns the IDs of losses entering v, in insertion order.
// The slice is shared and must not be modified.
func (g *Graph) Incoming(v int) []int { return capped(g.in[v]) }

// Loss returns the loss with ID id.
func (g *Graph) Loss(id int) Loss { return g.losses[id] }

// Source returns the source fragment of loss id.
func (g *Graph) Source(id int) int { return g.losses[id].Source }

// Target returns the target fragment of loss id.
func (g *Graph) Target(id int) int { return g.losses[id].Target }

// Weight returns the weight of loss id.
func (g *Graph) Weight(id int) float64 { return g.losses[id].Weight }

// Losses returns a copy of all losses in ID order.
// Complexity: O(E).
func (g *Graph) Losses() []Loss {
	out := make([]Loss, len(g.losses))
	copy(out, g.losses)

	return out
}

// Fragments returns a copy of all fragments in ID order.
// Complexity: O(V).
func (g *Graph) Fragments() []Fragment {
	out := make([]Fragment, len(g.fragments))
	copy(out, g.fragments)

	return out
}

// FragmentsOfColor returns the fragments carrying color c in insertion
// order, or nil for an unknown color. The slice is shared.
func (g *Graph) FragmentsOfColor(c int) []int {
	if c < 0 || c >= len(g.byColor) {
		return nil
	}

	return capped(g.byColor[c])
}

// TopologicalOrder returns all fragments such that every loss points from
// an earlier to a later entry; the root comes first. The slice is shared.
func (g *Graph) TopologicalOrder() []int { return capped(g.topo) }

// capped limits the capacity of a shared slice to its length.
func capped(s []int) []int { return s[:len(s):len(s)] }
