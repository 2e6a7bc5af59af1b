// Package core defines the candidate graph consumed by every heuristic in
// this module: an immutable, weighted, colored DAG with one synthetic root.
//
// Vertices are Fragments (a hypothesis that some molecular formula explains
// one observed spectral peak). Edges are Losses (a hypothesis that a fragment
// lost a substructure and became another fragment). Every non-root fragment
// carries a Color naming the peak it explains; at most one fragment per color
// may end up in a solution tree.
//
// Lifecycle:
//
//	b := core.NewGraphBuilder()
//	root := b.AddRoot()
//	a, _ := b.AddFragment(core.Fragment{Formula: "C6H12O6", Color: 1})
//	_, _ = b.AddLoss(root, a, 2.5)
//	g, err := b.Build()
//
// Build validates the structure once (single root, known endpoints, no self
// losses, nothing flows into the root, acyclic) and freezes the graph. From
// then on a *Graph is read-only and can be shared by any number of
// goroutines without locking.
//
// Identifiers:
//
//   - Fragment IDs are dense integers in insertion order; the root is 0.
//   - Loss IDs are dense integers in insertion order.
//   - Outgoing/Incoming return loss IDs in insertion order, which every
//     heuristic relies on for deterministic tie-breaking.
//
// Errors (sentinel):
//
//	ErrNoRoot           - Build called before AddRoot.
//	ErrDuplicateRoot    - AddRoot called twice.
//	ErrFragmentNotFound - a loss references an unknown fragment.
//	ErrSelfLoss         - a loss whose source equals its target.
//	ErrLossIntoRoot     - a loss targeting the root.
//	ErrNegativeColor    - a non-root fragment with Color < 0.
//	ErrCycleDetected    - the losses do not form a DAG.
//	ErrBadDocument      - a YAML/JSON graph document is malformed.
//
// Complexity: Build is O(V + E); every accessor is O(1).
package core
