// Package ftree turns a set of selected losses into a fragmentation tree.
//
// Every heuristic in this module reduces to "choose some losses of the
// candidate graph"; ftree owns what happens afterwards, so that strategies
// never build trees themselves:
//
//   - Assemble materializes the tree. The root's chosen child becomes the
//     tree root; every other loss is attached under its already-materialized
//     source, visiting losses by ascending target color. Losses whose source
//     never becomes reachable are dropped, so a returned tree is always
//     connected and single-rooted.
//   - An empty selection falls back to the best root loss (a depth-1 tree).
//   - WithPruning removes every subtree whose net score
//     net(v) = w(v) + Σ max(0, net(child)) is not positive.
//   - WithIsotopeReattachment defers losses into isotope marker fragments and
//     re-chains them as zero-formula, pure-mass side chains under their first
//     chemical ancestor, in descending color order.
//
// The tree keeps a graph→tree mapping (NodeOf) so downstream code can relate
// nodes back to candidate-graph fragments. Tree.Weight always equals the sum
// of the node weights.
//
// Errors (sentinel):
//
//	ErrNilGraph      - Assemble called with a nil graph.
//	ErrNoRootLoss    - nothing leaves the root, so no tree exists.
//	ErrUnknownLoss   - a selected loss ID is out of range.
//	ErrColorConflict - two selected losses target the same color.
//	ErrInvalidTree   - Validate found a broken invariant.
package ftree
