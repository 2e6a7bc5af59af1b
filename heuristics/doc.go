// Package heuristics implements fast approximate solvers for the
// maximum-weight colorful arborescence problem on candidate graphs.
//
// Every algorithm is a Strategy that reads an immutable *core.Graph and
// returns the selected loss IDs; ftree.Assemble turns the selection into a
// tree. Solve wires both steps together:
//
//	res, err := heuristics.Solve(ctx, g,
//		heuristics.WithAlgorithm(heuristics.CriticalPath2),
//		heuristics.WithPruning(heuristics.PruneAlways),
//	)
//
// Algorithms (speed vs quality, roughly fastest first):
//
//   - Greedy: one pass over losses sorted by weight.
//   - PrimStar: frontier growth from the root.
//   - TopDown / DeepSearch: descent along the heaviest loss, the latter with
//     backtracking.
//   - FastInsertion: direct insertion scored by best incoming loss plus
//     compensation.
//   - CriticalPath / CriticalPath2 / CriticalPathIsotopes: insertion scored
//     with a memoized lookahead.
//   - ExtendedCriticalPath: inserts whole lookahead paths, then relocates.
//   - LegacyInsertion: table-free local search, slowest.
//
// All working state is private to one run, so a graph may be solved by
// many goroutines at once. Runs poll the context (and an optional cancel
// check) at least once per outer iteration and return ErrCanceled without a
// tree when asked to stop.
package heuristics
