// Package ftheur computes fragmentation trees: heavy colorful arborescences
// of fragmentation candidate graphs, the trees that explain an MS/MS
// spectrum by a cascade of losses from the precursor.
//
// What is in the box?
//
//	• Candidate graphs: immutable colored DAGs with a pseudo-root, a
//	  validating builder and a YAML/JSON document codec
//	• Solution trees: assembly from a loss selection, pruning of
//	  negative subtrees, isotope side chains, validation
//	• Heuristics: Greedy, Prim-Star, DeepSearch, TopDown, the critical
//	  path family and insertion with compensation, behind one dispatcher
//	• Batches: many graphs solved concurrently
//	• Observability: solve hooks with a Prometheus backend
//
// Why heuristics?
//
//   - The exact problem is NP-hard; these run in near-linear time per step
//   - Every run is deterministic and cancellable
//   - Graphs are read-only, so one graph can feed many goroutines
//
// Subpackages:
//
//	core/          candidate graph, builder, topological order, codec
//	ftree/         solution tree assembly, pruning, isotopes, validation
//	heuristics/    strategies, options, Solve and SolveFallback
//	batch/         bounded parallel solving of many graphs
//	observability/ solve hooks and Prometheus metrics
//	builder/       deterministic candidate graph generators
//	cmd/ftheur/    command-line harness (solve, generate)
//
// Quick start:
//
//	g, _ := core.Decode(file)
//	res, err := heuristics.Solve(ctx, g, heuristics.WithAlgorithm(heuristics.CriticalPath2))
//	if err != nil { ... }
//	_ = res.Tree.Format(os.Stdout)
package ftheur
