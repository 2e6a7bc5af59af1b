// Package builder provides deterministic "functional-options"-style
// generators of candidate graphs for tests, benchmarks and the CLI.
//
// The package offers the following key components:
//
//   - Orchestration:
//     – BuildGraph:        adds the synthetic root, runs constructors in order, freezes the graph.
//     – Constructor:       a function that adds fragments and losses to a core.GraphBuilder.
//   - Constructors:
//     – Chain:             one fragmentation path, one color per step.
//     – Star:              a precursor with direct losses to n-1 peaks.
//     – Layered:           every fragment connected to every fragment of a higher color.
//     – RandomDAG:         Layered with each forward loss kept with probability p.
//   - Configuration primitives:
//     – BuilderOption:     a function that mutates builderConfig before use.
//     – builderConfig:     holds RNG, formula scheme, weight function, isotope rate.
//   - Formula schemes (FormulaFn implementations):
//     – DefaultFormulaFn:  "F0","F1",….
//     – SymbolFormulaFn:   single letters ("A","B",…).
//     – ExcelColumnFormulaFn: Excel-style columns ("A","Z","AA",…).
//   - Loss-weight distributions (WeightFn implementations):
//     – DefaultWeightFn:   constant weight DefaultLossWeight.
//     – ConstantWeightFn:  fixed user-provided value.
//     – UniformWeightFn:   uniform ∼U[min,max], negative bounds allowed.
//     – NormalWeightFn:    Gaussian ∼N(mean,stddev).
//     – ExponentialWeightFn: exponential ∼Exp(rate).
//
// Guarantees:
//
//   - Colors: the precursor candidates (children of the root) share color 0;
//     color c > 0 stands for peak c. Losses always go from a lower to a
//     higher color, so every generated graph is acyclic.
//   - Fast-fail on invalid option parameters via panics in option constructors.
//   - Structured runtime errors wrapping the sentinels in errors.go.
//   - Determinism: same constructors, options and seed ⇒ identical graphs.
package builder
