package heuristics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirius-ms/ftheur/core"
	"github.com/sirius-ms/ftheur/ftree"
	"github.com/sirius-ms/ftheur/observability"
)

// New returns the Strategy for alg configured by opts.
//
// Errors:
//   - ErrUnsupportedAlgorithm for an unknown alg.
func New(alg Algorithm, opts ...Option) (Strategy, error) {
	o := resolve(opts)
	o.Algorithm = alg

	return newStrategy(o)
}

func newStrategy(o Options) (Strategy, error) {
	switch o.Algorithm {
	case Greedy:
		return greedy{opts: o}, nil
	case PrimStar:
		return primStar{opts: o}, nil
	case DeepSearch:
		return deepSearch{name: DeepSearch.String(), backtrack: true, opts: o}, nil
	case TopDown:
		return deepSearch{name: TopDown.String(), opts: o}, nil
	case CriticalPath:
		return &criticalPath{name: CriticalPath.String(), invalidation: o.Invalidation, opts: o}, nil
	case CriticalPath2:
		return &criticalPath{name: CriticalPath2.String(), credit: true, invalidation: o.Invalidation, opts: o}, nil
	case CriticalPathIsotopes:
		return &criticalPath{name: CriticalPathIsotopes.String(), credit: true, invalidation: o.Invalidation, opts: o}, nil
	case FastInsertion:
		return fastInsertion{opts: o}, nil
	case LegacyInsertion:
		return legacyInsertion{opts: o}, nil
	case ExtendedCriticalPath:
		return extendedCriticalPath{opts: o}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, o.Algorithm)
	}
}

// Solve runs the configured strategy (default CriticalPath2) on g and
// assembles its selection into a tree.
//
// Steps:
//  1. Resolve options; build the strategy.
//  2. Select losses; cancellation yields ErrCanceled and no tree.
//  3. Assemble with pruning and isotope reattachment as configured.
//
// Errors:
//   - ErrNilGraph, ErrRootWithoutLosses: configuration errors.
//   - ErrUnsupportedAlgorithm: unknown algorithm.
//   - ErrCanceled: wraps the context error.
//   - ErrNoSolution: the builder could not produce a tree.
func Solve(ctx context.Context, g *core.Graph, opts ...Option) (*Result, error) {
	o := resolve(opts)
	if ctx == nil {
		ctx = context.Background()
	}
	hooks := o.Hooks
	if hooks == nil {
		hooks = observability.Solve()
	}
	name := o.Algorithm.String()

	var fragments, losses int
	if g != nil {
		fragments, losses = g.Size(), g.LossCount()
	}
	hooks.OnSolveStart(ctx, name, fragments, losses)
	start := time.Now()

	res, err := solve(ctx, g, o)
	elapsed := time.Since(start)

	var weight float64
	if res != nil {
		res.Elapsed = elapsed
		weight = res.Tree.Weight
	}
	hooks.OnSolveComplete(ctx, name, weight, elapsed, err)
	if o.Logger != nil {
		if err != nil {
			o.Logger.Debug("solve failed", "algorithm", name, "elapsed", elapsed, "err", err)
		} else {
			o.Logger.Debug("solved", "algorithm", name, "losses", len(res.Losses),
				"fragments", res.Tree.Size(), "weight", res.Tree.Weight, "elapsed", elapsed)
		}
	}

	return res, err
}

func solve(ctx context.Context, g *core.Graph, o Options) (*Result, error) {
	strat, err := newStrategy(o)
	if err != nil {
		return nil, err
	}
	sel, err := strat.Select(ctx, g)
	if err != nil {
		return nil, err
	}

	var topts []ftree.Option
	if o.shouldPrune() {
		topts = append(topts, ftree.WithPruning())
	}
	if o.ReattachIsotopes || o.Algorithm == CriticalPathIsotopes {
		topts = append(topts, ftree.WithIsotopeReattachment())
	}
	tree, err := ftree.Assemble(g, sel, topts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNoSolution, o.Algorithm, err)
	}

	return &Result{Tree: tree, Losses: sel, Algorithm: o.Algorithm}, nil
}

// SolveFallback tries algs in order and returns the first result. Only
// ErrNoSolution moves on to the next algorithm; any other error, notably
// ErrCanceled, is returned at once.
//
// Errors:
//   - ErrUnsupportedAlgorithm if algs is empty.
//   - the last ErrNoSolution when every algorithm failed.
func SolveFallback(ctx context.Context, g *core.Graph, algs []Algorithm, opts ...Option) (*Result, error) {
	if len(algs) == 0 {
		return nil, fmt.Errorf("%w: no algorithms given", ErrUnsupportedAlgorithm)
	}
	var last error
	for _, alg := range algs {
		res, err := Solve(ctx, g, append(opts[:len(opts):len(opts)], WithAlgorithm(alg))...)
		if err == nil {
			return res, nil
		}
		if !errors.Is(err, ErrNoSolution) {
			return nil, err
		}
		last = err
	}

	return nil, last
}
