package heuristics_test

import (
	"bytes"
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirius-ms/ftheur/builder"
	"github.com/sirius-ms/ftheur/core"
	"github.com/sirius-ms/ftheur/heuristics"
	"github.com/sirius-ms/ftheur/observability"
)

const eps = 1e-9

func solve(t *testing.T, g *core.Graph, alg heuristics.Algorithm, opts ...heuristics.Option) *heuristics.Result {
	t.Helper()
	res, err := heuristics.Solve(context.Background(), g, append(opts, heuristics.WithAlgorithm(alg))...)
	require.NoError(t, err, alg.String())
	require.NoError(t, res.Tree.Validate(g), alg.String())

	return res
}

func parentOf(t *testing.T, res *heuristics.Result, v int) int {
	t.Helper()
	n, ok := res.Tree.NodeOf(v)
	require.True(t, ok, "fragment %d missing", v)

	return n.Parent.Vertex
}

func randomGraph(t testing.TB, seed int64, colors, perColor int, p float64) *core.Graph {
	t.Helper()
	g, err := builder.BuildGraph([]builder.BuilderOption{
		builder.WithSeed(seed),
		builder.WithUniformWeight(-2, 3),
	}, builder.RandomDAG(colors, perColor, p))
	require.NoError(t, err)

	return g
}

func TestSolve_ColorConflict(t *testing.T) {
	g, ids := conflictGraph(t)
	for _, alg := range heuristics.Algorithms() {
		t.Run(alg.String(), func(t *testing.T) {
			res := solve(t, g, alg)
			assert.InDelta(t, 9.0, res.Tree.Weight, eps)
			assert.Equal(t, ids["A"], parentOf(t, res, ids["C"]))
			_, hasB := res.Tree.NodeOf(ids["B"])
			assert.False(t, hasB)
			assert.Equal(t, alg, res.Algorithm)
		})
	}
}

func TestSolve_RelocatesAfterLookahead(t *testing.T) {
	g, ids := lookaheadRelocation(t)
	for _, alg := range []heuristics.Algorithm{
		heuristics.Greedy,
		heuristics.CriticalPath,
		heuristics.CriticalPath2,
		heuristics.CriticalPathIsotopes,
		heuristics.ExtendedCriticalPath,
	} {
		t.Run(alg.String(), func(t *testing.T) {
			res := solve(t, g, alg)
			assert.InDelta(t, 7.5, res.Tree.Weight, eps)
			assert.Equal(t, ids["Y"], parentOf(t, res, ids["W"]))
			assert.Equal(t, ids["Y"], parentOf(t, res, ids["Z"]))
		})
	}
	assert.InDelta(t, 7.5, bruteForce(g), eps)
}

func TestExtendedCriticalPath_RelocationModes(t *testing.T) {
	g, ids := lookaheadRelocation(t)

	tests := []struct {
		mode   heuristics.Relocation
		weight float64
		parent string
	}{
		{heuristics.RelocateAll, 7.5, "Y"},
		{heuristics.RelocateBySpanningTree, 7.5, "Y"},
		{heuristics.RelocateNone, 7.0, "A"},
	}
	for _, tc := range tests {
		res := solve(t, g, heuristics.ExtendedCriticalPath, heuristics.WithRelocation(tc.mode))
		assert.InDelta(t, tc.weight, res.Tree.Weight, eps)
		assert.Equal(t, ids[tc.parent], parentOf(t, res, ids["W"]))
	}
}

func TestSolve_CompensationPaysForInsertion(t *testing.T) {
	g, ids := directRelocation(t)
	for _, alg := range []heuristics.Algorithm{
		heuristics.FastInsertion,
		heuristics.LegacyInsertion,
		heuristics.CriticalPath,
		heuristics.CriticalPath2,
	} {
		t.Run(alg.String(), func(t *testing.T) {
			res := solve(t, g, alg)
			assert.InDelta(t, 6.7, res.Tree.Weight, eps)
			assert.Equal(t, ids["Y"], parentOf(t, res, ids["W"]))
		})
	}
}

func TestSolve_ParallelLossesCreditedOnce(t *testing.T) {
	g, ids := parallelLosses(t)
	require.InDelta(t, 5.0, bruteForce(g), eps)
	for _, alg := range []heuristics.Algorithm{
		heuristics.FastInsertion,
		heuristics.LegacyInsertion,
		heuristics.CriticalPath,
		heuristics.CriticalPath2,
	} {
		t.Run(alg.String(), func(t *testing.T) {
			res := solve(t, g, alg)
			assert.InDelta(t, 5.0, res.Tree.Weight, eps)
			assert.Equal(t, ids["A"], parentOf(t, res, ids["W"]))
			_, hasY := res.Tree.NodeOf(ids["Y"])
			assert.False(t, hasY)
		})
	}
}

func TestDeepSearch_BacktracksWhereTopDownStops(t *testing.T) {
	g, ids := sideBranch(t)

	top := solve(t, g, heuristics.TopDown)
	assert.Equal(t, []int{0, 1}, top.Losses)
	assert.InDelta(t, 4.0, top.Tree.Weight, eps)
	_, hasC := top.Tree.NodeOf(ids["C"])
	assert.False(t, hasC)

	deep := solve(t, g, heuristics.DeepSearch)
	assert.Equal(t, []int{0, 1, 2}, deep.Losses)
	assert.InDelta(t, 6.0, deep.Tree.Weight, eps)
	assert.Equal(t, ids["A"], parentOf(t, deep, ids["C"]))
}

func TestCriticalPath2_CreditsCompensationAlongPath(t *testing.T) {
	g, ids := deferredCredit(t)
	require.InDelta(t, 9.5, bruteForce(g), eps)

	plain := solve(t, g, heuristics.CriticalPath)
	assert.Equal(t, []int{0, 1, 3}, plain.Losses)
	assert.InDelta(t, 9.0, plain.Tree.Weight, eps)
	assert.Equal(t, ids["A"], parentOf(t, plain, ids["W"]))

	credited := solve(t, g, heuristics.CriticalPath2)
	assert.Equal(t, []int{0, 5, 2, 4, 6}, credited.Losses)
	assert.InDelta(t, 9.5, credited.Tree.Weight, eps)
	assert.Equal(t, ids["X"], parentOf(t, credited, ids["W"]))
	_, hasN := credited.Tree.NodeOf(ids["N"])
	assert.False(t, hasN)
}

func TestSolve_NeverBeatsOptimum(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		g := randomGraph(t, seed, 5, 2, 0.5)
		opt := bruteForce(g)
		for _, alg := range heuristics.Algorithms() {
			res, err := heuristics.Solve(context.Background(), g, heuristics.WithAlgorithm(alg))
			require.NoError(t, err, "seed %d %s", seed, alg)
			require.NoError(t, res.Tree.Validate(g), "seed %d %s", seed, alg)
			assert.LessOrEqual(t, res.Tree.Weight, opt+eps, "seed %d %s", seed, alg)

			seen := map[int]bool{}
			for _, id := range res.Losses {
				c := g.Color(g.Target(id))
				assert.False(t, seen[c], "seed %d %s: color %d twice", seed, alg, c)
				seen[c] = true
				assert.False(t, math.IsNaN(g.Weight(id)))
			}
		}
	}
}

// With one candidate per color, non-negative weights and every fragment
// reachable, greedy is exact.
func TestGreedy_OptimalOnUniqueColors(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		g, err := builder.BuildGraph([]builder.BuilderOption{
			builder.WithSeed(seed),
			builder.WithUniformWeight(0, 3),
		}, builder.Layered(6, 1))
		require.NoError(t, err)

		res := solve(t, g, heuristics.Greedy)
		assert.InDelta(t, bruteForce(g), res.Tree.Weight, eps, "seed %d", seed)
	}
}

func TestSolve_Idempotent(t *testing.T) {
	g := randomGraph(t, 3, 6, 3, 0.4)
	for _, alg := range heuristics.Algorithms() {
		a := solve(t, g, alg)
		b := solve(t, g, alg)
		assert.Equal(t, a.Losses, b.Losses, alg.String())
		assert.Equal(t, a.Tree.Weight, b.Tree.Weight, alg.String())
	}
}

func TestCriticalPath_InvalidationModesAgree(t *testing.T) {
	algs := []heuristics.Algorithm{
		heuristics.CriticalPath,
		heuristics.CriticalPath2,
		heuristics.CriticalPathIsotopes,
		heuristics.ExtendedCriticalPath,
	}
	for seed := int64(1); seed <= 30; seed++ {
		g := randomGraph(t, seed, 6, 3, 0.4)
		for _, alg := range algs {
			all := solve(t, g, alg, heuristics.WithInvalidation(heuristics.InvalidateAll))
			anc := solve(t, g, alg, heuristics.WithInvalidation(heuristics.InvalidateAncestors))
			assert.Equal(t, all.Losses, anc.Losses, "seed %d %s", seed, alg)
		}
	}
}

func TestSolve_ConcurrentRunsShareGraph(t *testing.T) {
	g := randomGraph(t, 11, 8, 3, 0.3)
	want := solve(t, g, heuristics.CriticalPath2)

	var wg sync.WaitGroup
	got := make([]*heuristics.Result, 8)
	errs := make([]error, 8)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i], errs[i] = heuristics.Solve(context.Background(), g)
		}(i)
	}
	wg.Wait()
	for i := range got {
		require.NoError(t, errs[i])
		assert.Equal(t, want.Losses, got[i].Losses)
	}
}

func TestSolve_Pruning(t *testing.T) {
	g, ids := build(t,
		[]frag{{"A", 0, false}, {"B", 1, false}, {"C", 2, false}},
		[]loss{{"root", "A", 1}, {"A", "B", -5}, {"B", "C", 2}},
	)

	res := solve(t, g, heuristics.Greedy)
	assert.InDelta(t, 1.0, res.Tree.Weight, eps)
	_, ok := res.Tree.NodeOf(ids["B"])
	assert.False(t, ok)
	assert.Len(t, res.Losses, 3, "pruning does not touch the selection")

	res = solve(t, g, heuristics.Greedy, heuristics.WithPruning(heuristics.PruneNever))
	assert.InDelta(t, -2.0, res.Tree.Weight, eps)
	_, ok = res.Tree.NodeOf(ids["C"])
	assert.True(t, ok)

	res = solve(t, g, heuristics.TopDown)
	assert.InDelta(t, 1.0, res.Tree.Weight, eps)

	res = solve(t, g, heuristics.CriticalPath, heuristics.WithPruning(heuristics.PruneAlways))
	assert.InDelta(t, 1.0, res.Tree.Weight, eps)
}

func TestSolve_NaNNeverSelected(t *testing.T) {
	nan := math.NaN()
	g, ids := build(t,
		[]frag{{"A", 0, false}, {"B", 0, false}, {"C", 1, false}, {"D", 2, false}},
		[]loss{{"root", "A", nan}, {"root", "B", 1}, {"B", "C", nan}, {"B", "D", 2}},
	)
	for _, alg := range heuristics.Algorithms() {
		res := solve(t, g, alg)
		assert.InDelta(t, 3.0, res.Tree.Weight, eps, alg.String())
		assert.Equal(t, ids["B"], parentOf(t, res, ids["D"]), alg.String())
		for _, id := range res.Losses {
			assert.False(t, math.IsNaN(g.Weight(id)), alg.String())
		}
	}
}

func TestSolve_OnlyNaNRootLosses(t *testing.T) {
	g, _ := build(t,
		[]frag{{"A", 0, false}},
		[]loss{{"root", "A", math.NaN()}},
	)
	for _, alg := range heuristics.Algorithms() {
		_, err := heuristics.Solve(context.Background(), g, heuristics.WithAlgorithm(alg))
		assert.ErrorIs(t, err, heuristics.ErrNoSolution, alg.String())
	}

	rec := &recorder{}
	_, err := heuristics.SolveFallback(context.Background(), g,
		[]heuristics.Algorithm{heuristics.CriticalPath2, heuristics.Greedy},
		heuristics.WithHooks(rec))
	assert.ErrorIs(t, err, heuristics.ErrNoSolution)
	assert.Equal(t, []string{"cp2", "greedy"}, rec.started())
}

func TestSolve_ConfigurationErrors(t *testing.T) {
	b := core.NewGraphBuilder()
	_, err := b.AddRoot()
	require.NoError(t, err)
	bare, err := b.Build()
	require.NoError(t, err)

	for _, alg := range heuristics.Algorithms() {
		_, err := heuristics.Solve(context.Background(), nil, heuristics.WithAlgorithm(alg))
		assert.ErrorIs(t, err, heuristics.ErrNilGraph, alg.String())

		_, err = heuristics.Solve(context.Background(), bare, heuristics.WithAlgorithm(alg))
		assert.ErrorIs(t, err, heuristics.ErrRootWithoutLosses, alg.String())
	}
}

func TestSolve_CanceledContext(t *testing.T) {
	g := randomGraph(t, 5, 6, 3, 0.5)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, alg := range heuristics.Algorithms() {
		res, err := heuristics.Solve(ctx, g, heuristics.WithAlgorithm(alg))
		assert.Nil(t, res, alg.String())
		assert.ErrorIs(t, err, heuristics.ErrCanceled, alg.String())
		assert.ErrorIs(t, err, context.Canceled, alg.String())
	}

	ctx, cancel = context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	_, err := heuristics.Solve(ctx, g)
	assert.ErrorIs(t, err, heuristics.ErrCanceled)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSolve_CancelCheck(t *testing.T) {
	g := randomGraph(t, 5, 6, 3, 0.5)

	for _, alg := range heuristics.Algorithms() {
		_, err := heuristics.Solve(context.Background(), g,
			heuristics.WithAlgorithm(alg),
			heuristics.WithCancelCheck(func() bool { return true }))
		assert.ErrorIs(t, err, heuristics.ErrCanceled, alg.String())
	}

	// Stops at the first poll that reports cancellation.
	calls := 0
	_, err := heuristics.Solve(context.Background(), g,
		heuristics.WithAlgorithm(heuristics.CriticalPath),
		heuristics.WithCheckInterval(1),
		heuristics.WithCancelCheck(func() bool {
			calls++
			return calls == 3
		}))
	assert.ErrorIs(t, err, heuristics.ErrCanceled)
	assert.Equal(t, 3, calls)

	// A fallback chain does not move past a cancellation.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rec := &recorder{}
	_, err = heuristics.SolveFallback(ctx, g, heuristics.Algorithms(), heuristics.WithHooks(rec))
	assert.ErrorIs(t, err, heuristics.ErrCanceled)
	assert.Len(t, rec.started(), 1)
}

func TestSolve_IsotopeChains(t *testing.T) {
	g, ids := build(t,
		[]frag{{"M", 0, false}, {"I1", 1, true}, {"I2", 2, true}, {"F", 3, false}},
		[]loss{{"root", "M", 1}, {"M", "I1", 0.5}, {"I1", "I2", 0.25}, {"M", "F", 2}},
	)

	res := solve(t, g, heuristics.CriticalPathIsotopes)
	assert.InDelta(t, 3.75, res.Tree.Weight, eps)
	assert.Equal(t, ids["M"], parentOf(t, res, ids["I2"]))
	assert.Equal(t, ids["I2"], parentOf(t, res, ids["I1"]))

	res = solve(t, g, heuristics.CriticalPath2)
	assert.Equal(t, ids["I1"], parentOf(t, res, ids["I2"]))

	res = solve(t, g, heuristics.Greedy, heuristics.WithIsotopeReattachment())
	assert.Equal(t, ids["M"], parentOf(t, res, ids["I2"]))
}

func TestSolveFallback(t *testing.T) {
	g, _ := conflictGraph(t)

	res, err := heuristics.SolveFallback(context.Background(), g,
		[]heuristics.Algorithm{heuristics.Greedy, heuristics.CriticalPath})
	require.NoError(t, err)
	assert.Equal(t, heuristics.Greedy, res.Algorithm)

	_, err = heuristics.SolveFallback(context.Background(), g, nil)
	assert.ErrorIs(t, err, heuristics.ErrUnsupportedAlgorithm)
}

func TestSolve_HooksAndLogger(t *testing.T) {
	g, _ := conflictGraph(t)
	rec := &recorder{}
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	res, err := heuristics.Solve(context.Background(), g,
		heuristics.WithAlgorithm(heuristics.PrimStar),
		heuristics.WithHooks(rec),
		heuristics.WithLogger(logger))
	require.NoError(t, err)

	assert.Equal(t, []string{"prim"}, rec.started())
	require.Len(t, rec.done, 1)
	assert.NoError(t, rec.done[0].err)
	assert.Equal(t, res.Tree.Weight, rec.done[0].weight)
	assert.Equal(t, 4, rec.fragments)
	assert.Equal(t, 3, rec.losses)
	assert.Contains(t, buf.String(), "solved")
	assert.Contains(t, buf.String(), "algorithm=prim")
}

func TestSolve_GlobalHooks(t *testing.T) {
	rec := &recorder{}
	observability.SetSolveHooks(rec)
	t.Cleanup(observability.ResetHooks)

	g, _ := conflictGraph(t)
	_, err := heuristics.Solve(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, []string{"cp2"}, rec.started())
}

func TestNew(t *testing.T) {
	for _, alg := range heuristics.Algorithms() {
		s, err := heuristics.New(alg)
		require.NoError(t, err)
		assert.Equal(t, alg.String(), s.Name())
	}
	_, err := heuristics.New(heuristics.Algorithm(99))
	assert.ErrorIs(t, err, heuristics.ErrUnsupportedAlgorithm)

	g, _ := conflictGraph(t)
	s, err := heuristics.New(heuristics.Greedy)
	require.NoError(t, err)
	sel, err := s.Select(context.Background(), g)
	require.NoError(t, err)
	assert.Len(t, sel, 2)
}

func TestParseAlgorithm(t *testing.T) {
	for _, alg := range heuristics.Algorithms() {
		got, err := heuristics.ParseAlgorithm(alg.String())
		require.NoError(t, err)
		assert.Equal(t, alg, got)
	}
	got, err := heuristics.ParseAlgorithm("  CP2 ")
	require.NoError(t, err)
	assert.Equal(t, heuristics.CriticalPath2, got)

	_, err = heuristics.ParseAlgorithm("simplex")
	assert.ErrorIs(t, err, heuristics.ErrUnsupportedAlgorithm)
	assert.Equal(t, "Algorithm(42)", heuristics.Algorithm(42).String())
}

func TestOptions(t *testing.T) {
	o := heuristics.DefaultOptions()
	assert.Equal(t, heuristics.CriticalPath2, o.Algorithm)
	assert.Equal(t, heuristics.DefaultCheckInterval, o.CheckInterval)

	assert.Panics(t, func() { heuristics.WithAlgorithm(-1) })
	assert.Panics(t, func() { heuristics.WithPruning(7) })
	assert.Panics(t, func() { heuristics.WithInvalidation(2) })
	assert.Panics(t, func() { heuristics.WithRelocation(-1) })
	assert.Panics(t, func() { heuristics.WithCheckInterval(0) })
}

// recorder is a SolveHooks test double.
type recorder struct {
	mu        sync.Mutex
	names     []string
	fragments int
	losses    int
	done      []completion
}

type completion struct {
	algorithm string
	weight    float64
	err       error
}

func (r *recorder) OnSolveStart(_ context.Context, algorithm string, fragments, losses int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names = append(r.names, algorithm)
	r.fragments, r.losses = fragments, losses
}

func (r *recorder) OnSolveComplete(_ context.Context, algorithm string, weight float64, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.done = append(r.done, completion{algorithm, weight, err})
}

func (r *recorder) started() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.names...)
}
