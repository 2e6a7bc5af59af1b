package observability_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirius-ms/ftheur/observability"
)

type recorder struct {
	starts    []string
	completes []string
}

func (r *recorder) OnSolveStart(_ context.Context, alg string, _, _ int) {
	r.starts = append(r.starts, alg)
}

func (r *recorder) OnSolveComplete(_ context.Context, alg string, _ float64, _ time.Duration, _ error) {
	r.completes = append(r.completes, alg)
}

func TestRegistry(t *testing.T) {
	t.Cleanup(observability.ResetHooks)

	assert.IsType(t, observability.NoopSolveHooks{}, observability.Solve())

	r := &recorder{}
	observability.SetSolveHooks(r)
	observability.SetSolveHooks(nil)
	observability.Solve().OnSolveStart(context.Background(), "greedy", 3, 2)
	observability.Solve().OnSolveComplete(context.Background(), "greedy", 1, time.Millisecond, nil)
	assert.Equal(t, []string{"greedy"}, r.starts)
	assert.Equal(t, []string{"greedy"}, r.completes)

	observability.ResetHooks()
	assert.IsType(t, observability.NoopSolveHooks{}, observability.Solve())
}

func TestPrometheusHooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	h, err := observability.NewPrometheusHooks(reg)
	require.NoError(t, err)

	ctx := context.Background()
	h.OnSolveStart(ctx, "greedy", 10, 20)
	h.OnSolveComplete(ctx, "greedy", 4.5, 2*time.Millisecond, nil)
	h.OnSolveStart(ctx, "greedy", 10, 20)
	h.OnSolveComplete(ctx, "greedy", 0, time.Millisecond, fmt.Errorf("stop: %w", context.Canceled))
	h.OnSolveStart(ctx, "cp2", 10, 20)
	h.OnSolveComplete(ctx, "cp2", 0, time.Millisecond, errors.New("boom"))

	series, err := testutil.GatherAndCount(reg, "ftheur_solve_total")
	require.NoError(t, err)
	assert.Equal(t, 3, series)

	series, err = testutil.GatherAndCount(reg, "ftheur_tree_weight")
	require.NoError(t, err)
	assert.Equal(t, 1, series, "only successful runs observe a weight")

	assert.Equal(t, 0.0, gaugeValue(t, reg, "ftheur_solves_in_flight"))
}

func TestPrometheusHooks_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := observability.NewPrometheusHooks(reg)
	require.NoError(t, err)
	b, err := observability.NewPrometheusHooks(reg)
	require.NoError(t, err)

	ctx := context.Background()
	a.OnSolveStart(ctx, "greedy", 1, 1)
	a.OnSolveComplete(ctx, "greedy", 1, time.Millisecond, nil)
	b.OnSolveStart(ctx, "greedy", 1, 1)
	b.OnSolveComplete(ctx, "greedy", 1, time.Millisecond, nil)

	n, err := testutil.GatherAndCount(reg, "ftheur_tree_weight")
	require.NoError(t, err)
	assert.Equal(t, 1, n, "both hooks share one series")
}

// gaugeValue reads a gauge straight from the registry.
func gaugeValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			return mf.GetMetric()[0].GetGauge().GetValue()
		}
	}
	t.Fatalf("%s not registered", name)

	return 0
}
