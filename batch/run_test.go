package batch_test

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirius-ms/ftheur/batch"
	"github.com/sirius-ms/ftheur/builder"
	"github.com/sirius-ms/ftheur/core"
	"github.com/sirius-ms/ftheur/heuristics"
)

func graphs(t *testing.T, n int) []*core.Graph {
	t.Helper()
	out := make([]*core.Graph, n)
	for i := range out {
		g, err := builder.BuildGraph([]builder.BuilderOption{
			builder.WithSeed(int64(i + 1)),
			builder.WithUniformWeight(-1, 3),
		}, builder.RandomDAG(6, 2, 0.4))
		require.NoError(t, err)
		out[i] = g
	}

	return out
}

func TestRun_MatchesSequentialSolve(t *testing.T) {
	gs := graphs(t, 12)
	jobs := make([]batch.Job, len(gs))
	for i, g := range gs {
		jobs[i] = batch.Job{Graph: g}
	}
	jobs[3].ID = "named"
	jobs[5].Options = []heuristics.Option{heuristics.WithAlgorithm(heuristics.Greedy)}

	results, err := batch.Run(context.Background(), jobs, batch.WithWorkers(3))
	require.NoError(t, err)
	require.Len(t, results, len(jobs))

	for i, r := range results {
		require.NoError(t, r.Err)
		want, err := heuristics.Solve(context.Background(), gs[i], jobs[i].Options...)
		require.NoError(t, err)
		assert.Equal(t, want.Losses, r.Result.Losses, "job %d", i)
		assert.Equal(t, want.Algorithm, r.Result.Algorithm)

		if i == 3 {
			assert.Equal(t, "named", r.ID)
			continue
		}
		_, err = uuid.Parse(r.ID)
		assert.NoError(t, err)
	}
}

func TestRun_FailureIsolated(t *testing.T) {
	gs := graphs(t, 3)
	jobs := []batch.Job{{Graph: gs[0]}, {ID: "bad"}, {Graph: gs[2]}}

	results, err := batch.Run(context.Background(), jobs)
	require.NoError(t, err)
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, heuristics.ErrNilGraph)
	assert.Nil(t, results[1].Result)
	assert.NoError(t, results[2].Err)
}

func TestRun_FailFast(t *testing.T) {
	gs := graphs(t, 2)
	jobs := []batch.Job{{ID: "bad"}, {Graph: gs[0]}, {Graph: gs[1]}}

	results, err := batch.Run(context.Background(), jobs, batch.WithFailFast(), batch.WithWorkers(1))
	require.ErrorIs(t, err, heuristics.ErrNilGraph)
	assert.Contains(t, err.Error(), "job bad")
	for _, r := range results[1:] {
		assert.ErrorIs(t, r.Err, heuristics.ErrCanceled)
	}
}

func TestSummarize(t *testing.T) {
	gs := graphs(t, 3)
	jobs := []batch.Job{{Graph: gs[0]}, {ID: "bad"}, {Graph: gs[2]}}

	results, err := batch.Run(context.Background(), jobs)
	require.NoError(t, err)

	sum := batch.Summarize(results)
	assert.Equal(t, 3, sum.Jobs)
	assert.Equal(t, 2, sum.Solved)
	assert.Equal(t, 1, sum.Failed)
	assert.InDelta(t, results[0].Result.Tree.Weight+results[2].Result.Tree.Weight, sum.Weight, 1e-9)
	assert.Equal(t, results[0].Result.Elapsed+results[2].Result.Elapsed, sum.SolveTime)
	require.Error(t, sum.Err())
	assert.Contains(t, sum.Err().Error(), "1 of 3 jobs failed")

	assert.NoError(t, batch.Summarize(results[:1]).Err())
	assert.Equal(t, batch.Summary{}, batch.Summarize(nil))
}

func TestRun_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := batch.Run(ctx, []batch.Job{{Graph: graphs(t, 1)[0]}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, results[0].Err, heuristics.ErrCanceled)
}

func TestRun_WorkerLimit(t *testing.T) {
	gs := graphs(t, 10)
	hooks := &inFlight{}
	jobs := make([]batch.Job, len(gs))
	for i, g := range gs {
		jobs[i] = batch.Job{Graph: g}
	}

	_, err := batch.Run(context.Background(), jobs,
		batch.WithWorkers(2),
		batch.WithDefaults(heuristics.WithHooks(hooks)))
	require.NoError(t, err)
	assert.LessOrEqual(t, hooks.peak, 2)
	assert.Equal(t, 10, hooks.total)
}

func TestRun_Logs(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	_, err := batch.Run(context.Background(), []batch.Job{{ID: "j1", Graph: graphs(t, 1)[0]}}, batch.WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "job solved")
	assert.Contains(t, buf.String(), "job=j1")
	assert.Contains(t, buf.String(), "batch done")
	assert.Contains(t, buf.String(), "solved=1")
}

func TestRun_Empty(t *testing.T) {
	results, err := batch.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestWithWorkers_Panics(t *testing.T) {
	assert.Panics(t, func() { batch.WithWorkers(0) })
}

type inFlight struct {
	mu        sync.Mutex
	cur, peak int
	total     int
}

func (h *inFlight) OnSolveStart(context.Context, string, int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cur++
	h.total++
	if h.cur > h.peak {
		h.peak = h.cur
	}
}

func (h *inFlight) OnSolveComplete(context.Context, string, float64, time.Duration, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cur--
}
