// Package batch solves many independent candidate graphs concurrently.
//
// Graphs are immutable, so jobs share nothing but the worker limit.
// Results come back in input order.
package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/sirius-ms/ftheur/heuristics"
)

// Run solves jobs with at most Workers goroutines at a time.
//
// A failed job records its error in its Result and leaves the others
// running. With WithFailFast the first failure cancels the rest, which then
// report heuristics.ErrCanceled, and Run returns that first error.
//
// Errors:
//   - the first job error, wrapped with its ID, under WithFailFast.
//   - ctx.Err() when the caller's context ended before all jobs finished.
func Run(ctx context.Context, jobs []Job, opts ...Option) ([]Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	results := make([]Result, len(jobs))
	for i := range jobs {
		results[i].ID = jobs[i].ID
		if results[i].ID == "" {
			results[i].ID = uuid.NewString()
		}
	}

	defaults := o.Defaults
	if o.Logger != nil {
		defaults = append([]heuristics.Option{heuristics.WithLogger(o.Logger)}, defaults...)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.Workers)
	start := time.Now()

	for i := range jobs {
		i := i
		g.Go(func() error {
			id := results[i].ID
			jopts := append(defaults[:len(defaults):len(defaults)], jobs[i].Options...)
			res, err := heuristics.Solve(gctx, jobs[i].Graph, jopts...)
			results[i].Result, results[i].Err = res, err

			if o.Logger != nil {
				if err != nil {
					o.Logger.Debug("job failed", "job", id, "err", err)
				} else {
					o.Logger.Debug("job solved", "job", id, "algorithm", res.Algorithm,
						"weight", res.Tree.Weight, "elapsed", res.Elapsed)
				}
			}
			if err != nil && o.FailFast {
				return fmt.Errorf("batch: job %s: %w", id, err)
			}

			return nil
		})
	}
	err := g.Wait()

	if o.Logger != nil {
		sum := Summarize(results)
		o.Logger.Info("batch done", "jobs", sum.Jobs, "solved", sum.Solved, "failed", sum.Failed,
			"weight", sum.Weight, "solve_time", sum.SolveTime.Round(time.Microsecond),
			"elapsed", time.Since(start).Round(time.Millisecond))
	}
	if err != nil {
		return results, err
	}

	return results, ctx.Err()
}
