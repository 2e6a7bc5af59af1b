package batch

import (
	"fmt"
	"time"
)

// Summary tallies a finished batch.
type Summary struct {
	Jobs   int
	Solved int
	Failed int

	// Weight sums the tree weights of the solved jobs.
	Weight float64

	// SolveTime sums the per-job elapsed times. With several workers it
	// exceeds the wall time of the batch.
	SolveTime time.Duration
}

// Summarize tallies results as returned by Run.
func Summarize(results []Result) Summary {
	s := Summary{Jobs: len(results)}
	for _, r := range results {
		if r.Err != nil || r.Result == nil {
			s.Failed++
			continue
		}
		s.Solved++
		s.Weight += r.Result.Tree.Weight
		s.SolveTime += r.Result.Elapsed
	}

	return s
}

// Err is nil when every job was solved, and otherwise names how many failed.
func (s Summary) Err() error {
	if s.Failed == 0 {
		return nil
	}

	return fmt.Errorf("batch: %d of %d jobs failed", s.Failed, s.Jobs)
}
