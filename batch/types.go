package batch

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/sirius-ms/ftheur/core"
	"github.com/sirius-ms/ftheur/heuristics"
)

// Job is one graph to solve.
type Job struct {
	// ID names the job in results and logs. Run assigns a random UUID
	// when empty.
	ID string

	// Graph is shared read-only with the solver.
	Graph *core.Graph

	// Options are applied after the batch defaults.
	Options []heuristics.Option
}

// Result is the outcome of one job. Exactly one of Result and Err is set.
type Result struct {
	ID     string
	Result *heuristics.Result
	Err    error
}

// Options configures Run.
type Options struct {
	// Workers bounds the jobs solved at once. Default: 4.
	Workers int

	// FailFast cancels the remaining jobs after the first failure.
	FailFast bool

	// Logger receives per-job records; nil disables logging.
	Logger *log.Logger

	// Defaults are solver options applied to every job.
	Defaults []heuristics.Option
}

// DefaultWorkers is the worker count used when WithWorkers is not given.
const DefaultWorkers = 4

// Option configures Run.
type Option func(*Options)

// DefaultOptions returns Workers = DefaultWorkers, no fail-fast, no logger.
func DefaultOptions() Options {
	return Options{Workers: DefaultWorkers}
}

// WithWorkers bounds concurrency. Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("batch: WithWorkers(%d): must be >= 1", n))
	}

	return func(o *Options) { o.Workers = n }
}

// WithFailFast stops the batch at the first failed job.
func WithFailFast() Option {
	return func(o *Options) { o.FailFast = true }
}

// WithLogger sets the logger for per-job records. It is also handed to the
// solver unless a job overrides it.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithDefaults sets solver options shared by all jobs.
func WithDefaults(opts ...heuristics.Option) Option {
	return func(o *Options) { o.Defaults = append(o.Defaults, opts...) }
}
