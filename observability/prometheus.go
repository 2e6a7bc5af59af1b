package observability

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Result label values of ftheur_solve_total.
const (
	ResultOK       = "ok"
	ResultCanceled = "canceled"
	ResultError    = "error"
)

// PrometheusHooks records solver runs as Prometheus metrics:
//
//	ftheur_solve_total{algorithm,result}
//	ftheur_solve_duration_seconds{algorithm}
//	ftheur_tree_weight{algorithm}
//	ftheur_solves_in_flight
type PrometheusHooks struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	weight   *prometheus.HistogramVec
	inFlight prometheus.Gauge

	// IsCanceled classifies errors as cancellations. Defaults to
	// context.Canceled / context.DeadlineExceeded.
	IsCanceled func(error) bool
}

// NewPrometheusHooks creates the collectors and registers them on reg
// (prometheus.DefaultRegisterer when nil). Collectors that are already
// registered are reused, so the constructor may be called more than once
// per registry.
func NewPrometheusHooks(reg prometheus.Registerer) (*PrometheusHooks, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	h := &PrometheusHooks{
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ftheur",
			Name:      "solve_total",
			Help:      "Heuristic solver runs by algorithm and result.",
		}, []string{"algorithm", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ftheur",
			Name:      "solve_duration_seconds",
			Help:      "Wall time of heuristic solver runs.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"algorithm"}),
		weight: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ftheur",
			Name:      "tree_weight",
			Help:      "Weight of the trees returned by successful runs.",
			Buckets:   prometheus.LinearBuckets(-10, 5, 12),
		}, []string{"algorithm"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ftheur",
			Name:      "solves_in_flight",
			Help:      "Solver runs currently executing.",
		}),
		IsCanceled: func(err error) bool {
			return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
	}

	var err error
	if h.total, err = register(reg, h.total); err != nil {
		return nil, err
	}
	if h.duration, err = register(reg, h.duration); err != nil {
		return nil, err
	}
	if h.weight, err = register(reg, h.weight); err != nil {
		return nil, err
	}
	if h.inFlight, err = register(reg, h.inFlight); err != nil {
		return nil, err
	}

	return h, nil
}

// register registers c, or returns the existing collector when an equal
// one is already registered.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
		}

		return c, err
	}

	return c, nil
}

func (h *PrometheusHooks) OnSolveStart(context.Context, string, int, int) {
	h.inFlight.Inc()
}

func (h *PrometheusHooks) OnSolveComplete(_ context.Context, algorithm string, weight float64, d time.Duration, err error) {
	h.inFlight.Dec()
	h.duration.WithLabelValues(algorithm).Observe(d.Seconds())
	switch {
	case err == nil:
		h.total.WithLabelValues(algorithm, ResultOK).Inc()
		h.weight.WithLabelValues(algorithm).Observe(weight)
	case h.IsCanceled != nil && h.IsCanceled(err):
		h.total.WithLabelValues(algorithm, ResultCanceled).Inc()
	default:
		h.total.WithLabelValues(algorithm, ResultError).Inc()
	}
}
