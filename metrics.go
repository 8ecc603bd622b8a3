package main

import (
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Metrics are recorded once per top-level call, never inside the recursion.
var (
	solverStatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crafting_solver_states_total",
		Help: "Distinct states solved and memoized",
	})

	solverCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crafting_solver_cache_hits_total",
		Help: "State lookups answered from the memo table",
	})

	solveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "crafting_solver_solve_duration_seconds",
		Help:    "Wall time of top-level solves that expanded at least one state",
		Buckets: []float64{0.001, 0.01, 0.1, 1, 10, 60},
	})

	frontierSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "crafting_solver_frontier_size",
		Help:    "Entries in the frontier of each top-level solved state",
		Buckets: []float64{1, 10, 100, 1000, 10000},
	})

	planResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crafting_solver_plans_total",
		Help: "Plan reconstructions by outcome",
	}, []string{"result"})
)

var (
	solverTracer trace.Tracer
	tracerOnce   sync.Once
)

// tracer returns the package tracer, resolved lazily so a provider installed
// by the caller before first use is honored.
func tracer() trace.Tracer {
	tracerOnce.Do(func() {
		solverTracer = otel.Tracer("crafting-solver")
	})
	return solverTracer
}

// gatherMetrics returns the current value of every solver counter and the
// sample count of every histogram, keyed by metric name.
func gatherMetrics() (map[string]float64, error) {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64)
	for _, mf := range families {
		name := mf.GetName()
		if !strings.HasPrefix(name, "crafting_solver_") {
			continue
		}
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				out[name] += m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				out[name] += float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return out, nil
}
