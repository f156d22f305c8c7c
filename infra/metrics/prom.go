package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/pumpflow/core/metrics"
)

// PromSink records solve results in Prometheus metrics.
type PromSink struct {
	runs       *prometheus.CounterVec
	duration   prometheus.Histogram
	variables  prometheus.Gauge
	violations prometheus.Gauge
}

// NewPromSink registers solve metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "solve_runs_total",
		Help: "Total number of solve runs",
	}, []string{"feasible"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "solve_duration_seconds",
		Help:    "Wall time spent in the solver",
		Buckets: prometheus.DefBuckets,
	})
	variables := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "model_variables",
		Help: "Variable count of the last built model",
	})
	violations := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "reservoir_violations",
		Help: "Reservoir bound violations in the last decoded schedule",
	})

	if err := reg.Register(runs); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			runs = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(variables); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			variables = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(violations); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			violations = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{runs: runs, duration: duration, variables: variables, violations: violations}, nil
}

// RecordSolveResult updates all collectors from the solve summary.
func (s *PromSink) RecordSolveResult(res coremetrics.SolveResult) error {
	s.runs.WithLabelValues(strconv.FormatBool(res.Feasible)).Inc()
	s.duration.Observe(res.Duration.Seconds())
	s.variables.Set(float64(res.Variables))
	s.violations.Set(float64(res.Violations))
	return nil
}
