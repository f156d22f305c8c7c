package metrics

import "time"

// SolveResult summarises one build/solve/decode cycle for
// observability purposes.
type SolveResult struct {
	RunID      string
	Energy     float64
	Variables  int
	Duration   time.Duration
	Feasible   bool
	Violations int
	TotalFlow  float64
	TotalCost  float64
	Time       time.Time
}

// MetricsSink records solve results.
type MetricsSink interface {
	RecordSolveResult(res SolveResult) error
}

// ReservoirPoint is one entry of a decoded reservoir trace.
type ReservoirPoint struct {
	RunID string
	Slot  int
	Level float64
	Time  time.Time
}

// ReservoirRecorder persists reservoir traces. Sinks without a
// time-series backend may skip implementing it.
type ReservoirRecorder interface {
	RecordReservoirTrace(points []ReservoirPoint) error
}

// NopSink discards all records.
type NopSink struct{}

// RecordSolveResult implements MetricsSink.
func (NopSink) RecordSolveResult(SolveResult) error { return nil }

// Config defines settings for metrics sinks.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusPort    string `json:"prometheus_port"`
	InfluxEnabled     bool   `json:"influx_enabled"`
	InfluxURL         string `json:"influx_url"`
	InfluxToken       string `json:"influx_token"`
	InfluxOrg         string `json:"influx_org"`
	InfluxBucket      string `json:"influx_bucket"`
}
