package metrics

import coremetrics "github.com/kilianp07/pumpflow/core/metrics"

// MultiSink fans solve results out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordSolveResult forwards the record to all sinks, returning the
// first error encountered.
func (m *MultiSink) RecordSolveResult(res coremetrics.SolveResult) error {
	for _, s := range m.Sinks {
		if err := s.RecordSolveResult(res); err != nil {
			return err
		}
	}
	return nil
}

// RecordReservoirTrace forwards the trace to sinks that persist
// time series.
func (m *MultiSink) RecordReservoirTrace(points []coremetrics.ReservoirPoint) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.ReservoirRecorder); ok {
			if err := rec.RecordReservoirTrace(points); err != nil {
				return err
			}
		}
	}
	return nil
}
