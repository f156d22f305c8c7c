package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/kilianp07/pumpflow/core/metrics"
)

func TestPromSink_RecordSolveResult(t *testing.T) {
	reg := prometheus.NewRegistry()
	sinkIf, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	sink, ok := sinkIf.(*PromSink)
	if !ok {
		t.Fatalf("expected PromSink")
	}

	res := coremetrics.SolveResult{
		RunID:      "run-1",
		Energy:     123.4,
		Variables:  683,
		Duration:   150 * time.Millisecond,
		Feasible:   true,
		Violations: 0,
		Time:       time.Now(),
	}
	if err := sink.RecordSolveResult(res); err != nil {
		t.Fatalf("record error: %v", err)
	}

	if v := testutil.ToFloat64(sink.runs.WithLabelValues("true")); v != 1 {
		t.Fatalf("expected 1 feasible run, got %v", v)
	}
	if v := testutil.ToFloat64(sink.variables); v != 683 {
		t.Fatalf("expected variables gauge 683, got %v", v)
	}
	if v := testutil.ToFloat64(sink.violations); v != 0 {
		t.Fatalf("expected violations gauge 0, got %v", v)
	}

	res.Feasible = false
	res.Violations = 3
	if err := sink.RecordSolveResult(res); err != nil {
		t.Fatalf("record error: %v", err)
	}
	if v := testutil.ToFloat64(sink.runs.WithLabelValues("false")); v != 1 {
		t.Fatalf("expected 1 infeasible run, got %v", v)
	}
	if v := testutil.ToFloat64(sink.violations); v != 3 {
		t.Fatalf("expected violations gauge 3, got %v", v)
	}
}

func TestPromSink_RegisterTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if _, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg); err != nil {
		t.Fatalf("second registration must reuse collectors: %v", err)
	}
}

func TestMultiSinkFanout(t *testing.T) {
	reg := prometheus.NewRegistry()
	prom, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}
	multi := NewMultiSink(coremetrics.NopSink{}, prom)
	if err := multi.RecordSolveResult(coremetrics.SolveResult{Feasible: true}); err != nil {
		t.Fatalf("fanout: %v", err)
	}
	// NopSink does not record traces; the fanout must still succeed
	if err := multi.RecordReservoirTrace([]coremetrics.ReservoirPoint{{Slot: 0, Level: 550}}); err != nil {
		t.Fatalf("trace fanout: %v", err)
	}
}
