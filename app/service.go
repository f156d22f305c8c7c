// Package app wires the scheduling pipeline: build the model, hand it
// to the configured solver, decode the returned sample and report the
// result.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/pumpflow/config"
	coremetrics "github.com/kilianp07/pumpflow/core/metrics"
	"github.com/kilianp07/pumpflow/core/schedule"
	coresolver "github.com/kilianp07/pumpflow/core/solver"
	"github.com/kilianp07/pumpflow/infra/logger"
	"github.com/kilianp07/pumpflow/infra/metrics"
	"github.com/kilianp07/pumpflow/infra/publish"
	"github.com/kilianp07/pumpflow/infra/solver"
	"github.com/kilianp07/pumpflow/pkg/export"
)

// Service orchestrates a single build/solve/decode cycle.
type Service struct {
	cfg       *config.Config
	log       logger.Logger
	solver    coresolver.Solver
	sink      coremetrics.MetricsSink
	publisher *publish.SchedulePublisher
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	slv, err := solver.New(cfg.Solver)
	if err != nil {
		return nil, fmt.Errorf("solver: %w", err)
	}

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sink := metrics.NewInfluxSinkWithFallback(
			cfg.Metrics.InfluxURL, cfg.Metrics.InfluxToken,
			cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket)
		sinks = append(sinks, sink)
	}
	var sink coremetrics.MetricsSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	var pub *publish.SchedulePublisher
	if cfg.MQTT.Enabled {
		pub, err = publish.NewSchedulePublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
	}

	return &Service{cfg: cfg, log: logg, solver: slv, sink: sink, publisher: pub}, nil
}

// Run executes the pipeline once and reports the decoded schedule. A
// sample violating the reservoir bounds is reported with warnings, not
// rejected: the bounds are soft penalties and an infeasible-but-cheap
// sample is a legitimate solver answer.
func (s *Service) Run(ctx context.Context) error {
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	runID := uuid.NewString()
	sc := s.cfg.Scenario

	s.log.Infof("building model for %d pumps over %d slots", sc.NumPumps(), sc.NumSlots())
	m, vars := schedule.BuildModel(sc)
	s.log.Debugw("model built", map[string]any{
		"run_id":    runID,
		"variables": m.NumVariables(),
	})

	start := time.Now()
	sample, err := s.solver.Solve(ctx, m)
	if err != nil {
		return fmt.Errorf("solve: %w", err)
	}
	elapsed := time.Since(start)

	energy, err := m.Energy(sample)
	if err != nil {
		return fmt.Errorf("energy: %w", err)
	}
	sched, err := schedule.DecodeSchedule(sc, vars, sample)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	violations := sched.Violations(sc)
	for _, v := range violations {
		s.log.Warnf("reservoir out of bounds at slot %d: %.2f not in [%.2f, %.2f]",
			v.Slot, v.Level, v.Min, v.Max)
	}
	s.log.Infof("run %s: energy %.2f, cost %.2f, flow %.2f, %d violation(s) in %s",
		runID, energy, sched.TotalCost, sched.TotalFlow, len(violations), elapsed)

	if err := s.record(runID, energy, elapsed, sched, m.NumVariables(), len(violations)); err != nil {
		s.log.Errorf("metrics: %v", err)
	}
	if err := s.export(sched); err != nil {
		return err
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(runID, sched); err != nil {
			s.log.Errorf("publish: %v", err)
		}
	}
	return nil
}

func (s *Service) record(runID string, energy float64, elapsed time.Duration, sched *schedule.Schedule, numVars, violations int) error {
	now := time.Now()
	res := coremetrics.SolveResult{
		RunID:      runID,
		Energy:     energy,
		Variables:  numVars,
		Duration:   elapsed,
		Feasible:   violations == 0,
		Violations: violations,
		TotalFlow:  sched.TotalFlow,
		TotalCost:  sched.TotalCost,
		Time:       now,
	}
	if err := s.sink.RecordSolveResult(res); err != nil {
		return err
	}
	if rec, ok := s.sink.(coremetrics.ReservoirRecorder); ok {
		points := make([]coremetrics.ReservoirPoint, len(sched.Reservoir))
		for i, level := range sched.Reservoir {
			points[i] = coremetrics.ReservoirPoint{RunID: runID, Slot: i, Level: level, Time: now}
		}
		return rec.RecordReservoirTrace(points)
	}
	return nil
}

func (s *Service) export(sched *schedule.Schedule) error {
	sc := s.cfg.Scenario
	if s.cfg.Export.Table {
		if err := export.WriteTable(os.Stdout, sc, sched); err != nil {
			return fmt.Errorf("write table: %w", err)
		}
	}
	if path := s.cfg.Export.JSONPath; path != "" {
		if err := writeFile(path, func(f *os.File) error { return export.WriteJSON(f, sched) }); err != nil {
			return fmt.Errorf("write json: %w", err)
		}
	}
	if path := s.cfg.Export.CSVPath; path != "" {
		if err := writeFile(path, func(f *os.File) error { return export.WriteCSV(f, sc, sched) }); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return write(f)
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.publisher != nil {
		s.publisher.Close()
	}
	return nil
}
