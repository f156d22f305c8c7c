package app

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/kilianp07/pumpflow/config"
	"github.com/kilianp07/pumpflow/core/model"
	"github.com/kilianp07/pumpflow/core/schedule"
	"github.com/kilianp07/pumpflow/infra/solver"
)

func smallConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Scenario: model.Scenario{
			Pumps: []model.Pump{
				{Name: "P1", PowerKW: 1, Flow: 2},
				{Name: "P2", PowerKW: 2, Flow: 4},
			},
			Costs:          []float64{1, 2},
			Demand:         []float64{2, 2},
			VInit:          1,
			VMin:           0.5,
			VMax:           1.5,
			ObjectiveGamma: 10000,
			ReservoirGamma: 0.01,
		},
		Solver: solver.Config{Backend: "exhaustive"},
	}
}

func TestServiceRun(t *testing.T) {
	cfg := smallConfig(t)
	jsonPath := filepath.Join(t.TempDir(), "schedule.json")
	cfg.Export.JSONPath = jsonPath

	svc, err := New(cfg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	defer func() {
		if err := svc.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	}()

	if err := svc.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var sched schedule.Schedule
	if err := json.Unmarshal(data, &sched); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	// the exact minimizer runs the small pump in both slots
	if !sched.Active[0][0] || !sched.Active[0][1] {
		t.Fatalf("unexpected schedule: %+v", sched.Active)
	}
	if sched.TotalFlow != 4 {
		t.Fatalf("expected total flow 4, got %v", sched.TotalFlow)
	}
	if len(sched.Reservoir) != 3 {
		t.Fatalf("expected trace of length 3, got %d", len(sched.Reservoir))
	}
}

func TestServiceRejectsBadSolver(t *testing.T) {
	cfg := smallConfig(t)
	cfg.Solver.Backend = "quantum"
	if _, err := New(cfg); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
