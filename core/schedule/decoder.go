package schedule

import (
	"fmt"

	"github.com/kilianp07/pumpflow/core/model"
	"github.com/kilianp07/pumpflow/core/qubo"
)

// Schedule is the physical reading of a solver sample.
type Schedule struct {
	// Active[p][t] reports whether pump p runs during slot t.
	Active [][]bool `json:"active"`
	// TotalFlow is the water volume delivered over the horizon.
	TotalFlow float64 `json:"total_flow"`
	// TotalCost is the energy cost of the schedule.
	TotalCost float64 `json:"total_cost"`
	// Reservoir[t] is the level at the end of slot t-1, with
	// Reservoir[0] the initial level. Length NumSlots+1.
	Reservoir []float64 `json:"reservoir"`
	// PumpFlow[t] is the volume pumped into the reservoir during
	// slot t.
	PumpFlow []float64 `json:"pump_flow"`
}

// Violation reports a slot whose reservoir level leaves the allowed
// band. Violations are reported, never raised: the reservoir bound is
// a soft penalty and the solver may legitimately return an
// infeasible-but-cheap sample.
type Violation struct {
	Slot  int     `json:"slot"`
	Level float64 `json:"level"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// DecodeSchedule reconstructs the operating schedule implied by a
// solver sample. It fails when the sample lacks a variable the handle
// expects: that means the sample was produced for a different model
// and must never be silently tolerated.
func DecodeSchedule(sc model.Scenario, vars *Variables, sample qubo.Sample) (*Schedule, error) {
	pumps := vars.NumPumps()
	slots := vars.NumSlots()

	s := &Schedule{
		Active:    make([][]bool, pumps),
		Reservoir: make([]float64, 0, slots+1),
		PumpFlow:  make([]float64, 0, slots),
	}
	for p := 0; p < pumps; p++ {
		s.Active[p] = make([]bool, slots)
		for t := 0; t < slots; t++ {
			x, ok := sample[vars.Name(p, t)]
			if !ok {
				return nil, fmt.Errorf("sample missing variable %s: stale variable handle", vars.Name(p, t))
			}
			if x == 0 {
				continue
			}
			s.Active[p][t] = true
			s.TotalFlow += sc.Pumps[p].Flow
			s.TotalCost += sc.Costs[t] * sc.Pumps[p].PowerKW / 1000
		}
	}

	s.Reservoir = append(s.Reservoir, sc.VInit)
	for t := 0; t < slots; t++ {
		level := s.Reservoir[t]
		for p := 0; p < pumps; p++ {
			if s.Active[p][t] {
				level += sc.Pumps[p].Flow
			}
		}
		s.Reservoir = append(s.Reservoir, level-sc.Demand[t])
		s.PumpFlow = append(s.PumpFlow, level-s.Reservoir[t])
	}
	return s, nil
}

// Violations audits the reservoir trace against the scenario bounds.
func (s *Schedule) Violations(sc model.Scenario) []Violation {
	var out []Violation
	for t := 1; t < len(s.Reservoir); t++ {
		level := s.Reservoir[t]
		if level < sc.VMin || level > sc.VMax {
			out = append(out, Violation{Slot: t - 1, Level: level, Min: sc.VMin, Max: sc.VMax})
		}
	}
	return out
}

// ActivePumps returns the indices of the pumps running during slot t.
func (s *Schedule) ActivePumps(t int) []int {
	var out []int
	for p := range s.Active {
		if s.Active[p][t] {
			out = append(out, p)
		}
	}
	return out
}
