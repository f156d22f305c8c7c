package model

import "fmt"

// Pump describes a single pump available to the operator.
type Pump struct {
	// Name identifies the pump in reports and published schedules.
	Name string `json:"name"`
	// PowerKW is the electrical power drawn while the pump runs.
	PowerKW float64 `json:"power_kw"`
	// Flow is the water volume the pump delivers per time slot.
	Flow float64 `json:"flow"`
}

// Scenario holds the immutable inputs of a scheduling problem. It is
// passed explicitly to the model builder and the schedule decoder and
// is never mutated by either.
type Scenario struct {
	Pumps []Pump `json:"pumps"`
	// Costs[t] is the unit energy price during slot t.
	Costs []float64 `json:"costs"`
	// Demand[t] is the water demand during slot t.
	Demand []float64 `json:"demand"`
	// VInit is the reservoir volume at the start of the horizon.
	VInit float64 `json:"v_init"`
	// VMin and VMax bound the reservoir volume at every slot.
	VMin float64 `json:"v_min"`
	VMax float64 `json:"v_max"`
	// ObjectiveGamma scales the operating-cost objective so it is
	// comparable in magnitude to the unit-weighted penalties. Tune it
	// when demand, cost or power magnitudes change substantially.
	ObjectiveGamma float64 `json:"objective_gamma"`
	// ReservoirGamma is the Lagrange multiplier of the reservoir
	// constraint, correcting for its larger natural scale.
	ReservoirGamma float64 `json:"reservoir_gamma"`
}

// NumPumps returns the number of pumps in the scenario.
func (s Scenario) NumPumps() int { return len(s.Pumps) }

// NumSlots returns the number of time slots in the horizon.
func (s Scenario) NumSlots() int { return len(s.Costs) }

// SetDefaults applies the tuning parameters used by the reference
// scenario when none are configured.
func (s *Scenario) SetDefaults() {
	if s.ObjectiveGamma == 0 {
		s.ObjectiveGamma = 10000
	}
	if s.ReservoirGamma == 0 {
		s.ReservoirGamma = 0.00052
	}
}

// Validate checks that the scenario is well formed. The model builder
// itself accepts degenerate inputs, so callers must validate before
// building.
func (s Scenario) Validate() error {
	if len(s.Pumps) == 0 {
		return fmt.Errorf("at least one pump is required")
	}
	if len(s.Costs) == 0 {
		return fmt.Errorf("at least one time slot is required")
	}
	if len(s.Demand) != len(s.Costs) {
		return fmt.Errorf("demand has %d slots, costs has %d", len(s.Demand), len(s.Costs))
	}
	if s.VMin > s.VMax {
		return fmt.Errorf("v_min %.2f exceeds v_max %.2f", s.VMin, s.VMax)
	}
	if s.ObjectiveGamma <= 0 {
		return fmt.Errorf("objective_gamma must be positive")
	}
	if s.ReservoirGamma <= 0 {
		return fmt.Errorf("reservoir_gamma must be positive")
	}
	for i, p := range s.Pumps {
		if p.Flow < 0 {
			return fmt.Errorf("pump %d has negative flow", i)
		}
		if p.PowerKW < 0 {
			return fmt.Errorf("pump %d has negative power", i)
		}
	}
	return nil
}

// DefaultScenario returns the seven-pump, 24-hour reference scenario.
func DefaultScenario() Scenario {
	power := []float64{15, 37, 33, 33, 22, 33, 22}
	flow := []float64{75, 133, 157, 176, 59, 69, 120}
	pumps := make([]Pump, len(power))
	for i := range pumps {
		pumps[i] = Pump{Name: fmt.Sprintf("P%d", i+1), PowerKW: power[i], Flow: flow[i]}
	}
	costs := make([]float64, 0, 24)
	for _, block := range []struct {
		price float64
		hours int
	}{{169, 7}, {283, 6}, {169, 3}, {336, 5}, {169, 3}} {
		for i := 0; i < block.hours; i++ {
			costs = append(costs, block.price)
		}
	}
	return Scenario{
		Pumps: pumps,
		Costs: costs,
		Demand: []float64{
			44.62, 31.27, 26.22, 27.51, 31.50, 46.18, 69.47, 100.36,
			131.85, 148.51, 149.89, 142.21, 132.09, 129.29, 124.06,
			114.68, 109.33, 115.76, 126.95, 131.48, 138.86, 131.91,
			111.53, 70.43,
		},
		VInit:          550,
		VMin:           523.5,
		VMax:           1500,
		ObjectiveGamma: 10000,
		ReservoirGamma: 0.00052,
	}
}
