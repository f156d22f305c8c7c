package schedule

import (
	"fmt"
	"math"

	"github.com/kilianp07/pumpflow/core/model"
	"github.com/kilianp07/pumpflow/core/qubo"
)

// volumeScale clears fractional flow and volume coefficients so the
// reservoir constraint stays integral for the penalty compiler.
const volumeScale = 100

// BuildModel encodes the scenario as a binary quadratic model together
// with the variable handle decoding requires.
//
// The energy is the sum of the scaled operating-cost objective and
// three penalty terms: every pump runs at least once over the horizon,
// at most NumPumps-1 pumps run in any slot, and the reservoir level
// stays within [VMin, VMax] at the end of every slot. The first two
// penalties carry unit weight; the reservoir penalty is scaled by
// ReservoirGamma.
//
// Degenerate scenarios produce degenerate models rather than errors;
// validate with Scenario.Validate before building.
func BuildModel(sc model.Scenario) (*qubo.Model, *Variables) {
	pumps := sc.NumPumps()
	slots := sc.NumSlots()
	vars := newVariables(pumps, slots)
	m := qubo.NewModel()

	// Objective: ObjectiveGamma lifts the cost coefficients to the
	// magnitude of the unit-weighted penalty gradients.
	for p := 0; p < pumps; p++ {
		for t := 0; t < slots; t++ {
			m.AddVariable(vars.Name(p, t), sc.ObjectiveGamma*sc.Pumps[p].PowerKW*sc.Costs[t]/1000)
		}
	}

	// Constraint 1: every pump runs at least once over the horizon.
	for p := 0; p < pumps; p++ {
		terms := make([]qubo.LinearTerm, slots)
		for t := 0; t < slots; t++ {
			terms[t] = qubo.LinearTerm{Var: vars.Name(p, t), Coeff: 1}
		}
		m.AddLinearInequalityConstraint(terms, 0, 1, slots, 1, fmt.Sprintf("c1_pump_%d", p))
	}

	// Constraint 2: at most pumps-1 pumps run in the same slot.
	for t := 0; t < slots; t++ {
		terms := make([]qubo.LinearTerm, pumps)
		for p := 0; p < pumps; p++ {
			terms[p] = qubo.LinearTerm{Var: vars.Name(p, t), Coeff: 1}
		}
		m.AddLinearInequalityConstraint(terms, -(pumps - 1), qubo.NoLowerBound, 0, 1, fmt.Sprintf("c2_slot_%d", t))
	}

	// Constraint 3: reservoir level within bounds after every slot.
	// The expression is cumulative, so term construction is O(N²·P);
	// fine for the horizon sizes this model targets.
	cumDemand := 0.0
	for t := 0; t < slots; t++ {
		cumDemand += sc.Demand[t]
		terms := make([]qubo.LinearTerm, 0, pumps*(t+1))
		for p := 0; p < pumps; p++ {
			coeff := int(sc.Pumps[p].Flow * volumeScale)
			for k := 0; k <= t; k++ {
				terms = append(terms, qubo.LinearTerm{Var: vars.Name(p, k), Coeff: coeff})
			}
		}
		constant := int((sc.VInit - cumDemand) * volumeScale)
		lower := int(math.Round(sc.VMin * volumeScale))
		upper := int(math.Round(sc.VMax * volumeScale))
		m.AddLinearInequalityConstraint(terms, constant, lower, upper, sc.ReservoirGamma, fmt.Sprintf("c3_slot_%d", t))
	}

	return m, vars
}
