package schedule

import "fmt"

// Variables maps (pump, slot) pairs to the decision-variable names of
// the built model. It is returned by BuildModel and required by
// DecodeSchedule, so builder and decoder always agree on the variable
// set without sharing a naming convention.
type Variables struct {
	names [][]string
}

func newVariables(pumps, slots int) *Variables {
	names := make([][]string, pumps)
	for p := range names {
		names[p] = make([]string, slots)
		for t := range names[p] {
			names[p][t] = fmt.Sprintf("P%d_%d", p, t)
		}
	}
	return &Variables{names: names}
}

// Name returns the variable name for pump p during slot t.
func (v *Variables) Name(p, t int) string { return v.names[p][t] }

// NumPumps returns the pump dimension of the handle.
func (v *Variables) NumPumps() int { return len(v.names) }

// NumSlots returns the slot dimension of the handle.
func (v *Variables) NumSlots() int {
	if len(v.names) == 0 {
		return 0
	}
	return len(v.names[0])
}
