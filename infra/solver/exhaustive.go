package solver

import (
	"context"
	"fmt"
	"math/bits"

	"github.com/kilianp07/pumpflow/core/qubo"
	coresolver "github.com/kilianp07/pumpflow/core/solver"
)

// DefaultMaxVariables bounds the exhaustive search. Beyond ~24
// variables full enumeration stops being practical.
const DefaultMaxVariables = 24

// Exhaustive finds the exact minimum of a model by enumerating every
// assignment. It is meant for small models and ground-truth checks.
type Exhaustive struct {
	// MaxVariables rejects models too large to enumerate. Zero means
	// DefaultMaxVariables.
	MaxVariables int
}

var _ coresolver.Solver = (*Exhaustive)(nil)

// Solve enumerates all 2^n assignments and returns the lowest-energy
// one.
func (e *Exhaustive) Solve(ctx context.Context, m *qubo.Model) (qubo.Sample, error) {
	maxVars := e.MaxVariables
	if maxVars == 0 {
		maxVars = DefaultMaxVariables
	}
	vars := m.Variables()
	n := len(vars)
	if n == 0 {
		return nil, coresolver.ErrNoSolution
	}
	if n > maxVars {
		return nil, fmt.Errorf("model has %d variables, exhaustive search capped at %d", n, maxVars)
	}

	idx := newIndexedModel(m, vars)
	x := make([]int, n)
	best := make([]int, n)
	energy := idx.energy(x)
	bestEnergy := energy
	copy(best, x)

	// Gray-code walk: each step flips exactly one variable, so the
	// energy is maintained incrementally in O(n) per assignment.
	for step := uint64(1); step < uint64(1)<<n; step++ {
		if step%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		i := bits.TrailingZeros64(step)
		energy += idx.flipDelta(x, i)
		x[i] ^= 1
		if energy < bestEnergy {
			bestEnergy = energy
			copy(best, x)
		}
	}

	sample := make(qubo.Sample, n)
	for i, v := range vars {
		sample[v] = best[i]
	}
	return sample, nil
}
