// Package solver defines the contract of the external combinatorial
// solver consumed by the scheduling pipeline.
package solver

import (
	"context"
	"errors"

	"github.com/kilianp07/pumpflow/core/qubo"
)

// Solver accepts a binary quadratic model and returns one low-energy
// sample. No optimality or determinism is guaranteed: repeated calls
// with the same model may return different samples. Implementations
// block until a sample is available or ctx is done; callers wanting
// timeouts or retries wrap the call themselves.
type Solver interface {
	Solve(ctx context.Context, m *qubo.Model) (qubo.Sample, error)
}

// ErrNoSolution is returned when a solver terminates without
// producing any sample.
var ErrNoSolution = errors.New("solver returned no sample")
