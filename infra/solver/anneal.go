package solver

import (
	"context"
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/kilianp07/pumpflow/core/qubo"
	coresolver "github.com/kilianp07/pumpflow/core/solver"
)

// Annealer samples low-energy assignments with simulated annealing
// over a geometric inverse-temperature schedule. It makes no
// optimality promise; repeated calls may return different samples.
type Annealer struct {
	// Sweeps is the number of full variable sweeps per restart.
	Sweeps int `json:"sweeps"`
	// Restarts is the number of independent annealing runs; the best
	// sample across runs wins.
	Restarts int `json:"restarts"`
	// BetaMin and BetaMax bound the geometric schedule.
	BetaMin float64 `json:"beta_min"`
	BetaMax float64 `json:"beta_max"`
	// Seed fixes the random source. Zero seeds from the clock.
	Seed int64 `json:"seed"`
}

var _ coresolver.Solver = (*Annealer)(nil)

// NewAnnealer returns an annealer with defaults sized for models of a
// few hundred variables.
func NewAnnealer() *Annealer {
	return &Annealer{Sweeps: 2000, Restarts: 8, BetaMin: 1e-5, BetaMax: 10}
}

// indexedModel holds the model coefficients as a dense symmetric
// matrix so energy deltas are cheap during sweeps: the diagonal holds
// the linear biases, off-diagonal entries half the interaction bias.
type indexedModel struct {
	vars   []string
	q      *mat.SymDense
	offset float64
}

func newIndexedModel(m *qubo.Model, vars []string) *indexedModel {
	pos := make(map[string]int, len(vars))
	for i, v := range vars {
		pos[v] = i
	}
	q := mat.NewSymDense(len(vars), nil)
	for i, v := range vars {
		q.SetSym(i, i, m.Linear(v))
	}
	for _, t := range m.QuadraticTerms() {
		i, j := pos[t.U], pos[t.V]
		q.SetSym(i, j, q.At(i, j)+t.Bias/2)
	}
	return &indexedModel{vars: vars, q: q, offset: m.Offset()}
}

func (im *indexedModel) energy(x []int) float64 {
	n := len(x)
	e := im.offset
	for i := 0; i < n; i++ {
		if x[i] == 0 {
			continue
		}
		e += im.q.At(i, i)
		for j := i + 1; j < n; j++ {
			if x[j] == 1 {
				e += 2 * im.q.At(i, j)
			}
		}
	}
	return e
}

// flipDelta is the energy change of flipping variable i.
func (im *indexedModel) flipDelta(x []int, i int) float64 {
	d := im.q.At(i, i)
	for j := range x {
		if j != i && x[j] == 1 {
			d += 2 * im.q.At(i, j)
		}
	}
	if x[i] == 1 {
		return -d
	}
	return d
}

// Solve runs the annealing schedule and returns the best sample seen.
func (a *Annealer) Solve(ctx context.Context, m *qubo.Model) (qubo.Sample, error) {
	vars := m.Variables()
	if len(vars) == 0 {
		return nil, coresolver.ErrNoSolution
	}
	seed := a.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	im := newIndexedModel(m, vars)
	n := len(vars)

	var best []int
	bestEnergy := math.Inf(1)

	for r := 0; r < a.Restarts; r++ {
		x := make([]int, n)
		for i := range x {
			x[i] = rng.Intn(2)
		}
		energy := im.energy(x)
		for s := 0; s < a.Sweeps; s++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			beta := a.BetaMax
			if a.Sweeps > 1 {
				beta = a.BetaMin * math.Pow(a.BetaMax/a.BetaMin, float64(s)/float64(a.Sweeps-1))
			}
			for i := 0; i < n; i++ {
				d := im.flipDelta(x, i)
				if d <= 0 || rng.Float64() < math.Exp(-beta*d) {
					x[i] ^= 1
					energy += d
				}
			}
			if energy < bestEnergy {
				bestEnergy = energy
				best = append(best[:0], x...)
			}
		}
	}
	if best == nil {
		return nil, coresolver.ErrNoSolution
	}

	sample := make(qubo.Sample, n)
	for i, v := range vars {
		sample[v] = best[i]
	}
	return sample, nil
}
