package qubo

import (
	"fmt"
	"math"
	"math/bits"
)

// LinearTerm is one (variable, integer coefficient) entry of a linear
// expression. Coefficients must be integral so inequality slack can be
// synthesised exactly.
type LinearTerm struct {
	Var   string
	Coeff int
}

// NoLowerBound marks a one-sided inequality with no declared lower
// bound.
const NoLowerBound = math.MinInt32

// AddLinearEqualityConstraint adds the penalty
// weight*(sum(coeff*x) + constant)^2 to the model. The contribution is
// zero exactly when the expression equals -constant.
func (m *Model) AddLinearEqualityConstraint(terms []LinearTerm, constant int, weight float64) {
	c := float64(constant)
	m.AddOffset(weight * c * c)
	for i, t := range terms {
		ci := float64(t.Coeff)
		m.AddVariable(t.Var, weight*(ci*ci+2*c*ci))
		for _, u := range terms[i+1:] {
			m.AddInteraction(t.Var, u.Var, 2*weight*ci*float64(u.Coeff))
		}
	}
}

// AddLinearInequalityConstraint compiles
// lower <= sum(coeff*x) + constant <= upper into a penalty of the
// given weight. The contributed energy is zero for every assignment
// inside the bounds and strictly positive outside. Pass NoLowerBound
// for lower to declare a one-sided constraint.
//
// The bounds are first clamped to the attainable range of the
// expression. The remaining gap R is closed by slack variables in
// binary expansion, ceil(log2(R+1)) of them, named slack_<label>_<j>.
// A gap of zero degrades to an equality; so do bounds that exclude the
// whole attainable range, which can only arise from degenerate inputs.
// The slack terms introduced are returned.
func (m *Model) AddLinearInequalityConstraint(terms []LinearTerm, constant, lower, upper int, weight float64, label string) []LinearTerm {
	termsUB, termsLB := 0, 0
	for _, t := range terms {
		if t.Coeff > 0 {
			termsUB += t.Coeff
		} else {
			termsLB += t.Coeff
		}
	}
	ubC := upper - constant
	if termsUB < ubC {
		ubC = termsUB
	}
	lbC := lower - constant
	if lower == NoLowerBound || termsLB > lbC {
		lbC = termsLB
	}
	if lbC > ubC {
		lbC = ubC
	}

	slackRange := ubC - lbC
	if slackRange == 0 {
		m.AddLinearEqualityConstraint(terms, -ubC, weight)
		return nil
	}

	floorLog := bits.Len(uint(slackRange)) - 1
	var slack []LinearTerm
	for j := 0; j < floorLog; j++ {
		slack = append(slack, LinearTerm{
			Var:   fmt.Sprintf("slack_%s_%d", label, j),
			Coeff: 1 << j,
		})
	}
	slack = append(slack, LinearTerm{
		Var:   fmt.Sprintf("slack_%s_%d", label, floorLog),
		Coeff: slackRange - 1<<floorLog + 1,
	})

	all := make([]LinearTerm, 0, len(terms)+len(slack))
	all = append(all, terms...)
	all = append(all, slack...)
	m.AddLinearEqualityConstraint(all, -ubC, weight)
	return slack
}
