package qubo

import (
	"fmt"
	"sort"
)

// Sample assigns 0 or 1 to each model variable.
type Sample map[string]int

// pair is an unordered variable pair stored in canonical order.
type pair struct {
	u, v string
}

func newPair(u, v string) pair {
	if v < u {
		u, v = v, u
	}
	return pair{u: u, v: v}
}

// Model is a binary quadratic model: an energy function over 0/1
// variables made of linear biases, pairwise interaction biases and a
// constant offset. Contributions to the same variable or pair always
// accumulate, they are never overwritten.
type Model struct {
	linear    map[string]float64
	quadratic map[pair]float64
	offset    float64
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{
		linear:    make(map[string]float64),
		quadratic: make(map[pair]float64),
	}
}

// AddVariable adds bias to the linear coefficient of v, creating the
// variable if it does not exist yet.
func (m *Model) AddVariable(v string, bias float64) {
	m.linear[v] += bias
}

// AddInteraction adds bias to the interaction between u and v. A
// self-interaction folds into the linear term since x*x = x for
// binary x. Both endpoints become model variables, with a zero linear
// bias when they have none yet, so Variables and Energy always see
// every variable the energy function mentions.
func (m *Model) AddInteraction(u, v string, bias float64) {
	if u == v {
		m.linear[u] += bias
		return
	}
	if _, ok := m.linear[u]; !ok {
		m.linear[u] = 0
	}
	if _, ok := m.linear[v]; !ok {
		m.linear[v] = 0
	}
	m.quadratic[newPair(u, v)] += bias
}

// AddOffset adds a constant to the model energy.
func (m *Model) AddOffset(c float64) {
	m.offset += c
}

// NumVariables returns the number of variables in the model.
func (m *Model) NumVariables() int { return len(m.linear) }

// Variables returns the variable names in sorted order. The ordering
// is stable across calls so solvers can index variables by position.
func (m *Model) Variables() []string {
	vars := make([]string, 0, len(m.linear))
	for v := range m.linear {
		vars = append(vars, v)
	}
	sort.Strings(vars)
	return vars
}

// Has reports whether the model contains variable v.
func (m *Model) Has(v string) bool {
	_, ok := m.linear[v]
	return ok
}

// Linear returns the linear bias of v, zero if absent.
func (m *Model) Linear(v string) float64 { return m.linear[v] }

// Offset returns the constant energy offset.
func (m *Model) Offset() float64 { return m.offset }

// QuadTerm is one pairwise interaction of the model.
type QuadTerm struct {
	U    string  `json:"u"`
	V    string  `json:"v"`
	Bias float64 `json:"bias"`
}

// QuadraticTerms returns all pairwise interactions in a deterministic
// order.
func (m *Model) QuadraticTerms() []QuadTerm {
	terms := make([]QuadTerm, 0, len(m.quadratic))
	for p, b := range m.quadratic {
		terms = append(terms, QuadTerm{U: p.u, V: p.v, Bias: b})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].U != terms[j].U {
			return terms[i].U < terms[j].U
		}
		return terms[i].V < terms[j].V
	})
	return terms
}

// Energy evaluates the model at the given sample. Variables missing
// from the sample are an error: the sample does not match the model.
func (m *Model) Energy(s Sample) (float64, error) {
	e := m.offset
	for v, bias := range m.linear {
		x, ok := s[v]
		if !ok {
			return 0, fmt.Errorf("sample missing variable %s", v)
		}
		e += bias * float64(x)
	}
	for p, bias := range m.quadratic {
		e += bias * float64(s[p.u]) * float64(s[p.v])
	}
	return e, nil
}
