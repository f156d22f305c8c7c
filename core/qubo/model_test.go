package qubo

import (
	"sort"
	"testing"
)

func TestBiasesAccumulate(t *testing.T) {
	m := NewModel()
	m.AddVariable("a", 1.5)
	m.AddVariable("a", 2.5)
	if got := m.Linear("a"); got != 4 {
		t.Fatalf("expected accumulated bias 4, got %v", got)
	}
	m.AddInteraction("a", "b", 1)
	m.AddInteraction("b", "a", 2)
	terms := m.QuadraticTerms()
	if len(terms) != 1 {
		t.Fatalf("expected a single interaction, got %d", len(terms))
	}
	if terms[0].Bias != 3 {
		t.Fatalf("expected accumulated interaction 3, got %v", terms[0].Bias)
	}
}

func TestInteractionRegistersVariables(t *testing.T) {
	m := NewModel()
	m.AddInteraction("a", "b", -3)
	if m.NumVariables() != 2 {
		t.Fatalf("expected 2 variables, got %d", m.NumVariables())
	}
	if !m.Has("a") || !m.Has("b") {
		t.Fatalf("interaction endpoints missing from variable set: %v", m.Variables())
	}
	if _, err := m.Energy(Sample{"a": 1}); err == nil {
		t.Fatalf("expected error for sample missing b")
	}
	e, err := m.Energy(Sample{"a": 1, "b": 1})
	if err != nil {
		t.Fatalf("energy: %v", err)
	}
	if e != -3 {
		t.Fatalf("expected energy -3, got %v", e)
	}
}

func TestSelfInteractionFoldsIntoLinear(t *testing.T) {
	m := NewModel()
	m.AddVariable("a", 1)
	m.AddInteraction("a", "a", 2)
	if got := m.Linear("a"); got != 3 {
		t.Fatalf("expected folded bias 3, got %v", got)
	}
	if len(m.QuadraticTerms()) != 0 {
		t.Fatalf("self interaction must not create a quadratic term")
	}
}

func TestVariablesSortedAndStable(t *testing.T) {
	m := NewModel()
	for _, v := range []string{"z", "a", "m", "b"} {
		m.AddVariable(v, 0)
	}
	vars := m.Variables()
	if !sort.StringsAreSorted(vars) {
		t.Fatalf("variables not sorted: %v", vars)
	}
	again := m.Variables()
	for i := range vars {
		if vars[i] != again[i] {
			t.Fatalf("ordering changed between calls")
		}
	}
	if m.NumVariables() != 4 {
		t.Fatalf("expected 4 variables, got %d", m.NumVariables())
	}
}

func TestEnergy(t *testing.T) {
	m := NewModel()
	m.AddVariable("a", 2)
	m.AddVariable("b", -1)
	m.AddInteraction("a", "b", 3)
	m.AddOffset(0.5)

	e, err := m.Energy(Sample{"a": 1, "b": 1})
	if err != nil {
		t.Fatalf("energy: %v", err)
	}
	if e != 4.5 {
		t.Fatalf("expected energy 4.5, got %v", e)
	}

	e, err = m.Energy(Sample{"a": 1, "b": 0})
	if err != nil {
		t.Fatalf("energy: %v", err)
	}
	if e != 2.5 {
		t.Fatalf("expected energy 2.5, got %v", e)
	}
}

func TestEnergyMissingVariable(t *testing.T) {
	m := NewModel()
	m.AddVariable("a", 1)
	m.AddVariable("b", 1)
	if _, err := m.Energy(Sample{"a": 1}); err == nil {
		t.Fatalf("expected error for sample missing b")
	}
}
