package solver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kilianp07/pumpflow/core/qubo"
	coresolver "github.com/kilianp07/pumpflow/core/solver"
)

func remoteTestModel() *qubo.Model {
	m := qubo.NewModel()
	m.AddVariable("a", -1)
	m.AddVariable("b", 2)
	m.AddInteraction("a", "b", 0.5)
	return m
}

func TestRemoteSolve(t *testing.T) {
	var gotReq solveRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer secret" {
			t.Errorf("unexpected authorization header %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(solveResponse{
			Sample: qubo.Sample{"a": 1, "b": 0},
			Energy: -1,
		})
	}))
	defer srv.Close()

	r := NewRemote(RemoteConfig{URL: srv.URL, Token: "secret"})
	sample, err := r.Solve(context.Background(), remoteTestModel())
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if sample["a"] != 1 || sample["b"] != 0 {
		t.Fatalf("unexpected sample %v", sample)
	}
	if gotReq.ID == "" {
		t.Fatalf("request must carry an id")
	}
	if gotReq.Linear["a"] != -1 || gotReq.Linear["b"] != 2 {
		t.Fatalf("unexpected linear payload %v", gotReq.Linear)
	}
	if len(gotReq.Quadratic) != 1 || gotReq.Quadratic[0].Bias != 0.5 {
		t.Fatalf("unexpected quadratic payload %v", gotReq.Quadratic)
	}
}

func TestRemoteSolveServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "solver overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	r := NewRemote(RemoteConfig{URL: srv.URL})
	if _, err := r.Solve(context.Background(), remoteTestModel()); err == nil {
		t.Fatalf("expected error on non-200 response")
	}
}

func TestRemoteSolveEmptySample(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(solveResponse{})
	}))
	defer srv.Close()

	r := NewRemote(RemoteConfig{URL: srv.URL})
	_, err := r.Solve(context.Background(), remoteTestModel())
	if !errors.Is(err, coresolver.ErrNoSolution) {
		t.Fatalf("expected ErrNoSolution, got %v", err)
	}
}

func TestRemoteConfigValidate(t *testing.T) {
	if err := (RemoteConfig{}).Validate(); err == nil {
		t.Fatalf("expected error for missing url")
	}
	if err := (RemoteConfig{URL: "http://solver"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
