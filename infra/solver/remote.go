package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/pumpflow/core/qubo"
	coresolver "github.com/kilianp07/pumpflow/core/solver"
)

// RemoteConfig defines the connection parameters of an external solve
// service.
type RemoteConfig struct {
	URL string `json:"url"`
	// Token, when set, is sent as a bearer authorization header.
	Token          string `json:"token"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *RemoteConfig) SetDefaults() {
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = 60
	}
}

// Validate checks mandatory fields.
func (c RemoteConfig) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("solver url is required")
	}
	return nil
}

// Remote submits models to an external solve service over HTTP. The
// service is fully opaque: its failures are surfaced unmodified and no
// retries are attempted here. Callers wanting retry or backoff wrap
// the Solve call.
type Remote struct {
	cfg    RemoteConfig
	client *http.Client
}

var _ coresolver.Solver = (*Remote)(nil)

// NewRemote creates a client for the given service.
func NewRemote(cfg RemoteConfig) *Remote {
	cfg.SetDefaults()
	return &Remote{
		cfg:    cfg,
		client: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
	}
}

type solveRequest struct {
	ID        string             `json:"id"`
	Linear    map[string]float64 `json:"linear"`
	Quadratic []qubo.QuadTerm    `json:"quadratic"`
	Offset    float64            `json:"offset"`
}

type solveResponse struct {
	Sample qubo.Sample `json:"sample"`
	Energy float64     `json:"energy"`
}

// Solve posts the model and decodes the returned sample.
func (r *Remote) Solve(ctx context.Context, m *qubo.Model) (qubo.Sample, error) {
	linear := make(map[string]float64, m.NumVariables())
	for _, v := range m.Variables() {
		linear[v] = m.Linear(v)
	}
	payload := solveRequest{
		ID:        uuid.NewString(),
		Linear:    linear,
		Quadratic: m.QuadraticTerms(),
		Offset:    m.Offset(),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode model: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.cfg.Token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, b)
	}

	var sr solveResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(sr.Sample) == 0 {
		return nil, coresolver.ErrNoSolution
	}
	return sr.Sample, nil
}
