package solver

import (
	"fmt"

	coresolver "github.com/kilianp07/pumpflow/core/solver"
)

// Config selects and parameterises a solver backend.
type Config struct {
	// Backend is one of "anneal", "exhaustive" or "remote".
	Backend string       `json:"backend"`
	Anneal  Annealer     `json:"anneal"`
	Remote  RemoteConfig `json:"remote"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "anneal"
	}
	def := NewAnnealer()
	if c.Anneal.Sweeps == 0 {
		c.Anneal.Sweeps = def.Sweeps
	}
	if c.Anneal.Restarts == 0 {
		c.Anneal.Restarts = def.Restarts
	}
	if c.Anneal.BetaMin == 0 {
		c.Anneal.BetaMin = def.BetaMin
	}
	if c.Anneal.BetaMax == 0 {
		c.Anneal.BetaMax = def.BetaMax
	}
	c.Remote.SetDefaults()
}

// Validate checks the backend selection.
func (c Config) Validate() error {
	switch c.Backend {
	case "anneal", "exhaustive":
		return nil
	case "remote":
		return c.Remote.Validate()
	default:
		return fmt.Errorf("unknown solver backend %s", c.Backend)
	}
}

// New instantiates the configured backend.
func New(cfg Config) (coresolver.Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Backend {
	case "anneal":
		a := cfg.Anneal
		return &a, nil
	case "exhaustive":
		return &Exhaustive{}, nil
	case "remote":
		return NewRemote(cfg.Remote), nil
	}
	return nil, fmt.Errorf("unknown solver backend %s", cfg.Backend)
}
