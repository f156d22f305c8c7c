package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	coremetrics "github.com/kilianp07/pumpflow/core/metrics"
	"github.com/kilianp07/pumpflow/core/model"
	"github.com/kilianp07/pumpflow/infra/publish"
	"github.com/kilianp07/pumpflow/infra/solver"
)

// Config is the root configuration of the scheduling pipeline.
type Config struct {
	Scenario model.Scenario     `json:"scenario"`
	Solver   solver.Config      `json:"solver"`
	Metrics  coremetrics.Config `json:"metrics"`
	MQTT     publish.Config     `json:"mqtt"`
	Export   ExportConfig       `json:"export"`
}

// ExportConfig selects where the decoded schedule is written.
type ExportConfig struct {
	// JSONPath and CSVPath are written when non-empty.
	JSONPath string `json:"json_path"`
	CSVPath  string `json:"csv_path"`
	// Table prints the activation table to stdout.
	Table bool `json:"table"`
}

// Load reads the configuration from a JSON or YAML file, applies
// PF_-prefixed environment overrides and validates the result. When
// path is empty the built-in reference scenario is used.
func Load(path string) (*Config, error) {
	var cfg Config
	if path == "" {
		cfg.Scenario = model.DefaultScenario()
		cfg.applyDefaults()
		return &cfg, cfg.validate()
	}

	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("PF_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "pf_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, cfg.validate()
}

func (c *Config) applyDefaults() {
	c.Scenario.SetDefaults()
	c.Solver.SetDefaults()
	c.MQTT.SetDefaults()
}

func (c *Config) validate() error {
	if err := c.Scenario.Validate(); err != nil {
		return fmt.Errorf("scenario: %w", err)
	}
	if err := c.Solver.Validate(); err != nil {
		return fmt.Errorf("solver: %w", err)
	}
	if err := c.MQTT.Validate(); err != nil {
		return fmt.Errorf("mqtt: %w", err)
	}
	return nil
}
