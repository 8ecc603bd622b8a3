package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Reference limits of the craft being solved.
const (
	DefaultMaxCP         = 661
	DefaultMaxDurability = 70
	DefaultMaxProgress   = 5720
	DefaultMaxQuality    = 12900
)

// Config holds the craft limits and solver settings. Keys omitted from a
// config file keep their defaults.
type Config struct {
	// MaxCP and MaxDurability are the starting (and maximum) resources.
	MaxCP         int `yaml:"maxCP"`
	MaxDurability int `yaml:"maxDurability"`
	// MinProgress is the progress the craft must reach.
	MinProgress int `yaml:"minProgress"`
	// MaxQuality is the quality cap, only used to report how close a plan gets.
	MaxQuality int `yaml:"maxQuality"`
	// Condition is held for every turn of the search.
	Condition string `yaml:"condition"`
	// Pruning selects the branching filter: "heuristic" or "none".
	Pruning string `yaml:"pruning"`
	// CatalogFile optionally overrides action parameters (JSON).
	CatalogFile string `yaml:"catalogFile"`

	LogLevel  string `yaml:"logLevel"`
	LogFormat string `yaml:"logFormat"`
	Verbose   bool   `yaml:"verbose"`
}

// DefaultConfig returns the reference craft with heuristic pruning.
func DefaultConfig() Config {
	return Config{
		MaxCP:         DefaultMaxCP,
		MaxDurability: DefaultMaxDurability,
		MinProgress:   DefaultMaxProgress,
		MaxQuality:    DefaultMaxQuality,
		Condition:     CondNormal.String(),
		Pruning:       PruneHeuristic,
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// LoadConfig reads a YAML config file over the defaults. Unknown keys are
// rejected so typos do not silently fall back to defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the limits fit the packed 16-bit frontier representation
// and that every named mode exists.
func (c Config) Validate() error {
	if c.MaxCP <= 0 {
		return fmt.Errorf("maxCP must be positive, got %d", c.MaxCP)
	}
	if c.MaxDurability <= 0 {
		return fmt.Errorf("maxDurability must be positive, got %d", c.MaxDurability)
	}
	if c.MinProgress < 0 || c.MinProgress > halfMax {
		return fmt.Errorf("minProgress must be within [0, %d], got %d", halfMax, c.MinProgress)
	}
	if c.MaxQuality < 0 || c.MaxQuality > halfMax {
		return fmt.Errorf("maxQuality must be within [0, %d], got %d", halfMax, c.MaxQuality)
	}
	if _, ok := parseCondition(c.Condition); !ok {
		return fmt.Errorf("unknown condition %q", c.Condition)
	}
	if c.Pruning != "" && c.Pruning != PruneHeuristic && c.Pruning != PruneNone {
		return fmt.Errorf("unknown pruning mode %q (want %q or %q)", c.Pruning, PruneHeuristic, PruneNone)
	}
	if _, ok := parseLogLevel(c.LogLevel); !ok {
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	if c.LogFormat != "" && c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("unknown log format %q (want text or json)", c.LogFormat)
	}
	return nil
}

// condition returns the parsed condition; Validate has already vetted it.
func (c Config) condition() Condition {
	cond, _ := parseCondition(c.Condition)
	return cond
}

// InitialState is the state a craft under c starts from.
func (c Config) InitialState() State {
	return NewState(c.MaxCP, c.MaxDurability, c.condition())
}
