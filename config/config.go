// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/schelling/sim"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Board  BoardConfig  `yaml:"board"`
	Model  ModelConfig  `yaml:"model"`
	Run    RunConfig    `yaml:"run"`
	Output OutputConfig `yaml:"output"`
}

// BoardConfig holds initial board generation parameters.
type BoardConfig struct {
	Size          int     `yaml:"size"`           // Side length N of the N x N board
	EmptyFraction float64 `yaml:"empty_fraction"` // Probability a cell starts empty
	RedFraction   float64 `yaml:"red_fraction"`   // Probability an occupied cell is red
}

// ModelConfig holds the satisfaction and convergence parameters.
type ModelConfig struct {
	Threshold float64 `yaml:"threshold"` // Similarity ratio below which a cell is unsatisfied
	Stopping  int     `yaml:"stopping"`  // Converge once fewer than this many cells are unsatisfied
}

// RunConfig holds the per-run driver parameters.
type RunConfig struct {
	Algorithm     string `yaml:"algorithm"`      // Registered relocation algorithm name
	MaxIterations int    `yaml:"max_iterations"` // Iteration budget (0 = no-op run)
	Seed          int64  `yaml:"seed"`           // RNG seed (0 = derive from wall clock)
}

// OutputConfig holds telemetry output settings.
type OutputConfig struct {
	Dir      string `yaml:"dir"`       // Output directory ("" = no file output)
	LogStats bool   `yaml:"log_stats"` // Log per-iteration stats
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded parameters, including the algorithm name
// against the registry.
func (c *Config) Validate() error {
	if err := c.Sim().Validate(); err != nil {
		return err
	}
	if _, err := sim.Lookup(c.Run.Algorithm); err != nil {
		return err
	}
	if c.Run.MaxIterations < 0 {
		return fmt.Errorf("%w: max_iterations %d is negative", sim.ErrInvalidConfig, c.Run.MaxIterations)
	}
	return nil
}

// Sim converts the board and model sections into engine parameters.
func (c *Config) Sim() sim.Config {
	return sim.Config{
		Size:      c.Board.Size,
		EmptyFrac: c.Board.EmptyFraction,
		RedFrac:   c.Board.RedFraction,
		Threshold: c.Model.Threshold,
		Stopping:  c.Model.Stopping,
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
