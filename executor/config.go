package executor

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/rickchristie/backtrack/budget"
	"github.com/rickchristie/backtrack/deadend"
	"github.com/rickchristie/backtrack/explore"
)

// Defaults for Config.
const (
	DefaultMaxIterations = 50
)

// Config holds configuration options for the Executor.
type Config struct {
	// MaxIterations caps the number of step calls. Default 50.
	MaxIterations int `yaml:"max_iterations"`

	// Budget is the total number of alternatives the session may spend.
	// Default 10.
	Budget int `yaml:"budget"`

	// PriorityReserve overrides the default reserve of floor(Budget*0.2).
	PriorityReserve *int `yaml:"priority_reserve"`

	// AllocationFactor is the share of the remaining budget recorded for
	// each new exploration level. Default 0.4.
	AllocationFactor float64 `yaml:"allocation_factor"`

	// AdaptEvery adjusts the budget by the observed success rate every N
	// iterations. Zero disables adaptation.
	AdaptEvery int `yaml:"adapt_every"`

	// PersistKey, when set, saves the stack to the snapshot manager's
	// store after every push and pop.
	PersistKey string `yaml:"persist_key"`

	Detector deadend.Options `yaml:"detector"`
	Explorer explore.Options `yaml:"explorer"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxIterations:    DefaultMaxIterations,
		Budget:           budget.DefaultTotal,
		AllocationFactor: budget.DefaultAllocationFactor,
		Detector:         deadend.DefaultOptions(),
		Explorer:         explore.DefaultOptions(),
	}
}

func (c Config) withDefaults() Config {
	if c.MaxIterations <= 0 {
		c.MaxIterations = DefaultMaxIterations
	}
	if c.Budget <= 0 {
		c.Budget = budget.DefaultTotal
	}
	if c.AllocationFactor <= 0 {
		c.AllocationFactor = budget.DefaultAllocationFactor
	}
	return c
}

// LoadConfig decodes a YAML config on top of DefaultConfig. Unknown fields
// are rejected. Empty input yields the defaults.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("executor: decode config: %w", err)
	}
	if cfg.PriorityReserve != nil && *cfg.PriorityReserve < 0 {
		return Config{}, fmt.Errorf("executor: priority_reserve must be >= 0, got %d", *cfg.PriorityReserve)
	}
	if cfg.Budget < 0 {
		return Config{}, fmt.Errorf("executor: budget must be >= 0, got %d", cfg.Budget)
	}
	return cfg.withDefaults(), nil
}
