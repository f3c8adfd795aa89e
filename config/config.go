// Package config defines the YAML run configuration consumed by the
// cellmesh CLI and other external drivers. The configuration is pure data:
// mapping timer specs onto concrete clock implementations is the driver's
// job, keeping this package free of engine dependencies.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Timer spec types.
const (
	TimerDeadline  = "deadline"
	TimerLogNormal = "lognormal"
	TimerPulse     = "pulse"
)

// Timer actions.
const (
	ActionDeath  = "death"
	ActionDivide = "divide"
	ActionCustom = "custom"
)

// Tie policies.
const (
	TieDeathWins    = "death_wins"
	TieDivisionWins = "division_wins"
)

// TimerSpec describes one fate timer attached to every founder cell.
type TimerSpec struct {
	// Type selects the implementation: deadline, lognormal or pulse.
	Type string `yaml:"type"`

	// Action is the fate the timer requests when it fires: death, divide or
	// custom. Pulse timers are always custom and ignore this field.
	Action string `yaml:"action"`

	// FireAt is the absolute firing time for deadline and pulse timers.
	FireAt float64 `yaml:"fire_at"`

	// Mu and Sigma parameterize the log-normal waiting period for
	// lognormal timers.
	Mu    float64 `yaml:"mu"`
	Sigma float64 `yaml:"sigma"`

	// Kind is the signal routing key for pulse timers.
	Kind string `yaml:"kind"`

	// SilencedBy wraps the timer so a sibling custom event of this kind
	// deactivates it. Empty means the timer cannot be silenced.
	SilencedBy string `yaml:"silenced_by"`
}

// OutputConfig selects the sinks attached to a run.
type OutputConfig struct {
	// SQLitePath enables trajectory recording into the given database file.
	SQLitePath string `yaml:"sqlite_path"`
}

// RunConfig is the complete description of one simulation run.
type RunConfig struct {
	// Seed initializes the run's random source. Identical seeds with
	// identical configs reproduce identical trajectories.
	Seed int64 `yaml:"seed"`

	// Dt is the constant step size. Must be positive.
	Dt float64 `yaml:"dt"`

	// Steps is the number of ticks to run.
	Steps int `yaml:"steps"`

	// Founders is the initial population size.
	Founders int `yaml:"founders"`

	// Workers bounds intra-tick parallelism. 1 means sequential.
	Workers int `yaml:"workers"`

	// TiePolicy resolves death+division conflicts: death_wins (default) or
	// division_wins.
	TiePolicy string `yaml:"tie_policy"`

	// Timers lists the fate timers attached to every founder, in order.
	Timers []TimerSpec `yaml:"timers"`

	// Output configures sinks.
	Output OutputConfig `yaml:"output"`
}

// Default returns the baseline run configuration.
func Default() RunConfig {
	return RunConfig{
		Seed:      1,
		Dt:        1,
		Steps:     10,
		Founders:  1,
		Workers:   1,
		TiePolicy: TieDeathWins,
	}
}

// Load reads, parses and validates a YAML run configuration. Missing fields
// fall back to Default values.
func Load(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse parses and validates a YAML run configuration from bytes.
func Parse(data []byte) (*RunConfig, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for internal consistency.
func (c *RunConfig) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %v", c.Dt)
	}
	if c.Steps < 0 {
		return fmt.Errorf("steps must be non-negative, got %d", c.Steps)
	}
	if c.Founders < 0 {
		return fmt.Errorf("founders must be non-negative, got %d", c.Founders)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.TiePolicy != TieDeathWins && c.TiePolicy != TieDivisionWins {
		return fmt.Errorf("unknown tie policy %q", c.TiePolicy)
	}

	for i, spec := range c.Timers {
		if err := spec.validate(); err != nil {
			return fmt.Errorf("timer %d: %w", i, err)
		}
	}

	return nil
}

func (s *TimerSpec) validate() error {
	switch s.Type {
	case TimerDeadline:
		if err := validAction(s.Action); err != nil {
			return err
		}
		if s.Action == ActionCustom && s.Kind == "" {
			return fmt.Errorf("custom deadline timer requires a kind")
		}
	case TimerLogNormal:
		if s.Action != ActionDeath && s.Action != ActionDivide {
			return fmt.Errorf("lognormal timer action must be death or divide, got %q", s.Action)
		}
		if s.Sigma < 0 {
			return fmt.Errorf("sigma must be non-negative, got %v", s.Sigma)
		}
	case TimerPulse:
		if s.Kind == "" {
			return fmt.Errorf("pulse timer requires a kind")
		}
	default:
		return fmt.Errorf("unknown timer type %q", s.Type)
	}
	return nil
}

func validAction(a string) error {
	switch a {
	case ActionDeath, ActionDivide, ActionCustom:
		return nil
	default:
		return fmt.Errorf("unknown action %q", a)
	}
}
