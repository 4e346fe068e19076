// Package config loads and saves YAML scenario descriptions, mirroring
// the teacher's internal/config/config.go: a struct with yaml tags, a
// DefaultConfig constructor, and file-backed Load/Save built on
// gopkg.in/yaml.v3.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt         = 1e-4
	DefaultG          = 1.0
	DefaultDuration   = 10.0
	DefaultEccentricity = 0.5
	DefaultRingBodies = 5
	DefaultGridSize   = 32
)

// Config describes one scenario run: which System generator to build, the
// Simulator kind to advance it, and the numerical parameters spec.md 4.E
// fixes before the first Step.
type Config struct {
	Scenario  string       `yaml:"scenario"`
	Simulator string       `yaml:"simulator"` // "direct" or "pm"
	Precision string       `yaml:"precision"` // "f64" or "dd"
	Dt        float64      `yaml:"dt"`
	G         float64      `yaml:"g"`
	Duration  float64      `yaml:"duration"`
	Init      InitConfig   `yaml:"init"`
	PM        PMConfig     `yaml:"pm"`
}

// InitConfig collects the parameters the individual System generators
// need, following the teacher's InitStateConfig pattern of one flat struct
// shared across every model rather than a per-model type.
type InitConfig struct {
	Eccentricity   float64 `yaml:"eccentricity"`   // TwoBody
	RingBodies     int     `yaml:"ring_bodies"`    // Ring
	CatalogPath    string  `yaml:"catalog_path"`   // SolarSystem minor bodies
	CatalogBelt    string  `yaml:"catalog_belt"`   // "main_belt" or "kuiper"
}

// PMConfig collects Particle-Mesh-specific tuning, spec.md 4.G.
type PMConfig struct {
	GridSize        int     `yaml:"grid_size"`
	AdaptiveBox     bool    `yaml:"adaptive_box"`
	FixedBoxHalf    float64 `yaml:"fixed_box_half"`
	MinCellSize     float64 `yaml:"min_cell_size"`
	MaxCellSize     float64 `yaml:"max_cell_size"`
	LazyForce       bool    `yaml:"lazy_force"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:  "twobody",
		Simulator: "direct",
		Precision: "f64",
		Dt:        DefaultDt,
		G:         DefaultG,
		Duration:  DefaultDuration,
		Init: InitConfig{
			Eccentricity: DefaultEccentricity,
			RingBodies:   DefaultRingBodies,
			CatalogBelt:  "main_belt",
		},
		PM: PMConfig{
			GridSize:    DefaultGridSize,
			AdaptiveBox: true,
			MinCellSize: 1e-3,
			MaxCellSize: 1e6,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Steps returns the number of Simulator.Step calls needed to cover
// Duration at Dt, rounding up so the run reaches at least Duration.
func (c *Config) Steps() int {
	if c.Dt <= 0 {
		return 0
	}
	n := c.Duration / c.Dt
	steps := int(n)
	if float64(steps) < n {
		steps++
	}
	return steps
}

// Validate reports a descriptive error for a Config that cannot be turned
// into a System/Simulator pair, following the teacher's convention of
// returning plain fmt.Errorf rather than a sentinel for CLI-facing
// configuration mistakes (reserving internal/dynamo's sentinels for
// runtime divergence, not malformed input).
func (c *Config) Validate() error {
	switch c.Scenario {
	case "twobody", "threebody", "ring", "keplerring", "solarsystem":
	default:
		return fmt.Errorf("config: unknown scenario %q", c.Scenario)
	}
	switch c.Simulator {
	case "direct", "pm":
	default:
		return fmt.Errorf("config: unknown simulator %q", c.Simulator)
	}
	switch c.Precision {
	case "f64", "dd":
	default:
		return fmt.Errorf("config: unknown precision %q", c.Precision)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("config: dt must be positive, got %v", c.Dt)
	}
	if (c.Scenario == "ring" || c.Scenario == "keplerring") && c.Init.RingBodies < 3 {
		return fmt.Errorf("config: ring scenario needs at least 3 bodies, got %d", c.Init.RingBodies)
	}
	return nil
}
