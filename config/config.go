// Package config provides configuration loading and access for the particle engine.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all engine configuration parameters.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	Particles   ParticlesConfig   `yaml:"particles"`
	Physics     PhysicsConfig     `yaml:"physics"`
	Spawn       SpawnConfig       `yaml:"spawn"`
	Containment ContainmentConfig `yaml:"containment"`
	Render      RenderConfig      `yaml:"render"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings for the drawing surface.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// ParticlesConfig holds particle pool and cap parameters.
type ParticlesConfig struct {
	MaxParticles int     `yaml:"max_particles"` // soft cap, adjustable at runtime
	PoolCapacity int     `yaml:"pool_capacity"` // freelist bound (0 = same as max_particles)
	BaseSize     float64 `yaml:"base_size"`     // mean spawn size in surface units
	SizeJitter   float64 `yaml:"size_jitter"`   // +/- random spread on base size
	MinLifeSec   float64 `yaml:"min_life_sec"`
	MaxLifeSec   float64 `yaml:"max_life_sec"`
}

// PhysicsConfig holds per-behavior force parameters shared by all evaluators.
type PhysicsConfig struct {
	VelocityDrag   float64 `yaml:"velocity_drag"`   // exponential drag coefficient (per second)
	RiseAccel      float64 `yaml:"rise_accel"`      // upward accel for rising particles
	FallAccel      float64 `yaml:"fall_accel"`      // downward accel for falling particles
	RadialAccel    float64 `yaml:"radial_accel"`    // outward accel for scatter/repel
	OrbitSpeed     float64 `yaml:"orbit_speed"`     // radians per second
	OrbitStiffness float64 `yaml:"orbit_stiffness"` // centripetal correction strength
	JitterAccel    float64 `yaml:"jitter_accel"`    // perturbation magnitude for aggressive/glitchy/spaz
}

// SpawnConfig holds spawn scheduler parameters.
type SpawnConfig struct {
	GlowRadius     float64 `yaml:"glow_radius"`     // notional dispersion radius around the origin
	EdgeMargin     float64 `yaml:"edge_margin"`     // clamp margin from the surface edge
	AccumulatorCap float64 `yaml:"accumulator_cap"` // rate accumulator hard clamp
}

// ContainmentConfig holds optional bounds enforcement parameters.
type ContainmentConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Mode        string  `yaml:"mode"`        // "clamp" or "bounce"
	Restitution float64 `yaml:"restitution"` // velocity retained on bounce
	Inset       float64 `yaml:"inset"`       // bounds inset from the surface edge
}

// RenderConfig holds render batcher parameters.
type RenderConfig struct {
	CullMargin float64 `yaml:"cull_margin"` // distance off-surface before a particle is skipped
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindowSec      float64 `yaml:"stats_window_sec"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32 float32 // Screen.Width as float32
	ScreenH32 float32 // Screen.Height as float32
	PoolCap   int     // effective pool capacity
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

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	poolCap := c.Particles.PoolCapacity
	if poolCap <= 0 {
		poolCap = c.Particles.MaxParticles
	}
	c.Derived.PoolCap = poolCap

	if c.Spawn.AccumulatorCap <= 0 {
		c.Spawn.AccumulatorCap = 3.0
	}
	if c.Containment.Mode == "" {
		c.Containment.Mode = "clamp"
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
