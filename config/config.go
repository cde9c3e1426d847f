// Package config provides configuration loading and access for the reef.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/reef/drawing"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	Lobster     LobsterConfig     `yaml:"lobster"`
	Scene       SceneConfig       `yaml:"scene"`
	Interaction InteractionConfig `yaml:"interaction"`
	Store       StoreConfig       `yaml:"store"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int  `yaml:"width"`
	Height    int  `yaml:"height"`
	TargetFPS int  `yaml:"target_fps"`
	Resizable bool `yaml:"resizable"`
}

// LobsterConfig holds walker kinematics and size.
type LobsterConfig struct {
	Width         float64 `yaml:"width"`          // On-screen size in pixels
	Height        float64 `yaml:"height"`         // On-screen size in pixels
	BaseSpeed     float64 `yaml:"base_speed"`     // Pixels per second
	SpeedVariance float64 `yaml:"speed_variance"` // Uniform +/- around base speed
	Gravity       float64 `yaml:"gravity"`        // Pixels per second squared
	JumpVelocity  float64 `yaml:"jump_velocity"`  // Initial upward velocity
	JumpEpsilon   float64 `yaml:"jump_epsilon"`   // Height that marks a jump as airborne
	GaitRate      float64 `yaml:"gait_rate"`      // Leg cycles per second
	MaxDT         float64 `yaml:"max_dt"`         // Frame delta clamp in seconds
	Color         string  `yaml:"color"`          // Stroke override color
}

// SceneConfig holds ocean floor decoration parameters.
type SceneConfig struct {
	FloorRatio     float64 `yaml:"floor_ratio"`     // Floor line as a fraction of canvas height
	BubbleCount    int     `yaml:"bubble_count"`    // Ambient bubbles
	SeaweedSpacing float64 `yaml:"seaweed_spacing"` // One seaweed patch per this many pixels of width
	SeaweedExtra   int     `yaml:"seaweed_extra"`   // Patches added on top of the width-based count
	SandSpeckles   int     `yaml:"sand_speckles"`
	LightRays      int     `yaml:"light_rays"`
	Seed           int64   `yaml:"seed"` // Decoration RNG seed (0 = time-based)
}

// InteractionConfig holds pointer handling parameters.
type InteractionConfig struct {
	DoubleClickMS int `yaml:"double_click_ms"`
}

// StoreConfig holds drawing store parameters.
type StoreConfig struct {
	Path         string  `yaml:"path"`          // SQLite path (empty = in-memory)
	SeedSamples  bool    `yaml:"seed_samples"`  // Insert sample lobsters into an empty store
	PollInterval float64 `yaml:"poll_interval"` // Seconds between drawing list refreshes
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Seconds per logged window
	PerfWindow  int     `yaml:"perf_window"`  // Frames in the rolling perf window
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DoubleClickWindow time.Duration
	PollInterval      time.Duration
	ColorR            uint8
	ColorG            uint8
	ColorB            uint8
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
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

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

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values the simulation cannot run with.
func (c *Config) validate() error {
	if c.Lobster.Width <= 0 || c.Lobster.Height <= 0 {
		return fmt.Errorf("lobster size must be positive, got %vx%v", c.Lobster.Width, c.Lobster.Height)
	}
	if c.Lobster.Gravity <= 0 {
		return fmt.Errorf("lobster.gravity must be positive, got %v", c.Lobster.Gravity)
	}
	if c.Lobster.JumpVelocity <= 0 {
		return fmt.Errorf("lobster.jump_velocity must be positive, got %v", c.Lobster.JumpVelocity)
	}
	if c.Lobster.MaxDT <= 0 {
		return fmt.Errorf("lobster.max_dt must be positive, got %v", c.Lobster.MaxDT)
	}
	if c.Scene.FloorRatio <= 0 || c.Scene.FloorRatio >= 1 {
		return fmt.Errorf("scene.floor_ratio must be in (0,1), got %v", c.Scene.FloorRatio)
	}
	if c.Scene.SeaweedSpacing <= 0 {
		return fmt.Errorf("scene.seaweed_spacing must be positive, got %v", c.Scene.SeaweedSpacing)
	}
	if c.Interaction.DoubleClickMS < 0 {
		return fmt.Errorf("interaction.double_click_ms must not be negative, got %d", c.Interaction.DoubleClickMS)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DoubleClickWindow = time.Duration(c.Interaction.DoubleClickMS) * time.Millisecond
	c.Derived.PollInterval = time.Duration(c.Store.PollInterval * float64(time.Second))

	// Fall back to lobster red when the color is unparseable
	c.Derived.ColorR, c.Derived.ColorG, c.Derived.ColorB = 0xe0, 0x40, 0x20
	if r, g, b, ok := drawing.ParseColor(c.Lobster.Color); ok {
		c.Derived.ColorR, c.Derived.ColorG, c.Derived.ColorB = r, g, b
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
