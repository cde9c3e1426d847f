package game

import (
	"image/color"

	"github.com/pthm-cable/reef/config"
	"github.com/pthm-cable/reef/renderer"
	"github.com/pthm-cable/reef/systems"
	"github.com/pthm-cable/reef/telemetry"
)

// Default canvas dimensions
const (
	ScreenWidth  = 1280
	ScreenHeight = 800
)

// defaultColor is the stroke override when none is configured.
var defaultColor = color.RGBA{R: 0xe0, G: 0x40, B: 0x20, A: 0xff}

// Options holds configuration for game initialization.
type Options struct {
	Params systems.Params
	Scene  systems.SceneParams
	Color  color.RGBA
	Seed   int64

	Width, Height float64

	// Canvas is the render surface; nil runs headless.
	Canvas renderer.Canvas

	// Telemetry
	PerfWindow  int
	StatsWindow float64
	Output      *telemetry.OutputManager
	LogStats    bool
	OnStats     func(telemetry.FrameStats)
}

// DefaultOptions returns options using the stock parameters.
func DefaultOptions() Options {
	return Options{
		Params:      systems.DefaultParams(),
		Scene:       systems.DefaultSceneParams(),
		Color:       defaultColor,
		Seed:        42,
		Width:       ScreenWidth,
		Height:      ScreenHeight,
		PerfWindow:  120,
		StatsWindow: 10,
	}
}

// OptionsFromConfig maps loaded configuration onto game options.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := DefaultOptions()
	opts.Params = ParamsFromConfig(cfg)
	opts.Scene = SceneParamsFromConfig(cfg)
	opts.Color = color.RGBA{R: cfg.Derived.ColorR, G: cfg.Derived.ColorG, B: cfg.Derived.ColorB, A: 0xff}
	if cfg.Scene.Seed != 0 {
		opts.Seed = cfg.Scene.Seed
	}
	opts.Width = float64(cfg.Screen.Width)
	opts.Height = float64(cfg.Screen.Height)
	opts.PerfWindow = cfg.Telemetry.PerfWindow
	opts.StatsWindow = cfg.Telemetry.StatsWindow
	return opts
}

// ParamsFromConfig returns walker parameters from configuration.
func ParamsFromConfig(cfg *config.Config) systems.Params {
	l := cfg.Lobster
	return systems.Params{
		Width:         l.Width,
		Height:        l.Height,
		BaseSpeed:     l.BaseSpeed,
		SpeedVariance: l.SpeedVariance,
		Gravity:       l.Gravity,
		JumpVelocity:  l.JumpVelocity,
		JumpEpsilon:   l.JumpEpsilon,
		GaitRate:      l.GaitRate,
		MaxDT:         l.MaxDT,
		FloorRatio:    cfg.Scene.FloorRatio,
	}
}

// SceneParamsFromConfig returns decoration parameters from configuration.
func SceneParamsFromConfig(cfg *config.Config) systems.SceneParams {
	s := cfg.Scene
	return systems.SceneParams{
		BubbleCount:    s.BubbleCount,
		SeaweedSpacing: s.SeaweedSpacing,
		SeaweedExtra:   s.SeaweedExtra,
		SandSpeckles:   s.SandSpeckles,
		LightRays:      s.LightRays,
	}
}
