// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads the server's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"github.com/SoftbearStudios/swell/server/buoyancy"
	"github.com/SoftbearStudios/swell/server/logger"
	"github.com/SoftbearStudios/swell/server/waves"
	"github.com/SoftbearStudios/swell/server/waves/noise"
	"github.com/SoftbearStudios/swell/server/world"
	"github.com/go-gl/mathgl/mgl32"
	"time"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Water   WaterConfig   `yaml:"water"`
	Physics PhysicsConfig `yaml:"physics"`
	Bodies  []BodyConfig  `yaml:"bodies"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	// Port is the HTTP port. Negative runs the simulation without serving.
	Port           int  `yaml:"port"`
	MaxConnections int  `yaml:"max_connections"`
	Cloud          bool `yaml:"cloud"`
}

type WaterConfig struct {
	Resolution int        `yaml:"resolution"`
	UVScale    float32    `yaml:"uv_scale"`
	Position   mgl32.Vec3 `yaml:"position"`
	Scale      mgl32.Vec3 `yaml:"scale"`
	// Damping calms the water around a point, usually what viewers look at.
	Damping world.Box      `yaml:"damping"`
	Octaves []waves.Octave `yaml:"octaves"`
	Noise   NoiseConfig    `yaml:"noise"`
}

type NoiseConfig struct {
	Kind string `yaml:"kind"`
	Seed int64  `yaml:"seed"`
}

type PhysicsConfig struct {
	Gravity mgl32.Vec3 `yaml:"gravity"`
	// VisualTick is how often the surface is regenerated.
	VisualTick time.Duration `yaml:"visual_tick"`
	// PhysicsTick is how often bodies are stepped.
	PhysicsTick time.Duration `yaml:"physics_tick"`
}

type BodyConfig struct {
	Name            string       `yaml:"name"`
	Position        mgl32.Vec3   `yaml:"position"`
	Anchors         []mgl32.Vec3 `yaml:"anchors"`
	Mass            float32      `yaml:"mass"`
	AirDrag         float32      `yaml:"air_drag"`
	WaterDrag       float32      `yaml:"water_drag"`
	AttachToSurface bool         `yaml:"attach_to_surface"`
	Drift           bool         `yaml:"drift"`
	DriftStrength   float32      `yaml:"drift_strength"`
	SmoothTime      float32      `yaml:"smooth_time"`
}

// DefaultBody returns a body with default mass and drags and no anchors.
// Bodies read from YAML start from it, so omitted fields keep these values.
func DefaultBody() BodyConfig {
	return BodyConfig{
		Mass:       1,
		AirDrag:    buoyancy.DefaultAirDrag,
		WaterDrag:  buoyancy.DefaultWaterDrag,
		SmoothTime: buoyancy.DefaultSmoothTime,
	}
}

type LoggingConfig struct {
	Level string            `yaml:"level"`
	File  logger.FileConfig `yaml:"file"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           8192,
			MaxConnections: 256,
		},
		Water: WaterConfig{
			Resolution: 10,
			UVScale:    2,
			Scale:      mgl32.Vec3{4, 1, 4},
			Damping: world.Box{
				Center: mgl32.Vec3{20, 0, 20},
				Extent: mgl32.Vec3{4, 10, 4},
			},
			Octaves: []waves.Octave{
				{TravelSpeed: world.Vec2f{X: 1, Y: 0.5}, Scale: world.Vec2f{X: 2, Y: 2}, Amplitude: 1},
				{TravelSpeed: world.Vec2f{X: 0.5, Y: 1}, Scale: world.Vec2f{X: 5, Y: 5}, Amplitude: 0.25, Alternate: true},
			},
			Noise: NoiseConfig{
				Kind: noise.KindPerlin,
				Seed: noise.DefaultSeed,
			},
		},
		Physics: PhysicsConfig{
			Gravity:     mgl32.Vec3{0, -9.81, 0},
			VisualTick:  world.VisualTickPeriod,
			PhysicsTick: world.PhysicsTickPeriod,
		},
		Bodies: []BodyConfig{
			{
				Name:     "buoy",
				Position: mgl32.Vec3{20, 2, 20},
				Anchors: []mgl32.Vec3{
					{-0.5, 0, -0.5},
					{0.5, 0, -0.5},
					{0.5, 0, 0.5},
					{-0.5, 0, 0.5},
				},
				Mass:      1,
				AirDrag:   buoyancy.DefaultAirDrag,
				WaterDrag: buoyancy.DefaultWaterDrag,
			},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks what the water and body constructors can't.
func (cfg *Config) Validate() error {
	if cfg.Server.MaxConnections < 1 {
		return fmt.Errorf("invalid max_connections: %d", cfg.Server.MaxConnections)
	}
	if cfg.Physics.VisualTick <= 0 || cfg.Physics.PhysicsTick <= 0 {
		return errors.New("tick periods must be positive")
	}
	if cfg.Water.Damping.Extent == (mgl32.Vec3{}) {
		return errors.New("damping extent is zero")
	}
	names := make(map[string]struct{}, len(cfg.Bodies))
	for i, body := range cfg.Bodies {
		if body.Name == "" {
			return fmt.Errorf("body %d has no name", i)
		}
		if _, ok := names[body.Name]; ok {
			return fmt.Errorf("duplicate body name %q", body.Name)
		}
		names[body.Name] = struct{}{}
		if len(body.Anchors) == 0 {
			return fmt.Errorf("body %q: %w", body.Name, buoyancy.ErrNoAnchors)
		}
	}
	return nil
}

// Options converts to the options of waves.New, creating the noise source.
func (water WaterConfig) Options() (waves.Options, error) {
	n, err := noise.New(water.Noise.Kind, water.Noise.Seed)
	if err != nil {
		return waves.Options{}, err
	}

	transform := world.NewTransform(water.Position)
	transform.Scale = water.Scale

	return waves.Options{
		Resolution: water.Resolution,
		UVScale:    water.UVScale,
		Transform:  transform,
		Octaves:    water.Octaves,
		Damping:    water.Damping,
		Noise:      n,
	}, nil
}

// Options converts to the options of buoyancy.New. Listeners are left to the caller.
func (body BodyConfig) Options() buoyancy.Options {
	return buoyancy.Options{
		Anchors:         body.Anchors,
		AirDrag:         body.AirDrag,
		WaterDrag:       body.WaterDrag,
		AttachToSurface: body.AttachToSurface,
		Drift:           body.Drift,
		DriftStrength:   body.DriftStrength,
		Mass:            body.Mass,
		SmoothTime:      body.SmoothTime,
	}
}

func (body BodyConfig) Transform() world.Transform {
	return world.NewTransform(body.Position)
}
