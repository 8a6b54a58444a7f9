// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package buoyancy floats rigid bodies on a water surface.
package buoyancy

import (
	"errors"
	"fmt"
	"github.com/SoftbearStudios/swell/server/waves"
	"github.com/SoftbearStudios/swell/server/world"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultAirDrag    = 1
	DefaultWaterDrag  = 10
	DefaultSmoothTime = 0.2

	// RippleHeight is how far above the waterline a body's center may be
	// and still make ripples.
	RippleHeight = 0.75
	// riseFactor is how much of the waterline's movement a submerged body follows directly.
	riseFactor = 0.9
)

var (
	ErrNoAnchors = errors.New("buoyancy: at least one anchor is required")
	ErrMass      = errors.New("buoyancy: mass must be positive")
)

// Water is the surface a Body floats on. *waves.Field implements it.
type Water interface {
	Height(pos mgl32.Vec3) float32
	DominantSpeed() waves.Speed
}

// RippleListener is notified when a body starts or stops making ripples.
type RippleListener func(ripples bool)

type Options struct {
	// Anchors are local space points the water is sampled at. At least 3
	// are needed to align the body with the surface.
	Anchors   []mgl32.Vec3
	AirDrag   float32
	WaterDrag float32
	// AttachToSurface pins the body to the waterline while submerged instead
	// of pushing it up.
	AttachToSurface bool
	// Drift pushes the body along the dominant wave direction, scaled by
	// DriftStrength.
	Drift         bool
	DriftStrength float32
	Mass          float32
	// SmoothTime is the time it takes the body's up vector to follow the surface.
	SmoothTime float32
	OnRipples  RippleListener
}

// State is the rolling simulation state of a Body, replaced once per Step.
type State struct {
	WaterLine float32 `json:"waterLine"`
	// SmoothedUp is the up vector the body was last rotated towards.
	SmoothedUp mgl32.Vec3 `json:"smoothedUp"`
	// UpVelocity is the SmoothDamp velocity of SmoothedUp.
	UpVelocity mgl32.Vec3 `json:"-"`
	// Submerged is set if any anchor was below the water.
	Submerged bool `json:"submerged"`
	// Ripples is set while the body is at most RippleHeight above the waterline.
	Ripples bool `json:"ripples"`
	// Points are the anchors' positions projected onto the water. Only valid
	// until the next Step.
	Points []mgl32.Vec3 `json:"-"`
}

// Body is a rigid body floating on Water.
// It is not safe for concurrent use.
type Body struct {
	water   Water
	options Options
	rigid   RigidBody
	// centerOffset is the centroid of the anchors relative to the body position,
	// in world space, fixed at creation.
	centerOffset mgl32.Vec3
	state        State
	points       [2][]mgl32.Vec3
}

// New creates a Body floating on water at transform.
func New(water Water, transform world.Transform, options Options) (*Body, error) {
	if len(options.Anchors) == 0 {
		return nil, ErrNoAnchors
	}
	if options.Mass == 0 {
		options.Mass = 1
	}
	if !(options.Mass > 0) {
		return nil, fmt.Errorf("%w: %f", ErrMass, options.Mass)
	}
	if options.SmoothTime <= 0 {
		options.SmoothTime = DefaultSmoothTime
	}
	options.Anchors = append([]mgl32.Vec3(nil), options.Anchors...)

	b := &Body{
		water:   water,
		options: options,
		rigid: RigidBody{
			Transform:   transform,
			Mass:        options.Mass,
			Drag:        options.AirDrag,
			AngularDrag: DefaultAngularDrag,
		},
	}

	n := len(options.Anchors)
	b.points[0] = make([]mgl32.Vec3, n)
	b.points[1] = make([]mgl32.Vec3, n)

	anchors := b.points[0]
	for i, anchor := range options.Anchors {
		anchors[i] = transform.Point(anchor)
	}
	b.centerOffset = world.Centroid(anchors).Sub(transform.Position)

	// Start at the current waterline so the first step doesn't see a jump.
	b.state = b.sample(b.points[1])
	b.state.SmoothedUp = transform.Up()
	return b, nil
}

// Center is the centroid of the anchors in world space.
func (b *Body) Center() mgl32.Vec3 {
	return b.rigid.Position.Add(b.centerOffset)
}

// CenterOffset is the centroid of the anchors relative to the body position.
func (b *Body) CenterOffset() mgl32.Vec3 {
	return b.centerOffset
}

func (b *Body) Transform() world.Transform {
	return b.rigid.Transform
}

// Rigid exposes the rigid body so the host can apply forces or teleport it.
func (b *Body) Rigid() *RigidBody {
	return &b.rigid
}

func (b *Body) State() State {
	return b.state
}

func (b *Body) WaterLine() float32 {
	return b.state.WaterLine
}

// Ripples reports whether the body is near or below the waterline.
func (b *Body) Ripples() bool {
	return b.state.Ripples
}

func (b *Body) Options() Options {
	return b.options
}
