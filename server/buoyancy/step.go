// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package buoyancy

import (
	"github.com/SoftbearStudios/swell/server/waves"
	"github.com/SoftbearStudios/swell/server/world"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// sample projects every anchor onto the water, writing into points, and
// returns a State with WaterLine, Submerged and Points set.
func (b *Body) sample(points []mgl32.Vec3) (state State) {
	transform := b.rigid.Transform
	inv := 1 / float32(len(b.options.Anchors))

	for i, anchor := range b.options.Anchors {
		pos := transform.Point(anchor)
		height := b.water.Height(pos)
		points[i] = mgl32.Vec3{pos[0], height, pos[2]}
		state.WaterLine += height * inv
		if height > pos[1] {
			state.Submerged = true
		}
	}

	state.Points = points
	return
}

// Step advances the body by seconds under gravity. It must be called once per
// physics tick.
func (b *Body) Step(seconds float32, gravity mgl32.Vec3) {
	// Write into the points buffer the previous state isn't using.
	points := b.points[0]
	if len(b.state.Points) > 0 && &b.state.Points[0] == &points[0] {
		points = b.points[1]
	}

	next := b.sample(points)
	next.SmoothedUp = b.state.SmoothedUp
	next.UpVelocity = b.state.UpVelocity
	delta := next.WaterLine - b.state.WaterLine

	rigid := &b.rigid
	acceleration := gravity
	rigid.Drag = b.options.AirDrag

	if b.Center()[1] < next.WaterLine {
		rigid.Drag = b.options.WaterDrag

		if b.options.AttachToSurface {
			rigid.Position[1] = next.WaterLine - b.centerOffset[1]
			rigid.Velocity[1] = 0
		} else {
			// Push up
			acceleration = gravity.Mul(-2)
		}

		rigid.Position[1] += delta * riseFactor
	}

	center := b.Center()
	height := center[1] - next.WaterLine
	next.Ripples = height < RippleHeight

	rigid.AddForce(acceleration.Mul(world.Clamp01(math32.Abs(height))))

	if b.options.Drift {
		rigid.AddForce(b.drift())
	}

	if next.Submerged {
		target := waves.EstimateNormal(next.Points)
		up := rigid.Up()
		smoothed := SmoothDamp(up, target, &next.UpVelocity, b.options.SmoothTime, seconds)
		next.SmoothedUp = world.Norm(smoothed)

		rigid.Rotation = world.FromToRotation(up, next.SmoothedUp).Mul(rigid.Rotation).Normalize()
		rigid.AngularVelocity = mgl32.Vec3{}
	}

	rigid.Integrate(seconds)

	previous := b.state.Ripples
	b.state = next
	if next.Ripples != previous && b.options.OnRipples != nil {
		b.options.OnRipples(next.Ripples)
	}
}
