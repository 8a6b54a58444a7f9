// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package buoyancy

import (
	"github.com/SoftbearStudios/swell/server/world"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultAngularDrag matches the usual default of game physics engines.
const DefaultAngularDrag = 0.05

// RigidBody is a minimal semi-implicit Euler rigid body. It has no collision;
// the only thing it interacts with is the water, through Body.
type RigidBody struct {
	world.Transform
	Velocity        mgl32.Vec3 `json:"velocity"`
	AngularVelocity mgl32.Vec3 `json:"angularVelocity"`
	Mass            float32    `json:"-"`
	Drag            float32    `json:"-"`
	AngularDrag     float32    `json:"-"`

	// force is accumulated until the next Integrate.
	force mgl32.Vec3
}

// AddForce accumulates a world space force for the next Integrate.
func (r *RigidBody) AddForce(force mgl32.Vec3) {
	r.force = r.force.Add(force)
}

// Integrate advances the body by seconds and clears accumulated forces.
func (r *RigidBody) Integrate(seconds float32) {
	r.Velocity = r.Velocity.Add(r.force.Mul(seconds / r.Mass))
	r.Velocity = r.Velocity.Mul(1 / (1 + r.Drag*seconds))
	r.Position = r.Position.Add(r.Velocity.Mul(seconds))

	r.AngularVelocity = r.AngularVelocity.Mul(1 / (1 + r.AngularDrag*seconds))
	if speed := r.AngularVelocity.Len(); speed > 0 {
		spin := mgl32.QuatRotate(speed*seconds, r.AngularVelocity.Mul(1/speed))
		r.Rotation = spin.Mul(r.Rotation).Normalize()
	}

	r.force = mgl32.Vec3{}
}
