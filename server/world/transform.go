// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Transform places an object in the world. A zero Transform is not valid
// (zero scale, zero quaternion); use NewTransform.
type Transform struct {
	Position mgl32.Vec3 `json:"position"`
	Rotation mgl32.Quat `json:"-"`
	Scale    mgl32.Vec3 `json:"-"`
}

// NewTransform returns an unrotated, unit scale Transform at position.
func NewTransform(position mgl32.Vec3) Transform {
	return Transform{
		Position: position,
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// Point converts a local space point to world space.
func (transform Transform) Point(local mgl32.Vec3) mgl32.Vec3 {
	scaled := mgl32.Vec3{local[0] * transform.Scale[0], local[1] * transform.Scale[1], local[2] * transform.Scale[2]}
	return transform.Position.Add(transform.Rotation.Rotate(scaled))
}

// Up is the transform's local +Y axis in world space.
func (transform Transform) Up() mgl32.Vec3 {
	return transform.Rotation.Rotate(Up)
}

// Unscale converts a world space point into the transform's local space,
// ignoring rotation. waves.New rejects rotated water surfaces.
func (transform Transform) Unscale(point mgl32.Vec3) mgl32.Vec3 {
	d := point.Sub(transform.Position)
	return mgl32.Vec3{d[0] / transform.Scale[0], d[1] / transform.Scale[1], d[2] / transform.Scale[2]}
}

// Translate moves the transform by a world space offset.
func (transform Transform) Translate(offset mgl32.Vec3) Transform {
	transform.Position = transform.Position.Add(offset)
	return transform
}
