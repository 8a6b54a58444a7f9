// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"math"
)

// Vec2f is a horizontal vector. When it describes a position on the water its
// Y component is the world Z axis.
type Vec2f struct {
	X float32 `json:"x" yaml:"x"`
	Y float32 `json:"y" yaml:"y"`
}

func (vec Vec2f) Sub(otherVec Vec2f) Vec2f {
	vec.X -= otherVec.X
	vec.Y -= otherVec.Y
	return vec
}

func (vec Vec2f) Distance(otherVec Vec2f) float32 {
	return vec.Sub(otherVec).Length()
}

func (vec Vec2f) Length() float32 {
	return math32.Hypot(vec.X, vec.Y)
}

func Lerp(a, b, factor float32) float32 {
	return a + (b-a)*factor
}

func (vec Vec2f) Ceil() Vec2f {
	// Use math.Ceil instead because it uses assembly
	vec.X = float32(math.Ceil(float64(vec.X)))
	vec.Y = float32(math.Ceil(float64(vec.Y)))
	return vec
}

func (vec Vec2f) Floor() Vec2f {
	// Use math.Floor instead because it uses assembly
	vec.X = float32(math.Floor(float64(vec.X)))
	vec.Y = float32(math.Floor(float64(vec.Y)))
	return vec
}

// Clamp clamps both components into [minimum, maximum].
func (vec Vec2f) Clamp(minimum, maximum float32) Vec2f {
	vec.X = clamp(vec.X, minimum, maximum)
	vec.Y = clamp(vec.Y, minimum, maximum)
	return vec
}

// XZ returns the horizontal components of a 3D vector.
func XZ(v mgl32.Vec3) Vec2f {
	return Vec2f{X: v[0], Y: v[2]}
}

// Vec3 lifts the vector onto the horizontal plane at height y.
func (vec Vec2f) Vec3(y float32) mgl32.Vec3 {
	return mgl32.Vec3{vec.X, y, vec.Y}
}
