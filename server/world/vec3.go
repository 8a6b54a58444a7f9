// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Up is the canonical up vector (+Y).
var Up = mgl32.Vec3{0, 1, 0}

// normEpsilon is the squared length below which a vector has no direction.
const normEpsilon = 1e-12

// Norm normalizes v, or returns Up if v has no usable direction.
func Norm(v mgl32.Vec3) mgl32.Vec3 {
	lenSq := v.LenSqr()
	if !(lenSq > normEpsilon) { // Also catches NaN
		return Up
	}
	return v.Normalize()
}

// Centroid returns the arithmetic mean of points, or the zero vector if there are none.
func Centroid(points []mgl32.Vec3) (center mgl32.Vec3) {
	if len(points) == 0 {
		return
	}
	inv := 1.0 / float32(len(points))
	for _, p := range points {
		center = center.Add(p.Mul(inv))
	}
	return
}

// FromToRotation is the shortest arc rotation taking direction from to direction to.
func FromToRotation(from, to mgl32.Vec3) mgl32.Quat {
	from, to = Norm(from), Norm(to)
	if from.Dot(to) >= 1-1e-6 {
		return mgl32.QuatIdent()
	}
	return mgl32.QuatBetweenVectors(from, to)
}
