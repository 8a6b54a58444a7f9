// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package waves

import (
	"github.com/SoftbearStudios/swell/server/world"
	"github.com/go-gl/mathgl/mgl32"
)

// detEpsilon is the smallest determinant, relative to the squared trace of the
// scatter matrix, that still describes a plane.
const detEpsilon = 1e-6

// EstimateNormal fits a plane through points by least squares and returns its
// upward facing unit normal. Fewer than 3 points, or points that do not span a
// plane (coincident, collinear), yield world.Up.
func EstimateNormal(points []mgl32.Vec3) mgl32.Vec3 {
	if len(points) < 3 {
		return world.Up
	}

	center := world.Centroid(points)

	var xx, xy, xz, yy, yz, zz float32
	for _, p := range points {
		r := p.Sub(center)
		xx += r[0] * r[0]
		xy += r[0] * r[1]
		xz += r[0] * r[2]
		yy += r[1] * r[1]
		yz += r[1] * r[2]
		zz += r[2] * r[2]
	}

	detX := yy*zz - yz*yz
	detY := xx*zz - xz*xz
	detZ := xx*yy - xy*xy

	trace := xx + yy + zz
	detMax := detX
	if detY > detMax {
		detMax = detY
	}
	if detZ > detMax {
		detMax = detZ
	}
	if !(detMax > detEpsilon*trace*trace) {
		return world.Up
	}

	var normal mgl32.Vec3
	switch {
	case detX > detY && detX > detZ:
		normal = mgl32.Vec3{detX, xz*yz - xy*zz, xy*yz - xz*yy}
	case detY > detZ:
		normal = mgl32.Vec3{xz*yz - xy*zz, detY, xy*xz - yz*xx}
	default:
		normal = mgl32.Vec3{xy*yz - xz*yy, xy*xz - yz*xx, detZ}
	}

	normal = world.Norm(normal)
	if normal[1] < 0 {
		normal = normal.Mul(-1)
	}
	return normal
}
