// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package buoyancy

import (
	"github.com/go-gl/mathgl/mgl32"
)

// drift is the horizontal force that carries the body along with the fastest
// traveling octave. It is scaled by 1 + drag so the body keeps drifting at a
// similar pace in and out of the water.
func (b *Body) drift() mgl32.Vec3 {
	speed := b.water.DominantSpeed().Vec2f()
	factor := (1 + b.rigid.Drag) * b.options.DriftStrength
	return speed.Vec3(0).Mul(factor)
}
