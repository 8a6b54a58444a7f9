// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package buoyancy

import (
	"github.com/go-gl/mathgl/mgl32"
)

// SmoothDamp moves current towards target like a critically damped spring that
// reaches it in roughly smoothTime seconds. velocity carries the spring state
// between calls. The result never overshoots target.
func SmoothDamp(current, target mgl32.Vec3, velocity *mgl32.Vec3, smoothTime, seconds float32) mgl32.Vec3 {
	if smoothTime < 0.0001 {
		smoothTime = 0.0001
	}
	omega := 2 / smoothTime

	// Taylor approximation of exp(-x)
	x := omega * seconds
	exp := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := current.Sub(target)
	temp := velocity.Add(change.Mul(omega)).Mul(seconds)
	*velocity = velocity.Sub(temp.Mul(omega)).Mul(exp)
	output := target.Add(change.Add(temp).Mul(exp))

	if target.Sub(current).Dot(output.Sub(target)) > 0 {
		*velocity = mgl32.Vec3{}
		return target
	}
	return output
}
