// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package waves

import (
	"github.com/SoftbearStudios/swell/server/world"
	"github.com/chewxy/math32"
)

// Speed is the fastest travel speed along each axis over all octaves.
type Speed struct {
	XDir float32 `json:"xDir"` // -1 or 1
	X    float32 `json:"x"`    // >= 0
	YDir float32 `json:"yDir"` // -1 or 1
	Y    float32 `json:"y"`    // >= 0
}

// DominantSpeed finds the fastest travel speed per axis. Directions default
// to 1 when nothing travels along an axis.
func DominantSpeed(octaves []Octave) Speed {
	speed := Speed{XDir: 1, YDir: 1}
	for _, o := range octaves {
		if x := math32.Abs(o.TravelSpeed.X); x > speed.X {
			speed.X = x
			speed.XDir = sign(o.TravelSpeed.X)
		}
		if y := math32.Abs(o.TravelSpeed.Y); y > speed.Y {
			speed.Y = y
			speed.YDir = sign(o.TravelSpeed.Y)
		}
	}
	return speed
}

// Vec2f is the signed dominant speed, Y being the world Z axis.
func (speed Speed) Vec2f() world.Vec2f {
	return world.Vec2f{X: speed.XDir * speed.X, Y: speed.YDir * speed.Y}
}

func sign(f float32) float32 {
	if f < 0 {
		return -1
	}
	return 1
}
