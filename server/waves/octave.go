// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package waves

import (
	"github.com/SoftbearStudios/swell/server/world"
	"github.com/chewxy/math32"
)

// Noise is a periodic 2D noise function.
type Noise interface {
	// Sample returns a value in [0, 1).
	Sample(x, y float32) float32
}

// Octave is one layer of periodic displacement of the surface.
type Octave struct {
	// TravelSpeed scrolls the noise field. Alternating octaves use its
	// magnitude as a phase rate instead.
	TravelSpeed world.Vec2f `json:"travelSpeed" yaml:"travel_speed"`
	// Scale multiplies the spatial frequency per axis.
	Scale     world.Vec2f `json:"scale" yaml:"scale"`
	Amplitude float32     `json:"amplitude" yaml:"amplitude"`
	// Alternate selects a standing, phase animated cosine instead of a
	// traveling noise field.
	Alternate bool `json:"alternate" yaml:"alternate"`
}

// Contribution is the elevation this octave adds to lattice vertex (x, z) of a
// grid of resolution n at time seconds, attenuated by damping.
func (o Octave) Contribution(noise Noise, x, z int, n, seconds, damping float32) float32 {
	fx, fz := float32(x), float32(z)
	height := o.Amplitude * damping

	if o.Alternate {
		phase := noise.Sample(fx*o.Scale.X/n, fz*o.Scale.Y/n) * math32.Pi * 2
		return math32.Cos(phase+o.TravelSpeed.Length()*seconds) * height
	}

	v := noise.Sample((fx*o.Scale.X+seconds*o.TravelSpeed.X)/n, (fz*o.Scale.Y+seconds*o.TravelSpeed.Y)/n)
	return (v - 0.5) * height
}
