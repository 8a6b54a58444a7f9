// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"github.com/aquilax/go-perlin"
	"math"
)

// Perlin samples single octave gradient noise. Layering is done by
// waves.Octave so only one octave is generated here.
type Perlin struct {
	perlin *perlin.Perlin
}

// NewPerlin creates a new Perlin with a seed.
func NewPerlin(seed int64) *Perlin {
	return &Perlin{
		perlin: perlin.NewPerlin(2, 2, 1, seed),
	}
}

// Sample implements waves.Noise.Sample.
func (p *Perlin) Sample(x, y float32) float32 {
	// Raw 2D gradient noise stays within ±1/√2
	v := p.perlin.Noise2D(float64(x), float64(y))*math.Sqrt2*0.5 + 0.5
	return clampUnit(v)
}
