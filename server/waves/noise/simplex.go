// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"github.com/ojrac/opensimplex-go"
)

// Simplex samples OpenSimplex noise, which has fewer directional artifacts than
// Perlin noise at the cost of a softer look.
type Simplex struct {
	noise opensimplex.Noise32
}

func NewSimplex(seed int64) *Simplex {
	return &Simplex{
		noise: opensimplex.NewNormalized32(seed),
	}
}

// Sample implements waves.Noise.Sample.
func (s *Simplex) Sample(x, y float32) float32 {
	return clampUnit(float64(s.noise.Eval2(x, y)))
}
