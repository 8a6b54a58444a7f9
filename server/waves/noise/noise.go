// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package noise provides the periodic noise functions the water surface is
// synthesized from.
package noise

import (
	"fmt"
	"github.com/SoftbearStudios/swell/server/waves"
)

const (
	KindPerlin  = "perlin"
	KindSimplex = "simplex"

	// DefaultSeed is the seed used when none is configured.
	DefaultSeed = int64(56)
)

// New creates a noise source by kind name. An empty kind is Perlin.
func New(kind string, seed int64) (waves.Noise, error) {
	switch kind {
	case "", KindPerlin:
		return NewPerlin(seed), nil
	case KindSimplex:
		return NewSimplex(seed), nil
	default:
		return nil, fmt.Errorf("unknown noise kind %q", kind)
	}
}

func NewDefault() waves.Noise {
	return NewPerlin(DefaultSeed)
}
