// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package waves

import (
	"github.com/SoftbearStudios/swell/server/world"
)

// Triangles returns the vertex indices of the surface, two triangles per cell.
// The topology never changes after New.
func (f *Field) Triangles() []int32 {
	n := f.resolution
	stride := n + 1
	index := func(x, z int) int32 {
		return int32(x*stride + z)
	}

	triangles := make([]int32, 0, n*n*6)
	for x := 0; x < n; x++ {
		for z := 0; z < n; z++ {
			triangles = append(triangles,
				index(x, z), index(x+1, z+1), index(x+1, z),
				index(x, z), index(x, z+1), index(x+1, z+1),
			)
		}
	}
	return triangles
}

// UVs returns texture coordinates per vertex. The texture repeats every
// UVScale cells, mirrored on every other repeat so edges line up.
func (f *Field) UVs() []world.Vec2f {
	stride := f.resolution + 1
	uvs := make([]world.Vec2f, stride*stride)

	for x := 0; x <= f.resolution; x++ {
		for z := 0; z <= f.resolution; z++ {
			uvs[x*stride+z] = world.Vec2f{
				X: mirror(float32(x) / f.uvScale),
				Y: mirror(float32(z) / f.uvScale),
			}
		}
	}
	return uvs
}

func mirror(f float32) float32 {
	// Same as C style fmod for non-negative f
	f -= float32(int(f/2)) * 2
	if f <= 1 {
		return f
	}
	return 2 - f
}
