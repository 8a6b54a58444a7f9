// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package waves

import (
	"github.com/SoftbearStudios/swell/server/world"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// tieEpsilon is added to the distance of the last corner so at least one
	// corner always carries weight.
	tieEpsilon = 1e-4
	// divEpsilon guards the division by the sum of weights.
	divEpsilon = 1e-12
)

// Surface is an immutable snapshot of the vertex elevations of a Field.
// All of its methods are safe to call concurrently.
type Surface struct {
	resolution int
	transform  world.Transform
	seconds    float32
	// vertices are local space elevations indexed by x*(resolution+1)+z.
	vertices []float32
}

func (s *Surface) index(x, z int) int {
	return x*(s.resolution+1) + z
}

// At returns the local space elevation of lattice vertex (x, z).
func (s *Surface) At(x, z int) float32 {
	return s.vertices[s.index(x, z)]
}

// Resolution is the number of cells along each axis.
func (s *Surface) Resolution() int {
	return s.resolution
}

// Seconds is the simulation time the surface was synthesized for.
func (s *Surface) Seconds() float32 {
	return s.seconds
}

// AppendVertices appends the local elevations to buf.
func (s *Surface) AppendVertices(buf []float32) []float32 {
	return append(buf, s.vertices...)
}

// corners returns the up to 4 lattice points surrounding a local position,
// clamped to the grid, and their interpolation weights.
func (s *Surface) corners(local world.Vec2f) (corners [4]world.Vec2f, weights [4]float32) {
	n := float32(s.resolution)
	lo := local.Floor()
	hi := local.Ceil()

	corners = [4]world.Vec2f{
		{X: lo.X, Y: lo.Y},
		{X: lo.X, Y: hi.Y},
		{X: hi.X, Y: lo.Y},
		{X: hi.X, Y: hi.Y},
	}

	var distances [4]float32
	for i := range corners {
		corners[i] = corners[i].Clamp(0, n)
		distances[i] = corners[i].Distance(local)
	}

	maxDist := distances[3] + tieEpsilon
	for _, d := range distances[:3] {
		if d > maxDist {
			maxDist = d
		}
	}

	for i, d := range distances {
		weights[i] = maxDist - d
	}
	return
}

// Height returns the world space elevation of the surface below (or above) pos.
// Positions outside the grid sample its nearest edge.
func (s *Surface) Height(pos mgl32.Vec3) float32 {
	local := world.XZ(s.transform.Unscale(pos))
	corners, weights := s.corners(local)

	var height, total float32
	for i, c := range corners {
		height += s.At(int(c.X), int(c.Y)) * weights[i]
		total += weights[i]
	}

	return height * s.transform.Scale[1] / (total + divEpsilon)
}

// Vertex returns the world space position of lattice vertex (x, z).
func (s *Surface) Vertex(x, z int) mgl32.Vec3 {
	return s.transform.Point(mgl32.Vec3{float32(x), s.At(x, z), float32(z)})
}
