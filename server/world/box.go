// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Box is an axis aligned box described by its center and half extents.
type Box struct {
	Center mgl32.Vec3 `json:"center" yaml:"center"`
	Extent mgl32.Vec3 `json:"extent" yaml:"extent"`
}

// Contains tests if point is inside the box. Points exactly on a face are inside.
func (b Box) Contains(point mgl32.Vec3) bool {
	return math32.Abs(point[0]-b.Center[0]) <= b.Extent[0] &&
		math32.Abs(point[1]-b.Center[1]) <= b.Extent[1] &&
		math32.Abs(point[2]-b.Center[2]) <= b.Extent[2]
}

// Moved returns a copy of the box centered at center.
func (b Box) Moved(center mgl32.Vec3) Box {
	b.Center = center
	return b
}
