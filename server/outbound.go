// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/go-gl/mathgl/mgl32"
	"sync"
)

type (
	// BodyUpdate is a view of a floating body.
	BodyUpdate struct {
		Name      string     `json:"name"`
		Position  mgl32.Vec3 `json:"position"`
		Rotation  mgl32.Quat `json:"rotation"`
		Velocity  mgl32.Vec3 `json:"velocity"`
		WaterLine float32    `json:"waterLine"`
		Ripples   bool       `json:"ripples,omitempty"`
		Submerged bool       `json:"submerged,omitempty"`
	}

	// SurfaceUpdate is a copy of the water surface elevations. Heights are
	// indexed x*(Resolution+1)+z, in local (unscaled) units.
	SurfaceUpdate struct {
		Resolution int       `json:"resolution"`
		Heights    []float32 `json:"heights"`
	}

	// Update is sent to every client each visual tick.
	// Bodies and Surface are shared between clients and must not be modified.
	Update struct {
		Bodies  []BodyUpdate   `json:"bodies"`
		Surface *SurfaceUpdate `json:"surface,omitempty"`
		// Seconds is the simulation time of the surface.
		Seconds float32 `json:"seconds"`
	}
)

var updatePool = sync.Pool{
	New: func() interface{} {
		return &Update{}
	},
}

// NewUpdate gets an Update from the pool.
func NewUpdate() *Update {
	return updatePool.Get().(*Update)
}

func (update *Update) Pool() {
	*update = Update{}
	updatePool.Put(update)
}
