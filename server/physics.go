// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/SoftbearStudios/swell/server/world"
	"time"
)

// Visual regenerates the water surface for the current time.
func (h *Hub) Visual() {
	defer h.timeFunction("visual", time.Now())

	h.field.Update(h.seconds())
}

// Physics steps every body by ticks fixed physics steps.
func (h *Hub) Physics(ticks world.Ticks) {
	defer h.timeFunction("physics", time.Now())

	seconds := float32(h.physicsPeriod.Seconds())
	for t := world.Ticks(0); t < ticks; t++ {
		for _, buoy := range h.buoys {
			buoy.Step(seconds, h.gravity)
		}
	}
}
