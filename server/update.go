// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"time"
)

// Update sends an Update message to each Client.
func (h *Hub) Update() {
	defer h.timeFunction("update", time.Now())

	if h.clients.Len == 0 {
		return
	}

	// Shared by all clients, so allocated fresh every time.
	bodies := h.bodyUpdates()
	surface := h.field.Surface()

	var surfaceUpdate *SurfaceUpdate
	for client := h.clients.First; client != nil; client = client.Data().Next {
		if client.Data().Viewer.Surface {
			// Copy because the surface is rewritten by the update after next.
			surfaceUpdate = &SurfaceUpdate{
				Resolution: surface.Resolution(),
				Heights:    surface.AppendVertices(nil),
			}
			break
		}
	}

	for client := h.clients.First; client != nil; client = client.Data().Next {
		update := NewUpdate()
		update.Bodies = bodies
		update.Seconds = surface.Seconds()
		if client.Data().Viewer.Surface {
			update.Surface = surfaceUpdate
		}
		client.Send(update)
	}
}

func (h *Hub) bodyUpdates() []BodyUpdate {
	bodies := make([]BodyUpdate, len(h.buoys))
	for i, buoy := range h.buoys {
		rigid := buoy.Rigid()
		state := buoy.State()
		bodies[i] = BodyUpdate{
			Name:      buoy.Name,
			Position:  rigid.Position,
			Rotation:  rigid.Rotation,
			Velocity:  rigid.Velocity,
			WaterLine: state.WaterLine,
			Ripples:   state.Ripples,
			Submerged: state.Submerged,
		}
	}
	return bodies
}
