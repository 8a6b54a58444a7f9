// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/SoftbearStudios/swell/server/logger"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Make sure to register in init function
type (
	// Focus moves the calm area of the water to Position, usually where the
	// viewer's camera is.
	Focus struct {
		Position mgl32.Vec3 `json:"position"`
	}

	// InvalidInbound means invalid message type from client (possibly out of date).
	// NOTE: Do not register, otherwise client could send type "invalidInbound"
	InvalidInbound struct {
		messageType messageType
	}

	// Subscribe toggles receiving surface heights with each Update.
	Subscribe struct {
		Surface bool `json:"surface"`
	}

	// Trace sends debug info.
	Trace struct {
		FPS float32 `json:"fps"`
	}
)

func (data Focus) Process(h *Hub, _ Client, viewer *Viewer) {
	p := data.Position
	if !finite(p[0]) || !finite(p[1]) || !finite(p[2]) {
		return
	}
	viewer.Focus = &p
	h.field.SetDampingCenter(p)
}

func (data Subscribe) Process(_ *Hub, _ Client, viewer *Viewer) {
	viewer.Surface = data.Surface
}

func (trace Trace) Process(_ *Hub, _ Client, viewer *Viewer) {
	if !finite(trace.FPS) || trace.FPS < 0 {
		return
	}
	viewer.FPS = trace.FPS
}

func (data InvalidInbound) Process(_ *Hub, _ Client, _ *Viewer) {
	logger.Debug("invalid message type received", zap.String("type", string(data.messageType)))
}

func finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
