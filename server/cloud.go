// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"fmt"
	"github.com/SoftbearStudios/swell/server/logger"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"time"
)

// Cloud is where the server announces itself and publishes snapshots.
type Cloud interface {
	fmt.Stringer
	UpdateServer(viewers int) error
	UploadSurfaceSnapshot(data []byte) error // takes an encoded PNG
	UpdatePeriod() time.Duration
}

// Offline is a Cloud that does nothing, for running without one.
type Offline struct{}

func (offline Offline) String() string {
	return "offline"
}

func (offline Offline) UpdateServer(viewers int) error {
	return nil
}

func (offline Offline) UploadSurfaceSnapshot(data []byte) error {
	return nil
}

func (offline Offline) UpdatePeriod() time.Duration {
	return time.Hour
}

type (
	status struct {
		Viewers int          `json:"viewers"`
		Seconds float32      `json:"seconds"`
		Damping mgl32.Vec3   `json:"damping"`
		Bodies  []statusBody `json:"bodies"`
	}

	statusBody struct {
		Name      string     `json:"name"`
		Position  mgl32.Vec3 `json:"position"`
		WaterLine float32    `json:"waterLine"`
		Ripples   bool       `json:"ripples"`
	}
)

// Status refreshes the JSON served by ServeIndex.
func (h *Hub) Status() {
	s := status{
		Viewers: h.clients.Len,
		Seconds: h.field.Surface().Seconds(),
		Damping: h.field.Damping().Center,
		Bodies:  make([]statusBody, len(h.buoys)),
	}
	for i, buoy := range h.buoys {
		s.Bodies[i] = statusBody{
			Name:      buoy.Name,
			Position:  buoy.Rigid().Position,
			WaterLine: buoy.WaterLine(),
			Ripples:   buoy.Ripples(),
		}
	}

	buf, err := JSON.Marshal(s)
	if err != nil {
		logger.Error("error marshaling status", zap.Error(err))
		return
	}
	h.statusJSON.Store(buf)
}

// Cloud tells the cloud this server is still alive.
func (h *Hub) Cloud() {
	logger.Debug("updating cloud", zap.Stringer("cloud", h.cloud))

	viewers := h.clients.Len
	go func() {
		if err := h.cloud.UpdateServer(viewers); err != nil {
			logger.Warn("error updating server", zap.Error(err))
		}
	}()
}
