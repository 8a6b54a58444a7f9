// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/SoftbearStudios/swell/server/logger"
	"go.uber.org/zap"
	"net/http"
)

// ServeIndex serves the status JSON.
func (h *Hub) ServeIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")
	buf, ok := h.statusJSON.Load().([]byte)
	if ok {
		_, _ = w.Write(buf)
	}
}

// ServeSurface serves the last surface snapshot as a PNG.
func (h *Hub) ServeSurface(w http.ResponseWriter, r *http.Request) {
	buf, ok := h.surfacePNG.Load().([]byte)
	if !ok {
		http.Error(w, "no snapshot yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(buf)
}

// ServeSocket upgrades to a websocket that receives Updates.
func (h *Hub) ServeSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Debug("upgrade error", zap.Error(err))
		return
	}

	h.register <- NewSocketClient(conn)
}
