// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"bytes"
	"github.com/SoftbearStudios/swell/server/logger"
	"github.com/nfnt/resize"
	"go.uber.org/zap"
	"image/png"
	"runtime"
	"time"
)

// Debug logs debugging info.
func (h *Hub) Debug() {
	if !logger.Log.Core().Enabled(zap.DebugLevel) {
		// Still reset so averages don't span multiple periods.
		for i := range h.funcBenches {
			h.funcBenches[i].reset()
		}
		return
	}

	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	var (
		fps      float32
		fpsCount int // Can be less than the number of clients that haven't sent a trace yet
	)
	for client := h.clients.First; client != nil; client = client.Data().Next {
		if viewer := &client.Data().Viewer; viewer.FPS != 0 {
			fps += viewer.FPS
			fpsCount++
		}
	}
	if fpsCount > 0 {
		// Average
		fps /= float32(fpsCount)
	}

	fields := []zap.Field{
		zap.Stringer("cloud", h.cloud),
		zap.Uint64("heapInUseMB", stats.HeapInuse/1e6),
		zap.Uint64("nextGCMB", stats.NextGC/1e6),
		zap.Int("clients", h.clients.Len),
		zap.Float32("fps", fps),
		zap.Float32("seconds", h.field.Surface().Seconds()),
	}

	// Function benchmarks
	var totalDuration time.Duration
	for i := range h.funcBenches {
		bench := &h.funcBenches[i]
		duration := bench.reset()
		totalDuration += duration
		fields = append(fields, zap.Duration(bench.name, duration))
	}
	fields = append(fields, zap.Duration("total", totalDuration))

	logger.Debug("hub", fields...)

	for _, buoy := range h.buoys {
		state := buoy.State()
		logger.Debug("body",
			zap.String("name", buoy.Name),
			zap.Float32s("position", buoy.Rigid().Position[:]),
			zap.Float32("waterLine", state.WaterLine),
			zap.Bool("submerged", state.Submerged),
			zap.Bool("ripples", state.Ripples),
		)
	}
}

// SnapshotSurface renders a picture of the water for ServeSurface and
// uploads it to the cloud.
func (h *Hub) SnapshotSurface() {
	defer h.timeFunction("snapshot", time.Now())

	buf, err := h.renderSurface()
	if err != nil {
		logger.Warn("error rendering surface", zap.Error(err))
		return
	}
	h.surfacePNG.Store(buf)

	if _, offline := h.cloud.(Offline); offline {
		return
	}

	go func() {
		if err := h.cloud.UploadSurfaceSnapshot(buf); err != nil {
			logger.Warn("error uploading surface snapshot", zap.Error(err))
		}
	}()
}

// snapshotSize is the width and height of surface snapshots in pixels.
const snapshotSize = 256

// renderSurface encodes the current surface as a PNG, scaled up from one pixel
// per vertex.
func (h *Hub) renderSurface() ([]byte, error) {
	img := resize.Resize(snapshotSize, snapshotSize, h.field.Surface().Render(h.field.Peak()), resize.Bilinear)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// funcBench is a benchmark of a core function.
type funcBench struct {
	name     string
	duration time.Duration
	runs     int
}

// reset resets the benchmark and returns the average duration
func (bench *funcBench) reset() time.Duration {
	if bench.runs == 0 {
		return 0
	}
	average := bench.duration / time.Duration(bench.runs)
	bench.duration = 0
	bench.runs = 0
	return average
}

// timeFunction times a function.
// defer timeFunction("name", time.Now())
func (h *Hub) timeFunction(name string, start time.Time) {
	end := time.Now()

	var bench *funcBench
	for i := range h.funcBenches {
		b := &h.funcBenches[i]
		if name == b.name {
			bench = b
			break
		}
	}

	if bench == nil {
		h.funcBenches = append(h.funcBenches, funcBench{name: name})
		bench = &h.funcBenches[len(h.funcBenches)-1]
	}

	bench.duration += end.Sub(start)
	bench.runs++
}
