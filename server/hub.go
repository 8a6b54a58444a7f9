// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"fmt"
	"github.com/SoftbearStudios/swell/server/buoyancy"
	"github.com/SoftbearStudios/swell/server/logger"
	"github.com/SoftbearStudios/swell/server/waves"
	"github.com/SoftbearStudios/swell/server/world"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"sync/atomic"
	"time"
)

const (
	debugPeriod  = time.Second * 5
	statusPeriod = time.Second

	// maxTicks caps the number of physics steps that are caught up at once.
	maxTicks = 5
)

// Buoy is a named body floating on the hub's water.
type Buoy struct {
	Name string
	*buoyancy.Body
}

type HubOptions struct {
	Cloud Cloud
	Field *waves.Field
	// Bodies must float on Field.
	Bodies  []Buoy
	Gravity mgl32.Vec3
	// VisualPeriod is how often Field is updated and clients are sent an Update.
	VisualPeriod time.Duration
	// PhysicsPeriod is the fixed step of Bodies.
	PhysicsPeriod time.Duration
}

// Hub maintains the water, the bodies floating on it and the clients watching them.
type Hub struct {
	// Simulation state
	field   *waves.Field
	buoys   []Buoy
	gravity mgl32.Vec3
	start   time.Time
	clients ClientList // implemented as double-linked list

	// Cloud (and things that are served atomically by HTTP)
	cloud      Cloud
	statusJSON atomic.Value
	surfacePNG atomic.Value

	// funcBenches are benchmarks of core Hub functions.
	funcBenches []funcBench

	// Inbound channels
	inbound    chan SignedInbound
	register   chan Client
	unregister chan Client

	// Timer based events
	visualPeriod  time.Duration
	physicsPeriod time.Duration
	physicsTime   time.Time
	cloudTicker   *time.Ticker
	debugTicker   *time.Ticker
	physicsTicker *time.Ticker
	statusTicker  *time.Ticker
	visualTicker  *time.Ticker
}

func NewHub(options HubOptions) *Hub {
	if options.Cloud == nil {
		options.Cloud = Offline{}
	}
	if options.VisualPeriod <= 0 {
		options.VisualPeriod = world.VisualTickPeriod
	}
	if options.PhysicsPeriod <= 0 {
		options.PhysicsPeriod = world.PhysicsTickPeriod
	}

	buoys := make([]Buoy, len(options.Bodies))
	for i, buoy := range options.Bodies {
		name, ok := sanitizeName(buoy.Name)
		if !ok {
			name = fmt.Sprint("buoy ", i+1)
			logger.Warn("body name rejected", zap.String("name", buoy.Name), zap.String("replacement", name))
		}
		buoys[i] = Buoy{Name: name, Body: buoy.Body}
	}

	h := &Hub{
		cloud:         options.Cloud,
		field:         options.Field,
		buoys:         buoys,
		gravity:       options.Gravity,
		start:         time.Now(),
		inbound:       make(chan SignedInbound, 16),
		register:      make(chan Client, 8),
		unregister:    make(chan Client, 16),
		visualPeriod:  options.VisualPeriod,
		physicsPeriod: options.PhysicsPeriod,
	}

	// Serve a status before the first tick.
	h.Status()
	return h
}

// Register adds a client to the hub. It may be called from any goroutine.
func (h *Hub) Register(client Client) {
	h.register <- client
}

// Unregister removes a client from the hub. It may be called from any goroutine
// except the hub's.
func (h *Hub) Unregister(client Client) {
	h.unregister <- client
}

// ReceiveSigned queues an inbound message. Clients sending from the hub
// goroutine (inside Send) must not block.
func (h *Hub) ReceiveSigned(in SignedInbound, blocking bool) {
	if blocking {
		h.inbound <- in
		return
	}
	select {
	case h.inbound <- in:
	default:
		logger.Warn("dropping inbound message, hub is busy")
	}
}

// Run runs the hub until the process exits. It must only be called once.
func (h *Hub) Run() {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("hub panicked", zap.Any("panic", r), zap.Stack("stack"))
			logger.Sync()
			panic(r)
		}
	}()

	h.cloudTicker = time.NewTicker(h.cloud.UpdatePeriod())
	h.debugTicker = time.NewTicker(debugPeriod)
	h.physicsTicker = time.NewTicker(h.physicsPeriod)
	h.statusTicker = time.NewTicker(statusPeriod)
	h.visualTicker = time.NewTicker(h.visualPeriod)
	h.physicsTime = time.Now()

	h.Visual()
	h.SnapshotSurface()
	h.Cloud()

	for {
		select {
		case client := <-h.register:
			h.clients.Add(client)
			client.Data().Hub = h
			client.Init()
		case client := <-h.unregister:
			client.Close()
			client.Data().Hub = nil
			h.clients.Remove(client)
		case in := <-h.inbound:
			// Read all messages currently in the channel
			n := len(h.inbound)

			for {
				// If not same hub the message is old
				data := in.Client.Data()
				if h == data.Hub {
					in.Process(h, in.Client, &data.Viewer)
				}

				if n--; n < 0 {
					break
				}

				in = <-h.inbound
			}
		case <-h.visualTicker.C:
			h.Visual()
			h.Update()
		case <-h.physicsTicker.C:
			now := time.Now()
			timeDelta := now.Sub(h.physicsTime) + h.physicsPeriod/10 // Kludge factor
			h.physicsTime = now

			ticks := world.ToTicks(timeDelta, h.physicsPeriod)
			if ticks > maxTicks {
				logger.Warn("physics falling behind", zap.Duration("delta", timeDelta))
				ticks = maxTicks
			}
			h.Physics(ticks)
		case <-h.statusTicker.C:
			h.Status()
		case <-h.debugTicker.C:
			h.Debug()
			h.SnapshotSurface()
		case <-h.cloudTicker.C:
			h.Cloud()
		}
	}
}

// seconds is the simulation time.
func (h *Hub) seconds() float32 {
	return float32(time.Since(h.start).Seconds())
}
