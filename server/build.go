// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"fmt"
	"github.com/SoftbearStudios/swell/server/buoyancy"
	"github.com/SoftbearStudios/swell/server/config"
	"github.com/SoftbearStudios/swell/server/logger"
	"github.com/SoftbearStudios/swell/server/waves"
	"go.uber.org/zap"
)

// RippleListener is notified when the named body starts or stops making ripples.
// It is called on the hub goroutine.
type RippleListener func(name string, ripples bool)

// LogRipples logs ripple transitions at debug level.
func LogRipples(name string, ripples bool) {
	logger.Debug("ripples", zap.String("body", name), zap.Bool("on", ripples))
}

// NewHubFromConfig creates the water and bodies described by cfg. A nil
// onRipples defaults to LogRipples.
func NewHubFromConfig(cfg *config.Config, cloud Cloud, onRipples RippleListener) (*Hub, error) {
	if onRipples == nil {
		onRipples = LogRipples
	}

	options, err := cfg.Water.Options()
	if err != nil {
		return nil, fmt.Errorf("water: %w", err)
	}
	field, err := waves.New(options)
	if err != nil {
		return nil, fmt.Errorf("water: %w", err)
	}
	// Bodies sample their initial waterline from the first surface.
	field.Update(0)

	buoys := make([]Buoy, 0, len(cfg.Bodies))
	for _, body := range cfg.Bodies {
		name := body.Name
		bodyOptions := body.Options()
		bodyOptions.OnRipples = func(ripples bool) {
			onRipples(name, ripples)
		}

		b, err := buoyancy.New(field, body.Transform(), bodyOptions)
		if err != nil {
			return nil, fmt.Errorf("body %s: %w", name, err)
		}
		buoys = append(buoys, Buoy{Name: name, Body: b})
	}

	return NewHub(HubOptions{
		Cloud:         cloud,
		Field:         field,
		Bodies:        buoys,
		Gravity:       cfg.Physics.Gravity,
		VisualPeriod:  cfg.Physics.VisualTick,
		PhysicsPeriod: cfg.Physics.PhysicsTick,
	}), nil
}
