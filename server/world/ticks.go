// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"github.com/chewxy/math32"
	"time"
)

const (
	// VisualTickPeriod is how often the water surface is regenerated.
	VisualTickPeriod = time.Second / 30
	// PhysicsTickPeriod is the fixed step of buoyancy integration.
	PhysicsTickPeriod = time.Second / 50
	TicksMax          = Ticks(math32.MaxUint16)
)

// Ticks is a number of physics steps.
type Ticks uint16

// ToTicks returns how many whole periods fit in elapsed. It saturates at
// TicksMax instead of wrapping.
func ToTicks(elapsed, period time.Duration) Ticks {
	n := elapsed / period
	if n <= 0 {
		return 0
	}
	if n > time.Duration(TicksMax) {
		return TicksMax
	}
	return Ticks(n)
}
