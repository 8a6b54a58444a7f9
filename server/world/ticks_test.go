// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"testing"
	"time"
)

func TestToTicks(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		ticks   Ticks
	}{
		{-time.Second, 0},
		{0, 0},
		{PhysicsTickPeriod - 1, 0},
		{PhysicsTickPeriod, 1},
		{time.Second, 50},
		{PhysicsTickPeriod * 65535, TicksMax},
		// Would wrap to 1 if converted directly.
		{PhysicsTickPeriod * 65537, TicksMax},
		{time.Hour * 24, TicksMax},
	}

	for _, test := range tests {
		if ticks := ToTicks(test.elapsed, PhysicsTickPeriod); ticks != test.ticks {
			t.Errorf("ToTicks(%s): expected %d, got %d", test.elapsed, test.ticks, ticks)
		}
	}
}
