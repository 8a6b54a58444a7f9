// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package buoyancy

import (
	"github.com/go-gl/mathgl/mgl32"
	"testing"
)

func TestSmoothDamp(t *testing.T) {
	current := mgl32.Vec3{0, 1, 0}
	target := mgl32.Vec3{1, 0, 0}
	var velocity mgl32.Vec3

	last := current.Sub(target).Len()
	for i := 0; i < 100; i++ {
		current = SmoothDamp(current, target, &velocity, 0.2, tick)
		dist := current.Sub(target).Len()
		if dist > last+0.0001 {
			t.Fatalf("step %d moved away from target: %f > %f", i, dist, last)
		}
		last = dist
	}

	if !current.ApproxEqualThreshold(target, 0.001) {
		t.Errorf("expected %v, got %v", target, current)
	}
}

func TestSmoothDamp_NoOvershoot(t *testing.T) {
	current := mgl32.Vec3{}
	target := mgl32.Vec3{1, 0, 0}
	velocity := mgl32.Vec3{100, 0, 0}

	got := SmoothDamp(current, target, &velocity, 0.2, tick)
	if got != target || velocity != (mgl32.Vec3{}) {
		t.Errorf("expected clamp to target, got %v with velocity %v", got, velocity)
	}
}

func TestSmoothDamp_AtTarget(t *testing.T) {
	target := mgl32.Vec3{1, 2, 3}
	var velocity mgl32.Vec3

	if got := SmoothDamp(target, target, &velocity, 0.2, tick); got != target {
		t.Errorf("expected %v, got %v", target, got)
	}
}
