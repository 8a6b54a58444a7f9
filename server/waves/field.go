// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package waves

import (
	"errors"
	"fmt"
	"github.com/SoftbearStudios/swell/server/world"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"sync/atomic"
)

const (
	// DampingMultiplier scales the amplitude of vertices inside the damping box.
	DampingMultiplier = 0.25
	// MaxResolution bounds the grid to what can be indexed by int32 triangles.
	MaxResolution = 4096
)

var (
	ErrResolution = errors.New("waves: resolution out of range")
	ErrScale      = errors.New("waves: scale must be positive on every axis")
	ErrNoise      = errors.New("waves: no noise source")
	ErrRotation   = errors.New("waves: water surfaces cannot be rotated")
)

// Options configures a Field. They are read only after New.
type Options struct {
	// Resolution is the number of cells along each axis.
	Resolution int
	// UVScale is the number of cells one texture repeat covers.
	UVScale   float32
	Transform world.Transform
	Octaves   []Octave
	Damping   world.Box
	Noise     Noise
}

// Field is a tessellated water surface synthesized from noise octaves.
//
// Update and SetDampingCenter must be called from a single goroutine. Readers
// on any goroutine use Surface (or the query methods that delegate to it).
type Field struct {
	resolution int
	uvScale    float32
	transform  world.Transform
	octaves    []Octave
	damping    world.Box
	noise      Noise

	// surface is the published snapshot, back is the one being written.
	surface atomic.Pointer[Surface]
	back    *Surface
}

// New creates a flat Field. Call Update to synthesize the first surface.
func New(options Options) (*Field, error) {
	if options.Resolution < 1 || options.Resolution > MaxResolution {
		return nil, fmt.Errorf("%w: %d", ErrResolution, options.Resolution)
	}
	if s := options.Transform.Scale; !(s[0] > 0 && s[1] > 0 && s[2] > 0) {
		return nil, fmt.Errorf("%w: %v", ErrScale, s)
	}
	// Height queries unscale world positions without rotating them.
	if r := options.Transform.Rotation; !r.ApproxEqual(mgl32.QuatIdent()) && !r.ApproxEqual(mgl32.Quat{W: -1}) {
		return nil, fmt.Errorf("%w: %v", ErrRotation, r)
	}
	if options.Noise == nil {
		return nil, ErrNoise
	}
	if options.UVScale <= 0 {
		options.UVScale = 1
	}

	f := &Field{
		resolution: options.Resolution,
		uvScale:    options.UVScale,
		transform:  options.Transform,
		octaves:    append([]Octave(nil), options.Octaves...),
		damping:    options.Damping,
		noise:      options.Noise,
	}

	f.surface.Store(f.newSurface())
	f.back = f.newSurface()
	return f, nil
}

func (f *Field) newSurface() *Surface {
	stride := f.resolution + 1
	return &Surface{
		resolution: f.resolution,
		transform:  f.transform,
		vertices:   make([]float32, stride*stride),
	}
}

// Update regenerates every vertex for time seconds and publishes the result.
// A Surface obtained before the previous Update is overwritten.
func (f *Field) Update(seconds float32) {
	front := f.surface.Load()
	back := f.back
	n := float32(f.resolution)

	for x := 0; x <= f.resolution; x++ {
		for z := 0; z <= f.resolution; z++ {
			i := front.index(x, z)

			// Damping is tested at the vertex's last known elevation.
			vertex := f.transform.Point(mgl32.Vec3{float32(x), front.vertices[i], float32(z)})
			damping := f.DampingAt(vertex)

			var y float32
			for _, o := range f.octaves {
				y += o.Contribution(f.noise, x, z, n, seconds, damping)
			}
			back.vertices[i] = y
		}
	}

	back.seconds = seconds
	f.back = front
	f.surface.Store(back)
}

// DampingAt is the amplitude multiplier at a world position.
func (f *Field) DampingAt(pos mgl32.Vec3) float32 {
	if f.damping.Contains(pos) {
		return DampingMultiplier
	}
	return 1
}

// Damping returns the current damping box.
func (f *Field) Damping() world.Box {
	return f.damping
}

// SetDampingCenter moves the calm water region, for example to follow a player.
func (f *Field) SetDampingCenter(center mgl32.Vec3) {
	f.damping = f.damping.Moved(center)
}

// Surface returns the most recently published snapshot.
func (f *Field) Surface() *Surface {
	return f.surface.Load()
}

// Height implements buoyancy.Water.
func (f *Field) Height(pos mgl32.Vec3) float32 {
	return f.Surface().Height(pos)
}

// Submerged tests if pos is below the current surface.
func (f *Field) Submerged(pos mgl32.Vec3) bool {
	return f.Height(pos) > pos[1]
}

// SurfaceNormal fits a plane through points. See EstimateNormal.
func (f *Field) SurfaceNormal(points []mgl32.Vec3) mgl32.Vec3 {
	return EstimateNormal(points)
}

// DominantSpeed implements buoyancy.Water.
func (f *Field) DominantSpeed() Speed {
	return DominantSpeed(f.octaves)
}

func (f *Field) Resolution() int {
	return f.resolution
}

func (f *Field) Transform() world.Transform {
	return f.transform
}

// Peak is the largest possible absolute elevation in local space.
func (f *Field) Peak() (peak float32) {
	for _, o := range f.octaves {
		a := math32.Abs(o.Amplitude)
		if !o.Alternate {
			// Noise is centered so it reaches at most half its amplitude.
			a *= 0.5
		}
		peak += a
	}
	return
}
