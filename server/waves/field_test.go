// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package waves_test

import (
	"errors"
	"github.com/SoftbearStudios/swell/server/waves"
	"github.com/SoftbearStudios/swell/server/waves/noise"
	"github.com/SoftbearStudios/swell/server/world"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"math/rand"
	"testing"
)

type constNoise float32

func (c constNoise) Sample(_, _ float32) float32 {
	return float32(c)
}

type funcNoise func(x, y float32) float32

func (f funcNoise) Sample(x, y float32) float32 {
	return f(x, y)
}

// bumpyNoise gives every lattice vertex a distinct value in [0, 1).
var bumpyNoise = funcNoise(func(x, y float32) float32 {
	return math32.Abs(math32.Sin(x*12.9898+y*78.233)) * 0.999
})

// farDamping keeps the damping box away from the grid.
var farDamping = world.Box{Center: mgl32.Vec3{-1000, 0, -1000}, Extent: mgl32.Vec3{1, 1, 1}}

func approx(a, b float32) bool {
	return math32.Abs(a-b) < 0.0001
}

func newField(t testing.TB, options waves.Options) *waves.Field {
	t.Helper()
	if options.Transform.Scale == (mgl32.Vec3{}) {
		options.Transform = world.NewTransform(options.Transform.Position)
	}
	if options.Damping == (world.Box{}) {
		options.Damping = farDamping
	}
	f, err := waves.New(options)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestNew_Invalid(t *testing.T) {
	valid := waves.Options{
		Resolution: 4,
		Transform:  world.NewTransform(mgl32.Vec3{}),
		Noise:      constNoise(0.5),
	}

	zeroRes := valid
	zeroRes.Resolution = 0
	if _, err := waves.New(zeroRes); !errors.Is(err, waves.ErrResolution) {
		t.Errorf("expected ErrResolution, got %v", err)
	}

	zeroScale := valid
	zeroScale.Transform.Scale = mgl32.Vec3{1, 0, 1}
	if _, err := waves.New(zeroScale); !errors.Is(err, waves.ErrScale) {
		t.Errorf("expected ErrScale, got %v", err)
	}

	rotated := valid
	rotated.Transform.Rotation = mgl32.QuatRotate(math32.Pi/2, world.Up)
	if _, err := waves.New(rotated); !errors.Is(err, waves.ErrRotation) {
		t.Errorf("expected ErrRotation, got %v", err)
	}

	zeroRotation := valid
	zeroRotation.Transform.Rotation = mgl32.Quat{}
	if _, err := waves.New(zeroRotation); !errors.Is(err, waves.ErrRotation) {
		t.Errorf("expected ErrRotation for zero quaternion, got %v", err)
	}

	noNoise := valid
	noNoise.Noise = nil
	if _, err := waves.New(noNoise); !errors.Is(err, waves.ErrNoise) {
		t.Errorf("expected ErrNoise, got %v", err)
	}

	if _, err := waves.New(valid); err != nil {
		t.Errorf("expected valid options, got %v", err)
	}
}

func TestField_EndToEnd(t *testing.T) {
	source := noise.NewDefault()
	f := newField(t, waves.Options{
		Resolution: 2,
		Octaves: []waves.Octave{{
			Scale:     world.Vec2f{X: 1, Y: 1},
			Amplitude: 1,
		}},
		Noise: source,
	})
	f.Update(0)

	surface := f.Surface()
	for x := 0; x <= 2; x++ {
		for z := 0; z <= 2; z++ {
			expected := source.Sample(float32(x)/2, float32(z)/2) - 0.5
			if got := surface.At(x, z); !approx(got, expected) {
				t.Errorf("vertex (%d, %d): expected %f, got %f", x, z, expected, got)
			}
		}
	}

	if got, expected := f.Height(mgl32.Vec3{1, 0, 1}), surface.At(1, 1); !approx(got, expected) {
		t.Errorf("expected center height %f, got %f", expected, got)
	}
}

func TestSurface_LatticeExactness(t *testing.T) {
	transform := world.NewTransform(mgl32.Vec3{-10, 2, 5})
	transform.Scale = mgl32.Vec3{2, 3, 0.5}

	f := newField(t, waves.Options{
		Resolution: 8,
		Transform:  transform,
		Octaves:    []waves.Octave{{Scale: world.Vec2f{X: 8, Y: 8}, Amplitude: 2}},
		Noise:      bumpyNoise,
	})
	f.Update(0)
	surface := f.Surface()

	for x := 0; x <= 8; x++ {
		for z := 0; z <= 8; z++ {
			pos := transform.Point(mgl32.Vec3{float32(x), 0, float32(z)})
			expected := surface.At(x, z) * transform.Scale[1]
			if got := f.Height(pos); !approx(got, expected) {
				t.Errorf("lattice (%d, %d): expected %f, got %f", x, z, expected, got)
			}
			if v := surface.Vertex(x, z); !approx(v[0], pos[0]) || !approx(v[1], pos[1]+expected) || !approx(v[2], pos[2]) {
				t.Errorf("vertex (%d, %d): expected %v at height %f, got %v", x, z, pos, expected, v)
			}
		}
	}
}

func TestSurface_Height(t *testing.T) {
	f := newField(t, waves.Options{
		Resolution: 4,
		Octaves:    []waves.Octave{{Scale: world.Vec2f{X: 4, Y: 4}, Amplitude: 1}},
		Noise:      bumpyNoise,
	})
	f.Update(0)
	s := f.Surface()

	// Edge midpoints average their two endpoints
	mid := f.Height(mgl32.Vec3{1, 0, 0.5})
	if expected := (s.At(1, 0) + s.At(1, 1)) / 2; !approx(mid, expected) {
		t.Errorf("expected edge midpoint %f, got %f", expected, mid)
	}

	// Off grid queries degrade to the nearest edge or corner
	if got := f.Height(mgl32.Vec3{-5, 0, -5}); !approx(got, s.At(0, 0)) {
		t.Errorf("expected corner (0, 0) %f, got %f", s.At(0, 0), got)
	}
	if got := f.Height(mgl32.Vec3{100, 0, 2}); !approx(got, s.At(4, 2)) {
		t.Errorf("expected edge (4, 2) %f, got %f", s.At(4, 2), got)
	}

	// Interior points stay within the range of their cell
	random := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		x, z := random.Float32()*4, random.Float32()*4
		h := f.Height(mgl32.Vec3{x, 0, z})
		lo, hi := float32(math32.Inf(1)), float32(math32.Inf(-1))
		for _, c := range [][2]int{
			{int(math32.Floor(x)), int(math32.Floor(z))},
			{int(math32.Floor(x)), int(math32.Ceil(z))},
			{int(math32.Ceil(x)), int(math32.Floor(z))},
			{int(math32.Ceil(x)), int(math32.Ceil(z))},
		} {
			v := s.At(c[0], c[1])
			lo = math32.Min(lo, v)
			hi = math32.Max(hi, v)
		}
		if h < lo-0.0001 || h > hi+0.0001 {
			t.Fatalf("Height(%f, %f) = %f outside of cell range [%f, %f]", x, z, h, lo, hi)
		}
	}
}

func TestField_DampingBoundary(t *testing.T) {
	f := newField(t, waves.Options{
		Resolution: 4,
		Octaves:    []waves.Octave{{Amplitude: 4}},
		Damping:    world.Box{Center: mgl32.Vec3{1, 0, 1}, Extent: mgl32.Vec3{1, 10, 1}},
		Noise:      constNoise(0.75),
	})

	// Exactly on the face of the box is inside
	if d := f.DampingAt(mgl32.Vec3{2, 10, 2}); d != waves.DampingMultiplier {
		t.Errorf("expected boundary to be damped, got %f", d)
	}
	if d := f.DampingAt(mgl32.Vec3{2.001, 0, 2}); d != 1 {
		t.Errorf("expected outside to be undamped, got %f", d)
	}

	f.Update(0)
	s := f.Surface()

	// (0.75 - 0.5) * 4 = 1
	for x := 0; x <= 4; x++ {
		for z := 0; z <= 4; z++ {
			expected := float32(1)
			if x <= 2 && z <= 2 {
				expected = waves.DampingMultiplier
			}
			if got := s.At(x, z); !approx(got, expected) {
				t.Errorf("vertex (%d, %d): expected %f, got %f", x, z, expected, got)
			}
		}
	}

	// Hard step follows the moving center
	f.SetDampingCenter(mgl32.Vec3{4, 0, 4})
	f.Update(1)
	s = f.Surface()
	if !approx(s.At(0, 0), 1) || !approx(s.At(4, 4), waves.DampingMultiplier) || !approx(s.At(3, 3), waves.DampingMultiplier) {
		t.Errorf("expected damping to move, got %f %f %f", s.At(0, 0), s.At(4, 4), s.At(3, 3))
	}
}

func TestOctave_Contribution(t *testing.T) {
	traveling := waves.Octave{TravelSpeed: world.Vec2f{X: 1, Y: 2}, Scale: world.Vec2f{X: 3, Y: 4}, Amplitude: 2}

	var sampledX, sampledY float32
	record := funcNoise(func(x, y float32) float32 {
		sampledX, sampledY = x, y
		return 0.75
	})

	// (0.75 - 0.5) * 2 * 0.25
	if got := traveling.Contribution(record, 1, 2, 4, 10, 0.25); !approx(got, 0.125) {
		t.Errorf("expected 0.125, got %f", got)
	}
	// ((1*3 + 10*1) / 4, (2*4 + 10*2) / 4)
	if !approx(sampledX, 3.25) || !approx(sampledY, 7) {
		t.Errorf("expected sample at (3.25, 7), got (%f, %f)", sampledX, sampledY)
	}

	standing := waves.Octave{TravelSpeed: world.Vec2f{X: 3, Y: 4}, Scale: world.Vec2f{X: 3, Y: 4}, Amplitude: 2, Alternate: true}

	// Phase 0.25 * 2π = π/2, plus |(3, 4)| * 0.1 = 0.5
	got := standing.Contribution(record, 1, 2, 4, 0.1, 1)
	if expected := math32.Cos(math32.Pi/2+0.5) * 2; !approx(got, expected) {
		t.Errorf("expected %f, got %f", expected, got)
	}
	// Standing waves sample static coordinates
	if !approx(sampledX, 0.75) || !approx(sampledY, 2) {
		t.Errorf("expected sample at (0.75, 2), got (%f, %f)", sampledX, sampledY)
	}
}

func TestField_Snapshots(t *testing.T) {
	f := newField(t, waves.Options{
		Resolution: 2,
		Octaves:    []waves.Octave{{TravelSpeed: world.Vec2f{X: 1}, Scale: world.Vec2f{X: 1, Y: 1}, Amplitude: 1}},
		Noise:      bumpyNoise,
	})

	initial := f.Surface()
	if initial.At(1, 1) != 0 {
		t.Error("expected flat surface before first update")
	}

	f.Update(1)
	first := f.Surface()
	if first == initial {
		t.Error("expected update to publish a new surface")
	}
	if first.Seconds() != 1 {
		t.Errorf("expected 1s, got %f", first.Seconds())
	}
	firstVertices := first.AppendVertices(nil)

	f.Update(2)
	second := f.Surface()
	if second == first {
		t.Error("expected update to publish a new surface")
	}

	// Previously published surface is untouched by one update
	for i, v := range first.AppendVertices(nil) {
		if v != firstVertices[i] {
			t.Fatalf("vertex %d of published surface changed from %f to %f", i, firstVertices[i], v)
		}
	}
}

func TestField_Submerged(t *testing.T) {
	f := newField(t, waves.Options{
		Resolution: 2,
		Octaves:    []waves.Octave{{Amplitude: 2}},
		Noise:      constNoise(0.75),
	})
	f.Update(0)

	// Surface is flat at 0.5
	if !f.Submerged(mgl32.Vec3{1, 0.4, 1}) {
		t.Error("expected point below surface to be submerged")
	}
	if f.Submerged(mgl32.Vec3{1, 0.6, 1}) {
		t.Error("expected point above surface not to be submerged")
	}
	if !approx(f.Peak(), 1) {
		t.Errorf("expected peak 1, got %f", f.Peak())
	}
}

func TestDominantSpeed(t *testing.T) {
	if s := waves.DominantSpeed(nil); s != (waves.Speed{XDir: 1, YDir: 1}) {
		t.Errorf("expected default speed, got %+v", s)
	}

	octaves := []waves.Octave{
		{TravelSpeed: world.Vec2f{X: 1, Y: -0.5}},
		{TravelSpeed: world.Vec2f{X: -3, Y: 0.25}},
		{TravelSpeed: world.Vec2f{X: 2, Y: -2}},
	}
	s := waves.DominantSpeed(octaves)
	expected := waves.Speed{XDir: -1, X: 3, YDir: -1, Y: 2}
	if s != expected {
		t.Errorf("expected %+v, got %+v", expected, s)
	}
	if v := s.Vec2f(); v != (world.Vec2f{X: -3, Y: -2}) {
		t.Errorf("expected {-3 -2}, got %v", v)
	}
}

func TestField_Mesh(t *testing.T) {
	f := newField(t, waves.Options{
		Resolution: 4,
		UVScale:    2,
		Noise:      constNoise(0.5),
	})

	triangles := f.Triangles()
	if len(triangles) != 4*4*6 {
		t.Fatalf("expected %d indices, got %d", 4*4*6, len(triangles))
	}
	first := triangles[:6]
	// Stride is 5: (0,0)=0, (1,1)=6, (1,0)=5, (0,1)=1
	expected := []int32{0, 6, 5, 0, 1, 6}
	for i := range expected {
		if first[i] != expected[i] {
			t.Errorf("expected first cell %v, got %v", expected, first)
			break
		}
	}
	for _, index := range triangles {
		if index < 0 || index >= 25 {
			t.Fatalf("index %d out of range", index)
		}
	}

	uvs := f.UVs()
	if len(uvs) != 25 {
		t.Fatalf("expected 25 uvs, got %d", len(uvs))
	}
	// Mirrored every 2 cells: 0, 0.5, 1, 0.5, 0
	expectedU := []float32{0, 0.5, 1, 0.5, 0}
	for x, u := range expectedU {
		if got := uvs[x*5].X; !approx(got, u) {
			t.Errorf("expected u(%d) = %f, got %f", x, u, got)
		}
		if got := uvs[x].Y; !approx(got, u) {
			t.Errorf("expected v(%d) = %f, got %f", x, u, got)
		}
	}
}

func TestSurface_Render(t *testing.T) {
	f := newField(t, waves.Options{
		Resolution: 3,
		Octaves:    []waves.Octave{{Amplitude: 2}},
		Noise:      constNoise(0.99),
	})
	f.Update(0)

	img := f.Surface().Render(f.Peak())
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Fatalf("expected 4x4 image, got %v", b)
	}
	// Near the crest everywhere
	if c := img.RGBAAt(2, 2); c.B < 240 {
		t.Errorf("expected crest color, got %v", c)
	}

	// Elevations beyond the peak saturate at the crest
	over := f.Surface().Render(0.25).RGBAAt(2, 2)
	if far := f.Surface().Render(0.01).RGBAAt(2, 2); over != far {
		t.Errorf("expected saturated crest, got %v and %v", over, far)
	}
}

func BenchmarkField_Update(b *testing.B) {
	f := newField(b, waves.Options{
		Resolution: 64,
		Octaves: []waves.Octave{
			{TravelSpeed: world.Vec2f{X: 1, Y: 0.5}, Scale: world.Vec2f{X: 4, Y: 4}, Amplitude: 1},
			{TravelSpeed: world.Vec2f{X: 0.5, Y: 0.5}, Scale: world.Vec2f{X: 8, Y: 8}, Amplitude: 0.5, Alternate: true},
		},
		Noise: noise.NewDefault(),
	})
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		f.Update(float32(i) * 0.033)
	}
}

func BenchmarkField_Height(b *testing.B) {
	f := newField(b, waves.Options{
		Resolution: 64,
		Octaves:    []waves.Octave{{Scale: world.Vec2f{X: 4, Y: 4}, Amplitude: 1}},
		Noise:      noise.NewDefault(),
	})
	f.Update(0)
	b.ResetTimer()

	var acc float32
	for i := 0; i < b.N; i++ {
		acc += f.Height(mgl32.Vec3{float32(i&63) + 0.3, 0, float32(i>>6&63) + 0.7})
	}
	_ = acc
}
