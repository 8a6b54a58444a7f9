// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package waves

import (
	"github.com/SoftbearStudios/swell/server/world"
	"image"
	"image/color"
)

type ColorVec [3]float32

var (
	troughColor = RGB(0, 40, 100)
	crestColor  = RGB(200, 230, 255)
)

// Render draws the surface as a heightmap, one pixel per vertex, x to the right
// and z downwards. Elevations are mapped from [-peak, peak] to trough..crest.
func (s *Surface) Render(peak float32) *image.RGBA {
	stride := s.resolution + 1
	img := image.NewRGBA(image.Rect(0, 0, stride, stride))

	if peak <= 0 {
		peak = 1
	}
	factor := 0.5 / peak

	for z := 0; z < stride; z++ {
		for x := 0; x < stride; x++ {
			t := world.Clamp01(s.At(x, z)*factor + 0.5)
			img.SetRGBA(x, z, troughColor.Lerp(crestColor, t).Color())
		}
	}

	return img
}

func RGB(r, g, b byte) ColorVec {
	const factor = 1.0 / 255
	return ColorVec{float32(r) * factor, float32(g) * factor, float32(b) * factor}
}

func (vec ColorVec) Lerp(other ColorVec, factor float32) ColorVec {
	for i := range vec {
		vec[i] = world.Lerp(vec[i], other[i], factor)
	}
	return vec
}

func (vec ColorVec) Color() color.RGBA {
	return color.RGBA{R: floatToByte(vec[0]), G: floatToByte(vec[1]), B: floatToByte(vec[2]), A: 255}
}

func floatToByte(f float32) byte {
	if f < 0 {
		return 0
	}
	if f > 1.0 {
		return 255
	}
	return byte(f * 255)
}
