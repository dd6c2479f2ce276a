package debug

import (
	"image"
	"image/color"
	gomath "math"

	"github.com/Li-Hsiu/waterSimulationTest/internal/gpu"
)

// HeightMap renders channel 1 of a displacement texture as grayscale,
// stretched between the texture's minimum and maximum height. Texel row 0
// ends up at the bottom of the image.
func HeightMap(t *gpu.Texture) *image.Gray {
	n := t.Size
	lo, hi := gomath.Inf(1), gomath.Inf(-1)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			h := float64(t.Fetch(x, y)[1])
			if gomath.IsNaN(h) || gomath.IsInf(h, 0) {
				continue
			}
			lo, hi = min(lo, h), max(hi, h)
		}
	}

	img := image.NewGray(image.Rect(0, 0, n, n))
	span := hi - lo
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			h := float64(t.Fetch(x, y)[1])
			var v uint8
			if span > 0 && !gomath.IsNaN(h) && !gomath.IsInf(h, 0) {
				v = uint8((h-lo)/span*255 + 0.5)
			}
			img.SetGray(x, n-1-y, color.Gray{Y: v})
		}
	}
	return img
}

// NormalMap encodes unit normals as RGB with each component mapped from
// [-1, 1] to [0, 255].
func NormalMap(t *gpu.Texture) *image.RGBA {
	n := t.Size
	img := image.NewRGBA(image.Rect(0, 0, n, n))
	enc := func(f float32) uint8 {
		v := (float64(f) + 1) / 2 * 255
		if !(v > 0) {
			return 0
		}
		if v >= 255 {
			return 255
		}
		return uint8(v + 0.5)
	}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			v := t.Fetch(x, y)
			img.SetRGBA(x, n-1-y, color.RGBA{R: enc(v[0]), G: enc(v[1]), B: enc(v[2]), A: 255})
		}
	}
	return img
}
