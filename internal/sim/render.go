package sim

import (
	"image"
	"image/color"

	"github.com/Li-Hsiu/waterSimulationTest/internal/config"
	"github.com/Li-Hsiu/waterSimulationTest/internal/engine/camera"
	"github.com/Li-Hsiu/waterSimulationTest/internal/shading"
	"github.com/Li-Hsiu/waterSimulationTest/pkg/math"
)

// Triangle overlay tints, cycled by triangle index.
var palette = []math.Vec3{
	{X: 1, Y: 0.3, Z: 0.3},
	{X: 0.3, Y: 1, Z: 0.3},
	{X: 0.3, Y: 0.3, Z: 1},
	{X: 1, Y: 1, Z: 0.3},
	{X: 1, Y: 0.3, Z: 1},
	{X: 0.3, Y: 1, Z: 1},
}

const overlayMix = 0.3

func reflectionMatrix(cam camera.Camera, aspect float32) math.Mat4 {
	return shading.MirrorMatrix(cam.ProjectionMatrix(aspect), cam.Mirrored().ViewMatrix())
}

// bounded reports whether the layout leaves part of the plane without a surface.
func (s *Simulator) bounded() bool {
	return s.layout.mode == config.ModePairs || s.layout.mode == config.ModeBand
}

// Render shades a top-down view of extent x extent world units centered
// under cam.Target into img. Image up is -z. Pixels no region covers in the
// pairs and band layouts get the plain sky color.
func (s *Simulator) Render(img *image.RGBA, cam camera.Camera, extent float32) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}
	s.sky.SetTextureMatrix(reflectionMatrix(cam, float32(w)/float32(h)))

	params := s.cfg.Shading
	overlay := s.cfg.Regions.ShowTriangles
	bounded := s.bounded()
	background := shading.ToRGBA8(params.SkyColor)
	center := cam.Target.XZ()
	viewer := cam.Position

	rows(h, func(py int) {
		for px := 0; px < w; px++ {
			pos := math.Vec2{
				X: center.X + ((float32(px)+0.5)/float32(w)-0.5)*extent,
				Y: center.Y + ((float32(py)+0.5)/float32(h)-0.5)*extent,
			}
			smp := s.surface.Sample(pos, viewer)

			rgba := background
			if smp.Inside || !bounded {
				world := math.Vec3{X: pos.X, Z: pos.Y}.Add(smp.Displacement)
				c := shading.Shade(params, world, smp.Normal, viewer, s.sky)
				if overlay && smp.Triangle >= 0 {
					c = c.Lerp(palette[smp.Triangle%len(palette)], overlayMix)
				}
				rgba = shading.ToRGBA8(c)
			}
			img.SetRGBA(b.Min.X+px, b.Min.Y+py, color.RGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]})
		}
	})
}

// Snapshot renders a size x size image with the configured camera and extent.
func (s *Simulator) Snapshot(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	s.Render(img, s.cfg.Camera, s.cfg.Output.Extent)
	return img
}
