package shading

import (
	gomath "math"

	"github.com/Li-Hsiu/waterSimulationTest/pkg/math"
)

// Params are the surface shading constants.
type Params struct {
	SunDirection math.Vec3 `yaml:"sun_direction"`
	OceanColor   math.Vec3 `yaml:"ocean_color"`
	SkyColor     math.Vec3 `yaml:"sky_color"`
	Exposure     float32   `yaml:"exposure"`
}

// DefaultParams returns the stock sun, colors and exposure.
func DefaultParams() Params {
	return Params{
		SunDirection: math.Vec3{X: -1, Y: 1, Z: 1},
		OceanColor:   math.Vec3{X: 28, Y: 120, Z: 236}.Scale(1.0 / 256),
		SkyColor:     math.Vec3{X: 135, Y: 206, Z: 235}.Scale(1.0 / 256),
		Exposure:     0.15,
	}
}

const (
	specularPower = 500
	specularScale = 5
	distortion    = 200
	skyMix        = 0.35
	smoothRange   = 3000
)

// Shade returns the tone-mapped color of the surface point world with the
// given normal, seen from camera, reflecting refl. Non-finite inputs are
// shaded as flat water under the camera.
func Shade(p Params, world, normal, camera math.Vec3, refl ReflectionSource) math.Vec3 {
	if !world.IsFinite() || !camera.IsFinite() {
		world = math.Vec3{X: camera.X, Z: camera.Z}
		if !world.IsFinite() {
			world = math.Vec3{}
		}
	}
	n := normal.Normalize()
	if n == (math.Vec3{}) || !n.IsFinite() {
		n = math.Up
	}

	view := camera.Sub(world).Normalize()
	if view == (math.Vec3{}) || !view.IsFinite() {
		view = math.Up
	}

	sunRefl := p.SunDirection.Scale(-1).Reflect(n).Normalize()
	specular := float32(gomath.Pow(float64(max(0, view.Dot(sunRefl))), specularPower)) * specularScale

	reflection := lookup(refl, world, n.Mul(math.Vec3{X: 1, Y: 0, Z: 0.1}).Scale(distortion))

	// Far away the normal is pulled toward up to hide aliasing.
	dist := camera.Distance(world)
	ratio := float32(1)
	if dist > 0 {
		ratio = float32(min(1, gomath.Log(smoothRange/float64(dist)+1)))
	}
	ratio *= ratio
	ratio = ratio*0.7 + 0.3
	n = n.Scale(ratio).Add(math.Vec3{Y: 1 - ratio}).Scale(0.5)

	fresnel := 1 - n.Dot(view)
	fresnel *= fresnel

	skyFactor := (fresnel + 0.2) * 10
	water := p.OceanColor.Scale(1 - fresnel)

	reflection = reflection.Lerp(p.SkyColor, skyMix)
	color := reflection.Scale(skyFactor + specular).Add(reflection.Mul(water)).Add(water.Scale(0.5))
	return hdr(color, p.Exposure)
}

// lookup samples the reflection projectively at world, offset by distortion.
func lookup(refl ReflectionSource, world, offset math.Vec3) math.Vec3 {
	if refl == nil || refl.Texture() == nil {
		return math.Vec3{}
	}
	m := refl.TextureMatrix()
	c := m.MulVec4(math.Vec4{world.X, world.Y, world.Z, 1})
	w := c[3]
	if w == 0 || !finite32(w) {
		w = 1
	}
	u := (c[0] + offset.X) / w
	v := (c[1] + offset.Y) / w
	s := refl.Texture().Sample(u, v)
	out := math.Vec3{X: s[0], Y: s[1], Z: s[2]}
	if !out.IsFinite() {
		return math.Vec3{}
	}
	return out
}

func hdr(c math.Vec3, exposure float32) math.Vec3 {
	tone := func(x float32) float32 {
		return 1 - float32(gomath.Exp(float64(-x*exposure)))
	}
	return math.Vec3{X: tone(c.X), Y: tone(c.Y), Z: tone(c.Z)}
}

func finite32(f float32) bool {
	return !gomath.IsNaN(float64(f)) && !gomath.IsInf(float64(f), 0)
}

// ToRGBA8 clamps a color to [0, 1] and quantizes it.
func ToRGBA8(c math.Vec3) [4]uint8 {
	q := func(x float32) uint8 {
		if !(x > 0) {
			return 0
		}
		if x >= 1 {
			return 255
		}
		return uint8(x*255 + 0.5)
	}
	return [4]uint8{q(c.X), q(c.Y), q(c.Z), 255}
}
