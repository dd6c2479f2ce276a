package shading

import (
	gomath "math"
	"testing"

	"github.com/Li-Hsiu/waterSimulationTest/pkg/math"
)

func uniformSky(t *testing.T, c math.Vec3) *SkyReflection {
	t.Helper()
	sky, err := NewSkyReflection(4, c, c, math.Identity())
	if err != nil {
		t.Fatalf("NewSkyReflection: %v", err)
	}
	return sky
}

func inUnitRange(c math.Vec3) bool {
	for _, f := range [3]float32{c.X, c.Y, c.Z} {
		if !(f >= 0 && f < 1) {
			return false
		}
	}
	return true
}

func TestShadeRange(t *testing.T) {
	p := DefaultParams()
	sky := uniformSky(t, math.Vec3{X: 0.5, Y: 0.6, Z: 0.9})
	camera := math.Vec3{Y: 200}

	normals := []math.Vec3{
		math.Up,
		{X: 1, Y: 1},
		{X: -0.3, Y: 0.2, Z: 0.9},
		{Y: -1},
	}
	for _, n := range normals {
		for _, world := range []math.Vec3{{}, {X: 4000, Z: -2500}, {X: 1, Y: 5, Z: 1}} {
			c := Shade(p, world, n, camera, sky)
			if !inUnitRange(c) {
				t.Errorf("Shade(world=%v, n=%v) = %v, outside [0,1)", world, n, c)
			}
		}
	}
}

func TestShadeNonFinite(t *testing.T) {
	p := DefaultParams()
	sky := uniformSky(t, math.Vec3{X: 0.5, Y: 0.6, Z: 0.9})
	camera := math.Vec3{X: 10, Y: 200, Z: 10}
	world := math.Vec3{X: 50, Z: 80}
	nan := float32(gomath.NaN())

	flat := Shade(p, world, math.Up, camera, sky)
	if got := Shade(p, world, math.Vec3{Y: nan}, camera, sky); got != flat {
		t.Errorf("NaN normal shaded %v, want flat %v", got, flat)
	}
	if got := Shade(p, world, math.Vec3{}, camera, sky); got != flat {
		t.Errorf("zero normal shaded %v, want flat %v", got, flat)
	}
	if got := Shade(p, math.Vec3{X: nan}, math.Up, camera, sky); !got.IsFinite() || !inUnitRange(got) {
		t.Errorf("NaN position shaded %v", got)
	}
}

func TestShadeSpecular(t *testing.T) {
	p := DefaultParams()
	sky := uniformSky(t, math.Vec3{X: 0.5, Y: 0.6, Z: 0.9})
	world := math.Vec3{}

	// The sun (-1,1,1) mirrors about up into (1,1,-1).
	toward := Shade(p, world, math.Up, math.Vec3{X: 100, Y: 100, Z: -100}, sky)
	away := Shade(p, world, math.Up, math.Vec3{X: -100, Y: 100, Z: 100}, sky)

	if !(toward.X > away.X && toward.Y > away.Y && toward.Z > away.Z) {
		t.Errorf("specular highlight missing: toward %v, away %v", toward, away)
	}
}

func TestShadeWithoutReflection(t *testing.T) {
	c := Shade(DefaultParams(), math.Vec3{}, math.Up, math.Vec3{Y: 100}, nil)
	if !inUnitRange(c) {
		t.Errorf("Shade without reflection = %v", c)
	}
}

func TestHDR(t *testing.T) {
	if got := hdr(math.Vec3{}, 0.15); got != (math.Vec3{}) {
		t.Errorf("hdr(0) = %v, want 0", got)
	}
	lo := hdr(math.Vec3{X: 1, Y: 1, Z: 1}, 0.15)
	hi := hdr(math.Vec3{X: 100, Y: 100, Z: 100}, 0.15)
	if !(hi.X > lo.X) || hi.X >= 1 {
		t.Errorf("hdr not monotone below 1: %v, %v", lo, hi)
	}
}

func TestMirrorMatrixCentersTarget(t *testing.T) {
	proj := math.Perspective(1, 1, 0.5, 1000)
	view := math.LookAt(math.Vec3{Y: -10, Z: 10}, math.Vec3{}, math.Up)
	m := MirrorMatrix(proj, view)

	c := m.MulVec4(math.Vec4{0, 0, 0, 1})
	u, v := c[0]/c[3], c[1]/c[3]
	if gomath.Abs(float64(u-0.5)) > 1e-5 || gomath.Abs(float64(v-0.5)) > 1e-5 {
		t.Errorf("target projects to (%v, %v), want (0.5, 0.5)", u, v)
	}
}

func TestSkyGradient(t *testing.T) {
	horizon := math.Vec3{X: 1, Y: 1, Z: 1}
	zenith := math.Vec3{X: 0, Y: 0.5, Z: 1}
	sky, err := NewSkyReflection(8, horizon, zenith, math.Identity())
	if err != nil {
		t.Fatal(err)
	}
	tex := sky.Texture()
	if got := tex.Fetch(3, 0); got != (math.Vec4{1, 1, 1, 1}) {
		t.Errorf("bottom row = %v, want horizon", got)
	}
	if got := tex.Fetch(3, 7); got != (math.Vec4{0, 0.5, 1, 1}) {
		t.Errorf("top row = %v, want zenith", got)
	}
	if sky.TextureMatrix() != math.Identity() {
		t.Error("texture matrix not stored")
	}
}

func TestToRGBA8(t *testing.T) {
	tests := []struct {
		in   math.Vec3
		want [4]uint8
	}{
		{math.Vec3{}, [4]uint8{0, 0, 0, 255}},
		{math.Vec3{X: 1, Y: 2, Z: -1}, [4]uint8{255, 255, 0, 255}},
		{math.Vec3{X: 0.5, Y: float32(gomath.NaN()), Z: 0.2}, [4]uint8{128, 0, 51, 255}},
	}
	for _, tt := range tests {
		if got := ToRGBA8(tt.in); got != tt.want {
			t.Errorf("ToRGBA8(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
