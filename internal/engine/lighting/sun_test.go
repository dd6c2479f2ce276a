package lighting

import (
	"testing"

	"github.com/Li-Hsiu/waterSimulationTest/pkg/math"
)

func near(a, b float32) bool {
	d := a - b
	return d > -1e-4 && d < 1e-4
}

func TestSunDirection(t *testing.T) {
	tests := []struct {
		azimuth, elevation float32
		want               math.Vec3
	}{
		{0, 0, math.Vec3{Z: 1}},
		{90, 0, math.Vec3{X: 1}},
		{0, 90, math.Vec3{Y: 1}},
		{180, 0, math.Vec3{Z: -1}},
	}

	for _, tt := range tests {
		got := SunDirection(tt.azimuth, tt.elevation)
		if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) || !near(got.Z, tt.want.Z) {
			t.Errorf("SunDirection(%v, %v) = %v, want %v", tt.azimuth, tt.elevation, got, tt.want)
		}
	}
}

func TestSunAnglesRoundTrip(t *testing.T) {
	dir := math.Vec3{X: -1, Y: 1, Z: 1}
	az, el := SunAngles(dir)
	got := SunDirection(az, el)
	want := dir.Normalize()
	if !near(got.X, want.X) || !near(got.Y, want.Y) || !near(got.Z, want.Z) {
		t.Errorf("round trip of %v = %v (az %v, el %v)", want, got, az, el)
	}
}
