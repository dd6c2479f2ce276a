// Package lighting converts sun angles to light directions.
package lighting

import (
	gomath "math"

	"github.com/Li-Hsiu/waterSimulationTest/pkg/math"
)

// SunDirection converts azimuth and elevation in degrees to a unit vector
// pointing towards the sun. Azimuth 0 faces +z and grows toward +x;
// elevation is measured up from the horizon.
func SunDirection(azimuth, elevation float32) math.Vec3 {
	az := float64(azimuth) * gomath.Pi / 180
	el := float64(elevation) * gomath.Pi / 180

	return math.Vec3{
		X: float32(gomath.Cos(el) * gomath.Sin(az)),
		Y: float32(gomath.Sin(el)),
		Z: float32(gomath.Cos(el) * gomath.Cos(az)),
	}
}

// SunAngles is the inverse of SunDirection for any non-zero dir.
func SunAngles(dir math.Vec3) (azimuth, elevation float32) {
	d := dir.Normalize()
	az := gomath.Atan2(float64(d.X), float64(d.Z)) * 180 / gomath.Pi
	el := gomath.Asin(float64(max(-1, min(1, d.Y)))) * 180 / gomath.Pi
	return float32(az), float32(el)
}
