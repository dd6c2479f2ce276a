package region

import "github.com/Li-Hsiu/waterSimulationTest/pkg/math"

// LinearBand blends two sources across x inside a rectangle: Low below X2,
// High above X1, linear between. Outside the rectangle the surface is flat.
type LinearBand struct {
	X1, X2    float32
	Min, Max  math.Vec2
	Low, High Sampler
}

// DefaultLinearBand returns the band used by the two-source layout.
func DefaultLinearBand(low, high Sampler) LinearBand {
	return LinearBand{
		X1:   300,
		X2:   -300,
		Min:  math.Vec2{X: -500, Y: 0},
		Max:  math.Vec2{X: 500, Y: 500},
		Low:  low,
		High: high,
	}
}

// Sample returns the blended surface at pos.
func (b LinearBand) Sample(pos math.Vec2) Sample {
	if pos.X < b.Min.X || pos.X > b.Max.X || pos.Y < b.Min.Y || pos.Y > b.Max.Y {
		return Sample{Normal: math.Up, Triangle: -1}
	}

	var t float32
	switch {
	case pos.X >= b.X1:
		t = 1
	case pos.X <= b.X2:
		t = 0
	default:
		t = (pos.X - b.X2) / (b.X1 - b.X2)
	}

	d := b.Low.Displacement(pos).Lerp(b.High.Displacement(pos), t)
	n := b.Low.Normal(pos).Lerp(b.High.Normal(pos), t)
	return sanitize(Sample{Displacement: d, Normal: unit(n), Inside: true, Triangle: 0})
}
