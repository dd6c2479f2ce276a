package sim

import (
	gomath "math"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Stats summarizes the source textures after the latest tick.
type Stats struct {
	Tick           int
	Elapsed        float64
	Sources        int
	MinHeight      float32
	MaxHeight      float32
	MeanHeight     float32
	MaxNormalError float32 // largest | |n| - 1 | over every normal texel
	Finite         bool
}

// Stats scans the displacement and normal textures of every source.
func (s *Simulator) Stats() Stats {
	st := Stats{
		Tick:      s.ocean.Ticks(),
		Elapsed:   s.ocean.Elapsed(),
		Sources:   len(s.ocean.Sources()),
		MinHeight: float32(gomath.Inf(1)),
		MaxHeight: float32(gomath.Inf(-1)),
		Finite:    true,
	}

	var sum float64
	var count int
	for _, src := range s.ocean.Sources() {
		disp, norm := src.Displacement(), src.Normals()
		if !disp.Finite() || !norm.Finite() {
			st.Finite = false
		}
		for y := 0; y < disp.Size; y++ {
			for x := 0; x < disp.Size; x++ {
				h := disp.Fetch(x, y)[1]
				if gomath.IsNaN(float64(h)) || gomath.IsInf(float64(h), 0) {
					continue
				}
				st.MinHeight = min(st.MinHeight, h)
				st.MaxHeight = max(st.MaxHeight, h)
				sum += float64(h)
				count++

				n := norm.Fetch(x, y)
				l := gomath.Sqrt(float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2]))
				st.MaxNormalError = max(st.MaxNormalError, float32(gomath.Abs(l-1)))
			}
		}
	}
	if count == 0 {
		st.MinHeight, st.MaxHeight = 0, 0
		return st
	}
	st.MeanHeight = float32(sum / float64(count))
	return st
}

// MarshalLogObject lets Stats be logged with zap.Object.
func (st Stats) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt("tick", st.Tick)
	enc.AddFloat64("elapsed", st.Elapsed)
	enc.AddInt("sources", st.Sources)
	enc.AddFloat32("min_height", st.MinHeight)
	enc.AddFloat32("max_height", st.MaxHeight)
	enc.AddFloat32("mean_height", st.MeanHeight)
	enc.AddFloat32("max_normal_error", st.MaxNormalError)
	enc.AddBool("finite", st.Finite)
	return nil
}

// Field returns the stats as a single zap field.
func (st Stats) Field() zap.Field {
	return zap.Object("stats", st)
}
