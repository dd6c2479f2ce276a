package ocean

import (
	"errors"
	"fmt"
	gomath "math"
	"math/rand/v2"

	"github.com/Li-Hsiu/waterSimulationTest/internal/gpu"
	"github.com/Li-Hsiu/waterSimulationTest/pkg/math"
)

// ErrInvalidDeltaTime is returned for negative or non-finite time steps.
var ErrInvalidDeltaTime = errors.New("invalid delta time")

// wrapPhase reduces p into [0, 2π). The float32 nearest to 2π is above 2π, so
// values that round up to it are folded back to 0.
func wrapPhase(p float64) float32 {
	p = gomath.Mod(p, TwoPi)
	if p < 0 {
		p += TwoPi
	}
	f := float32(p)
	if float64(f) >= TwoPi {
		return 0
	}
	return f
}

type phasePass struct {
	prev       *gpu.Texture
	resolution int
	deltaTime  float32
	domainSize float32
}

func (p phasePass) Stage() gpu.Stage { return gpu.StagePhase }

func (p phasePass) Inputs() []gpu.Binding {
	return []gpu.Binding{{Name: "u_phases", Texture: p.prev}}
}

func (p phasePass) Uniforms() []gpu.Uniform {
	return []gpu.Uniform{
		{Name: "u_deltaTime", Value: []float32{p.deltaTime}},
		{Name: "u_resolution", Value: []float32{float32(p.resolution)}},
		{Name: "u_size", Value: []float32{p.domainSize}},
	}
}

func (p phasePass) Shade(x, y int) math.Vec4 {
	kx, kz := WaveVector(x, y, p.resolution, p.domainSize)
	k := gomath.Hypot(kx, kz)
	phase := float64(p.prev.Fetch(x, y)[0])
	return math.Vec4{wrapPhase(phase + Omega(k)*float64(p.deltaTime)), 0, 0, 0}
}

// StepPhase advances every phase in prev by ω(k)·deltaTime and writes the
// wrapped result to next.
func StepPhase(dev gpu.Device, prev, next *gpu.Texture, deltaTime, domainSize float32) error {
	if deltaTime < 0 || !finite(float64(deltaTime)) {
		return fmt.Errorf("phase: %w: %v", ErrInvalidDeltaTime, deltaTime)
	}
	p := phasePass{prev: prev, resolution: next.Size, deltaTime: deltaTime, domainSize: domainSize}
	if err := dev.Draw(p, next); err != nil {
		return fmt.Errorf("phase: %w", err)
	}
	return nil
}

// SeedPhases fills t with uniformly distributed phases in [0, 2π).
func SeedPhases(t *gpu.Texture, rng *rand.Rand) {
	for y := 0; y < t.Size; y++ {
		for x := 0; x < t.Size; x++ {
			t.Store(x, y, math.Vec4{wrapPhase(rng.Float64() * TwoPi), 0, 0, 0})
		}
	}
}
