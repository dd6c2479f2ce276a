package ocean

import (
	"fmt"
	gomath "math"
	"math/cmplx"

	"github.com/Li-Hsiu/waterSimulationTest/internal/gpu"
	"github.com/Li-Hsiu/waterSimulationTest/pkg/math"
)

type spectrumPass struct {
	initial    *gpu.Texture
	phases     *gpu.Texture
	resolution int
	choppiness float32
	domainSize float32
}

func (p spectrumPass) Stage() gpu.Stage { return gpu.StageSpectrum }

func (p spectrumPass) Inputs() []gpu.Binding {
	return []gpu.Binding{
		{Name: "u_initialSpectrum", Texture: p.initial},
		{Name: "u_phases", Texture: p.phases},
	}
}

func (p spectrumPass) Uniforms() []gpu.Uniform {
	return []gpu.Uniform{
		{Name: "u_choppiness", Value: []float32{p.choppiness}},
		{Name: "u_resolution", Value: []float32{float32(p.resolution)}},
		{Name: "u_size", Value: []float32{p.domainSize}},
	}
}

func (p spectrumPass) Shade(x, y int) math.Vec4 {
	kx, kz := WaveVector(x, y, p.resolution, p.domainSize)
	k := gomath.Hypot(kx, kz)
	if k == 0 {
		return math.Vec4{}
	}

	n := p.resolution
	a := p.initial.Fetch(x, y)
	b := p.initial.Fetch((n-x)%n, (n-y)%n)
	h0 := complex(float64(a[0]), float64(a[1]))
	h0Star := cmplx.Conj(complex(float64(b[0]), float64(b[1])))

	phase := float64(p.phases.Fetch(x, y)[0])
	rot := cmplx.Rect(1, phase)
	h := h0*rot + h0Star*cmplx.Conj(rot)

	chop := float64(p.choppiness)
	hX := -1i * h * complex(kx/k*chop, 0)
	hZ := -1i * h * complex(kz/k*chop, 0)

	// Two complex sequences per texel: (hX + i·h) and hZ.
	packed := hX + 1i*h
	return math.Vec4{
		float32(real(packed)), float32(imag(packed)),
		float32(real(hZ)), float32(imag(hZ)),
	}
}

// ResolveSpectrum combines the initial spectrum with the current phases into
// the time-varying complex field, including the choppy horizontal terms.
func ResolveSpectrum(dev gpu.Device, initial, phases, dst *gpu.Texture, choppiness, domainSize float32) error {
	p := spectrumPass{
		initial:    initial,
		phases:     phases,
		resolution: dst.Size,
		choppiness: choppiness,
		domainSize: domainSize,
	}
	if err := dev.Draw(p, dst); err != nil {
		return fmt.Errorf("resolve spectrum: %w", err)
	}
	return nil
}
