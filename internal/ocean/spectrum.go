package ocean

import (
	"fmt"
	gomath "math"

	"github.com/Li-Hsiu/waterSimulationTest/internal/gpu"
	"github.com/Li-Hsiu/waterSimulationTest/pkg/math"
)

// SpectrumAmplitude returns the initial amplitude h0 for wave vector (kx, kz)
// under the given wind. The directional spectrum combines a JONSWAP-enhanced
// Pierson-Moskowitz long-wave curvature with a capillary short-wave term.
// Zero wind, the DC term and any non-finite intermediate give 0.
func SpectrumAmplitude(kx, kz float64, wind math.Vec2, domainSize float32) float64 {
	k := gomath.Hypot(kx, kz)
	u := gomath.Hypot(float64(wind.X), float64(wind.Y))
	if k == 0 || u == 0 || domainSize <= 0 {
		return 0
	}

	kp := Gravity * square(WaveAge/u)
	c := Omega(k) / k
	cp := Omega(kp) / kp

	// Long waves.
	lpm := gomath.Exp(-1.25 * square(kp/k))
	sigma := 0.08 * (1 + 4*gomath.Pow(WaveAge, -3))
	gammaExp := gomath.Exp(-square(gomath.Sqrt(k/kp)-1) / 2 * square(sigma))
	jp := gomath.Pow(JONSWAPGamma, gammaExp)
	fp := lpm * jp * gomath.Exp(-WaveAge/gomath.Sqrt(10)*(gomath.Sqrt(k/kp)-1))
	alphaP := 0.006 * gomath.Sqrt(WaveAge)
	bl := 0.5 * alphaP * cp / c * fp

	// Short waves.
	z0 := 0.000037 * square(u) / Gravity * gomath.Pow(u/cp, 0.9)
	uStar := 0.41 * u / gomath.Log(10/z0)
	var alphaM float64
	if uStar < CapillaryPhaseSpeed {
		alphaM = 0.01 * (1 + gomath.Log(uStar/CapillaryPhaseSpeed))
	} else {
		alphaM = 0.01 * (1 + 3*gomath.Log(uStar/CapillaryPhaseSpeed))
	}
	fm := gomath.Exp(-0.25 * square(k/CapillaryPeak-1))
	bh := 0.5 * alphaM * CapillaryPhaseSpeed / c * fm * lpm

	// Directional spreading.
	a0 := gomath.Log(2) / 4
	am := 0.13 * uStar / CapillaryPhaseSpeed
	delta := gomath.Tanh(a0 + 4*gomath.Pow(c/cp, 2.5) + am*gomath.Pow(CapillaryPhaseSpeed/c, 2.5))
	cosPhi := (float64(wind.X)*kx + float64(wind.Y)*kz) / (u * k)

	s := (1 / TwoPi) * gomath.Pow(k, -4) * (bl + bh) * (1 + delta*(2*cosPhi*cosPhi-1))
	dk := TwoPi / float64(domainSize)
	h := gomath.Sqrt(s/2) * dk
	if !finite(h) {
		return 0
	}
	return h
}

func square(x float64) float64 { return x * x }

type initialSpectrumPass struct {
	resolution int
	wind       math.Vec2
	domainSize float32
}

func (p initialSpectrumPass) Stage() gpu.Stage { return gpu.StageInitialSpectrum }

func (p initialSpectrumPass) Inputs() []gpu.Binding { return nil }

func (p initialSpectrumPass) Uniforms() []gpu.Uniform {
	return []gpu.Uniform{
		{Name: "u_wind", Value: []float32{p.wind.X, p.wind.Y}},
		{Name: "u_resolution", Value: []float32{float32(p.resolution)}},
		{Name: "u_size", Value: []float32{p.domainSize}},
	}
}

func (p initialSpectrumPass) Shade(x, y int) math.Vec4 {
	kx, kz := WaveVector(x, y, p.resolution, p.domainSize)
	return math.Vec4{float32(SpectrumAmplitude(kx, kz, p.wind, p.domainSize)), 0, 0, 0}
}

// GenerateInitialSpectrum writes (h0, 0, 0, 0) for every texel of dst.
func GenerateInitialSpectrum(dev gpu.Device, dst *gpu.Texture, wind math.Vec2, domainSize float32) error {
	if !IsPowerOfTwo(dst.Size) {
		return fmt.Errorf("initial spectrum: %w: %d", ErrNotPowerOfTwo, dst.Size)
	}
	p := initialSpectrumPass{resolution: dst.Size, wind: wind, domainSize: domainSize}
	if err := dev.Draw(p, dst); err != nil {
		return fmt.Errorf("initial spectrum: %w", err)
	}
	return nil
}
