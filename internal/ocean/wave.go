// Package ocean implements the spectral wave pipeline: initial spectrum, phase
// integration, spectrum resolve, the Stockham inverse FFT and normal estimation,
// plus the per-source state and the simulation that drives them.
package ocean

import gomath "math"

const (
	// Gravity is the gravitational acceleration in m/s².
	Gravity = 9.81
	// CapillaryPeak is the wavenumber of the capillary-gravity peak (rad/m).
	CapillaryPeak = 370.0
	// CapillaryPhaseSpeed is the minimum phase speed at CapillaryPeak (m/s).
	CapillaryPhaseSpeed = 0.23
	// WaveAge is the inverse wave age of a fully developed sea.
	WaveAge = 0.84
	// JONSWAPGamma is the peak enhancement factor.
	JONSWAPGamma = 1.7

	TwoPi = 2 * gomath.Pi
)

// Omega returns the angular frequency of a wave with wavenumber k using the
// capillary-gravity dispersion relation.
func Omega(k float64) float64 {
	r := k / CapillaryPeak
	return gomath.Sqrt(Gravity * k * (1 + r*r))
}

// FoldIndex maps texel index n in [0, size) to the centered frequency range
// [-size/2, size/2).
func FoldIndex(n, size int) int {
	if n < size/2 {
		return n
	}
	return n - size
}

// WaveVector returns the wave vector K of texel (x, y) for a patch of
// domainSize world units sampled at resolution texels.
func WaveVector(x, y, resolution int, domainSize float32) (kx, kz float64) {
	dk := TwoPi / float64(domainSize)
	return dk * float64(FoldIndex(x, resolution)), dk * float64(FoldIndex(y, resolution))
}

// IsPowerOfTwo reports whether n is a power of two no smaller than 2.
func IsPowerOfTwo(n int) bool {
	return n >= 2 && n&(n-1) == 0
}

func log2(n int) int {
	l := 0
	for n > 1 {
		n >>= 1
		l++
	}
	return l
}

func finite(f float64) bool {
	return !gomath.IsNaN(f) && !gomath.IsInf(f, 0)
}
