package ocean

import (
	"errors"
	gomath "math"
	"math/cmplx"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/Li-Hsiu/waterSimulationTest/internal/gpu"
	"github.com/Li-Hsiu/waterSimulationTest/pkg/math"
)

func runFFT(t *testing.T, in *gpu.Texture) *gpu.Texture {
	t.Helper()
	pool := gpu.NewScratchPool()
	pair, err := pool.Acquire(in.Size)
	if err != nil {
		t.Fatal(err)
	}
	defer pool.Release(pair)

	out := newTex(t, "out", in.Size)
	if err := InverseFFT2D(testDevice(), in, pair, out); err != nil {
		t.Fatalf("InverseFFT2D: %v", err)
	}
	return out
}

func TestFFTImpulseMatchesClosedForm(t *testing.T) {
	const n = 16
	const n0, m0 = 3, 5

	in := newTex(t, "in", n)
	in.Store(n0, m0, math.Vec4{1, 0, 0, 1})
	out := runFFT(t, in)

	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			want := cmplx.Exp(complex(0, -2*gomath.Pi*float64(n0*x+m0*y)/n))
			v := out.Fetch(x, y)
			a := complex(float64(v[0]), float64(v[1]))
			b := complex(float64(v[2]), float64(v[3]))
			if cmplx.Abs(a-want) > 1e-4 {
				t.Fatalf("xy at (%d,%d) = %v, want %v", x, y, a, want)
			}
			if cmplx.Abs(b-1i*want) > 1e-4 {
				t.Fatalf("zw at (%d,%d) = %v, want %v", x, y, b, 1i*want)
			}
		}
	}
}

// dft2 evaluates the same transform with gonum, rows then columns.
func dft2(in [][]complex128) [][]complex128 {
	n := len(in)
	f := fourier.NewCmplxFFT(n)

	rows := make([][]complex128, n)
	for y := range in {
		rows[y] = f.Coefficients(nil, in[y])
	}
	out := make([][]complex128, n)
	for y := range out {
		out[y] = make([]complex128, n)
	}
	col := make([]complex128, n)
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			col[y] = rows[y][x]
		}
		res := f.Coefficients(nil, col)
		for y := 0; y < n; y++ {
			out[y][x] = res[y]
		}
	}
	return out
}

func TestFFTMatchesReferenceDFT(t *testing.T) {
	for _, n := range []int{2, 4, 32} {
		rng := rand.New(rand.NewPCG(uint64(n), 7))
		in := newTex(t, "in", n)
		seqA := make([][]complex128, n)
		seqB := make([][]complex128, n)
		for y := 0; y < n; y++ {
			seqA[y] = make([]complex128, n)
			seqB[y] = make([]complex128, n)
			for x := 0; x < n; x++ {
				v := math.Vec4{
					float32(rng.NormFloat64()), float32(rng.NormFloat64()),
					float32(rng.NormFloat64()), float32(rng.NormFloat64()),
				}
				in.Store(x, y, v)
				seqA[y][x] = complex(float64(v[0]), float64(v[1]))
				seqB[y][x] = complex(float64(v[2]), float64(v[3]))
			}
		}

		out := runFFT(t, in)
		wantA, wantB := dft2(seqA), dft2(seqB)

		var peak, worst float64
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				v := out.Fetch(x, y)
				a := complex(float64(v[0]), float64(v[1]))
				b := complex(float64(v[2]), float64(v[3]))
				peak = gomath.Max(peak, gomath.Max(cmplx.Abs(wantA[y][x]), cmplx.Abs(wantB[y][x])))
				worst = gomath.Max(worst, gomath.Max(cmplx.Abs(a-wantA[y][x]), cmplx.Abs(b-wantB[y][x])))
			}
		}
		if worst > 1e-4*peak {
			t.Errorf("n=%d: max error %g exceeds 1e-4 of peak %g", n, worst, peak)
		}
	}
}

func TestFFTRejectsNonPowerOfTwo(t *testing.T) {
	in := newTex(t, "in", 12)
	out := newTex(t, "out", 12)
	pair := &gpu.ScratchPair{Ping: newTex(t, "ping", 12), Pong: newTex(t, "pong", 12)}

	err := InverseFFT2D(testDevice(), in, pair, out)
	if !errors.Is(err, ErrNotPowerOfTwo) {
		t.Errorf("expected ErrNotPowerOfTwo, got %v", err)
	}
}

func TestFFTRejectsMismatchedScratch(t *testing.T) {
	in := newTex(t, "in", 8)
	out := newTex(t, "out", 8)
	pair := &gpu.ScratchPair{Ping: newTex(t, "ping", 4), Pong: newTex(t, "pong", 4)}

	if err := InverseFFT2D(testDevice(), in, pair, out); !errors.Is(err, gpu.ErrSizeMismatch) {
		t.Errorf("expected ErrSizeMismatch, got %v", err)
	}
}

func TestFFTOfRealEvenFieldIsReal(t *testing.T) {
	// With no chop and φ = 0 the packed sequence is i·h with h even, so the
	// transform lands entirely in the imaginary (height) channel.
	const n = 32
	_, spectrum := resolved(t, n, 0)
	out := runFFT(t, spectrum)

	var peak, residue float64
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			v := out.Fetch(x, y)
			peak = gomath.Max(peak, gomath.Abs(float64(v[1])))
			residue = gomath.Max(residue, gomath.Abs(float64(v[0])))
		}
	}
	if peak == 0 {
		t.Fatal("expected a non-zero height field")
	}
	if residue > 1e-4*peak {
		t.Errorf("real residue %g exceeds 1e-4 of peak height %g", residue, peak)
	}
}
