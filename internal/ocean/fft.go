package ocean

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Li-Hsiu/waterSimulationTest/internal/gpu"
	"github.com/Li-Hsiu/waterSimulationTest/pkg/math"
)

// ErrNotPowerOfTwo is returned when a transform size is not a power of two.
var ErrNotPowerOfTwo = errors.New("resolution is not a power of two")

type subtransformPass struct {
	src        *gpu.Texture
	resolution int
	subSize    int
	horizontal bool
}

func (p subtransformPass) Stage() gpu.Stage {
	if p.horizontal {
		return gpu.StageSubtransformHorizontal
	}
	return gpu.StageSubtransformVertical
}

func (p subtransformPass) Inputs() []gpu.Binding {
	return []gpu.Binding{{Name: "u_input", Texture: p.src}}
}

func (p subtransformPass) Uniforms() []gpu.Uniform {
	return []gpu.Uniform{
		{Name: "u_transformSize", Value: []float32{float32(p.resolution)}},
		{Name: "u_subtransformSize", Value: []float32{float32(p.subSize)}},
	}
}

func (p subtransformPass) Shade(x, y int) math.Vec4 {
	idx := y
	if p.horizontal {
		idx = x
	}
	half := p.subSize / 2
	even := (idx/p.subSize)*half + idx%half
	odd := even + p.resolution/2

	var e, o math.Vec4
	if p.horizontal {
		e, o = p.src.Fetch(even, y), p.src.Fetch(odd, y)
	} else {
		e, o = p.src.Fetch(x, even), p.src.Fetch(x, odd)
	}

	arg := -TwoPi * float64(idx) / float64(p.subSize)
	tr, ti := float32(gomath.Cos(arg)), float32(gomath.Sin(arg))

	return math.Vec4{
		e[0] + tr*o[0] - ti*o[1],
		e[1] + tr*o[1] + ti*o[0],
		e[2] + tr*o[2] - ti*o[3],
		e[3] + tr*o[3] + ti*o[2],
	}
}

// InverseFFT2D transforms the packed spectrum into dst through 2·log2(N)
// Stockham passes, log2(N) along rows then log2(N) along columns. The first
// pass reads spectrum, the last writes dst and the rest alternate between the
// scratch pair. Both packed sequences (.xy and .zw) are transformed at once.
func InverseFFT2D(dev gpu.Device, spectrum *gpu.Texture, scratch *gpu.ScratchPair, dst *gpu.Texture) error {
	n := dst.Size
	if !IsPowerOfTwo(n) {
		return fmt.Errorf("fft: %w: %d", ErrNotPowerOfTwo, n)
	}
	if scratch == nil || scratch.Ping == nil || scratch.Pong == nil {
		return fmt.Errorf("fft: scratch: %w", gpu.ErrNilTexture)
	}

	iterations := 2 * log2(n)
	in := spectrum
	for i := 0; i < iterations; i++ {
		var out *gpu.Texture
		switch {
		case i == iterations-1:
			out = dst
		case i%2 == 0:
			out = scratch.Ping
		default:
			out = scratch.Pong
		}

		p := subtransformPass{
			src:        in,
			resolution: n,
			subSize:    1 << (i%(iterations/2) + 1),
			horizontal: i < iterations/2,
		}
		if err := dev.Draw(p, out); err != nil {
			return fmt.Errorf("fft pass %d/%d: %w", i+1, iterations, err)
		}
		in = out
	}
	return nil
}
