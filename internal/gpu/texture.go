// Package gpu models the render-to-texture substrate the ocean pipeline runs on:
// square float RGBA textures, immutable full-screen passes and the devices that
// rasterize them.
package gpu

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Li-Hsiu/waterSimulationTest/pkg/math"
)

// Wrap selects how out-of-range texel coordinates are resolved.
type Wrap int

const (
	WrapClamp Wrap = iota
	WrapRepeat
)

// Filter selects how Sample reconstructs values between texel centers.
type Filter int

const (
	FilterNearest Filter = iota
	FilterLinear
)

// Sampler holds the texture sampling state.
type Sampler struct {
	Wrap   Wrap
	Filter Filter
}

var (
	// ErrSizeMismatch is returned when textures that must agree in size do not.
	ErrSizeMismatch = errors.New("texture size mismatch")
	// ErrInvalidSize is returned for non-positive texture sizes.
	ErrInvalidSize = errors.New("invalid texture size")
)

// Texture is a square RGBA float32 render target.
// Pix holds Size*Size texels in row-major order, 4 floats each.
type Texture struct {
	Label   string
	Size    int
	Sampler Sampler
	Pix     []float32

	hostDirty bool // host copy changed, device copy must be re-uploaded
	stale     bool // device copy changed, host copy must be read back
}

// NewTexture allocates a zeroed texture.
func NewTexture(label string, size int, sampler Sampler) (*Texture, error) {
	if size < 1 {
		return nil, fmt.Errorf("texture %q: %w: %d", label, ErrInvalidSize, size)
	}
	return &Texture{
		Label:     label,
		Size:      size,
		Sampler:   sampler,
		Pix:       make([]float32, size*size*4),
		hostDirty: true,
	}, nil
}

func (t *Texture) offset(x, y int) int {
	return (y*t.Size + x) * 4
}

// wrap resolves an integer coordinate according to the sampler wrap mode.
func (t *Texture) wrap(i int) int {
	n := t.Size
	if t.Sampler.Wrap == WrapRepeat {
		i %= n
		if i < 0 {
			i += n
		}
		return i
	}
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Fetch returns the texel at integer coordinates with the wrap mode applied.
func (t *Texture) Fetch(x, y int) math.Vec4 {
	o := t.offset(t.wrap(x), t.wrap(y))
	return math.Vec4{t.Pix[o], t.Pix[o+1], t.Pix[o+2], t.Pix[o+3]}
}

// Store writes a texel. Coordinates must be in range.
func (t *Texture) Store(x, y int, v math.Vec4) {
	o := t.offset(x, y)
	copy(t.Pix[o:o+4], v[:])
	t.hostDirty = true
}

// Fill sets every texel to v.
func (t *Texture) Fill(v math.Vec4) {
	for o := 0; o < len(t.Pix); o += 4 {
		copy(t.Pix[o:o+4], v[:])
	}
	t.hostDirty = true
}

// CopyFrom copies the contents of src, which must have the same size.
func (t *Texture) CopyFrom(src *Texture) error {
	if src.Size != t.Size {
		return fmt.Errorf("copy %q -> %q: %w", src.Label, t.Label, ErrSizeMismatch)
	}
	copy(t.Pix, src.Pix)
	t.hostDirty = true
	return nil
}

// Sample returns the value at normalized coordinates (u, v) the way texture2D
// does: texel i covers [i/N, (i+1)/N) and its center sits at (i+0.5)/N.
func (t *Texture) Sample(u, v float32) math.Vec4 {
	n := float64(t.Size)
	if t.Sampler.Filter == FilterNearest {
		x := int(gomath.Floor(float64(u) * n))
		y := int(gomath.Floor(float64(v) * n))
		return t.Fetch(x, y)
	}

	fu := float64(u)*n - 0.5
	fv := float64(v)*n - 0.5
	x0 := gomath.Floor(fu)
	y0 := gomath.Floor(fv)
	tx := float32(fu - x0)
	ty := float32(fv - y0)
	ix, iy := int(x0), int(y0)

	a := t.Fetch(ix, iy)
	b := t.Fetch(ix+1, iy)
	c := t.Fetch(ix, iy+1)
	d := t.Fetch(ix+1, iy+1)

	var out math.Vec4
	for i := range out {
		top := a[i] + (b[i]-a[i])*tx
		bottom := c[i] + (d[i]-c[i])*tx
		out[i] = top + (bottom-top)*ty
	}
	return out
}

// Finite reports whether every component is a finite number.
func (t *Texture) Finite() bool {
	for _, f := range t.Pix {
		if gomath.IsNaN(float64(f)) || gomath.IsInf(float64(f), 0) {
			return false
		}
	}
	return true
}

// HostDirty reports whether the host copy changed since the last upload.
func (t *Texture) HostDirty() bool { return t.hostDirty }

// MarkUploaded clears the host-dirty flag.
func (t *Texture) MarkUploaded() { t.hostDirty = false }

// Stale reports whether a device wrote the texture after the last read back.
func (t *Texture) Stale() bool { return t.stale }

// MarkStale flags the host copy as out of date.
func (t *Texture) MarkStale() { t.stale = true }

// MarkSynced clears the stale flag after a read back.
func (t *Texture) MarkSynced() { t.stale = false }
