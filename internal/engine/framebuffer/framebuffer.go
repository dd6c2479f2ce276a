// Package framebuffer provides float render targets for offscreen passes.
package framebuffer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Li-Hsiu/waterSimulationTest/internal/gpu"
)

// Framebuffer is a square RGBA32F color texture attached to an FBO. Passes
// write every texel, so there is no depth attachment.
type Framebuffer struct {
	fbo          uint32
	colorTexture uint32
	size         int32
}

// New creates a size x size target whose texture samples with sampler.
func New(size int, sampler gpu.Sampler) (*Framebuffer, error) {
	if size < 1 {
		return nil, fmt.Errorf("creating framebuffer: %w: %d", gpu.ErrInvalidSize, size)
	}
	fb := &Framebuffer{size: int32(size)}
	if err := fb.create(sampler); err != nil {
		return nil, fmt.Errorf("creating framebuffer: %w", err)
	}
	return fb, nil
}

func glWrap(w gpu.Wrap) int32 {
	if w == gpu.WrapRepeat {
		return gl.REPEAT
	}
	return gl.CLAMP_TO_EDGE
}

func glFilter(f gpu.Filter) int32 {
	if f == gpu.FilterLinear {
		return gl.LINEAR
	}
	return gl.NEAREST
}

func (fb *Framebuffer) create(sampler gpu.Sampler) error {
	gl.GenFramebuffers(1, &fb.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)

	gl.GenTextures(1, &fb.colorTexture)
	gl.BindTexture(gl.TEXTURE_2D, fb.colorTexture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA32F, fb.size, fb.size, 0, gl.RGBA, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, glFilter(sampler.Filter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glFilter(sampler.Filter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, glWrap(sampler.Wrap))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, glWrap(sampler.Wrap))
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, fb.colorTexture, 0)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		fb.Destroy()
		return fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}
	return nil
}

// BindWithViewport binds the target and sets the viewport to cover it.
// The returned function restores the previous framebuffer and viewport.
func (fb *Framebuffer) BindWithViewport() func() {
	var prevFBO int32
	var prevViewport [4]int32
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &prevFBO)
	gl.GetIntegerv(gl.VIEWPORT, &prevViewport[0])

	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)
	gl.Viewport(0, 0, fb.size, fb.size)

	return func() {
		gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(prevFBO))
		gl.Viewport(prevViewport[0], prevViewport[1], prevViewport[2], prevViewport[3])
	}
}

// ColorTexture returns the color attachment texture name.
func (fb *Framebuffer) ColorTexture() uint32 { return fb.colorTexture }

// Size returns the side length in texels.
func (fb *Framebuffer) Size() int { return int(fb.size) }

// Upload replaces the texture contents with pix (size*size*4 floats, row 0 first).
func (fb *Framebuffer) Upload(pix []float32) error {
	if want := int(fb.size * fb.size * 4); len(pix) != want {
		return fmt.Errorf("upload: expected %d floats, got %d: %w", want, len(pix), gpu.ErrSizeMismatch)
	}
	gl.BindTexture(gl.TEXTURE_2D, fb.colorTexture)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, fb.size, fb.size, gl.RGBA, gl.FLOAT, gl.Ptr(pix))
	return nil
}

// ReadPixels copies the color attachment into pix. Row 0 is the bottom row,
// matching texel y = 0.
func (fb *Framebuffer) ReadPixels(pix []float32) error {
	if want := int(fb.size * fb.size * 4); len(pix) != want {
		return fmt.Errorf("read pixels: expected %d floats, got %d: %w", want, len(pix), gpu.ErrSizeMismatch)
	}
	var prevFBO int32
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &prevFBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)

	gl.ReadPixels(0, 0, fb.size, fb.size, gl.RGBA, gl.FLOAT, gl.Ptr(pix))

	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(prevFBO))
	return nil
}

// Destroy releases the FBO and its texture.
func (fb *Framebuffer) Destroy() {
	if fb.fbo != 0 {
		gl.DeleteFramebuffers(1, &fb.fbo)
		fb.fbo = 0
	}
	if fb.colorTexture != 0 {
		gl.DeleteTextures(1, &fb.colorTexture)
		fb.colorTexture = 0
	}
}
