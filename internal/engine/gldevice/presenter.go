package gldevice

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Li-Hsiu/waterSimulationTest/internal/engine/gldevice/shaders"
	"github.com/Li-Hsiu/waterSimulationTest/internal/engine/shader"
)

// Presenter draws an RGBA image over the default framebuffer.
type Presenter struct {
	program *shader.Program
	texture uint32
	vao     uint32
	width   int32
	height  int32
}

// NewPresenter compiles the present program.
func NewPresenter() (*Presenter, error) {
	prog, err := shader.NewProgram("present", shaders.FullscreenVertexShader, shaders.PresentFragmentShader)
	if err != nil {
		return nil, err
	}
	p := &Presenter{program: prog}
	gl.GenVertexArrays(1, &p.vao)
	gl.GenTextures(1, &p.texture)
	gl.BindTexture(gl.TEXTURE_2D, p.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	return p, nil
}

// Present uploads img and draws it to fill a width x height viewport.
func (p *Presenter) Present(img *image.RGBA, width, height int) error {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return fmt.Errorf("present: empty image")
	}
	if img.Stride != b.Dx()*4 {
		return fmt.Errorf("present: unsupported stride %d", img.Stride)
	}

	gl.BindTexture(gl.TEXTURE_2D, p.texture)
	w, h := int32(b.Dx()), int32(b.Dy())
	if w != p.width || h != p.height {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
		p.width, p.height = w, h
	} else {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, w, h, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	p.program.Use()
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, p.texture)
	p.program.SetSampler("u_image", 0)

	gl.BindVertexArray(p.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)
	return nil
}

// ReadPixels returns the default framebuffer as RGBA bytes, bottom row first.
func (p *Presenter) ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}

// Destroy frees the program, texture and VAO.
func (p *Presenter) Destroy() {
	p.program.Destroy()
	if p.texture != 0 {
		gl.DeleteTextures(1, &p.texture)
		p.texture = 0
	}
	if p.vao != 0 {
		gl.DeleteVertexArrays(1, &p.vao)
		p.vao = 0
	}
}
