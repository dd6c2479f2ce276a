// Package gldevice runs simulation passes on OpenGL 4.1 core. Every pass is
// a full-screen triangle drawn into a float framebuffer.
package gldevice

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Li-Hsiu/waterSimulationTest/internal/engine/framebuffer"
	"github.com/Li-Hsiu/waterSimulationTest/internal/engine/gldevice/shaders"
	"github.com/Li-Hsiu/waterSimulationTest/internal/engine/shader"
	"github.com/Li-Hsiu/waterSimulationTest/internal/gpu"
	"github.com/Li-Hsiu/waterSimulationTest/internal/logger"
)

// FragmentShader returns the GLSL source for a stage.
func FragmentShader(s gpu.Stage) (string, error) {
	switch s {
	case gpu.StageInitialSpectrum:
		return shaders.InitialSpectrumFragmentShader, nil
	case gpu.StagePhase:
		return shaders.PhaseFragmentShader, nil
	case gpu.StageSpectrum:
		return shaders.SpectrumFragmentShader, nil
	case gpu.StageSubtransformHorizontal:
		return shaders.SubtransformHorizontalFragmentShader, nil
	case gpu.StageSubtransformVertical:
		return shaders.SubtransformVerticalFragmentShader, nil
	case gpu.StageNormals:
		return shaders.NormalsFragmentShader, nil
	}
	return "", fmt.Errorf("no shader for %s", s)
}

// Device implements gpu.Device with OpenGL. It must be created and used on
// the thread that owns the GL context.
type Device struct {
	programs map[gpu.Stage]*shader.Program
	targets  map[*gpu.Texture]*framebuffer.Framebuffer
	vao      uint32
	draws    int
}

// New compiles a program per stage. The GL context must already be current
// and initialized, as window.New leaves it.
func New() (*Device, error) {
	d := &Device{
		programs: make(map[gpu.Stage]*shader.Program),
		targets:  make(map[*gpu.Texture]*framebuffer.Framebuffer),
	}
	for _, s := range gpu.Stages() {
		src, err := FragmentShader(s)
		if err != nil {
			d.Destroy()
			return nil, err
		}
		p, err := shader.NewProgram(s.String(), shaders.FullscreenVertexShader, src)
		if err != nil {
			d.Destroy()
			return nil, err
		}
		d.programs[s] = p
	}

	// Core profile needs a bound VAO even though the triangle has no attributes.
	gl.GenVertexArrays(1, &d.vao)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.BLEND)
	return d, nil
}

// Name implements gpu.Device.
func (d *Device) Name() string { return "gl" }

// Draws returns the number of passes drawn so far.
func (d *Device) Draws() int { return d.draws }

// target returns the framebuffer backing t, creating it and uploading host
// data as needed.
func (d *Device) target(t *gpu.Texture) (*framebuffer.Framebuffer, error) {
	fb, ok := d.targets[t]
	if !ok {
		var err error
		fb, err = framebuffer.New(t.Size, t.Sampler)
		if err != nil {
			return nil, fmt.Errorf("texture %q: %w", t.Label, err)
		}
		d.targets[t] = fb
		logger.Debug("gl target created", zap.String("texture", t.Label), zap.Int("size", t.Size))
	}
	if t.HostDirty() {
		if err := fb.Upload(t.Pix); err != nil {
			return nil, fmt.Errorf("texture %q: %w", t.Label, err)
		}
		t.MarkUploaded()
	}
	return fb, nil
}

// Draw implements gpu.Device.
func (d *Device) Draw(p gpu.Pass, dst *gpu.Texture) error {
	if err := gpu.CheckPass(p, dst); err != nil {
		return err
	}
	prog, ok := d.programs[p.Stage()]
	if !ok {
		return fmt.Errorf("no program for %s", p.Stage())
	}

	out, err := d.target(dst)
	if err != nil {
		return err
	}

	prog.Use()
	for i, in := range p.Inputs() {
		fb, err := d.target(in.Texture)
		if err != nil {
			return err
		}
		gl.ActiveTexture(gl.TEXTURE0 + uint32(i))
		gl.BindTexture(gl.TEXTURE_2D, fb.ColorTexture())
		prog.SetSampler(in.Name, int32(i))
	}
	for _, u := range p.Uniforms() {
		if err := prog.SetFloats(u.Name, u.Value); err != nil {
			return err
		}
	}

	restore := out.BindWithViewport()
	gl.BindVertexArray(d.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)
	restore()

	// The target now holds device-side results the host has not seen.
	dst.MarkUploaded()
	dst.MarkStale()
	d.draws++
	return nil
}

// Sync implements gpu.Device by reading the framebuffer back into t.Pix.
func (d *Device) Sync(t *gpu.Texture) error {
	if !t.Stale() {
		return nil
	}
	fb, ok := d.targets[t]
	if !ok {
		t.MarkSynced()
		return nil
	}
	if err := fb.ReadPixels(t.Pix); err != nil {
		return fmt.Errorf("sync %q: %w", t.Label, err)
	}
	t.MarkSynced()
	return nil
}

// Release implements gpu.Device.
func (d *Device) Release(t *gpu.Texture) {
	if fb, ok := d.targets[t]; ok {
		fb.Destroy()
		delete(d.targets, t)
	}
}

// Targets returns the number of live framebuffers.
func (d *Device) Targets() int { return len(d.targets) }

// Destroy frees every program and target.
func (d *Device) Destroy() {
	for s, p := range d.programs {
		p.Destroy()
		delete(d.programs, s)
	}
	for t, fb := range d.targets {
		fb.Destroy()
		delete(d.targets, t)
	}
	if d.vao != 0 {
		gl.DeleteVertexArrays(1, &d.vao)
		d.vao = 0
	}
}
