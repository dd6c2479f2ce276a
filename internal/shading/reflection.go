// Package shading turns displaced surface samples into colors: a planar
// reflection lookup, fresnel, sun specular and an exposure tone map.
package shading

import (
	"fmt"

	"github.com/Li-Hsiu/waterSimulationTest/internal/gpu"
	"github.com/Li-Hsiu/waterSimulationTest/pkg/math"
)

// ReflectionSource supplies the planar reflection the surface samples
// projectively. TextureMatrix maps world positions to texture space.
type ReflectionSource interface {
	Texture() *gpu.Texture
	TextureMatrix() math.Mat4
}

// Bias maps clip space [-1, 1] to texture space [0, 1].
var Bias = math.Translate(0.5, 0.5, 0.5).Mul(math.Scale(0.5, 0.5, 0.5))

// MirrorMatrix returns bias * projection * view for a mirrored camera.
func MirrorMatrix(projection, view math.Mat4) math.Mat4 {
	return Bias.Mul(projection).Mul(view)
}

// SkyReflection is a reflection texture holding a vertical sky gradient.
type SkyReflection struct {
	tex    *gpu.Texture
	matrix math.Mat4
}

// NewSkyReflection fills a size x size texture from horizon (v = 0) to zenith (v = 1).
func NewSkyReflection(size int, horizon, zenith math.Vec3, matrix math.Mat4) (*SkyReflection, error) {
	tex, err := gpu.NewTexture("sky reflection", size, gpu.Sampler{Wrap: gpu.WrapClamp, Filter: gpu.FilterLinear})
	if err != nil {
		return nil, fmt.Errorf("sky reflection: %w", err)
	}
	for y := 0; y < size; y++ {
		var t float32
		if size > 1 {
			t = float32(y) / float32(size-1)
		}
		c := horizon.Lerp(zenith, t)
		for x := 0; x < size; x++ {
			tex.Store(x, y, math.Vec4{c.X, c.Y, c.Z, 1})
		}
	}
	return &SkyReflection{tex: tex, matrix: matrix}, nil
}

// Texture returns the gradient texture.
func (s *SkyReflection) Texture() *gpu.Texture { return s.tex }

// TextureMatrix returns the world to texture transform.
func (s *SkyReflection) TextureMatrix() math.Mat4 { return s.matrix }

// SetTextureMatrix replaces the transform, typically once per frame as the camera moves.
func (s *SkyReflection) SetTextureMatrix(m math.Mat4) { s.matrix = m }
