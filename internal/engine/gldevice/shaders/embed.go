// Package shaders provides embedded GLSL sources for the simulation passes.
package shaders

import _ "embed"

// FullscreenVertexShader draws one triangle covering the viewport.
//
//go:embed fullscreen.vert
var FullscreenVertexShader string

// InitialSpectrumFragmentShader writes the initial amplitude h0 per wave vector.
//
//go:embed initial_spectrum.frag
var InitialSpectrumFragmentShader string

// PhaseFragmentShader advances the per-texel phase by ω(k)·dt.
//
//go:embed phase.frag
var PhaseFragmentShader string

// SpectrumFragmentShader resolves the time-varying packed spectrum.
//
//go:embed spectrum.frag
var SpectrumFragmentShader string

// SubtransformHorizontalFragmentShader is one Stockham pass along rows.
//
//go:embed subtransform_horizontal.frag
var SubtransformHorizontalFragmentShader string

// SubtransformVerticalFragmentShader is one Stockham pass along columns.
//
//go:embed subtransform_vertical.frag
var SubtransformVerticalFragmentShader string

// NormalsFragmentShader estimates normals from the displacement map.
//
//go:embed normals.frag
var NormalsFragmentShader string

// PresentFragmentShader copies an image texture to the screen.
//
//go:embed present.frag
var PresentFragmentShader string
