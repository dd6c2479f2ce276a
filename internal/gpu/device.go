package gpu

import (
	"errors"
	"fmt"

	"github.com/Li-Hsiu/waterSimulationTest/pkg/math"
)

// Stage identifies which pipeline kernel a pass runs.
type Stage int

const (
	StageInitialSpectrum Stage = iota
	StagePhase
	StageSpectrum
	StageSubtransformHorizontal
	StageSubtransformVertical
	StageNormals
)

var stageNames = [...]string{
	StageInitialSpectrum:        "initial_spectrum",
	StagePhase:                  "phase",
	StageSpectrum:               "spectrum",
	StageSubtransformHorizontal: "subtransform_horizontal",
	StageSubtransformVertical:   "subtransform_vertical",
	StageNormals:                "normals",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}

// Stages lists every stage in pipeline order.
func Stages() []Stage {
	return []Stage{
		StageInitialSpectrum,
		StagePhase,
		StageSpectrum,
		StageSubtransformHorizontal,
		StageSubtransformVertical,
		StageNormals,
	}
}

// Binding attaches a texture to a named sampler slot.
type Binding struct {
	Name    string
	Texture *Texture
}

// Uniform is a named scalar or vector parameter (1 to 4 floats).
type Uniform struct {
	Name  string
	Value []float32
}

// Pass is one full-screen draw. Implementations are immutable values built per
// dispatch; Shade computes the output texel at integer coordinates (x, y).
type Pass interface {
	Stage() Stage
	Inputs() []Binding
	Uniforms() []Uniform
	Shade(x, y int) math.Vec4
}

// Device rasterizes passes into textures.
type Device interface {
	Name() string
	// Draw runs p for every texel of dst.
	Draw(p Pass, dst *Texture) error
	// Sync makes the host copy of t current.
	Sync(t *Texture) error
	// Release frees any device resources held for t.
	Release(t *Texture)
}

var (
	// ErrFeedbackLoop is returned when a pass samples the texture it renders into.
	ErrFeedbackLoop = errors.New("pass reads its own render target")
	// ErrNilTexture is returned when a pass input or target is missing.
	ErrNilTexture = errors.New("nil texture")
)

// CheckPass validates the bindings of p against dst.
func CheckPass(p Pass, dst *Texture) error {
	if dst == nil {
		return fmt.Errorf("%s target: %w", p.Stage(), ErrNilTexture)
	}
	for _, in := range p.Inputs() {
		if in.Texture == nil {
			return fmt.Errorf("%s input %q: %w", p.Stage(), in.Name, ErrNilTexture)
		}
		if in.Texture == dst {
			return fmt.Errorf("%s input %q: %w", p.Stage(), in.Name, ErrFeedbackLoop)
		}
		if in.Texture.Size != dst.Size {
			return fmt.Errorf("%s input %q (%d) vs target %q (%d): %w",
				p.Stage(), in.Name, in.Texture.Size, dst.Label, dst.Size, ErrSizeMismatch)
		}
	}
	return nil
}

// Concurrent reports whether dev accepts Draw calls from several goroutines
// at once. Devices opt in with a Concurrent() bool method.
func Concurrent(dev Device) bool {
	c, ok := dev.(interface{ Concurrent() bool })
	return ok && c.Concurrent()
}
