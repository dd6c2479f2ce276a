package ocean

import (
	"errors"
	"fmt"
	gomath "math"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/Li-Hsiu/waterSimulationTest/internal/gpu"
	"github.com/Li-Hsiu/waterSimulationTest/internal/logger"
	"github.com/Li-Hsiu/waterSimulationTest/pkg/math"
)

// ErrInvalidSource is returned by SourceConfig.Validate.
var ErrInvalidSource = errors.New("invalid wave source")

// SourceConfig holds the parameters of one independently simulated patch.
type SourceConfig struct {
	Wind       math.Vec2
	DomainSize float32
	Choppiness float32
	Resolution int
}

// Validate checks the configuration before any texture is allocated.
func (c SourceConfig) Validate() error {
	if !IsPowerOfTwo(c.Resolution) {
		return fmt.Errorf("%w: %w: %d", ErrInvalidSource, ErrNotPowerOfTwo, c.Resolution)
	}
	if !(c.DomainSize > 0) || !finite(float64(c.DomainSize)) {
		return fmt.Errorf("%w: domain size %v", ErrInvalidSource, c.DomainSize)
	}
	if !finite(float64(c.Choppiness)) {
		return fmt.Errorf("%w: choppiness %v", ErrInvalidSource, c.Choppiness)
	}
	if !finite(float64(c.Wind.X)) || !finite(float64(c.Wind.Y)) {
		return fmt.Errorf("%w: wind %v", ErrInvalidSource, c.Wind)
	}
	return nil
}

// WaveSource owns every texture of one patch. Only the phases persist from
// tick to tick; the initial spectrum is cached until wind or size change and
// the rest is rebuilt each step.
type WaveSource struct {
	name string
	cfg  SourceConfig

	initial      *gpu.Texture
	phases       [2]*gpu.Texture
	current      int
	spectrum     *gpu.Texture
	displacement *gpu.Texture
	normals      *gpu.Texture

	spectrumValid bool
	regenerations int
}

// NewWaveSource allocates the textures of a source and seeds its phases.
func NewWaveSource(name string, cfg SourceConfig, rng *rand.Rand) (*WaveSource, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("source %s: %w", name, err)
	}

	s := &WaveSource{name: name, cfg: cfg}
	n := cfg.Resolution
	nearest := gpu.Sampler{Wrap: gpu.WrapClamp, Filter: gpu.FilterNearest}
	surface := gpu.Sampler{Wrap: gpu.WrapRepeat, Filter: gpu.FilterLinear}

	textures := []struct {
		dst     **gpu.Texture
		label   string
		sampler gpu.Sampler
	}{
		{&s.initial, "initialSpectrum", nearest},
		{&s.phases[0], "pingPhase", nearest},
		{&s.phases[1], "pongPhase", nearest},
		{&s.spectrum, "spectrum", nearest},
		{&s.displacement, "displacement", surface},
		{&s.normals, "normals", surface},
	}
	for _, t := range textures {
		tex, err := gpu.NewTexture(name+"."+t.label, n, t.sampler)
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", name, err)
		}
		*t.dst = tex
	}
	s.normals.Fill(math.Vec4{0, 1, 0, 1})

	SeedPhases(s.phases[0], rng)

	logger.Debug("wave source created",
		zap.String("source", name),
		zap.Int("resolution", n),
		zap.Float32("size", cfg.DomainSize),
		zap.Float32("wind_x", cfg.Wind.X),
		zap.Float32("wind_z", cfg.Wind.Y),
		zap.Float32("choppiness", cfg.Choppiness),
	)
	return s, nil
}

// Step advances the source by deltaTime and rebuilds its displacement and
// normal textures. scratch must not be in use by any other pipeline.
func (s *WaveSource) Step(dev gpu.Device, scratch *gpu.ScratchPair, deltaTime float32) error {
	if !s.spectrumValid {
		if err := GenerateInitialSpectrum(dev, s.initial, s.cfg.Wind, s.cfg.DomainSize); err != nil {
			return fmt.Errorf("source %s: %w", s.name, err)
		}
		s.spectrumValid = true
		s.regenerations++
		logger.Debug("initial spectrum generated",
			zap.String("source", s.name),
			zap.Int("regenerations", s.regenerations),
		)
	}

	prev, next := s.phases[s.current], s.phases[1-s.current]
	if err := StepPhase(dev, prev, next, deltaTime, s.cfg.DomainSize); err != nil {
		return fmt.Errorf("source %s: %w", s.name, err)
	}
	s.current = 1 - s.current

	if err := ResolveSpectrum(dev, s.initial, next, s.spectrum, s.cfg.Choppiness, s.cfg.DomainSize); err != nil {
		return fmt.Errorf("source %s: %w", s.name, err)
	}
	if err := InverseFFT2D(dev, s.spectrum, scratch, s.displacement); err != nil {
		return fmt.Errorf("source %s: %w", s.name, err)
	}
	if err := EstimateNormals(dev, s.displacement, s.normals, s.cfg.DomainSize); err != nil {
		return fmt.Errorf("source %s: %w", s.name, err)
	}
	return nil
}

// Sync makes the host copies of the displacement and normal textures current.
func (s *WaveSource) Sync(dev gpu.Device) error {
	if err := dev.Sync(s.displacement); err != nil {
		return fmt.Errorf("source %s: %w", s.name, err)
	}
	if err := dev.Sync(s.normals); err != nil {
		return fmt.Errorf("source %s: %w", s.name, err)
	}
	return nil
}

// SetWind changes the wind and invalidates the cached spectrum when it differs.
func (s *WaveSource) SetWind(wind math.Vec2) error {
	if !finite(float64(wind.X)) || !finite(float64(wind.Y)) {
		return fmt.Errorf("source %s: %w: wind %v", s.name, ErrInvalidSource, wind)
	}
	if wind != s.cfg.Wind {
		s.cfg.Wind = wind
		s.spectrumValid = false
	}
	return nil
}

// SetDomainSize changes the patch size and invalidates the cached spectrum.
func (s *WaveSource) SetDomainSize(size float32) error {
	if !(size > 0) || gomath.IsInf(float64(size), 0) {
		return fmt.Errorf("source %s: %w: domain size %v", s.name, ErrInvalidSource, size)
	}
	if size != s.cfg.DomainSize {
		s.cfg.DomainSize = size
		s.spectrumValid = false
	}
	return nil
}

// SetChoppiness changes the horizontal displacement scale. It does not touch
// the cached spectrum.
func (s *WaveSource) SetChoppiness(c float32) error {
	if !finite(float64(c)) {
		return fmt.Errorf("source %s: %w: choppiness %v", s.name, ErrInvalidSource, c)
	}
	s.cfg.Choppiness = c
	return nil
}

// Name returns the source label.
func (s *WaveSource) Name() string { return s.name }

// Config returns the current parameters.
func (s *WaveSource) Config() SourceConfig { return s.cfg }

// Regenerations counts how many times the initial spectrum was rebuilt.
func (s *WaveSource) Regenerations() int { return s.regenerations }

// InitialSpectrum returns the cached initial spectrum texture.
func (s *WaveSource) InitialSpectrum() *gpu.Texture { return s.initial }

// Phases returns the phase texture written by the last step.
func (s *WaveSource) Phases() *gpu.Texture { return s.phases[s.current] }

// Spectrum returns the resolved complex field of the last step.
func (s *WaveSource) Spectrum() *gpu.Texture { return s.spectrum }

// Displacement returns the (dx, height, dz, residual) texture.
func (s *WaveSource) Displacement() *gpu.Texture { return s.displacement }

// Normals returns the unit normal texture.
func (s *WaveSource) Normals() *gpu.Texture { return s.normals }

// Release frees the device resources of every owned texture.
func (s *WaveSource) Release(dev gpu.Device) {
	for _, t := range []*gpu.Texture{s.initial, s.phases[0], s.phases[1], s.spectrum, s.displacement, s.normals} {
		if t != nil {
			dev.Release(t)
		}
	}
}
