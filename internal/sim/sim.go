// Package sim ties the wave sources, the region layout and the shading
// together into one steppable ocean.
package sim

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Li-Hsiu/waterSimulationTest/internal/config"
	"github.com/Li-Hsiu/waterSimulationTest/internal/engine/water"
	"github.com/Li-Hsiu/waterSimulationTest/internal/gpu"
	"github.com/Li-Hsiu/waterSimulationTest/internal/logger"
	"github.com/Li-Hsiu/waterSimulationTest/internal/ocean"
	"github.com/Li-Hsiu/waterSimulationTest/internal/region"
	"github.com/Li-Hsiu/waterSimulationTest/internal/shading"
	"github.com/Li-Hsiu/waterSimulationTest/pkg/math"
)

// Sky reflection texture size.
const skySize = 64

var zenith = math.Vec3{X: 0.25, Y: 0.45, Z: 0.85}

// Simulator is a configured ocean: sources on a device, the surface that
// blends them and the reflection used to shade it.
type Simulator struct {
	cfg     *config.Config
	ocean   *ocean.Simulation
	fields  []*ocean.Field
	layout  *layout
	surface Surface
	sky     *shading.SkyReflection
	grid    *water.Grid
}

// New builds the layout selected by cfg.Regions.Mode and allocates its
// sources on dev. cfg must already be validated.
func New(cfg *config.Config, dev gpu.Device) (*Simulator, error) {
	l, err := newLayout(cfg)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}

	oc, err := ocean.NewSimulation(dev, l.sources, ocean.Options{
		Parallel: cfg.Ocean.ParallelSources,
		Seed:     cfg.Ocean.Seed,
	})
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}

	fields := oc.Fields(cfg.Ocean.UVScale, float32(cfg.Ocean.Resolution))
	samplers := make([]region.Sampler, len(fields))
	for i, f := range fields {
		samplers[i] = f
	}
	surface, err := l.build(samplers)
	if err != nil {
		oc.Release()
		return nil, fmt.Errorf("sim: %w", err)
	}

	sky, err := shading.NewSkyReflection(skySize, cfg.Shading.SkyColor, zenith, reflectionMatrix(cfg.Camera, 1))
	if err != nil {
		oc.Release()
		return nil, fmt.Errorf("sim: %w", err)
	}

	s := &Simulator{
		cfg:     cfg,
		ocean:   oc,
		fields:  fields,
		layout:  l,
		surface: surface,
		sky:     sky,
		grid:    water.BuildGrid(cfg.Ocean.GridResolution, cfg.Ocean.GridSize),
	}

	logFields := []zap.Field{
		zap.String("mode", l.mode),
		zap.Int("sources", len(l.sources)),
		zap.Int("resolution", cfg.Ocean.Resolution),
	}
	if l.mesh != nil {
		logFields = append(logFields, zap.Int("triangles", len(l.mesh.Triangles)))
	}
	logger.Info("ocean ready", logFields...)
	return s, nil
}

// Tick advances every source by deltaTime seconds.
func (s *Simulator) Tick(deltaTime float32) error {
	return s.ocean.Tick(deltaTime)
}

// Run ticks n times with the configured step and calls after, if set,
// following each tick. A non-nil error from after stops the run.
func (s *Simulator) Run(n int, after func(tick int) error) error {
	start := time.Now()
	for i := 1; i <= n; i++ {
		if err := s.Tick(s.cfg.Simulation.DeltaTime); err != nil {
			return fmt.Errorf("tick %d: %w", i, err)
		}
		if after != nil {
			if err := after(i); err != nil {
				return err
			}
		}
	}
	logger.Debug("run finished", zap.Int("ticks", n), zap.Duration("wall", time.Since(start)))
	return nil
}

// Surface returns the blended surface.
func (s *Simulator) Surface() Surface { return s.surface }

// Mode returns the active layout mode.
func (s *Simulator) Mode() string { return s.layout.mode }

// Mesh returns the triangulation of the delaunay and single layouts, or nil.
func (s *Simulator) Mesh() *region.Mesh { return s.layout.mesh }

// Sources returns the wave sources in layout order.
func (s *Simulator) Sources() []*ocean.WaveSource { return s.ocean.Sources() }

// Ocean returns the underlying source simulation.
func (s *Simulator) Ocean() *ocean.Simulation { return s.ocean }

// Grid returns the rest grid Deform displaces.
func (s *Simulator) Grid() *water.Grid { return s.grid }

// Sky returns the reflection the surface is shaded with.
func (s *Simulator) Sky() *shading.SkyReflection { return s.sky }

// Release frees the source textures.
func (s *Simulator) Release() {
	s.ocean.Release()
}
