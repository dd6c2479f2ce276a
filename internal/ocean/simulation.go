package ocean

import (
	"errors"
	"fmt"
	gomath "math"
	"math/rand/v2"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Li-Hsiu/waterSimulationTest/internal/gpu"
	"github.com/Li-Hsiu/waterSimulationTest/internal/logger"
)

// Options configures a Simulation.
type Options struct {
	// Parallel runs source pipelines concurrently, each on its own scratch pair.
	// Only valid for devices that accept draws from several goroutines.
	Parallel bool
	// Seed drives the initial phases; equal seeds give equal animations.
	Seed uint64
}

// Simulation owns the device handle, the wave sources and the scratch pool
// lent to their transforms.
type Simulation struct {
	dev      gpu.Device
	sources  []*WaveSource
	pool     *gpu.ScratchPool
	parallel bool

	elapsed float64
	ticks   int
}

// NewSimulation validates every source configuration and allocates the sources.
func NewSimulation(dev gpu.Device, configs []SourceConfig, opts Options) (*Simulation, error) {
	if len(configs) == 0 {
		return nil, errors.New("simulation: no wave sources")
	}

	parallel := opts.Parallel
	if parallel && !gpu.Concurrent(dev) {
		logger.Warn("device is single-threaded, running sources sequentially", zap.String("device", dev.Name()))
		parallel = false
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	sim := &Simulation{
		dev:      dev,
		pool:     gpu.NewScratchPool(),
		parallel: parallel,
	}
	for i, cfg := range configs {
		src, err := NewWaveSource(fmt.Sprintf("source%d", i), cfg, rng)
		if err != nil {
			sim.Release()
			return nil, fmt.Errorf("simulation: %w", err)
		}
		sim.sources = append(sim.sources, src)
	}

	logger.Info("simulation ready",
		zap.String("device", dev.Name()),
		zap.Int("sources", len(sim.sources)),
		zap.Bool("parallel", parallel),
	)
	return sim, nil
}

// Tick advances every source by deltaTime seconds. Negative or non-finite
// steps are treated as 0; a late frame just passes a larger step next time.
func (s *Simulation) Tick(deltaTime float32) error {
	dt := deltaTime
	if !(dt > 0) || gomath.IsInf(float64(dt), 0) {
		dt = 0
	}

	if s.parallel && len(s.sources) > 1 {
		var g errgroup.Group
		for _, src := range s.sources {
			g.Go(func() error { return s.step(src, dt) })
		}
		if err := g.Wait(); err != nil {
			return err
		}
	} else {
		for _, src := range s.sources {
			if err := s.step(src, dt); err != nil {
				return err
			}
		}
	}

	for _, src := range s.sources {
		if err := src.Sync(s.dev); err != nil {
			return err
		}
	}

	s.elapsed += float64(dt)
	s.ticks++
	return nil
}

func (s *Simulation) step(src *WaveSource, dt float32) error {
	pair, err := s.pool.Acquire(src.Config().Resolution)
	if err != nil {
		return fmt.Errorf("source %s: %w", src.Name(), err)
	}
	defer s.pool.Release(pair)
	return src.Step(s.dev, pair, dt)
}

// Sources returns the simulated sources in configuration order.
func (s *Simulation) Sources() []*WaveSource { return s.sources }

// Device returns the device the passes run on.
func (s *Simulation) Device() gpu.Device { return s.dev }

// Elapsed returns the simulated time in seconds.
func (s *Simulation) Elapsed() float64 { return s.elapsed }

// Ticks returns the number of completed ticks.
func (s *Simulation) Ticks() int { return s.ticks }

// ScratchPairs returns how many scratch pairs the pool allocated.
func (s *Simulation) ScratchPairs() int { return s.pool.Created() }

// Fields returns a sampler per source.
func (s *Simulation) Fields(uvScale, geometrySize float32) []*Field {
	fields := make([]*Field, len(s.sources))
	for i, src := range s.sources {
		fields[i] = NewField(src, uvScale, geometrySize)
	}
	return fields
}

// Release frees every source and scratch texture.
func (s *Simulation) Release() {
	for _, src := range s.sources {
		src.Release(s.dev)
	}
	s.pool.Drain(s.dev)
}
