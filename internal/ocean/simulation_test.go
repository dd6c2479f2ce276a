package ocean

import (
	"errors"
	gomath "math"
	"math/rand/v2"
	"testing"

	"github.com/Li-Hsiu/waterSimulationTest/internal/gpu"
	"github.com/Li-Hsiu/waterSimulationTest/pkg/math"
)

func defaultSource() SourceConfig {
	return SourceConfig{
		Wind:       math.Vec2{X: 10, Y: 10},
		DomainSize: 250,
		Choppiness: 1.5,
		Resolution: 64,
	}
}

func TestSourceConfigValidate(t *testing.T) {
	nan := float32(gomath.NaN())
	tests := []struct {
		name    string
		mutate  func(*SourceConfig)
		wantErr bool
	}{
		{"default", func(c *SourceConfig) {}, false},
		{"resolution not power of two", func(c *SourceConfig) { c.Resolution = 48 }, true},
		{"resolution one", func(c *SourceConfig) { c.Resolution = 1 }, true},
		{"zero size", func(c *SourceConfig) { c.DomainSize = 0 }, true},
		{"NaN size", func(c *SourceConfig) { c.DomainSize = nan }, true},
		{"NaN choppiness", func(c *SourceConfig) { c.Choppiness = nan }, true},
		{"NaN wind", func(c *SourceConfig) { c.Wind.X = nan }, true},
		{"zero wind", func(c *SourceConfig) { c.Wind = math.Vec2{} }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultSource()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidSource) {
				t.Errorf("expected ErrInvalidSource, got %v", err)
			}
		})
	}
}

func TestNewWaveSourceRejectsNonPowerOfTwo(t *testing.T) {
	cfg := defaultSource()
	cfg.Resolution = 100
	_, err := NewWaveSource("bad", cfg, rand.New(rand.NewPCG(1, 1)))
	if !errors.Is(err, ErrNotPowerOfTwo) {
		t.Errorf("expected ErrNotPowerOfTwo, got %v", err)
	}
}

func TestWaveSourceSpectrumCache(t *testing.T) {
	cfg := defaultSource()
	cfg.Resolution = 16
	src, err := NewWaveSource("s", cfg, rand.New(rand.NewPCG(1, 1)))
	if err != nil {
		t.Fatal(err)
	}
	dev := testDevice()
	pool := gpu.NewScratchPool()
	pair, _ := pool.Acquire(16)

	step := func() {
		t.Helper()
		if err := src.Step(dev, pair, 0.016); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}

	step()
	first := append([]float32(nil), src.InitialSpectrum().Pix...)
	step()
	if src.Regenerations() != 1 {
		t.Errorf("unchanged parameters regenerated the spectrum: %d", src.Regenerations())
	}

	if err := src.SetChoppiness(2); err != nil {
		t.Fatal(err)
	}
	if err := src.SetWind(cfg.Wind); err != nil {
		t.Fatal(err)
	}
	step()
	if src.Regenerations() != 1 {
		t.Errorf("choppiness or identical wind should not regenerate: %d", src.Regenerations())
	}

	if err := src.SetWind(math.Vec2{X: 3, Y: 1}); err != nil {
		t.Fatal(err)
	}
	step()
	if err := src.SetWind(cfg.Wind); err != nil {
		t.Fatal(err)
	}
	step()
	if src.Regenerations() != 3 {
		t.Errorf("expected 3 regenerations, got %d", src.Regenerations())
	}
	for i, f := range src.InitialSpectrum().Pix {
		if f != first[i] {
			t.Fatalf("regenerated spectrum differs at %d: %v vs %v", i, f, first[i])
		}
	}

	if err := src.SetDomainSize(500); err != nil {
		t.Fatal(err)
	}
	step()
	if src.Regenerations() != 4 {
		t.Errorf("domain size change should regenerate, got %d", src.Regenerations())
	}
	if err := src.SetDomainSize(-1); err == nil {
		t.Error("negative domain size should be rejected")
	}
}

func TestSimulationEndToEnd(t *testing.T) {
	cfg := defaultSource()
	sim, err := NewSimulation(testDevice(), []SourceConfig{cfg}, Options{Seed: 42})
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	defer sim.Release()

	texel := float64(cfg.DomainSize) / float64(cfg.Resolution)
	bound := 4 * texel * float64(cfg.Choppiness)
	n := cfg.Resolution

	for tick := 0; tick < 100; tick++ {
		dt := float32(0.016)
		if tick == 0 {
			dt = 0
		}
		if err := sim.Tick(dt); err != nil {
			t.Fatalf("tick %d: %v", tick, err)
		}

		src := sim.Sources()[0]
		disp, normals := src.Displacement(), src.Normals()
		if !disp.Finite() || !normals.Finite() {
			t.Fatalf("tick %d: non-finite output", tick)
		}

		var sum [3]float64
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				d := disp.Fetch(x, y)
				for c := 0; c < 3; c++ {
					if gomath.Abs(float64(d[c])) > bound {
						t.Fatalf("tick %d: displacement %v at (%d,%d) exceeds %v", tick, d, x, y, bound)
					}
					sum[c] += float64(d[c])
				}

				nv := normals.Fetch(x, y)
				l := math.Vec3{X: nv[0], Y: nv[1], Z: nv[2]}.Length()
				if gomath.Abs(float64(l)-1) > 1e-3 {
					t.Fatalf("tick %d: normal %v at (%d,%d) has length %v", tick, nv, x, y, l)
				}
			}
		}
		// The DC term is zero, so the field has zero mean.
		for c := 0; c < 3; c++ {
			if mean := sum[c] / float64(n*n); gomath.Abs(mean) > 1e-3 {
				t.Fatalf("tick %d: channel %d mean %v, want ~0", tick, c, mean)
			}
		}
	}

	if sim.Ticks() != 100 {
		t.Errorf("Ticks() = %d, want 100", sim.Ticks())
	}
	if want := 99 * 0.016; gomath.Abs(sim.Elapsed()-want) > 1e-4 {
		t.Errorf("Elapsed() = %v, want %v", sim.Elapsed(), want)
	}
}

func TestSimulationClampsDeltaTime(t *testing.T) {
	cfg := defaultSource()
	cfg.Resolution = 8
	sim, err := NewSimulation(testDevice(), []SourceConfig{cfg}, Options{Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	before := append([]float32(nil), sim.Sources()[0].Phases().Pix...)

	for _, dt := range []float32{-1, float32(gomath.NaN()), float32(gomath.Inf(1))} {
		if err := sim.Tick(dt); err != nil {
			t.Fatalf("Tick(%v): %v", dt, err)
		}
	}
	after := sim.Sources()[0].Phases().Pix
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("phase %d changed on a clamped step: %v -> %v", i, before[i], after[i])
		}
	}
	if sim.Elapsed() != 0 {
		t.Errorf("Elapsed() = %v, want 0", sim.Elapsed())
	}
}

func TestSimulationSharesScratchSequentially(t *testing.T) {
	cfg := defaultSource()
	cfg.Resolution = 16
	sim, err := NewSimulation(testDevice(), []SourceConfig{cfg, cfg, cfg}, Options{Seed: 9})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := sim.Tick(0.016); err != nil {
			t.Fatal(err)
		}
	}
	if sim.ScratchPairs() != 1 {
		t.Errorf("sequential ticks allocated %d scratch pairs, want 1", sim.ScratchPairs())
	}
}

func TestSimulationParallelMatchesSequential(t *testing.T) {
	a := defaultSource()
	a.Resolution = 16
	b := a
	b.Wind = math.Vec2{X: -4, Y: 6}
	b.Choppiness = 0.5
	configs := []SourceConfig{a, b, a}

	seq, err := NewSimulation(testDevice(), configs, Options{Seed: 5})
	if err != nil {
		t.Fatal(err)
	}
	par, err := NewSimulation(testDevice(), configs, Options{Seed: 5, Parallel: true})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 4; i++ {
		if err := seq.Tick(0.02); err != nil {
			t.Fatal(err)
		}
		if err := par.Tick(0.02); err != nil {
			t.Fatal(err)
		}
	}
	for s := range configs {
		x := seq.Sources()[s].Displacement().Pix
		y := par.Sources()[s].Displacement().Pix
		for i := range x {
			if x[i] != y[i] {
				t.Fatalf("source %d texel %d: sequential %v, parallel %v", s, i, x[i], y[i])
			}
		}
	}
}

func TestNewSimulationRequiresSources(t *testing.T) {
	if _, err := NewSimulation(testDevice(), nil, Options{}); err == nil {
		t.Error("expected error for empty source list")
	}
}

func TestFieldSampling(t *testing.T) {
	calm := defaultSource()
	calm.Resolution = 8
	calm.Wind = math.Vec2{}
	sim, err := NewSimulation(testDevice(), []SourceConfig{calm}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := sim.Tick(0.1); err != nil {
		t.Fatal(err)
	}

	f := sim.Fields(0, 64)[0]
	for _, p := range []math.Vec2{{X: 0, Y: 0}, {X: 123.5, Y: -40}, {X: -900, Y: 3000}} {
		if d := f.Displacement(p); d != (math.Vec3{}) {
			t.Errorf("calm sea displacement at %v = %v, want zero", p, d)
		}
		if n := f.Normal(p); n != math.Up {
			t.Errorf("calm sea normal at %v = %v, want up", p, n)
		}
	}
}

func TestFieldScalesDisplacement(t *testing.T) {
	cfg := defaultSource()
	cfg.Resolution = 8
	src, err := NewWaveSource("s", cfg, rand.New(rand.NewPCG(1, 1)))
	if err != nil {
		t.Fatal(err)
	}
	src.Displacement().Fill(math.Vec4{1, 2, 3, 0})

	f := NewField(src, DefaultUVScale, 500)
	got := f.Displacement(math.Vec2{X: 10, Y: 20})
	want := math.Vec3{X: 2, Y: 4, Z: 6}
	if got != want {
		t.Errorf("Displacement() = %v, want %v", got, want)
	}

	// The scale follows the source when its domain size changes later.
	if err := src.SetDomainSize(500); err != nil {
		t.Fatal(err)
	}
	got = f.Displacement(math.Vec2{X: 10, Y: 20})
	want = math.Vec3{X: 1, Y: 2, Z: 3}
	if got != want {
		t.Errorf("after SetDomainSize Displacement() = %v, want %v", got, want)
	}
}
