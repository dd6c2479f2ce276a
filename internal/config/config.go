// Package config handles simulation configuration loading and management.
package config

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Li-Hsiu/waterSimulationTest/internal/engine/camera"
	"github.com/Li-Hsiu/waterSimulationTest/internal/region"
	"github.com/Li-Hsiu/waterSimulationTest/internal/shading"
	"github.com/Li-Hsiu/waterSimulationTest/pkg/math"
)

// Config holds all simulation settings.
type Config struct {
	Ocean      OceanConfig      `yaml:"ocean"`
	Simulation SimulationConfig `yaml:"simulation"`
	Regions    RegionsConfig    `yaml:"regions"`
	Shading    shading.Params   `yaml:"shading"`
	Camera     camera.Camera    `yaml:"camera"`
	Output     OutputConfig     `yaml:"output"`
	Window     WindowConfig     `yaml:"window"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// OceanConfig holds wave source and surface grid settings.
type OceanConfig struct {
	Resolution      int       `yaml:"resolution"`  // FFT size, power of two
	DomainSize      float32   `yaml:"domain_size"` // world size of one simulated patch
	Wind            math.Vec2 `yaml:"wind"`        // used by the single-source layout
	Choppiness      float32   `yaml:"choppiness"`
	UVScale         float32   `yaml:"uv_scale"`
	MaxSources      int       `yaml:"max_sources"`
	ParallelSources bool      `yaml:"parallel_sources"`
	Seed            uint64    `yaml:"seed"`
	GridResolution  int       `yaml:"grid_resolution"`
	GridSize        float32   `yaml:"grid_size"`
}

// SimulationConfig holds the run loop settings.
type SimulationConfig struct {
	Backend   string  `yaml:"backend"` // cpu or gl
	Workers   int     `yaml:"workers"` // CPU row workers, 0 = GOMAXPROCS
	Ticks     int     `yaml:"ticks"`   // headless run length
	DeltaTime float32 `yaml:"delta_time"`
}

// RegionsConfig selects how sources are laid out across the plane.
type RegionsConfig struct {
	Mode             string      `yaml:"mode"` // delaunay, pairs, band or single
	PointsFile       string      `yaml:"points_file"`
	BoundaryPoints   int         `yaml:"boundary_points"`
	BoundaryRadius   float32     `yaml:"boundary_radius"`
	DisplacementFade region.Fade `yaml:"displacement_fade"`
	NormalFade       region.Fade `yaml:"normal_fade"`
	ShowTriangles    bool        `yaml:"show_triangles"`
}

// OutputConfig holds snapshot settings.
type OutputConfig struct {
	Dir       string  `yaml:"dir"`
	Prefix    string  `yaml:"prefix"`
	Every     int     `yaml:"every"` // ticks between snapshots, 0 = only the last
	ImageSize int     `yaml:"image_size"`
	Extent    float32 `yaml:"extent"` // world units covered by a rendered image
}

// WindowConfig holds viewer window settings.
type WindowConfig struct {
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	VSync  bool `yaml:"vsync"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Layout modes.
const (
	ModeDelaunay = "delaunay"
	ModePairs    = "pairs"
	ModeBand     = "band"
	ModeSingle   = "single"
)

// Backends.
const (
	BackendCPU = "cpu"
	BackendGL  = "gl"
)

// Choppiness is clamped to this range.
const (
	MinChoppiness = 0
	MaxChoppiness = 3
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Ocean: OceanConfig{
			Resolution:     64,
			DomainSize:     250,
			Wind:           math.Vec2{X: 10, Y: 10},
			Choppiness:     1.5,
			UVScale:        0.002,
			MaxSources:     6,
			Seed:           1,
			GridResolution: 64,
			GridSize:       5000,
		},
		Simulation: SimulationConfig{
			Backend:   BackendCPU,
			Ticks:     100,
			DeltaTime: 0.016,
		},
		Regions: RegionsConfig{
			Mode:             ModeDelaunay,
			BoundaryPoints:   12,
			BoundaryRadius:   4000,
			DisplacementFade: region.DefaultDisplacementFade(),
			NormalFade:       region.DefaultNormalFade(),
		},
		Shading: shading.DefaultParams(),
		Camera:  camera.Default(),
		Output: OutputConfig{
			Dir:       "snapshots",
			Prefix:    "ocean",
			Every:     0,
			ImageSize: 256,
			Extent:    2000,
		},
		Window: WindowConfig{
			Width:  1024,
			Height: 768,
			VSync:  true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// ClampChoppiness limits c to [MinChoppiness, MaxChoppiness]. NaN becomes 0.
func ClampChoppiness(c float32) float32 {
	if !(c > MinChoppiness) {
		return MinChoppiness
	}
	return min(c, MaxChoppiness)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate rejects settings the simulation cannot run with and clamps
// choppiness into range.
func (c *Config) Validate() error {
	o := &c.Ocean
	if o.Resolution < 2 || o.Resolution&(o.Resolution-1) != 0 {
		return invalid("ocean.resolution %d is not a power of two", o.Resolution)
	}
	if !(o.DomainSize > 0) || gomath.IsInf(float64(o.DomainSize), 0) {
		return invalid("ocean.domain_size %v must be positive", o.DomainSize)
	}
	if !(o.UVScale > 0) {
		return invalid("ocean.uv_scale %v must be positive", o.UVScale)
	}
	if o.MaxSources < 1 {
		return invalid("ocean.max_sources %d must be at least 1", o.MaxSources)
	}
	if o.GridResolution < 2 {
		return invalid("ocean.grid_resolution %d must be at least 2", o.GridResolution)
	}
	if !(o.GridSize > 0) {
		return invalid("ocean.grid_size %v must be positive", o.GridSize)
	}
	o.Choppiness = ClampChoppiness(o.Choppiness)

	s := &c.Simulation
	switch s.Backend {
	case BackendCPU, BackendGL:
	default:
		return invalid("simulation.backend %q", s.Backend)
	}
	if s.Ticks < 0 {
		return invalid("simulation.ticks %d is negative", s.Ticks)
	}
	if !(s.DeltaTime >= 0) {
		return invalid("simulation.delta_time %v is negative", s.DeltaTime)
	}

	switch c.Regions.Mode {
	case ModeDelaunay, ModePairs, ModeBand, ModeSingle:
	default:
		return invalid("regions.mode %q", c.Regions.Mode)
	}
	if c.Regions.BoundaryPoints < 0 {
		return invalid("regions.boundary_points %d is negative", c.Regions.BoundaryPoints)
	}

	if c.Output.ImageSize < 1 {
		return invalid("output.image_size %d must be positive", c.Output.ImageSize)
	}
	if !(c.Output.Extent > 0) {
		return invalid("output.extent %v must be positive", c.Output.Extent)
	}
	if c.Output.Every < 0 {
		return invalid("output.every %d is negative", c.Output.Every)
	}
	return nil
}
