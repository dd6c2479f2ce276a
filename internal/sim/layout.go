package sim

import (
	"fmt"

	"github.com/Li-Hsiu/waterSimulationTest/internal/config"
	"github.com/Li-Hsiu/waterSimulationTest/internal/ocean"
	"github.com/Li-Hsiu/waterSimulationTest/internal/region"
	"github.com/Li-Hsiu/waterSimulationTest/pkg/math"
)

// Surface answers blended displacement and normal queries on the sea plane.
type Surface interface {
	Sample(pos math.Vec2, viewer math.Vec3) region.Sample
}

// viewless adapts layouts that do not fade with viewer distance.
type viewless func(pos math.Vec2) region.Sample

func (f viewless) Sample(pos math.Vec2, _ math.Vec3) region.Sample { return f(pos) }

// layout is the source arrangement chosen by the config: the wave parameters
// of every source and a constructor for the surface once fields exist.
type layout struct {
	mode    string
	sources []ocean.SourceConfig
	mesh    *region.Mesh
	pairs   []region.PairRegion
	build   func(fields []region.Sampler) (Surface, error)
}

func sourceConfig(cfg *config.Config, p region.ParameterPoint) ocean.SourceConfig {
	return ocean.SourceConfig{
		Wind:       p.Wind,
		DomainSize: cfg.Ocean.DomainSize,
		Choppiness: config.ClampChoppiness(p.Choppiness),
		Resolution: cfg.Ocean.Resolution,
	}
}

// loadPointSet reads the configured points file or falls back to the
// built-in points. The config boundary ring applies unless the file has its own.
func loadPointSet(cfg *config.Config) (region.PointSet, error) {
	if cfg.Regions.PointsFile == "" {
		set := region.DefaultPointSet()
		set.NumBoundaryPoints = cfg.Regions.BoundaryPoints
		set.BoundaryRadius = cfg.Regions.BoundaryRadius
		return set, nil
	}
	set, err := region.LoadPoints(cfg.Regions.PointsFile)
	if err != nil {
		return set, err
	}
	if set.NumBoundaryPoints == 0 {
		set.NumBoundaryPoints = cfg.Regions.BoundaryPoints
		set.BoundaryRadius = cfg.Regions.BoundaryRadius
	}
	return set, nil
}

func newLayout(cfg *config.Config) (*layout, error) {
	l := &layout{mode: cfg.Regions.Mode}
	fadeD, fadeN := cfg.Regions.DisplacementFade, cfg.Regions.NormalFade

	switch cfg.Regions.Mode {
	case config.ModeSingle:
		l.sources = []ocean.SourceConfig{sourceConfig(cfg, region.ParameterPoint{
			Wind:       cfg.Ocean.Wind,
			Choppiness: cfg.Ocean.Choppiness,
		})}
		l.mesh = &region.Mesh{}
		l.build = func(fields []region.Sampler) (Surface, error) {
			return compositor(l.mesh, fields, fadeD, fadeN)
		}

	case config.ModeDelaunay:
		set, err := loadPointSet(cfg)
		if err != nil {
			return nil, err
		}
		points, err := set.Expand()
		if err != nil {
			return nil, fmt.Errorf("points: %w", err)
		}
		// Boundary ring points never own a source.
		owners := min(cfg.Ocean.MaxSources, len(set.Points))
		l.mesh, err = region.NewMesh(points, owners)
		if err != nil {
			return nil, err
		}
		for _, p := range l.mesh.SourcePoints(owners) {
			l.sources = append(l.sources, sourceConfig(cfg, p))
		}
		l.build = func(fields []region.Sampler) (Surface, error) {
			return compositor(l.mesh, fields, fadeD, fadeN)
		}

	case config.ModePairs:
		l.pairs = region.DefaultPairRegions()
		for _, r := range l.pairs {
			for _, c := range r.Corners {
				l.sources = append(l.sources, sourceConfig(cfg, c))
			}
		}
		l.build = func(fields []region.Sampler) (Surface, error) {
			named := make([]region.NamedRegion, len(l.pairs))
			for i, r := range l.pairs {
				named[i] = region.NamedRegion{
					Name:     r.Name,
					Triangle: r.Triangle(),
					Sources:  [3]region.Sampler{fields[3*i], fields[3*i+1], fields[3*i+2]},
				}
			}
			rs, err := region.NewRegionSet(named)
			if err != nil {
				return nil, err
			}
			return viewless(rs.Sample), nil
		}

	case config.ModeBand:
		set, err := loadPointSet(cfg)
		if err != nil {
			return nil, err
		}
		if len(set.Points) < 2 {
			return nil, fmt.Errorf("band layout needs 2 points, got %d", len(set.Points))
		}
		set.NumBoundaryPoints = 0
		points, err := set.Expand()
		if err != nil {
			return nil, fmt.Errorf("points: %w", err)
		}
		l.sources = []ocean.SourceConfig{sourceConfig(cfg, points[0]), sourceConfig(cfg, points[1])}
		l.build = func(fields []region.Sampler) (Surface, error) {
			return viewless(region.DefaultLinearBand(fields[0], fields[1]).Sample), nil
		}

	default:
		return nil, fmt.Errorf("unknown layout %q", cfg.Regions.Mode)
	}
	return l, nil
}

func compositor(mesh *region.Mesh, fields []region.Sampler, fadeD, fadeN region.Fade) (*region.Compositor, error) {
	c, err := region.NewCompositor(mesh, fields)
	if err != nil {
		return nil, err
	}
	c.DisplacementFade = fadeD
	c.NormalFade = fadeN
	return c, nil
}
