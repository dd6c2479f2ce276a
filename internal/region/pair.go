package region

import (
	"errors"
	"fmt"

	"github.com/Li-Hsiu/waterSimulationTest/pkg/math"
)

// SentinelHeight is the displacement height outside every named region.
// Renderers treat it as "no surface here" and discard the fragment.
const SentinelHeight = -100

// MaxNamedRegions bounds a RegionSet.
const MaxNamedRegions = 6

// ErrTooManyRegions is returned when a RegionSet exceeds MaxNamedRegions.
var ErrTooManyRegions = errors.New("too many named regions")

// NamedRegion is one triangle whose corners each carry their own source.
type NamedRegion struct {
	Name     string
	Triangle Triangle
	Sources  [3]Sampler
}

// RegionSet is the fixed-region variant: a handful of triangles, first match wins.
type RegionSet struct {
	regions []NamedRegion
}

// NewRegionSet validates and stores the regions in priority order.
func NewRegionSet(regions []NamedRegion) (*RegionSet, error) {
	if len(regions) > MaxNamedRegions {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyRegions, len(regions), MaxNamedRegions)
	}
	for _, r := range regions {
		for k, s := range r.Sources {
			if s == nil {
				return nil, fmt.Errorf("region %q corner %d: %w", r.Name, k, ErrNoSources)
			}
		}
	}
	return &RegionSet{regions: regions}, nil
}

// Regions returns the configured regions.
func (rs *RegionSet) Regions() []NamedRegion { return rs.regions }

// Sample blends the three corner sources of the first region containing pos.
// Outside every region it returns the sentinel height with Inside false.
func (rs *RegionSet) Sample(pos math.Vec2) Sample {
	for i, r := range rs.regions {
		if !r.Triangle.Contains(pos) {
			continue
		}
		w, ok := r.Triangle.Barycentric(pos)
		if !ok {
			continue
		}
		var d, n math.Vec3
		for k, s := range r.Sources {
			d = d.Add(s.Displacement(pos).Scale(w[k]))
			n = n.Add(s.Normal(pos).Scale(w[k]))
		}
		return sanitize(Sample{Displacement: d, Normal: unit(n), Inside: true, Triangle: i})
	}
	return Sample{
		Displacement: math.Vec3{Y: SentinelHeight},
		Normal:       math.Up,
		Triangle:     -1,
	}
}

// PairRegion is a named triangle whose corners carry their own wave parameters.
type PairRegion struct {
	Name    string
	Corners [3]ParameterPoint
}

func corner(x, z, windX, windZ, chop float32) ParameterPoint {
	return ParameterPoint{
		Position:   math.Vec2{X: x, Y: z},
		Wind:       math.Vec2{X: windX, Y: windZ},
		Choppiness: chop,
	}
}

// DefaultPairRegions returns two triangles meeting along z = 0, a calm
// northern half and a rough southern half.
func DefaultPairRegions() []PairRegion {
	return []PairRegion{
		{
			Name: "north",
			Corners: [3]ParameterPoint{
				corner(0, 600, 10, 0.1, 0),
				corner(-1000, -2, 10, 0.1, 0),
				corner(1000, -2, -20, 0, 5),
			},
		},
		{
			Name: "south",
			Corners: [3]ParameterPoint{
				corner(0, -600, 10, 0.1, 0),
				corner(-1000, 2, 10, 0.1, 0),
				corner(1000, 2, -20, 0, 5),
			},
		},
	}
}

// Triangle returns the region outline.
func (r PairRegion) Triangle() Triangle {
	return Triangle{A: r.Corners[0].Position, B: r.Corners[1].Position, C: r.Corners[2].Position}
}
