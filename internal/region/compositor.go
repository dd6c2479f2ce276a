package region

import (
	"errors"

	"github.com/Li-Hsiu/waterSimulationTest/pkg/math"
)

// Sampler is a per-source field queried at world-space (x, z).
type Sampler interface {
	Displacement(pos math.Vec2) math.Vec3
	Normal(pos math.Vec2) math.Vec3
}

// Sample is a blended surface query result.
type Sample struct {
	Displacement math.Vec3
	Normal       math.Vec3
	// Inside is false when the point fell outside every region.
	Inside bool
	// Triangle is the matched triangle or region index, -1 when outside.
	Triangle int
}

// ErrNoSources is returned when a compositor is built without samplers.
var ErrNoSources = errors.New("no wave sources")

// Compositor blends source fields over a triangulated point set.
type Compositor struct {
	mesh    *Mesh
	sources []Sampler

	DisplacementFade Fade
	NormalFade       Fade
}

// NewCompositor binds a mesh to the source samplers its refs index.
func NewCompositor(mesh *Mesh, sources []Sampler) (*Compositor, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}
	return &Compositor{
		mesh:             mesh,
		sources:          sources,
		DisplacementFade: DefaultDisplacementFade(),
		NormalFade:       DefaultNormalFade(),
	}, nil
}

// Mesh returns the triangulation.
func (c *Compositor) Mesh() *Mesh { return c.mesh }

// Average returns the unweighted mean of every source at pos.
func (c *Compositor) Average(pos math.Vec2) (math.Vec3, math.Vec3) {
	return average(c.sources, pos)
}

func average(sources []Sampler, pos math.Vec2) (math.Vec3, math.Vec3) {
	var d, n math.Vec3
	for _, s := range sources {
		d = d.Add(s.Displacement(pos))
		n = n.Add(s.Normal(pos))
	}
	inv := 1 / float32(len(sources))
	return d.Scale(inv), n.Scale(inv)
}

// Blend returns the unfaded displacement and normal at pos.
func (c *Compositor) Blend(pos math.Vec2) Sample {
	tri, ok := c.mesh.Locate(pos)
	if !ok {
		d, n := c.Average(pos)
		return Sample{Displacement: d, Normal: unit(n), Triangle: -1}
	}

	w, ok := c.mesh.Triangles[tri].Barycentric(pos)
	if !ok {
		d, n := c.Average(pos)
		return Sample{Displacement: d, Normal: unit(n), Triangle: -1}
	}

	var d, n math.Vec3
	var avgD, avgN math.Vec3
	haveAvg := false
	for k, ref := range c.mesh.Refs[tri] {
		var vd, vn math.Vec3
		if ref == AverageRef || int(ref) < 0 || int(ref) >= len(c.sources) {
			if !haveAvg {
				avgD, avgN = c.Average(pos)
				haveAvg = true
			}
			vd, vn = avgD, avgN
		} else {
			s := c.sources[ref]
			vd, vn = s.Displacement(pos), s.Normal(pos)
		}
		d = d.Add(vd.Scale(w[k]))
		n = n.Add(vn.Scale(w[k]))
	}
	return Sample{Displacement: d, Normal: unit(n), Inside: true, Triangle: tri}
}

// Sample blends the sources at pos and applies the distance fades relative to
// the viewer: the final displacement is scaled down and the normal turned
// toward up. Non-finite results come back as flat water.
func (c *Compositor) Sample(pos math.Vec2, viewer math.Vec3) Sample {
	s := c.Blend(pos)
	dist := viewer.Distance(math.Vec3{X: pos.X, Z: pos.Y})
	s.Displacement = s.Displacement.Scale(c.DisplacementFade.Factor(dist))
	s.Normal = unit(math.Up.Lerp(s.Normal, c.NormalFade.Factor(dist)))
	return sanitize(s)
}

func unit(n math.Vec3) math.Vec3 {
	u := n.Normalize()
	if u == (math.Vec3{}) || !u.IsFinite() {
		return math.Up
	}
	return u
}

func sanitize(s Sample) Sample {
	if !s.Displacement.IsFinite() {
		s.Displacement = math.Vec3{}
	}
	if !s.Normal.IsFinite() {
		s.Normal = math.Up
	}
	return s
}
