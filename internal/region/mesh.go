package region

import (
	"fmt"

	"github.com/Li-Hsiu/waterSimulationTest/pkg/math"
)

// SourceRef names the wave source a triangle vertex takes its contribution from.
type SourceRef int

// AverageRef marks a vertex that contributes the unweighted average of all sources.
const AverageRef SourceRef = -1

// Mesh is the triangulated point set with a source reference per vertex.
type Mesh struct {
	Points    []ParameterPoint
	Triangles []Triangle
	Vertices  [][3]int
	Refs      [][3]SourceRef
}

// NewMesh triangulates points. The first maxSources points each drive their
// own source; every later point, boundary ring included, references the average.
func NewMesh(points []ParameterPoint, maxSources int) (*Mesh, error) {
	positions := make([]math.Vec2, len(points))
	for i, p := range points {
		positions[i] = p.Position
	}
	idx, err := Triangulate(positions)
	if err != nil {
		return nil, fmt.Errorf("triangulating %d points: %w", len(points), err)
	}

	m := &Mesh{
		Points:    points,
		Triangles: make([]Triangle, len(idx)),
		Vertices:  idx,
		Refs:      make([][3]SourceRef, len(idx)),
	}
	for i, v := range idx {
		m.Triangles[i] = Triangle{A: positions[v[0]], B: positions[v[1]], C: positions[v[2]]}
		for k := 0; k < 3; k++ {
			if v[k] < maxSources {
				m.Refs[i][k] = SourceRef(v[k])
			} else {
				m.Refs[i][k] = AverageRef
			}
		}
	}
	return m, nil
}

// SourcePoints returns the points that own a wave source.
func (m *Mesh) SourcePoints(maxSources int) []ParameterPoint {
	return m.Points[:min(maxSources, len(m.Points))]
}

// Locate returns the first triangle containing p in triangulation order.
// A point on a shared edge resolves to whichever triangle comes first.
func (m *Mesh) Locate(p math.Vec2) (int, bool) {
	for i, t := range m.Triangles {
		if t.Contains(p) {
			return i, true
		}
	}
	return -1, false
}
