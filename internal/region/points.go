package region

import (
	"fmt"
	gomath "math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Li-Hsiu/waterSimulationTest/pkg/math"
)

// ParameterPoint is a point on the ocean plane carrying its own wave parameters.
type ParameterPoint struct {
	Position   math.Vec2
	Wind       math.Vec2
	Choppiness float32
}

// PointSet is the parameter points file: rows of [x, z, windX, windZ, choppiness]
// plus an optional ring of calm boundary points. JSON files parse as well.
type PointSet struct {
	Points            [][]float32 `yaml:"points"`
	NumBoundaryPoints int         `yaml:"numBoundaryPoints"`
	BoundaryRadius    float32     `yaml:"boundaryRadius"`
}

// DefaultPointSet returns six sources around the origin and a calm ring.
func DefaultPointSet() PointSet {
	return PointSet{
		Points: [][]float32{
			{0, 0, 10, 10, 1.5},
			{1500, 0, 20, 5, 2.5},
			{-1500, 0, 5, -5, 1},
			{0, 1500, -10, 10, 1.5},
			{0, -1500, 10, -10, 2},
			{1500, 1500, 15, 0, 0.5},
		},
		NumBoundaryPoints: 12,
		BoundaryRadius:    4000,
	}
}

// Expand converts the rows to points and appends the boundary ring.
func (s PointSet) Expand() ([]ParameterPoint, error) {
	out := make([]ParameterPoint, 0, len(s.Points)+s.NumBoundaryPoints)
	for i, row := range s.Points {
		if len(row) != 5 {
			return nil, fmt.Errorf("point %d: expected 5 values, got %d", i, len(row))
		}
		out = append(out, ParameterPoint{
			Position:   math.Vec2{X: row[0], Y: row[1]},
			Wind:       math.Vec2{X: row[2], Y: row[3]},
			Choppiness: row[4],
		})
	}
	out = append(out, BoundaryRing(s.NumBoundaryPoints, s.BoundaryRadius)...)
	return out, nil
}

// BoundaryRing returns n calm points evenly spaced on a circle around the origin.
func BoundaryRing(n int, radius float32) []ParameterPoint {
	if n <= 0 {
		return nil
	}
	ring := make([]ParameterPoint, n)
	for i := range ring {
		angle := 2 * gomath.Pi * float64(i) / float64(n)
		ring[i] = ParameterPoint{
			Position: math.Vec2{
				X: radius * float32(gomath.Cos(angle)),
				Y: radius * float32(gomath.Sin(angle)),
			},
		}
	}
	return ring
}

// LoadPoints reads a parameter points file.
func LoadPoints(path string) (PointSet, error) {
	var set PointSet
	data, err := os.ReadFile(path)
	if err != nil {
		return set, fmt.Errorf("reading points: %w", err)
	}
	if err := yaml.Unmarshal(data, &set); err != nil {
		return set, fmt.Errorf("parsing points %s: %w", path, err)
	}
	return set, nil
}
