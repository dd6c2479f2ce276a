// Package water provides ocean surface grid geometry.
package water

import "github.com/Li-Hsiu/waterSimulationTest/pkg/math"

// Grid is a square lattice of rest positions on the y = 0 plane, centered
// on the origin, with triangle indices ready for GPU upload.
type Grid struct {
	Resolution int         // vertices per side
	Size       float32     // world extent of one side
	Positions  []math.Vec2 // rest (x, z), row-major, row = z
	Indices    []uint32    // two counter-clockwise triangles per cell
}

// BuildGrid creates a resolution x resolution grid spanning size world units.
// Resolutions below 2 are raised to 2.
func BuildGrid(resolution int, size float32) *Grid {
	resolution = max(resolution, 2)
	step := size / float32(resolution-1)
	half := size / 2

	g := &Grid{
		Resolution: resolution,
		Size:       size,
		Positions:  make([]math.Vec2, 0, resolution*resolution),
		Indices:    make([]uint32, 0, (resolution-1)*(resolution-1)*6),
	}
	for z := 0; z < resolution; z++ {
		for x := 0; x < resolution; x++ {
			g.Positions = append(g.Positions, math.Vec2{
				X: float32(x)*step - half,
				Y: float32(z)*step - half,
			})
		}
	}

	// Both triangles of a cell face +y.
	r := uint32(resolution)
	for z := uint32(0); z < r-1; z++ {
		for x := uint32(0); x < r-1; x++ {
			i := z*r + x
			g.Indices = append(g.Indices,
				i, i+r, i+1,
				i+1, i+r, i+r+1,
			)
		}
	}
	return g
}

// Index returns the vertex index of lattice cell (x, z).
func (g *Grid) Index(x, z int) int {
	return z*g.Resolution + x
}
