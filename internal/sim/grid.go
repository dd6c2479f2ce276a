package sim

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Li-Hsiu/waterSimulationTest/pkg/math"
)

// DeformedGrid holds the displaced vertices of the surface grid.
type DeformedGrid struct {
	Positions []math.Vec3
	Normals   []math.Vec3
	Inside    []bool
}

// rows runs fn for every row in [0, n) on up to GOMAXPROCS goroutines.
func rows(n int, fn func(row int)) {
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for r := 0; r < n; r++ {
		g.Go(func() error {
			fn(r)
			return nil
		})
	}
	_ = g.Wait()
}

// Deform displaces every grid vertex by the blended surface seen from viewer.
// Inside is false for vertices no region covers.
func (s *Simulator) Deform(viewer math.Vec3) *DeformedGrid {
	g := s.grid
	n := len(g.Positions)
	m := &DeformedGrid{
		Positions: make([]math.Vec3, n),
		Normals:   make([]math.Vec3, n),
		Inside:    make([]bool, n),
	}
	rows(g.Resolution, func(z int) {
		for x := 0; x < g.Resolution; x++ {
			i := g.Index(x, z)
			rest := g.Positions[i]
			smp := s.surface.Sample(rest, viewer)
			m.Positions[i] = math.Vec3{X: rest.X, Z: rest.Y}.Add(smp.Displacement)
			m.Normals[i] = smp.Normal
			m.Inside[i] = smp.Inside
		}
	})
	return m
}

// HeightRange returns the lowest and highest displaced height over the
// vertices some region covers. ok is false when none is covered.
func (d *DeformedGrid) HeightRange() (lo, hi float32, ok bool) {
	for i, p := range d.Positions {
		if !d.Inside[i] {
			continue
		}
		if !ok {
			lo, hi, ok = p.Y, p.Y, true
			continue
		}
		lo, hi = min(lo, p.Y), max(hi, p.Y)
	}
	return lo, hi, ok
}
