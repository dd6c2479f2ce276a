package ocean

import (
	"fmt"

	"github.com/Li-Hsiu/waterSimulationTest/internal/gpu"
	"github.com/Li-Hsiu/waterSimulationTest/pkg/math"
)

type normalPass struct {
	displacement *gpu.Texture
	resolution   int
	domainSize   float32
}

func (p normalPass) Stage() gpu.Stage { return gpu.StageNormals }

func (p normalPass) Inputs() []gpu.Binding {
	return []gpu.Binding{{Name: "u_displacementMap", Texture: p.displacement}}
}

func (p normalPass) Uniforms() []gpu.Uniform {
	return []gpu.Uniform{
		{Name: "u_resolution", Value: []float32{float32(p.resolution)}},
		{Name: "u_size", Value: []float32{p.domainSize}},
	}
}

func (p normalPass) tap(x, y int) math.Vec3 {
	n := p.resolution
	d := p.displacement.Fetch((x%n+n)%n, (y%n+n)%n)
	return math.Vec3{X: d[0], Y: d[1], Z: d[2]}
}

func (p normalPass) Shade(x, y int) math.Vec4 {
	ts := p.domainSize / float32(p.resolution)
	center := p.tap(x, y)

	right := math.Vec3{X: ts}.Add(p.tap(x+1, y)).Sub(center)
	left := math.Vec3{X: -ts}.Add(p.tap(x-1, y)).Sub(center)
	top := math.Vec3{Z: -ts}.Add(p.tap(x, y-1)).Sub(center)
	bottom := math.Vec3{Z: ts}.Add(p.tap(x, y+1)).Sub(center)

	sum := right.Cross(top).
		Add(top.Cross(left)).
		Add(left.Cross(bottom)).
		Add(bottom.Cross(right))

	n := sum.Normalize()
	if n == (math.Vec3{}) || !n.IsFinite() {
		n = math.Up
	}
	return math.Vec4{n.X, n.Y, n.Z, 1}
}

// EstimateNormals derives unit surface normals from a periodic displacement
// field using its four wrapped neighbours.
func EstimateNormals(dev gpu.Device, displacement, dst *gpu.Texture, domainSize float32) error {
	p := normalPass{displacement: displacement, resolution: dst.Size, domainSize: domainSize}
	if err := dev.Draw(p, dst); err != nil {
		return fmt.Errorf("normals: %w", err)
	}
	return nil
}
