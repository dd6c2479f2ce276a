package ocean

import "github.com/Li-Hsiu/waterSimulationTest/pkg/math"

// DefaultUVScale maps world units to texture coordinates.
const DefaultUVScale = 0.002

// Field samples one source's displacement and normal textures at world-space
// (x, z) positions. It only reads the textures; Simulation.Tick keeps them current.
type Field struct {
	src          *WaveSource
	uvScale      float32
	geometrySize float32
}

// NewField wraps the output textures of src. Displacements are scaled by
// geometrySize over the source's current domain size.
func NewField(src *WaveSource, uvScale, geometrySize float32) *Field {
	if uvScale == 0 {
		uvScale = DefaultUVScale
	}
	return &Field{
		src:          src,
		uvScale:      uvScale,
		geometrySize: geometrySize,
	}
}

func (f *Field) uv(pos math.Vec2) (float32, float32) {
	return pos.X * f.uvScale, pos.Y * f.uvScale
}

// Displacement returns the scaled (dx, height, dz) at pos.
func (f *Field) Displacement(pos math.Vec2) math.Vec3 {
	d := f.src.Displacement().Sample(f.uv(pos))
	scale := f.geometrySize / f.src.Config().DomainSize
	return math.Vec3{X: d[0], Y: d[1], Z: d[2]}.Scale(scale)
}

// Normal returns the unit normal at pos.
func (f *Field) Normal(pos math.Vec2) math.Vec3 {
	n := f.src.Normals().Sample(f.uv(pos))
	v := math.Vec3{X: n[0], Y: n[1], Z: n[2]}.Normalize()
	if v == (math.Vec3{}) {
		return math.Up
	}
	return v
}
