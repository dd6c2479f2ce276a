// Package camera describes the viewpoint the ocean is shaded from.
package camera

import (
	gomath "math"

	"github.com/Li-Hsiu/waterSimulationTest/pkg/math"
)

// Camera is a perspective camera looking from Position at Target.
type Camera struct {
	Position math.Vec3 `yaml:"position"`
	Target   math.Vec3 `yaml:"target"`
	FovY     float32   `yaml:"fov"` // degrees
	Near     float32   `yaml:"near"`
	Far      float32   `yaml:"far"`
}

// Default returns a camera 200 units above the origin looking ahead and down.
func Default() Camera {
	return Camera{
		Position: math.Vec3{Y: 200},
		Target:   math.Vec3{Z: -400},
		FovY:     55,
		Near:     0.5,
		Far:      50000,
	}
}

// up returns a world up vector that is not parallel to the view direction.
func (c Camera) up() math.Vec3 {
	if c.Position.XZ() == c.Target.XZ() {
		return math.Vec3{Z: -1}
	}
	return math.Up
}

// ViewMatrix returns the world to view transform.
func (c Camera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Target, c.up())
}

// ProjectionMatrix returns the perspective projection for the given aspect ratio.
func (c Camera) ProjectionMatrix(aspect float32) math.Mat4 {
	if !(aspect > 0) {
		aspect = 1
	}
	return math.Perspective(c.FovY*gomath.Pi/180, aspect, c.Near, c.Far)
}

// Mirrored returns the camera reflected in the y = 0 plane.
func (c Camera) Mirrored() Camera {
	m := c
	m.Position.Y = -m.Position.Y
	m.Target.Y = -m.Target.Y
	return m
}

// Height returns the camera height above the sea plane.
func (c Camera) Height() float32 {
	return c.Position.Y
}
