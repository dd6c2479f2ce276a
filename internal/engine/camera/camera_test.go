package camera

import (
	gomath "math"
	"testing"

	"github.com/Li-Hsiu/waterSimulationTest/pkg/math"
)

func TestViewMatrixMovesEyeToOrigin(t *testing.T) {
	cams := []Camera{
		Default(),
		{Position: math.Vec3{X: 10, Y: 300, Z: 5}, Target: math.Vec3{X: 10, Z: 5}, FovY: 55, Near: 1, Far: 100},
	}
	for _, c := range cams {
		v := c.ViewMatrix()
		p := v.MulVec4(math.Vec4{c.Position.X, c.Position.Y, c.Position.Z, 1})
		for i := 0; i < 3; i++ {
			if gomath.Abs(float64(p[i])) > 1e-3 || gomath.IsNaN(float64(p[i])) {
				t.Errorf("camera %+v: eye maps to %v", c, p)
				break
			}
		}
	}
}

func TestMirrored(t *testing.T) {
	c := Default()
	m := c.Mirrored()
	if m.Position.Y != -c.Position.Y || m.Target.Y != -c.Target.Y {
		t.Errorf("Mirrored = %+v", m)
	}
	if m.Position.X != c.Position.X || m.FovY != c.FovY {
		t.Error("Mirrored changed more than heights")
	}
}

func TestProjectionMatrixAspectFallback(t *testing.T) {
	c := Default()
	if c.ProjectionMatrix(0) != c.ProjectionMatrix(1) {
		t.Error("non-positive aspect should fall back to 1")
	}
}
