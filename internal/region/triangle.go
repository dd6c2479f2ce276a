// Package region blends the output of several wave sources across the ocean
// plane, either over a Delaunay triangulation of parameter points or over a
// small set of named triangles.
package region

import (
	gomath "math"

	"github.com/Li-Hsiu/waterSimulationTest/pkg/math"
)

// Triangle is a triangle on the XZ plane (Vec2.Y holds z).
type Triangle struct {
	A, B, C math.Vec2
}

// orientation2D returns positive if p is left of a->b, negative if right and
// zero if collinear. Computed in float64 so large coordinates keep their sign.
func orientation2D(a, b, p math.Vec2) float64 {
	return (float64(b.X)-float64(a.X))*(float64(p.Y)-float64(a.Y)) -
		(float64(b.Y)-float64(a.Y))*(float64(p.X)-float64(a.X))
}

// SignedArea returns twice the signed area, positive for counter-clockwise.
func (t Triangle) SignedArea() float64 {
	return orientation2D(t.A, t.B, t.C)
}

// Degenerate reports whether the triangle has zero or non-finite area.
func (t Triangle) Degenerate() bool {
	a := t.SignedArea()
	return a == 0 || gomath.IsNaN(a) || gomath.IsInf(a, 0)
}

// Areas returns the edge functions of p. Entry i is twice the signed area of
// the sub-triangle opposite vertex i: (B,C,p), (C,A,p), (A,B,p).
func (t Triangle) Areas(p math.Vec2) [3]float64 {
	return [3]float64{
		orientation2D(t.B, t.C, p),
		orientation2D(t.C, t.A, p),
		orientation2D(t.A, t.B, p),
	}
}

// Contains reports whether p lies inside or on the triangle. All three edge
// functions must share a sign. Degenerate triangles contain nothing.
func (t Triangle) Contains(p math.Vec2) bool {
	if t.Degenerate() {
		return false
	}
	a := t.Areas(p)
	return (a[0] >= 0 && a[1] >= 0 && a[2] >= 0) || (a[0] <= 0 && a[1] <= 0 && a[2] <= 0)
}

// Barycentric returns the weights of A, B and C at p: each unsigned sub-area
// over the unsigned total. ok is false for degenerate triangles.
func (t Triangle) Barycentric(p math.Vec2) (w [3]float32, ok bool) {
	total := gomath.Abs(t.SignedArea())
	if total == 0 || gomath.IsNaN(total) || gomath.IsInf(total, 0) {
		return w, false
	}
	a := t.Areas(p)
	for i := range w {
		w[i] = float32(gomath.Abs(a[i]) / total)
	}
	return w, true
}
