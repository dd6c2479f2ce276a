package region

import (
	"errors"
	"sort"

	"github.com/Li-Hsiu/waterSimulationTest/pkg/math"
)

// ErrDegenerate is returned when a point set cannot be triangulated.
var ErrDegenerate = errors.New("degenerate point set")

type vec2d struct{ x, y float64 }

type tri struct {
	a, b, c int
}

type edge struct{ a, b int }

func makeEdge(a, b int) edge {
	if a > b {
		a, b = b, a
	}
	return edge{a, b}
}

// inCircumcircle returns true if p is strictly inside the circumcircle of (a, b, c).
func inCircumcircle(a, b, c, p vec2d) bool {
	ax, ay := a.x-p.x, a.y-p.y
	bx, by := b.x-p.x, b.y-p.y
	cx, cy := c.x-p.x, c.y-p.y

	det := (ax*ax+ay*ay)*(bx*cy-cx*by) -
		(bx*bx+by*by)*(ax*cy-cx*ay) +
		(cx*cx+cy*cy)*(ax*by-bx*ay)

	// Positive det means inside for counter-clockwise triangles.
	area := (b.x-a.x)*(c.y-a.y) - (c.x-a.x)*(b.y-a.y)
	if area < 0 {
		return det < 0
	}
	return det > 0
}

// Triangulate builds a Delaunay triangulation with the Bowyer-Watson algorithm.
// It returns vertex index triples into points, counter-clockwise, sorted by
// their smallest index so the result does not depend on map iteration.
func Triangulate(points []math.Vec2) ([][3]int, error) {
	if len(points) < 3 {
		return nil, ErrDegenerate
	}

	pts := make([]vec2d, len(points), len(points)+3)
	minX, maxX := float64(points[0].X), float64(points[0].X)
	minY, maxY := float64(points[0].Y), float64(points[0].Y)
	for i, p := range points {
		pts[i] = vec2d{float64(p.X), float64(p.Y)}
		minX, maxX = min(minX, pts[i].x), max(maxX, pts[i].x)
		minY, maxY = min(minY, pts[i].y), max(maxY, pts[i].y)
	}

	// Super-triangle enclosing every point.
	deltaMax := max(maxX-minX, maxY-minY, 1)
	midX, midY := (minX+maxX)/2, (minY+maxY)/2
	n := len(points)
	pts = append(pts,
		vec2d{midX - 20*deltaMax, midY - deltaMax},
		vec2d{midX + 20*deltaMax, midY - deltaMax},
		vec2d{midX, midY + 20*deltaMax},
	)
	tris := []tri{{n, n + 1, n + 2}}

	for i := 0; i < n; i++ {
		p := pts[i]

		var bad []tri
		keep := tris[:0:0]
		for _, t := range tris {
			if inCircumcircle(pts[t.a], pts[t.b], pts[t.c], p) {
				bad = append(bad, t)
			} else {
				keep = append(keep, t)
			}
		}

		// The boundary of the cavity is every edge used by exactly one bad triangle.
		count := make(map[edge]int, len(bad)*3)
		for _, t := range bad {
			count[makeEdge(t.a, t.b)]++
			count[makeEdge(t.b, t.c)]++
			count[makeEdge(t.c, t.a)]++
		}
		for _, t := range bad {
			for _, e := range [3]edge{{t.a, t.b}, {t.b, t.c}, {t.c, t.a}} {
				if count[makeEdge(e.a, e.b)] == 1 {
					keep = append(keep, ensureCCW(pts, e.a, e.b, i))
				}
			}
		}
		tris = keep
	}

	var result [][3]int
	for _, t := range tris {
		if t.a >= n || t.b >= n || t.c >= n {
			continue
		}
		area := (pts[t.b].x-pts[t.a].x)*(pts[t.c].y-pts[t.a].y) - (pts[t.c].x-pts[t.a].x)*(pts[t.b].y-pts[t.a].y)
		if area == 0 {
			continue
		}
		result = append(result, rotateMin(t))
	}
	if len(result) == 0 {
		return nil, ErrDegenerate
	}

	sort.Slice(result, func(i, j int) bool {
		for k := 0; k < 3; k++ {
			if result[i][k] != result[j][k] {
				return result[i][k] < result[j][k]
			}
		}
		return false
	})
	return result, nil
}

// ensureCCW returns the triangle with counter-clockwise winding.
func ensureCCW(pts []vec2d, a, b, c int) tri {
	cross := (pts[b].x-pts[a].x)*(pts[c].y-pts[a].y) - (pts[c].x-pts[a].x)*(pts[b].y-pts[a].y)
	if cross < 0 {
		return tri{a, c, b}
	}
	return tri{a, b, c}
}

// rotateMin cycles the triple so the smallest index comes first, keeping winding.
func rotateMin(t tri) [3]int {
	switch {
	case t.b < t.a && t.b < t.c:
		return [3]int{t.b, t.c, t.a}
	case t.c < t.a && t.c < t.b:
		return [3]int{t.c, t.a, t.b}
	default:
		return [3]int{t.a, t.b, t.c}
	}
}
