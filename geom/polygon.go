// SPDX-License-Identifier: MIT
// Package: pemesh/geom
//
// polygon.go — area, centroid, angles and ear-clipping for simple polygons.
//
// Contract:
//   - EarClip never fails: when no strict ear exists (numerically degenerate
//     input) it clips the most convex vertex, so the fan of returned
//     triangles always has as many entries as len(poly)-2.
//   - Triangles returned by EarClip follow the winding of the input.
//
// Complexity:
//   - SignedArea, Centroid, Perimeter: O(n).
//   - EarClip: O(n³) worst case; polygons here have at most a few hundred
//     vertices.

package geom

import (
	"math"

	"github.com/golang/geo/r2"
)

// SignedArea returns the shoelace area of poly; positive for CCW order.
func SignedArea(poly []Point2) float64 {
	var s float64
	n := len(poly)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		s += poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
	}
	return s / 2
}

// Perimeter returns the length of the closed polyline.
func Perimeter(poly []Point2) float64 {
	var s float64
	n := len(poly)
	for i := 0; i < n; i++ {
		s += Dist(poly[i], poly[(i+1)%n])
	}
	return s
}

// Centroid returns the area centroid of poly, or the vertex average when the
// area vanishes.
func Centroid(poly []Point2) Point2 {
	a := SignedArea(poly)
	if math.Abs(a) <= Eps*Eps {
		return VertexAverage(poly)
	}
	var cx, cy float64
	n := len(poly)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		f := poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
		cx += (poly[i].X + poly[j].X) * f
		cy += (poly[i].Y + poly[j].Y) * f
	}
	return Point2{X: cx / (6 * a), Y: cy / (6 * a)}
}

// VertexAverage returns the arithmetic mean of the points.
func VertexAverage(pts []Point2) Point2 {
	if len(pts) == 0 {
		return Point2{}
	}
	var c Point2
	for _, p := range pts {
		c = c.Add(p)
	}
	return c.Mul(1 / float64(len(pts)))
}

// Bounds returns the axis-aligned bounding box of pts.
func Bounds(pts []Point2) r2.Rect {
	if len(pts) == 0 {
		return r2.EmptyRect()
	}
	return r2.RectFromPoints(pts...)
}

// InteriorAngle returns the interior angle at cur of a CCW polygon whose
// neighbours along the boundary are prev and next. The result lies in
// [0, 2π); reflex corners give values above π.
func InteriorAngle(prev, cur, next Point2) float64 {
	d1 := next.Sub(cur)
	d2 := prev.Sub(cur)
	a := math.Atan2(d1.Cross(d2), d1.Dot(d2))
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// IsConvex reports whether the CCW polygon has no reflex corner beyond tol.
func IsConvex(poly []Point2, tol float64) bool {
	n := len(poly)
	for i := 0; i < n; i++ {
		a, b, c := poly[(i+n-1)%n], poly[i], poly[(i+1)%n]
		if Orient(a, b, c) < -tol*Dist(a, c) {
			return false
		}
	}
	return true
}

// Reversed returns a copy of poly in opposite order.
func Reversed(poly []Point2) []Point2 {
	out := make([]Point2, len(poly))
	for i, p := range poly {
		out[len(poly)-1-i] = p
	}
	return out
}

// EarClip triangulates a simple polygon given in either winding. Triangles are
// index triples into poly with the same winding as the input.
func EarClip(poly []Point2) [][3]int {
	n := len(poly)
	if n < 3 {
		return nil
	}
	ccw := SignedArea(poly) >= 0

	// Work in CCW order internally.
	idx := make([]int, n)
	for i := range idx {
		if ccw {
			idx[i] = i
		} else {
			idx[i] = n - 1 - i
		}
	}

	tris := make([][3]int, 0, n-2)
	for len(idx) > 3 {
		m := len(idx)
		ear := -1
		best, bestOrient := -1, math.Inf(-1)
		for i := 0; i < m; i++ {
			a, b, c := idx[(i+m-1)%m], idx[i], idx[(i+1)%m]
			o := Orient(poly[a], poly[b], poly[c])
			if o > bestOrient {
				best, bestOrient = i, o
			}
			if o <= 0 {
				continue
			}
			if earIsEmpty(poly, idx, a, b, c) {
				ear = i
				break
			}
		}
		if ear < 0 {
			// Degenerate input: clip a straight vertex first, else the most
			// convex one.
			ear = straightVertex(poly, idx)
			if ear < 0 {
				ear = best
			}
		}
		a, b, c := idx[(ear+m-1)%m], idx[ear], idx[(ear+1)%m]
		tris = append(tris, orientTri(a, b, c, ccw))
		idx = append(idx[:ear], idx[ear+1:]...)
	}
	tris = append(tris, orientTri(idx[0], idx[1], idx[2], ccw))
	return tris
}

func orientTri(a, b, c int, ccw bool) [3]int {
	if ccw {
		return [3]int{a, b, c}
	}
	return [3]int{c, b, a}
}

// earIsEmpty reports whether no other remaining vertex lies in triangle abc.
func earIsEmpty(poly []Point2, idx []int, a, b, c int) bool {
	pa, pb, pc := poly[a], poly[b], poly[c]
	for _, k := range idx {
		if k == a || k == b || k == c {
			continue
		}
		p := poly[k]
		if Coincident(p, pa, Eps) || Coincident(p, pb, Eps) || Coincident(p, pc, Eps) {
			continue
		}
		if Orient(pa, pb, p) >= 0 && Orient(pb, pc, p) >= 0 && Orient(pc, pa, p) >= 0 {
			return false
		}
	}
	return true
}

// straightVertex returns the position of a vertex whose neighbours are
// collinear with it and on opposite sides, or -1.
func straightVertex(poly []Point2, idx []int) int {
	m := len(idx)
	for i := 0; i < m; i++ {
		a, b, c := poly[idx[(i+m-1)%m]], poly[idx[i]], poly[idx[(i+1)%m]]
		if Collinear(a, c, b, Eps) && a.Sub(b).Dot(c.Sub(b)) < 0 {
			return i
		}
	}
	return -1
}
