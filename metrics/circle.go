// SPDX-License-Identifier: MIT
// Package: pemesh/metrics
//
// circle.go — inscribed and enclosing circles.
//
// Inscribed circle:
//   - triangles: exact inradius 2A/Π;
//   - convex polygons: exact Chebyshev radius over edge-triple vertices;
//   - other polygons: pole of inaccessibility (cell subdivision with a
//     priority queue), accurate to polylabelPrecision·max(w,h).
//
// Enclosing disk: Welzl's incremental algorithm without shuffling, so
// results do not depend on any random stream.

package metrics

import (
	"container/heap"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/DanielaCabiddu/PEMesh/geom"
)

const (
	polylabelPrecision = 1e-7
	polylabelMaxCells  = 1 << 16
)

// InscribedRadius returns the radius of the largest disk contained in the
// counter-clockwise polygon poly.
func InscribedRadius(poly []geom.Point2) float64 {
	switch {
	case len(poly) < 3:
		return 0
	case len(poly) == 3:
		return triangleInradius(poly)
	case geom.IsConvex(poly, geom.Eps):
		return chebyshevRadius(poly)
	}
	return poleRadius(poly)
}

// EnclosingDisk returns the smallest disk containing pts.
func EnclosingDisk(pts []geom.Point2) (geom.Point2, float64) {
	if len(pts) == 0 {
		return geom.Point2{}, 0
	}
	c, r := pts[0], 0.0
	for i := 1; i < len(pts); i++ {
		if inDisk(pts[i], c, r) {
			continue
		}
		c, r = pts[i], 0
		for j := 0; j < i; j++ {
			if inDisk(pts[j], c, r) {
				continue
			}
			c, r = diametral(pts[i], pts[j])
			for k := 0; k < j; k++ {
				if !inDisk(pts[k], c, r) {
					c, r = circumDisk(pts[i], pts[j], pts[k])
				}
			}
		}
	}
	return c, r
}

func inDisk(p, c geom.Point2, r float64) bool {
	return geom.Dist(p, c) <= r*(1+1e-12)
}

func diametral(a, b geom.Point2) (geom.Point2, float64) {
	return geom.Lerp(a, b, 0.5), geom.Dist(a, b) / 2
}

// circumDisk is the circle through a, b, c, or the diametral disk of the
// farthest pair when the three are collinear.
func circumDisk(a, b, c geom.Point2) (geom.Point2, float64) {
	if cc, ok := geom.Circumcenter(a, b, c); ok {
		return cc, max(geom.Dist(cc, a), geom.Dist(cc, b), geom.Dist(cc, c))
	}
	pairs := [][2]geom.Point2{{a, b}, {b, c}, {a, c}}
	best := pairs[0]
	for _, p := range pairs[1:] {
		if geom.Dist(p[0], p[1]) > geom.Dist(best[0], best[1]) {
			best = p
		}
	}
	return diametral(best[0], best[1])
}

type cell struct {
	c    geom.Point2
	h    float64 // half size
	d    float64 // signed distance of c to the outline
	best float64 // upper bound inside the cell
}

type cellQueue []cell

func (q cellQueue) Len() int           { return len(q) }
func (q cellQueue) Less(i, j int) bool { return q[i].best > q[j].best }
func (q cellQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *cellQueue) Push(x any)        { *q = append(*q, x.(cell)) }
func (q *cellQueue) Pop() any {
	old := *q
	c := old[len(old)-1]
	*q = old[:len(old)-1]
	return c
}

// poleRadius returns the distance from the pole of inaccessibility of poly
// to its outline.
func poleRadius(poly []geom.Point2) float64 {
	ring := make(orb.Ring, 0, len(poly)+1)
	for _, p := range poly {
		ring = append(ring, orb.Point{p.X, p.Y})
	}
	ring = append(ring, ring[0])

	signed := func(p geom.Point2) float64 {
		d := math.Inf(1)
		for i := range poly {
			d = min(d, geom.PointSegmentDist(p, poly[i], poly[(i+1)%len(poly)]))
		}
		if planar.RingContains(ring, orb.Point{p.X, p.Y}) {
			return d
		}
		return -d
	}
	mk := func(c geom.Point2, h float64) cell {
		d := signed(c)
		return cell{c: c, h: h, d: d, best: d + h*math.Sqrt2}
	}

	b := geom.Bounds(poly)
	size := b.Size()
	side := min(size.X, size.Y)
	if !(side > 0) {
		return 0
	}
	precision := polylabelPrecision * max(size.X, size.Y)

	q := &cellQueue{}
	h := side / 2
	for x := b.Lo().X; x < b.Hi().X; x += side {
		for y := b.Lo().Y; y < b.Hi().Y; y += side {
			heap.Push(q, mk(geom.Pt(x+h, y+h), h))
		}
	}

	best := mk(geom.Centroid(poly), 0)
	if bc := mk(b.Center(), 0); bc.d > best.d {
		best = bc
	}

	for n := 0; q.Len() > 0 && n < polylabelMaxCells; n++ {
		c := heap.Pop(q).(cell)
		if c.d > best.d {
			best = c
		}
		if c.best-best.d <= precision {
			continue
		}
		h := c.h / 2
		heap.Push(q, mk(geom.Pt(c.c.X-h, c.c.Y-h), h))
		heap.Push(q, mk(geom.Pt(c.c.X+h, c.c.Y-h), h))
		heap.Push(q, mk(geom.Pt(c.c.X-h, c.c.Y+h), h))
		heap.Push(q, mk(geom.Pt(c.c.X+h, c.c.Y+h), h))
	}
	return max(best.d, 0)
}
