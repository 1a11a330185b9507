// SPDX-License-Identifier: MIT
// Package: pemesh/metrics
//
// kernel.go — visibility kernel by half-plane clipping, and the Chebyshev
// radius of convex polygons.
//
// The kernel of a simple counter-clockwise polygon is the intersection of
// the inner half-planes of its edges. It is computed by clipping the
// bounding box against every edge line, O(n²) for n corners. The Chebyshev
// radius enumerates edge triples, O(n⁴) worst case, pruned by the best
// radius found so far.

package metrics

import (
	"math"

	"github.com/DanielaCabiddu/PEMesh/geom"
)

// Kernel returns the visibility kernel of the counter-clockwise polygon
// poly as a convex counter-clockwise polygon, or nil when it is empty or
// degenerate. Convex inputs are returned as a copy.
func Kernel(poly []geom.Point2) []geom.Point2 {
	if len(poly) < 3 {
		return nil
	}
	if geom.IsConvex(poly, geom.Eps) {
		return append([]geom.Point2(nil), poly...)
	}
	b := geom.Bounds(poly)
	lo, hi := b.Lo(), b.Hi()
	region := []geom.Point2{lo, geom.Pt(hi.X, lo.Y), hi, geom.Pt(lo.X, hi.Y)}
	for i := range poly {
		a, c := poly[i], poly[(i+1)%len(poly)]
		if geom.Coincident(a, c, 0) {
			continue
		}
		region = clip(region, a, c)
		if len(region) < 3 {
			return nil
		}
	}
	if !(geom.SignedArea(region) > 0) {
		return nil
	}
	return region
}

// clip keeps the part of the convex polygon region on the left of line ab
// (Sutherland–Hodgman, one plane).
func clip(region []geom.Point2, a, b geom.Point2) []geom.Point2 {
	d := b.Sub(a)
	side := func(p geom.Point2) float64 { return d.Cross(p.Sub(a)) }

	out := make([]geom.Point2, 0, len(region)+1)
	for i, p := range region {
		q := region[(i+1)%len(region)]
		sp, sq := side(p), side(q)
		if sp >= 0 {
			out = append(out, p)
		}
		if (sp >= 0) != (sq >= 0) {
			t := sp / (sp - sq)
			out = append(out, geom.Lerp(p, q, t))
		}
	}
	return out
}

// chebyshevTol is the feasibility slack relative to the polygon diameter.
const chebyshevTol = 1e-12

// halfPlane is the inner side n·p >= c of an edge, with |n| = 1.
type halfPlane struct {
	n geom.Point2
	c float64
}

// chebyshevRadius returns the radius of the largest disk inside the convex
// counter-clockwise polygon poly.
//
// The centre p and radius r maximise r subject to n_i·p - r >= c_i for every
// edge. The feasible set is a bounded polytope in (x, y, r), so the optimum
// sits on a vertex where three constraints are tight: every edge triple is
// solved and the largest feasible r wins. Feasibility is checked relative to
// the polygon diameter, so the result does not depend on scale.
func chebyshevRadius(poly []geom.Point2) float64 {
	if len(poly) == 3 {
		return triangleInradius(poly)
	}
	hs := make([]halfPlane, 0, len(poly))
	for i := range poly {
		a, b := poly[i], poly[(i+1)%len(poly)]
		d := b.Sub(a)
		l := d.Norm()
		if !(l > 0) {
			continue
		}
		n := geom.Pt(-d.Y/l, d.X/l)
		hs = append(hs, halfPlane{n: n, c: n.Dot(a)})
	}
	if len(hs) < 3 {
		return 0
	}
	b := geom.Bounds(poly)
	tol := chebyshevTol * b.Size().Norm()

	best := 0.0
	for i := range hs {
		for j := i + 1; j < len(hs); j++ {
			for k := j + 1; k < len(hs); k++ {
				p, r, ok := tight(hs[i], hs[j], hs[k])
				if !ok || r <= best {
					continue
				}
				if feasible(hs, p, r, tol) {
					best = r
				}
			}
		}
	}
	return best
}

// tight solves n·p - r = c for three half-planes by Cramer's rule.
func tight(h1, h2, h3 halfPlane) (geom.Point2, float64, bool) {
	// Rows [nx ny -1 | c].
	det := h1.n.X*(h3.n.Y-h2.n.Y) - h1.n.Y*(h3.n.X-h2.n.X) - (h2.n.X*h3.n.Y - h2.n.Y*h3.n.X)
	if math.Abs(det) < 1e-12 {
		return geom.Point2{}, 0, false
	}
	dx := h1.c*(h3.n.Y-h2.n.Y) - h1.n.Y*(h3.c-h2.c) - (h2.c*h3.n.Y - h2.n.Y*h3.c)
	dy := h1.n.X*(h3.c-h2.c) - h1.c*(h3.n.X-h2.n.X) - (h2.n.X*h3.c - h2.c*h3.n.X)
	dr := h1.n.X*(h2.n.Y*h3.c-h2.c*h3.n.Y) - h1.n.Y*(h2.n.X*h3.c-h2.c*h3.n.X) + h1.c*(h2.n.X*h3.n.Y-h2.n.Y*h3.n.X)
	return geom.Pt(dx/det, dy/det), dr / det, true
}

func feasible(hs []halfPlane, p geom.Point2, r, tol float64) bool {
	for _, h := range hs {
		if h.n.Dot(p)-r < h.c-tol {
			return false
		}
	}
	return true
}

func triangleInradius(t []geom.Point2) float64 {
	p := geom.Perimeter(t)
	if !(p > 0) {
		return 0
	}
	return 2 * math.Abs(geom.SignedArea(t)) / p
}
