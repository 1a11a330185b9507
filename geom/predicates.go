// SPDX-License-Identifier: MIT
// Package: pemesh/geom
//
// predicates.go — orientation, in-circle and segment tests.
//
// Contract:
//   - Predicates use plain float64 arithmetic; tolerances are explicit
//     parameters or the package constant Eps.
//   - SegmentsIntersect treats touching (shared point, collinear overlap)
//     as an intersection; callers that allow shared endpoints filter first.

package geom

import (
	"math"

	"github.com/golang/geo/r2"
)

// Point2 is a point (or vector) in the plane.
type Point2 = r2.Point

// Eps is the coordinate tolerance used for coincidence and collinearity.
const Eps = 1e-12

// Pt is shorthand for Point2{X: x, Y: y}.
func Pt(x, y float64) Point2 { return Point2{X: x, Y: y} }

// Orient returns twice the signed area of triangle abc.
func Orient(a, b, c Point2) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// InCircle returns a value > 0 when d lies strictly inside the circle through
// the counter-clockwise triangle abc, < 0 outside and 0 on the circle.
func InCircle(a, b, c, d Point2) float64 {
	adx, ady := a.X-d.X, a.Y-d.Y
	bdx, bdy := b.X-d.X, b.Y-d.Y
	cdx, cdy := c.X-d.X, c.Y-d.Y

	ad := adx*adx + ady*ady
	bd := bdx*bdx + bdy*bdy
	cd := cdx*cdx + cdy*cdy

	return adx*(bdy*cd-bd*cdy) - ady*(bdx*cd-bd*cdx) + ad*(bdx*cdy-bdy*cdx)
}

// Dist returns the Euclidean distance between a and b.
func Dist(a, b Point2) float64 { return a.Sub(b).Norm() }

// Lerp returns a + t·(b − a).
func Lerp(a, b Point2, t float64) Point2 { return a.Add(b.Sub(a).Mul(t)) }

// Coincident reports whether a and b are within tol of each other.
func Coincident(a, b Point2, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

// Collinear reports whether c lies within tol (as a distance) of the line ab.
func Collinear(a, b, c Point2, tol float64) bool {
	l := Dist(a, b)
	if l == 0 {
		return true
	}
	return math.Abs(Orient(a, b, c))/l <= tol
}

// OnSegment reports whether p lies on the closed segment ab within tol.
func OnSegment(a, b, p Point2, tol float64) bool {
	if !Collinear(a, b, p, tol) {
		return false
	}
	return p.X >= math.Min(a.X, b.X)-tol && p.X <= math.Max(a.X, b.X)+tol &&
		p.Y >= math.Min(a.Y, b.Y)-tol && p.Y <= math.Max(a.Y, b.Y)+tol
}

// SegmentsIntersect reports whether closed segments ab and cd share a point.
func SegmentsIntersect(a, b, c, d Point2) bool {
	o1 := sign(Orient(a, b, c))
	o2 := sign(Orient(a, b, d))
	o3 := sign(Orient(c, d, a))
	o4 := sign(Orient(c, d, b))

	if o1*o2 < 0 && o3*o4 < 0 {
		return true
	}
	// Touching and collinear configurations.
	if o1 == 0 && OnSegment(a, b, c, Eps) {
		return true
	}
	if o2 == 0 && OnSegment(a, b, d, Eps) {
		return true
	}
	if o3 == 0 && OnSegment(c, d, a, Eps) {
		return true
	}
	if o4 == 0 && OnSegment(c, d, b, Eps) {
		return true
	}
	return false
}

// SegmentsCrossProperly reports whether ab and cd cross at a single point
// interior to both segments.
func SegmentsCrossProperly(a, b, c, d Point2) bool {
	return sign(Orient(a, b, c))*sign(Orient(a, b, d)) < 0 &&
		sign(Orient(c, d, a))*sign(Orient(c, d, b)) < 0
}

// PointSegmentDist returns the distance from p to the closed segment ab.
func PointSegmentDist(p, a, b Point2) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return Dist(p, a)
	}
	t := p.Sub(a).Dot(ab) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return Dist(p, a.Add(ab.Mul(t)))
}

// Circumcenter returns the centre of the circle through a, b, c.
// ok is false for collinear input.
func Circumcenter(a, b, c Point2) (Point2, bool) {
	bx, by := b.X-a.X, b.Y-a.Y
	cx, cy := c.X-a.X, c.Y-a.Y
	d := 2 * (bx*cy - by*cx)
	if d == 0 {
		return Point2{}, false
	}
	b2 := bx*bx + by*by
	c2 := cx*cx + cy*cy
	ux := (cy*b2 - by*c2) / d
	uy := (bx*c2 - cx*b2) / d
	return Point2{X: a.X + ux, Y: a.Y + uy}, true
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
