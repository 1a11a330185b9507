// SPDX-License-Identifier: MIT
// Package: pemesh/elements
//
// impl_reflex.go — U-Like, Zeta and Comb, the families whose deformation
// pushes vertices across the outline to create deep reflex pockets.

package elements

import (
	"math"

	"github.com/DanielaCabiddu/PEMesh/geom"
)

// U-Like: seven vertices; the three inner bottom vertices climb toward the
// top edge. t is kept above collapseEps so the bottom edge never becomes a
// straight run of four collinear vertices.
func uLike(t float64) []geom.Point2 {
	if t <= 0 {
		t = collapseEps
	}
	return []geom.Point2{
		geom.Pt(0, 0),
		geom.Lerp(geom.Pt(0.25, 0), geom.Pt(0.01, 0.99), t),
		geom.Lerp(geom.Pt(0.5, 0), geom.Pt(0.5, 0.99), t),
		geom.Lerp(geom.Pt(0.75, 0), geom.Pt(0.99, 0.99), t),
		geom.Pt(1, 0),
		geom.Pt(1, 1),
		geom.Pt(0, 1),
	}
}

// Zeta: six vertices; the two mid-side vertices cross the square toward the
// opposite corners, producing a Z-shaped outline.
func zeta(t float64) []geom.Point2 {
	return []geom.Point2{
		geom.Pt(0, 0),
		geom.Pt(1, 0),
		geom.Lerp(geom.Pt(1, 0.5), geom.Pt(0.02, 0.01), t),
		geom.Pt(1, 1),
		geom.Pt(0, 1),
		geom.Lerp(geom.Pt(0, 0.5), geom.Pt(0.98, 0.99), t),
	}
}

// Comb: a 2×1 rectangle whose bottom edge carries round(t·D_max) teeth.
// The bottom edge is sampled at 2·n+3 equispaced abscissae; odd samples are
// raised to y = 0.5.
func comb(t float64, maxDents int) []geom.Point2 {
	dents := int(math.Round(t * float64(maxDents)))
	n := 2*dents + 3
	pts := make([]geom.Point2, 0, n+2)
	for i := 0; i < n; i++ {
		x := 2 * float64(i) / float64(n-1)
		y := 0.0
		if i%2 == 1 {
			y = 0.5
		}
		pts = append(pts, geom.Pt(x, y))
	}
	return append(pts, geom.Pt(2, 1), geom.Pt(0, 1))
}
