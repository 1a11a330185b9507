// SPDX-License-Identifier: MIT
// Package: pemesh/elements
//
// impl_regular.go — N-Sided and Star, both built on a regular polygon
// inscribed in the unit circle and rotated by π/2.
//
// Contract:
//   - N-Sided: n = 3 + ⌈t·(N_max − 3)⌉ sides, capped at N_max.
//   - Star: k = 3 + ⌈t·(S_max − 3)⌉ spikes on a regular 2k-gon; every
//     even-indexed vertex moves toward the centroid by starPull of its
//     distance, so the polygon alternates between radius 1 and 1 − starPull.

package elements

import (
	"math"

	"github.com/DanielaCabiddu/PEMesh/geom"
)

// stepCount maps t ∈ [0,1] onto {lo, …, hi}.
func stepCount(t float64, lo, hi int) int {
	n := lo + int(math.Ceil(t*float64(hi-lo)))
	if n > hi {
		n = hi
	}
	if n < lo {
		n = lo
	}
	return n
}

func regularPolygon(n int) []geom.Point2 {
	pts := make([]geom.Point2, n)
	for i := range pts {
		s, c := math.Sincos(2*math.Pi*float64(i)/float64(n) + math.Pi/2)
		pts[i] = geom.Pt(c, s)
	}
	return pts
}

func nSided(t float64, maxSides int) []geom.Point2 {
	return regularPolygon(stepCount(t, minSides, maxSides))
}

func star(t float64, maxSpikes int, pull float64) []geom.Point2 {
	k := stepCount(t, minSides, maxSpikes)
	pts := regularPolygon(2 * k)
	c := geom.VertexAverage(pts)
	for i := 0; i < len(pts); i += 2 {
		pts[i] = pts[i].Add(c.Sub(pts[i]).Mul(pull))
	}
	return pts
}
