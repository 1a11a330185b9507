// SPDX-License-Identifier: MIT
// Package: pemesh/elements
//
// impl_quads.go — Isotropy and Convexity, the two unit-square families.
//
// Contract:
//   - Isotropy: corners 0,1 rise by t/2, corners 2,3 drop by t/2; the square
//     flattens into a sliver as t → 1.
//   - Convexity: corner 0 moves along the diagonal to (t,t); the corner turns
//     reflex once t > 1/2.
//   - Both clamp t to 1 − collapseEps so the outline never collapses.

package elements

import "github.com/DanielaCabiddu/PEMesh/geom"

func clampHigh(t float64) float64 {
	if t >= 1 {
		return 1 - collapseEps
	}
	return t
}

func isotropy(t float64) []geom.Point2 {
	t = clampHigh(t)
	h := t / 2
	return []geom.Point2{
		geom.Pt(0, h),
		geom.Pt(1, h),
		geom.Pt(1, 1-h),
		geom.Pt(0, 1-h),
	}
}

func convexity(t float64) []geom.Point2 {
	t = clampHigh(t)
	return []geom.Point2{
		geom.Pt(t, t),
		geom.Pt(1, 0),
		geom.Pt(1, 1),
		geom.Pt(0, 1),
	}
}
