// SPDX-License-Identifier: MIT
// Package: pemesh/metrics
//
// polygon.go — indicator values of a single polygon.

package metrics

import (
	"math"

	"github.com/DanielaCabiddu/PEMesh/geom"
	"github.com/DanielaCabiddu/PEMesh/polymesh"
)

// Values holds one value per indicator, indexed by Indicator.
type Values [Count]float64

// Get returns the value of indicator i.
func (v Values) Get(i Indicator) float64 { return v[i] }

// Polygon evaluates every indicator on the counter-clockwise polygon poly.
// Polygons with fewer than three corners yield NaN everywhere.
func Polygon(poly []geom.Point2) Values {
	var v Values
	n := len(poly)
	if n < 3 {
		for i := range v {
			v[i] = math.NaN()
		}
		return v
	}

	area := math.Abs(geom.SignedArea(poly))
	ic := InscribedRadius(poly)
	_, cc := EnclosingDisk(poly)

	minA, maxA := math.Inf(1), math.Inf(-1)
	minE, maxE, perim := math.Inf(1), math.Inf(-1), 0.0
	for i := range poly {
		prev, cur, next := poly[(i+n-1)%n], poly[i], poly[(i+1)%n]
		a := geom.InteriorAngle(prev, cur, next)
		minA, maxA = min(minA, a), max(maxA, a)
		e := geom.Dist(cur, next)
		minE, maxE = min(minE, e), max(maxE, e)
		perim += e
	}

	mpd, diam := math.Inf(1), 0.0
	for i := range poly {
		for j := i + 1; j < n; j++ {
			d := geom.Dist(poly[i], poly[j])
			mpd, diam = min(mpd, d), max(diam, d)
		}
	}

	kernel := Kernel(poly)
	var ke, kr float64
	if kernel != nil {
		ke = geom.SignedArea(kernel)
		if len(kernel) == n && ke == geom.SignedArea(poly) {
			kr = ic
		} else {
			kr = chebyshevRadius(kernel)
		}
	}

	v[IC] = ic
	v[CC] = cc
	v[CR] = ic / cc
	v[AR] = area
	v[KE] = ke
	v[KAR] = ke / area
	v[APR] = area / (perim * perim)
	v[MA] = minA
	v[SE] = minE
	v[ER] = minE / maxE
	v[MPD] = mpd
	v[NS] = float64(n)
	v[MXA] = maxA
	v[SR] = math.Inf(1)
	if kr > 0 {
		v[SR] = cc / kr
	}
	v[VEM] = diam / min(math.Sqrt(area), minE)
	v[VEMA] = v[VEM] * v[VEM] * area
	return v
}

// PolyValues evaluates every polygon of m.
func PolyValues(m *polymesh.Mesh) []Values {
	out := make([]Values, m.NumPolys())
	for pid := range out {
		out[pid] = Polygon(m.PolyCoords(pid))
	}
	return out
}
