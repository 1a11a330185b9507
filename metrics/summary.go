// SPDX-License-Identifier: MIT
// Package: pemesh/metrics
//
// summary.go — aggregation over triangles and non-triangles.

package metrics

import (
	"math"

	"github.com/DanielaCabiddu/PEMesh/polymesh"
)

// Aggregate summarises one indicator over a subset of polygons.
type Aggregate struct {
	Min, Max float64
	ArgMin   int // NoIndex when Count == 0
	ArgMax   int
	Avg      float64 // over finite values
	Sum      float64 // over finite values
	Count    int     // non-NaN values seen
}

func emptyAggregate() Aggregate {
	return Aggregate{Min: math.Inf(1), Max: math.Inf(-1), ArgMin: NoIndex, ArgMax: NoIndex}
}

// Empty reports whether no polygon contributed.
func (a Aggregate) Empty() bool { return a.Count == 0 }

// Summary aggregates one indicator.
type Summary struct {
	Tri  Aggregate // polygons with three sides
	Poly Aggregate // polygons with more than three sides
	// GlobalAvg and GlobalNorm are the mean and root mean square over both
	// subsets. They are NaN when any value is infinite (SR of a polygon with
	// an empty kernel), so such indicators carry no global figures.
	GlobalAvg  float64
	GlobalNorm float64
}

// Min returns the smaller of the two subset minima and its polygon id;
// an empty subset never wins.
func (s Summary) Min() (float64, int) {
	if s.Poly.Empty() || (!s.Tri.Empty() && (s.Tri.Min < s.Poly.Min ||
		(s.Tri.Min == s.Poly.Min && s.Tri.ArgMin < s.Poly.ArgMin))) {
		return s.Tri.Min, s.Tri.ArgMin
	}
	return s.Poly.Min, s.Poly.ArgMin
}

// Max returns the larger of the two subset maxima and its polygon id.
func (s Summary) Max() (float64, int) {
	if s.Poly.Empty() || (!s.Tri.Empty() && (s.Tri.Max > s.Poly.Max ||
		(s.Tri.Max == s.Poly.Max && s.Tri.ArgMax < s.Poly.ArgMax))) {
		return s.Tri.Max, s.Tri.ArgMax
	}
	return s.Poly.Max, s.Poly.ArgMax
}

// MeshMetrics holds the Summary of every indicator of one mesh.
type MeshMetrics struct {
	Summaries [Count]Summary
}

// Of returns the summary of indicator i.
func (mm *MeshMetrics) Of(i Indicator) Summary { return mm.Summaries[i] }

// Compute evaluates and aggregates every indicator of m.
func Compute(m *polymesh.Mesh) *MeshMetrics {
	return Summarize(PolyValues(m))
}

// Summarize aggregates per-polygon values; vals[pid] belongs to polygon pid.
func Summarize(vals []Values) *MeshMetrics {
	mm := &MeshMetrics{}
	for i := range mm.Summaries {
		s := Summary{Tri: emptyAggregate(), Poly: emptyAggregate()}
		var (
			sum, sq     float64
			triN, polyN int
			unbounded   bool
		)
		for pid, v := range vals {
			x := v[i]
			if math.IsNaN(x) {
				continue
			}
			agg, n := &s.Poly, &polyN
			if v[NS] == 3 {
				agg, n = &s.Tri, &triN
			}
			agg.add(x, pid)
			if math.IsInf(x, 0) {
				unbounded = true
			} else {
				agg.Sum += x
				*n++
				sum += x
				sq += x * x
			}
		}
		if triN > 0 {
			s.Tri.Avg = s.Tri.Sum / float64(triN)
		}
		if polyN > 0 {
			s.Poly.Avg = s.Poly.Sum / float64(polyN)
		}
		switch n := triN + polyN; {
		case unbounded:
			s.GlobalAvg, s.GlobalNorm = math.NaN(), math.NaN()
		case n > 0:
			s.GlobalAvg = sum / float64(n)
			s.GlobalNorm = math.Sqrt(sq / float64(n))
		}
		mm.Summaries[i] = s
	}
	return mm
}

func (a *Aggregate) add(x float64, pid int) {
	if a.Count == 0 || x < a.Min {
		a.Min, a.ArgMin = x, pid
	}
	if a.Count == 0 || x > a.Max {
		a.Max, a.ArgMax = x, pid
	}
	a.Count++
}
