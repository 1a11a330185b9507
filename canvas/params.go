// SPDX-License-Identifier: MIT
// Package: pemesh/canvas
//
// params.go — triangulation parameters and area-bound policies.
//
// Policies:
//   - MinEdge:  min over elements of (area, e², √3/4·e², e²·sin θmin), where
//     e is the shortest outline edge and θmin the smallest interior angle.
//   - AvgDiag:  0.25·(average bounding-box diagonal)².
//   - UserArea: the value supplied in Params.Area.
//
// Without elements the canvas itself stands in for them.

package canvas

import (
	"fmt"
	"math"
	"strings"

	"github.com/DanielaCabiddu/PEMesh/geom"
	"github.com/DanielaCabiddu/PEMesh/triangulate"
)

// AreaPolicy selects how the maximum triangle area is derived.
type AreaPolicy uint8

const (
	MinEdge AreaPolicy = iota
	AvgDiag
	UserArea
)

var policyNames = [...]string{"min_edge", "avg_diag", "user"}

// String returns the configuration name of the policy.
func (p AreaPolicy) String() string {
	if int(p) >= len(policyNames) {
		return "unknown"
	}
	return policyNames[p]
}

// ParseAreaPolicy maps a configuration name to its policy.
func ParseAreaPolicy(s string) (AreaPolicy, error) {
	for i, n := range policyNames {
		if strings.EqualFold(n, s) {
			return AreaPolicy(i), nil
		}
	}
	return 0, fmt.Errorf("canvas: area policy %q: %w", s, ErrParams)
}

// Params drives the canvas triangulation.
type Params struct {
	MinAngle   float64 // degrees, in [0, 34]
	Policy     AreaPolicy
	Area       float64 // UserArea only
	MaxSteiner int     // 0 selects the triangulator default
}

// DefaultParams returns a 20° quality bound with the AvgDiag policy.
func DefaultParams() Params {
	return Params{MinAngle: 20, Policy: AvgDiag}
}

// Validate reports parameters outside their domain.
func (p Params) Validate() error {
	if !(p.MinAngle >= 0 && p.MinAngle <= triangulate.MaxMinAngle) {
		return fmt.Errorf("canvas: min angle %g outside [0,%g]: %w", p.MinAngle, triangulate.MaxMinAngle, ErrParams)
	}
	if int(p.Policy) >= len(policyNames) {
		return fmt.Errorf("canvas: policy %d: %w", p.Policy, ErrParams)
	}
	if p.Policy == UserArea && !(p.Area > 0) {
		return fmt.Errorf("canvas: user area %g: %w", p.Area, ErrParams)
	}
	if p.MaxSteiner < 0 {
		return fmt.Errorf("canvas: max steiner %d: %w", p.MaxSteiner, ErrParams)
	}
	return nil
}

// AreaBound evaluates the policy of p over the placed outlines.
func AreaBound(outlines [][]geom.Point2, p Params) float64 {
	if p.Policy == UserArea {
		return p.Area
	}
	if len(outlines) == 0 {
		outlines = [][]geom.Point2{unitSquare()}
	}

	switch p.Policy {
	case MinEdge:
		bound := math.Inf(1)
		for _, o := range outlines {
			e := shortestEdge(o)
			e2 := e * e
			bound = min(bound,
				math.Abs(geom.SignedArea(o)),
				e2,
				math.Sqrt(3)/4*e2,
				e2*math.Sin(smallestAngle(o)))
		}
		return bound
	default:
		var sum float64
		for _, o := range outlines {
			b := geom.Bounds(o)
			sum += b.Size().Norm()
		}
		avg := sum / float64(len(outlines))
		return 0.25 * avg * avg
	}
}

func shortestEdge(poly []geom.Point2) float64 {
	e := math.Inf(1)
	for i := range poly {
		e = min(e, geom.Dist(poly[i], poly[(i+1)%len(poly)]))
	}
	return e
}

func smallestAngle(poly []geom.Point2) float64 {
	n := len(poly)
	a := math.Inf(1)
	for i := range poly {
		a = min(a, geom.InteriorAngle(poly[(i+n-1)%n], poly[i], poly[(i+1)%n]))
	}
	return a
}

func unitSquare() []geom.Point2 {
	return []geom.Point2{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(1, 1), geom.Pt(0, 1)}
}
