// SPDX-License-Identifier: MIT
// Package: pemesh/triangulate
//
// triangulate.go — public entry point.

package triangulate

import (
	"context"
	"fmt"
	"math"

	"github.com/DanielaCabiddu/PEMesh/geom"
)

const methodTriangulate = "Triangulate"

// Triangulate returns the constrained Delaunay triangulation of in, carved
// by its segments and holes and refined according to opts. Without segments
// the domain is the convex hull of the points.
//
// Errors: ErrTooFewPoints, ErrInvalidInput, ErrDuplicatePoint,
// ErrIntersecting, ErrRecovery, ErrEmptyDomain, or ctx.Err() wrapped.
func Triangulate(ctx context.Context, in Input, opts ...Option) (*Result, error) {
	cfg := newConfig(opts...)
	if err := validate(in); err != nil {
		return nil, err
	}

	m := newMesher(in.Points, cfg)
	for i := 0; i < m.nInput; i++ {
		tri, edge, dup := m.locate(m.pts[i], m.last)
		if tri < 0 {
			return nil, fmt.Errorf("%s: point %d not located: %w", methodTriangulate, i, ErrInvalidInput)
		}
		if dup >= 0 {
			return nil, fmt.Errorf("%s: point %d coincides with %d: %w", methodTriangulate, i, dup, ErrDuplicatePoint)
		}
		m.insertAt(i, tri, edge)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", methodTriangulate, err)
	}

	for _, s := range in.Segments {
		if err := m.insertSegment(s.A, s.B, s.Splittable); err != nil {
			return nil, fmt.Errorf("%s: %w", methodTriangulate, err)
		}
	}
	if len(in.Segments) == 0 {
		m.carveSuper()
	} else {
		m.carveExterior()
	}
	m.carveHoles(in.Holes)

	steiner, err := m.refine(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodTriangulate, err)
	}

	res := m.result()
	res.Steiner = steiner
	if len(res.Triangles) == 0 {
		return nil, fmt.Errorf("%s: %w", methodTriangulate, ErrEmptyDomain)
	}
	return res, nil
}

func validate(in Input) error {
	if len(in.Points) < 3 {
		return fmt.Errorf("%s: %d points: %w", methodTriangulate, len(in.Points), ErrTooFewPoints)
	}
	for i, p := range in.Points {
		if !finite(p.X) || !finite(p.Y) {
			return fmt.Errorf("%s: point %d not finite: %w", methodTriangulate, i, ErrInvalidInput)
		}
	}
	for i, s := range in.Segments {
		if s.A < 0 || s.A >= len(in.Points) || s.B < 0 || s.B >= len(in.Points) || s.A == s.B {
			return fmt.Errorf("%s: segment %d (%d,%d): %w", methodTriangulate, i, s.A, s.B, ErrInvalidInput)
		}
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// result compacts the domain triangles, dropping the super vertices.
func (m *mesher) result() *Result {
	remap := func(v int) int {
		if v < m.nInput {
			return v
		}
		return v - 3
	}
	res := &Result{
		Points: make([]geom.Point2, 0, len(m.pts)-3),
	}
	res.Points = append(res.Points, m.pts[:m.nInput]...)
	res.Points = append(res.Points, m.pts[m.nInput+3:]...)

	for _, t := range m.tris {
		if t.outside {
			continue
		}
		res.Triangles = append(res.Triangles, [3]int{remap(t.v[0]), remap(t.v[1]), remap(t.v[2])})
	}
	for _, s := range m.segs {
		if s.alive {
			res.Segments = append(res.Segments, [2]int{remap(s.a), remap(s.b)})
		}
	}
	return res
}
