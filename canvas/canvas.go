// SPDX-License-Identifier: MIT
// Package: pemesh/canvas
//
// canvas.go — PSLG assembly, triangulation and element re-insertion.
//
// Contract:
//   - Outline vertices come first in the triangulation input, element by
//     element, followed by the canvas corners that no element already
//     occupies. Element k owns the contiguous vertex range recorded in
//     offsets[k] in the output mesh as well.
//   - Element segments are protected; frame segments are split at every
//     outline vertex lying on them and may receive Steiner points.
//   - Outline coordinates within frameTol of the frame are snapped onto it.

package canvas

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/DanielaCabiddu/PEMesh/geom"
	"github.com/DanielaCabiddu/PEMesh/polymesh"
	"github.com/DanielaCabiddu/PEMesh/triangulate"
)

const (
	methodBuild         = "Build"
	methodBuildOutlines = "BuildOutlines"

	frameTol = 1e-9
)

// Build places every element at deformation t and meshes the canvas.
func Build(ctx context.Context, placed []PlacedElement, t float64, p Params) (*polymesh.Mesh, error) {
	outlines := make([][]geom.Point2, len(placed))
	for i, pe := range placed {
		o, err := pe.Outline(t)
		if err != nil {
			return nil, fmt.Errorf("%s: element %d (%s): %w", methodBuild, i, pe.Class(), err)
		}
		outlines[i] = o
	}
	return BuildOutlines(ctx, outlines, p)
}

// BuildOutlines meshes the canvas around already placed counter-clockwise
// outlines. The outlines are not modified.
func BuildOutlines(ctx context.Context, outlines [][]geom.Point2, p Params) (*polymesh.Mesh, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", methodBuildOutlines, err)
	}

	placed := make([][]geom.Point2, len(outlines))
	for i, o := range outlines {
		fitted, err := fitCanvas(o)
		if err != nil {
			return nil, fmt.Errorf("%s: element %d: %w", methodBuildOutlines, i, err)
		}
		placed[i] = fitted
	}
	if err := checkDisjoint(placed); err != nil {
		return nil, fmt.Errorf("%s: %w", methodBuildOutlines, err)
	}

	in, offsets := assemble(placed)
	opts := []triangulate.Option{
		triangulate.WithMinAngle(p.MinAngle),
		triangulate.WithMaxArea(AreaBound(placed, p)),
	}
	if p.MaxSteiner > 0 {
		opts = append(opts, triangulate.WithMaxSteiner(p.MaxSteiner))
	}
	res, err := triangulate.Triangulate(ctx, in, opts...)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%s: %w", methodBuildOutlines, err)
		}
		return nil, fmt.Errorf("%s: %w: %w", methodBuildOutlines, ErrIntersectingElements, err)
	}

	m, err := polymesh.New(res.Points, triangles(res.Triangles))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", methodBuildOutlines, ErrIntersectingElements, err)
	}
	for i, o := range placed {
		if err := reinsert(m, offsets[i], len(o)); err != nil {
			return nil, fmt.Errorf("%s: element %d: %w", methodBuildOutlines, i, err)
		}
	}
	return m, nil
}

// fitCanvas returns a copy of o with near-frame coordinates snapped, or
// ErrElementOutsideCanvas.
func fitCanvas(o []geom.Point2) ([]geom.Point2, error) {
	out := slices.Clone(o)
	for i, q := range out {
		if q.X < -frameTol || q.X > 1+frameTol || q.Y < -frameTol || q.Y > 1+frameTol {
			return nil, fmt.Errorf("vertex %d at (%g,%g): %w", i, q.X, q.Y, ErrElementOutsideCanvas)
		}
		out[i] = geom.Pt(snap(q.X), snap(q.Y))
	}
	return out, nil
}

// snap moves coordinates within frameTol of the frame onto it.
func snap(v float64) float64 {
	switch {
	case v <= frameTol:
		return 0
	case v >= 1-frameTol:
		return 1
	}
	return v
}

// checkDisjoint rejects outlines that touch, cross or contain each other.
func checkDisjoint(outlines [][]geom.Point2) error {
	boxes := make([]struct{ lo, hi geom.Point2 }, len(outlines))
	rings := make([]orb.Ring, len(outlines))
	for i, o := range outlines {
		b := geom.Bounds(o)
		boxes[i].lo, boxes[i].hi = b.Lo(), b.Hi()
		rings[i] = ring(o)
	}
	for i := range outlines {
		for j := i + 1; j < len(outlines); j++ {
			if boxes[i].hi.X < boxes[j].lo.X || boxes[j].hi.X < boxes[i].lo.X ||
				boxes[i].hi.Y < boxes[j].lo.Y || boxes[j].hi.Y < boxes[i].lo.Y {
				continue
			}
			if outlinesTouch(outlines[i], outlines[j]) ||
				planar.RingContains(rings[j], toOrb(outlines[i][0])) ||
				planar.RingContains(rings[i], toOrb(outlines[j][0])) {
				return fmt.Errorf("elements %d and %d: %w", i, j, ErrIntersectingElements)
			}
		}
	}
	return nil
}

func outlinesTouch(a, b []geom.Point2) bool {
	for i := range a {
		a0, a1 := a[i], a[(i+1)%len(a)]
		for j := range b {
			if geom.SegmentsIntersect(a0, a1, b[j], b[(j+1)%len(b)]) {
				return true
			}
		}
	}
	return false
}

// assemble builds the triangulation input and the vertex offset of every
// outline.
func assemble(outlines [][]geom.Point2) (triangulate.Input, []int) {
	var in triangulate.Input
	offsets := make([]int, len(outlines))
	for k, o := range outlines {
		off := len(in.Points)
		offsets[k] = off
		in.Points = append(in.Points, o...)
		for i := range o {
			in.Segments = append(in.Segments, triangulate.Segment{A: off + i, B: off + (i+1)%len(o)})
		}
		in.Holes = append(in.Holes, holeSeed(o))
	}

	square := unitSquare()
	corners := make([]int, 4)
	for c, q := range square {
		corners[c] = slices.IndexFunc(in.Points, func(p geom.Point2) bool { return geom.Coincident(p, q, geom.Eps) })
		if corners[c] < 0 {
			corners[c] = len(in.Points)
			in.Points = append(in.Points, q)
		}
	}

	for c := range square {
		a, b := square[c], square[(c+1)%4]
		on := []int{corners[c], corners[(c+1)%4]}
		for v, q := range in.Points {
			if v != on[0] && v != on[1] && geom.OnSegment(a, b, q, geom.Eps) {
				on = append(on, v)
			}
		}
		d := b.Sub(a)
		slices.SortFunc(on, func(u, w int) int {
			su, sw := in.Points[u].Sub(a).Dot(d), in.Points[w].Sub(a).Dot(d)
			switch {
			case su < sw:
				return -1
			case su > sw:
				return 1
			}
			return 0
		})
		for i := 0; i+1 < len(on); i++ {
			in.Segments = append(in.Segments, triangulate.Segment{A: on[i], B: on[i+1], Splittable: true})
		}
	}
	return in, offsets
}

// holeSeed returns the centroid of the largest ear of o that lies inside o.
func holeSeed(o []geom.Point2) geom.Point2 {
	tris := geom.EarClip(o)
	area := func(t [3]int) float64 {
		a := geom.Orient(o[t[0]], o[t[1]], o[t[2]])
		if a < 0 {
			return -a
		}
		return a
	}
	slices.SortStableFunc(tris, func(s, t [3]int) int {
		as, at := area(s), area(t)
		switch {
		case as > at:
			return -1
		case as < at:
			return 1
		}
		return 0
	})

	r := ring(o)
	for _, t := range tris {
		c := geom.VertexAverage([]geom.Point2{o[t[0]], o[t[1]], o[t[2]]})
		if planar.RingContains(r, toOrb(c)) {
			return c
		}
	}
	if len(tris) > 0 {
		t := tris[0]
		return geom.VertexAverage([]geom.Point2{o[t[0]], o[t[1]], o[t[2]]})
	}
	return geom.Centroid(o)
}

// reinsert adds outline vertices off..off+n-1 as one template polygon.
func reinsert(m *polymesh.Mesh, off, n int) error {
	poly := make([]int, n)
	for i := range poly {
		poly[i] = off + i
	}
	for i := range poly {
		a, b := poly[i], poly[(i+1)%n]
		eid, ok := m.EdgeID(a, b)
		switch {
		case !ok && onFrame(m.Vert(a), m.Vert(b)):
			// Edge lying on the canvas frame: nothing meshed on either side.
		case !ok || !m.EdgeIsBoundary(eid):
			return fmt.Errorf("edge %d-%d not on a hole boundary: %w", a, b, ErrIntersectingElements)
		}
	}

	pid, err := m.PolyAdd(poly)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIntersectingElements, err)
	}
	if m.PolyNormalZ(pid) < 0 {
		if err := m.PolyFlipWinding(pid); err != nil {
			return err
		}
	}
	m.SetPolyFlag(pid, polymesh.FlagTemplate, true)
	m.SetPolyColor(pid, polymesh.ColorRed)
	for _, eid := range m.AdjPolyEdges(pid) {
		m.SetEdgeFlag(eid, polymesh.FlagMarked, true)
	}
	return nil
}

// onFrame reports whether segment pq runs along one side of the canvas.
func onFrame(p, q geom.Point2) bool {
	return (p.X == 0 && q.X == 0) || (p.X == 1 && q.X == 1) ||
		(p.Y == 0 && q.Y == 0) || (p.Y == 1 && q.Y == 1)
}

func triangles(tris [][3]int) [][]int {
	polys := make([][]int, len(tris))
	for i, t := range tris {
		polys[i] = []int{t[0], t[1], t[2]}
	}
	return polys
}

func ring(o []geom.Point2) orb.Ring {
	r := make(orb.Ring, 0, len(o)+1)
	for _, p := range o {
		r = append(r, toOrb(p))
	}
	return append(r, toOrb(o[0]))
}

func toOrb(p geom.Point2) orb.Point { return orb.Point{p.X, p.Y} }
