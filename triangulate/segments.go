// SPDX-License-Identifier: MIT
// Package: pemesh/triangulate
//
// segments.go — constrained edge recovery.
//
// Algorithm (Sloan):
//  1. Walk from a towards b collecting every edge crossed by segment ab.
//  2. Repeatedly pop a crossed edge; if its quadrilateral is strictly
//     convex, flip it. A new diagonal that still crosses ab is re-queued,
//     otherwise it is remembered as a new edge.
//  3. Mark ab constrained and restore the Delaunay property on the new
//     edges by flipping.
//
// A vertex lying on the open segment, or a constrained edge crossing it,
// fails with ErrIntersecting.

package triangulate

import (
	"fmt"

	"github.com/DanielaCabiddu/PEMesh/geom"
)

const methodInsertSegment = "insertSegment"

// insertSegment recovers segment ab as a constrained edge.
func (m *mesher) insertSegment(a, b int, splittable bool) error {
	if a == b {
		return nil
	}
	if t, i, ok := m.findEdge(a, b); ok {
		m.constrain(t, i)
		m.registerSegment(a, b, splittable)
		return nil
	}

	crossing, err := m.crossedEdges(a, b)
	if err != nil {
		return err
	}

	pa, pb := m.pts[a], m.pts[b]
	var created [][2]int
	limit := 64*len(crossing)*len(crossing) + 1024
	for iter := 0; len(crossing) > 0; iter++ {
		if iter > limit {
			return fmt.Errorf("%s: %d-%d: %w", methodInsertSegment, a, b, ErrRecovery)
		}
		e := crossing[0]
		crossing = crossing[1:]

		t, i, ok := m.findEdge(e[0], e[1])
		if !ok {
			return fmt.Errorf("%s: lost edge %d-%d: %w", methodInsertSegment, e[0], e[1], ErrRecovery)
		}
		T := m.tris[t]
		if T.c[i] {
			return fmt.Errorf("%s: %d-%d crosses %d-%d: %w", methodInsertSegment, a, b, e[0], e[1], ErrIntersecting)
		}
		u := T.n[i]
		p, x, y := T.v[i], T.v[(i+1)%3], T.v[(i+2)%3]
		d := m.tris[u].v[m.edgeIndex(u, t)]
		if geom.Orient(m.pts[p], m.pts[x], m.pts[d]) <= 0 || geom.Orient(m.pts[p], m.pts[d], m.pts[y]) <= 0 {
			crossing = append(crossing, e)
			continue
		}
		m.flip(t, i)
		ne := [2]int{p, d}
		if p != a && p != b && d != a && d != b && geom.SegmentsCrossProperly(pa, pb, m.pts[p], m.pts[d]) {
			crossing = append(crossing, ne)
		} else {
			created = append(created, ne)
		}
	}

	t, i, ok := m.findEdge(a, b)
	if !ok {
		return fmt.Errorf("%s: %d-%d: %w", methodInsertSegment, a, b, ErrRecovery)
	}
	m.constrain(t, i)
	m.registerSegment(a, b, splittable)
	m.restoreDelaunay(created)
	return nil
}

// crossedEdges walks from a to b and lists the edges the open segment
// crosses, in order.
func (m *mesher) crossedEdges(a, b int) ([][2]int, error) {
	pb := m.pts[b]
	start, right, left := -1, -1, -1
	for t := range m.tris {
		T := &m.tris[t]
		k := T.index(a)
		if k < 0 {
			continue
		}
		x, y := T.v[(k+1)%3], T.v[(k+2)%3]
		for _, v := range [2]int{x, y} {
			if m.side(a, b, m.pts[v]) == 0 && ahead(m.pts[a], pb, m.pts[v]) {
				return nil, fmt.Errorf("%s: vertex %d on %d-%d: %w", methodInsertSegment, v, a, b, ErrIntersecting)
			}
		}
		if m.side(a, b, m.pts[x]) < 0 && m.side(a, b, m.pts[y]) > 0 {
			start, right, left = t, x, y
			break
		}
	}
	if start < 0 {
		return nil, fmt.Errorf("%s: no start triangle for %d-%d: %w", methodInsertSegment, a, b, ErrRecovery)
	}

	var crossing [][2]int
	t := start
	i := m.tris[t].index(a)
	for steps := 0; steps <= len(m.tris); steps++ {
		T := &m.tris[t]
		if T.c[i] {
			return nil, fmt.Errorf("%s: %d-%d crosses %d-%d: %w", methodInsertSegment, a, b, right, left, ErrIntersecting)
		}
		u := T.n[i]
		if u < 0 {
			return nil, fmt.Errorf("%s: walk left the mesh: %w", methodInsertSegment, ErrRecovery)
		}
		crossing = append(crossing, [2]int{right, left})
		d := m.tris[u].v[m.edgeIndex(u, t)]
		if d == b {
			return crossing, nil
		}
		switch m.side(a, b, m.pts[d]) {
		case 0:
			return nil, fmt.Errorf("%s: vertex %d on %d-%d: %w", methodInsertSegment, d, a, b, ErrIntersecting)
		case 1:
			i = m.tris[u].index(left)
			left = d
		default:
			i = m.tris[u].index(right)
			right = d
		}
		t = u
	}
	return nil, fmt.Errorf("%s: walk did not reach %d: %w", methodInsertSegment, b, ErrRecovery)
}

// ahead reports whether v projects strictly inside the segment ab.
func ahead(a, b, v geom.Point2) bool {
	ab := b.Sub(a)
	s := v.Sub(a).Dot(ab)
	return s > 0 && s < ab.Dot(ab)
}

// restoreDelaunay flips the listed edges until none violates the empty
// circle test. Constrained edges are left untouched.
func (m *mesher) restoreDelaunay(edges [][2]int) {
	for round := 0; round < 64; round++ {
		changed := false
		for idx, e := range edges {
			t, i, ok := m.findEdge(e[0], e[1])
			if !ok {
				continue
			}
			T := m.tris[t]
			u := T.n[i]
			if T.c[i] || u < 0 {
				continue
			}
			p, x, y := T.v[i], T.v[(i+1)%3], T.v[(i+2)%3]
			d := m.tris[u].v[m.edgeIndex(u, t)]
			if geom.InCircle(m.pts[p], m.pts[x], m.pts[y], m.pts[d]) <= 0 {
				continue
			}
			if geom.Orient(m.pts[p], m.pts[x], m.pts[d]) <= 0 || geom.Orient(m.pts[p], m.pts[d], m.pts[y]) <= 0 {
				continue
			}
			m.flip(t, i)
			edges[idx] = [2]int{p, d}
			changed = true
		}
		if !changed {
			return
		}
	}
}
