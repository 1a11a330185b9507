// SPDX-License-Identifier: MIT
// Package: pemesh/triangulate
//
// refine.go — quality and area refinement of the carved domain.
//
// Contract:
//   - Splittable subsegments encroached by a vertex of an adjacent domain
//     triangle are split first, and again after every insertion.
//   - A domain triangle is bad when its smallest angle is below the minimum
//     or its area exceeds the bound.
//   - The candidate is the circumcentre. A candidate encroaching a
//     splittable subsegment splits that subsegment at its midpoint instead.
//   - A candidate encroaching a protected subsegment, leaving the domain or
//     landing on a segment is dropped. Area-bad triangles then fall back to
//     their centroid, which always lies inside them.
//   - At most cfg.maxSteiner points are added; ctx is polled periodically.

package triangulate

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/DanielaCabiddu/PEMesh/geom"
	"github.com/DanielaCabiddu/PEMesh/polymesh"
)

const (
	methodRefine = "refine"

	// minSplitLen keeps subsegment splitting above round-off.
	minSplitLen = 1e-9
	ctxPollMask = 255
)

type refiner struct {
	*mesher
	minAngle float64 // radians
	tried    map[[3]int]bool
	queue    []int
	added    int
}

func (m *mesher) refine(ctx context.Context) (int, error) {
	if m.cfg.minAngleDeg <= 0 && m.cfg.maxArea <= 0 {
		return 0, nil
	}
	r := &refiner{
		mesher:   m,
		minAngle: m.cfg.minAngleDeg * math.Pi / 180,
		tried:    make(map[[3]int]bool),
	}
	all := make([]int, len(m.tris))
	for t := range all {
		all[t] = t
	}
	r.splitEncroached(all)
	r.queue = append(r.queue, all...)

	for steps := 0; len(r.queue) > 0 && r.added < m.cfg.maxSteiner; steps++ {
		if steps&ctxPollMask == 0 {
			if err := ctx.Err(); err != nil {
				return r.added, fmt.Errorf("%s: %w", methodRefine, err)
			}
		}
		t := r.queue[0]
		r.queue = r.queue[1:]

		byAngle, byArea := r.bad(t)
		if !byAngle && !byArea {
			continue
		}
		key := sortedTriple(m.tris[t].v)
		if r.tried[key] {
			continue
		}
		r.improve(t, key, byArea)
	}
	return r.added, nil
}

// improve tries to destroy the bad triangle t.
func (r *refiner) improve(t int, key [3]int, byArea bool) {
	T := r.tris[t]
	a, b, c := r.pts[T.v[0]], r.pts[T.v[1]], r.pts[T.v[2]]

	cc, ok := geom.Circumcenter(a, b, c)
	if ok {
		s, protected := r.encroached(cc)
		switch {
		case s >= 0 && !protected:
			r.splitEncroached(r.splitSegment(s))
			r.queue = append(r.queue, t)
			return
		case s < 0:
			if r.tryInsert(cc, t) {
				r.queue = append(r.queue, t)
				return
			}
		}
	}
	if byArea {
		g := geom.Pt((a.X+b.X+c.X)/3, (a.Y+b.Y+c.Y)/3)
		if r.tryInsert(g, t) {
			r.queue = append(r.queue, t)
			return
		}
	}
	r.tried[key] = true
}

// tryInsert adds p as a Steiner point if it lands strictly inside the
// domain, off every segment and away from existing vertices.
func (r *refiner) tryInsert(p geom.Point2, start int) bool {
	tri, edge, dup := r.locate(p, start)
	if tri < 0 || dup >= 0 || r.tris[tri].outside {
		return false
	}
	if edge >= 0 && r.tris[tri].c[edge] {
		return false
	}
	v := r.addPoint(p)
	touched := r.insertAt(v, tri, edge)
	r.added++
	r.enqueue(touched)
	r.splitEncroached(touched)
	return true
}

// encroached returns a subsegment whose diametral circle contains p, giving
// protected subsegments precedence. It returns -1 when none is encroached.
func (r *refiner) encroached(p geom.Point2) (int, bool) {
	found := -1
	for i, s := range r.segs {
		if !s.alive {
			continue
		}
		pa, pb := r.pts[s.a], r.pts[s.b]
		if !inDiametral(pa, pb, p) {
			continue
		}
		if !s.splittable || geom.Dist(pa, pb) < minSplitLen {
			return i, true
		}
		if found < 0 {
			found = i
		}
	}
	return found, false
}

// inDiametral reports whether p lies strictly inside the circle with
// diameter ab.
func inDiametral(a, b, p geom.Point2) bool {
	return geom.Dist(p, geom.Lerp(a, b, 0.5)) < geom.Dist(a, b)/2*(1-1e-9)
}

// splitEncroached splits every splittable subsegment on the boundary of the
// given triangles whose opposite domain vertex encroaches it, following the
// triangles each split touches.
func (r *refiner) splitEncroached(stack []int) {
	stack = slices.Clone(stack)
	for len(stack) > 0 && r.added < r.cfg.maxSteiner {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		T := r.tris[t]
		if T.outside {
			continue
		}
		for k := 0; k < 3; k++ {
			if !T.c[k] {
				continue
			}
			a, b := T.v[(k+1)%3], T.v[(k+2)%3]
			s, ok := r.segIdx[polymesh.MakeEdgeKey(a, b)]
			if !ok || !r.segs[s].alive || !r.segs[s].splittable {
				continue
			}
			if geom.Dist(r.pts[a], r.pts[b]) < minSplitLen || !inDiametral(r.pts[a], r.pts[b], r.pts[T.v[k]]) {
				continue
			}
			stack = append(stack, r.splitSegment(s)...)
			break
		}
	}
}

// splitSegment inserts the midpoint of subsegment s and returns the
// triangles it touched.
func (r *refiner) splitSegment(s int) []int {
	seg := r.segs[s]
	t, i, ok := r.findEdge(seg.a, seg.b)
	if !ok {
		r.segs[s].alive = false
		return nil
	}
	v := r.addPoint(geom.Lerp(r.pts[seg.a], r.pts[seg.b], 0.5))
	created := r.splitEdge(t, i, v)
	touched := r.legalize(v, created)
	r.added++

	r.segs[s].alive = false
	delete(r.segIdx, polymesh.MakeEdgeKey(seg.a, seg.b))
	r.registerSegment(seg.a, v, seg.splittable)
	r.registerSegment(v, seg.b, seg.splittable)
	r.enqueue(touched)
	return touched
}

func (r *refiner) enqueue(ts []int) {
	for _, t := range ts {
		if byAngle, byArea := r.bad(t); byAngle || byArea {
			r.queue = append(r.queue, t)
		}
	}
}

// bad classifies domain triangle t.
func (r *refiner) bad(t int) (byAngle, byArea bool) {
	T := &r.tris[t]
	if T.outside {
		return false, false
	}
	a, b, c := r.pts[T.v[0]], r.pts[T.v[1]], r.pts[T.v[2]]
	if r.cfg.maxArea > 0 && geom.Orient(a, b, c)/2 > r.cfg.maxArea {
		byArea = true
	}
	if r.minAngle > 0 && minAngle(a, b, c) < r.minAngle {
		byAngle = true
	}
	return byAngle, byArea
}

// minAngle returns the smallest interior angle of triangle abc, in radians.
func minAngle(a, b, c geom.Point2) float64 {
	la, lb, lc := geom.Dist(b, c), geom.Dist(c, a), geom.Dist(a, b)
	if la == 0 || lb == 0 || lc == 0 {
		return 0
	}
	angle := func(opp, s1, s2 float64) float64 {
		cos := (s1*s1 + s2*s2 - opp*opp) / (2 * s1 * s2)
		return math.Acos(math.Max(-1, math.Min(1, cos)))
	}
	return min(angle(la, lb, lc), angle(lb, lc, la), angle(lc, la, lb))
}

func sortedTriple(v [3]int) [3]int {
	s := slices.Clone(v[:])
	slices.Sort(s)
	return [3]int{s[0], s[1], s[2]}
}
