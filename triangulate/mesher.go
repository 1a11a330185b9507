// SPDX-License-Identifier: MIT
// Package: pemesh/triangulate
//
// mesher.go — triangle store, point location, insertion and edge flips.
//
// Representation:
//   - tris[t].v holds the corners counter-clockwise.
//   - tris[t].n[i] is the neighbour across the edge opposite v[i] (-1 on the
//     hull of the super triangle).
//   - tris[t].c[i] marks that edge as constrained.
//   - vt[v] is some triangle incident to vertex v (a rotation start).
//
// Complexity:
//   - locate: O(√T) expected by walking, O(T) fallback scan.
//   - insertion with Lawson legalization: O(deg) flips amortized.

package triangulate

import (
	"github.com/DanielaCabiddu/PEMesh/geom"
	"github.com/DanielaCabiddu/PEMesh/polymesh"
)

const (
	// onEdgeTol is the distance below which a point is taken to lie on an edge.
	onEdgeTol = 1e-12
	// dupTol is the coordinate tolerance for coincident points.
	dupTol = 1e-12
	// superScale controls how far the super triangle reaches past the input.
	superScale = 20.0
)

type triangle struct {
	v       [3]int
	n       [3]int
	c       [3]bool
	outside bool
}

func (t *triangle) index(v int) int {
	for k := 0; k < 3; k++ {
		if t.v[k] == v {
			return k
		}
	}
	return -1
}

type subsegment struct {
	a, b       int
	splittable bool
	alive      bool
}

type mesher struct {
	cfg    config
	pts    []geom.Point2
	tris   []triangle
	vt     []int
	nInput int
	super  [3]int
	last   int

	segs   []subsegment
	segIdx map[polymesh.EdgeKey]int
}

// newMesher seeds a super triangle enclosing pts. The input points are not
// inserted yet.
func newMesher(pts []geom.Point2, cfg config) *mesher {
	box := geom.Bounds(pts)
	c := box.Center()
	size := box.Size()
	d := size.X
	if size.Y > d {
		d = size.Y
	}
	if d == 0 {
		d = 1
	}

	m := &mesher{
		cfg:    cfg,
		pts:    append(make([]geom.Point2, 0, len(pts)*2+3), pts...),
		vt:     make([]int, len(pts), len(pts)*2+3),
		nInput: len(pts),
		segIdx: make(map[polymesh.EdgeKey]int),
	}
	for i := range m.vt {
		m.vt[i] = -1
	}
	s0 := m.addPoint(geom.Pt(c.X-superScale*d, c.Y-d))
	s1 := m.addPoint(geom.Pt(c.X+superScale*d, c.Y-d))
	s2 := m.addPoint(geom.Pt(c.X, c.Y+superScale*d))
	m.super = [3]int{s0, s1, s2}

	t := m.newTri(true)
	m.setTri(t, [3]int{s0, s1, s2}, [3]int{-1, -1, -1}, [3]bool{})
	return m
}

func (m *mesher) isSuper(v int) bool {
	return v == m.super[0] || v == m.super[1] || v == m.super[2]
}

func (m *mesher) addPoint(p geom.Point2) int {
	m.pts = append(m.pts, p)
	m.vt = append(m.vt, -1)
	return len(m.pts) - 1
}

func (m *mesher) newTri(outside bool) int {
	m.tris = append(m.tris, triangle{n: [3]int{-1, -1, -1}, outside: outside})
	return len(m.tris) - 1
}

func (m *mesher) setTri(t int, v, n [3]int, c [3]bool) {
	m.tris[t].v, m.tris[t].n, m.tris[t].c = v, n, c
	for _, x := range v {
		m.vt[x] = t
	}
}

// replaceNeighbor rewires nb's pointer from old to nw.
func (m *mesher) replaceNeighbor(nb, old, nw int) {
	if nb < 0 {
		return
	}
	for k := 0; k < 3; k++ {
		if m.tris[nb].n[k] == old {
			m.tris[nb].n[k] = nw
			return
		}
	}
}

// edgeIndex returns the edge slot of t facing nb.
func (m *mesher) edgeIndex(t, nb int) int {
	for k := 0; k < 3; k++ {
		if m.tris[t].n[k] == nb {
			return k
		}
	}
	return -1
}

// side classifies p against the directed line ab: +1 left, -1 right, 0 on it.
func (m *mesher) side(a, b int, p geom.Point2) int {
	pa, pb := m.pts[a], m.pts[b]
	o := geom.Orient(pa, pb, p)
	tol := onEdgeTol * geom.Dist(pa, pb)
	switch {
	case o > tol:
		return 1
	case o < -tol:
		return -1
	default:
		return 0
	}
}

// locate finds the triangle containing p. edge is the slot of the edge p lies
// on (or -1) and dup the vertex p coincides with (or -1). tri is -1 when p
// lies outside the super triangle.
func (m *mesher) locate(p geom.Point2, start int) (tri, edge, dup int) {
	t := start
	if t < 0 || t >= len(m.tris) {
		t = m.last
	}
	limit := 4*len(m.tris) + 64
	for step := 0; step < limit; step++ {
		tr := &m.tris[t]
		next := -1
		for k := 0; k < 3; k++ {
			e := (k + step) % 3
			if m.side(tr.v[(e+1)%3], tr.v[(e+2)%3], p) < 0 {
				next = tr.n[e]
				if next < 0 {
					return -1, -1, -1
				}
				break
			}
		}
		if next < 0 {
			return m.classify(t, p)
		}
		t = next
	}

	for t := range m.tris {
		tr := &m.tris[t]
		if m.side(tr.v[1], tr.v[2], p) >= 0 &&
			m.side(tr.v[2], tr.v[0], p) >= 0 &&
			m.side(tr.v[0], tr.v[1], p) >= 0 {
			return m.classify(t, p)
		}
	}
	return -1, -1, -1
}

func (m *mesher) classify(t int, p geom.Point2) (tri, edge, dup int) {
	tr := &m.tris[t]
	for _, v := range tr.v {
		if geom.Coincident(p, m.pts[v], dupTol) {
			return t, -1, v
		}
	}
	edge = -1
	onCount := 0
	for k := 0; k < 3; k++ {
		if m.side(tr.v[(k+1)%3], tr.v[(k+2)%3], p) == 0 {
			edge = k
			onCount++
		}
	}
	if onCount > 1 {
		// On two edge lines: numerically at their shared corner.
		for k := 0; k < 3; k++ {
			if m.side(tr.v[(k+1)%3], tr.v[(k+2)%3], p) != 0 {
				return t, -1, tr.v[k]
			}
		}
	}
	return t, edge, -1
}

// splitTriangle inserts vertex p strictly inside t and returns the three
// triangles around p.
func (m *mesher) splitTriangle(t, p int) []int {
	T := m.tris[t]
	a, b, c := T.v[0], T.v[1], T.v[2]
	nA, nB, nC := T.n[0], T.n[1], T.n[2]
	cA, cB, cC := T.c[0], T.c[1], T.c[2]

	t1 := m.newTri(T.outside)
	t2 := m.newTri(T.outside)
	m.setTri(t, [3]int{a, b, p}, [3]int{t1, t2, nC}, [3]bool{false, false, cC})
	m.setTri(t1, [3]int{b, c, p}, [3]int{t2, t, nA}, [3]bool{false, false, cA})
	m.setTri(t2, [3]int{c, a, p}, [3]int{t, t1, nB}, [3]bool{false, false, cB})
	m.replaceNeighbor(nA, t, t1)
	m.replaceNeighbor(nB, t, t2)
	return []int{t, t1, t2}
}

// splitEdge inserts vertex p on the edge opposite slot i of t, splitting t
// and its neighbour across that edge. A constrained edge stays constrained
// on both halves.
func (m *mesher) splitEdge(t, i, p int) []int {
	T := m.tris[t]
	x, a, b := T.v[i], T.v[(i+1)%3], T.v[(i+2)%3]
	cab := T.c[i]
	u := T.n[i]
	tXA, cXA := T.n[(i+2)%3], T.c[(i+2)%3]
	tBX, cBX := T.n[(i+1)%3], T.c[(i+1)%3]

	t2 := m.newTri(T.outside)
	u2 := -1
	out := []int{t, t2}
	if u >= 0 {
		U := m.tris[u]
		j := m.edgeIndex(u, t)
		d := U.v[j]
		uAD, cAD := U.n[(j+1)%3], U.c[(j+1)%3]
		uDB, cDB := U.n[(j+2)%3], U.c[(j+2)%3]

		u2 = m.newTri(U.outside)
		m.setTri(u, [3]int{d, b, p}, [3]int{t2, u2, uDB}, [3]bool{cab, false, cDB})
		m.setTri(u2, [3]int{d, p, a}, [3]int{t, uAD, u}, [3]bool{cab, cAD, false})
		m.replaceNeighbor(uAD, u, u2)
		out = append(out, u, u2)
	}
	m.setTri(t, [3]int{x, a, p}, [3]int{u2, t2, tXA}, [3]bool{cab, false, cXA})
	m.setTri(t2, [3]int{x, p, b}, [3]int{u, tBX, t}, [3]bool{cab, cBX, false})
	m.replaceNeighbor(tBX, t, t2)
	return out
}

// flip replaces the edge opposite slot i of t by the other diagonal of the
// quadrilateral formed with its neighbour. With t = (p,a,b) and the
// neighbour (d,b,a), the results are t = (p,a,d) and u = (p,d,b).
func (m *mesher) flip(t, i int) (int, int) {
	T := m.tris[t]
	p, a, b := T.v[i], T.v[(i+1)%3], T.v[(i+2)%3]
	u := T.n[i]
	U := m.tris[u]
	j := m.edgeIndex(u, t)
	d := U.v[j]

	tPA, cPA := T.n[(i+2)%3], T.c[(i+2)%3]
	tBP, cBP := T.n[(i+1)%3], T.c[(i+1)%3]
	uAD, cAD := U.n[(j+1)%3], U.c[(j+1)%3]
	uDB, cDB := U.n[(j+2)%3], U.c[(j+2)%3]

	m.setTri(t, [3]int{p, a, d}, [3]int{uAD, u, tPA}, [3]bool{cAD, false, cPA})
	m.setTri(u, [3]int{p, d, b}, [3]int{uDB, tBP, t}, [3]bool{cDB, cBP, false})
	m.replaceNeighbor(uAD, u, t)
	m.replaceNeighbor(tBP, t, u)
	return t, u
}

// legalize restores the Delaunay property around the new vertex p, starting
// from the triangles in stack. It returns every triangle it touched.
func (m *mesher) legalize(p int, stack []int) []int {
	touched := append([]int(nil), stack...)
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		T := &m.tris[t]
		k := T.index(p)
		if k < 0 || T.c[k] {
			continue
		}
		u := T.n[k]
		if u < 0 {
			continue
		}
		d := m.tris[u].v[m.edgeIndex(u, t)]
		if geom.InCircle(m.pts[T.v[0]], m.pts[T.v[1]], m.pts[T.v[2]], m.pts[d]) > 0 {
			t1, t2 := m.flip(t, k)
			stack = append(stack, t1, t2)
			touched = append(touched, t1, t2)
		}
	}
	return touched
}

// insertAt places vertex p in the triangle located by locate and legalizes.
func (m *mesher) insertAt(p, tri, edge int) []int {
	var created []int
	if edge >= 0 {
		created = m.splitEdge(tri, edge, p)
	} else {
		created = m.splitTriangle(tri, p)
	}
	m.last = tri
	return m.legalize(p, created)
}

// findEdge returns the triangle and slot whose edge joins a and b.
func (m *mesher) findEdge(a, b int) (int, int, bool) {
	match := func(t int) (int, bool) {
		T := &m.tris[t]
		k := T.index(a)
		if k < 0 {
			return -1, false
		}
		if T.v[(k+1)%3] == b {
			return (k + 2) % 3, true
		}
		if T.v[(k+2)%3] == b {
			return (k + 1) % 3, true
		}
		return -1, false
	}

	if t0 := m.vt[a]; t0 >= 0 && m.tris[t0].index(a) >= 0 {
		for dir := 1; dir <= 2; dir++ {
			t := t0
			for steps := 0; steps < 4096; steps++ {
				if i, ok := match(t); ok {
					return t, i, true
				}
				T := &m.tris[t]
				t = T.n[(T.index(a)+dir)%3]
				if t < 0 || t == t0 {
					break
				}
			}
		}
	}
	for t := range m.tris {
		if i, ok := match(t); ok {
			return t, i, true
		}
	}
	return -1, -1, false
}

// constrain marks the edge opposite slot i of t on both sides.
func (m *mesher) constrain(t, i int) {
	m.tris[t].c[i] = true
	if u := m.tris[t].n[i]; u >= 0 {
		m.tris[u].c[m.edgeIndex(u, t)] = true
	}
}

func (m *mesher) registerSegment(a, b int, splittable bool) {
	key := polymesh.MakeEdgeKey(a, b)
	if _, ok := m.segIdx[key]; ok {
		return
	}
	m.segIdx[key] = len(m.segs)
	m.segs = append(m.segs, subsegment{a: a, b: b, splittable: splittable, alive: true})
}
