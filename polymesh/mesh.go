// SPDX-License-Identifier: MIT
// Package: pemesh/polymesh
//
// mesh.go — construction, element access and adjacency queries.
//
// Contract:
//   - New validates every polygon: at least three vertices, indices in range,
//     no repeated index inside one polygon.
//   - Adjacency slices returned by Adj* are copies; callers may keep them.
//
// Complexity:
//   - Topology rebuild: O(Σ|p|) expected time with one map insertion per
//     polygon side.

package polymesh

import (
	"fmt"
	"image/color"

	"github.com/golang/geo/r2"

	"github.com/DanielaCabiddu/PEMesh/geom"
)

const (
	methodNew     = "New"
	methodPolyAdd = "PolyAdd"
)

// New builds a mesh from vertices and polygons. Slices are copied.
func New(verts []geom.Point2, polys [][]int) (*Mesh, error) {
	m := &Mesh{
		verts: append([]geom.Point2(nil), verts...),
		bbox:  geom.Bounds(verts),
	}
	for pid, p := range polys {
		if err := m.checkPoly(p); err != nil {
			return nil, fmt.Errorf("%s: poly %d: %w", methodNew, pid, err)
		}
		m.appendPoly(append([]int(nil), p...))
	}
	return m, nil
}

// Clone returns a deep copy of m.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		verts:     append([]geom.Point2(nil), m.verts...),
		polys:     make([][]int, len(m.polys)),
		polyColor: append([]color.RGBA(nil), m.polyColor...),
		polyFlags: append([]Flag(nil), m.polyFlags...),
		tess:      make([][][3]int, len(m.polys)),
		bbox:      m.bbox,
	}
	for i, p := range m.polys {
		c.polys[i] = append([]int(nil), p...)
	}
	if len(m.edgeFlags) > 0 {
		c.edgeFlags = make(map[EdgeKey]Flag, len(m.edgeFlags))
		for k, v := range m.edgeFlags {
			c.edgeFlags[k] = v
		}
	}
	return c
}

func (m *Mesh) checkPoly(p []int) error {
	if len(p) < 3 {
		return fmt.Errorf("%d vertices: %w", len(p), ErrDegenerate)
	}
	seen := make(map[int]struct{}, len(p))
	for _, v := range p {
		if v < 0 || v >= len(m.verts) {
			return fmt.Errorf("vertex %d: %w", v, ErrIndexOutOfRange)
		}
		if _, dup := seen[v]; dup {
			return fmt.Errorf("repeated vertex %d: %w", v, ErrDegenerate)
		}
		seen[v] = struct{}{}
	}
	return nil
}

func (m *Mesh) appendPoly(p []int) int {
	m.polys = append(m.polys, p)
	m.polyColor = append(m.polyColor, ColorWhite)
	m.polyFlags = append(m.polyFlags, 0)
	m.tess = append(m.tess, nil)
	m.topo = nil
	return len(m.polys) - 1
}

// NumVerts returns the number of vertices.
func (m *Mesh) NumVerts() int { return len(m.verts) }

// NumPolys returns the number of polygons.
func (m *Mesh) NumPolys() int { return len(m.polys) }

// NumEdges returns the number of distinct edges.
func (m *Mesh) NumEdges() int { return len(m.topology().edges) }

// Vert returns the coordinates of vertex vid.
func (m *Mesh) Vert(vid int) geom.Point2 { return m.verts[vid] }

// Verts returns a copy of all vertex coordinates.
func (m *Mesh) Verts() []geom.Point2 { return append([]geom.Point2(nil), m.verts...) }

// SetVert moves vertex vid.
func (m *Mesh) SetVert(vid int, p geom.Point2) {
	m.verts[vid] = p
	m.geometryChanged()
}

// AddVert appends a vertex and returns its id.
func (m *Mesh) AddVert(p geom.Point2) int {
	m.verts = append(m.verts, p)
	m.bbox = m.bbox.AddPoint(p)
	m.topo = nil
	return len(m.verts) - 1
}

// PolyVerts returns the vertex ids of polygon pid in winding order.
func (m *Mesh) PolyVerts(pid int) []int { return append([]int(nil), m.polys[pid]...) }

// PolySize returns the number of corners of polygon pid.
func (m *Mesh) PolySize(pid int) int { return len(m.polys[pid]) }

// PolyCoords returns the corner coordinates of polygon pid in winding order.
func (m *Mesh) PolyCoords(pid int) []geom.Point2 {
	p := m.polys[pid]
	out := make([]geom.Point2, len(p))
	for i, v := range p {
		out[i] = m.verts[v]
	}
	return out
}

// PolyContainsVert reports whether vid is a corner of pid.
func (m *Mesh) PolyContainsVert(pid, vid int) bool {
	return m.polyVertPos(pid, vid) >= 0
}

func (m *Mesh) polyVertPos(pid, vid int) int {
	for i, v := range m.polys[pid] {
		if v == vid {
			return i
		}
	}
	return -1
}

// EdgeVerts returns the endpoints of edge eid (lower id first).
func (m *Mesh) EdgeVerts(eid int) (int, int) {
	k := m.topology().edges[eid]
	return k.A, k.B
}

// EdgeID returns the id of the edge joining a and b.
func (m *Mesh) EdgeID(a, b int) (int, bool) {
	id, ok := m.topology().edgeID[MakeEdgeKey(a, b)]
	return id, ok
}

// AdjVertEdges returns the edges incident to vid.
func (m *Mesh) AdjVertEdges(vid int) []int {
	return append([]int(nil), m.topology().vertEdges[vid]...)
}

// AdjVertPolys returns the polygons incident to vid.
func (m *Mesh) AdjVertPolys(vid int) []int {
	return append([]int(nil), m.topology().vertPolys[vid]...)
}

// AdjVertVerts returns the vertices joined to vid by an edge.
func (m *Mesh) AdjVertVerts(vid int) []int {
	t := m.topology()
	out := make([]int, 0, len(t.vertEdges[vid]))
	for _, e := range t.vertEdges[vid] {
		k := t.edges[e]
		if k.A == vid {
			out = append(out, k.B)
		} else {
			out = append(out, k.A)
		}
	}
	return out
}

// AdjEdgePolys returns the one or two polygons incident to eid.
func (m *Mesh) AdjEdgePolys(eid int) []int {
	return append([]int(nil), m.topology().edgePolys[eid]...)
}

// AdjPolyEdges returns the edges of pid in winding order: edge i joins
// corner i and corner i+1.
func (m *Mesh) AdjPolyEdges(pid int) []int {
	return append([]int(nil), m.topology().polyEdges[pid]...)
}

// AdjPolyPolys returns the polygons sharing at least one edge with pid, each
// listed once in order of first shared edge.
func (m *Mesh) AdjPolyPolys(pid int) []int {
	t := m.topology()
	var out []int
	seen := map[int]struct{}{pid: {}}
	for _, e := range t.polyEdges[pid] {
		for _, q := range t.edgePolys[e] {
			if _, ok := seen[q]; ok {
				continue
			}
			seen[q] = struct{}{}
			out = append(out, q)
		}
	}
	return out
}

// EdgeIsBoundary reports whether eid is incident to exactly one polygon.
func (m *Mesh) EdgeIsBoundary(eid int) bool { return len(m.topology().edgePolys[eid]) == 1 }

// BBox returns the cached axis-aligned bounding box.
func (m *Mesh) BBox() r2.Rect { return m.bbox }

// UpdateBBox recomputes the bounding box from the vertices.
func (m *Mesh) UpdateBBox() { m.bbox = geom.Bounds(m.verts) }

// Centroid returns the average of the vertex coordinates.
func (m *Mesh) Centroid() geom.Point2 { return geom.VertexAverage(m.verts) }

// PolyColor returns the display colour of pid.
func (m *Mesh) PolyColor(pid int) color.RGBA { return m.polyColor[pid] }

// SetPolyColor sets the display colour of pid.
func (m *Mesh) SetPolyColor(pid int, c color.RGBA) { m.polyColor[pid] = c }

// PolyFlag reports whether flag f is set on pid.
func (m *Mesh) PolyFlag(pid int, f Flag) bool { return m.polyFlags[pid]&f != 0 }

// SetPolyFlag sets or clears flag f on pid.
func (m *Mesh) SetPolyFlag(pid int, f Flag, on bool) {
	if on {
		m.polyFlags[pid] |= f
	} else {
		m.polyFlags[pid] &^= f
	}
}

// EdgeFlag reports whether flag f is set on eid.
func (m *Mesh) EdgeFlag(eid int, f Flag) bool {
	return m.edgeFlags[m.topology().edges[eid]]&f != 0
}

// SetEdgeFlag sets or clears flag f on eid.
func (m *Mesh) SetEdgeFlag(eid int, f Flag, on bool) {
	k := m.topology().edges[eid]
	if m.edgeFlags == nil {
		m.edgeFlags = make(map[EdgeKey]Flag)
	}
	v := m.edgeFlags[k]
	if on {
		v |= f
	} else {
		v &^= f
	}
	if v == 0 {
		delete(m.edgeFlags, k)
		return
	}
	m.edgeFlags[k] = v
}

// topology returns the adjacency cache, rebuilding it when stale.
func (m *Mesh) topology() *topology {
	if m.topo != nil {
		return m.topo
	}
	t := &topology{
		edgeID:    make(map[EdgeKey]int),
		vertEdges: make([][]int, len(m.verts)),
		vertPolys: make([][]int, len(m.verts)),
		polyEdges: make([][]int, len(m.polys)),
	}
	for pid, p := range m.polys {
		t.polyEdges[pid] = make([]int, len(p))
		for i, v := range p {
			t.vertPolys[v] = append(t.vertPolys[v], pid)
			k := MakeEdgeKey(v, p[(i+1)%len(p)])
			id, ok := t.edgeID[k]
			if !ok {
				id = len(t.edges)
				t.edgeID[k] = id
				t.edges = append(t.edges, k)
				t.edgePolys = append(t.edgePolys, nil)
				t.vertEdges[k.A] = append(t.vertEdges[k.A], id)
				t.vertEdges[k.B] = append(t.vertEdges[k.B], id)
			}
			t.edgePolys[id] = append(t.edgePolys[id], pid)
			t.polyEdges[pid][i] = id
		}
	}
	m.topo = t
	return t
}

func (m *Mesh) geometryChanged() {
	for i := range m.tess {
		m.tess[i] = nil
	}
	m.UpdateBBox()
}
