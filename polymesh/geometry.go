// SPDX-License-Identifier: MIT
// Package: pemesh/polymesh
//
// geometry.go — lengths, areas, angles, tessellation and rigid/affine moves.
//
// Contract:
//   - PolyArea sums the shoelace areas of the cached tessellation, so it is
//     correct for non-convex polygons and independent of winding.
//   - PolyAngleAtVert assumes the polygon is counter-clockwise and returns
//     the interior angle in (0, 2π); reflex corners exceed π.
//   - Affine mutators invalidate tessellations and refresh the bounding box.

package polymesh

import (
	"fmt"
	"math"

	"github.com/DanielaCabiddu/PEMesh/geom"
)

const methodPolyAngleAtVert = "PolyAngleAtVert"

// EdgeLength returns the Euclidean length of eid.
func (m *Mesh) EdgeLength(eid int) float64 {
	k := m.topology().edges[eid]
	return geom.Dist(m.verts[k.A], m.verts[k.B])
}

// PolyTessellation returns triangles covering pid as vertex-id triples with
// the polygon's winding.
func (m *Mesh) PolyTessellation(pid int) [][3]int {
	if m.tess[pid] == nil {
		p := m.polys[pid]
		local := geom.EarClip(m.PolyCoords(pid))
		tris := make([][3]int, len(local))
		for i, t := range local {
			tris[i] = [3]int{p[t[0]], p[t[1]], p[t[2]]}
		}
		m.tess[pid] = tris
	}
	return append([][3]int(nil), m.tess[pid]...)
}

// PolyArea returns the unsigned area of pid.
func (m *Mesh) PolyArea(pid int) float64 {
	var s float64
	for _, t := range m.PolyTessellation(pid) {
		s += geom.Orient(m.verts[t[0]], m.verts[t[1]], m.verts[t[2]]) / 2
	}
	return math.Abs(s)
}

// PolySignedArea returns the shoelace area of pid; positive for CCW.
func (m *Mesh) PolySignedArea(pid int) float64 { return geom.SignedArea(m.PolyCoords(pid)) }

// PolyNormalZ returns the z component of the unit normal of pid: +1 for
// counter-clockwise, -1 for clockwise and 0 for a zero-area polygon.
func (m *Mesh) PolyNormalZ(pid int) float64 {
	a := m.PolySignedArea(pid)
	switch {
	case a > 0:
		return 1
	case a < 0:
		return -1
	default:
		return 0
	}
}

// PolyPerimeter returns the boundary length of pid.
func (m *Mesh) PolyPerimeter(pid int) float64 { return geom.Perimeter(m.PolyCoords(pid)) }

// PolyCentroid returns the area centroid of pid.
func (m *Mesh) PolyCentroid(pid int) geom.Point2 { return geom.Centroid(m.PolyCoords(pid)) }

// PolyAngleAtVert returns the interior angle of pid at corner vid.
func (m *Mesh) PolyAngleAtVert(pid, vid int, unit AngleUnit) (float64, error) {
	pos := m.polyVertPos(pid, vid)
	if pos < 0 {
		return 0, fmt.Errorf("%s: poly %d vert %d: %w", methodPolyAngleAtVert, pid, vid, ErrVertNotInPoly)
	}
	p := m.polys[pid]
	n := len(p)
	a := geom.InteriorAngle(m.verts[p[(pos+n-1)%n]], m.verts[vid], m.verts[p[(pos+1)%n]])
	if unit == Deg {
		a *= 180 / math.Pi
	}
	return a, nil
}

// Area returns the sum of polygon areas.
func (m *Mesh) Area() float64 {
	var s float64
	for pid := range m.polys {
		s += m.PolyArea(pid)
	}
	return s
}

// Translate moves every vertex by d.
func (m *Mesh) Translate(d geom.Point2) {
	for i := range m.verts {
		m.verts[i] = m.verts[i].Add(d)
	}
	m.geometryChanged()
}

// MapVerts replaces every vertex v by fn(v).
func (m *Mesh) MapVerts(fn func(geom.Point2) geom.Point2) {
	for i, v := range m.verts {
		m.verts[i] = fn(v)
	}
	m.geometryChanged()
}

// Scale scales the mesh uniformly by s about its centroid.
func (m *Mesh) Scale(s float64) {
	c := m.Centroid()
	for i := range m.verts {
		m.verts[i] = c.Add(m.verts[i].Sub(c).Mul(s))
	}
	m.geometryChanged()
}

// ScaleXY scales x and y independently about the origin. Negative factors
// reflect the mesh; windings are left untouched.
func (m *Mesh) ScaleXY(sx, sy float64) {
	for i := range m.verts {
		m.verts[i].X *= sx
		m.verts[i].Y *= sy
	}
	m.geometryChanged()
}

// Rotate rotates the mesh about the z axis through the origin by angle
// radians (counter-clockwise).
func (m *Mesh) Rotate(angle float64) {
	s, c := math.Sincos(angle)
	for i, v := range m.verts {
		m.verts[i] = geom.Pt(c*v.X-s*v.Y, s*v.X+c*v.Y)
	}
	m.geometryChanged()
}
