// SPDX-License-Identifier: MIT
// Package: pemesh/triangulate
//
// carve.go — exterior and hole removal by flood fill bounded by segments.

package triangulate

import "github.com/DanielaCabiddu/PEMesh/geom"

// carveExterior marks everything reachable from the super triangle corners.
func (m *mesher) carveExterior() {
	for t := range m.tris {
		m.tris[t].outside = false
	}
	var seeds []int
	for t := range m.tris {
		for _, v := range m.tris[t].v {
			if m.isSuper(v) {
				seeds = append(seeds, t)
				break
			}
		}
	}
	m.flood(seeds)
}

// carveSuper marks only the triangles incident to a super triangle corner.
func (m *mesher) carveSuper() {
	for t := range m.tris {
		T := &m.tris[t]
		T.outside = m.isSuper(T.v[0]) || m.isSuper(T.v[1]) || m.isSuper(T.v[2])
	}
}

// carveHoles marks the region around each hole seed.
func (m *mesher) carveHoles(holes []geom.Point2) {
	for _, h := range holes {
		t, _, _ := m.locate(h, m.last)
		if t >= 0 {
			m.flood([]int{t})
		}
	}
}

func (m *mesher) flood(stack []int) {
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		T := &m.tris[t]
		if T.outside {
			continue
		}
		T.outside = true
		for k := 0; k < 3; k++ {
			if nb := T.n[k]; nb >= 0 && !T.c[k] && !m.tris[nb].outside {
				stack = append(stack, nb)
			}
		}
	}
}
