// SPDX-License-Identifier: MIT
// Package: pemesh/polymesh
//
// boundary.go — boundary extraction and the ordered boundary walk.
//
// Contract:
//   - OrderedBoundary checks manifoldness eagerly: every boundary vertex must
//     have exactly two incident boundary edges, otherwise ErrNonManifold.
//     The returned sequence is lazy and yields the loop through the
//     lowest-indexed boundary vertex, following polygon winding.
//   - BoundaryComponents counts connected components of the boundary graph.

package polymesh

import (
	"fmt"
	"iter"
	"slices"
)

const methodOrderedBoundary = "OrderedBoundary"

// BoundaryEdges returns the ids of edges incident to a single polygon.
func (m *Mesh) BoundaryEdges() []int {
	t := m.topology()
	var out []int
	for e, ps := range t.edgePolys {
		if len(ps) == 1 {
			out = append(out, e)
		}
	}
	return out
}

// BoundaryVerts returns the sorted ids of vertices on a boundary edge.
func (m *Mesh) BoundaryVerts() []int {
	t := m.topology()
	seen := make(map[int]struct{})
	for _, e := range m.BoundaryEdges() {
		seen[t.edges[e].A] = struct{}{}
		seen[t.edges[e].B] = struct{}{}
	}
	out := make([]int, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// VertIsBoundary reports whether vid lies on a boundary edge.
func (m *Mesh) VertIsBoundary(vid int) bool {
	return m.BoundaryDegree(vid) > 0
}

// BoundaryDegree returns the number of boundary edges incident to vid.
func (m *Mesh) BoundaryDegree(vid int) int {
	t := m.topology()
	d := 0
	for _, e := range t.vertEdges[vid] {
		if len(t.edgePolys[e]) == 1 {
			d++
		}
	}
	return d
}

// boundaryAdjacency maps each boundary vertex to its boundary neighbours.
func (m *Mesh) boundaryAdjacency() map[int][]int {
	t := m.topology()
	adj := make(map[int][]int)
	for _, e := range m.BoundaryEdges() {
		k := t.edges[e]
		adj[k.A] = append(adj[k.A], k.B)
		adj[k.B] = append(adj[k.B], k.A)
	}
	return adj
}

// BoundaryComponents returns the number of connected components formed by
// boundary edges.
func (m *Mesh) BoundaryComponents() int {
	adj := m.boundaryAdjacency()
	seen := make(map[int]bool, len(adj))
	verts := make([]int, 0, len(adj))
	for v := range adj {
		verts = append(verts, v)
	}
	slices.Sort(verts)

	n := 0
	for _, s := range verts {
		if seen[s] {
			continue
		}
		n++
		queue := []int{s}
		seen[s] = true
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			for _, w := range adj[v] {
				if !seen[w] {
					seen[w] = true
					queue = append(queue, w)
				}
			}
		}
	}
	return n
}

// OrderedBoundary returns a lazy walk over the boundary loop that contains
// the lowest-indexed boundary vertex.
func (m *Mesh) OrderedBoundary() (iter.Seq[int], error) {
	adj := m.boundaryAdjacency()
	if len(adj) == 0 {
		return nil, fmt.Errorf("%s: %w", methodOrderedBoundary, ErrNoBoundary)
	}
	start := -1
	for v, ns := range adj {
		if len(ns) != 2 {
			return nil, fmt.Errorf("%s: vertex %d has boundary degree %d: %w",
				methodOrderedBoundary, v, len(ns), ErrNonManifold)
		}
		if start < 0 || v < start {
			start = v
		}
	}

	// Directed successor along polygon winding, when consistent.
	succ := make(map[int]int, len(adj))
	t := m.topology()
	for pid, p := range m.polys {
		for i, v := range p {
			e := t.polyEdges[pid][i]
			if len(t.edgePolys[e]) == 1 {
				succ[v] = p[(i+1)%len(p)]
			}
		}
	}

	return func(yield func(int) bool) {
		prev, cur := -1, start
		for {
			if !yield(cur) {
				return
			}
			next, ok := succ[cur]
			if !ok || next == prev {
				ns := adj[cur]
				next = ns[0]
				if next == prev {
					next = ns[1]
				}
			}
			prev, cur = cur, next
			if cur == start {
				return
			}
		}
	}, nil
}

// OrderedBoundaryVerts collects OrderedBoundary into a slice.
func (m *Mesh) OrderedBoundaryVerts() ([]int, error) {
	seq, err := m.OrderedBoundary()
	if err != nil {
		return nil, err
	}
	out := slices.Collect(seq)
	if hasRepeat(out) {
		return nil, fmt.Errorf("%s: repeated vertex: %w", methodOrderedBoundary, ErrNonManifold)
	}
	return out, nil
}
