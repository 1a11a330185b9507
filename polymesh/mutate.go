// SPDX-License-Identifier: MIT
// Package: pemesh/polymesh
//
// mutate.go — structural mutators.
//
// Contract:
//   - PolyRemove renumbers every polygon above pid down by one.
//   - VertMerge validates all affected polygons before touching the mesh;
//     on error the mesh is unchanged.
//   - Removing a vertex renumbers every vertex above it down by one.

package polymesh

import (
	"fmt"
	"slices"
)

const (
	methodPolyRemove      = "PolyRemove"
	methodPolyFlipWinding = "PolyFlipWinding"
	methodVertMerge       = "VertMerge"
)

// PolyAdd appends a polygon over existing vertices and returns its id.
func (m *Mesh) PolyAdd(vids []int) (int, error) {
	if err := m.checkPoly(vids); err != nil {
		return -1, fmt.Errorf("%s: %w", methodPolyAdd, err)
	}
	return m.appendPoly(append([]int(nil), vids...)), nil
}

// PolyRemove deletes polygon pid. Vertices are kept.
func (m *Mesh) PolyRemove(pid int) error {
	if pid < 0 || pid >= len(m.polys) {
		return fmt.Errorf("%s: poly %d: %w", methodPolyRemove, pid, ErrIndexOutOfRange)
	}
	m.polys = slices.Delete(m.polys, pid, pid+1)
	m.polyColor = slices.Delete(m.polyColor, pid, pid+1)
	m.polyFlags = slices.Delete(m.polyFlags, pid, pid+1)
	m.tess = slices.Delete(m.tess, pid, pid+1)
	m.topo = nil
	return nil
}

// PolyFlipWinding reverses the corner order of pid.
func (m *Mesh) PolyFlipWinding(pid int) error {
	if pid < 0 || pid >= len(m.polys) {
		return fmt.Errorf("%s: poly %d: %w", methodPolyFlipWinding, pid, ErrIndexOutOfRange)
	}
	slices.Reverse(m.polys[pid])
	m.tess[pid] = nil
	m.topo = nil
	return nil
}

// VertMerge rewrites every reference to drop as keep, collapses the
// zero-length edges this creates and deletes drop.
func (m *Mesh) VertMerge(keep, drop int) error {
	if keep < 0 || keep >= len(m.verts) || drop < 0 || drop >= len(m.verts) {
		return fmt.Errorf("%s: (%d,%d): %w", methodVertMerge, keep, drop, ErrIndexOutOfRange)
	}
	if keep == drop {
		return nil
	}

	// Validate first so a failed merge leaves the mesh untouched.
	rewritten := make(map[int][]int)
	for pid, p := range m.polys {
		if !slices.Contains(p, drop) {
			continue
		}
		np := mergeCorners(p, keep, drop)
		if len(np) < 3 || hasRepeat(np) {
			return fmt.Errorf("%s: poly %d collapses: %w", methodVertMerge, pid, ErrDegenerate)
		}
		rewritten[pid] = np
	}
	for pid, np := range rewritten {
		m.polys[pid] = np
	}

	if len(m.edgeFlags) > 0 {
		flags := make(map[EdgeKey]Flag, len(m.edgeFlags))
		for k, f := range m.edgeFlags {
			a, b := k.A, k.B
			if a == drop {
				a = keep
			}
			if b == drop {
				b = keep
			}
			if a == b {
				continue
			}
			nk := MakeEdgeKey(a, b)
			flags[nk] |= f
		}
		m.edgeFlags = flags
	}

	m.removeVert(drop)
	return nil
}

// mergeCorners substitutes drop with keep and removes cyclic repeats.
func mergeCorners(p []int, keep, drop int) []int {
	out := make([]int, 0, len(p))
	for _, v := range p {
		if v == drop {
			v = keep
		}
		if len(out) > 0 && out[len(out)-1] == v {
			continue
		}
		out = append(out, v)
	}
	for len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}

func hasRepeat(p []int) bool {
	seen := make(map[int]struct{}, len(p))
	for _, v := range p {
		if _, ok := seen[v]; ok {
			return true
		}
		seen[v] = struct{}{}
	}
	return false
}

// removeVert deletes an unreferenced vertex and shifts higher ids down.
func (m *Mesh) removeVert(vid int) {
	m.verts = slices.Delete(m.verts, vid, vid+1)
	shift := func(v int) int {
		if v > vid {
			return v - 1
		}
		return v
	}
	for _, p := range m.polys {
		for i, v := range p {
			p[i] = shift(v)
		}
	}
	if len(m.edgeFlags) > 0 {
		flags := make(map[EdgeKey]Flag, len(m.edgeFlags))
		for k, f := range m.edgeFlags {
			flags[MakeEdgeKey(shift(k.A), shift(k.B))] = f
		}
		m.edgeFlags = flags
	}
	m.topo = nil
	m.geometryChanged()
}

// RemoveUnreferencedVerts deletes vertices used by no polygon and returns how
// many were removed. Surviving vertices keep their relative order.
func (m *Mesh) RemoveUnreferencedVerts() int {
	used := make([]bool, len(m.verts))
	for _, p := range m.polys {
		for _, v := range p {
			used[v] = true
		}
	}
	remap := make([]int, len(m.verts))
	kept := m.verts[:0]
	for i, u := range used {
		if !u {
			remap[i] = -1
			continue
		}
		remap[i] = len(kept)
		kept = append(kept, m.verts[i])
	}
	removed := len(m.verts) - len(kept)
	if removed == 0 {
		return 0
	}
	m.verts = kept
	for _, p := range m.polys {
		for i, v := range p {
			p[i] = remap[v]
		}
	}
	if len(m.edgeFlags) > 0 {
		flags := make(map[EdgeKey]Flag, len(m.edgeFlags))
		for k, f := range m.edgeFlags {
			if remap[k.A] < 0 || remap[k.B] < 0 {
				continue
			}
			flags[MakeEdgeKey(remap[k.A], remap[k.B])] = f
		}
		m.edgeFlags = flags
	}
	m.topo = nil
	m.geometryChanged()
	return removed
}

// Append copies other's vertices, polygons and attributes into m and returns
// the offset added to other's vertex ids.
func (m *Mesh) Append(other *Mesh) int {
	off := len(m.verts)
	for _, v := range other.verts {
		m.AddVert(v)
	}
	for pid, p := range other.polys {
		np := make([]int, len(p))
		for i, v := range p {
			np[i] = v + off
		}
		id := m.appendPoly(np)
		m.polyColor[id] = other.polyColor[pid]
		m.polyFlags[id] = other.polyFlags[pid]
	}
	if len(other.edgeFlags) > 0 && m.edgeFlags == nil {
		m.edgeFlags = make(map[EdgeKey]Flag, len(other.edgeFlags))
	}
	for k, f := range other.edgeFlags {
		m.edgeFlags[EdgeKey{A: k.A + off, B: k.B + off}] = f
	}
	return off
}
