// SPDX-License-Identifier: MIT
// Package: pemesh/mirror
//
// mirror.go — reflection, welding and rescale.
//
// Contract:
//   - Polygon ids: original, x-mirror, y-mirror, xy-mirror, each block in
//     the input order.
//   - Single-axis copies get their windings reversed; the xy copy keeps
//     them, so every polygon stays counter-clockwise.
//   - Welding merges each cluster into its lowest vertex id. Drops are
//     applied in descending id order so pending ids stay valid.

package mirror

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/DanielaCabiddu/PEMesh/geom"
	"github.com/DanielaCabiddu/PEMesh/polymesh"
)

const (
	methodMirror    = "Mirror"
	methodNormalize = "NormalizeToUnitSquare"
)

// Welding tolerances, tried in order.
var weldTolerances = [...]float64{1e-12, 1e-10}

var (
	// ErrEmptyMesh indicates a mesh without polygons.
	ErrEmptyMesh = errors.New("mirror: empty mesh")
	// ErrDegenerateBox indicates a bounding box of zero width or height.
	ErrDegenerateBox = errors.New("mirror: degenerate bounding box")
	// ErrNonManifold is polymesh.ErrNonManifold, returned when welding
	// would collapse a polygon.
	ErrNonManifold = polymesh.ErrNonManifold
)

// Mirror reflects m in place and returns the number of welded vertices.
func Mirror(ctx context.Context, m *polymesh.Mesh) (int, error) {
	if m == nil || m.NumPolys() == 0 {
		return 0, fmt.Errorf("%s: %w", methodMirror, ErrEmptyMesh)
	}
	m.Translate(m.BBox().Lo().Mul(-1))

	copies := []struct{ sx, sy float64 }{{-1, 1}, {1, -1}, {-1, -1}}
	parts := make([]*polymesh.Mesh, len(copies))
	for i, c := range copies {
		cp := m.Clone()
		cp.ScaleXY(c.sx, c.sy)
		if c.sx*c.sy < 0 {
			for pid := 0; pid < cp.NumPolys(); pid++ {
				if err := cp.PolyFlipWinding(pid); err != nil {
					return 0, fmt.Errorf("%s: %w", methodMirror, err)
				}
			}
		}
		parts[i] = cp
	}
	for _, cp := range parts {
		m.Append(cp)
	}

	welded := 0
	for _, tol := range weldTolerances {
		for {
			if err := ctx.Err(); err != nil {
				return welded, fmt.Errorf("%s: %w", methodMirror, err)
			}
			pairs := clusters(m, m.BoundaryVerts(), tol)
			if len(pairs) == 0 {
				break
			}
			for _, p := range pairs {
				if err := m.VertMerge(p.keep, p.drop); err != nil {
					return welded, fmt.Errorf("%s: weld %d into %d: %w: %w", methodMirror, p.drop, p.keep, ErrNonManifold, err)
				}
				welded++
			}
		}
	}

	if err := NormalizeToUnitSquare(m); err != nil {
		return welded, fmt.Errorf("%s: %w", methodMirror, err)
	}
	return welded, nil
}

// NormalizeToUnitSquare maps the bounding box of m onto [0,1]² with
// independent x and y factors.
func NormalizeToUnitSquare(m *polymesh.Mesh) error {
	if m == nil || m.NumVerts() == 0 {
		return fmt.Errorf("%s: %w", methodNormalize, ErrEmptyMesh)
	}
	box := m.BBox()
	lo := box.Lo()
	size := box.Size()
	if !(size.X > 0 && size.Y > 0) {
		return fmt.Errorf("%s: %gx%g: %w", methodNormalize, size.X, size.Y, ErrDegenerateBox)
	}
	hi := box.Hi()
	m.MapVerts(func(v geom.Point2) geom.Point2 {
		return geom.Pt(unit(v.X, lo.X, hi.X), unit(v.Y, lo.Y, hi.Y))
	})
	return nil
}

// unit maps [lo,hi] onto [0,1], hitting both ends exactly.
func unit(v, lo, hi float64) float64 {
	switch v {
	case lo:
		return 0
	case hi:
		return 1
	}
	return (v - lo) / (hi - lo)
}

type weld struct{ keep, drop int }

// clusters groups vertices of vids closer than tol (per coordinate) and
// returns one weld per non-minimal member, sorted by descending drop.
func clusters(m *polymesh.Mesh, vids []int, tol float64) []weld {
	order := slices.Clone(vids)
	slices.SortFunc(order, func(a, b int) int {
		return cmp.Or(cmp.Compare(m.Vert(a).X, m.Vert(b).X), cmp.Compare(a, b))
	})

	parent := make(map[int]int, len(order))
	var find func(int) int
	find = func(v int) int {
		p, ok := parent[v]
		if !ok || p == v {
			return v
		}
		r := find(p)
		parent[v] = r
		return r
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra == rb {
			return
		}
		if rb < ra {
			ra, rb = rb, ra
		}
		parent[rb] = ra
	}

	for i, a := range order {
		pa := m.Vert(a)
		for _, b := range order[i+1:] {
			pb := m.Vert(b)
			if pb.X-pa.X > tol {
				break
			}
			if abs(pb.Y-pa.Y) <= tol {
				union(a, b)
			}
		}
	}

	var out []weld
	for _, v := range order {
		if r := find(v); r != v {
			out = append(out, weld{keep: r, drop: v})
		}
	}
	slices.SortFunc(out, func(a, b weld) int { return cmp.Compare(b.drop, a.drop) })
	return out
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
