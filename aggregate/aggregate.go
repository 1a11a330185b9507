// SPDX-License-Identifier: MIT
// Package: pemesh/aggregate
//
// aggregate.go — the greedy merge loop.
//
// Contract:
//   - Template polygons (FlagTemplate) are never merged.
//   - The cheapest pair wins; ties go to the lexicographically smallest
//     (p, q) with p < q.
//   - Accepted merges append the merged polygon, then remove max(p,q) and
//     min(p,q); surviving polygons keep their relative order.
//   - Every accepted merge costs at most bound and lowers the polygon count
//     by one, so the loop terminates.
//
// Complexity: O(R · P · d²) for R rounds over P polygons of degree d.

package aggregate

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/DanielaCabiddu/PEMesh/polymesh"
)

const methodRun = "Run"

// Stats summarises a run.
type Stats struct {
	Merged   int // accepted merges
	Rejected int // pairs whose union is not a disk
	Rounds   int
}

type candidate struct {
	p, q int
	cost float64
}

// Run merges adjacent non-template polygons of m in place until the
// cheapest remaining mergeable pair costs more than bound.
func Run(ctx context.Context, m *polymesh.Mesh, policy Policy, bound float64, opts ...Option) (Stats, error) {
	var st Stats
	if m == nil {
		return st, fmt.Errorf("%s: %w", methodRun, ErrNilMesh)
	}
	if !policy.Valid() {
		return st, fmt.Errorf("%s: %d: %w", methodRun, policy, ErrUnknownPolicy)
	}
	if math.IsNaN(bound) {
		return st, fmt.Errorf("%s: %w", methodRun, ErrBound)
	}
	cfg := newConfig(opts...)
	rng := rngFromSeed(cfg.seed)
	rejected := map[string]struct{}{}

	for {
		if err := ctx.Err(); err != nil {
			return st, fmt.Errorf("%s: round %d: %w", methodRun, st.Rounds, err)
		}
		if cfg.maxMerges > 0 && st.Merged >= cfg.maxMerges {
			return st, nil
		}
		st.Rounds++

		var (
			best  candidate
			found bool
		)
		for p := 0; p < m.NumPolys(); p++ {
			if m.PolyFlag(p, polymesh.FlagTemplate) {
				continue
			}
			for _, q := range m.AdjPolyPolys(p) {
				if q < p || m.PolyFlag(q, polymesh.FlagTemplate) {
					continue
				}
				if _, bad := rejected[signature(m, p, q)]; bad {
					continue
				}
				c := candidate{p: p, q: q, cost: Cost(m, policy, rng, p, q)}
				if !found || c.cost < best.cost || (c.cost == best.cost && c.p == best.p && c.q < best.q) {
					best, found = c, true
				}
			}
		}
		if !found || best.cost > bound {
			return st, nil
		}

		merged, ok := mergedOutline(m, best.p, best.q)
		if !ok {
			rejected[signature(m, best.p, best.q)] = struct{}{}
			st.Rejected++
			continue
		}
		if err := replace(m, best.p, best.q, merged); err != nil {
			return st, fmt.Errorf("%s: merging %d and %d: %w", methodRun, best.p, best.q, err)
		}
		st.Merged++
		if cfg.progress != nil {
			cfg.progress(st.Merged, m.NumPolys())
		}
	}
}

// Mergeable reports whether polygons p and q share an edge and their union
// is a disk with a simple boundary.
func Mergeable(m *polymesh.Mesh, p, q int) bool {
	if p == q || !slices.Contains(m.AdjPolyPolys(p), q) {
		return false
	}
	_, ok := mergedOutline(m, p, q)
	return ok
}

// mergedOutline returns the boundary loop of p ∪ q, counter-clockwise.
func mergedOutline(m *polymesh.Mesh, p, q int) ([]int, bool) {
	sub, err := polymesh.New(m.Verts(), [][]int{m.PolyVerts(p), m.PolyVerts(q)})
	if err != nil || sub.BoundaryComponents() != 1 {
		return nil, false
	}
	loop, err := sub.OrderedBoundaryVerts()
	if err != nil || len(loop) < 3 {
		return nil, false
	}
	return loop, true
}

// replace swaps p and q for the merged polygon.
func replace(m *polymesh.Mesh, p, q int, merged []int) error {
	pid, err := m.PolyAdd(merged)
	if err != nil {
		return err
	}
	if m.PolyNormalZ(pid) < 0 {
		if err := m.PolyFlipWinding(pid); err != nil {
			return err
		}
	}
	m.SetPolyColor(pid, m.PolyColor(min(p, q)))
	if err := m.PolyRemove(max(p, q)); err != nil {
		return err
	}
	return m.PolyRemove(min(p, q))
}

// signature identifies a pair by the sorted vertex ids of both polygons, so
// it survives renumbering of the polygons themselves.
func signature(m *polymesh.Mesh, p, q int) string {
	a, b := m.PolyVerts(p), m.PolyVerts(q)
	ka, kb := key(a), key(b)
	if kb < ka {
		ka, kb = kb, ka
	}
	return ka + "|" + kb
}

func key(vids []int) string {
	s := slices.Clone(vids)
	slices.Sort(s)
	var sb strings.Builder
	for i, v := range s {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	return sb.String()
}
