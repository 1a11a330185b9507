// SPDX-License-Identifier: MIT
// Package: pemesh/aggregate
//
// policy.go — merge cost functions.
//
// For a polygon set S with vertex union V, total area A and edges E' (edges
// of S not shared inside S):
//   - Diameter: max |vi − vj| over V.
//   - Random:   uniform integer in [0,1000), plus 1000 on meshes of at most
//     sparseMesh polygons.
//   - RhoDiam:  diam / min(√A, min |e| over E').
//   - RhoArea:  RhoDiam² · A.

package aggregate

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/DanielaCabiddu/PEMesh/geom"
	"github.com/DanielaCabiddu/PEMesh/polymesh"
)

// Policy selects the merge cost.
type Policy uint8

const (
	Diameter Policy = iota
	Random
	RhoDiam
	RhoArea
)

const (
	randomRange = 1000
	sparseMesh  = 50
)

var policyNames = [...]string{"diameter", "random", "rho_diam", "rho_area"}

// String returns the configuration name of the policy.
func (p Policy) String() string {
	if int(p) >= len(policyNames) {
		return "unknown"
	}
	return policyNames[p]
}

// ParsePolicy maps a configuration name to its policy.
func ParsePolicy(s string) (Policy, error) {
	for i, n := range policyNames {
		if strings.EqualFold(n, s) {
			return Policy(i), nil
		}
	}
	return 0, fmt.Errorf("aggregate: policy %q: %w", s, ErrUnknownPolicy)
}

// Valid reports whether p is a known policy.
func (p Policy) Valid() bool { return int(p) < len(policyNames) }

// Cost scores merging polygons p and q of m under policy. rng is consulted
// by Random only; nil selects the default stream.
func Cost(m *polymesh.Mesh, policy Policy, rng *rand.Rand, p, q int) float64 {
	if policy == Random {
		if rng == nil {
			rng = rngFromSeed(0)
		}
		v := float64(rng.Intn(randomRange))
		if m.NumPolys() <= sparseMesh {
			v += randomRange
		}
		return v
	}
	return shapeCost(m, policy, p, q)
}

// shapeCost evaluates the geometric policies over the polygon set pids.
func shapeCost(m *polymesh.Mesh, policy Policy, pids ...int) float64 {
	var (
		pts  []geom.Point2
		seen = map[int]struct{}{}
		area float64
		minE = math.Inf(1)
	)
	inSet := func(pid int) bool {
		for _, x := range pids {
			if x == pid {
				return true
			}
		}
		return false
	}
	for _, pid := range pids {
		for _, v := range m.PolyVerts(pid) {
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				pts = append(pts, m.Vert(v))
			}
		}
		area += m.PolyArea(pid)
		if policy == Diameter {
			continue
		}
		for _, eid := range m.AdjPolyEdges(pid) {
			shared := false
			for _, o := range m.AdjEdgePolys(eid) {
				if o != pid && inSet(o) {
					shared = true
				}
			}
			if !shared {
				minE = min(minE, m.EdgeLength(eid))
			}
		}
	}

	diam := diameter(pts)
	switch policy {
	case Diameter:
		return diam
	case RhoDiam:
		return diam / min(math.Sqrt(area), minE)
	default:
		rho := diam / min(math.Sqrt(area), minE)
		return rho * rho * area
	}
}

func diameter(pts []geom.Point2) float64 {
	var d float64
	for i := range pts {
		for j := i + 1; j < len(pts); j++ {
			d = max(d, geom.Dist(pts[i], pts[j]))
		}
	}
	return d
}

// DefaultBound derives the bound used when none is configured: the largest
// Diameter, RhoDiam or RhoArea score among template polygons, or 1000 for
// Random.
func DefaultBound(m *polymesh.Mesh, policy Policy) (float64, error) {
	if m == nil {
		return 0, ErrNilMesh
	}
	if !policy.Valid() {
		return 0, fmt.Errorf("DefaultBound: %d: %w", policy, ErrUnknownPolicy)
	}
	if policy == Random {
		return randomRange, nil
	}
	bound, found := math.Inf(-1), false
	for pid := 0; pid < m.NumPolys(); pid++ {
		if !m.PolyFlag(pid, polymesh.FlagTemplate) {
			continue
		}
		found = true
		bound = max(bound, shapeCost(m, policy, pid))
	}
	if !found {
		return 0, fmt.Errorf("DefaultBound: %w", ErrNoTemplates)
	}
	return bound, nil
}
