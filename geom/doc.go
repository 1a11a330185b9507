// SPDX-License-Identifier: MIT

// Package geom holds the planar predicates and small polygon routines shared
// by every PEMesh package.
//
// Points are github.com/golang/geo/r2 points (aliased as Point2) so callers
// get vector arithmetic (Add, Sub, Mul, Dot, Cross, Norm) for free.
//
// Conventions:
//   - Polygons are slices of points in cyclic order, no repeated closing vertex.
//   - Counter-clockwise order has positive signed area (normal along +z).
//   - Orient(a,b,c) > 0 iff c lies to the left of the directed line a→b.
//
// Determinism:
//   - Every routine is a pure function of its inputs.
package geom
