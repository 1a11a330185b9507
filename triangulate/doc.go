// SPDX-License-Identifier: MIT

// Package triangulate builds constrained Delaunay triangulations of planar
// straight-line graphs with holes, with optional quality (minimum angle) and
// area refinement.
//
// Pipeline:
//  1. Incremental Lawson insertion of every input point inside a super
//     triangle (walking point location, edge flips).
//  2. Recovery of every input segment by flipping the edges it crosses.
//     A segment crossed by another segment, or passing through a vertex,
//     fails with ErrIntersecting.
//  3. Removal of the exterior (everything reachable from the super triangle
//     without crossing a segment) and of every hole region containing a
//     hole seed.
//  4. Refinement: triangles with an angle below the minimum or an area above
//     the bound get their circumcentre inserted. Segments marked Splittable
//     are split at their midpoint when a circumcentre encroaches them; other
//     segments are never split, so their endpoints are the only vertices on
//     them in the output.
//
// Output vertices list the input points first, in input order, followed by
// the Steiner points in insertion order.
//
// The triangulator is a plain value-in/value-out function and keeps no
// global state.
package triangulate
