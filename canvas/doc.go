// SPDX-License-Identifier: MIT

// Package canvas lays deformed element outlines out in the unit square and
// meshes the remainder.
//
// A build:
//  1. places every element (deform, scale about its centroid, rotate about
//     the origin, move its bounding-box centre onto the requested centre)
//     and rejects outlines leaving [0,1]² or touching each other;
//  2. assembles a planar straight-line graph from the outlines and the
//     canvas frame, with one hole seed per element;
//  3. runs a quality constrained Delaunay triangulation (package
//     triangulate) in which only frame segments may be split;
//  4. re-inserts each outline as a single polygon, flags it as a template,
//     marks its edges and colours it red.
//
// Failures surface as ErrElementOutsideCanvas or ErrIntersectingElements;
// a failed build returns a nil mesh.
package canvas
