// SPDX-License-Identifier: MIT

// Package polymesh implements the 2D polygonal mesh used by every stage of
// PEMesh: templates produce single-polygon meshes, the canvas mesher produces
// full meshes, and the aggregator, mirror operator and metric engine consume
// and mutate them.
//
// A Mesh stores vertices and polygons explicitly. Edges and the
// vertex/edge/polygon adjacency are derived lazily from the polygon list and
// rebuilt after any mutation, so identifiers of edges and polygons are dense
// and renumbered after every structural change. Do not cache identifiers
// across mutating calls.
//
// Per-polygon data: colour, flags (FlagMarked, FlagTemplate) and a cached
// tessellation. Per-edge data: flags, keyed by the unordered vertex pair so it
// survives renumbering.
//
// A Mesh is not safe for concurrent use: read queries may rebuild caches.
package polymesh
