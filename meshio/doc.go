// SPDX-License-Identifier: MIT

// Package meshio reads and writes the file formats at the PEMesh boundary:
//
//   - OBJ polygon meshes ("v x y 0", "f i1 … in", one-based, any polygon size);
//   - NODE/ELE pairs consumed by the external PDE solver;
//   - placement-set files describing a canvas layout;
//   - GeoJSON feature collections (one Polygon feature per mesh polygon) for
//     inspection in GIS tooling.
//
// Every failure is wrapped with ErrIO so callers can map it to a single
// error kind. Floating-point values are written with the shortest
// representation that round-trips exactly.
package meshio
