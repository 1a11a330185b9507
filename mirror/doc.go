// SPDX-License-Identifier: MIT

// Package mirror replaces a mesh by its four-fold reflection about the two
// coordinate axes.
//
// The mesh is first moved so that its bounding box starts at the origin,
// then reflected across x = 0, y = 0 and both. The four copies are welded
// along the axes by clustering coincident boundary vertices, and the union
// is rescaled independently along x and y onto the unit square.
//
// NormalizeToUnitSquare is also exported on its own.
package mirror
