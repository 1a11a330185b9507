// SPDX-License-Identifier: MIT
// Package: pemesh/polymesh
//
// errors.go — sentinel errors for the polymesh package.
//
// Error policy:
//   • Only sentinel variables are exposed; callers branch with errors.Is.
//   • Methods attach context with fmt.Errorf("%s: ...: %w", method, ...).

package polymesh

import "errors"

// ErrDegenerate indicates that an operation would leave a polygon with fewer
// than three distinct vertices, or that the input polygon is already so.
var ErrDegenerate = errors.New("polymesh: degenerate polygon")

// ErrNonManifold indicates a boundary vertex with boundary degree other than
// two, or a boundary walk that revisits a vertex before closing.
var ErrNonManifold = errors.New("polymesh: non-manifold configuration")

// ErrIndexOutOfRange indicates a vertex or polygon identifier outside the mesh.
var ErrIndexOutOfRange = errors.New("polymesh: index out of range")

// ErrVertNotInPoly indicates a vertex that is not a corner of the polygon.
var ErrVertNotInPoly = errors.New("polymesh: vertex not in polygon")

// ErrNoBoundary indicates a query on a mesh without boundary edges.
var ErrNoBoundary = errors.New("polymesh: mesh has no boundary")
