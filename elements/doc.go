// SPDX-License-Identifier: MIT

// Package elements provides the parametric polygon templates placed on the
// PEMesh canvas.
//
// An Element is a closed tagged variant over nine classes: Comb, Convexity,
// Isotropy, Maze, N-Sided, Star, U-Like, Zeta and Random. Every class exposes
// the same operation, Deform(t) with t ∈ [0,1], which returns a fresh
// single-polygon mesh with counter-clockwise winding. Random elements carry an
// outline loaded from an OBJ file and ignore t.
//
// Construction follows the functional-options pattern:
//
//	e, err := elements.New(elements.NSided, elements.WithMaxSides(24))
//	m, err := e.Deform(0.5)
//
// Option constructors panic on meaningless values (WithMaxSides(2)); Deform
// returns sentinel errors (ErrParamRange, ErrDegenerate) and never panics.
//
// The class tables (names, file prefixes, numeric ids) are process-wide
// constants; ClassIDFromFilename derives a class id from a dataset file name.
//
// Elements are immutable after construction and safe for concurrent use.
package elements
