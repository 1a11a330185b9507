// SPDX-License-Identifier: MIT
// Package: pemesh/canvas
//
// errors.go — sentinel errors.

package canvas

import "errors"

var (
	// ErrElementOutsideCanvas indicates a placed outline leaving [0,1]².
	ErrElementOutsideCanvas = errors.New("canvas: element outside canvas")

	// ErrIntersectingElements indicates outlines that touch, cross or nest,
	// or a domain whose element holes cannot be sealed.
	ErrIntersectingElements = errors.New("canvas: intersecting elements")

	// ErrParams indicates triangulation or placement parameters outside
	// their domain.
	ErrParams = errors.New("canvas: invalid parameters")
)
