// SPDX-License-Identifier: MIT
// Package: pemesh/elements
//
// errors.go — sentinel errors for the elements package.
//
// Error policy:
//   • Callers branch with errors.Is; messages carry context via %w wrapping.
//   • Option constructors panic on invalid values; Deform and New never panic.

package elements

import (
	"errors"

	"github.com/DanielaCabiddu/PEMesh/polymesh"
)

// ErrParamRange indicates a deformation parameter outside [0,1] or NaN.
var ErrParamRange = errors.New("elements: deformation parameter out of range")

// ErrUnknownClass indicates a class id or name outside the class table.
var ErrUnknownClass = errors.New("elements: unknown element class")

// ErrNeedOutline indicates a Random element requested without an outline.
var ErrNeedOutline = errors.New("elements: random element requires an outline")

// ErrDegenerate is polymesh.ErrDegenerate, re-exported for callers that only
// import elements.
var ErrDegenerate = polymesh.ErrDegenerate
