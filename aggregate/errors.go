// SPDX-License-Identifier: MIT
// Package: pemesh/aggregate
//
// errors.go — sentinel errors for the aggregate package.

package aggregate

import "errors"

var (
	// ErrUnknownPolicy indicates a policy outside the policy table.
	ErrUnknownPolicy = errors.New("aggregate: unknown policy")
	// ErrBound indicates a NaN bound.
	ErrBound = errors.New("aggregate: invalid bound")
	// ErrNoTemplates indicates a default bound requested on a mesh without
	// template polygons.
	ErrNoTemplates = errors.New("aggregate: mesh has no template polygons")
	// ErrNilMesh indicates a nil mesh argument.
	ErrNilMesh = errors.New("aggregate: nil mesh")
)
