// SPDX-License-Identifier: MIT
// Package: pemesh/stats
//
// errors.go — sentinel errors. Every message is prefixed with "stats: ".

package stats

import "errors"

var (
	// ErrBadShape indicates non-positive dimensions or ragged rows.
	ErrBadShape = errors.New("stats: invalid shape")
	// ErrOutOfRange indicates a row or column index outside the matrix.
	ErrOutOfRange = errors.New("stats: index out of range")
	// ErrDimensionMismatch indicates incompatible lengths, or fewer than two
	// observations where a sample statistic is requested.
	ErrDimensionMismatch = errors.New("stats: dimension mismatch")
	// ErrNaNInf indicates a non-finite value where finite values are required.
	ErrNaNInf = errors.New("stats: NaN or Inf encountered")
)
