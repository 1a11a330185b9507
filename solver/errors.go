// SPDX-License-Identifier: MIT
// Package: pemesh/solver

package solver

import (
	"errors"

	"github.com/DanielaCabiddu/PEMesh/meshio"
)

// ErrIO is the file error kind shared with package meshio.
var ErrIO = meshio.ErrIO

// ErrMismatch indicates metric and error sequences of different lengths.
var ErrMismatch = errors.New("solver: metrics and errors do not match")

// ErrTooFewMeshes indicates fewer than two meshes to correlate.
var ErrTooFewMeshes = errors.New("solver: at least two meshes are required")
