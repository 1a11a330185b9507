// SPDX-License-Identifier: MIT
// Package: pemesh/dataset

package dataset

import (
	"errors"

	"github.com/DanielaCabiddu/PEMesh/meshio"
)

var (
	// ErrIO is the file error kind shared with package meshio.
	ErrIO = meshio.ErrIO

	// ErrIndexOutOfRange indicates a mesh index outside [0, Len()).
	ErrIndexOutOfRange = errors.New("dataset: index out of range")

	// ErrNoMesh indicates metrics attached without a mesh to attach them to.
	ErrNoMesh = errors.New("dataset: no mesh awaiting metrics")

	// ErrNoMetrics indicates a mesh whose metrics were never attached.
	ErrNoMetrics = errors.New("dataset: mesh has no metrics")

	// ErrNoMeshes indicates a directory without OBJ files.
	ErrNoMeshes = errors.New("dataset: no meshes found")

	// ErrCatalog wraps database failures of Catalog.
	ErrCatalog = errors.New("dataset: catalog error")
)
