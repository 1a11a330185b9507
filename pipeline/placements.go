// SPDX-License-Identifier: MIT
// Package: pemesh/pipeline

package pipeline

import (
	"fmt"

	"github.com/DanielaCabiddu/PEMesh/canvas"
	"github.com/DanielaCabiddu/PEMesh/elements"
	"github.com/DanielaCabiddu/PEMesh/meshio"
)

// LoadPlacements reads a placement-set file and rebuilds its elements.
// opts apply to the built-in classes.
func LoadPlacements(path string, opts ...elements.Option) ([]canvas.PlacedElement, error) {
	recs, err := meshio.LoadPlacements(path)
	if err != nil {
		return nil, err
	}
	out := make([]canvas.PlacedElement, len(recs))
	for i, rec := range recs {
		pe, err := canvas.FromRecord(rec, opts...)
		if err != nil {
			return nil, fmt.Errorf("LoadPlacements: record %d: %w", i, err)
		}
		out[i] = pe
	}
	return out, nil
}

// SavePlacements writes placed elements as a placement-set file.
func SavePlacements(path string, placed []canvas.PlacedElement) error {
	recs := make([]meshio.PlacementRecord, len(placed))
	for i, pe := range placed {
		recs[i] = pe.Record()
	}
	return meshio.SavePlacements(path, recs)
}
