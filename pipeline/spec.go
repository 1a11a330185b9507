// SPDX-License-Identifier: MIT
// Package: pemesh/pipeline
//
// spec.go — run specifications.

package pipeline

import (
	"fmt"

	"github.com/DanielaCabiddu/PEMesh/aggregate"
	"github.com/DanielaCabiddu/PEMesh/canvas"
)

// GenerationSpec selects the deformation parameters of a run and the
// triangulation of every canvas.
type GenerationSpec struct {
	Parametric     bool
	Samples        int     // parametric only, ≥ 1
	MaxDeformation float64 // parametric only, in (0, 1]
	Triangulation  canvas.Params
}

// DefaultGenerationSpec returns a single-mesh run at t = 0 with the default
// triangulation; when switched to parametric it samples ten values in [0,1].
func DefaultGenerationSpec() GenerationSpec {
	return GenerationSpec{Samples: 10, MaxDeformation: 1, Triangulation: canvas.DefaultParams()}
}

// Validate reports values outside their domain.
func (s GenerationSpec) Validate() error {
	if s.Parametric {
		if s.Samples < 1 {
			return fmt.Errorf("samples %d: %w", s.Samples, ErrSpec)
		}
		if !(s.MaxDeformation > 0 && s.MaxDeformation <= 1) {
			return fmt.Errorf("max deformation %g outside (0,1]: %w", s.MaxDeformation, ErrSpec)
		}
	}
	if err := s.Triangulation.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrSpec, err)
	}
	return nil
}

// Params returns the deformation parameters in run order: Samples
// equispaced values from 0 to MaxDeformation inclusive, or the single
// value 0 for a non-parametric run.
func (s GenerationSpec) Params() []float64 {
	if !s.Parametric || s.Samples <= 1 {
		return []float64{0}
	}
	ts := make([]float64, s.Samples)
	last := float64(s.Samples - 1)
	for i := range ts {
		ts[i] = s.MaxDeformation * float64(i) / last
	}
	return ts
}

// AggregationSpec parameterises Orchestrator.Aggregate. A non-positive
// Bound selects aggregate.DefaultBound per mesh.
type AggregationSpec struct {
	Policy aggregate.Policy
	Bound  float64
	Seed   int64
}
