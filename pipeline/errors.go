// SPDX-License-Identifier: MIT
// Package: pemesh/pipeline
//
// errors.go — sentinels and error kinds.

package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/DanielaCabiddu/PEMesh/aggregate"
	"github.com/DanielaCabiddu/PEMesh/canvas"
	"github.com/DanielaCabiddu/PEMesh/elements"
	"github.com/DanielaCabiddu/PEMesh/meshio"
	"github.com/DanielaCabiddu/PEMesh/polymesh"
)

var (
	// ErrCancelled is returned when the context ends during a run.
	ErrCancelled = errors.New("pipeline: cancelled")
	// ErrSpec indicates an invalid GenerationSpec or AggregationSpec.
	ErrSpec = errors.New("pipeline: invalid specification")
)

// Kind classifies errors for observers and exit codes.
type Kind uint8

const (
	KindOther Kind = iota
	KindConfig
	KindElementOutsideCanvas
	KindIntersectingElements
	KindDegenerate
	KindNonManifold
	KindIO
	KindCancelled
)

var kindNames = [...]string{
	"other", "config", "element_outside_canvas", "intersecting_elements",
	"degenerate", "non_manifold", "io", "cancelled",
}

// String returns the snake_case name of k.
func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// KindOf classifies err; nil maps to KindOther.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindOther
	case errors.Is(err, ErrCancelled), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCancelled
	case errors.Is(err, canvas.ErrElementOutsideCanvas):
		return KindElementOutsideCanvas
	case errors.Is(err, canvas.ErrIntersectingElements):
		return KindIntersectingElements
	case errors.Is(err, polymesh.ErrNonManifold):
		return KindNonManifold
	case errors.Is(err, polymesh.ErrDegenerate):
		return KindDegenerate
	case errors.Is(err, meshio.ErrIO):
		return KindIO
	case errors.Is(err, ErrSpec), errors.Is(err, canvas.ErrParams),
		errors.Is(err, elements.ErrParamRange), errors.Is(err, elements.ErrUnknownClass),
		errors.Is(err, elements.ErrNeedOutline), errors.Is(err, aggregate.ErrUnknownPolicy),
		errors.Is(err, aggregate.ErrBound):
		return KindConfig
	}
	return KindOther
}

func cancelled(method string, err error) error {
	return fmt.Errorf("%s: %w: %w", method, ErrCancelled, err)
}
