// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/DanielaCabiddu/PEMesh/config"
	"github.com/DanielaCabiddu/PEMesh/pipeline"
	"github.com/DanielaCabiddu/PEMesh/solver"
)

const (
	exitOK = iota
	exitFailure
	exitConfig
	exitInput
	exitTriangulation
	exitCancelled
)

// errUsage marks command-line mistakes.
var errUsage = errors.New("usage error")

// failedError reports that a run completed with per-mesh failures; kind is
// the kind of the first one.
type failedError struct {
	kind  pipeline.Kind
	count int
	first error
}

func (e *failedError) Error() string {
	if e.count == 1 {
		return e.first.Error()
	}
	return fmt.Sprintf("%d meshes failed, first: %v", e.count, e.first)
}

func (e *failedError) Unwrap() error { return e.first }

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if errors.Is(err, errUsage) || errors.Is(err, config.ErrInvalid) {
		return exitConfig
	}
	if errors.Is(err, solver.ErrMismatch) || errors.Is(err, solver.ErrTooFewMeshes) {
		return exitInput
	}
	kind := pipeline.KindOf(err)
	var fe *failedError
	if errors.As(err, &fe) {
		kind = fe.kind
	}
	switch kind {
	case pipeline.KindCancelled:
		return exitCancelled
	case pipeline.KindConfig:
		return exitConfig
	case pipeline.KindIntersectingElements:
		return exitTriangulation
	case pipeline.KindElementOutsideCanvas, pipeline.KindIO, pipeline.KindDegenerate, pipeline.KindNonManifold:
		return exitInput
	}
	return exitFailure
}
