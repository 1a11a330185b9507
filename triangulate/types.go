// SPDX-License-Identifier: MIT
// Package: pemesh/triangulate
//
// types.go — input/output records, options and sentinel errors.

package triangulate

import (
	"errors"
	"fmt"

	"github.com/DanielaCabiddu/PEMesh/geom"
)

// Sentinel errors.
var (
	// ErrTooFewPoints indicates fewer than three input points.
	ErrTooFewPoints = errors.New("triangulate: fewer than three points")
	// ErrInvalidInput indicates non-finite coordinates or bad segment indices.
	ErrInvalidInput = errors.New("triangulate: invalid input")
	// ErrDuplicatePoint indicates two input points closer than the tolerance.
	ErrDuplicatePoint = errors.New("triangulate: duplicate point")
	// ErrIntersecting indicates crossing segments or a vertex on a segment.
	ErrIntersecting = errors.New("triangulate: intersecting segments")
	// ErrRecovery indicates a segment that could not be recovered.
	ErrRecovery = errors.New("triangulate: segment recovery failed")
	// ErrEmptyDomain indicates that carving removed every triangle.
	ErrEmptyDomain = errors.New("triangulate: empty domain")
)

// Segment is a constraint between two input points.
type Segment struct {
	A, B int
	// Splittable segments may receive Steiner points during refinement.
	Splittable bool
}

// Input is a planar straight-line graph.
type Input struct {
	Points   []geom.Point2
	Segments []Segment
	Holes    []geom.Point2
}

// Result is a triangulation of the carved domain.
type Result struct {
	// Points holds the input points followed by Steiner points.
	Points []geom.Point2
	// Triangles are counter-clockwise index triples into Points.
	Triangles [][3]int
	// Segments are the constrained subsegments after refinement.
	Segments [][2]int
	// Steiner is the number of points added by refinement.
	Steiner int
}

// Option customizes Triangulate.
type Option func(*config)

const (
	// MaxMinAngle is the largest accepted minimum-angle bound, in degrees.
	MaxMinAngle = 34.0

	defaultMaxSteiner = 50000
)

type config struct {
	minAngleDeg float64
	maxArea     float64
	maxSteiner  int
}

// WithMinAngle requests triangles whose smallest angle is at least deg
// degrees. Panics outside [0, MaxMinAngle].
func WithMinAngle(deg float64) Option {
	if !(deg >= 0 && deg <= MaxMinAngle) {
		panic(fmt.Sprintf("triangulate: WithMinAngle(%g) outside [0,%g]", deg, MaxMinAngle))
	}
	return func(c *config) { c.minAngleDeg = deg }
}

// WithMaxArea requests triangles with area at most a. Zero disables the
// bound. Panics on negative values.
func WithMaxArea(a float64) Option {
	if !(a >= 0) {
		panic(fmt.Sprintf("triangulate: WithMaxArea(%g) < 0", a))
	}
	return func(c *config) { c.maxArea = a }
}

// WithMaxSteiner caps the number of refinement points. Panics on negative
// values.
func WithMaxSteiner(n int) Option {
	if n < 0 {
		panic(fmt.Sprintf("triangulate: WithMaxSteiner(%d) < 0", n))
	}
	return func(c *config) { c.maxSteiner = n }
}

func newConfig(opts ...Option) config {
	cfg := config{maxSteiner: defaultMaxSteiner}
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}
