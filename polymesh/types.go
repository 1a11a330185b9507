// SPDX-License-Identifier: MIT
// Package: pemesh/polymesh
//
// types.go — Mesh, flags, colours and the derived topology cache.

package polymesh

import (
	"image/color"

	"github.com/golang/geo/r2"

	"github.com/DanielaCabiddu/PEMesh/geom"
)

// Flag is a bit set attached to polygons and edges.
type Flag uint8

const (
	// FlagMarked (flag 0) marks edges of re-inserted template polygons.
	FlagMarked Flag = 1 << iota
	// FlagTemplate (flag 1) marks template polygons; the aggregator skips them.
	FlagTemplate
)

// AngleUnit selects radians or degrees for angle queries.
type AngleUnit int

const (
	Rad AngleUnit = iota
	Deg
)

// Default polygon colours.
var (
	ColorWhite = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	ColorRed   = color.RGBA{R: 255, A: 255}
)

// EdgeKey is an unordered vertex pair with A < B.
type EdgeKey struct{ A, B int }

// MakeEdgeKey orders the pair.
func MakeEdgeKey(a, b int) EdgeKey {
	if a > b {
		a, b = b, a
	}
	return EdgeKey{A: a, B: b}
}

// Mesh is a 2D polygonal mesh. The zero value is an empty mesh.
type Mesh struct {
	verts []geom.Point2
	polys [][]int

	polyColor []color.RGBA
	polyFlags []Flag
	edgeFlags map[EdgeKey]Flag

	topo *topology  // nil when stale
	tess [][][3]int // per polygon; nil entry when stale
	bbox r2.Rect
}

// topology is derived from polys in polygon order; edge ids follow first
// appearance.
type topology struct {
	edges     []EdgeKey
	edgeID    map[EdgeKey]int
	edgePolys [][]int
	vertEdges [][]int
	vertPolys [][]int
	polyEdges [][]int
}
