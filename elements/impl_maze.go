// SPDX-License-Identifier: MIT
// Package: pemesh/elements
//
// impl_maze.go — the 22-vertex Maze.
//
// The base outline is a spiral corridor inside the unit square. Vertices
// 14…21 travel linearly toward the "open" configuration as t grows, which
// stretches the inner corridor until it runs along the outer walls at a
// distance of 0.005.

package elements

import "github.com/DanielaCabiddu/PEMesh/geom"

var mazeBase = [...]geom.Point2{
	{X: 0, Y: 1}, {X: 0, Y: 0.75}, {X: 0, Y: 0.5}, {X: 0, Y: 0.25}, {X: 0, Y: 0},
	{X: 0.25, Y: 0}, {X: 0.5, Y: 0}, {X: 0.75, Y: 0}, {X: 1, Y: 0},
	{X: 1, Y: 0.25}, {X: 1, Y: 0.5}, {X: 1, Y: 0.75},
	{X: 0.75, Y: 0.75}, {X: 0.5, Y: 0.75},
	{X: 0.5, Y: 0.5}, {X: 0.75, Y: 0.5}, {X: 0.75, Y: 0.25}, {X: 0.5, Y: 0.25},
	{X: 0.25, Y: 0.25}, {X: 0.25, Y: 0.5}, {X: 0.25, Y: 0.75}, {X: 0.25, Y: 1},
}

const mazeFirstMoving = 14

// mazeOpen holds the t = 1 positions of vertices 14…21.
var mazeOpen = [...]geom.Point2{
	{X: 0.5, Y: 0.745}, {X: 0.995, Y: 0.745}, {X: 0.995, Y: 0.005}, {X: 0.5, Y: 0.005},
	{X: 0.005, Y: 0.005}, {X: 0.005, Y: 0.5}, {X: 0.005, Y: 0.75}, {X: 0.005, Y: 1},
}

func maze(t float64) []geom.Point2 {
	pts := make([]geom.Point2, len(mazeBase))
	copy(pts, mazeBase[:])
	for i, target := range mazeOpen {
		pts[mazeFirstMoving+i] = geom.Lerp(mazeBase[mazeFirstMoving+i], target, t)
	}
	return pts
}
