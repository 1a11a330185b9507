// SPDX-License-Identifier: MIT

// Package solver is the boundary towards the external PDE solver that
// consumes the NODE/ELE files of a dataset.
//
// The solver runs out of process. Coordination is file based: when it has
// finished writing a result set it creates "<out>_DONE", which
// WaitForCompletion observes and removes. The result set holds, per mesh,
// the computed and exact per-vertex solutions and one line of five error
// figures in an aggregate file.
//
// Correlate relates the error figures to the metric summaries of the same
// meshes through Pearson correlation (package stats).
package solver
