// SPDX-License-Identifier: MIT

// Package metrics computes the per-polygon geometric quality indicators of
// a mesh and aggregates them separately over triangles and over polygons
// with more than three sides.
//
// Sixteen indicators are defined (see Indicator). Angles are in radians.
// For every indicator a MeshMetrics holds two Aggregates (Tri and Poly) and
// two global figures over their union: the mean and the root mean square.
//
// Conventions:
//   - NaN values (e.g. KAR of a zero-area polygon) are skipped.
//   - Non-finite values take part in min/max but not in averages, sums or
//     global figures. SR is +Inf for polygons with an empty kernel.
//   - An empty subset has Count 0, ArgMin/ArgMax NoIndex, Min +Inf and
//     Max −Inf, so the combined Summary.Min/Max pick the populated one.
//   - Ties resolve to the lowest polygon id.
//
// All routines are deterministic: computing metrics twice on the same mesh
// yields bit-identical results. A MeshMetrics can be written to and read
// back from the text report format without loss.
package metrics
