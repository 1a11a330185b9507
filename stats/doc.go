// SPDX-License-Identifier: MIT

// Package stats provides the small dense-matrix toolkit used to correlate
// mesh quality indicators with solver errors.
//
// Observations are rows, variables are columns:
//
//	X, _ := stats.FromRows(rows)          // r×c
//	corr, means, stds, _ := stats.Correlation(X)
//
// Pearson correlation is computed by z-scoring centred columns; a constant
// column has zero standard deviation and yields zero correlations.
// All loops run in a fixed order, so results are reproducible bit for bit.
package stats
