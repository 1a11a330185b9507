// SPDX-License-Identifier: MIT
// Package: pemesh/stats
//
// statistics.go — centring and Pearson correlation.
//
//   - CenterColumns(X) -> (Xc, means)
//   - Correlation(X)   -> (Corr, means, stds)   sample statistics, r ≥ 2
//   - Pearson(x, y)    -> ρ                     two paired samples
//
// Determinism: fixed i→j traversal; no randomness.

package stats

import (
	"fmt"
	"math"
)

const (
	opCenterColumns = "CenterColumns"
	opCorrelation   = "Correlation"
	opPearson       = "Pearson"
)

// CenterColumns subtracts the per-column mean from a copy of X.
//
// Complexity: O(r·c).
func CenterColumns(X *Dense) (*Dense, []float64, error) {
	if X == nil {
		return nil, nil, fmt.Errorf("%s: %w", opCenterColumns, ErrBadShape)
	}
	r, c := X.r, X.c
	means := make([]float64, c)
	for i := 0; i < r; i++ {
		base := i * c
		for j := 0; j < c; j++ {
			means[j] += X.data[base+j]
		}
	}
	inv := 1 / float64(r)
	for j := range means {
		means[j] *= inv
	}

	Xc := &Dense{r: r, c: c, data: make([]float64, len(X.data))}
	for i := 0; i < r; i++ {
		base := i * c
		for j := 0; j < c; j++ {
			Xc.data[base+j] = X.data[base+j] - means[j]
		}
	}
	return Xc, means, nil
}

// Correlation returns the c×c Pearson correlation matrix of the columns of
// X, with column means and sample standard deviations. Columns with zero
// deviation give zero rows and columns, including on the diagonal.
//
// Complexity: O(r·c²).
func Correlation(X *Dense) (*Dense, []float64, []float64, error) {
	if X == nil {
		return nil, nil, nil, fmt.Errorf("%s: %w", opCorrelation, ErrBadShape)
	}
	if X.r < 2 {
		return nil, nil, nil, fmt.Errorf("%s: %d observations: %w", opCorrelation, X.r, ErrDimensionMismatch)
	}
	if err := X.ValidateFinite(); err != nil {
		return nil, nil, nil, fmt.Errorf("%s: %w", opCorrelation, err)
	}

	// Stage 1: centre.
	Xc, means, err := CenterColumns(X)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%s: %w", opCorrelation, err)
	}
	r, c := X.r, X.c

	// Stage 2: sample deviations and z-scores.
	stds := make([]float64, c)
	for i := 0; i < r; i++ {
		base := i * c
		for j := 0; j < c; j++ {
			v := Xc.data[base+j]
			stds[j] += v * v
		}
	}
	inv := 1 / float64(r-1)
	for j := range stds {
		stds[j] = math.Sqrt(stds[j] * inv)
	}
	for i := 0; i < r; i++ {
		base := i * c
		for j := 0; j < c; j++ {
			if stds[j] > 0 {
				Xc.data[base+j] /= stds[j]
			} else {
				Xc.data[base+j] = 0
			}
		}
	}

	// Stage 3: Corr = ZᵀZ/(r-1), filled symmetrically.
	corr := &Dense{r: c, c: c, data: make([]float64, c*c)}
	for a := 0; a < c; a++ {
		for b := a; b < c; b++ {
			var s float64
			for i := 0; i < r; i++ {
				s += Xc.data[i*c+a] * Xc.data[i*c+b]
			}
			s *= inv
			corr.data[a*c+b] = s
			corr.data[b*c+a] = s
		}
	}
	return corr, means, stds, nil
}

// Pearson returns the correlation coefficient of two paired samples, or 0
// when either sample is constant.
func Pearson(x, y []float64) (float64, error) {
	if len(x) != len(y) || len(x) < 2 {
		return 0, fmt.Errorf("%s: lengths %d and %d: %w", opPearson, len(x), len(y), ErrDimensionMismatch)
	}
	X, err := NewDense(len(x), 2)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opPearson, err)
	}
	for i := range x {
		X.data[2*i], X.data[2*i+1] = x[i], y[i]
	}
	corr, _, _, err := Correlation(X)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", opPearson, err)
	}
	return corr.data[1], nil
}
