// SPDX-License-Identifier: MIT
// Package: pemesh/stats
//
// dense.go — row-major float64 matrix.

package stats

import (
	"fmt"
	"math"
)

// Dense is a row-major r×c matrix stored in one flat slice.
type Dense struct {
	r, c int
	data []float64
}

// NewDense returns a zero r×c matrix.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("NewDense(%d,%d): %w", rows, cols, ErrBadShape)
	}
	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// FromRows copies equally long rows into a new matrix.
func FromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("FromRows: %w", ErrBadShape)
	}
	d, err := NewDense(len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != d.c {
			return nil, fmt.Errorf("FromRows: row %d has %d values, want %d: %w", i, len(row), d.c, ErrBadShape)
		}
		copy(d.data[i*d.c:], row)
	}
	return d, nil
}

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.c }

func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, fmt.Errorf("Dense(%d,%d): %w", row, col, ErrOutOfRange)
	}
	return row*m.c + col, nil
}

// At returns element (row, col).
func (m *Dense) At(row, col int) (float64, error) {
	i, err := m.indexOf(row, col)
	if err != nil {
		return 0, err
	}
	return m.data[i], nil
}

// Set stores v at (row, col).
func (m *Dense) Set(row, col int, v float64) error {
	i, err := m.indexOf(row, col)
	if err != nil {
		return err
	}
	m.data[i] = v
	return nil
}

// Column returns a copy of column col.
func (m *Dense) Column(col int) ([]float64, error) {
	if col < 0 || col >= m.c {
		return nil, fmt.Errorf("Column(%d): %w", col, ErrOutOfRange)
	}
	out := make([]float64, m.r)
	for i := range out {
		out[i] = m.data[i*m.c+col]
	}
	return out, nil
}

// ValidateFinite returns ErrNaNInf when any element is NaN or ±Inf.
func (m *Dense) ValidateFinite() error {
	for k, v := range m.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("element (%d,%d): %w", k/m.c, k%m.c, ErrNaNInf)
		}
	}
	return nil
}
