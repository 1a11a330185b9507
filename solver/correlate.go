// SPDX-License-Identifier: MIT
// Package: pemesh/solver
//
// correlate.go — Pearson correlation between metric summaries and solver
// errors.
//
// Features per indicator X: X_global_avg, X_min, X_max, where min and max
// combine the triangle and polygon subsets. A feature with a non-finite
// value on any mesh (empty subsets, unbounded SR) is skipped and listed in
// Correlations.Skipped.

package solver

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/DanielaCabiddu/PEMesh/metrics"
	"github.com/DanielaCabiddu/PEMesh/stats"
)

const methodCorrelate = "Correlate"

// Correlations holds R[f][c], the correlation of feature f with error
// column c.
type Correlations struct {
	Features []string
	R        [][NumErrorColumns]float64
	Skipped  []string
}

type feature struct {
	name string
	ind  metrics.Indicator
	of   func(metrics.Summary) float64
}

func features() []feature {
	var out []feature
	for _, ind := range metrics.Indicators() {
		key := ind.String()
		out = append(out,
			feature{key + "_global_avg", ind, func(s metrics.Summary) float64 { return s.GlobalAvg }},
			feature{key + "_min", ind, func(s metrics.Summary) float64 { v, _ := s.Min(); return v }},
			feature{key + "_max", ind, func(s metrics.Summary) float64 { v, _ := s.Max(); return v }},
		)
	}
	return out
}

// Correlate pairs mms[i] with errs[i] and correlates every finite feature
// with every error column.
func Correlate(mms []*metrics.MeshMetrics, errs []Errors) (*Correlations, error) {
	if len(mms) != len(errs) {
		return nil, fmt.Errorf("%s: %d metric sets, %d error lines: %w", methodCorrelate, len(mms), len(errs), ErrMismatch)
	}
	if len(mms) < 2 {
		return nil, fmt.Errorf("%s: %w", methodCorrelate, ErrTooFewMeshes)
	}

	res := &Correlations{}
	var cols [][]float64
	for _, f := range features() {
		col := make([]float64, len(mms))
		finite := true
		for i, mm := range mms {
			col[i] = f.of(mm.Of(f.ind))
			if math.IsNaN(col[i]) || math.IsInf(col[i], 0) {
				finite = false
				break
			}
		}
		if !finite {
			res.Skipped = append(res.Skipped, f.name)
			continue
		}
		res.Features = append(res.Features, f.name)
		cols = append(cols, col)
	}

	nf := len(cols)
	rows := make([][]float64, len(mms))
	for i := range rows {
		row := make([]float64, nf+NumErrorColumns)
		for j, col := range cols {
			row[j] = col[i]
		}
		copy(row[nf:], errs[i][:])
		rows[i] = row
	}
	X, err := stats.FromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodCorrelate, err)
	}
	corr, _, _, err := stats.Correlation(X)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodCorrelate, err)
	}

	res.R = make([][NumErrorColumns]float64, nf)
	for f := range nf {
		for c := range NumErrorColumns {
			res.R[f][c], _ = corr.At(f, nf+c)
		}
	}
	return res, nil
}

// Write prints one tab separated line per feature, headed by the error
// column names.
func (c *Correlations) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("feature")
	for col := range NumErrorColumns {
		bw.WriteString("\t" + ErrorColumn(col).String())
	}
	bw.WriteString("\n")
	for f, name := range c.Features {
		bw.WriteString(name)
		for col := range NumErrorColumns {
			fmt.Fprintf(bw, "\t%.6f", c.R[f][col])
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}
