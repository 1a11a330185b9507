// SPDX-License-Identifier: MIT
// Package: pemesh/metrics
//
// report.go — plain-text metrics report.
//
// Format: one "key value [id]" line per figure, for every indicator X:
//
//	X_min v id       X_poly_min v id
//	X_max v id       X_poly_max v id
//	X_avg v          X_poly_avg v
//	X_sum v          X_poly_sum v
//	X_count n        X_poly_count n
//	X_global_avg v
//	X_global_norm v
//
// Values use the shortest round-tripping decimal form; absent ids are -1.
// ReadReport ignores unknown keys, so older reports with extra indicators
// still load.

package metrics

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	methodWriteReport = "WriteReport"
	methodReadReport  = "ReadReport"
)

// WriteReport writes mm to w.
func WriteReport(w io.Writer, mm *MeshMetrics) error {
	bw := bufio.NewWriter(w)
	for i, s := range mm.Summaries {
		key := Indicator(i).String()
		for _, part := range []struct {
			prefix string
			a      Aggregate
		}{{key, s.Tri}, {key + "_poly", s.Poly}} {
			fmt.Fprintf(bw, "%s_min %s %d\n", part.prefix, ftoa(part.a.Min), part.a.ArgMin)
			fmt.Fprintf(bw, "%s_max %s %d\n", part.prefix, ftoa(part.a.Max), part.a.ArgMax)
			fmt.Fprintf(bw, "%s_avg %s\n", part.prefix, ftoa(part.a.Avg))
			fmt.Fprintf(bw, "%s_sum %s\n", part.prefix, ftoa(part.a.Sum))
			fmt.Fprintf(bw, "%s_count %d\n", part.prefix, part.a.Count)
		}
		fmt.Fprintf(bw, "%s_global_avg %s\n", key, ftoa(s.GlobalAvg))
		fmt.Fprintf(bw, "%s_global_norm %s\n", key, ftoa(s.GlobalNorm))
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%s: %w", methodWriteReport, err)
	}
	return nil
}

// ReadReport parses a report written by WriteReport. Figures missing from
// the input keep their empty-subset values.
func ReadReport(r io.Reader) (*MeshMetrics, error) {
	mm := &MeshMetrics{}
	for i := range mm.Summaries {
		mm.Summaries[i] = Summary{Tri: emptyAggregate(), Poly: emptyAggregate()}
	}

	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		f := strings.Fields(sc.Text())
		if len(f) == 0 {
			continue
		}
		if len(f) < 2 {
			return nil, fmt.Errorf("%s: line %d: %w", methodReadReport, line, ErrReport)
		}
		ind, field, poly, ok := splitKey(f[0])
		if !ok {
			continue
		}
		if err := setField(&mm.Summaries[ind], field, poly, f[1:]); err != nil {
			return nil, fmt.Errorf("%s: line %d (%s): %w", methodReadReport, line, f[0], err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", methodReadReport, err)
	}
	return mm, nil
}

// SaveReport writes mm to path.
func SaveReport(path string, mm *MeshMetrics) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%s: %w", methodWriteReport, err)
	}
	if err := WriteReport(f, mm); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadReport reads the report at path.
func LoadReport(path string) (*MeshMetrics, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodReadReport, err)
	}
	defer f.Close()
	return ReadReport(f)
}

// splitKey decomposes "X[_poly]_field" or "X_global_field".
func splitKey(key string) (ind Indicator, field string, poly bool, ok bool) {
	for i, c := range catalogue {
		rest, found := strings.CutPrefix(key, c.key+"_")
		if !found {
			continue
		}
		if r, p := strings.CutPrefix(rest, "poly_"); p {
			return Indicator(i), r, true, true
		}
		return Indicator(i), rest, false, true
	}
	return 0, "", false, false
}

func setField(s *Summary, field string, poly bool, vals []string) error {
	a := &s.Tri
	if poly {
		a = &s.Poly
	}
	v, err := strconv.ParseFloat(vals[0], 64)
	if err != nil && field != "count" {
		return fmt.Errorf("%w: %w", ErrReport, err)
	}
	id := func() (int, error) {
		if len(vals) < 2 {
			return NoIndex, fmt.Errorf("missing id: %w", ErrReport)
		}
		n, err := strconv.Atoi(vals[1])
		if err != nil {
			return NoIndex, fmt.Errorf("%w: %w", ErrReport, err)
		}
		return max(n, NoIndex), nil
	}

	switch field {
	case "min":
		a.Min = v
		a.ArgMin, err = id()
	case "max":
		a.Max = v
		a.ArgMax, err = id()
	case "avg":
		a.Avg = v
	case "sum":
		a.Sum = v
	case "count":
		a.Count, err = strconv.Atoi(vals[0])
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrReport, err)
		}
	case "global_avg":
		s.GlobalAvg = v
	case "global_norm":
		s.GlobalNorm = v
	}
	return err
}

func ftoa(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
