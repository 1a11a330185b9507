// SPDX-License-Identifier: MIT
// Package: pemesh/solver
//
// results.go — solver output files.
//
// Formats:
//   - errors file: one line per mesh, five whitespace separated doubles
//     "errS errInf errL2 hEmax condVect"; blank lines are skipped.
//   - solution file: one double per vertex, in mesh vertex order, any
//     whitespace between values.

package solver

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

const (
	methodReadErrors   = "ReadErrors"
	methodReadSolution = "ReadSolution"

	// VEMSuffix and TruthSuffix complete a mesh stem into its solution files.
	VEMSuffix   = "-VEM-sol.txt"
	TruthSuffix = "-GROUND-TRUTH-sol.txt"
)

// ErrorColumn indexes the five figures reported per mesh.
type ErrorColumn uint8

const (
	ErrS ErrorColumn = iota
	ErrInf
	ErrL2
	HEMax
	CondVect
	NumErrorColumns = int(CondVect) + 1
)

var columnNames = [NumErrorColumns]string{"errS", "errInf", "errL2", "hEmax", "condVect"}

// String returns the column name used in the errors file.
func (c ErrorColumn) String() string {
	if int(c) >= NumErrorColumns {
		return "unknown"
	}
	return columnNames[c]
}

// Errors holds one line of the errors file.
type Errors [NumErrorColumns]float64

// Get returns column c.
func (e Errors) Get(c ErrorColumn) float64 { return e[c] }

// SolutionPaths returns the computed and exact solution files of stem.
func SolutionPaths(stem string) (vem, truth string) {
	return stem + VEMSuffix, stem + TruthSuffix
}

// ReadErrors parses an errors file.
func ReadErrors(r io.Reader) ([]Errors, error) {
	var out []Errors
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != NumErrorColumns {
			return nil, fmt.Errorf("%s: line %d: %d values, want %d: %w",
				methodReadErrors, line, len(fields), NumErrorColumns, ErrIO)
		}
		var e Errors
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: line %d: %w: %w", methodReadErrors, line, ErrIO, err)
			}
			e[i] = v
		}
		out = append(out, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", methodReadErrors, ErrIO, err)
	}
	return out, nil
}

// LoadErrors reads the errors file at path.
func LoadErrors(path string) ([]Errors, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", methodReadErrors, ErrIO, err)
	}
	defer f.Close()
	return ReadErrors(f)
}

// ReadSolution reads exactly n per-vertex values.
func ReadSolution(r io.Reader, n int) ([]float64, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	out := make([]float64, 0, n)
	for sc.Scan() {
		if len(out) == n {
			return nil, fmt.Errorf("%s: more than %d values: %w", methodReadSolution, n, ErrIO)
		}
		v, err := strconv.ParseFloat(sc.Text(), 64)
		if err != nil {
			return nil, fmt.Errorf("%s: value %d: %w: %w", methodReadSolution, len(out), ErrIO, err)
		}
		out = append(out, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", methodReadSolution, ErrIO, err)
	}
	if len(out) != n {
		return nil, fmt.Errorf("%s: %d values, want %d: %w", methodReadSolution, len(out), n, ErrIO)
	}
	return out, nil
}

// LoadSolution reads the solution file at path for a mesh of n vertices.
func LoadSolution(path string, n int) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", methodReadSolution, ErrIO, err)
	}
	defer f.Close()
	return ReadSolution(f, n)
}

// Normalize01 maps vals linearly onto [0,1] in place. Constant or empty
// fields are left untouched and false is returned.
func Normalize01(vals []float64) bool {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		lo, hi = min(lo, v), max(hi, v)
	}
	if !(hi > lo) {
		return false
	}
	span := hi - lo
	for i, v := range vals {
		vals[i] = (v - lo) / span
	}
	return true
}
