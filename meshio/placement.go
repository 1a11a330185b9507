// SPDX-License-Identifier: MIT
// Package: pemesh/meshio
//
// placement.go — placement-set files used to save and restore a layout.
//
// Format: one whitespace-separated record per line,
//
//	<class_name> <filename|NONE> <cx> <cy> <rot_rad> <scale>
//
// Built-in classes use the literal NONE as file name.

package meshio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/DanielaCabiddu/PEMesh/geom"
)

const (
	methodReadPlacements  = "ReadPlacements"
	methodWritePlacements = "WritePlacements"

	// NoFile marks a built-in class in the filename column.
	NoFile = "NONE"
)

// PlacementRecord is one line of a placement-set file.
type PlacementRecord struct {
	Class    string
	Filename string // empty for built-in classes
	Centre   geom.Point2
	Rotation float64 // radians
	Scale    float64
}

// WritePlacements writes recs one per line.
func WritePlacements(w io.Writer, recs []PlacementRecord) error {
	bw := bufio.NewWriter(w)
	for _, r := range recs {
		file := r.Filename
		if file == "" {
			file = NoFile
		}
		fmt.Fprintf(bw, "%s %s %s %s %s %s\n", r.Class, file,
			ftoa(r.Centre.X), ftoa(r.Centre.Y), ftoa(r.Rotation), ftoa(r.Scale))
	}
	if err := bw.Flush(); err != nil {
		return ioErrorf(methodWritePlacements, err)
	}
	return nil
}

// ReadPlacements parses a placement-set file.
func ReadPlacements(r io.Reader) ([]PlacementRecord, error) {
	var recs []PlacementRecord
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		f := strings.Fields(sc.Text())
		if len(f) == 0 || strings.HasPrefix(f[0], "#") {
			continue
		}
		if len(f) != 6 {
			return nil, formatErrorf(methodReadPlacements, "line %d: want 6 fields, got %d", line, len(f))
		}
		var nums [4]float64
		for i := range nums {
			v, err := strconv.ParseFloat(f[2+i], 64)
			if err != nil {
				return nil, formatErrorf(methodReadPlacements, "line %d: bad number %q", line, f[2+i])
			}
			nums[i] = v
		}
		rec := PlacementRecord{
			Class:    f[0],
			Filename: f[1],
			Centre:   geom.Pt(nums[0], nums[1]),
			Rotation: nums[2],
			Scale:    nums[3],
		}
		if rec.Filename == NoFile {
			rec.Filename = ""
		}
		recs = append(recs, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, ioErrorf(methodReadPlacements, err)
	}
	return recs, nil
}

// SavePlacements writes recs to path.
func SavePlacements(path string, recs []PlacementRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return ioErrorf(methodWritePlacements, err)
	}
	if err := WritePlacements(f, recs); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return ioErrorf(methodWritePlacements, err)
	}
	return nil
}

// LoadPlacements reads a placement-set file.
func LoadPlacements(path string) ([]PlacementRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ioErrorf(methodReadPlacements, err)
	}
	defer f.Close()
	return ReadPlacements(f)
}
