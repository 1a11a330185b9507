// SPDX-License-Identifier: MIT
// Package: pemesh/meshio
//
// obj.go — OBJ polygon meshes.
//
// Contract:
//   - Writer: one "v x y 0" line per vertex, one "f …" line per polygon,
//     one-based indices.
//   - Reader: accepts "f a/b/c" corner syntax and negative (relative)
//     indices; ignores every other record type. z is discarded.

package meshio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/DanielaCabiddu/PEMesh/geom"
	"github.com/DanielaCabiddu/PEMesh/polymesh"
)

const (
	methodReadOBJ  = "ReadOBJ"
	methodWriteOBJ = "WriteOBJ"
)

// ErrIO indicates a file that cannot be read or written or whose content
// does not have the expected structure.
var ErrIO = errors.New("meshio: i/o or format error")

func ioErrorf(method string, err error) error {
	return fmt.Errorf("%s: %w: %w", method, ErrIO, err)
}

func formatErrorf(method string, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", method, fmt.Sprintf(format, args...), ErrIO)
}

func ftoa(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// WriteOBJ writes m in OBJ format.
func WriteOBJ(w io.Writer, m *polymesh.Mesh) error {
	bw := bufio.NewWriter(w)
	for vid := 0; vid < m.NumVerts(); vid++ {
		p := m.Vert(vid)
		fmt.Fprintf(bw, "v %s %s 0\n", ftoa(p.X), ftoa(p.Y))
	}
	for pid := 0; pid < m.NumPolys(); pid++ {
		bw.WriteString("f")
		for _, v := range m.PolyVerts(pid) {
			bw.WriteString(" ")
			bw.WriteString(strconv.Itoa(v + 1))
		}
		bw.WriteString("\n")
	}
	if err := bw.Flush(); err != nil {
		return ioErrorf(methodWriteOBJ, err)
	}
	return nil
}

// ReadOBJ parses an OBJ polygon mesh.
func ReadOBJ(r io.Reader) (*polymesh.Mesh, error) {
	var (
		verts []geom.Point2
		polys [][]int
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) < 3 {
				return nil, formatErrorf(methodReadOBJ, "line %d: vertex needs two coordinates", line)
			}
			x, errX := strconv.ParseFloat(fields[1], 64)
			y, errY := strconv.ParseFloat(fields[2], 64)
			if errX != nil || errY != nil {
				return nil, formatErrorf(methodReadOBJ, "line %d: bad coordinate", line)
			}
			verts = append(verts, geom.Pt(x, y))
		case "f":
			poly := make([]int, 0, len(fields)-1)
			for _, f := range fields[1:] {
				if i := strings.IndexByte(f, '/'); i >= 0 {
					f = f[:i]
				}
				idx, err := strconv.Atoi(f)
				if err != nil || idx == 0 {
					return nil, formatErrorf(methodReadOBJ, "line %d: bad index %q", line, f)
				}
				if idx < 0 {
					idx = len(verts) + idx + 1
				}
				poly = append(poly, idx-1)
			}
			polys = append(polys, poly)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, ioErrorf(methodReadOBJ, err)
	}
	m, err := polymesh.New(verts, polys)
	if err != nil {
		return nil, ioErrorf(methodReadOBJ, err)
	}
	return m, nil
}

// SaveOBJ writes m to path.
func SaveOBJ(path string, m *polymesh.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return ioErrorf(methodWriteOBJ, err)
	}
	if err := WriteOBJ(f, m); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return ioErrorf(methodWriteOBJ, err)
	}
	return nil
}

// LoadOBJ reads an OBJ mesh from path.
func LoadOBJ(path string) (*polymesh.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ioErrorf(methodReadOBJ, err)
	}
	defer f.Close()
	m, err := ReadOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
