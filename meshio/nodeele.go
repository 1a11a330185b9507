// SPDX-License-Identifier: MIT
// Package: pemesh/meshio
//
// nodeele.go — NODE/ELE pairs sharing a common stem.
//
// Format:
//   .node  first line "N 2 0 0", then "idx x y" (one-based)
//   .ele   first line "M K 0" with K the largest polygon size,
//          then "idx n v1 … vn" (one-based)

package meshio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/DanielaCabiddu/PEMesh/geom"
	"github.com/DanielaCabiddu/PEMesh/polymesh"
)

const (
	methodWriteNodeEle = "WriteNodeEle"
	methodReadNodeEle  = "ReadNodeEle"

	// NodeExt and EleExt are appended to the stem.
	NodeExt = ".node"
	EleExt  = ".ele"
)

// WriteNode writes the vertex half of a NODE/ELE pair.
func WriteNode(w io.Writer, m *polymesh.Mesh) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d 2 0 0\n", m.NumVerts())
	for vid := 0; vid < m.NumVerts(); vid++ {
		p := m.Vert(vid)
		fmt.Fprintf(bw, "%d %s %s\n", vid+1, ftoa(p.X), ftoa(p.Y))
	}
	if err := bw.Flush(); err != nil {
		return ioErrorf(methodWriteNodeEle, err)
	}
	return nil
}

// WriteEle writes the polygon half of a NODE/ELE pair.
func WriteEle(w io.Writer, m *polymesh.Mesh) error {
	k := 0
	for pid := 0; pid < m.NumPolys(); pid++ {
		k = max(k, m.PolySize(pid))
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d 0\n", m.NumPolys(), k)
	for pid := 0; pid < m.NumPolys(); pid++ {
		vs := m.PolyVerts(pid)
		fmt.Fprintf(bw, "%d %d", pid+1, len(vs))
		for _, v := range vs {
			fmt.Fprintf(bw, " %d", v+1)
		}
		bw.WriteString("\n")
	}
	if err := bw.Flush(); err != nil {
		return ioErrorf(methodWriteNodeEle, err)
	}
	return nil
}

// SaveNodeEle writes stem+".node" and stem+".ele".
func SaveNodeEle(stem string, m *polymesh.Mesh) error {
	if err := writeFile(stem+NodeExt, m, WriteNode); err != nil {
		return err
	}
	return writeFile(stem+EleExt, m, WriteEle)
}

func writeFile(path string, m *polymesh.Mesh, fn func(io.Writer, *polymesh.Mesh) error) error {
	f, err := os.Create(path)
	if err != nil {
		return ioErrorf(methodWriteNodeEle, err)
	}
	if err := fn(f, m); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return ioErrorf(methodWriteNodeEle, err)
	}
	return nil
}

// ReadNodeEle parses a NODE/ELE pair.
func ReadNodeEle(node, ele io.Reader) (*polymesh.Mesh, error) {
	nodeRows, err := readRows(node)
	if err != nil {
		return nil, err
	}
	eleRows, err := readRows(ele)
	if err != nil {
		return nil, err
	}
	if len(nodeRows) == 0 || len(eleRows) == 0 {
		return nil, formatErrorf(methodReadNodeEle, "missing header")
	}

	nv, err := strconv.Atoi(nodeRows[0][0])
	if err != nil || nv != len(nodeRows)-1 {
		return nil, formatErrorf(methodReadNodeEle, "node header %v does not match %d rows", nodeRows[0], len(nodeRows)-1)
	}
	verts := make([]geom.Point2, nv)
	for i, row := range nodeRows[1:] {
		if len(row) < 3 {
			return nil, formatErrorf(methodReadNodeEle, "node row %d: %v", i+1, row)
		}
		x, errX := strconv.ParseFloat(row[1], 64)
		y, errY := strconv.ParseFloat(row[2], 64)
		if errX != nil || errY != nil {
			return nil, formatErrorf(methodReadNodeEle, "node row %d: bad coordinate", i+1)
		}
		verts[i] = geom.Pt(x, y)
	}

	np, err := strconv.Atoi(eleRows[0][0])
	if err != nil || np != len(eleRows)-1 {
		return nil, formatErrorf(methodReadNodeEle, "ele header %v does not match %d rows", eleRows[0], len(eleRows)-1)
	}
	polys := make([][]int, np)
	for i, row := range eleRows[1:] {
		if len(row) < 2 {
			return nil, formatErrorf(methodReadNodeEle, "ele row %d: %v", i+1, row)
		}
		n, err := strconv.Atoi(row[1])
		if err != nil || len(row) < 2+n {
			return nil, formatErrorf(methodReadNodeEle, "ele row %d: bad size", i+1)
		}
		poly := make([]int, n)
		for j := 0; j < n; j++ {
			v, err := strconv.Atoi(row[2+j])
			if err != nil {
				return nil, formatErrorf(methodReadNodeEle, "ele row %d: bad index %q", i+1, row[2+j])
			}
			poly[j] = v - 1
		}
		polys[i] = poly
	}
	m, err := polymesh.New(verts, polys)
	if err != nil {
		return nil, ioErrorf(methodReadNodeEle, err)
	}
	return m, nil
}

// LoadNodeEle reads stem+".node" and stem+".ele".
func LoadNodeEle(stem string) (*polymesh.Mesh, error) {
	node, err := os.Open(stem + NodeExt)
	if err != nil {
		return nil, ioErrorf(methodReadNodeEle, err)
	}
	defer node.Close()
	ele, err := os.Open(stem + EleExt)
	if err != nil {
		return nil, ioErrorf(methodReadNodeEle, err)
	}
	defer ele.Close()
	return ReadNodeEle(node, ele)
}

// readRows splits non-empty, non-comment lines into fields.
func readRows(r io.Reader) ([][]string, error) {
	var rows [][]string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		f := strings.Fields(line)
		if len(f) > 0 {
			rows = append(rows, f)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, ioErrorf(methodReadNodeEle, err)
	}
	return rows, nil
}
