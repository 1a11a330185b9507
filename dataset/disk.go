// SPDX-License-Identifier: MIT
// Package: pemesh/dataset
//
// disk.go — saving and ingestion.
//
// Stems:
//   - a mesh with a file name keeps its base name, ".obj" removed;
//   - otherwise "<index>_<t>", the index zero-padded to len/10+1 digits
//     and t printed with six decimals.
//
// Files per stem: <stem>.node, <stem>.ele, <stem>.obj, and
// <stem>_metrics.txt when metrics are attached.

package dataset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/DanielaCabiddu/PEMesh/elements"
	"github.com/DanielaCabiddu/PEMesh/meshio"
	"github.com/DanielaCabiddu/PEMesh/metrics"
	"github.com/DanielaCabiddu/PEMesh/polymesh"
)

const (
	methodSaveOnDisk = "SaveOnDisk"
	methodLoadDir    = "LoadDir"

	objExt        = ".obj"
	geoJSONExt    = ".geojson"
	metricsSuffix = "_metrics.txt"
)

// Stem returns the file stem mesh i is saved under.
func (d *Dataset) Stem(i int) string {
	d.check(i)
	if f := d.names[i]; f != "" {
		base := filepath.Base(f)
		if strings.EqualFold(filepath.Ext(base), objExt) {
			base = base[:len(base)-len(objExt)]
		}
		return base
	}
	return fmt.Sprintf("%0*d_%f", len(d.meshes)/10+1, i, d.params[i])
}

// SaveOnDisk writes every mesh into dir, which is created if needed, and
// updates each file name to the written OBJ path. Cancellation is checked
// before each mesh; meshes already written keep their new file names.
func (d *Dataset) SaveOnDisk(ctx context.Context, dir string, opts ...Option) error {
	cfg := newConfig(opts)
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%s: %w: %w", methodSaveOnDisk, ErrIO, err)
		}
	}

	for i, m := range d.meshes {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s: %w", methodSaveOnDisk, err)
		}
		stem := filepath.Join(dir, d.Stem(i))
		if err := meshio.SaveNodeEle(stem, m); err != nil {
			return fmt.Errorf("%s: mesh %d: %w", methodSaveOnDisk, i, err)
		}
		obj := stem + objExt
		if err := meshio.SaveOBJ(obj, m); err != nil {
			return fmt.Errorf("%s: mesh %d: %w", methodSaveOnDisk, i, err)
		}
		if i < len(d.metrics) {
			if err := metrics.SaveReport(stem+metricsSuffix, d.metrics[i]); err != nil {
				return fmt.Errorf("%s: mesh %d: %w: %w", methodSaveOnDisk, i, ErrIO, err)
			}
		}
		if cfg.geojson {
			if err := meshio.SaveGeoJSON(stem+geoJSONExt, m); err != nil {
				return fmt.Errorf("%s: mesh %d: %w", methodSaveOnDisk, i, err)
			}
		}
		d.SetFilename(i, obj)
		cfg.progress(i, len(d.meshes), obj)
	}
	return nil
}

// LoadDir appends every OBJ file of dir, in name order. Polygons with more
// than three sides become templates with marked edges, t is
// math.MaxFloat64 and the class id comes from the file name. A missing
// NODE/ELE pair is written next to the OBJ file.
func (d *Dataset) LoadDir(ctx context.Context, dir string, opts ...Option) error {
	cfg := newConfig(opts)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", methodLoadDir, ErrIO, err)
	}
	var paths []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), objExt) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	if len(paths) == 0 {
		return fmt.Errorf("%s: %s: %w", methodLoadDir, dir, ErrNoMeshes)
	}

	for k, path := range paths {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s: %w", methodLoadDir, err)
		}
		m, err := meshio.LoadOBJ(path)
		if err != nil {
			return fmt.Errorf("%s: %w", methodLoadDir, err)
		}
		MarkTemplates(m)

		stem := strings.TrimSuffix(path, filepath.Ext(path))
		if !exists(stem+meshio.NodeExt) || !exists(stem+meshio.EleExt) {
			if err := meshio.SaveNodeEle(stem, m); err != nil {
				return fmt.Errorf("%s: %w", methodLoadDir, err)
			}
		}

		i := d.Add(m, math.MaxFloat64, elements.ClassIDFromFilename(path))
		d.SetFilename(i, path)
		cfg.progress(k, len(paths), path)
	}
	return nil
}

// MarkTemplates flags every polygon with more than three sides as a
// template and marks its edges.
func MarkTemplates(m *polymesh.Mesh) {
	for pid := 0; pid < m.NumPolys(); pid++ {
		if m.PolySize(pid) <= 3 {
			continue
		}
		m.SetPolyFlag(pid, polymesh.FlagTemplate, true)
		for _, eid := range m.AdjPolyEdges(pid) {
			m.SetEdgeFlag(eid, polymesh.FlagMarked, true)
		}
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}
