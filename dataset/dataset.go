// SPDX-License-Identifier: MIT
// Package: pemesh/dataset
//
// dataset.go — the container and its parallel sequences.
//
// Contract:
//   - meshes, params, classes, files and names always have the same length.
//   - files[i] is the persisted OBJ path, cleared when mesh i changes;
//     names[i] keeps the last non-empty path so the mesh is saved again
//     under the same stem.
//   - metrics is a prefix: len(metrics) ≤ len(meshes), entry i belongs to
//     mesh i.

package dataset

import (
	"fmt"
	"slices"

	"github.com/DanielaCabiddu/PEMesh/metrics"
	"github.com/DanielaCabiddu/PEMesh/polymesh"
)

// Dataset owns a sequence of meshes and their metadata.
type Dataset struct {
	meshes  []*polymesh.Mesh
	params  []float64
	classes []uint32
	files   []string
	names   []string
	metrics []*metrics.MeshMetrics
}

// New returns an empty dataset.
func New() *Dataset { return &Dataset{} }

// Add appends m, taking ownership, and returns its index.
func (d *Dataset) Add(m *polymesh.Mesh, t float64, classID uint32) int {
	d.meshes = append(d.meshes, m)
	d.params = append(d.params, t)
	d.classes = append(d.classes, classID)
	d.files = append(d.files, "")
	d.names = append(d.names, "")
	return len(d.meshes) - 1
}

// AttachMetrics appends mm to the metrics sequence. It belongs to the
// first mesh that has none yet.
func (d *Dataset) AttachMetrics(mm *metrics.MeshMetrics) error {
	if len(d.metrics) >= len(d.meshes) {
		return fmt.Errorf("AttachMetrics: %d metrics for %d meshes: %w", len(d.metrics), len(d.meshes), ErrNoMesh)
	}
	d.metrics = append(d.metrics, mm)
	return nil
}

// ResetMetrics drops every attached metric set. Callers mutating meshes in
// place use it before recomputing.
func (d *Dataset) ResetMetrics() { d.metrics = nil }

// Len returns the number of meshes.
func (d *Dataset) Len() int { return len(d.meshes) }

// NumMetrics returns the number of meshes with attached metrics.
func (d *Dataset) NumMetrics() int { return len(d.metrics) }

func (d *Dataset) check(i int) {
	if i < 0 || i >= len(d.meshes) {
		panic(fmt.Sprintf("dataset: index %d: %v", i, ErrIndexOutOfRange))
	}
}

// Mesh returns mesh i. It panics when i is out of range, like a slice.
func (d *Dataset) Mesh(i int) *polymesh.Mesh { d.check(i); return d.meshes[i] }

// Param returns the deformation parameter of mesh i.
func (d *Dataset) Param(i int) float64 { d.check(i); return d.params[i] }

// Replace swaps mesh i for m, taking ownership of m. The file of i no
// longer matches, so i is no longer on disk; its stem is kept. Its metrics,
// if any, are stale until recomputed.
func (d *Dataset) Replace(i int, m *polymesh.Mesh) {
	d.check(i)
	d.meshes[i] = m
	d.files[i] = ""
}

// ClassID returns the class tag of mesh i.
func (d *Dataset) ClassID(i int) uint32 { d.check(i); return d.classes[i] }

// Filename returns the persisted OBJ path of mesh i, or "".
func (d *Dataset) Filename(i int) string { d.check(i); return d.files[i] }

// SetFilename records the file mesh i was loaded from or saved to.
func (d *Dataset) SetFilename(i int, path string) {
	d.check(i)
	d.files[i] = path
	if path != "" {
		d.names[i] = path
	}
}

// Metrics returns the metrics of mesh i, if attached.
func (d *Dataset) Metrics(i int) (*metrics.MeshMetrics, bool) {
	d.check(i)
	if i >= len(d.metrics) {
		return nil, false
	}
	return d.metrics[i], true
}

// AllMetrics returns the metrics of every mesh in order, or ErrNoMetrics
// naming the first mesh without any.
func (d *Dataset) AllMetrics() ([]*metrics.MeshMetrics, error) {
	if len(d.metrics) < len(d.meshes) {
		i := len(d.metrics)
		return nil, fmt.Errorf("AllMetrics: mesh %d (%q): %w", i, d.names[i], ErrNoMetrics)
	}
	return slices.Clone(d.metrics), nil
}

// IsOnDisk reports whether every mesh has a file name. An empty dataset is
// trivially on disk.
func (d *Dataset) IsOnDisk() bool {
	for _, f := range d.files {
		if f == "" {
			return false
		}
	}
	return true
}

// Clear releases every mesh and resets all sequences.
func (d *Dataset) Clear() {
	clear(d.meshes)
	clear(d.metrics)
	d.meshes = d.meshes[:0]
	d.params = d.params[:0]
	d.classes = d.classes[:0]
	d.files = d.files[:0]
	d.names = d.names[:0]
	d.metrics = d.metrics[:0]
}
