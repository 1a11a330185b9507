// SPDX-License-Identifier: MIT
// Package: pemesh/meshio
//
// geojson.go — GeoJSON export through github.com/paulmach/orb.
//
// Each polygon becomes a Feature with a closed Polygon ring and the
// properties "pid", "sides" and "template". Per-vertex fields are exported
// as Point features carrying "vid" and one property per field.

package meshio

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/DanielaCabiddu/PEMesh/polymesh"
)

const (
	methodWriteGeoJSON     = "WriteGeoJSON"
	methodVertexCollection = "VertexCollection"
)

// Ring converts polygon pid into a closed orb ring.
func Ring(m *polymesh.Mesh, pid int) orb.Ring {
	pts := m.PolyCoords(pid)
	ring := make(orb.Ring, 0, len(pts)+1)
	for _, p := range pts {
		ring = append(ring, orb.Point{p.X, p.Y})
	}
	if len(pts) > 0 {
		ring = append(ring, ring[0])
	}
	return ring
}

// FeatureCollection converts m into a GeoJSON feature collection.
func FeatureCollection(m *polymesh.Mesh) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for pid := 0; pid < m.NumPolys(); pid++ {
		f := geojson.NewFeature(orb.Polygon{Ring(m, pid)})
		f.Properties["pid"] = pid
		f.Properties["sides"] = m.PolySize(pid)
		f.Properties["template"] = m.PolyFlag(pid, polymesh.FlagTemplate)
		fc.Append(f)
	}
	return fc
}

// VertexCollection converts the vertices of m into Point features with the
// values of every field. Each field needs one value per vertex.
func VertexCollection(m *polymesh.Mesh, fields map[string][]float64) (*geojson.FeatureCollection, error) {
	names := make([]string, 0, len(fields))
	for name, vals := range fields {
		if len(vals) != m.NumVerts() {
			return nil, fmt.Errorf("%s: field %q has %d values for %d vertices: %w",
				methodVertexCollection, name, len(vals), m.NumVerts(), ErrIO)
		}
		names = append(names, name)
	}
	slices.Sort(names)

	fc := geojson.NewFeatureCollection()
	for vid := 0; vid < m.NumVerts(); vid++ {
		p := m.Vert(vid)
		f := geojson.NewFeature(orb.Point{p.X, p.Y})
		f.Properties["vid"] = vid
		for _, name := range names {
			f.Properties[name] = fields[name][vid]
		}
		fc.Append(f)
	}
	return fc, nil
}

// SaveVertexGeoJSON writes the vertex fields of m to path as GeoJSON.
func SaveVertexGeoJSON(path string, m *polymesh.Mesh, fields map[string][]float64) error {
	fc, err := VertexCollection(m, fields)
	if err != nil {
		return err
	}
	data, err := fc.MarshalJSON()
	if err != nil {
		return ioErrorf(methodVertexCollection, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return ioErrorf(methodVertexCollection, err)
	}
	return nil
}

// WriteGeoJSON writes m as a GeoJSON feature collection.
func WriteGeoJSON(w io.Writer, m *polymesh.Mesh) error {
	data, err := FeatureCollection(m).MarshalJSON()
	if err != nil {
		return ioErrorf(methodWriteGeoJSON, err)
	}
	if _, err := w.Write(data); err != nil {
		return ioErrorf(methodWriteGeoJSON, err)
	}
	return nil
}

// SaveGeoJSON writes m to path as GeoJSON.
func SaveGeoJSON(path string, m *polymesh.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return ioErrorf(methodWriteGeoJSON, err)
	}
	if err := WriteGeoJSON(f, m); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return ioErrorf(methodWriteGeoJSON, err)
	}
	return nil
}
