package meshio_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/require"

	"github.com/DanielaCabiddu/PEMesh/geom"
	"github.com/DanielaCabiddu/PEMesh/meshio"
	"github.com/DanielaCabiddu/PEMesh/polymesh"
)

// sample is a unit square split into a triangle pair plus a pentagon.
func sample(t *testing.T) *polymesh.Mesh {
	verts := []geom.Point2{
		geom.Pt(0, 0), geom.Pt(0.5, 0), geom.Pt(1, 0),
		geom.Pt(1, 1), geom.Pt(0.1/3, 1), geom.Pt(0, 0.5),
	}
	m, err := polymesh.New(verts, [][]int{{0, 1, 5}, {1, 2, 3, 4, 5}})
	require.NoError(t, err)
	m.SetPolyFlag(1, polymesh.FlagTemplate, true)
	return m
}

func requireSameMesh(t *testing.T, want, got *polymesh.Mesh) {
	t.Helper()
	require.Equal(t, want.NumVerts(), got.NumVerts())
	require.Equal(t, want.NumPolys(), got.NumPolys())
	for v := 0; v < want.NumVerts(); v++ {
		require.Equal(t, want.Vert(v), got.Vert(v))
	}
	for p := 0; p < want.NumPolys(); p++ {
		require.Equal(t, want.PolyVerts(p), got.PolyVerts(p))
	}
}

func TestOBJRoundTrip(t *testing.T) {
	m := sample(t)
	var buf bytes.Buffer
	require.NoError(t, meshio.WriteOBJ(&buf, m))
	require.True(t, strings.HasPrefix(buf.String(), "v 0 0 0\n"))
	require.Contains(t, buf.String(), "f 2 3 4 5 6\n")

	got, err := meshio.ReadOBJ(&buf)
	require.NoError(t, err)
	requireSameMesh(t, m, got)
}

func TestOBJFileRoundTrip(t *testing.T) {
	m := sample(t)
	path := filepath.Join(t.TempDir(), "mesh.obj")
	require.NoError(t, meshio.SaveOBJ(path, m))
	got, err := meshio.LoadOBJ(path)
	require.NoError(t, err)
	requireSameMesh(t, m, got)
}

func TestReadOBJVariants(t *testing.T) {
	src := "# comment\nv 0 0 0\nv 1 0 0\nv 0 1 0\nvn 0 0 1\nf 1/1/1 2/2/1 -1\n"
	m, err := meshio.ReadOBJ(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2}, m.PolyVerts(0))
}

func TestReadOBJMalformed(t *testing.T) {
	for name, src := range map[string]string{
		"bad coordinate": "v a 0 0\n",
		"bad index":      "v 0 0 0\nf 1 x 2\n",
		"out of range":   "v 0 0 0\nv 1 0 0\nf 1 2 9\n",
		"short face":     "v 0 0 0\nv 1 0 0\nf 1 2\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := meshio.ReadOBJ(strings.NewReader(src))
			require.ErrorIs(t, err, meshio.ErrIO)
		})
	}

	_, err := meshio.LoadOBJ(filepath.Join(t.TempDir(), "missing.obj"))
	require.ErrorIs(t, err, meshio.ErrIO)
}

func TestNodeEleRoundTrip(t *testing.T) {
	m := sample(t)
	var node, ele bytes.Buffer
	require.NoError(t, meshio.WriteNode(&node, m))
	require.NoError(t, meshio.WriteEle(&ele, m))

	require.True(t, strings.HasPrefix(node.String(), "6 2 0 0\n1 0 0\n"))
	require.True(t, strings.HasPrefix(ele.String(), "2 5 0\n1 3 1 2 6\n"))

	got, err := meshio.ReadNodeEle(&node, &ele)
	require.NoError(t, err)
	requireSameMesh(t, m, got)

	stem := filepath.Join(t.TempDir(), "0_0.000000")
	require.NoError(t, meshio.SaveNodeEle(stem, m))
	got, err = meshio.LoadNodeEle(stem)
	require.NoError(t, err)
	requireSameMesh(t, m, got)
}

func TestNodeEleMalformed(t *testing.T) {
	_, err := meshio.ReadNodeEle(strings.NewReader("3 2 0 0\n1 0 0\n"), strings.NewReader("0 3 0\n"))
	require.ErrorIs(t, err, meshio.ErrIO)
}

func TestPlacementsRoundTrip(t *testing.T) {
	recs := []meshio.PlacementRecord{
		{Class: "Isotropy", Centre: geom.Pt(0.5, 0.5), Rotation: 0, Scale: 0.4},
		{Class: "Random", Filename: "outlines/blob.obj", Centre: geom.Pt(0.25, 0.75), Rotation: 0.3, Scale: 0.1},
	}
	var buf bytes.Buffer
	require.NoError(t, meshio.WritePlacements(&buf, recs))
	require.True(t, strings.HasPrefix(buf.String(), "Isotropy NONE 0.5 0.5 0 0.4\n"))

	got, err := meshio.ReadPlacements(&buf)
	require.NoError(t, err)
	require.Equal(t, recs, got)

	_, err = meshio.ReadPlacements(strings.NewReader("Isotropy NONE 0.5\n"))
	require.ErrorIs(t, err, meshio.ErrIO)
}

func TestGeoJSON(t *testing.T) {
	m := sample(t)
	var buf bytes.Buffer
	require.NoError(t, meshio.WriteGeoJSON(&buf, m))

	fc, err := geojson.UnmarshalFeatureCollection(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, fc.Features, 2)

	poly, ok := fc.Features[1].Geometry.(orb.Polygon)
	require.True(t, ok)
	require.Len(t, poly[0], 6) // five corners plus closing point
	require.Equal(t, true, fc.Features[1].Properties["template"])
	require.EqualValues(t, 5, fc.Features[1].Properties["sides"])
}

func TestVertexGeoJSON(t *testing.T) {
	m := sample(t)
	path := filepath.Join(t.TempDir(), "field.geojson")
	field := []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5}
	require.NoError(t, meshio.SaveVertexGeoJSON(path, m, map[string][]float64{"u": field}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	fc, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	require.Len(t, fc.Features, m.NumVerts())
	p, ok := fc.Features[3].Geometry.(orb.Point)
	require.True(t, ok)
	require.Equal(t, orb.Point{1, 1}, p)
	require.EqualValues(t, 3, fc.Features[3].Properties["vid"])
	require.InDelta(t, 0.3, fc.Features[3].Properties["u"], 0)

	_, err = meshio.VertexCollection(m, map[string][]float64{"short": field[:2]})
	require.ErrorIs(t, err, meshio.ErrIO)
}
