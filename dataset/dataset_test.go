package dataset_test

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DanielaCabiddu/PEMesh/dataset"
	"github.com/DanielaCabiddu/PEMesh/elements"
	"github.com/DanielaCabiddu/PEMesh/geom"
	"github.com/DanielaCabiddu/PEMesh/meshio"
	"github.com/DanielaCabiddu/PEMesh/metrics"
	"github.com/DanielaCabiddu/PEMesh/polymesh"
)

// squareWithPentagon is the unit square split into a triangle and a
// pentagon.
func squareWithPentagon(t *testing.T) *polymesh.Mesh {
	t.Helper()
	verts := []geom.Point2{
		geom.Pt(0, 0), geom.Pt(0.5, 0), geom.Pt(1, 0),
		geom.Pt(1, 1), geom.Pt(0, 1), geom.Pt(0, 0.5),
	}
	m, err := polymesh.New(verts, [][]int{{0, 1, 5}, {1, 2, 3, 4, 5}})
	require.NoError(t, err)
	return m
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestContainer(t *testing.T) {
	d := dataset.New()
	require.True(t, d.IsOnDisk())
	require.ErrorIs(t, d.AttachMetrics(&metrics.MeshMetrics{}), dataset.ErrNoMesh)

	m := squareWithPentagon(t)
	require.Equal(t, 0, d.Add(m, 0.25, elements.NoClass))
	require.Equal(t, 1, d.Add(squareWithPentagon(t), 0.5, 3))
	require.Equal(t, 2, d.Len())
	require.Same(t, m, d.Mesh(0))
	require.Equal(t, 0.5, d.Param(1))
	require.Equal(t, uint32(3), d.ClassID(1))
	require.False(t, d.IsOnDisk())

	mm := metrics.Compute(m)
	require.NoError(t, d.AttachMetrics(mm))
	got, ok := d.Metrics(0)
	require.True(t, ok)
	require.Same(t, mm, got)
	_, ok = d.Metrics(1)
	require.False(t, ok)
	require.Equal(t, 1, d.NumMetrics())

	_, err := d.AllMetrics()
	require.ErrorIs(t, err, dataset.ErrNoMetrics)
	require.ErrorContains(t, err, "mesh 1")
	require.NoError(t, d.AttachMetrics(metrics.Compute(d.Mesh(1))))
	all, err := d.AllMetrics()
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Same(t, mm, all[0])

	d.SetFilename(0, "a.obj")
	d.SetFilename(1, filepath.Join("out", "b.obj"))
	require.True(t, d.IsOnDisk())

	// A replaced mesh is no longer the one on disk but keeps its stem.
	d.Replace(1, squareWithPentagon(t))
	require.False(t, d.IsOnDisk())
	require.Empty(t, d.Filename(1))
	require.Equal(t, "b", d.Stem(1))
	require.Equal(t, "a.obj", d.Filename(0))

	d.Clear()
	require.Zero(t, d.Len())
	require.Zero(t, d.NumMetrics())
	all, err = d.AllMetrics()
	require.NoError(t, err)
	require.Empty(t, all)
	require.Panics(t, func() { d.Mesh(0) })
}

func TestStem(t *testing.T) {
	d := dataset.New()
	for i := range 12 {
		d.Add(squareWithPentagon(t), float64(i)/11, elements.NoClass)
	}
	require.Equal(t, "00_0.000000", d.Stem(0))
	require.Equal(t, "11_1.000000", d.Stem(11))

	d.SetFilename(3, filepath.Join("x", "y", "003_star_mesh.obj"))
	require.Equal(t, "003_star_mesh", d.Stem(3))
	d.SetFilename(4, "plain")
	require.Equal(t, "plain", d.Stem(4))
}

func TestSaveAndReload(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	d := dataset.New()
	d.Add(squareWithPentagon(t), 0, elements.NoClass)
	d.Add(squareWithPentagon(t), 0.5, elements.NoClass)
	require.NoError(t, d.AttachMetrics(metrics.Compute(d.Mesh(0))))

	var seen []int
	err := d.SaveOnDisk(context.Background(), dir,
		dataset.WithGeoJSON(),
		dataset.WithProgress(func(i, n int, _ string) {
			require.Equal(t, 2, n)
			seen = append(seen, i)
		}))
	require.NoError(t, err)
	require.Equal(t, []int{0, 1}, seen)
	require.True(t, d.IsOnDisk())

	for i, stem := range []string{"0_0.000000", "1_0.500000"} {
		base := filepath.Join(dir, stem)
		require.Equal(t, base+".obj", d.Filename(i))
		for _, ext := range []string{".node", ".ele", ".obj", ".geojson"} {
			require.True(t, exists(base+ext), base+ext)
		}
	}
	require.True(t, exists(filepath.Join(dir, "0_0.000000_metrics.txt")))
	require.False(t, exists(filepath.Join(dir, "1_0.500000_metrics.txt")))

	mm, err := metrics.LoadReport(filepath.Join(dir, "0_0.000000_metrics.txt"))
	require.NoError(t, err)
	want, _ := d.Metrics(0)
	require.Equal(t, want.Of(metrics.NS), mm.Of(metrics.NS))

	// A second save reuses the persisted names.
	require.NoError(t, d.SaveOnDisk(context.Background(), dir))
	require.Equal(t, filepath.Join(dir, "1_0.500000.obj"), d.Filename(1))

	back := dataset.New()
	require.NoError(t, back.LoadDir(context.Background(), dir))
	require.Equal(t, 2, back.Len())
	for i := range 2 {
		require.Equal(t, math.MaxFloat64, back.Param(i))
		require.Equal(t, elements.NoClass, back.ClassID(i))
		require.Equal(t, d.Filename(i), back.Filename(i))
		m := back.Mesh(i)
		require.Equal(t, 6, m.NumVerts())
		require.False(t, m.PolyFlag(0, polymesh.FlagTemplate))
		require.True(t, m.PolyFlag(1, polymesh.FlagTemplate))
	}
}

func TestLoadDirWritesNodeEle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "007_star_a.obj")
	require.NoError(t, meshio.SaveOBJ(path, squareWithPentagon(t)))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	d := dataset.New()
	require.NoError(t, d.LoadDir(context.Background(), dir))
	require.Equal(t, 1, d.Len())
	require.Equal(t, uint32(elements.Star), d.ClassID(0))
	require.True(t, exists(filepath.Join(dir, "007_star_a.node")))
	require.True(t, exists(filepath.Join(dir, "007_star_a.ele")))

	m := d.Mesh(0)
	require.True(t, m.PolyFlag(1, polymesh.FlagTemplate))
	for _, eid := range m.AdjPolyEdges(1) {
		require.True(t, m.EdgeFlag(eid, polymesh.FlagMarked))
	}
	marked := 0
	for eid := 0; eid < m.NumEdges(); eid++ {
		if m.EdgeFlag(eid, polymesh.FlagMarked) {
			marked++
		}
	}
	require.Equal(t, 5, marked)

	back, err := meshio.LoadNodeEle(filepath.Join(dir, "007_star_a"))
	require.NoError(t, err)
	require.Equal(t, m.NumPolys(), back.NumPolys())
}

func TestLoadDirErrors(t *testing.T) {
	d := dataset.New()
	require.ErrorIs(t, d.LoadDir(context.Background(), t.TempDir()), dataset.ErrNoMeshes)
	require.ErrorIs(t, d.LoadDir(context.Background(), filepath.Join(t.TempDir(), "missing")), dataset.ErrIO)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.obj"), []byte("f 1 2 3\n"), 0o644))
	require.ErrorIs(t, d.LoadDir(context.Background(), dir), dataset.ErrIO)
	require.Zero(t, d.Len())
}

func TestSaveCancelled(t *testing.T) {
	d := dataset.New()
	d.Add(squareWithPentagon(t), 0, elements.NoClass)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := d.SaveOnDisk(ctx, t.TempDir())
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, d.IsOnDisk())
}
