package canvas_test

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DanielaCabiddu/PEMesh/canvas"
	"github.com/DanielaCabiddu/PEMesh/elements"
	"github.com/DanielaCabiddu/PEMesh/geom"
	"github.com/DanielaCabiddu/PEMesh/meshio"
	"github.com/DanielaCabiddu/PEMesh/polymesh"
)

func place(c elements.Class, cx, cy, scale float64) canvas.PlacedElement {
	return canvas.PlacedElement{Element: elements.MustNew(c), Centre: geom.Pt(cx, cy), Scale: scale}
}

func templates(m *polymesh.Mesh) []int {
	var out []int
	for pid := 0; pid < m.NumPolys(); pid++ {
		if m.PolySize(pid) > 3 {
			out = append(out, pid)
		}
	}
	return out
}

func onSameSide(p, q geom.Point2) bool {
	near := func(a, b float64) bool { return math.Abs(a-b) <= 1e-12 }
	return (near(p.X, 0) && near(q.X, 0)) || (near(p.X, 1) && near(q.X, 1)) ||
		(near(p.Y, 0) && near(q.Y, 0)) || (near(p.Y, 1) && near(q.Y, 1))
}

// requireCanvasMesh checks the properties every canvas mesh satisfies.
func requireCanvasMesh(t *testing.T, m *polymesh.Mesh) {
	t.Helper()
	require.InDelta(t, 1.0, m.Area(), 1e-9)
	for pid := 0; pid < m.NumPolys(); pid++ {
		require.Equal(t, 1.0, m.PolyNormalZ(pid), "poly %d", pid)
	}
	for eid := 0; eid < m.NumEdges(); eid++ {
		a, b := m.EdgeVerts(eid)
		if m.EdgeIsBoundary(eid) {
			require.True(t, onSameSide(m.Vert(a), m.Vert(b)), "boundary edge %d-%d off the frame", a, b)
			continue
		}
		require.Len(t, m.AdjEdgePolys(eid), 2)
	}
}

func TestSingleIsotropySquare(t *testing.T) {
	m, err := canvas.Build(context.Background(),
		[]canvas.PlacedElement{place(elements.Isotropy, 0.5, 0.5, 0.4)}, 0, canvas.DefaultParams())
	require.NoError(t, err)
	requireCanvasMesh(t, m)

	tpl := templates(m)
	require.Len(t, tpl, 1)
	pid := tpl[0]
	require.Equal(t, 4, m.PolySize(pid))
	require.Greater(t, m.NumPolys(), 1)
	require.True(t, m.PolyFlag(pid, polymesh.FlagTemplate))
	require.Equal(t, polymesh.ColorRed, m.PolyColor(pid))
	require.InDelta(t, 0.16, m.PolyArea(pid), 1e-12)
	for _, eid := range m.AdjPolyEdges(pid) {
		require.True(t, m.EdgeFlag(eid, polymesh.FlagMarked))
	}

	want := []geom.Point2{geom.Pt(0.3, 0.3), geom.Pt(0.7, 0.3), geom.Pt(0.7, 0.7), geom.Pt(0.3, 0.7)}
	for i, p := range m.PolyCoords(pid) {
		require.InDelta(t, want[i].X, p.X, 1e-12)
		require.InDelta(t, want[i].Y, p.Y, 1e-12)
	}
}

func TestCollapsingIsotropy(t *testing.T) {
	m, err := canvas.Build(context.Background(),
		[]canvas.PlacedElement{place(elements.Isotropy, 0.5, 0.5, 0.4)}, 0.999, canvas.DefaultParams())
	require.NoError(t, err)
	requireCanvasMesh(t, m)

	tpl := templates(m)
	require.Len(t, tpl, 1)
	require.Equal(t, 4, m.PolySize(tpl[0]))
	require.InDelta(t, 0.4*0.4*0.001, m.PolyArea(tpl[0]), 1e-12)
}

func TestIntersectingPlacement(t *testing.T) {
	m, err := canvas.Build(context.Background(), []canvas.PlacedElement{
		place(elements.Convexity, 0.4, 0.5, 0.4),
		place(elements.Convexity, 0.5, 0.5, 0.4),
	}, 0, canvas.DefaultParams())
	require.ErrorIs(t, err, canvas.ErrIntersectingElements)
	require.Nil(t, m)
}

func TestNestedPlacement(t *testing.T) {
	_, err := canvas.Build(context.Background(), []canvas.PlacedElement{
		place(elements.Isotropy, 0.5, 0.5, 0.6),
		place(elements.NSided, 0.5, 0.5, 0.05),
	}, 0, canvas.DefaultParams())
	require.ErrorIs(t, err, canvas.ErrIntersectingElements)
}

func TestOutsideCanvas(t *testing.T) {
	_, err := canvas.Build(context.Background(),
		[]canvas.PlacedElement{place(elements.Isotropy, 0.1, 0.5, 0.4)}, 0, canvas.DefaultParams())
	require.ErrorIs(t, err, canvas.ErrElementOutsideCanvas)
}

func TestTwoElements(t *testing.T) {
	m, err := canvas.Build(context.Background(), []canvas.PlacedElement{
		place(elements.Star, 0.25, 0.25, 0.15),
		place(elements.NSided, 0.75, 0.7, 0.15),
	}, 0.5, canvas.DefaultParams())
	require.NoError(t, err)
	requireCanvasMesh(t, m)

	tpl := templates(m)
	require.Len(t, tpl, 2)
	require.Equal(t, 44, m.PolySize(tpl[0]))
	require.Equal(t, 22, m.PolySize(tpl[1]))
}

func TestElementOnFrame(t *testing.T) {
	m, err := canvas.Build(context.Background(),
		[]canvas.PlacedElement{place(elements.Isotropy, 0.2, 0.5, 0.4)}, 0, canvas.DefaultParams())
	require.NoError(t, err)
	requireCanvasMesh(t, m)
	tpl := templates(m)
	require.Len(t, tpl, 1)
	require.Equal(t, 4, m.PolySize(tpl[0]))
}

func TestEmptyCanvas(t *testing.T) {
	m, err := canvas.BuildOutlines(context.Background(), nil, canvas.Params{MinAngle: 25, Policy: canvas.UserArea, Area: 0.05})
	require.NoError(t, err)
	requireCanvasMesh(t, m)
	for pid := 0; pid < m.NumPolys(); pid++ {
		require.Equal(t, 3, m.PolySize(pid))
		require.LessOrEqual(t, m.PolyArea(pid), 0.05+1e-12)
	}
}

func TestCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := canvas.Build(ctx, []canvas.PlacedElement{place(elements.Isotropy, 0.5, 0.5, 0.4)}, 0, canvas.DefaultParams())
	require.ErrorIs(t, err, context.Canceled)
	require.NotErrorIs(t, err, canvas.ErrIntersectingElements)
}

func TestAreaBound(t *testing.T) {
	sq := []geom.Point2{geom.Pt(0.3, 0.3), geom.Pt(0.7, 0.3), geom.Pt(0.7, 0.7), geom.Pt(0.3, 0.7)}
	outlines := [][]geom.Point2{sq}

	require.InDelta(t, 0.25*0.32, canvas.AreaBound(outlines, canvas.Params{Policy: canvas.AvgDiag}), 1e-12)
	require.InDelta(t, math.Sqrt(3)/4*0.16, canvas.AreaBound(outlines, canvas.Params{Policy: canvas.MinEdge}), 1e-12)
	require.Equal(t, 0.01, canvas.AreaBound(outlines, canvas.Params{Policy: canvas.UserArea, Area: 0.01}))
	require.InDelta(t, 0.5, canvas.AreaBound(nil, canvas.Params{Policy: canvas.AvgDiag}), 1e-12)
}

func TestParams(t *testing.T) {
	require.NoError(t, canvas.DefaultParams().Validate())
	for _, p := range []canvas.Params{
		{MinAngle: 35},
		{MinAngle: -1},
		{MinAngle: 20, Policy: canvas.UserArea},
		{MinAngle: 20, Policy: canvas.AreaPolicy(9)},
		{MinAngle: 20, MaxSteiner: -1},
	} {
		require.ErrorIs(t, p.Validate(), canvas.ErrParams)
	}

	pol, err := canvas.ParseAreaPolicy("AVG_DIAG")
	require.NoError(t, err)
	require.Equal(t, canvas.AvgDiag, pol)
	require.Equal(t, "min_edge", canvas.MinEdge.String())
	_, err = canvas.ParseAreaPolicy("biggest")
	require.ErrorIs(t, err, canvas.ErrParams)

	_, err = place(elements.Star, 0.5, 0.5, 0).Outline(0)
	require.ErrorIs(t, err, canvas.ErrParams)
}

func TestRecords(t *testing.T) {
	pe := canvas.PlacedElement{Element: elements.MustNew(elements.Zeta), Centre: geom.Pt(0.3, 0.6), Scale: 0.2, Rotation: 0.5}
	rec := pe.Record()
	require.Equal(t, "Zeta", rec.Class)
	require.Empty(t, rec.Filename)

	back, err := canvas.FromRecord(rec)
	require.NoError(t, err)
	require.Equal(t, pe.Class(), back.Class())
	require.Equal(t, pe.Centre, back.Centre)
	require.Equal(t, pe.Scale, back.Scale)
	require.Equal(t, pe.Rotation, back.Rotation)

	verts := []geom.Point2{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(0.5, 1)}
	tri, err := polymesh.New(verts, [][]int{{0, 1, 2}})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "random_tri.obj")
	require.NoError(t, meshio.SaveOBJ(path, tri))

	rnd, err := canvas.FromRecord(meshio.PlacementRecord{Class: "Random", Filename: path, Centre: geom.Pt(0.5, 0.5), Scale: 0.3})
	require.NoError(t, err)
	require.Equal(t, path, rnd.Record().Filename)

	_, err = canvas.FromRecord(meshio.PlacementRecord{Class: "Blob"})
	require.ErrorIs(t, err, elements.ErrUnknownClass)
}

func TestPlacedOutline(t *testing.T) {
	pe := place(elements.Comb, 0.5, 0.5, 0.2)
	pe.Rotation = math.Pi / 2
	o, err := pe.Outline(0)
	require.NoError(t, err)
	b := geom.Bounds(o)
	require.InDelta(t, 0.5, b.Center().X, 1e-12)
	require.InDelta(t, 0.5, b.Center().Y, 1e-12)
	// The 2×1 comb turned a quarter turn is 0.2 wide and 0.4 tall.
	require.InDelta(t, 0.2, b.Size().X, 1e-12)
	require.InDelta(t, 0.4, b.Size().Y, 1e-12)
	require.Positive(t, geom.SignedArea(o))
}
