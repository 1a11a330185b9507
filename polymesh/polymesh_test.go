package polymesh_test

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/DanielaCabiddu/PEMesh/geom"
	"github.com/DanielaCabiddu/PEMesh/polymesh"
)

// grid2x2 returns four unit quads covering [0,2]².
func grid2x2(t require.TestingT) *polymesh.Mesh {
	var verts []geom.Point2
	for y := 0; y <= 2; y++ {
		for x := 0; x <= 2; x++ {
			verts = append(verts, geom.Pt(float64(x), float64(y)))
		}
	}
	id := func(x, y int) int { return y*3 + x }
	var polys [][]int
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			polys = append(polys, []int{id(x, y), id(x+1, y), id(x+1, y+1), id(x, y+1)})
		}
	}
	m, err := polymesh.New(verts, polys)
	require.NoError(t, err)
	return m
}

type MeshSuite struct {
	suite.Suite
}

func TestMeshSuite(t *testing.T) {
	suite.Run(t, new(MeshSuite))
}

func (s *MeshSuite) TestNewValidates() {
	verts := []geom.Point2{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(0, 1)}

	_, err := polymesh.New(verts, [][]int{{0, 1}})
	require.ErrorIs(s.T(), err, polymesh.ErrDegenerate)

	_, err = polymesh.New(verts, [][]int{{0, 1, 1}})
	require.ErrorIs(s.T(), err, polymesh.ErrDegenerate)

	_, err = polymesh.New(verts, [][]int{{0, 1, 7}})
	require.ErrorIs(s.T(), err, polymesh.ErrIndexOutOfRange)
}

func (s *MeshSuite) TestCountsAndAdjacency() {
	m := grid2x2(s.T())
	require.Equal(s.T(), 9, m.NumVerts())
	require.Equal(s.T(), 4, m.NumPolys())
	require.Equal(s.T(), 12, m.NumEdges())
	require.Len(s.T(), m.BoundaryEdges(), 8)

	// Centre vertex touches all four quads and four edges.
	require.Len(s.T(), m.AdjVertPolys(4), 4)
	require.Len(s.T(), m.AdjVertEdges(4), 4)
	require.ElementsMatch(s.T(), []int{1, 3, 5, 7}, m.AdjVertVerts(4))

	// Quad 0 neighbours quads 1 and 2.
	require.ElementsMatch(s.T(), []int{1, 2}, m.AdjPolyPolys(0))

	eid, ok := m.EdgeID(1, 4)
	require.True(s.T(), ok)
	require.ElementsMatch(s.T(), []int{0, 1}, m.AdjEdgePolys(eid))
	require.False(s.T(), m.EdgeIsBoundary(eid))
	require.InDelta(s.T(), 1.0, m.EdgeLength(eid), 1e-15)
}

func (s *MeshSuite) TestGeometry() {
	m := grid2x2(s.T())
	require.InDelta(s.T(), 4.0, m.Area(), 1e-12)
	require.Equal(s.T(), 1.0, m.PolyNormalZ(0))

	a, err := m.PolyAngleAtVert(0, 0, polymesh.Deg)
	require.NoError(s.T(), err)
	require.InDelta(s.T(), 90.0, a, 1e-12)

	_, err = m.PolyAngleAtVert(0, 8, polymesh.Rad)
	require.ErrorIs(s.T(), err, polymesh.ErrVertNotInPoly)

	bb := m.BBox()
	require.Equal(s.T(), geom.Pt(0, 0), bb.Lo())
	require.Equal(s.T(), geom.Pt(2, 2), bb.Hi())
}

func (s *MeshSuite) TestNonConvexTessellation() {
	// L-shaped hexagon with one reflex corner at (1,1).
	verts := []geom.Point2{
		geom.Pt(0, 0), geom.Pt(2, 0), geom.Pt(2, 1),
		geom.Pt(1, 1), geom.Pt(1, 2), geom.Pt(0, 2),
	}
	m, err := polymesh.New(verts, [][]int{{0, 1, 2, 3, 4, 5}})
	require.NoError(s.T(), err)

	require.Len(s.T(), m.PolyTessellation(0), 4)
	require.InDelta(s.T(), 3.0, m.PolyArea(0), 1e-12)

	a, err := m.PolyAngleAtVert(0, 3, polymesh.Rad)
	require.NoError(s.T(), err)
	require.InDelta(s.T(), 1.5*math.Pi, a, 1e-12)
}

func (s *MeshSuite) TestTransforms() {
	m := grid2x2(s.T())
	m.Translate(geom.Pt(-1, -1))
	require.Equal(s.T(), geom.Pt(-1, -1), m.BBox().Lo())

	m.Scale(0.5)
	require.InDelta(s.T(), 1.0, m.Area(), 1e-12)

	m.Rotate(math.Pi / 2)
	require.InDelta(s.T(), 1.0, m.Area(), 1e-12)
	require.InDelta(s.T(), 0.5, m.BBox().Hi().X, 1e-12)

	m.ScaleXY(-1, 1)
	require.Equal(s.T(), -1.0, m.PolyNormalZ(0))
	require.NoError(s.T(), m.PolyFlipWinding(0))
	require.Equal(s.T(), 1.0, m.PolyNormalZ(0))
}

func (s *MeshSuite) TestPolyAddRemove() {
	m := grid2x2(s.T())
	m.SetPolyColor(3, polymesh.ColorRed)

	require.NoError(s.T(), m.PolyRemove(1))
	require.Equal(s.T(), 3, m.NumPolys())
	// Former poly 3 is now poly 2 and keeps its colour.
	require.Equal(s.T(), polymesh.ColorRed, m.PolyColor(2))

	pid, err := m.PolyAdd([]int{1, 2, 5, 4})
	require.NoError(s.T(), err)
	require.Equal(s.T(), 3, pid)
	require.Equal(s.T(), 12, m.NumEdges())

	require.ErrorIs(s.T(), m.PolyRemove(10), polymesh.ErrIndexOutOfRange)
}

func (s *MeshSuite) TestFlags() {
	m := grid2x2(s.T())
	m.SetPolyFlag(2, polymesh.FlagTemplate, true)
	require.True(s.T(), m.PolyFlag(2, polymesh.FlagTemplate))
	require.False(s.T(), m.PolyFlag(2, polymesh.FlagMarked))

	eid, _ := m.EdgeID(3, 4)
	m.SetEdgeFlag(eid, polymesh.FlagMarked, true)
	require.True(s.T(), m.EdgeFlag(eid, polymesh.FlagMarked))

	// Edge flags survive polygon renumbering.
	require.NoError(s.T(), m.PolyRemove(0))
	eid, ok := m.EdgeID(3, 4)
	require.True(s.T(), ok)
	require.True(s.T(), m.EdgeFlag(eid, polymesh.FlagMarked))

	c := m.Clone()
	c.SetEdgeFlag(eid, polymesh.FlagMarked, false)
	require.True(s.T(), m.EdgeFlag(eid, polymesh.FlagMarked))
}

func (s *MeshSuite) TestVertMerge() {
	// Two triangles sharing nothing but coincident corners at (1,0) and (1,1).
	verts := []geom.Point2{
		geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(1, 1),
		geom.Pt(1, 0), geom.Pt(2, 0), geom.Pt(1, 1),
	}
	m, err := polymesh.New(verts, [][]int{{0, 1, 2}, {3, 4, 5}})
	require.NoError(s.T(), err)
	require.Equal(s.T(), 6, m.NumEdges())

	require.NoError(s.T(), m.VertMerge(2, 5))
	require.NoError(s.T(), m.VertMerge(1, 3))
	require.Equal(s.T(), 4, m.NumVerts())
	require.Equal(s.T(), 5, m.NumEdges())
	require.Len(s.T(), m.BoundaryEdges(), 4)

	// Merging two corners of the same triangle collapses it.
	err = m.VertMerge(0, 1)
	require.ErrorIs(s.T(), err, polymesh.ErrDegenerate)
	require.Equal(s.T(), 4, m.NumVerts())
}

func (s *MeshSuite) TestOrderedBoundary() {
	m := grid2x2(s.T())
	b, err := m.OrderedBoundaryVerts()
	require.NoError(s.T(), err)
	require.Equal(s.T(), []int{0, 1, 2, 5, 8, 7, 6, 3}, b)
	require.Equal(s.T(), 1, m.BoundaryComponents())

	// The sequence is lazy: stopping early is allowed.
	seq, err := m.OrderedBoundary()
	require.NoError(s.T(), err)
	var first []int
	for v := range seq {
		first = append(first, v)
		if len(first) == 3 {
			break
		}
	}
	require.Equal(s.T(), []int{0, 1, 2}, first)
}

func (s *MeshSuite) TestOrderedBoundaryNonManifold() {
	// Bow-tie: two triangles touching at vertex 2.
	verts := []geom.Point2{
		geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(0.5, 0.5),
		geom.Pt(1, 1), geom.Pt(0, 1),
	}
	m, err := polymesh.New(verts, [][]int{{0, 1, 2}, {2, 3, 4}})
	require.NoError(s.T(), err)

	_, err = m.OrderedBoundary()
	require.True(s.T(), errors.Is(err, polymesh.ErrNonManifold))
}

func (s *MeshSuite) TestAppendAndCleanup() {
	m := grid2x2(s.T())
	other := grid2x2(s.T())
	other.Translate(geom.Pt(2, 0))

	off := m.Append(other)
	require.Equal(s.T(), 9, off)
	require.Equal(s.T(), 18, m.NumVerts())
	require.Equal(s.T(), 8, m.NumPolys())
	// Shared column still duplicated: two boundary loops.
	require.Equal(s.T(), 2, m.BoundaryComponents())

	v := m.AddVert(geom.Pt(10, 10))
	require.Equal(s.T(), 18, v)
	require.Equal(s.T(), 1, m.RemoveUnreferencedVerts())
	require.Equal(s.T(), 18, m.NumVerts())
	require.True(s.T(), slices.Equal([]int{0, 1, 4, 3}, m.PolyVerts(0)))
}
