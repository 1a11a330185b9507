package geom_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DanielaCabiddu/PEMesh/geom"
)

func square() []geom.Point2 {
	return []geom.Point2{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(1, 1), geom.Pt(0, 1)}
}

func TestSignedAreaAndCentroid(t *testing.T) {
	sq := square()
	require.InDelta(t, 1.0, geom.SignedArea(sq), 1e-15)
	require.InDelta(t, -1.0, geom.SignedArea(geom.Reversed(sq)), 1e-15)

	c := geom.Centroid(sq)
	require.InDelta(t, 0.5, c.X, 1e-15)
	require.InDelta(t, 0.5, c.Y, 1e-15)
	require.InDelta(t, 4.0, geom.Perimeter(sq), 1e-15)
}

func TestInteriorAngle(t *testing.T) {
	tests := []struct {
		name            string
		prev, cur, next geom.Point2
		want            float64
	}{
		{"right", geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(1, 1), math.Pi / 2},
		{"straight", geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(2, 0), math.Pi},
		{"reflex", geom.Pt(0, 1), geom.Pt(0.8, 0.8), geom.Pt(1, 0), 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := geom.InteriorAngle(tc.prev, tc.cur, tc.next)
			if tc.name == "reflex" {
				require.Greater(t, got, math.Pi)
				return
			}
			require.InDelta(t, tc.want, got, 1e-12)
		})
	}
}

func TestPredicates(t *testing.T) {
	require.Greater(t, geom.Orient(geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(0, 1)), 0.0)
	require.Less(t, geom.Orient(geom.Pt(0, 0), geom.Pt(0, 1), geom.Pt(1, 0)), 0.0)

	a, b, c := geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(0, 1)
	require.Greater(t, geom.InCircle(a, b, c, geom.Pt(0.5, 0.5)), 0.0)
	require.Less(t, geom.InCircle(a, b, c, geom.Pt(2, 2)), 0.0)

	cc, ok := geom.Circumcenter(a, b, c)
	require.True(t, ok)
	require.InDelta(t, 0.5, cc.X, 1e-15)
	require.InDelta(t, 0.5, cc.Y, 1e-15)

	_, ok = geom.Circumcenter(a, b, geom.Pt(2, 0))
	require.False(t, ok)
}

func TestSegmentsIntersect(t *testing.T) {
	require.True(t, geom.SegmentsIntersect(geom.Pt(0, 0), geom.Pt(1, 1), geom.Pt(0, 1), geom.Pt(1, 0)))
	require.True(t, geom.SegmentsCrossProperly(geom.Pt(0, 0), geom.Pt(1, 1), geom.Pt(0, 1), geom.Pt(1, 0)))

	// T-junction touches but does not cross.
	require.True(t, geom.SegmentsIntersect(geom.Pt(0, 0), geom.Pt(2, 0), geom.Pt(1, 0), geom.Pt(1, 1)))
	require.False(t, geom.SegmentsCrossProperly(geom.Pt(0, 0), geom.Pt(2, 0), geom.Pt(1, 0), geom.Pt(1, 1)))

	// Collinear overlap.
	require.True(t, geom.SegmentsIntersect(geom.Pt(0, 0), geom.Pt(2, 0), geom.Pt(1, 0), geom.Pt(3, 0)))

	require.False(t, geom.SegmentsIntersect(geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(0, 1), geom.Pt(1, 1)))
}

func TestEarClip(t *testing.T) {
	// L-shape with a reflex corner.
	l := []geom.Point2{
		geom.Pt(0, 0), geom.Pt(2, 0), geom.Pt(2, 1),
		geom.Pt(1, 1), geom.Pt(1, 2), geom.Pt(0, 2),
	}
	for _, poly := range [][]geom.Point2{l, geom.Reversed(l)} {
		tris := geom.EarClip(poly)
		require.Len(t, tris, len(poly)-2)

		var sum float64
		for _, tr := range tris {
			sum += geom.SignedArea([]geom.Point2{poly[tr[0]], poly[tr[1]], poly[tr[2]]})
		}
		require.InDelta(t, geom.SignedArea(poly), sum, 1e-12)
	}
}

func TestEarClipCollinear(t *testing.T) {
	// Square with midpoints on every side.
	poly := []geom.Point2{
		geom.Pt(0, 0), geom.Pt(0.5, 0), geom.Pt(1, 0), geom.Pt(1, 0.5),
		geom.Pt(1, 1), geom.Pt(0.5, 1), geom.Pt(0, 1), geom.Pt(0, 0.5),
	}
	tris := geom.EarClip(poly)
	require.Len(t, tris, 6)

	var sum float64
	for _, tr := range tris {
		a := geom.SignedArea([]geom.Point2{poly[tr[0]], poly[tr[1]], poly[tr[2]]})
		require.GreaterOrEqual(t, a, -1e-15)
		sum += a
	}
	require.InDelta(t, 1.0, sum, 1e-12)
}

func TestIsConvex(t *testing.T) {
	require.True(t, geom.IsConvex(square(), geom.Eps))
	require.False(t, geom.IsConvex([]geom.Point2{
		geom.Pt(0.8, 0.8), geom.Pt(1, 0), geom.Pt(1, 1), geom.Pt(0, 1),
	}, geom.Eps))
}
