package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DanielaCabiddu/PEMesh/aggregate"
	"github.com/DanielaCabiddu/PEMesh/canvas"
	"github.com/DanielaCabiddu/PEMesh/dataset"
	"github.com/DanielaCabiddu/PEMesh/elements"
	"github.com/DanielaCabiddu/PEMesh/geom"
	"github.com/DanielaCabiddu/PEMesh/meshio"
	"github.com/DanielaCabiddu/PEMesh/metrics"
	"github.com/DanielaCabiddu/PEMesh/pipeline"
	"github.com/DanielaCabiddu/PEMesh/polymesh"
)

type recorder struct {
	progress []int
	msgs     []string
	warns    []string
	errs     []pipeline.Kind
	done     int
}

func (r *recorder) Progress(i, _ int, msg string) {
	r.progress = append(r.progress, i)
	r.msgs = append(r.msgs, msg)
}

func (r *recorder) Warn(msg string)                 { r.warns = append(r.warns, msg) }
func (r *recorder) Error(k pipeline.Kind, _ string) { r.errs = append(r.errs, k) }
func (r *recorder) Done()                           { r.done++ }

func place(c elements.Class, cx, cy, scale float64) canvas.PlacedElement {
	return canvas.PlacedElement{Element: elements.MustNew(c), Centre: geom.Pt(cx, cy), Scale: scale}
}

func TestParams(t *testing.T) {
	cases := []struct {
		name string
		spec pipeline.GenerationSpec
		want []float64
	}{
		{"single", pipeline.GenerationSpec{Samples: 5, MaxDeformation: 1}, []float64{0}},
		{"one sample", pipeline.GenerationSpec{Parametric: true, Samples: 1, MaxDeformation: 1}, []float64{0}},
		{"five", pipeline.GenerationSpec{Parametric: true, Samples: 5, MaxDeformation: 1}, []float64{0, 0.25, 0.5, 0.75, 1}},
		{"half", pipeline.GenerationSpec{Parametric: true, Samples: 3, MaxDeformation: 0.5}, []float64{0, 0.25, 0.5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.spec.Params())
		})
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, pipeline.DefaultGenerationSpec().Validate())

	bad := []pipeline.GenerationSpec{
		{Parametric: true, Samples: 0, MaxDeformation: 1, Triangulation: canvas.DefaultParams()},
		{Parametric: true, Samples: 3, MaxDeformation: 1.5, Triangulation: canvas.DefaultParams()},
		{Parametric: true, Samples: 3, MaxDeformation: 0, Triangulation: canvas.DefaultParams()},
		{Triangulation: canvas.Params{MinAngle: 40}},
	}
	for i, s := range bad {
		err := s.Validate()
		require.ErrorIs(t, err, pipeline.ErrSpec, "case %d", i)
		require.Equal(t, pipeline.KindConfig, pipeline.KindOf(err))
	}
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		want pipeline.Kind
	}{
		{nil, pipeline.KindOther},
		{errors.New("boom"), pipeline.KindOther},
		{fmt.Errorf("x: %w", context.Canceled), pipeline.KindCancelled},
		{pipeline.ErrCancelled, pipeline.KindCancelled},
		{fmt.Errorf("x: %w", canvas.ErrElementOutsideCanvas), pipeline.KindElementOutsideCanvas},
		{fmt.Errorf("x: %w", canvas.ErrIntersectingElements), pipeline.KindIntersectingElements},
		{polymesh.ErrNonManifold, pipeline.KindNonManifold},
		{elements.ErrDegenerate, pipeline.KindDegenerate},
		{meshio.ErrIO, pipeline.KindIO},
		{dataset.ErrIO, pipeline.KindIO},
		{canvas.ErrParams, pipeline.KindConfig},
		{aggregate.ErrUnknownPolicy, pipeline.KindConfig},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, pipeline.KindOf(tc.err), "%v", tc.err)
	}
	require.Equal(t, "intersecting_elements", pipeline.KindIntersectingElements.String())
}

func TestSingleIsotropySquare(t *testing.T) {
	rec := &recorder{}
	ds := dataset.New()
	o := pipeline.New(ds, pipeline.WithObserver(rec))

	rep, err := o.Generate(context.Background(),
		[]canvas.PlacedElement{place(elements.Isotropy, 0.5, 0.5, 0.4)}, pipeline.DefaultGenerationSpec())
	require.NoError(t, err)
	require.Equal(t, []int{0}, rep.Done)
	require.Empty(t, rep.Failures)
	require.Equal(t, []int{1}, rec.progress)
	require.Equal(t, 1, rec.done)
	require.Empty(t, rec.warns)

	require.Equal(t, 1, ds.Len())
	require.Equal(t, elements.NoClass, ds.ClassID(0))
	require.Zero(t, ds.Param(0))
	require.InDelta(t, 1.0, ds.Mesh(0).Area(), 1e-9)

	require.NoError(t, o.ComputeMetrics(context.Background()))
	mm, ok := ds.Metrics(0)
	require.True(t, ok)
	ns := mm.Of(metrics.NS)
	require.Equal(t, 1, ns.Poly.Count)
	require.Equal(t, 4.0, ns.Poly.Min)
	require.Positive(t, ns.Tri.Count)
}

func TestIntersectingPlacementKeepsDataset(t *testing.T) {
	rec := &recorder{}
	ds := dataset.New()
	o := pipeline.New(ds, pipeline.WithObserver(rec))
	_, err := o.Generate(context.Background(),
		[]canvas.PlacedElement{place(elements.Isotropy, 0.5, 0.5, 0.4)}, pipeline.DefaultGenerationSpec())
	require.NoError(t, err)
	before := ds.Mesh(0)

	rep, err := o.Generate(context.Background(), []canvas.PlacedElement{
		place(elements.Convexity, 0.4, 0.5, 0.4),
		place(elements.Convexity, 0.5, 0.5, 0.4),
	}, pipeline.DefaultGenerationSpec())
	require.NoError(t, err)
	require.Empty(t, rep.Done)
	require.Len(t, rep.Failures, 1)
	require.Equal(t, pipeline.KindIntersectingElements, rep.Failures[0].Kind)
	require.ErrorIs(t, rep.Failures[0].Err, canvas.ErrIntersectingElements)
	require.Equal(t, []pipeline.Kind{pipeline.KindIntersectingElements}, rec.errs)
	require.Contains(t, rec.warns, "no mesh generated")

	require.Equal(t, 1, ds.Len())
	require.Same(t, before, ds.Mesh(0))
}

func TestNumberOfSidesLadder(t *testing.T) {
	ds := dataset.New()
	o := pipeline.New(ds, pipeline.WithWorkers(4))
	spec := pipeline.DefaultGenerationSpec()
	spec.Parametric = true
	spec.Samples = 12

	rep, err := o.Generate(context.Background(),
		[]canvas.PlacedElement{place(elements.NSided, 0.5, 0.5, 0.3)}, spec)
	require.NoError(t, err)
	require.Len(t, rep.Done, 12)
	require.InDelta(t, 1.0/11, ds.Param(1), 1e-15)
	require.Equal(t, 1.0, ds.Param(11))

	require.NoError(t, o.ComputeMetrics(context.Background()))
	require.Equal(t, 12, ds.NumMetrics())

	prev := 0.0
	var sides []float64
	for i := range ds.Len() {
		mm, ok := ds.Metrics(i)
		require.True(t, ok)
		ns := mm.Of(metrics.NS)
		// At t = 0 the element is a triangle and the polygon subset is empty.
		v := ns.Poly.Min
		if ns.Poly.Empty() {
			require.Equal(t, metrics.NoIndex, ns.Poly.ArgMin)
			v = ns.Tri.Min
		}
		require.GreaterOrEqual(t, v, prev, "mesh %d", i)
		prev = v
		sides = append(sides, v)
	}
	require.Equal(t, 3.0, sides[0])
	require.Equal(t, 40.0, sides[11])
}

func TestMetricsMatchSequential(t *testing.T) {
	ds := dataset.New()
	o := pipeline.New(ds, pipeline.WithWorkers(3))
	spec := pipeline.DefaultGenerationSpec()
	spec.Parametric = true
	spec.Samples = 3
	_, err := o.Generate(context.Background(), []canvas.PlacedElement{
		place(elements.Star, 0.25, 0.25, 0.15),
		place(elements.NSided, 0.75, 0.7, 0.15),
	}, spec)
	require.NoError(t, err)
	require.Equal(t, 3, ds.Len())

	require.NoError(t, o.ComputeMetrics(context.Background()))
	require.NoError(t, o.ComputeMetrics(context.Background()))
	require.Equal(t, 3, ds.NumMetrics())
	for i := range ds.Len() {
		got, _ := ds.Metrics(i)
		require.Equal(t, metrics.Compute(ds.Mesh(i)), got, "mesh %d", i)
	}
}

func TestCancelled(t *testing.T) {
	ds := dataset.New()
	o := pipeline.New(ds)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := o.Generate(ctx, []canvas.PlacedElement{place(elements.Isotropy, 0.5, 0.5, 0.4)}, pipeline.DefaultGenerationSpec())
	require.ErrorIs(t, err, pipeline.ErrCancelled)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, pipeline.KindCancelled, pipeline.KindOf(err))
	require.Zero(t, ds.Len())

	_, err = o.Generate(context.Background(), []canvas.PlacedElement{place(elements.Isotropy, 0.5, 0.5, 0.4)}, pipeline.DefaultGenerationSpec())
	require.NoError(t, err)
	require.ErrorIs(t, o.ComputeMetrics(ctx), pipeline.ErrCancelled)
	require.Zero(t, ds.NumMetrics())
	_, err = o.Mirror(ctx)
	require.ErrorIs(t, err, pipeline.ErrCancelled)
	require.Equal(t, 1, ds.Len())
}

func TestAggregateThenMirror(t *testing.T) {
	ds := dataset.New()
	rec := &recorder{}
	o := pipeline.New(ds, pipeline.WithObserver(rec))
	spec := pipeline.DefaultGenerationSpec()
	spec.Triangulation = canvas.Params{MinAngle: 20, Policy: canvas.UserArea, Area: 0.005}
	_, err := o.Generate(context.Background(), []canvas.PlacedElement{place(elements.Isotropy, 0.5, 0.5, 0.4)}, spec)
	require.NoError(t, err)
	require.NoError(t, o.ComputeMetrics(context.Background()))
	generated := ds.Mesh(0).NumPolys()

	rep, err := o.Aggregate(context.Background(), pipeline.AggregationSpec{Policy: aggregate.Diameter, Bound: 0.2, Seed: 7})
	require.NoError(t, err)
	require.Equal(t, []int{0}, rep.Done)
	require.Zero(t, ds.NumMetrics())
	m := ds.Mesh(0)
	require.Less(t, m.NumPolys(), generated)
	require.InDelta(t, 1.0, m.Area(), 1e-9)
	aggregated := m.NumPolys()

	rep, err = o.Mirror(context.Background())
	require.NoError(t, err)
	require.Equal(t, []int{0}, rep.Done)
	m = ds.Mesh(0)
	require.Equal(t, 4*aggregated, m.NumPolys())
	require.InDelta(t, 1.0, m.Area(), 1e-9)
	b := m.BBox()
	require.Equal(t, 0.0, b.Lo().X)
	require.Equal(t, 1.0, b.Hi().Y)

	_, err = o.Aggregate(context.Background(), pipeline.AggregationSpec{Policy: aggregate.Policy(42)})
	require.ErrorIs(t, err, pipeline.ErrSpec)
}

func TestAggregateDefaultBound(t *testing.T) {
	ds := dataset.New()
	rec := &recorder{}
	o := pipeline.New(ds, pipeline.WithObserver(rec))
	spec := pipeline.DefaultGenerationSpec()
	spec.Triangulation = canvas.Params{MinAngle: 20, Policy: canvas.UserArea, Area: 0.002}
	_, err := o.Generate(context.Background(), []canvas.PlacedElement{place(elements.Isotropy, 0.5, 0.5, 0.4)}, spec)
	require.NoError(t, err)
	before := ds.Mesh(0).NumPolys()

	rec.progress, rec.msgs = nil, nil
	rep, err := o.Aggregate(context.Background(), pipeline.AggregationSpec{Policy: aggregate.Diameter})
	require.NoError(t, err)
	require.Len(t, rep.Done, 1)
	after := ds.Mesh(0).NumPolys()
	require.Less(t, after, before)

	// One event per merge while mesh 0 is in flight, then the mesh itself.
	merges := before - after
	require.Len(t, rec.progress, merges+1)
	for k := range merges {
		require.Equal(t, 0, rec.progress[k])
		require.Equal(t, fmt.Sprintf("mesh 0: merge %d, %d polygons", k+1, before-k-1), rec.msgs[k])
	}
	require.Equal(t, 1, rec.progress[merges])
}

func TestAggregateWithoutTemplatesFails(t *testing.T) {
	ds := dataset.New()
	rec := &recorder{}
	o := pipeline.New(ds, pipeline.WithObserver(rec))
	spec := pipeline.DefaultGenerationSpec()
	_, err := o.Generate(context.Background(), nil, spec)
	require.NoError(t, err)
	require.Contains(t, rec.warns, "no elements placed: meshing the empty canvas")
	before := ds.Mesh(0)

	rep, err := o.Aggregate(context.Background(), pipeline.AggregationSpec{Policy: aggregate.RhoArea})
	require.NoError(t, err)
	require.Empty(t, rep.Done)
	require.Len(t, rep.Failures, 1)
	require.ErrorIs(t, rep.Failures[0].Err, aggregate.ErrNoTemplates)
	require.Same(t, before, ds.Mesh(0))
}

func TestSaveAndRecord(t *testing.T) {
	dir := t.TempDir()
	ds := dataset.New()
	rec := &recorder{}
	o := pipeline.New(ds, pipeline.WithObserver(rec))
	spec := pipeline.DefaultGenerationSpec()
	spec.Parametric, spec.Samples, spec.MaxDeformation = true, 2, 0.5
	_, err := o.Generate(context.Background(), []canvas.PlacedElement{place(elements.Isotropy, 0.5, 0.5, 0.4)}, spec)
	require.NoError(t, err)
	require.NoError(t, o.ComputeMetrics(context.Background()))

	rec.progress = nil
	require.NoError(t, o.Save(context.Background(), filepath.Join(dir, "out")))
	require.Equal(t, []int{1, 2}, rec.progress)
	require.True(t, ds.IsOnDisk())

	cat, err := dataset.OpenCatalog(filepath.Join(dir, "catalog.db"))
	require.NoError(t, err)
	defer cat.Close()
	require.NoError(t, o.Record(context.Background(), cat, "isotropy", dir))
	recs, err := cat.Meshes(context.Background(), o.RunID())
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, ds.Filename(1), recs[1].Path)
}

func TestPlacementsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.txt")
	placed := []canvas.PlacedElement{place(elements.Comb, 0.3, 0.3, 0.2), place(elements.Star, 0.7, 0.7, 0.25)}
	placed[1].Rotation = 0.3
	require.NoError(t, pipeline.SavePlacements(path, placed))

	back, err := pipeline.LoadPlacements(path)
	require.NoError(t, err)
	require.Len(t, back, 2)
	for i := range placed {
		require.Equal(t, placed[i].Class(), back[i].Class())
		require.Equal(t, placed[i].Centre, back[i].Centre)
		require.Equal(t, placed[i].Scale, back[i].Scale)
		require.Equal(t, placed[i].Rotation, back[i].Rotation)
	}

	_, err = pipeline.LoadPlacements(filepath.Join(t.TempDir(), "missing.txt"))
	require.ErrorIs(t, err, meshio.ErrIO)
}

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	obs := pipeline.NewLogObserver(slog.New(slog.NewTextHandler(&buf, nil)))
	obs.Progress(2, 5, "mesh")
	obs.Error(pipeline.KindIO, "cannot read")
	obs.Warn("careful")
	obs.Done()

	out := buf.String()
	require.Contains(t, out, "index=2 total=5")
	require.Contains(t, out, "level=ERROR msg=\"cannot read\" kind=io")
	require.Contains(t, out, "level=WARN msg=careful")
	require.Contains(t, out, "msg=done")
	require.NotPanics(t, func() { pipeline.NewLogObserver(nil).Done() })
}

func TestOptionPanics(t *testing.T) {
	require.Panics(t, func() { pipeline.WithWorkers(0) })
	require.Panics(t, func() { pipeline.WithObserver(nil) })
	require.False(t, math.IsNaN(pipeline.DefaultGenerationSpec().MaxDeformation))
}
