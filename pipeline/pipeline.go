// SPDX-License-Identifier: MIT
// Package: pemesh/pipeline
//
// pipeline.go — the orchestrator.
//
// Suspension points (context checked, progress emitted): after every
// generated, aggregated, mirrored or saved mesh.

package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/DanielaCabiddu/PEMesh/aggregate"
	"github.com/DanielaCabiddu/PEMesh/canvas"
	"github.com/DanielaCabiddu/PEMesh/dataset"
	"github.com/DanielaCabiddu/PEMesh/elements"
	"github.com/DanielaCabiddu/PEMesh/metrics"
	"github.com/DanielaCabiddu/PEMesh/mirror"
	"github.com/DanielaCabiddu/PEMesh/polymesh"
)

const (
	methodGenerate       = "Generate"
	methodAggregate      = "Aggregate"
	methodMirror         = "Mirror"
	methodComputeMetrics = "ComputeMetrics"
	methodSave           = "Save"
)

// Failure records one mesh that could not be built or transformed.
type Failure struct {
	Index int     // position in the run (parameter index or mesh index)
	Param float64 // deformation parameter
	Kind  Kind
	Err   error
}

// Report summarises a run step.
type Report struct {
	Done     []int // dataset indices that were added or transformed
	Failures []Failure
}

// Orchestrator runs pipeline steps against one dataset.
type Orchestrator struct {
	ds  *dataset.Dataset
	cfg config
}

// New binds an orchestrator to ds.
func New(ds *dataset.Dataset, opts ...Option) *Orchestrator {
	return &Orchestrator{ds: ds, cfg: newConfig(opts)}
}

// Dataset returns the dataset being built.
func (o *Orchestrator) Dataset() *dataset.Dataset { return o.ds }

// RunID identifies the run, e.g. in a dataset.Catalog.
func (o *Orchestrator) RunID() uuid.UUID { return o.cfg.runID }

func (o *Orchestrator) fail(rep *Report, i int, t float64, err error) {
	k := KindOf(err)
	rep.Failures = append(rep.Failures, Failure{Index: i, Param: t, Kind: k, Err: err})
	o.cfg.observer.Error(k, err.Error())
}

// Generate builds one canvas mesh per deformation parameter of spec and
// appends each to the dataset with class tag elements.NoClass.
func (o *Orchestrator) Generate(ctx context.Context, placed []canvas.PlacedElement, spec GenerationSpec) (Report, error) {
	var rep Report
	if err := spec.Validate(); err != nil {
		return rep, fmt.Errorf("%s: %w", methodGenerate, err)
	}
	obs := o.cfg.observer
	if len(placed) == 0 {
		obs.Warn("no elements placed: meshing the empty canvas")
	}
	ts := spec.Params()
	for i, t := range ts {
		if err := ctx.Err(); err != nil {
			return rep, cancelled(methodGenerate, err)
		}
		m, err := canvas.Build(ctx, placed, t, spec.Triangulation)
		if err != nil {
			if KindOf(err) == KindCancelled {
				return rep, cancelled(methodGenerate, err)
			}
			o.fail(&rep, i, t, fmt.Errorf("%s: t=%g: %w", methodGenerate, t, err))
			continue
		}
		idx := o.ds.Add(m, t, elements.NoClass)
		rep.Done = append(rep.Done, idx)
		obs.Progress(i+1, len(ts), fmt.Sprintf("mesh t=%g: %d vertices, %d polygons", t, m.NumVerts(), m.NumPolys()))
	}
	if len(rep.Done) == 0 {
		obs.Warn("no mesh generated")
	}
	obs.Done()
	return rep, nil
}

// transform applies fn to a clone of every mesh and commits the clone on
// success. Attached metrics are dropped once any mesh changes.
func (o *Orchestrator) transform(ctx context.Context, method string,
	fn func(ctx context.Context, i int, m *polymesh.Mesh) (string, error)) (Report, error) {
	var rep Report
	obs := o.cfg.observer
	n := o.ds.Len()
	for i := range n {
		if err := ctx.Err(); err != nil {
			return rep, cancelled(method, err)
		}
		m := o.ds.Mesh(i).Clone()
		msg, err := fn(ctx, i, m)
		if err != nil {
			if KindOf(err) == KindCancelled {
				return rep, cancelled(method, err)
			}
			o.fail(&rep, i, o.ds.Param(i), fmt.Errorf("%s: mesh %d: %w", method, i, err))
			continue
		}
		if len(rep.Done) == 0 {
			o.ds.ResetMetrics()
		}
		o.ds.Replace(i, m)
		rep.Done = append(rep.Done, i)
		obs.Progress(i+1, n, msg)
	}
	obs.Done()
	return rep, nil
}

// Aggregate merges background polygons of every mesh. Each mesh draws its
// Random costs from its own stream derived from spec.Seed. Every accepted
// merge is reported as progress of the mesh in flight, with i counting the
// meshes already finished.
func (o *Orchestrator) Aggregate(ctx context.Context, spec AggregationSpec) (Report, error) {
	if !spec.Policy.Valid() {
		return Report{}, fmt.Errorf("%s: policy %d: %w: %w", methodAggregate, spec.Policy, ErrSpec, aggregate.ErrUnknownPolicy)
	}
	return o.transform(ctx, methodAggregate, func(ctx context.Context, i int, m *polymesh.Mesh) (string, error) {
		bound := spec.Bound
		if !(bound > 0) {
			b, err := aggregate.DefaultBound(m, spec.Policy)
			if err != nil {
				return "", err
			}
			bound = b
		}
		n := o.ds.Len()
		progress := aggregate.WithProgress(func(merged, polys int) {
			o.cfg.observer.Progress(i, n, fmt.Sprintf("mesh %d: merge %d, %d polygons", i, merged, polys))
		})
		st, err := aggregate.Run(ctx, m, spec.Policy, bound,
			aggregate.WithSeed(aggregate.StreamSeed(spec.Seed, i)), progress)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("mesh %d: %d merges, %d polygons", i, st.Merged, m.NumPolys()), nil
	})
}

// Mirror replaces every mesh by its four-fold reflection.
func (o *Orchestrator) Mirror(ctx context.Context) (Report, error) {
	return o.transform(ctx, methodMirror, func(ctx context.Context, i int, m *polymesh.Mesh) (string, error) {
		welded, err := mirror.Mirror(ctx, m)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("mesh %d: %d vertices welded, %d polygons", i, welded, m.NumPolys()), nil
	})
}

// ComputeMetrics extracts the metrics of every mesh, replacing any
// attached ones. Meshes are processed concurrently; results are attached
// and reported in mesh order. On cancellation nothing is attached.
func (o *Orchestrator) ComputeMetrics(ctx context.Context) error {
	n := o.ds.Len()
	out := make([]*metrics.MeshMetrics, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.cfg.workers)
	for i := range n {
		m := o.ds.Mesh(i)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = metrics.Compute(m)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return cancelled(methodComputeMetrics, err)
	}
	if err := ctx.Err(); err != nil {
		return cancelled(methodComputeMetrics, err)
	}

	obs := o.cfg.observer
	o.ds.ResetMetrics()
	for i, mm := range out {
		if err := o.ds.AttachMetrics(mm); err != nil {
			return fmt.Errorf("%s: %w", methodComputeMetrics, err)
		}
		obs.Progress(i+1, n, fmt.Sprintf("metrics of mesh %d", i))
	}
	obs.Done()
	return nil
}

// Save writes the dataset into dir, reporting every mesh.
func (o *Orchestrator) Save(ctx context.Context, dir string, opts ...dataset.Option) error {
	obs := o.cfg.observer
	opts = append(opts, dataset.WithProgress(func(i, n int, path string) {
		obs.Progress(i+1, n, "saved "+path)
	}))
	if err := o.ds.SaveOnDisk(ctx, dir, opts...); err != nil {
		if KindOf(err) == KindCancelled {
			return cancelled(methodSave, err)
		}
		obs.Error(KindOf(err), err.Error())
		return fmt.Errorf("%s: %w", methodSave, err)
	}
	obs.Done()
	return nil
}

// Record stores the dataset in cat under the run identifier.
func (o *Orchestrator) Record(ctx context.Context, cat *dataset.Catalog, label, dir string) error {
	return cat.RecordRun(ctx, o.cfg.runID, label, dir, o.ds)
}
