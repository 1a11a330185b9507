// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/DanielaCabiddu/PEMesh/aggregate"
	"github.com/DanielaCabiddu/PEMesh/config"
	"github.com/DanielaCabiddu/PEMesh/dataset"
	"github.com/DanielaCabiddu/PEMesh/meshio"
	"github.com/DanielaCabiddu/PEMesh/pipeline"
	"github.com/DanielaCabiddu/PEMesh/solver"
)

func newFlags(e *env, name string) *flag.FlagSet {
	fs := flag.NewFlagSet("pemesh "+name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%s: unexpected arguments %q: %w", fs.Name(), fs.Args(), errUsage)
	}
	return nil
}

func required(fs *flag.FlagSet, name, value string) error {
	if value == "" {
		return fmt.Errorf("%s: -%s is required: %w", fs.Name(), name, errUsage)
	}
	return nil
}

// checkReport turns per-mesh failures into an error carrying the first
// failure's kind.
func checkReport(rep pipeline.Report) error {
	if len(rep.Failures) == 0 {
		return nil
	}
	f := rep.Failures[0]
	return &failedError{kind: f.Kind, count: len(rep.Failures), first: f.Err}
}

func cmdGenerate(ctx context.Context, e *env, args []string) error {
	fs := newFlags(e, "generate")
	cfgPath := fs.String("config", "", "YAML configuration file")
	placements := fs.String("placements", "", "placement-set file (overrides the configuration)")
	out := fs.String("out", "", "output directory (overrides the configuration)")
	if err := parse(fs, args); err != nil {
		return err
	}

	cfg := config.Default()
	if *cfgPath != "" {
		c, err := config.Load(*cfgPath)
		if err != nil {
			return err
		}
		cfg = c
	}
	if *placements != "" {
		cfg.Placements = *placements
	}
	if *out != "" {
		cfg.Output.Dir = *out
	}
	if cfg.Placements == "" {
		return fmt.Errorf("generate: no placement set: %w", config.ErrInvalid)
	}

	placed, err := pipeline.LoadPlacements(cfg.Placements, cfg.ElementOptions()...)
	if err != nil {
		return err
	}
	spec, err := cfg.GenerationSpec()
	if err != nil {
		return err
	}

	ds := dataset.New()
	o := pipeline.New(ds, append(cfg.PipelineOptions(), pipeline.WithObserver(pipeline.NewLogObserver(e.log)))...)
	e.log.Info("generating", slog.String("run", o.RunID().String()),
		slog.Int("elements", len(placed)), slog.Int("samples", len(spec.Params())))

	rep, err := o.Generate(ctx, placed, spec)
	if err != nil {
		return err
	}
	failed := checkReport(rep)

	if cfg.Aggregation.Enabled {
		aspec, err := cfg.AggregationSpec()
		if err != nil {
			return err
		}
		rep, err := o.Aggregate(ctx, aspec)
		if err != nil {
			return err
		}
		if failed == nil {
			failed = checkReport(rep)
		}
	}
	if cfg.Mirror.Enabled {
		rep, err := o.Mirror(ctx)
		if err != nil {
			return err
		}
		if failed == nil {
			failed = checkReport(rep)
		}
	}
	if err := o.ComputeMetrics(ctx); err != nil {
		return err
	}

	var saveOpts []dataset.Option
	if cfg.Output.GeoJSON {
		saveOpts = append(saveOpts, dataset.WithGeoJSON())
	}
	if err := o.Save(ctx, cfg.Output.Dir, saveOpts...); err != nil {
		return err
	}
	if cfg.Output.Catalog != "" {
		if err := record(ctx, o, cfg.Output.Catalog, "generate", cfg.Output.Dir); err != nil {
			return err
		}
	}
	return failed
}

func record(ctx context.Context, o *pipeline.Orchestrator, path, label, dir string) error {
	cat, err := dataset.OpenCatalog(path)
	if err != nil {
		return err
	}
	defer cat.Close()
	return o.Record(ctx, cat, label, dir)
}

// loadDir ingests dir into a fresh orchestrated dataset.
func loadDir(ctx context.Context, e *env, dir string, workers int) (*pipeline.Orchestrator, error) {
	ds := dataset.New()
	if err := ds.LoadDir(ctx, dir); err != nil {
		return nil, err
	}
	opts := []pipeline.Option{pipeline.WithObserver(pipeline.NewLogObserver(e.log))}
	if workers > 0 {
		opts = append(opts, pipeline.WithWorkers(workers))
	}
	e.log.Debug("loaded", slog.String("dir", dir), slog.Int("meshes", ds.Len()))
	return pipeline.New(ds, opts...), nil
}

func cmdMetrics(ctx context.Context, e *env, args []string) error {
	fs := newFlags(e, "metrics")
	in := fs.String("in", "", "directory of OBJ meshes")
	out := fs.String("out", "", "output directory (default: the input directory)")
	workers := fs.Int("workers", 0, "concurrent meshes (0: GOMAXPROCS)")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := required(fs, "in", *in); err != nil {
		return err
	}
	if *out == "" {
		*out = *in
	}
	o, err := loadDir(ctx, e, *in, *workers)
	if err != nil {
		return err
	}
	if err := o.ComputeMetrics(ctx); err != nil {
		return err
	}
	return o.Save(ctx, *out)
}

func cmdAggregate(ctx context.Context, e *env, args []string) error {
	fs := newFlags(e, "aggregate")
	in := fs.String("in", "", "directory of OBJ meshes")
	out := fs.String("out", "", "output directory")
	policy := fs.String("policy", aggregate.Diameter.String(), "diameter, random, rho_diam or rho_area")
	bound := fs.Float64("bound", 0, "merge cost bound (≤ 0: per-mesh default)")
	seed := fs.Int64("seed", 0, "seed of the random policy")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := required(fs, "in", *in); err != nil {
		return err
	}
	if err := required(fs, "out", *out); err != nil {
		return err
	}
	pol, err := aggregate.ParsePolicy(*policy)
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	o, err := loadDir(ctx, e, *in, 0)
	if err != nil {
		return err
	}
	rep, err := o.Aggregate(ctx, pipeline.AggregationSpec{Policy: pol, Bound: *bound, Seed: *seed})
	if err != nil {
		return err
	}
	if err := o.ComputeMetrics(ctx); err != nil {
		return err
	}
	if err := o.Save(ctx, *out); err != nil {
		return err
	}
	return checkReport(rep)
}

func cmdMirror(ctx context.Context, e *env, args []string) error {
	fs := newFlags(e, "mirror")
	in := fs.String("in", "", "directory of OBJ meshes")
	out := fs.String("out", "", "output directory")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := required(fs, "in", *in); err != nil {
		return err
	}
	if err := required(fs, "out", *out); err != nil {
		return err
	}
	o, err := loadDir(ctx, e, *in, 0)
	if err != nil {
		return err
	}
	rep, err := o.Mirror(ctx)
	if err != nil {
		return err
	}
	if err := o.ComputeMetrics(ctx); err != nil {
		return err
	}
	if err := o.Save(ctx, *out); err != nil {
		return err
	}
	return checkReport(rep)
}

func cmdWait(ctx context.Context, e *env, args []string) error {
	fs := newFlags(e, "wait")
	out := fs.String("out", "", "solver output path; the marker is <out>_DONE")
	interval := fs.Duration("interval", solver.DefaultPollInterval, "polling interval")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := required(fs, "out", *out); err != nil {
		return err
	}
	start := time.Now()
	if err := solver.WaitForCompletion(ctx, *out, *interval); err != nil {
		return err
	}
	e.log.Info("solver done", slog.String("out", *out), slog.Duration("waited", time.Since(start)))
	return nil
}

func cmdCorrelate(ctx context.Context, e *env, args []string) error {
	fs := newFlags(e, "correlate")
	in := fs.String("in", "", "directory of OBJ meshes, in solver order")
	errsPath := fs.String("errors", "", "solver error file (five values per mesh)")
	catPath := fs.String("catalog", "", "SQLite catalogue to store the errors in")
	runID := fs.String("run", "", "catalogue run id (default: latest run saved to -in)")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := required(fs, "in", *in); err != nil {
		return err
	}
	if err := required(fs, "errors", *errsPath); err != nil {
		return err
	}
	errs, err := solver.LoadErrors(*errsPath)
	if err != nil {
		return err
	}
	o, err := loadDir(ctx, e, *in, 0)
	if err != nil {
		return err
	}
	if err := o.ComputeMetrics(ctx); err != nil {
		return err
	}
	mms, err := o.Dataset().AllMetrics()
	if err != nil {
		return err
	}
	c, err := solver.Correlate(mms, errs)
	if err != nil {
		return err
	}
	if len(c.Skipped) > 0 {
		e.log.Warn("features with non-finite values skipped", slog.Any("features", c.Skipped))
	}
	if *catPath != "" {
		if err := recordErrors(ctx, e, *catPath, *runID, *in, errs); err != nil {
			return err
		}
	}
	return c.Write(e.stdout)
}

// recordErrors stores errs against run id, or against the latest run
// saved to dir when id is empty.
func recordErrors(ctx context.Context, e *env, path, id, dir string, errs []solver.Errors) error {
	cat, err := dataset.OpenCatalog(path)
	if err != nil {
		return err
	}
	defer cat.Close()

	if id == "" {
		runs, err := cat.Runs(ctx)
		if err != nil {
			return err
		}
		want := filepath.Clean(dir)
		for _, r := range runs {
			if filepath.Clean(r.Dir) == want {
				id = r.ID
				break
			}
		}
		if id == "" {
			return fmt.Errorf("correlate: no catalogue run saved to %s: %w", dir, errUsage)
		}
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("correlate: run id %q: %w: %w", id, errUsage, err)
	}
	if err := cat.RecordErrors(ctx, uid, errs); err != nil {
		return err
	}
	e.log.Info("solver errors recorded", slog.String("run", id), slog.Int("meshes", len(errs)))
	return nil
}

func cmdSolution(ctx context.Context, e *env, args []string) error {
	fs := newFlags(e, "solution")
	in := fs.String("in", "", "directory of OBJ meshes")
	sol := fs.String("solutions", "", "directory of solver outputs (default: -in)")
	out := fs.String("out", "", "directory for the <stem>_solution.geojson files (default: -in)")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := required(fs, "in", *in); err != nil {
		return err
	}
	if *sol == "" {
		*sol = *in
	}
	if *out == "" {
		*out = *in
	}
	if err := os.MkdirAll(*out, 0o755); err != nil {
		return fmt.Errorf("solution: %w: %w", dataset.ErrIO, err)
	}
	o, err := loadDir(ctx, e, *in, 0)
	if err != nil {
		return err
	}
	ds := o.Dataset()
	for i := range ds.Len() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("solution: %w: %w", pipeline.ErrCancelled, err)
		}
		m, stem := ds.Mesh(i), ds.Stem(i)
		fields, maxErr, err := solutionFields(filepath.Join(*sol, stem), m.NumVerts())
		if err != nil {
			return err
		}
		path := filepath.Join(*out, stem+"_solution.geojson")
		if err := meshio.SaveVertexGeoJSON(path, m, fields); err != nil {
			return err
		}
		e.log.Info("solution exported", slog.String("mesh", stem), slog.Float64("max_abs_err", maxErr))
	}
	return nil
}

// solutionFields reads the computed and exact solutions of stem and derives
// the pointwise error plus [0,1]-normalised copies for colouring.
func solutionFields(stem string, n int) (map[string][]float64, float64, error) {
	vemPath, truthPath := solver.SolutionPaths(stem)
	vem, err := solver.LoadSolution(vemPath, n)
	if err != nil {
		return nil, 0, err
	}
	truth, err := solver.LoadSolution(truthPath, n)
	if err != nil {
		return nil, 0, err
	}
	diff := make([]float64, n)
	var maxErr float64
	for i := range diff {
		diff[i] = math.Abs(vem[i] - truth[i])
		maxErr = max(maxErr, diff[i])
	}
	fields := map[string][]float64{"vem": vem, "truth": truth, "err": diff}
	for _, name := range []string{"vem", "truth", "err"} {
		norm := slices.Clone(fields[name])
		if solver.Normalize01(norm) {
			fields[name+"_01"] = norm
		}
	}
	return fields, maxErr, nil
}

func cmdDone(_ context.Context, e *env, args []string) error {
	fs := newFlags(e, "done")
	out := fs.String("out", "", "solver output path; writes <out>_DONE")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := required(fs, "out", *out); err != nil {
		return err
	}
	if err := solver.MarkDone(*out); err != nil {
		return err
	}
	e.log.Info("marker written", slog.String("path", solver.MarkerPath(*out)))
	return nil
}
