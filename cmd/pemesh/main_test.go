package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/require"

	"github.com/DanielaCabiddu/PEMesh/canvas"
	"github.com/DanielaCabiddu/PEMesh/dataset"
	"github.com/DanielaCabiddu/PEMesh/elements"
	"github.com/DanielaCabiddu/PEMesh/geom"
	"github.com/DanielaCabiddu/PEMesh/meshio"
	"github.com/DanielaCabiddu/PEMesh/pipeline"
	"github.com/DanielaCabiddu/PEMesh/solver"
)

func runCLI(t *testing.T, ctx context.Context, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(ctx, args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writePlacements(t *testing.T, dir string, placed ...canvas.PlacedElement) string {
	t.Helper()
	path := filepath.Join(dir, "layout.txt")
	require.NoError(t, pipeline.SavePlacements(path, placed))
	return path
}

func writeConfig(t *testing.T, dir, doc string) string {
	t.Helper()
	path := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func square(cx, cy, scale float64) canvas.PlacedElement {
	return canvas.PlacedElement{Element: elements.MustNew(elements.Isotropy), Centre: geom.Pt(cx, cy), Scale: scale}
}

func TestUsage(t *testing.T) {
	ctx := context.Background()
	code, _, stderr := runCLI(t, ctx)
	require.Equal(t, exitConfig, code)
	require.Contains(t, stderr, "generate")

	code, _, _ = runCLI(t, ctx, "explode")
	require.Equal(t, exitConfig, code)
	code, _, _ = runCLI(t, ctx, "-h")
	require.Equal(t, exitOK, code)
	code, _, _ = runCLI(t, ctx, "-log-format", "xml", "wait")
	require.Equal(t, exitConfig, code)
	code, _, _ = runCLI(t, ctx, "mirror", "-in", "x")
	require.Equal(t, exitConfig, code)
	code, _, _ = runCLI(t, ctx, "aggregate", "-in", "x", "-out", "y", "-policy", "cheapest")
	require.Equal(t, exitConfig, code)
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	layout := writePlacements(t, dir, square(0.5, 0.5, 0.4))
	cfg := writeConfig(t, dir, `
generation:
  parametric: true
  samples: 3
  max_deformation: 0.5
aggregation:
  enabled: true
  bound: 0.2
output:
  catalog: `+filepath.Join(dir, "catalog.db")+`
  geojson: true
`)
	code, _, stderr := runCLI(t, context.Background(), "-log-format", "json", "generate", "-config", cfg, "-placements", layout, "-out", out)
	require.Equal(t, exitOK, code, stderr)
	require.Contains(t, stderr, `"cmd":"generate"`)

	for _, stem := range []string{"0_0.000000", "1_0.250000", "2_0.500000"} {
		for _, ext := range []string{".obj", ".node", ".ele", ".geojson", "_metrics.txt"} {
			_, err := os.Stat(filepath.Join(out, stem+ext))
			require.NoError(t, err, stem+ext)
		}
	}
	_, err := os.Stat(filepath.Join(dir, "catalog.db"))
	require.NoError(t, err)

	// The generated directory feeds the other commands.
	errsPath := filepath.Join(dir, "errors.txt")
	require.NoError(t, os.WriteFile(errsPath, []byte("1 2 3 4 5\n2 3 4 5 6\n4 1 2 3 9\n"), 0o644))
	catPath := filepath.Join(dir, "catalog.db")
	code, stdout, stderr := runCLI(t, context.Background(), "correlate", "-in", out, "-errors", errsPath, "-catalog", catPath)
	require.Equal(t, exitOK, code, stderr)
	require.True(t, strings.HasPrefix(stdout, "feature\terrS\terrInf"))
	require.Contains(t, stderr, "solver errors recorded")

	cat, err := dataset.OpenCatalog(catPath)
	require.NoError(t, err)
	runs, err := cat.Runs(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	recs, err := cat.Meshes(context.Background(), uuid.MustParse(runs[0].ID))
	require.NoError(t, err)
	require.Len(t, recs, 3)
	require.NotNil(t, recs[2].CondVect)
	require.Equal(t, 9.0, *recs[2].CondVect)
	require.NoError(t, cat.Close())

	code, _, _ = runCLI(t, context.Background(), "correlate", "-in", out, "-errors", errsPath,
		"-catalog", catPath, "-run", "not-a-uuid")
	require.Equal(t, exitConfig, code)
	code, _, _ = runCLI(t, context.Background(), "correlate", "-in", out, "-errors", errsPath,
		"-catalog", filepath.Join(dir, "empty.db"))
	require.Equal(t, exitConfig, code)

	// Solver side: per-vertex solutions, then the completion marker.
	for _, stem := range []string{"0_0.000000", "1_0.250000", "2_0.500000"} {
		m, err := meshio.LoadOBJ(filepath.Join(out, stem+".obj"))
		require.NoError(t, err)
		var vem, truth strings.Builder
		for v := range m.NumVerts() {
			p := m.Vert(v)
			fmt.Fprintf(&vem, "%g\n", p.X+p.Y+0.01)
			fmt.Fprintf(&truth, "%g\n", p.X+p.Y)
		}
		vemPath, truthPath := solver.SolutionPaths(filepath.Join(out, stem))
		require.NoError(t, os.WriteFile(vemPath, []byte(vem.String()), 0o644))
		require.NoError(t, os.WriteFile(truthPath, []byte(truth.String()), 0o644))
	}
	fields := filepath.Join(dir, "fields")
	code, _, stderr = runCLI(t, context.Background(), "solution", "-in", out, "-out", fields)
	require.Equal(t, exitOK, code, stderr)
	data, err := os.ReadFile(filepath.Join(fields, "1_0.250000_solution.geojson"))
	require.NoError(t, err)
	fc, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	require.NotEmpty(t, fc.Features)
	for _, f := range fc.Features {
		require.InDelta(t, 0.01, f.Properties["err"], 1e-12)
		require.Contains(t, f.Properties, "truth_01")
	}

	code, _, stderr = runCLI(t, context.Background(), "done", "-out", filepath.Join(dir, "run"))
	require.Equal(t, exitOK, code, stderr)
	code, _, stderr = runCLI(t, context.Background(), "wait", "-out", filepath.Join(dir, "run"), "-interval", "1ms")
	require.Equal(t, exitOK, code, stderr)

	code, _, stderr = runCLI(t, context.Background(), "mirror", "-in", out, "-out", filepath.Join(dir, "mirrored"))
	require.Equal(t, exitOK, code, stderr)
	code, _, stderr = runCLI(t, context.Background(), "metrics", "-in", filepath.Join(dir, "mirrored"))
	require.Equal(t, exitOK, code, stderr)

	require.NoError(t, os.WriteFile(errsPath, []byte("1 2 3 4 5\n"), 0o644))
	code, _, _ = runCLI(t, context.Background(), "correlate", "-in", out, "-errors", errsPath)
	require.Equal(t, exitInput, code)
}

func TestGenerateExitCodes(t *testing.T) {
	cases := []struct {
		name   string
		placed []canvas.PlacedElement
		config string
		want   int
	}{
		{"rejected config", []canvas.PlacedElement{square(0.5, 0.5, 0.4)}, "triangulation:\n  min_angle: 40\n", exitConfig},
		{"outside canvas", []canvas.PlacedElement{square(0.1, 0.5, 0.4)}, "", exitInput},
		{"intersecting", []canvas.PlacedElement{square(0.4, 0.5, 0.4), square(0.5, 0.5, 0.4)}, "", exitTriangulation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			layout := writePlacements(t, dir, tc.placed...)
			cfg := writeConfig(t, dir, tc.config)
			code, _, _ := runCLI(t, context.Background(), "generate", "-config", cfg, "-placements", layout, "-out", filepath.Join(dir, "out"))
			require.Equal(t, tc.want, code)
		})
	}
}

func TestWait(t *testing.T) {
	out := filepath.Join(t.TempDir(), "run")
	require.NoError(t, solver.MarkDone(out))
	code, _, stderr := runCLI(t, context.Background(), "wait", "-out", out, "-interval", "1ms")
	require.Equal(t, exitOK, code, stderr)
	require.Contains(t, stderr, "solver done")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	code, _, _ = runCLI(t, ctx, "wait", "-out", out, "-interval", "1ms")
	require.Equal(t, exitCancelled, code)
}

func TestMissingInput(t *testing.T) {
	code, _, _ := runCLI(t, context.Background(), "metrics", "-in", filepath.Join(t.TempDir(), "missing"))
	require.Equal(t, exitInput, code)
}
