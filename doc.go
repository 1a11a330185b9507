// Package pemesh generates parametric polygonal meshes for benchmarking
// polygonal PDE solvers such as the Virtual Element Method.
//
// A dataset is built by placing deformable element templates in the unit
// square, meshing the rest of the canvas with a quality constrained
// Delaunay triangulation, optionally merging background triangles and
// mirroring the result, and finally measuring every polygon with sixteen
// geometric indicators.
//
// Packages:
//
//	geom/         2D predicates shared by every other package
//	polymesh/     the polygon mesh with lazily derived topology
//	elements/     parametric templates (Isotropy, Convexity, N-Sided, …)
//	triangulate/  constrained Delaunay triangulation with refinement
//	canvas/       layout of elements and meshing of the canvas
//	aggregate/    greedy merging of background polygons
//	mirror/       four-fold reflection into the unit square
//	metrics/      per-polygon indicators, summaries and text reports
//	meshio/       OBJ, NODE/ELE, placement sets, GeoJSON
//	dataset/      mesh sequences on disk and the SQLite catalogue
//	solver/       external solver results and metric/error correlation
//	stats/        dense matrices and Pearson correlation
//	pipeline/     the orchestrator with observer and cancellation
//	config/       YAML run configuration
//	cmd/pemesh    batch command-line front-end
//
// Quick example:
//
//	placed := []canvas.PlacedElement{{
//		Element: elements.MustNew(elements.Isotropy),
//		Centre:  geom.Pt(0.5, 0.5),
//		Scale:   0.4,
//	}}
//	m, err := canvas.Build(ctx, placed, 0.5, canvas.DefaultParams())
//	mm := metrics.Compute(m)
//
//	go install github.com/DanielaCabiddu/PEMesh/cmd/pemesh@latest
package pemesh
