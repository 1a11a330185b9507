// SPDX-License-Identifier: MIT

// Package pipeline orchestrates dataset production: canvas generation over
// sampled deformation parameters, optional aggregation and mirroring, and
// metric extraction.
//
// An Orchestrator borrows one dataset for its lifetime and reports through
// an Observer (progress, warnings, errors, completion). Library code never
// logs; LogObserver adapts the observer to log/slog.
//
// Failure policy:
//   - a failure while building or transforming one mesh is reported through
//     Observer.Error and recorded in the Report; the run continues with the
//     next mesh and committed meshes are kept;
//   - cancellation of the context stops the whole run with ErrCancelled;
//     the in-flight mesh is discarded.
//
// Metric extraction runs one mesh per task on a bounded errgroup; results
// are attached to the dataset in mesh order.
package pipeline
