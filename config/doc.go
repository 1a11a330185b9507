// SPDX-License-Identifier: MIT

// Package config loads the YAML run configuration of the pemesh tool.
//
// Example:
//
//	generation:
//	  parametric: true
//	  samples: 12
//	  max_deformation: 1.0
//	triangulation:
//	  min_angle: 20
//	  area_policy: avg_diag   # min_edge | avg_diag | user
//	aggregation:
//	  enabled: true
//	  policy: diameter        # diameter | random | rho_diam | rho_area
//	  bound: 0.2              # ≤ 0 selects the per-mesh default bound
//	output:
//	  dir: out
//	  catalog: out/catalog.db
//	placements: layout.txt
//
// Missing fields keep the values of Default; unknown fields are rejected.
package config
