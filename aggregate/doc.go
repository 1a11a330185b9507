// SPDX-License-Identifier: MIT

// Package aggregate greedily merges adjacent background polygons of a canvas
// mesh.
//
// Every round scores each unordered pair of edge-adjacent polygons (template
// polygons excluded) with the selected Policy and merges the cheapest pair
// while its cost stays within the bound:
//
//	stats, err := aggregate.Run(ctx, m, aggregate.Diameter, 0.2)
//
// A pair is merged only when the two polygons form a disk: their union must
// have a single boundary loop, no pinched vertex and no repeated vertex along
// the walk. Rejected pairs are remembered and never proposed again.
//
// On return no mergeable pair of non-template neighbours costs less than or
// equal to the bound. Polygon ids are renumbered densely by every merge.
package aggregate
