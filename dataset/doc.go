// SPDX-License-Identifier: MIT

// Package dataset holds a sequence of meshes with their parallel metadata
// (deformation parameter, class id, file name, metric summaries) and moves
// it to and from disk.
//
// A Dataset owns the meshes added to it. Saving writes, per mesh, a
// NODE/ELE pair for the external solver and an OBJ file, plus the metrics
// report when metrics are attached; the mesh's file name is then its OBJ
// path. LoadDir ingests a directory of OBJ files, flagging every polygon
// with more than three sides as a template.
//
// Catalog records datasets in a SQLite database (gorm) so that runs,
// their meshes, metric summaries and solver errors can be queried later.
package dataset
