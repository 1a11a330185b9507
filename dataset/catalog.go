// SPDX-License-Identifier: MIT
// Package: pemesh/dataset
//
// catalog.go — SQLite index of runs (gorm).
//
// Tables:
//   - runs:      one row per recorded dataset, keyed by a UUID;
//   - meshes:    one row per mesh (index, t, class, path, sizes, solver
//     errors once known);
//   - summaries: one row per (mesh, indicator) with the combined extremes
//     and the global figures.
//
// Non-finite values are stored as NULL.

package dataset

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/DanielaCabiddu/PEMesh/metrics"
	"github.com/DanielaCabiddu/PEMesh/solver"
)

// Run is a recorded dataset.
type Run struct {
	ID        string `gorm:"primaryKey;size:36"`
	Label     string
	Dir       string
	CreatedAt time.Time
	Meshes    []MeshRecord `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE"`
}

// TableName implements gorm's schema.Tabler.
func (Run) TableName() string { return "runs" }

// MeshRecord is one mesh of a run.
type MeshRecord struct {
	ID       uint   `gorm:"primaryKey"`
	RunID    string `gorm:"size:36;index:idx_run_mesh,unique"`
	Index    int    `gorm:"column:idx;index:idx_run_mesh,unique"`
	Param    float64
	ClassID  uint32
	Path     string
	NumVerts int
	NumPolys int

	ErrS     *float64 `gorm:"column:err_s"`
	ErrInf   *float64 `gorm:"column:err_inf"`
	ErrL2    *float64 `gorm:"column:err_l2"`
	HEMax    *float64 `gorm:"column:h_emax"`
	CondVect *float64 `gorm:"column:cond_vect"`

	Summaries []SummaryRecord `gorm:"foreignKey:MeshID;constraint:OnDelete:CASCADE"`
}

// TableName implements gorm's schema.Tabler.
func (MeshRecord) TableName() string { return "meshes" }

// SummaryRecord is the summary of one indicator on one mesh.
type SummaryRecord struct {
	ID         uint   `gorm:"primaryKey"`
	MeshID     uint   `gorm:"index"`
	Indicator  string `gorm:"size:8"`
	Min        *float64
	ArgMin     int
	Max        *float64
	ArgMax     int
	GlobalAvg  *float64
	GlobalNorm *float64
}

// TableName implements gorm's schema.Tabler.
func (SummaryRecord) TableName() string { return "summaries" }

// Catalog is a SQLite-backed index of datasets.
type Catalog struct {
	db *gorm.DB
}

// OpenCatalog opens or creates the database at path and migrates it.
func OpenCatalog(path string) (*Catalog, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("OpenCatalog: %w: %w", ErrCatalog, err)
	}
	if err := db.AutoMigrate(&Run{}, &MeshRecord{}, &SummaryRecord{}); err != nil {
		return nil, fmt.Errorf("OpenCatalog: migrate: %w: %w", ErrCatalog, err)
	}
	return &Catalog{db: db}, nil
}

// Close releases the database handle.
func (c *Catalog) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return fmt.Errorf("Close: %w: %w", ErrCatalog, err)
	}
	return sqlDB.Close()
}

// RecordRun stores d under id in one transaction.
func (c *Catalog) RecordRun(ctx context.Context, id uuid.UUID, label, dir string, d *Dataset) error {
	run := Run{ID: id.String(), Label: label, Dir: dir, CreatedAt: time.Now().UTC()}
	for i, m := range d.meshes {
		rec := MeshRecord{
			Index:    i,
			Param:    d.params[i],
			ClassID:  d.classes[i],
			Path:     d.files[i],
			NumVerts: m.NumVerts(),
			NumPolys: m.NumPolys(),
		}
		if i < len(d.metrics) {
			rec.Summaries = summaryRecords(d.metrics[i])
		}
		run.Meshes = append(run.Meshes, rec)
	}
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&run).Error
	})
	if err != nil {
		return fmt.Errorf("RecordRun: %w: %w", ErrCatalog, err)
	}
	return nil
}

func summaryRecords(mm *metrics.MeshMetrics) []SummaryRecord {
	out := make([]SummaryRecord, 0, metrics.Count)
	for _, ind := range metrics.Indicators() {
		s := mm.Of(ind)
		lo, argLo := s.Min()
		hi, argHi := s.Max()
		out = append(out, SummaryRecord{
			Indicator:  ind.String(),
			Min:        finite(lo),
			ArgMin:     argLo,
			Max:        finite(hi),
			ArgMax:     argHi,
			GlobalAvg:  finite(s.GlobalAvg),
			GlobalNorm: finite(s.GlobalNorm),
		})
	}
	return out
}

// RecordErrors stores solver errors on the meshes of run id, errs[i] on
// mesh i.
func (c *Catalog) RecordErrors(ctx context.Context, id uuid.UUID, errs []solver.Errors) error {
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, e := range errs {
			res := tx.Model(&MeshRecord{}).
				Where("run_id = ? AND idx = ?", id.String(), i).
				Updates(map[string]any{
					"err_s":     finite(e[solver.ErrS]),
					"err_inf":   finite(e[solver.ErrInf]),
					"err_l2":    finite(e[solver.ErrL2]),
					"h_emax":    finite(e[solver.HEMax]),
					"cond_vect": finite(e[solver.CondVect]),
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("mesh %d: %w", i, ErrIndexOutOfRange)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("RecordErrors: %w: %w", ErrCatalog, err)
	}
	return nil
}

// Runs lists recorded runs, newest first.
func (c *Catalog) Runs(ctx context.Context) ([]Run, error) {
	var runs []Run
	if err := c.db.WithContext(ctx).Order("created_at DESC").Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("Runs: %w: %w", ErrCatalog, err)
	}
	return runs, nil
}

// Meshes returns the meshes of run id in index order, with summaries.
func (c *Catalog) Meshes(ctx context.Context, id uuid.UUID) ([]MeshRecord, error) {
	var recs []MeshRecord
	err := c.db.WithContext(ctx).
		Preload("Summaries", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Where("run_id = ?", id.String()).
		Order("idx").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("Meshes: %w: %w", ErrCatalog, err)
	}
	return recs, nil
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
