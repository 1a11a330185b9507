// SPDX-License-Identifier: MIT
// Package: pemesh/config
//
// config.go — schema, defaults, loading and validation.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/DanielaCabiddu/PEMesh/aggregate"
	"github.com/DanielaCabiddu/PEMesh/canvas"
	"github.com/DanielaCabiddu/PEMesh/elements"
	"github.com/DanielaCabiddu/PEMesh/pipeline"
	"github.com/DanielaCabiddu/PEMesh/triangulate"
)

// ErrInvalid indicates a configuration that cannot be read or that holds
// values outside their domain.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the run configuration.
type Config struct {
	Generation    Generation    `yaml:"generation"`
	Triangulation Triangulation `yaml:"triangulation"`
	Aggregation   Aggregation   `yaml:"aggregation"`
	Mirror        Mirror        `yaml:"mirror"`
	Metrics       Metrics       `yaml:"metrics"`
	Output        Output        `yaml:"output"`
	Solver        Solver        `yaml:"solver"`
	Elements      Elements      `yaml:"elements"`
	Placements    string        `yaml:"placements"`
}

type Generation struct {
	Parametric     bool    `yaml:"parametric"`
	Samples        int     `yaml:"samples"`
	MaxDeformation float64 `yaml:"max_deformation"`
}

type Triangulation struct {
	MinAngle   float64 `yaml:"min_angle"`
	AreaPolicy string  `yaml:"area_policy"`
	Area       float64 `yaml:"area"`
	MaxSteiner int     `yaml:"max_steiner"`
}

type Aggregation struct {
	Enabled bool    `yaml:"enabled"`
	Policy  string  `yaml:"policy"`
	Bound   float64 `yaml:"bound"`
	Seed    int64   `yaml:"seed"`
}

type Mirror struct {
	Enabled bool `yaml:"enabled"`
}

type Metrics struct {
	Workers int `yaml:"workers"`
}

type Output struct {
	Dir     string `yaml:"dir"`
	Catalog string `yaml:"catalog"`
	GeoJSON bool   `yaml:"geojson"`
}

type Solver struct {
	OutPath      string        `yaml:"out_path"`
	ErrorsFile   string        `yaml:"errors_file"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

// Elements overrides template limits; zero keeps the built-in value.
type Elements struct {
	MaxSides  int     `yaml:"max_sides"`
	MaxSpikes int     `yaml:"max_spikes"`
	MaxDents  int     `yaml:"max_dents"`
	StarPull  float64 `yaml:"star_pull"`
}

// Default returns the configuration used for absent fields.
func Default() Config {
	return Config{
		Generation:    Generation{Samples: 10, MaxDeformation: 1},
		Triangulation: Triangulation{MinAngle: 20, AreaPolicy: canvas.AvgDiag.String()},
		Aggregation:   Aggregation{Policy: aggregate.Diameter.String()},
		Metrics:       Metrics{Workers: runtime.GOMAXPROCS(0)},
		Output:        Output{Dir: "out"},
		Solver:        Solver{PollInterval: time.Second},
	}
}

// Read decodes a YAML document over Default and validates the result.
func Read(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the configuration file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return Read(bytes.NewReader(data))
}

// Validate reports every field outside its domain, joined.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalid))
	}

	g := c.Generation
	if g.Parametric && g.Samples < 1 {
		bad("generation.samples %d < 1", g.Samples)
	}
	if g.Parametric && !(g.MaxDeformation > 0 && g.MaxDeformation <= 1) {
		bad("generation.max_deformation %g outside (0,1]", g.MaxDeformation)
	}

	tr := c.Triangulation
	if !(tr.MinAngle >= 0 && tr.MinAngle <= triangulate.MaxMinAngle) {
		bad("triangulation.min_angle %g outside [0,%g]", tr.MinAngle, triangulate.MaxMinAngle)
	}
	if pol, err := canvas.ParseAreaPolicy(tr.AreaPolicy); err != nil {
		bad("triangulation.area_policy %q", tr.AreaPolicy)
	} else if pol == canvas.UserArea && !(tr.Area > 0) {
		bad("triangulation.area %g must be positive with the user policy", tr.Area)
	}
	if tr.MaxSteiner < 0 {
		bad("triangulation.max_steiner %d < 0", tr.MaxSteiner)
	}

	if _, err := aggregate.ParsePolicy(c.Aggregation.Policy); err != nil {
		bad("aggregation.policy %q", c.Aggregation.Policy)
	}
	if c.Metrics.Workers < 0 {
		bad("metrics.workers %d < 0", c.Metrics.Workers)
	}
	if c.Solver.PollInterval < 0 {
		bad("solver.poll_interval %s < 0", c.Solver.PollInterval)
	}

	e := c.Elements
	if e.MaxSides != 0 && e.MaxSides < 3 {
		bad("elements.max_sides %d < 3", e.MaxSides)
	}
	if e.MaxSpikes != 0 && e.MaxSpikes < 3 {
		bad("elements.max_spikes %d < 3", e.MaxSpikes)
	}
	if e.MaxDents < 0 {
		bad("elements.max_dents %d < 0", e.MaxDents)
	}
	if e.StarPull != 0 && !(e.StarPull > 0 && e.StarPull < 1) {
		bad("elements.star_pull %g outside (0,1)", e.StarPull)
	}
	return errors.Join(errs...)
}

// GenerationSpec converts the generation and triangulation sections.
func (c Config) GenerationSpec() (pipeline.GenerationSpec, error) {
	pol, err := canvas.ParseAreaPolicy(c.Triangulation.AreaPolicy)
	if err != nil {
		return pipeline.GenerationSpec{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return pipeline.GenerationSpec{
		Parametric:     c.Generation.Parametric,
		Samples:        c.Generation.Samples,
		MaxDeformation: c.Generation.MaxDeformation,
		Triangulation: canvas.Params{
			MinAngle:   c.Triangulation.MinAngle,
			Policy:     pol,
			Area:       c.Triangulation.Area,
			MaxSteiner: c.Triangulation.MaxSteiner,
		},
	}, nil
}

// AggregationSpec converts the aggregation section.
func (c Config) AggregationSpec() (pipeline.AggregationSpec, error) {
	pol, err := aggregate.ParsePolicy(c.Aggregation.Policy)
	if err != nil {
		return pipeline.AggregationSpec{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return pipeline.AggregationSpec{Policy: pol, Bound: c.Aggregation.Bound, Seed: c.Aggregation.Seed}, nil
}

// ElementOptions converts the non-zero element overrides.
func (c Config) ElementOptions() []elements.Option {
	var opts []elements.Option
	e := c.Elements
	if e.MaxSides != 0 {
		opts = append(opts, elements.WithMaxSides(e.MaxSides))
	}
	if e.MaxSpikes != 0 {
		opts = append(opts, elements.WithMaxSpikes(e.MaxSpikes))
	}
	if e.MaxDents != 0 {
		opts = append(opts, elements.WithMaxDents(e.MaxDents))
	}
	if e.StarPull != 0 {
		opts = append(opts, elements.WithStarPull(e.StarPull))
	}
	return opts
}

// PipelineOptions converts the metrics section; zero workers keeps the
// pipeline default.
func (c Config) PipelineOptions() []pipeline.Option {
	if c.Metrics.Workers > 0 {
		return []pipeline.Option{pipeline.WithWorkers(c.Metrics.Workers)}
	}
	return nil
}
