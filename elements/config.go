// SPDX-License-Identifier: MIT
// Package: pemesh/elements
//
// config.go — internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   • maxSides  = 40   (N-Sided reaches a 40-gon at t = 1)
//   • maxSpikes = 40   (Star reaches 40 spikes, 80 sides)
//   • maxDents  = 10   (Comb reaches 10 teeth)
//   • starPull  = 0.8

package elements

const (
	defaultMaxSides  = 40
	defaultMaxSpikes = 40
	defaultMaxDents  = 10
	defaultStarPull  = 0.8

	minSides = 3

	// collapseEps keeps Isotropy/Convexity away from t = 1 and U-Like away
	// from t = 0, where their outlines degenerate.
	collapseEps = 1e-5
)

// elementConfig aggregates the knobs used by the deformation laws.
// It is stored by value inside Element.
type elementConfig struct {
	maxSides  int
	maxSpikes int
	maxDents  int
	starPull  float64
}

// newElementConfig returns defaults with opts applied in order.
func newElementConfig(opts ...Option) elementConfig {
	cfg := elementConfig{
		maxSides:  defaultMaxSides,
		maxSpikes: defaultMaxSpikes,
		maxDents:  defaultMaxDents,
		starPull:  defaultStarPull,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
