// SPDX-License-Identifier: MIT
// Package: pemesh/elements
//
// options.go — functional options for element construction.
//
// Contract (strict):
//   • Options are functional (type Option func(*elementConfig)).
//   • Option constructors VALIDATE and PANIC on meaningless inputs.
//     Deform itself never panics.
//   • Later options override earlier ones.

package elements

import "fmt"

// Option customizes an Element before its first deformation.
type Option func(*elementConfig)

// WithMaxSides sets N_max, the side count reached by N-Sided at t = 1.
// Panics when n < minSides.
func WithMaxSides(n int) Option {
	if n < minSides {
		panic(fmt.Sprintf("elements: WithMaxSides(%d) < %d", n, minSides))
	}
	return func(c *elementConfig) {
		c.maxSides = n
	}
}

// WithMaxSpikes sets S_max, the spike count reached by Star at t = 1.
// Panics when n < minSides.
func WithMaxSpikes(n int) Option {
	if n < minSides {
		panic(fmt.Sprintf("elements: WithMaxSpikes(%d) < %d", n, minSides))
	}
	return func(c *elementConfig) {
		c.maxSpikes = n
	}
}

// WithMaxDents sets D_max, the tooth count reached by Comb at t = 1.
// Panics on negative values.
func WithMaxDents(n int) Option {
	if n < 0 {
		panic(fmt.Sprintf("elements: WithMaxDents(%d) < 0", n))
	}
	return func(c *elementConfig) {
		c.maxDents = n
	}
}

// WithStarPull sets the fraction of the distance to the centroid by which
// Star moves its inner vertices. Panics outside (0,1).
func WithStarPull(f float64) Option {
	if !(f > 0 && f < 1) {
		panic(fmt.Sprintf("elements: WithStarPull(%g) outside (0,1)", f))
	}
	return func(c *elementConfig) {
		c.starPull = f
	}
}
