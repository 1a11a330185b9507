// SPDX-License-Identifier: MIT
// Package: pemesh/aggregate
//
// options.go — functional options for Run.

package aggregate

import "fmt"

// Option customizes Run.
type Option func(*config)

type config struct {
	seed      int64
	maxMerges int // 0 = unlimited
	progress  func(merged, polys int)
}

func newConfig(opts ...Option) config {
	var c config
	for _, o := range opts {
		o(&c)
	}
	return c
}

// WithSeed seeds the Random policy; 0 selects the default seed.
func WithSeed(seed int64) Option {
	return func(c *config) { c.seed = seed }
}

// WithMaxMerges stops after n accepted merges. Panics when n < 0.
func WithMaxMerges(n int) Option {
	if n < 0 {
		panic(fmt.Sprintf("aggregate: WithMaxMerges(%d) < 0", n))
	}
	return func(c *config) { c.maxMerges = n }
}

// WithProgress registers a callback invoked after every accepted merge with
// the merge count so far and the current polygon count.
func WithProgress(fn func(merged, polys int)) Option {
	if fn == nil {
		panic("aggregate: WithProgress(nil)")
	}
	return func(c *config) { c.progress = fn }
}
