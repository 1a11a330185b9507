// SPDX-License-Identifier: MIT
// Package: pemesh/pipeline

package pipeline

import (
	"fmt"
	"runtime"

	"github.com/google/uuid"
)

type config struct {
	observer Observer
	workers  int
	runID    uuid.UUID
}

// Option customises New.
type Option func(*config)

// WithObserver routes run events to obs. Panics on nil.
func WithObserver(obs Observer) Option {
	if obs == nil {
		panic("pipeline: WithObserver(nil)")
	}
	return func(c *config) { c.observer = obs }
}

// WithWorkers bounds metric extraction to n concurrent meshes. Panics when
// n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(fmt.Sprintf("pipeline: WithWorkers(%d) < 1", n))
	}
	return func(c *config) { c.workers = n }
}

// WithRunID fixes the run identifier instead of drawing a random one.
func WithRunID(id uuid.UUID) Option {
	return func(c *config) { c.runID = id }
}

func newConfig(opts []Option) config {
	c := config{observer: NopObserver{}, workers: runtime.GOMAXPROCS(0)}
	for _, o := range opts {
		o(&c)
	}
	if c.runID == uuid.Nil {
		c.runID = uuid.New()
	}
	return c
}
