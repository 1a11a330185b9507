// SPDX-License-Identifier: MIT
// Package: pemesh/dataset

package dataset

// Progress receives (index, total, path) after every saved or loaded mesh.
type Progress func(i, n int, path string)

type config struct {
	progress Progress
	geojson  bool
}

// Option customises SaveOnDisk and LoadDir.
type Option func(*config)

// WithProgress installs a progress callback. Panics on nil.
func WithProgress(fn Progress) Option {
	if fn == nil {
		panic("dataset: WithProgress(nil)")
	}
	return func(c *config) { c.progress = fn }
}

// WithGeoJSON makes SaveOnDisk also write <stem>.geojson.
func WithGeoJSON() Option {
	return func(c *config) { c.geojson = true }
}

func newConfig(opts []Option) config {
	c := config{progress: func(int, int, string) {}}
	for _, o := range opts {
		o(&c)
	}
	return c
}
