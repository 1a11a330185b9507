// SPDX-License-Identifier: MIT
// Package: pemesh/solver
//
// marker.go — completion marker polling.

package solver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

const (
	methodWait = "WaitForCompletion"

	// MarkerSuffix is appended to the output path to form the marker file.
	MarkerSuffix = "_DONE"

	// DefaultPollInterval is used when WaitForCompletion gets a
	// non-positive interval.
	DefaultPollInterval = time.Second
)

// MarkerPath returns the completion marker of outPath.
func MarkerPath(outPath string) string { return outPath + MarkerSuffix }

// MarkDone creates the completion marker of outPath.
func MarkDone(outPath string) error {
	if err := os.WriteFile(MarkerPath(outPath), nil, 0o644); err != nil {
		return fmt.Errorf("MarkDone: %w: %w", ErrIO, err)
	}
	return nil
}

// WaitForCompletion polls for the marker of outPath every interval, removes
// it once seen and returns. It returns ctx.Err() when ctx ends first.
func WaitForCompletion(ctx context.Context, outPath string, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	marker := MarkerPath(outPath)
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		_, err := os.Stat(marker)
		switch {
		case err == nil:
			if err := os.Remove(marker); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("%s: %w: %w", methodWait, ErrIO, err)
			}
			return nil
		case !errors.Is(err, fs.ErrNotExist):
			return fmt.Errorf("%s: %w: %w", methodWait, ErrIO, err)
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%s: %w", methodWait, ctx.Err())
		case <-tick.C:
		}
	}
}
