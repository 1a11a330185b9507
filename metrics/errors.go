// SPDX-License-Identifier: MIT
// Package: pemesh/metrics
//
// errors.go — sentinel errors for the metrics package.

package metrics

import "errors"

var (
	// ErrUnknownIndicator indicates an acronym outside the catalogue.
	ErrUnknownIndicator = errors.New("metrics: unknown indicator")
	// ErrReport indicates a malformed metrics report line.
	ErrReport = errors.New("metrics: malformed report")
)
