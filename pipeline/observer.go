// SPDX-License-Identifier: MIT
// Package: pemesh/pipeline
//
// observer.go — run signalling.

package pipeline

import "log/slog"

// Observer receives run events. Calls come from the orchestrating
// goroutine, never concurrently.
type Observer interface {
	// Progress reports that step i of n finished (1-based). Long steps
	// also report intermediate events, with i counting finished steps.
	Progress(i, n int, msg string)
	Warn(msg string)
	Error(kind Kind, msg string)
	Done()
}

// NopObserver discards every event.
type NopObserver struct{}

func (NopObserver) Progress(int, int, string) {}
func (NopObserver) Warn(string)               {}
func (NopObserver) Error(Kind, string)        {}
func (NopObserver) Done()                     {}

// LogObserver writes events as structured log records.
type LogObserver struct {
	log *slog.Logger
}

// NewLogObserver wraps l; nil selects slog.Default().
func NewLogObserver(l *slog.Logger) *LogObserver {
	if l == nil {
		l = slog.Default()
	}
	return &LogObserver{log: l}
}

func (o *LogObserver) Progress(i, n int, msg string) {
	o.log.Info(msg, slog.Int("index", i), slog.Int("total", n))
}

func (o *LogObserver) Warn(msg string) { o.log.Warn(msg) }

func (o *LogObserver) Error(kind Kind, msg string) {
	o.log.Error(msg, slog.String("kind", kind.String()))
}

func (o *LogObserver) Done() { o.log.Info("done") }
