// SPDX-License-Identifier: MIT

// Command pemesh builds, transforms and evaluates polygon mesh datasets.
//
// Usage:
//
//	pemesh [-v] [-log-format text|json] <command> [flags]
//
// Commands:
//
//	generate   build a dataset from a YAML configuration and a placement set
//	metrics    compute and save metric reports for a directory of OBJ meshes
//	aggregate  merge background polygons of a directory of meshes
//	mirror     replace every mesh of a directory by its four-fold reflection
//	wait       block until the external solver marks an output as done
//	correlate  correlate mesh metrics with the solver error file, optionally
//	           storing the errors in the catalogue
//	solution   export computed and exact solver solutions as GeoJSON fields
//	done       write the completion marker for an output (solver side)
//
// Exit codes: 0 success, 1 unexpected failure, 2 configuration rejected,
// 3 malformed input mesh or outline, 4 triangulation failed, 5 cancelled.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, env *env, args []string) error
}

var commands = []command{
	{"generate", "build a dataset from a configuration", cmdGenerate},
	{"metrics", "compute metric reports for a mesh directory", cmdMetrics},
	{"aggregate", "aggregate the meshes of a directory", cmdAggregate},
	{"mirror", "mirror the meshes of a directory", cmdMirror},
	{"wait", "wait for the solver completion marker", cmdWait},
	{"correlate", "correlate metrics with solver errors", cmdCorrelate},
	{"solution", "export solver solutions as GeoJSON vertex fields", cmdSolution},
	{"done", "write the solver completion marker", cmdDone},
}

// env carries what every command needs.
type env struct {
	log    *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("pemesh", flag.ContinueOnError)
	global.SetOutput(stderr)
	verbose := global.Bool("v", false, "log debug records")
	format := global.String("log-format", "text", "log format: text or json")
	global.Usage = func() {
		fmt.Fprintln(stderr, "usage: pemesh [-v] [-log-format text|json] <command> [flags]")
		for _, c := range commands {
			fmt.Fprintf(stderr, "  %-10s %s\n", c.name, c.usage)
		}
	}
	if err := global.Parse(args); err != nil {
		return exitCode(fmt.Errorf("%w: %w", errUsage, err))
	}

	log, err := newLogger(stderr, *format, *verbose)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitConfig
	}
	if global.NArg() == 0 {
		global.Usage()
		return exitConfig
	}

	name, rest := global.Arg(0), global.Args()[1:]
	for _, c := range commands {
		if c.name != name {
			continue
		}
		e := &env{log: log.With(slog.String("cmd", name)), stdout: stdout, stderr: stderr}
		err := c.run(ctx, e, rest)
		code := exitCode(err)
		if err != nil && !errors.Is(err, flag.ErrHelp) {
			e.log.Error(err.Error(), slog.Int("exit", code))
		}
		return code
	}
	fmt.Fprintf(stderr, "pemesh: unknown command %q\n", name)
	global.Usage()
	return exitConfig
}

func newLogger(w io.Writer, format string, verbose bool) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("pemesh: log format %q: %w", format, errUsage)
}
