// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The fpack command compresses and decompresses files and directory trees
// with zstd and prints a summary of the run.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"os"
	"slices"

	"github.com/fatih/color"
	"github.com/yeetrun/cmdargs/pkg/cli"
	"github.com/yeetrun/cmdargs/pkg/cmdargs"
	"github.com/yeetrun/cmdargs/pkg/tui"
	"tailscale.com/envknob"
	"tailscale.com/types/logger"
)

// version is set at link time.
var version string

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

type runner struct {
	stdout io.Writer
	stderr io.Writer
	logf   logger.Logf
}

func main() {
	r := &runner{stdout: os.Stdout, stderr: os.Stderr, logf: log.Printf}
	os.Exit(r.run(context.Background(), os.Args[1:]))
}

func (r *runner) run(ctx context.Context, args []string) int {
	p := cmdargs.New(args, "fpack", version)
	p.Stdout = r.stdout
	p.Stderr = r.stderr
	if envknob.Bool("FPACK_DEBUG_ARGS") {
		p.Logf = r.logf
	}
	a, err := cmdargs.Parse(p, cli.Declare)
	if errors.Is(err, cmdargs.ErrBuiltinCommand) {
		return exitOK
	}
	if err != nil {
		// Already reported by the parser.
		return exitUsage
	}

	switch {
	case a.ListLevels.Value():
		r.listLevels()
		return exitOK
	case a.Pack.Value() != nil:
		o, err := a.Pack.Value().Options()
		if err != nil {
			r.printError(err)
			return exitUsage
		}
		s, err := r.pack(ctx, o)
		return r.finish(o.Options, s, err)
	case a.Unpack.Value() != nil:
		o := a.Unpack.Value().Options()
		s, err := r.unpack(ctx, o)
		return r.finish(o, s, err)
	}
	r.printError(fmt.Errorf("no command given, run '%s --help'", p.ProgramName()))
	return exitUsage
}

// finish writes the summary of a successful run.
func (r *runner) finish(o cli.Options, s *Summary, err error) int {
	if err == nil {
		err = r.writeSummary(o, s)
	}
	if err != nil {
		r.printError(err)
		return exitError
	}
	return exitOK
}

func (r *runner) listLevels() {
	names := slices.SortedFunc(maps.Keys(cli.Levels), func(a, b string) int {
		return int(cli.Levels[a]) - int(cli.Levels[b])
	})
	for _, n := range names {
		fmt.Fprintln(r.stdout, n)
	}
}

func (r *runner) printError(err error) {
	fmt.Fprintf(r.stderr, "%s %v\n", tui.ForWriter(r.stderr).Wrap("error:", color.FgRed, color.Bold), err)
}
