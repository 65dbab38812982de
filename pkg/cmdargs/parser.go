// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdargs

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"slices"
	"sync/atomic"

	"github.com/Masterminds/semver/v3"
	"tailscale.com/types/lazy"
	"tailscale.com/types/logger"
	"tailscale.com/util/set"
)

// Parser resolves a declared schema against an argument vector. A Parser is
// used for a single Parse; the exported fields may be set before that.
type Parser struct {
	// Stdout receives help and version output. Defaults to os.Stdout.
	Stdout io.Writer
	// Stderr receives error reports. Defaults to os.Stderr.
	Stderr io.Writer
	// Logf receives debug logging. Defaults to logger.Discard.
	Logf logger.Logf
	// Help renders the help text. Defaults to WriteHelp.
	Help HelpFunc
	// ReportError is called with the message of a MalformedArgsError or
	// ParseError before Parse returns it. Defaults to printing
	// "error: <msg>" to Stderr.
	ReportError func(msg string)

	args        []string
	programName string
	version     string

	bindings    []*binding
	keys        set.Set[string]
	labels      set.Set[string]
	subcommands set.Set[string]
	active      *binding
	helpConfig  HelpConfig

	raw         map[string]string // option key => raw value
	positionals map[string]int    // positional label => index into args
	resolvable  atomic.Bool

	outcome lazy.SyncValue[outcome]
}

type outcome struct {
	value   any
	initErr *InitializationError
}

// New returns a parser over args (without the program name). An empty
// version is reported as "<programName> version unknown".
func New(args []string, programName, version string) *Parser {
	if version == "" {
		version = programName + " version unknown"
	}
	return &Parser{
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Logf:        logger.Discard,
		args:        slices.Clone(args),
		programName: programName,
		version:     version,
		keys:        make(set.Set[string]),
		labels:      make(set.Set[string]),
		subcommands: make(set.Set[string]),
	}
}

// ProgramName returns the name used in help output. Child parsers are named
// "<parent> <subcommand>".
func (p *Parser) ProgramName() string {
	return p.programName
}

// Parse runs build against p to declare the schema and construct the result,
// then resolves argv. The outcome is memoized: later calls return the same
// result without running build again.
//
// A builtin command in argv[0] returns a *BuiltinCommandError. Tokenization
// failures return a *MalformedArgsError and resolution failures a
// *ParseError; both are passed to p.ReportError first. Schema mistakes panic
// with an *InitializationError, on this and every later call.
func Parse[T any](p *Parser, build func(*Parser) T) (T, error) {
	o, err := p.outcome.GetErr(func() (outcome, error) {
		return run(p, build)
	})
	if o.initErr != nil {
		panic(o.initErr)
	}
	var zero T
	if err != nil {
		return zero, err
	}
	v, ok := o.value.(T)
	if !ok {
		return zero, fmt.Errorf("cmdargs: %s already parsed into %T, not %v", p.programName, o.value, reflect.TypeFor[T]())
	}
	return v, nil
}

func run[T any](p *Parser, build func(*Parser) T) (o outcome, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		ie, ok := r.(*InitializationError)
		if !ok {
			panic(r)
		}
		o, err = outcome{initErr: ie}, ie
	}()
	defer p.resolvable.Store(true)

	result := build(p)
	if h, ok := any(result).(HelpConfigHolder); ok {
		p.helpConfig = h.HelpConfig()
	}

	if cmd, ok := p.builtin(); ok {
		return outcome{}, &BuiltinCommandError{Command: cmd}
	}

	if p.active != nil {
		// The child reports its own failures.
		if err := p.active.force(); err != nil {
			return outcome{}, err
		}
		return outcome{value: result}, nil
	}

	if err := p.tokenize(); err != nil {
		p.report(err)
		return outcome{}, err
	}
	p.resolvable.Store(true)
	p.Logf("cmdargs: %s: %d options, %d positionals", p.programName, len(p.raw), len(p.positionals))

	for _, b := range p.bindings {
		if err := b.force(); err != nil {
			p.report(err)
			return outcome{}, err
		}
	}
	return outcome{value: result}, nil
}

var builtins = map[string]string{
	"help":      "help",
	"--help":    "help",
	"version":   "version",
	"--version": "version",
	"q":         "quit",
	"quit":      "quit",
	"exit":      "quit",
	"--quit":    "quit",
	"--exit":    "quit",
}

func builtinCommand(tok string) (string, bool) {
	cmd, ok := builtins[tok]
	return cmd, ok
}

// builtin handles a builtin command in argv[0]. An empty argv is help.
func (p *Parser) builtin() (string, bool) {
	cmd := "help"
	if len(p.args) > 0 {
		var ok bool
		if cmd, ok = builtinCommand(p.args[0]); !ok {
			return "", false
		}
	}
	p.Logf("cmdargs: %s: builtin %q", p.programName, cmd)
	switch cmd {
	case "help":
		if err := p.printHelp(); err != nil {
			p.Logf("cmdargs: %s: writing help: %v", p.programName, err)
		}
	case "version":
		fmt.Fprintln(p.Stdout, p.versionText())
	}
	return cmd, true
}

// versionText formats a semantic version as "<program> vX.Y.Z" and prints
// anything else verbatim.
func (p *Parser) versionText() string {
	if v, err := semver.StrictNewVersion(p.version); err == nil {
		return fmt.Sprintf("%s v%s", p.programName, v)
	}
	if v, err := semver.NewVersion(p.version); err == nil && v.Original() == "v"+v.String() {
		return fmt.Sprintf("%s %s", p.programName, v.Original())
	}
	return p.version
}
