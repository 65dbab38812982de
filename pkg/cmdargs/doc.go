// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmdargs parses command-line arguments against a schema declared in
// code.
//
// A schema is a function that declares options, flags, positionals and
// subcommands on a *Parser and returns a value holding the resulting *Arg
// handles. Parse runs the schema, scans argv once and resolves every
// declared binding before reporting success:
//
//	type Args struct {
//	    Out     *cmdargs.Arg[*string]
//	    Verbose *cmdargs.Arg[bool]
//	    Src     *cmdargs.Arg[string]
//	}
//
//	p := cmdargs.New(os.Args[1:], "tool", "1.0.0")
//	args, err := cmdargs.Parse(p, func(p *cmdargs.Parser) *Args {
//	    return &Args{
//	        Out:     cmdargs.Optional(p, []string{"-o", "--out"}, "OUT", "output file", coerce.String),
//	        Verbose: p.Flag([]string{"-v", "--verbose"}, "verbose logging", false),
//	        Src:     cmdargs.Positional(p, "SRC", "input file", coerce.String),
//	    }
//	})
//	if errors.Is(err, cmdargs.ErrBuiltinCommand) {
//	    return // help or version was printed
//	}
//	if err != nil {
//	    os.Exit(2) // the error has already been reported
//	}
//	fmt.Println(args.Src.Value())
//
// # Argument syntax
//
// Keys are either short (-k) or long (--key). Values follow the key as the
// next token (-k v, --key v), inline (-kv), or after an equals sign
// (--key=v). Short flags stack (-abc). The token "--" ends option scanning.
// Scanning also stops at the first token that does not look like a key, and
// the remaining tokens fill the positionals in declaration order. When a key
// is given more than once the last occurrence wins.
//
// # Builtin commands
//
// When argv[0] is help, --help, version, --version, q, quit, exit, --quit or
// --exit, Parse handles it and returns a *BuiltinCommandError without looking
// at the rest of argv. An empty argv is treated as help.
//
// # Subcommands
//
// Subcommand declares a nested schema. If argv[0] names it, argv[1:] is
// parsed by a child parser and the parent's own options are not read.
//
// # Errors
//
// Mistakes in the schema itself (bad or duplicate keys, empty enumerations)
// panic with an *InitializationError while the schema runs. Problems with
// argv are returned as *MalformedArgsError or *ParseError after being passed
// to Parser.ReportError.
package cmdargs
