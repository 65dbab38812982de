// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdargs

import "tailscale.com/types/logger"

// Subcommand declares a nested command. When argv[0] equals name the
// remaining arguments are parsed by a child parser built with build, the
// parent's own options are skipped, and the handle resolves to the child's
// result. Otherwise build still runs against a throwaway child so schema
// mistakes surface, and the handle resolves to nil.
func Subcommand[T any](p *Parser, name, help string, build func(*Parser) T) *Arg[*T] {
	if !subcommandPattern.MatchString(name) {
		p.initPanic("invalid subcommand name %q, names are alphanumeric", name)
	}
	if p.subcommands.Contains(name) {
		p.initPanic("subcommand %q is already declared", name)
	}
	p.subcommands.Add(name)
	b := &binding{kind: KindSubcommand, label: name, help: help}

	if p.active == nil && len(p.args) > 0 && p.args[0] == name {
		child := p.child(name, p.args[1:])
		p.active = b
		p.Logf("cmdargs: %s: subcommand %q active", p.programName, name)
		return register(p, b, func() (*T, error) {
			v, err := Parse(child, build)
			if err != nil {
				return nil, err
			}
			return &v, nil
		})
	}

	build(p.child(name, p.args))
	return register(p, b, func() (*T, error) {
		return nil, nil
	})
}

// child returns a parser for the subcommand name over args. It inherits the
// output and logging configuration of p.
func (p *Parser) child(name string, args []string) *Parser {
	c := New(args, p.programName+" "+name, p.version)
	c.Stdout = p.Stdout
	c.Stderr = p.Stderr
	c.Help = p.Help
	c.ReportError = p.ReportError
	c.Logf = logger.WithPrefix(p.Logf, name+": ")
	return c
}
