// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdargs

import (
	"slices"
	"strings"

	"tailscale.com/util/mak"
)

const (
	// separator ends option scanning; everything after it is positional.
	separator = "--"
	// present is the raw value stored for a flag found in argv.
	present = "true"
)

// optionKinds is the order in which option keys are looked up.
var optionKinds = []Kind{KindRequired, KindOptional, KindOptionalDefault}

// tokenize scans p.args once, filling p.raw with option values and
// p.positionals with the argv index of each declared positional.
func (p *Parser) tokenize() error {
	i := 0
scan:
	for i < len(p.args) {
		arg := p.args[i]
		switch {
		case arg == separator:
			i++
			break scan
		case strings.Contains(arg, "="):
			k, v, _ := strings.Cut(arg, "=")
			p.set(k, v)
			i++
		case strings.HasPrefix(arg, "--"):
			n, err := p.longOption(i)
			if err != nil {
				return err
			}
			i += n
		case len(arg) >= 2 && arg[0] == '-':
			n, err := p.shortOption(i)
			if err != nil {
				return err
			}
			i += n
		default:
			break scan
		}
	}
	return p.bindPositionals(i)
}

func (p *Parser) set(key, value string) {
	if prev, ok := p.raw[key]; ok {
		p.Logf("cmdargs: %s: %s=%q overrides %q", p.programName, key, value, prev)
	}
	mak.Set(&p.raw, key, value)
}

// longOption handles a --key token at p.args[i] and reports how many tokens
// it consumed.
func (p *Parser) longOption(i int) (int, error) {
	arg := p.args[i]
	if p.isFlag(arg) {
		p.set(arg, present)
		return 1, nil
	}
	if !p.isOption(arg) {
		return 0, malformed(arg, "no key found for arg %s", arg)
	}
	if i+1 >= len(p.args) {
		return 0, malformed(arg, "no value specified for arg %s", arg)
	}
	p.set(arg, p.args[i+1])
	return 2, nil
}

// shortOption handles a -k token at p.args[i]: a flag or a stack of flags,
// an option followed by its value, or an option with an inline value.
func (p *Parser) shortOption(i int) (int, error) {
	arg := p.args[i]
	key := arg[:2]
	if p.isFlag(key) {
		p.set(key, present)
		for _, r := range arg[2:] {
			k := "-" + string(r)
			if !p.isFlag(k) {
				return 0, malformed(arg, "unknown flag specified: %c", r)
			}
			p.set(k, present)
		}
		return 1, nil
	}
	if !p.isOption(key) {
		return 0, malformed(arg, "no key found for arg %s", arg)
	}
	if arg != key {
		p.set(key, arg[len(key):])
		return 1, nil
	}
	if i+1 >= len(p.args) || looksLikeKey(p.args[i+1]) {
		return 0, malformed(arg, "no value specified for arg %s", key)
	}
	p.set(key, p.args[i+1])
	return 2, nil
}

// bindPositionals maps the tokens from start onward to the declared
// positionals.
func (p *Parser) bindPositionals(start int) error {
	var labels []string
	for _, b := range p.bindings {
		if b.kind == KindPositional {
			labels = append(labels, b.label)
		}
	}
	rest := p.args[start:]
	switch {
	case len(rest) > len(labels):
		extra := rest[len(labels)]
		return malformed(extra, "unexpected arg: %s", extra)
	case len(rest) < len(labels):
		return malformed("", "positional arg(s) not provided: %s", strings.Join(labels[len(rest):], ", "))
	}
	for j, label := range labels {
		v := rest[j]
		if strings.TrimSpace(v) == "" {
			return malformed(v, "positional arg %s must not be blank", label)
		}
		mak.Set(&p.positionals, label, start+j)
	}
	return nil
}

func (p *Parser) isFlag(key string) bool {
	for _, b := range p.bindings {
		if b.kind == KindFlag && slices.Contains(b.keys, key) {
			return true
		}
	}
	return false
}

func (p *Parser) isOption(key string) bool {
	for _, kind := range optionKinds {
		for _, b := range p.bindings {
			if b.kind == kind && slices.Contains(b.keys, key) {
				return true
			}
		}
	}
	return false
}

// looksLikeKey reports whether s would be read as an argument key rather
// than a value. Negative numbers are values.
func looksLikeKey(s string) bool {
	return strings.HasPrefix(s, "-") && !isNumeric(s)
}

// isNumeric checks if a string is a number (e.g., "10", "-10", "3.14", "-3.14")
func isNumeric(s string) bool {
	if len(s) == 0 {
		return false
	}
	start := 0
	if s[0] == '-' || s[0] == '+' {
		if len(s) == 1 {
			return false
		}
		start = 1
	}
	hasDigit, hasDot := false, false
	for i := start; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			hasDigit = true
		case c == '.' && !hasDot:
			hasDot = true
		default:
			return false
		}
	}
	return hasDigit
}
