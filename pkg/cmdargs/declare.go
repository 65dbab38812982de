// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdargs

import (
	"maps"
	"regexp"
	"slices"
	"strconv"
)

var (
	keyPattern        = regexp.MustCompile(`^-([a-zA-Z]|-[a-zA-Z][a-zA-Z-]*)$`)
	subcommandPattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
)

// declareKeys validates keys and reserves them for a new binding.
func (p *Parser) declareKeys(kind Kind, keys []string, label, help string) *binding {
	if len(keys) == 0 {
		p.initPanic("%s binding %q declares no keys", kind, label)
	}
	for _, k := range keys {
		if !keyPattern.MatchString(k) {
			p.initPanic("invalid key %q, keys look like -k or --long-key", k)
		}
		if _, ok := builtinCommand(k); ok {
			p.initPanic("key %q is reserved for a builtin command", k)
		}
		if p.keys.Contains(k) {
			p.initPanic("key %q is already declared", k)
		}
		p.keys.Add(k)
	}
	return &binding{
		kind:  kind,
		keys:  slices.Clone(keys),
		label: label,
		help:  help,
	}
}

// checkMapping validates an enumeration map and returns its sorted keys.
func checkMapping[T any](p *Parser, keys []string, m map[string]T) []string {
	if len(m) == 0 {
		p.initPanic("mapped binding %v has an empty enumeration", keys)
	}
	choices := slices.Sorted(maps.Keys(m))
	for _, c := range choices {
		if keyPattern.MatchString(c) {
			p.initPanic("enumeration value %q of %v looks like an argument key", c, keys)
		}
	}
	return choices
}

// Optional declares an option that resolves to nil when absent.
func Optional[T any](p *Parser, keys []string, label, help string, coerce func(string) (T, error)) *Arg[*T] {
	b := p.declareKeys(KindOptional, keys, label, help)
	return register(p, b, func() (*T, error) {
		raw, ok := p.lookup(b.keys)
		if !ok {
			return nil, nil
		}
		v, err := apply(b, raw, coerce)
		if err != nil {
			return nil, err
		}
		return &v, nil
	})
}

// OptionalDefault declares an option that resolves to def when absent.
func OptionalDefault[T any](p *Parser, keys []string, def T, label, help string, coerce func(string) (T, error)) *Arg[T] {
	b := p.declareKeys(KindOptionalDefault, keys, label, help)
	b.def, b.hasDef = defaultText(def)
	return register(p, b, func() (T, error) {
		raw, ok := p.lookup(b.keys)
		if !ok {
			return def, nil
		}
		return apply(b, raw, coerce)
	})
}

// Required declares an option whose absence fails the parse.
func Required[T any](p *Parser, keys []string, label, help string, coerce func(string) (T, error)) *Arg[T] {
	b := p.declareKeys(KindRequired, keys, label, help)
	return register(p, b, func() (T, error) {
		raw, ok := p.lookup(b.keys)
		if !ok {
			var zero T
			return zero, missing(b)
		}
		return apply(b, raw, coerce)
	})
}

// OptionalMapped declares an option restricted to the keys of m. It resolves
// to the mapped value, or nil when absent.
func OptionalMapped[T any](p *Parser, keys []string, label, help string, m map[string]T) *Arg[*T] {
	b := p.declareKeys(KindOptional, keys, label, help)
	b.mapped = true
	b.choices = checkMapping(p, keys, m)
	m = maps.Clone(m)
	return register(p, b, func() (*T, error) {
		raw, ok := p.lookup(b.keys)
		if !ok {
			return nil, nil
		}
		v, err := mapValue(b, raw, m)
		if err != nil {
			return nil, err
		}
		return &v, nil
	})
}

// OptionalMappedDefault is OptionalMapped with a default for when the option
// is absent.
func OptionalMappedDefault[T any](p *Parser, keys []string, def T, label, help string, m map[string]T) *Arg[T] {
	b := p.declareKeys(KindOptionalDefault, keys, label, help)
	b.mapped = true
	b.choices = checkMapping(p, keys, m)
	b.def, b.hasDef = mappedDefaultText(m, def)
	m = maps.Clone(m)
	return register(p, b, func() (T, error) {
		raw, ok := p.lookup(b.keys)
		if !ok {
			return def, nil
		}
		return mapValue(b, raw, m)
	})
}

// RequiredMapped declares a required option restricted to the keys of m.
func RequiredMapped[T any](p *Parser, keys []string, label, help string, m map[string]T) *Arg[T] {
	b := p.declareKeys(KindRequired, keys, label, help)
	b.mapped = true
	b.choices = checkMapping(p, keys, m)
	m = maps.Clone(m)
	return register(p, b, func() (T, error) {
		raw, ok := p.lookup(b.keys)
		if !ok {
			var zero T
			return zero, missing(b)
		}
		return mapValue(b, raw, m)
	})
}

// Flag declares a boolean switch. It resolves to def when absent and to !def
// when present.
func (p *Parser) Flag(keys []string, help string, def bool) *Arg[bool] {
	b := p.declareKeys(KindFlag, keys, "", help)
	b.def, b.hasDef = strconv.FormatBool(def), true
	return register(p, b, func() (bool, error) {
		raw, ok := p.lookup(b.keys)
		if ok && raw == present {
			return !def, nil
		}
		return def, nil
	})
}

// Positional declares the next positional argument. Positionals bind in
// declaration order.
func Positional[T any](p *Parser, label, help string, coerce func(string) (T, error)) *Arg[T] {
	if label == "" {
		p.initPanic("positional argument needs a label")
	}
	if p.labels.Contains(label) {
		p.initPanic("positional label %q is already declared", label)
	}
	p.labels.Add(label)
	b := &binding{kind: KindPositional, label: label, help: help}
	return register(p, b, func() (T, error) {
		i, ok := p.positionals[label]
		if !ok {
			var zero T
			return zero, &ParseError{Binding: label, Err: ErrNotParsed}
		}
		return apply(b, p.args[i], coerce)
	})
}
