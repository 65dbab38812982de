// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdargs

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
)

// Kind identifies the variant of a declared binding.
type Kind int

const (
	KindOptional Kind = iota
	KindOptionalDefault
	KindRequired
	KindFlag
	KindPositional
	KindSubcommand
)

func (k Kind) String() string {
	switch k {
	case KindOptional:
		return "optional"
	case KindOptionalDefault:
		return "optional-default"
	case KindRequired:
		return "required"
	case KindFlag:
		return "flag"
	case KindPositional:
		return "positional"
	case KindSubcommand:
		return "subcommand"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// binding is the type-erased registry entry behind every Arg.
type binding struct {
	kind    Kind
	keys    []string // empty for positionals and subcommands
	label   string   // value label, or the subcommand name
	help    string
	mapped  bool
	choices []string // sorted enumeration keys of a mapped binding
	def     string
	hasDef  bool

	force     func() error
	evaluated func() bool
}

// name is how errors refer to the binding.
func (b *binding) name() string {
	if len(b.keys) == 0 {
		return b.label
	}
	return "[" + strings.Join(b.keys, ", ") + "]"
}

// Arg is the handle returned by every declaration function. Its value is
// resolved on first access and memoized.
type Arg[T any] struct {
	p *Parser
	b *binding
	c cell[T]
}

// Get returns the resolved value, forcing it if needed. Before the owning
// parser has tokenized argv it returns ErrNotParsed without forcing.
func (a *Arg[T]) Get() (T, error) {
	if !a.c.evaluated() && !a.p.resolvable.Load() {
		var zero T
		return zero, ErrNotParsed
	}
	return a.c.get()
}

// Value is like Get but discards the error. It is meant for use after a
// successful Parse, when every binding has already resolved.
func (a *Arg[T]) Value() T {
	v, _ := a.Get()
	return v
}

// Evaluated reports whether the value has been resolved.
func (a *Arg[T]) Evaluated() bool {
	return a.c.evaluated()
}

func register[T any](p *Parser, b *binding, compute func() (T, error)) *Arg[T] {
	a := &Arg[T]{p: p, b: b}
	a.c.compute = compute
	b.force = func() error {
		_, err := a.c.get()
		return err
	}
	b.evaluated = a.c.evaluated
	p.bindings = append(p.bindings, b)
	return a
}

// lookup returns the raw value of the first key in keys present in argv.
func (p *Parser) lookup(keys []string) (string, bool) {
	for _, k := range keys {
		if v, ok := p.raw[k]; ok {
			return v, true
		}
	}
	return "", false
}

// apply runs coerce over raw. A nil coerce requires raw to already be a T.
func apply[T any](b *binding, raw string, coerce func(string) (T, error)) (v T, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if ie, ok := r.(*InitializationError); ok {
			panic(ie)
		}
		var zero T
		v, err = zero, &ParseError{Binding: b.name(), Value: raw, Err: fmt.Errorf("coercion of %q panicked: %v", raw, r)}
	}()
	if coerce == nil {
		t, ok := any(raw).(T)
		if !ok {
			return v, &ParseError{
				Binding: b.name(),
				Value:   raw,
				Err:     fmt.Errorf("%w %q to %v without a coercion function", ErrCast, raw, reflect.TypeFor[T]()),
			}
		}
		return t, nil
	}
	v, err = coerce(raw)
	if err != nil {
		return v, &ParseError{Binding: b.name(), Value: raw, Err: err}
	}
	return v, nil
}

func mapValue[T any](b *binding, raw string, m map[string]T) (T, error) {
	v, ok := m[raw]
	if !ok {
		return v, &ParseError{
			Binding: b.name(),
			Value:   raw,
			Err:     fmt.Errorf("%w for value %q, expected one of {%s}", ErrMappingNotFound, raw, strings.Join(b.choices, ",")),
		}
	}
	return v, nil
}

func missing(b *binding) *ParseError {
	return &ParseError{Binding: b.name(), Err: ErrRequiredMissing}
}

// defaultText renders def for help output. Nil pointers, maps and the like
// have no useful rendering and report false.
func defaultText(def any) (string, bool) {
	rv := reflect.ValueOf(def)
	if !rv.IsValid() {
		return "", false
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return "", false
		}
	}
	return fmt.Sprint(def), true
}

// mappedDefaultText renders def by the enumeration key it maps from.
func mappedDefaultText[T any](m map[string]T, def T) (string, bool) {
	for _, k := range slices.Sorted(maps.Keys(m)) {
		if reflect.DeepEqual(m[k], def) {
			return k, true
		}
	}
	return defaultText(def)
}
