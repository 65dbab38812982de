// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdargs

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is.
var (
	// ErrBuiltinCommand matches every *BuiltinCommandError.
	ErrBuiltinCommand = errors.New("builtin command processed")
	// ErrRequiredMissing is wrapped by the ParseError of a required binding
	// that had no value in argv.
	ErrRequiredMissing = errors.New("required value not found")
	// ErrMappingNotFound is wrapped when a mapped binding receives a token
	// that is not a key of its enumeration.
	ErrMappingNotFound = errors.New("mapping not found")
	// ErrCast is wrapped when no coercion function was given and the raw
	// string is not assignable to the binding's type.
	ErrCast = errors.New("cannot cast value")
	// ErrNotParsed is returned by Arg.Get when the owning parser has not
	// tokenized argv yet.
	ErrNotParsed = errors.New("arguments not parsed yet")
)

// InitializationError reports a schema authoring mistake such as a malformed
// or duplicate key. It is raised as a panic at declaration time.
type InitializationError struct {
	Program string
	Msg     string
}

func (e *InitializationError) Error() string {
	if e.Program == "" {
		return "cmdargs: " + e.Msg
	}
	return fmt.Sprintf("cmdargs: %s: %s", e.Program, e.Msg)
}

// MalformedArgsError is returned when argv cannot be tokenized against the
// declared schema.
type MalformedArgsError struct {
	Arg string // The offending token, if any.
	Msg string
}

func (e *MalformedArgsError) Error() string {
	return e.Msg
}

// ParseError is returned when a binding's raw value could not be turned into
// its typed value.
type ParseError struct {
	Binding string // "[-k, --key]" for options, the label for positionals
	Value   string // The raw value, empty when absent.
	Err     error
}

func (e *ParseError) Error() string {
	if e.Binding == "" {
		return e.Err.Error()
	}
	return e.Binding + " " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// BuiltinCommandError is returned when argv[0] was one of the reserved
// builtin tokens and the builtin has already been handled.
type BuiltinCommandError struct {
	Command string // "help", "version" or "quit"
}

func (e *BuiltinCommandError) Error() string {
	return "builtin command processed: " + e.Command
}

func (e *BuiltinCommandError) Is(target error) bool {
	return target == ErrBuiltinCommand
}

func (p *Parser) initPanic(format string, args ...any) {
	panic(&InitializationError{Program: p.programName, Msg: fmt.Sprintf(format, args...)})
}

func malformed(arg, format string, args ...any) *MalformedArgsError {
	return &MalformedArgsError{Arg: arg, Msg: fmt.Sprintf(format, args...)}
}
