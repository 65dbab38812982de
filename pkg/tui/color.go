// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tui decides when terminal output may be styled.
package tui

import (
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

type Colorizer struct {
	Enabled bool
}

// NewColorizer returns a Colorizer that is enabled only if enabled is true
// and the environment does not opt out through NO_COLOR or a dumb TERM.
func NewColorizer(enabled bool) Colorizer {
	if !enabled {
		return Colorizer{}
	}
	if os.Getenv("NO_COLOR") != "" {
		return Colorizer{}
	}
	t := os.Getenv("TERM")
	if t == "" || t == "dumb" {
		return Colorizer{}
	}
	return Colorizer{Enabled: true}
}

// ForWriter returns a Colorizer for output written to w. Only terminals get
// color.
func ForWriter(w io.Writer) Colorizer {
	f, ok := w.(*os.File)
	if !ok {
		return Colorizer{}
	}
	return NewColorizer(term.IsTerminal(int(f.Fd())))
}

// Wrap styles text with attrs when c is enabled.
func (c Colorizer) Wrap(text string, attrs ...color.Attribute) string {
	if !c.Enabled || len(attrs) == 0 {
		return text
	}
	s := color.New(attrs...)
	s.EnableColor()
	return s.Sprint(text)
}
