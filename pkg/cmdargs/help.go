// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdargs

//go:generate go run tailscale.com/cmd/cloner -type=BindingInfo --copyright=false

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/yeetrun/cmdargs/pkg/tui"
)

// HelpConfig holds the free text printed around the generated help.
type HelpConfig struct {
	Prologue string // Printed after the usage line.
	Epilogue string // Printed last.
}

// HelpConfigHolder is implemented by schema results that carry their own
// HelpConfig. Parse applies it after the schema callback returns.
type HelpConfigHolder interface {
	HelpConfig() HelpConfig
}

// SetHelpConfig sets the prologue and epilogue of p's help output.
func (p *Parser) SetHelpConfig(c HelpConfig) {
	p.helpConfig = c
}

// BindingInfo describes a declared binding for help rendering.
type BindingInfo struct {
	Kind       Kind
	Keys       []string // Empty for positionals and subcommands.
	Label      string   // Value label, or the subcommand name.
	Help       string
	Mapped     bool
	Choices    []string // Sorted enumeration keys of a mapped binding.
	Default    string
	HasDefault bool
}

// Usage is everything a HelpFunc needs to render help for one parser.
type Usage struct {
	Program  string
	Prologue string
	Epilogue string
	Bindings []BindingInfo
}

// HelpFunc renders u to w. It must not modify parser state.
type HelpFunc func(w io.Writer, u Usage) error

// Bindings returns the bindings declared so far, in declaration order.
func (p *Parser) Bindings() []BindingInfo {
	out := make([]BindingInfo, 0, len(p.bindings))
	for _, b := range p.bindings {
		bi := BindingInfo{
			Kind:       b.kind,
			Keys:       b.keys,
			Label:      b.label,
			Help:       b.help,
			Mapped:     b.mapped,
			Choices:    b.choices,
			Default:    b.def,
			HasDefault: b.hasDef,
		}
		out = append(out, *bi.Clone())
	}
	return out
}

func (p *Parser) usage() Usage {
	return Usage{
		Program:  p.programName,
		Prologue: p.helpConfig.Prologue,
		Epilogue: p.helpConfig.Epilogue,
		Bindings: p.Bindings(),
	}
}

func (p *Parser) printHelp() error {
	help := p.Help
	if help == nil {
		help = WriteHelp
	}
	return help(p.Stdout, p.usage())
}

// helpSection is one titled table of the default help layout.
type helpSection struct {
	title string
	kinds []Kind
}

var helpSections = []helpSection{
	{"Required args:", []Kind{KindRequired}},
	{"Positional args:", []Kind{KindPositional}},
	{"Optional args:", []Kind{KindOptional, KindOptionalDefault}},
	{"Flag args:", []Kind{KindFlag}},
	{"Subcommands:", []Kind{KindSubcommand}},
}

// WriteHelp is the default HelpFunc. It prints a usage line, the prologue,
// one table per kind of binding and the epilogue.
func WriteHelp(w io.Writer, u Usage) error {
	c := tui.ForWriter(w)
	var sb strings.Builder
	sb.WriteString(c.Wrap("Usage:", color.Bold))
	sb.WriteString(" ")
	sb.WriteString(usageLine(u))
	sb.WriteString("\n")
	if u.Prologue != "" {
		fmt.Fprintf(&sb, "\n%s\n", strings.TrimRight(u.Prologue, "\n"))
	}
	for _, s := range helpSections {
		var rows []BindingInfo
		for _, b := range u.Bindings {
			for _, k := range s.kinds {
				if b.Kind == k {
					rows = append(rows, b)
				}
			}
		}
		if len(rows) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "\n%s\n", c.Wrap(s.title, color.Bold))
		tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
		for _, b := range rows {
			writeHelpRow(tw, b)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	if u.Epilogue != "" {
		fmt.Fprintf(&sb, "\n%s\n", strings.TrimRight(u.Epilogue, "\n"))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeHelpRow(w io.Writer, b BindingInfo) {
	name := b.Label
	if len(b.Keys) > 0 {
		name = strings.Join(b.Keys, ", ")
		if b.Kind != KindFlag {
			name += " " + b.Label
		}
	}
	help := b.Help
	if b.HasDefault {
		help = strings.TrimSpace(fmt.Sprintf("%s (default %s)", help, b.Default))
	}
	fmt.Fprintf(w, "  %s\t%s\n", name, help)
	if len(b.Choices) > 0 {
		fmt.Fprintf(w, "  \t%s={%s}\n", b.Label, strings.Join(b.Choices, ","))
	}
}

// usageLine lists required options, optional options, flags, positionals
// and finally the subcommand placeholder.
func usageLine(u Usage) string {
	parts := []string{u.Program}
	var positionals []string
	hasSubcommands := false
	for _, k := range []Kind{KindRequired, KindOptional, KindOptionalDefault, KindFlag} {
		for _, b := range u.Bindings {
			if b.Kind != k {
				continue
			}
			switch k {
			case KindRequired:
				parts = append(parts, b.Keys[0]+"="+b.Label)
			case KindFlag:
				parts = append(parts, "["+b.Keys[0]+"]")
			default:
				parts = append(parts, "["+b.Keys[0]+"="+b.Label+"]")
			}
		}
	}
	for _, b := range u.Bindings {
		switch b.Kind {
		case KindPositional:
			positionals = append(positionals, b.Label)
		case KindSubcommand:
			hasSubcommands = true
		}
	}
	if len(positionals) > 0 {
		parts = append(parts, "[--]")
		parts = append(parts, positionals...)
	}
	if hasSubcommands {
		parts = append(parts, "SUBCOMMAND [ARGS]")
	}
	return strings.Join(parts, " ")
}
