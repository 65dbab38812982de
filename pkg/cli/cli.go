// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli declares the command-line schema of fpack and resolves it,
// together with the optional config file, into per-command options.
package cli

import (
	"errors"
	"fmt"
	"regexp"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"github.com/yeetrun/cmdargs/pkg/cmdargs"
	"github.com/yeetrun/cmdargs/pkg/coerce"
)

// Format selects how the run summary is printed.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatEnv  Format = "env"
)

var formats = map[string]Format{
	"text": FormatText,
	"json": FormatJSON,
	"yaml": FormatYAML,
	"toml": FormatTOML,
	"env":  FormatEnv,
}

// Levels maps the --level choices to zstd encoder levels.
var Levels = map[string]zstd.EncoderLevel{
	"fastest": zstd.SpeedFastest,
	"default": zstd.SpeedDefault,
	"better":  zstd.SpeedBetterCompression,
	"best":    zstd.SpeedBestCompression,
}

// Config is the optional TOML file given with --config. Command-line
// options take precedence over it.
type Config struct {
	Level   string `toml:"level"`
	Exclude string `toml:"exclude"`
	Jobs    int    `toml:"jobs"`
}

// LoadConfig reads a Config from path. Unknown keys are an error.
func LoadConfig(path string) (*Config, error) {
	var c Config
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys in config %s: %s", path, strings.Join(keys, ", "))
	}
	if c.Jobs < 0 {
		return nil, fmt.Errorf("config %s: jobs must not be negative", path)
	}
	return &c, nil
}

// Args is the top-level schema.
type Args struct {
	ListLevels *cmdargs.Arg[bool]
	Pack       *cmdargs.Arg[*PackArgs]
	Unpack     *cmdargs.Arg[*UnpackArgs]
}

func (a *Args) HelpConfig() cmdargs.HelpConfig {
	return cmdargs.HelpConfig{
		Prologue: "fpack compresses files and directory trees with zstd.",
		Epilogue: "Run 'fpack pack --help' or 'fpack unpack --help' for command options.",
	}
}

// CommonArgs are declared by every subcommand.
type CommonArgs struct {
	Format      *cmdargs.Arg[Format]
	Config      *cmdargs.Arg[*Config]
	SummaryFile *cmdargs.Arg[*string]
	Jobs        *cmdargs.Arg[*int]
	Verbose     *cmdargs.Arg[bool]
	DryRun      *cmdargs.Arg[bool]
	Force       *cmdargs.Arg[bool]
	Src         *cmdargs.Arg[string]
	Dest        *cmdargs.Arg[string]
}

type PackArgs struct {
	CommonArgs
	Level   *cmdargs.Arg[*zstd.EncoderLevel]
	Exclude *cmdargs.Arg[*regexp.Regexp]
	RunID   *cmdargs.Arg[*uuid.UUID]
}

func (a PackArgs) HelpConfig() cmdargs.HelpConfig {
	return cmdargs.HelpConfig{
		Prologue: "Compress SRC into DEST. A directory SRC is packed file by file into the directory DEST.",
		Epilogue: "Example: fpack pack --level=best --exclude '\\.log$' ./data ./data.zst",
	}
}

type UnpackArgs struct {
	CommonArgs
}

func (a UnpackArgs) HelpConfig() cmdargs.HelpConfig {
	return cmdargs.HelpConfig{
		Prologue: "Decompress SRC into DEST. A directory SRC has every .zst file under it unpacked into DEST.",
	}
}

var positiveJobs = coerce.Validate(coerce.Int, func(n int) error {
	if n <= 0 {
		return errors.New("jobs must be > 0")
	}
	return nil
})

// Declare is the schema callback for cmdargs.Parse.
func Declare(p *cmdargs.Parser) *Args {
	return &Args{
		ListLevels: p.Flag([]string{"-l", "--list-levels"}, "List the compression levels and exit", false),
		Pack:       cmdargs.Subcommand(p, "pack", "Compress files", declarePack),
		Unpack:     cmdargs.Subcommand(p, "unpack", "Decompress files", declareUnpack),
	}
}

func declareCommon(p *cmdargs.Parser) CommonArgs {
	return CommonArgs{
		Format:      cmdargs.OptionalMappedDefault(p, []string{"--format"}, FormatText, "FORMAT", "Summary output format", formats),
		Config:      cmdargs.OptionalDefault[*Config](p, []string{"-c", "--config"}, nil, "FILE", "TOML config file", LoadConfig),
		SummaryFile: cmdargs.Optional(p, []string{"-o", "--summary-file"}, "FILE", "Write the summary to FILE instead of stdout", coerce.Path),
		Jobs:        cmdargs.Optional(p, []string{"-j", "--jobs"}, "N", "Files processed in parallel", positiveJobs),
		Verbose:     p.Flag([]string{"-v", "--verbose"}, "Log every file", false),
		DryRun:      p.Flag([]string{"-n", "--dry-run"}, "Print what would be done", false),
		Force:       p.Flag([]string{"-f", "--force"}, "Overwrite existing files", false),
		Src:         cmdargs.Positional(p, "SRC", "Source file or directory", coerce.String),
		Dest:        cmdargs.Positional(p, "DEST", "Destination file or directory", coerce.String),
	}
}

func declarePack(p *cmdargs.Parser) PackArgs {
	return PackArgs{
		CommonArgs: declareCommon(p),
		Level:      cmdargs.OptionalMapped(p, []string{"-L", "--level"}, "LEVEL", "Compression level", Levels),
		Exclude:    cmdargs.OptionalDefault[*regexp.Regexp](p, []string{"-x", "--exclude"}, nil, "REGEX", "Skip files whose relative path matches", coerce.Regexp),
		RunID:      cmdargs.Optional(p, []string{"--run-id"}, "UUID", "Identifier recorded in the summary", coerce.UUID),
	}
}

func declareUnpack(p *cmdargs.Parser) UnpackArgs {
	return UnpackArgs{CommonArgs: declareCommon(p)}
}

// Options are the resolved settings shared by both commands.
type Options struct {
	Src         string
	Dest        string
	Format      Format
	SummaryFile string
	Jobs        int
	Verbose     bool
	DryRun      bool
	Force       bool
	RunID       uuid.UUID
}

// PackOptions adds the pack-only settings to Options.
type PackOptions struct {
	Options
	Level   zstd.EncoderLevel
	Exclude *regexp.Regexp
}

func (a *CommonArgs) options(cfg *Config) Options {
	o := Options{
		Src:     a.Src.Value(),
		Dest:    a.Dest.Value(),
		Format:  a.Format.Value(),
		Verbose: a.Verbose.Value(),
		DryRun:  a.DryRun.Value(),
		Force:   a.Force.Value(),
		Jobs:    runtime.GOMAXPROCS(0),
	}
	if f := a.SummaryFile.Value(); f != nil {
		o.SummaryFile = *f
	}
	if cfg != nil && cfg.Jobs > 0 {
		o.Jobs = cfg.Jobs
	}
	if j := a.Jobs.Value(); j != nil {
		o.Jobs = *j
	}
	return o
}

// Options resolves the unpack command's settings.
func (a *UnpackArgs) Options() Options {
	o := a.options(a.Config.Value())
	o.RunID = uuid.New()
	return o
}

// Options resolves the pack command's settings. The config file supplies
// the level and exclude pattern when they are not given on the command line.
func (a *PackArgs) Options() (PackOptions, error) {
	cfg := a.Config.Value()
	o := PackOptions{
		Options: a.options(cfg),
		Level:   zstd.SpeedDefault,
		Exclude: a.Exclude.Value(),
	}
	if cfg != nil && cfg.Level != "" {
		ok, lvl := zstd.EncoderLevelFromString(cfg.Level)
		if !ok {
			return PackOptions{}, fmt.Errorf("config: unknown level %q", cfg.Level)
		}
		o.Level = lvl
	}
	if lvl := a.Level.Value(); lvl != nil {
		o.Level = *lvl
	}
	if o.Exclude == nil && cfg != nil && cfg.Exclude != "" {
		re, err := regexp.Compile(cfg.Exclude)
		if err != nil {
			return PackOptions{}, fmt.Errorf("config: bad exclude pattern: %w", err)
		}
		o.Exclude = re
	}
	if id := a.RunID.Value(); id != nil {
		o.RunID = *id
	} else {
		o.RunID = uuid.New()
	}
	return o, nil
}
