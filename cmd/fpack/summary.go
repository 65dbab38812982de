// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/BurntSushi/toml"
	"github.com/yeetrun/cmdargs/pkg/cli"
	"github.com/yeetrun/cmdargs/pkg/env"
	"gopkg.in/yaml.v3"
)

// Summary describes a finished run.
type Summary struct {
	RunID    string `json:"run_id" yaml:"run_id" toml:"run_id" env:"FPACK_RUN_ID"`
	Command  string `json:"command" yaml:"command" toml:"command" env:"FPACK_COMMAND"`
	Source   string `json:"source" yaml:"source" toml:"source" env:"FPACK_SOURCE"`
	Dest     string `json:"dest" yaml:"dest" toml:"dest" env:"FPACK_DEST"`
	Level    string `json:"level,omitempty" yaml:"level,omitempty" toml:"level,omitempty" env:"FPACK_LEVEL"`
	DryRun   bool   `json:"dry_run" yaml:"dry_run" toml:"dry_run" env:"FPACK_DRY_RUN"`
	Files    int    `json:"files" yaml:"files" toml:"files" env:"FPACK_FILES"`
	Skipped  int    `json:"skipped" yaml:"skipped" toml:"skipped" env:"FPACK_SKIPPED"`
	BytesIn  int64  `json:"bytes_in" yaml:"bytes_in" toml:"bytes_in" env:"FPACK_BYTES_IN"`
	BytesOut int64  `json:"bytes_out" yaml:"bytes_out" toml:"bytes_out" env:"FPACK_BYTES_OUT"`
	Elapsed  string `json:"elapsed" yaml:"elapsed" toml:"elapsed" env:"FPACK_ELAPSED"`
}

func newSummary(command string, o cli.Options) *Summary {
	return &Summary{
		RunID:   o.RunID.String(),
		Command: command,
		Source:  o.Src,
		Dest:    o.Dest,
		DryRun:  o.DryRun,
	}
}

func (r *runner) writeSummary(o cli.Options, s *Summary) error {
	if o.SummaryFile == "" {
		return encodeSummary(r.stdout, o.Format, s)
	}
	f, err := os.Create(o.SummaryFile)
	if err != nil {
		return fmt.Errorf("failed to create summary file: %w", err)
	}
	defer f.Close()
	if err := encodeSummary(f, o.Format, s); err != nil {
		return err
	}
	return f.Close()
}

func encodeSummary(w io.Writer, f cli.Format, s *Summary) error {
	switch f {
	case cli.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case cli.FormatYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	case cli.FormatTOML:
		return toml.NewEncoder(w).Encode(s)
	case cli.FormatEnv:
		return env.Marshal(w, s)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "run\t%s\n", s.RunID)
	fmt.Fprintf(tw, "command\t%s\n", s.Command)
	fmt.Fprintf(tw, "source\t%s\n", s.Source)
	fmt.Fprintf(tw, "dest\t%s\n", s.Dest)
	if s.Level != "" {
		fmt.Fprintf(tw, "level\t%s\n", s.Level)
	}
	if s.DryRun {
		fmt.Fprintf(tw, "dry run\t%v\n", s.DryRun)
	}
	fmt.Fprintf(tw, "files\t%d (%d skipped)\n", s.Files, s.Skipped)
	fmt.Fprintf(tw, "bytes\t%d -> %d\n", s.BytesIn, s.BytesOut)
	fmt.Fprintf(tw, "elapsed\t%s\n", s.Elapsed)
	return tw.Flush()
}
