// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"github.com/yeetrun/cmdargs/pkg/cli"
	"github.com/yeetrun/cmdargs/pkg/codecutil"
	"golang.org/x/sync/errgroup"
)

const zstdExt = ".zst"

type job struct {
	src string
	dst string
}

// plan lists the files under src to process. A file src maps straight to
// dest. For a directory, target returns the destination path relative to
// dest, or false to skip the file.
func plan(src, dest string, target func(rel string) (string, bool)) (jobs []job, skipped int, err error) {
	fi, err := os.Stat(src)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to stat source: %w", err)
	}
	if !fi.IsDir() {
		return []job{{src: src, dst: dest}}, 0, nil
	}
	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		t, ok := target(filepath.ToSlash(rel))
		if !ok {
			skipped++
			return nil
		}
		jobs = append(jobs, job{src: path, dst: filepath.Join(dest, filepath.FromSlash(t))})
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to walk %s: %w", src, err)
	}
	return jobs, skipped, nil
}

func packTarget(exclude *regexp.Regexp) func(string) (string, bool) {
	return func(rel string) (string, bool) {
		if exclude != nil && exclude.MatchString(rel) {
			return "", false
		}
		return rel + zstdExt, true
	}
}

func unpackTarget(rel string) (string, bool) {
	if !strings.HasSuffix(rel, zstdExt) {
		return "", false
	}
	return strings.TrimSuffix(rel, zstdExt), true
}

func (r *runner) pack(ctx context.Context, o cli.PackOptions) (*Summary, error) {
	jobs, skipped, err := plan(o.Src, o.Dest, packTarget(o.Exclude))
	if err != nil {
		return nil, err
	}
	s := newSummary("pack", o.Options)
	s.Level = o.Level.String()
	s.Skipped = skipped
	err = r.execute(ctx, o.Options, jobs, s, "pack", func(j job) (codecutil.Stats, error) {
		return codecutil.ZstdCompress(j.src, j.dst, o.Level, o.Force)
	})
	return s, err
}

func (r *runner) unpack(ctx context.Context, o cli.Options) (*Summary, error) {
	jobs, skipped, err := plan(o.Src, o.Dest, unpackTarget)
	if err != nil {
		return nil, err
	}
	s := newSummary("unpack", o)
	s.Skipped = skipped
	err = r.execute(ctx, o, jobs, s, "unpack", func(j job) (codecutil.Stats, error) {
		return codecutil.ZstdDecompress(j.src, j.dst, o.Force)
	})
	return s, err
}

// execute runs do for every job with at most o.Jobs in flight and records
// the totals in s. The first failure cancels the jobs not yet started.
func (r *runner) execute(ctx context.Context, o cli.Options, jobs []job, s *Summary, verb string, do func(job) (codecutil.Stats, error)) error {
	start := time.Now()
	defer func() { s.Elapsed = time.Since(start).Round(time.Millisecond).String() }()

	if o.DryRun {
		for _, j := range jobs {
			r.logf("would %s %s -> %s", verb, j.src, j.dst)
		}
		s.Files = len(jobs)
		return nil
	}

	var files, in, out atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(o.Jobs, 1))
	for _, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			st, err := do(j)
			if err != nil {
				return fmt.Errorf("%s %s: %w", verb, j.src, err)
			}
			files.Add(1)
			in.Add(st.In)
			out.Add(st.Out)
			if o.Verbose {
				r.logf("%s %s -> %s (%d -> %d bytes)", verb, j.src, j.dst, st.In, st.Out)
			}
			return nil
		})
	}
	err := g.Wait()
	s.Files = int(files.Load())
	s.BytesIn = in.Load()
	s.BytesOut = out.Load()
	return err
}
