// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codecutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// Stats reports the bytes read from the source and written to the
// destination of a single file operation.
type Stats struct {
	In  int64
	Out int64
}

// ErrExists is returned when the destination exists and overwriting was not
// requested.
var ErrExists = os.ErrExist

// ZstdCompress compresses src into dst at the given level.
func ZstdCompress(src, dst string, level zstd.EncoderLevel, overwrite bool) (Stats, error) {
	srcFile, err := os.Open(src)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to open source file: %w", err)
	}
	defer srcFile.Close()

	dstFile, err := create(dst, overwrite)
	if err != nil {
		return Stats{}, err
	}
	defer dstFile.Close()

	out := &countingWriter{w: dstFile}
	encoder, err := zstd.NewWriter(out, zstd.WithEncoderLevel(level))
	if err != nil {
		return Stats{}, fmt.Errorf("failed to create zstd encoder: %w", err)
	}

	n, err := io.Copy(encoder, srcFile)
	if err != nil {
		encoder.Close()
		return Stats{}, fmt.Errorf("failed to compress file: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return Stats{}, fmt.Errorf("failed to finish zstd stream: %w", err)
	}
	if err := dstFile.Close(); err != nil {
		return Stats{}, fmt.Errorf("failed to close destination file: %w", err)
	}
	return Stats{In: n, Out: out.n}, nil
}

// ZstdDecompress decompresses src into dst.
func ZstdDecompress(src, dst string, overwrite bool) (Stats, error) {
	srcFile, err := os.Open(src)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to open source file: %w", err)
	}
	defer srcFile.Close()

	dstFile, err := create(dst, overwrite)
	if err != nil {
		return Stats{}, err
	}
	defer dstFile.Close()

	in := &countingReader{r: srcFile}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	defer decoder.Close()

	err = decoder.Reset(in)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to reset decoder: %w", err)
	}

	n, err := decoder.WriteTo(dstFile)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to decompress file: %w", err)
	}
	if err := dstFile.Close(); err != nil {
		return Stats{}, fmt.Errorf("failed to close destination file: %w", err)
	}
	return Stats{In: in.n, Out: n}, nil
}

func create(name string, overwrite bool) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return nil, fmt.Errorf("failed to create destination directory: %w", err)
	}
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(name, flags, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	return f, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
