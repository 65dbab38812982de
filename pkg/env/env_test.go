// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package env

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type summary struct {
	Command  string        `env:"FPACK_COMMAND"`
	Files    int           `env:"FPACK_FILES"`
	Skipped  int           `env:"FPACK_SKIPPED"`
	Source   string        `env:"FPACK_SOURCE"`
	Duration time.Duration `env:"FPACK_DURATION"`
	Internal string
}

func TestMarshal(t *testing.T) {
	var b strings.Builder
	s := summary{
		Command:  "pack",
		Files:    3,
		Source:   "/tmp/my data",
		Duration: 1500 * time.Millisecond,
		Internal: "hidden",
	}
	if err := Marshal(&b, &s); err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := "FPACK_COMMAND=pack\nFPACK_FILES=3\nFPACK_SOURCE=\"/tmp/my data\"\nFPACK_DURATION=1.5s\n"
	if got := b.String(); got != want {
		t.Errorf("Marshal() = %q, want %q", got, want)
	}
}

func TestMarshalNotStruct(t *testing.T) {
	var b strings.Builder
	if err := Marshal(&b, 42); err == nil {
		t.Error("Marshal(42) error = nil")
	}
}

func TestWrite(t *testing.T) {
	name := filepath.Join(t.TempDir(), "summary.env")
	if err := Write(name, summary{Command: "unpack"}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	got, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "FPACK_COMMAND=unpack\n" {
		t.Errorf("file = %q", got)
	}
}
