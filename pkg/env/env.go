// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package env writes structs as KEY=value environment files.
package env

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// Write writes an environment file with the given name and content.
func Write(name string, e any) error {
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create file: %v", err)
	}
	defer f.Close()
	if err := Marshal(f, e); err != nil {
		return fmt.Errorf("failed to marshal env: %v", err)
	}
	return f.Close()
}

// Marshal writes one KEY=value line per struct field carrying an env tag.
// Zero fields are skipped. Values containing spaces, quotes or other shell
// metacharacters are double quoted.
func Marshal(o io.Writer, e any) error {
	re := reflect.ValueOf(e)
	if re.Kind() == reflect.Ptr {
		re = re.Elem()
	}
	if re.Kind() != reflect.Struct {
		return fmt.Errorf("env: cannot marshal %T, want a struct", e)
	}
	ret := re.Type()
	for i := 0; i < re.NumField(); i++ {
		field := re.Field(i)
		tag := ret.Field(i).Tag.Get("env")
		if tag == "" {
			continue
		}
		if field.IsZero() {
			continue
		}
		if _, err := fmt.Fprintf(o, "%s=%s\n", tag, quote(fmt.Sprint(field.Interface()))); err != nil {
			return err
		}
	}
	return nil
}

func quote(v string) string {
	if v == "" || strings.ContainsAny(v, " \t\n\"'$`\\#;&|<>()*?[]{}~") {
		return strconv.Quote(v)
	}
	return v
}
