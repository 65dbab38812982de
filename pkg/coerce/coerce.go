// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coerce provides conversion functions from raw argument strings to
// typed values, for use with the cmdargs declaration functions.
package coerce

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
)

// String returns s unchanged.
func String(s string) (string, error) {
	return s, nil
}

func Int(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid int value %q: %w", s, err)
	}
	return v, nil
}

func Int64(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid int64 value %q: %w", s, err)
	}
	return v, nil
}

func Uint(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 0)
	if err != nil {
		return 0, fmt.Errorf("invalid uint value %q: %w", s, err)
	}
	return uint(v), nil
}

func Float64(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float value %q: %w", s, err)
	}
	return v, nil
}

func Bool(s string) (bool, error) {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid bool value %q: %w", s, err)
	}
	return v, nil
}

func Duration(s string) (time.Duration, error) {
	v, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration value %q: %w", s, err)
	}
	return v, nil
}

func URL(s string) (*url.URL, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("invalid URL value %q: %w", s, err)
	}
	return u, nil
}

// Path returns s made absolute and cleaned.
func Path(s string) (string, error) {
	p, err := filepath.Abs(s)
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", s, err)
	}
	return p, nil
}

func Regexp(s string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(s)
	if err != nil {
		return nil, fmt.Errorf("invalid regular expression %q: %w", s, err)
	}
	return re, nil
}

// Semver parses a semantic version, with or without a leading "v".
func Semver(s string) (*semver.Version, error) {
	v, err := semver.NewVersion(s)
	if err != nil {
		return nil, fmt.Errorf("invalid version %q: %w", s, err)
	}
	return v, nil
}

// SemverConstraint parses a version constraint such as ">= 1.2, < 2".
func SemverConstraint(s string) (*semver.Constraints, error) {
	c, err := semver.NewConstraint(s)
	if err != nil {
		return nil, fmt.Errorf("invalid version constraint %q: %w", s, err)
	}
	return c, nil
}

func UUID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid UUID %q: %w", s, err)
	}
	return id, nil
}

// Port is an IP port number.
type Port uint16

// PortRange returns a coercion that accepts ports within rangeStr, a range
// like "1-65535" or "8000-9000". An empty rangeStr allows every port. A
// malformed rangeStr panics.
func PortRange(rangeStr string) func(string) (Port, error) {
	min, max, err := parsePortRange(rangeStr)
	if err != nil {
		panic(err)
	}
	return func(s string) (Port, error) {
		p, err := parsePortValue(s)
		if err != nil {
			return 0, err
		}
		if rangeStr != "" && (uint16(p) < min || uint16(p) > max) {
			return 0, fmt.Errorf("port must be between %d and %d, got %d", min, max, p)
		}
		return p, nil
	}
}

// parsePortRange parses a port range string like "1-65535" or "8000-9000".
// Returns min, max, error. If the string is empty, returns 0, 0, nil (no validation).
func parsePortRange(rangeStr string) (min, max uint16, err error) {
	if rangeStr == "" {
		return 0, 0, nil
	}
	lo, hi, ok := strings.Cut(rangeStr, "-")
	if !ok {
		return 0, 0, fmt.Errorf("invalid port range format %q (expected \"min-max\")", rangeStr)
	}
	minVal, err := strconv.ParseUint(lo, 10, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid min port in range %q: %w", rangeStr, err)
	}
	maxVal, err := strconv.ParseUint(hi, 10, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid max port in range %q: %w", rangeStr, err)
	}
	if minVal > maxVal {
		return 0, 0, fmt.Errorf("invalid port range %q: min (%d) > max (%d)", rangeStr, minVal, maxVal)
	}
	return uint16(minVal), uint16(maxVal), nil
}

func parsePortValue(value string) (Port, error) {
	v, err := strconv.ParseUint(value, 10, 16)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("port must be between 0 and 65535, got %q", value)
		}
		return 0, fmt.Errorf("invalid port value %q", value)
	}
	return Port(v), nil
}

// Validate returns a coercion that runs c and then check on the result.
func Validate[T any](c func(string) (T, error), check func(T) error) func(string) (T, error) {
	return func(s string) (T, error) {
		v, err := c(s)
		if err != nil {
			return v, err
		}
		if err := check(v); err != nil {
			var zero T
			return zero, err
		}
		return v, nil
	}
}

// OneOf returns a check for Validate that accepts only the listed values.
func OneOf[T comparable](allowed ...T) func(T) error {
	return func(v T) error {
		for _, a := range allowed {
			if v == a {
				return nil
			}
		}
		return fmt.Errorf("value %v is not one of %v", v, allowed)
	}
}
