// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdargs

import (
	"fmt"

	"tailscale.com/types/lazy"
)

// cell is a single-assignment memoized computation. The first caller of get
// runs compute; concurrent callers block until it settles and every later
// caller observes the same value and error. A panic in compute is memoized
// too and re-raised on every get.
type cell[T any] struct {
	v       lazy.SyncValue[T]
	compute func() (T, error)
}

// panicked holds the value compute panicked with.
type panicked struct {
	v any
}

func (p *panicked) Error() string {
	return fmt.Sprintf("panic: %v", p.v)
}

func (c *cell[T]) get() (T, error) {
	v, err := c.v.GetErr(func() (v T, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = &panicked{v: r}
			}
		}()
		return c.compute()
	})
	if p, ok := err.(*panicked); ok {
		panic(p.v)
	}
	return v, err
}

func (c *cell[T]) evaluated() bool {
	_, _, ok := c.v.PeekErr()
	return ok
}
