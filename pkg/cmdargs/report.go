// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmdargs

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/yeetrun/cmdargs/pkg/tui"
)

// report passes a parse failure to p.ReportError, or prints it to p.Stderr.
func (p *Parser) report(err error) {
	p.Logf("cmdargs: %s: %v", p.programName, err)
	if p.ReportError != nil {
		p.ReportError(err.Error())
		return
	}
	c := tui.ForWriter(p.Stderr)
	fmt.Fprintf(p.Stderr, "%s %s\n", c.Wrap("error:", color.FgRed, color.Bold), err)
}
