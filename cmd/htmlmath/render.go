// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
)

func render(cfg *RenderConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	var f *formulas
	switch {
	case len(args) == 0:
		f, err = readLines(cc.In, "stdin")
	case cfg.Files:
		f, err = readFiles(args)
	default:
		f = literalFormulas(args)
	}
	if err != nil {
		return err
	}
	return renderFormulas(cfg.main, cc.Out, f, cfg.latex)
}

// renderFormulas writes one line per formula that compiles, as HTML or as
// LaTeX, and the diagnostics of all formulas to stderr.
func renderFormulas(cfg *MainConfig, w io.Writer, f *formulas, latex bool) error {
	results, diags, err := cfg.compile(f)
	if err != nil {
		return err
	}
	failed := false
	for _, r := range results {
		if err := cfg.report(diags, r); err != nil {
			return err
		}
		if r.Root == nil {
			failed = true
			continue
		}
		out := r.HTML()
		if latex {
			out = r.LaTeX()
		}
		if _, err := fmt.Fprintln(w, out); err != nil {
			return fmt.Errorf("error writing %s: %w", r.Name, err)
		}
	}
	if failed {
		return errFailed
	}
	return nil
}
