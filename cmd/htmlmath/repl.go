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
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"
)

const replPrompt = "> "

func repl(cfg *REPLConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: repl takes no arguments", cli.ErrUsage)
	}
	fmt.Fprintf(cc.Out, "Open %s in a browser and reload it to see each new formula.\n", cfg.Out)
	return runREPL(cfg.main, cc.In, cc.Out, cfg.Out)
}

// runREPL compiles each line read from in. A formula that compiles is
// printed and replaces the one shown on the page at pagePath; one that does
// not has its diagnostics written to stderr and leaves the page alone.
func runREPL(cfg *MainConfig, in io.Reader, out io.Writer, pagePath string) error {
	sc := bufio.NewScanner(in)
	for line := 1; ; line++ {
		fmt.Fprint(out, replPrompt)
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		f := &formulas{}
		f.add(fmt.Sprintf("repl:%d", line), sc.Text())
		results, diags, err := cfg.compile(f)
		if err != nil {
			return err
		}
		r := results[0]
		if err := cfg.report(diags, r); err != nil {
			return err
		}
		if r.Root == nil {
			continue
		}
		fmt.Fprintf(out, "%s\n\n", r.HTML())
		if err := writePageFile(pagePath, []pageEntry{{Label: "Your formula", HTML: r.HTML()}}); err != nil {
			return err
		}
	}
}

func writePageFile(path string, entries []pageEntry) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %q: %w", path, err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return writePage(f, defaultStylesheet, entries)
}
