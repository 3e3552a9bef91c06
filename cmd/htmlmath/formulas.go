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
	"cmp"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/scott-cotton/cli"
	"google.golang.org/protobuf/encoding/protojson"

	htmlmath "github.com/pb1729/html-math"
	"github.com/pb1729/html-math/reporter"
)

// formulas are named sources, in the order they were given.
type formulas struct {
	names []string
	srcs  map[string]string
}

func (f *formulas) add(name, src string) {
	if f.srcs == nil {
		f.srcs = map[string]string{}
	}
	if _, ok := f.srcs[name]; !ok {
		f.names = append(f.names, name)
	}
	f.srcs[name] = src
}

// literalFormulas names each argument argN, counting from 1.
func literalFormulas(args []string) *formulas {
	f := &formulas{}
	for i, arg := range args {
		f.add(fmt.Sprintf("arg%d", i+1), arg)
	}
	return f
}

// readLines reads one formula per non-blank line of r. Each is named after
// its line, e.g. stdin:3.
func readLines(r io.Reader, name string) (*formulas, error) {
	f := &formulas{}
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		f.add(fmt.Sprintf("%s:%d", name, line), sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", name, err)
	}
	return f, nil
}

// readFiles reads one formula per file. Patterns may use doublestar globs;
// a pattern matching nothing is read as a plain path.
func readFiles(patterns []string) (*formulas, error) {
	f := &formulas{}
	for _, pattern := range patterns {
		files, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: bad pattern %q: %w", cli.ErrUsage, pattern, err)
		}
		if len(files) == 0 {
			files = []string{pattern}
		}
		for _, file := range files {
			data, err := os.ReadFile(file)
			if err != nil {
				return nil, fmt.Errorf("could not read %q: %w", file, err)
			}
			f.add(file, strings.TrimRight(string(data), "\r\n"))
		}
	}
	return f, nil
}

type diagnostic struct {
	level reporter.Level
	index int
	err   error
}

// diagnostics collects what the compiler reports, by formula name.
type diagnostics struct {
	mu     sync.Mutex
	byName map[string][]diagnostic
}

func (d *diagnostics) add(level reporter.Level, err reporter.ErrorWithPos) {
	d.mu.Lock()
	defer d.mu.Unlock()
	pos := err.GetPosition()
	d.byName[pos.Name] = append(d.byName[pos.Name], diagnostic{level: level, index: pos.Index, err: err})
}

// of returns the diagnostics of the named formula in source order.
func (d *diagnostics) of(name string) []diagnostic {
	d.mu.Lock()
	defer d.mu.Unlock()
	ds := slices.Clone(d.byName[name])
	slices.SortStableFunc(ds, func(a, b diagnostic) int {
		return cmp.Compare(a.index, b.index)
	})
	return ds
}

func (d *diagnostics) reporter() reporter.Reporter {
	return reporter.NewReporter(
		func(err reporter.ErrorWithPos) error {
			d.add(reporter.LevelError, err)
			return nil
		},
		func(err reporter.ErrorWithPos) {
			d.add(reporter.LevelWarning, err)
		},
	)
}

// compile compiles every formula, collecting all of their errors and
// warnings rather than stopping at the first.
func (cfg *MainConfig) compile(f *formulas) ([]htmlmath.Result, *diagnostics, error) {
	diags := &diagnostics{byName: map[string][]diagnostic{}}
	c := htmlmath.Compiler{
		Resolver: &htmlmath.SourceResolver{
			Accessor: htmlmath.SourceAccessorFromMap(f.srcs),
		},
		Reporter: diags.reporter(),
		Logger:   cfg.log,
	}
	results, err := c.Compile(cfg.ctx, f.names...)
	if results == nil && err != nil {
		return nil, nil, err
	}
	return results, diags, nil
}

// report writes the diagnostics of r to stderr.
func (cfg *MainConfig) report(diags *diagnostics, r htmlmath.Result) error {
	ds := diags.of(r.Name)
	if r.Root == nil && !slices.ContainsFunc(ds, func(d diagnostic) bool { return d.level == reporter.LevelError }) {
		ds = append(ds, diagnostic{level: reporter.LevelError, err: r.Err})
	}
	renderer := cfg.renderer()
	for _, d := range ds {
		if !cfg.JSON {
			if _, err := io.WriteString(cfg.stderr, renderer.Diagnostic(d.level, d.err)); err != nil {
				return err
			}
			continue
		}
		data, err := protojson.Marshal(reporter.ToProto(d.level, d.err))
		if err != nil {
			return fmt.Errorf("error encoding diagnostic: %w", err)
		}
		if _, err := cfg.stderr.Write(append(data, '\n')); err != nil {
			return err
		}
	}
	return nil
}

// errFailed is returned when some formula did not compile. Its diagnostics
// have already been written.
var errFailed = errors.New("some formulas failed to compile")
