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

package htmlmath

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/pb1729/html-math/ast"
	"github.com/pb1729/html-math/macro"
	"github.com/pb1729/html-math/parser"
	"github.com/pb1729/html-math/reporter"
	"github.com/pb1729/html-math/walk"
)

// Compiler handles compilation tasks, to turn many named formulas into
// renderable trees.
//
// The compilation process involves two steps for each formula:
//  1. Parsing the source into an AST (abstract syntax tree).
//  2. Expanding macro calls.
//
// Each formula gets a tree of its own, so formulas are compiled
// independently and in parallel.
type Compiler struct {
	// Resolves names into formula source code or ASTs. This is how the
	// compiler loads the formulas to be compiled. This field is the only
	// required field.
	Resolver Resolver
	// The maximum parallelism to use when compiling. If unspecified or set to
	// a non-positive value, then min(runtime.NumCPU(), runtime.GOMAXPROCS(-1))
	// will be used.
	MaxParallelism int
	// A custom error and warning reporter. If unspecified a default reporter
	// is used. A default reporter fails the compilation after encountering any
	// errors and ignores all warnings.
	Reporter reporter.Reporter
	// If set, each compiled formula is logged at debug level, and each failed
	// one at warning level.
	Logger *slog.Logger
}

// Result is the outcome of compiling one formula.
type Result struct {
	// The name the formula was requested with.
	Name string
	// The expanded formula. Nil if the formula failed to compile.
	Root *ast.Root
	// Why the formula failed to compile, if it did.
	Err error
}

// HTML renders the formula as an HTML fragment. It returns an empty string
// for a failed formula.
func (r Result) HTML() string {
	if r.Root == nil {
		return ""
	}
	return r.Root.HTML()
}

// LaTeX renders the formula as LaTeX. It returns an empty string for a
// failed formula.
func (r Result) LaTeX() string {
	if r.Root == nil {
		return ""
	}
	return r.Root.LaTeX()
}

// Compile compiles the named formulas. The compiler's resolver is used to
// locate each formula's source (or an already parsed AST).
//
// The results are in the same order as names; a name given more than once is
// compiled once. Unless ctx is done first, there is a result for every name,
// even when the returned error is non-nil. The error is the reporter's (see
// [reporter.Handler.Error]): if any formula failed, it is non-nil, and it is
// [reporter.ErrInvalidSource] if the reporter let every error pass. Each
// failed Result carries its own formula's error; once the reporter has
// aborted, later errors are no longer passed to it.
func (c *Compiler) Compile(ctx context.Context, names ...string) ([]Result, error) {
	if len(names) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	par := c.MaxParallelism
	if par <= 0 {
		par = min(runtime.GOMAXPROCS(-1), runtime.NumCPU())
	}

	e := executor{
		c:       c,
		h:       reporter.NewHandler(c.Reporter),
		s:       semaphore.NewWeighted(int64(par)),
		log:     c.logger(),
		results: map[string]*result{},
	}

	pending := make([]*result, len(names))
	for i, name := range names {
		pending[i] = e.compile(ctx, name)
	}

	results := make([]Result, len(names))
	for i, r := range pending {
		select {
		case <-r.ready:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		results[i] = Result{Name: names[i], Root: r.root, Err: r.err}
	}
	return results, e.h.Error()
}

func (c *Compiler) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

type result struct {
	ready chan struct{}
	root  *ast.Root
	err   error
}

func (r *result) fail(err error) {
	r.err = err
	close(r.ready)
}

func (r *result) complete(root *ast.Root) {
	r.root = root
	close(r.ready)
}

type executor struct {
	c   *Compiler
	h   *reporter.Handler
	s   *semaphore.Weighted
	log *slog.Logger

	mu      sync.Mutex
	results map[string]*result
}

func (e *executor) compile(ctx context.Context, name string) *result {
	e.mu.Lock()
	defer e.mu.Unlock()
	r := e.results[name]
	if r != nil {
		return r
	}

	r = &result{
		ready: make(chan struct{}),
	}
	e.results[name] = r
	go func() {
		e.doCompile(ctx, name, r)
	}()
	return r
}

func (e *executor) doCompile(ctx context.Context, name string, r *result) {
	if err := e.s.Acquire(ctx, 1); err != nil {
		r.fail(err)
		return
	}
	defer e.s.Release(1)

	start := time.Now()
	root, err := e.asExpanded(name)
	if err != nil {
		e.log.Warn("formula failed", "name", name, "error", err)
		r.fail(err)
		return
	}
	if e.log.Enabled(ctx, slog.LevelDebug) {
		e.log.Debug("formula compiled",
			"name", name,
			"nodes", countNodes(root),
			"duration", time.Since(start),
		)
	}
	r.complete(root)
}

func (e *executor) asExpanded(name string) (*ast.Root, error) {
	h := e.h.SubHandler()
	sr, err := e.c.Resolver.FindFormula(name)
	if err != nil {
		return nil, h.HandleError(err)
	}
	root := sr.AST
	if root == nil {
		root, err = parse(name, sr.Source, h)
		if err != nil {
			return nil, err
		}
	}
	return macro.Expand(root, h)
}

func parse(name string, src io.Reader, h *reporter.Handler) (*ast.Root, error) {
	if c, ok := src.(io.Closer); ok {
		defer func() {
			_ = c.Close()
		}()
	}
	return parser.Parse(name, src, h)
}

func countNodes(root *ast.Root) int {
	var count int
	_ = walk.Nodes(root, func(ast.Node) error {
		count++
		return nil
	})
	return count
}
