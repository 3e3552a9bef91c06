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
	"bytes"
	"context"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pb1729/html-math/ast"
	"github.com/pb1729/html-math/parser"
	"github.com/pb1729/html-math/reporter"
)

func TestCompile(t *testing.T) {
	t.Parallel()
	compiler := Compiler{
		Resolver: &SourceResolver{Accessor: SourceAccessorFromMap(map[string]string{
			"frac.math":  "@fr«1⎖n»",
			"greek.math": "α+β",
		})},
	}
	results, err := compiler.Compile(context.Background(), "greek.math", "frac.math", "greek.math")
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "greek.math", results[0].Name)
	assert.Equal(t, `\alpha +\beta `, results[0].LaTeX())
	assert.Equal(t, "frac.math", results[1].Name)
	assert.Equal(t, `\frac{1}{n}`, results[1].LaTeX())
	assert.Contains(t, results[1].HTML(), `class="math-table math-fraction"`)

	// A name given twice is compiled once.
	assert.Same(t, results[0].Root, results[2].Root)
}

func TestCompileNoNames(t *testing.T) {
	t.Parallel()
	results, err := (&Compiler{}).Compile(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, results)
}

func TestCompileFromAST(t *testing.T) {
	t.Parallel()
	root, err := parser.Parse("pre.math", strings.NewReader("@v«x»"), reporter.NewHandler(nil))
	require.NoError(t, err)

	compiler := Compiler{
		Resolver: ResolverFunc(func(name string) (SearchResult, error) {
			return SearchResult{AST: root, Source: strings.NewReader("ignored")}, nil
		}),
	}
	results, err := compiler.Compile(context.Background(), "pre.math")
	require.NoError(t, err)
	assert.Equal(t, `\mathbf{x}`, results[0].LaTeX())
	assert.Contains(t, root.LaTeX(), ast.UnimplementedLaTeX)
}

type trackingCloser struct {
	io.Reader
	closed bool
}

func (c *trackingCloser) Close() error {
	c.closed = true
	return nil
}

func TestCompileClosesSource(t *testing.T) {
	t.Parallel()
	src := &trackingCloser{Reader: strings.NewReader("x")}
	compiler := Compiler{
		Resolver: ResolverFunc(func(string) (SearchResult, error) {
			return SearchResult{Source: src}, nil
		}),
	}
	_, err := compiler.Compile(context.Background(), "x.math")
	require.NoError(t, err)
	assert.True(t, src.closed)
}

func TestCompileNotFound(t *testing.T) {
	t.Parallel()
	compiler := Compiler{
		Resolver: &SourceResolver{Accessor: SourceAccessorFromMap(map[string]string{
			"here.math": "x",
		})},
	}
	results, err := compiler.Compile(context.Background(), "here.math", "gone.math")
	require.ErrorIs(t, err, fs.ErrNotExist)
	require.Len(t, results, 2)
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, fs.ErrNotExist)
}

func TestCompileFailFastKeepsOwnErrors(t *testing.T) {
	t.Parallel()
	compiler := Compiler{
		Resolver: &SourceResolver{Accessor: SourceAccessorFromMap(map[string]string{
			"a.math": "x⎖y",
			"b.math": "ok",
			"c.math": "«z",
			"d.math": "@fr«1»",
		})},
	}
	names := []string{"a.math", "b.math", "c.math", "d.math"}
	results, err := compiler.Compile(context.Background(), names...)
	require.Error(t, err)
	require.Len(t, results, len(names))
	assert.NoError(t, results[1].Err)

	want := map[string]int{"a.math": 1, "c.math": 0, "d.math": 0}
	for _, r := range results {
		index, failed := want[r.Name]
		if !failed {
			continue
		}
		var ewp reporter.ErrorWithPos
		require.ErrorAs(t, r.Err, &ewp, r.Name)
		assert.Equal(t, r.Name, ewp.GetPosition().Name)
		assert.Equal(t, index, ewp.GetPosition().Index, r.Name)
	}
	assert.ErrorIs(t, results[3].Err, reporter.ErrMacro)
}

func TestCompileLogging(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	compiler := Compiler{
		Resolver: &SourceResolver{Accessor: SourceAccessorFromMap(map[string]string{
			"good.math": "@fr«1⎖2»",
			"bad.math":  "»",
		})},
		MaxParallelism: 1,
		Reporter:       reporter.NewReporter(func(reporter.ErrorWithPos) error { return nil }, nil),
		Logger:         slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})),
	}
	_, err := compiler.Compile(context.Background(), "good.math", "bad.math")
	require.ErrorIs(t, err, reporter.ErrInvalidSource)

	logged := buf.String()
	assert.Contains(t, logged, `msg="formula compiled" name=good.math nodes=`)
	assert.Contains(t, logged, `msg="formula failed" name=bad.math`)
}

func TestSourceResolverImportPaths(t *testing.T) {
	t.Parallel()
	resolver := &SourceResolver{
		ImportPaths: []string{"first", "second"},
		Accessor: SourceAccessorFromMap(map[string]string{
			"second/f.math": "y",
		}),
	}
	res, err := resolver.FindFormula("f.math")
	require.NoError(t, err)
	data, err := io.ReadAll(res.Source)
	require.NoError(t, err)
	assert.Equal(t, "y", string(data))

	_, err = resolver.FindFormula("g.math")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestCompositeResolver(t *testing.T) {
	t.Parallel()
	_, err := CompositeResolver(nil).FindFormula("x")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	empty := &SourceResolver{Accessor: SourceAccessorFromMap(nil)}
	full := &SourceResolver{Accessor: SourceAccessorFromMap(map[string]string{"x": "1"})}
	res, err := CompositeResolver{empty, full}.FindFormula("x")
	require.NoError(t, err)
	assert.NotNil(t, res.Source)

	_, err = CompositeResolver{empty, empty}.FindFormula("y")
	var pathErr *fs.PathError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, "y", pathErr.Path)
}
