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
	"bytes"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	htmlmath "github.com/pb1729/html-math"
)

func testConfig(stderr io.Writer) *MainConfig {
	return &MainConfig{
		ctx:    context.Background(),
		stderr: stderr,
		log:    newLogger(io.Discard, false),
	}
}

func mustHTML(t *testing.T, notation string) string {
	t.Helper()
	out, err := htmlmath.CompileHTML(notation)
	require.NoError(t, err)
	return out
}

func TestLiteralFormulas(t *testing.T) {
	t.Parallel()
	f := literalFormulas([]string{"x", "y", "x"})
	assert.Equal(t, []string{"arg1", "arg2", "arg3"}, f.names)
	assert.Equal(t, "y", f.srcs["arg2"])
}

func TestReadLines(t *testing.T) {
	t.Parallel()
	f, err := readLines(strings.NewReader("x\n\n   \n@v«y»\n"), "stdin")
	require.NoError(t, err)
	assert.Equal(t, []string{"stdin:1", "stdin:4"}, f.names)
	assert.Equal(t, "@v«y»", f.srcs["stdin:4"])
}

func TestReadFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.math"), []byte("x\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.math"), []byte("y\r\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("z"), 0o644))

	f, err := readFiles([]string{filepath.Join(dir, "**", "*.math")})
	require.NoError(t, err)
	a, b := filepath.Join(dir, "a.math"), filepath.Join(dir, "sub", "b.math")
	assert.ElementsMatch(t, []string{a, b}, f.names)
	assert.Equal(t, "x", f.srcs[a])
	assert.Equal(t, "y", f.srcs[b])

	_, err = readFiles([]string{filepath.Join(dir, "missing.math")})
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestRenderFormulas(t *testing.T) {
	t.Parallel()

	t.Run("html", func(t *testing.T) {
		t.Parallel()
		var out, stderr bytes.Buffer
		err := renderFormulas(testConfig(&stderr), &out, literalFormulas([]string{"x+1", "@fr«a⎖b»"}), false)
		require.NoError(t, err)
		assert.Equal(t, mustHTML(t, "x+1")+"\n"+mustHTML(t, "@fr«a⎖b»")+"\n", out.String())
		assert.Empty(t, stderr.String())
	})
	t.Run("latex", func(t *testing.T) {
		t.Parallel()
		var out, stderr bytes.Buffer
		err := renderFormulas(testConfig(&stderr), &out, literalFormulas([]string{"@fr«a⎖b»"}), true)
		require.NoError(t, err)
		assert.Equal(t, "\\frac{a}{b}\n", out.String())
	})
	t.Run("failures", func(t *testing.T) {
		t.Parallel()
		var out, stderr bytes.Buffer
		err := renderFormulas(testConfig(&stderr), &out, literalFormulas([]string{"»", "y", "@fr«a»"}), false)
		require.ErrorIs(t, err, errFailed)
		assert.Equal(t, mustHTML(t, "y")+"\n", out.String())
		diags := stderr.String()
		assert.Contains(t, diags, "error: syntax error: unenclosed delimiter")
		assert.Contains(t, diags, "--> arg1:0")
		assert.Contains(t, diags, "error: macro error: @fr: shape mismatch")
		assert.Contains(t, diags, "--> arg3:0")
		assert.Less(t, strings.Index(diags, "arg1:0"), strings.Index(diags, "arg3:0"))
	})
	t.Run("warnings", func(t *testing.T) {
		t.Parallel()
		var out, stderr bytes.Buffer
		err := renderFormulas(testConfig(&stderr), &out, literalFormulas([]string{"@sin«x»"}), false)
		require.NoError(t, err)
		assert.Equal(t, mustHTML(t, "@sin«x»")+"\n", out.String())
		assert.Contains(t, stderr.String(), "warning: unknown macro: @sin")
	})
}

func TestJSONDiagnostics(t *testing.T) {
	t.Parallel()
	var out, stderr bytes.Buffer
	cfg := testConfig(&stderr)
	cfg.JSON = true
	err := renderFormulas(cfg, &out, literalFormulas([]string{"ab«c»»", "@fr«a»"}), false)
	require.ErrorIs(t, err, errFailed)

	lines := strings.Split(strings.TrimSuffix(stderr.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	var diags []*structpb.Struct
	for _, line := range lines {
		s := &structpb.Struct{}
		require.NoError(t, protojson.Unmarshal([]byte(line), s))
		diags = append(diags, s)
	}
	assert.Equal(t, "error", diags[0].Fields["level"].GetStringValue())
	assert.Equal(t, "syntax", diags[0].Fields["kind"].GetStringValue())
	assert.Equal(t, "arg1", diags[0].Fields["name"].GetStringValue())
	assert.InDelta(t, 5, diags[0].Fields["index"].GetNumberValue(), 0)
	assert.Equal(t, "macro", diags[1].Fields["kind"].GetStringValue())
	assert.Equal(t, "arg2", diags[1].Fields["name"].GetStringValue())
}

func TestWritePage(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	entries := []pageEntry{
		{Label: "a<b", HTML: mustHTML(t, "x")},
		{Label: "two", HTML: mustHTML(t, "@fr«1⎖2»")},
	}
	require.NoError(t, writePage(&buf, "style.css?a&b", entries))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>\n"))
	assert.True(t, strings.HasSuffix(out, "</body>\n</html>\n"))
	assert.Contains(t, out, `href="style.css?a&amp;b"`)
	assert.Contains(t, out, `<div class="math-p">a&lt;b: `+entries[0].HTML+"</div>")

	doc, err := html.Parse(strings.NewReader(out))
	require.NoError(t, err)
	var paragraphs int
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "div" {
			for _, attr := range n.Attr {
				if attr.Key == "class" && attr.Val == "math-p" {
					paragraphs++
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(doc)
	assert.Equal(t, 2, paragraphs)
}

func TestWriteFormulaPage(t *testing.T) {
	t.Parallel()
	var buf, stderr bytes.Buffer
	f := literalFormulas([]string{"x", "«", "y"})
	err := writeFormulaPage(testConfig(&stderr), &buf, defaultStylesheet, f)
	require.ErrorIs(t, err, errFailed)
	out := buf.String()
	assert.Contains(t, out, `href="html_math.css"`)
	assert.Contains(t, out, "arg1: "+mustHTML(t, "x"))
	assert.NotContains(t, out, "arg2: ")
	assert.Contains(t, out, "arg3: "+mustHTML(t, "y"))
	assert.Contains(t, stderr.String(), "unterminated group")
}

func TestREPL(t *testing.T) {
	t.Parallel()
	pagePath := filepath.Join(t.TempDir(), "test.html")
	var out, stderr bytes.Buffer
	err := runREPL(testConfig(&stderr), strings.NewReader("x\n@fr«a»\ny\n"), &out, pagePath)
	require.NoError(t, err)

	assert.Equal(t, 4, strings.Count(out.String(), replPrompt))
	assert.Contains(t, out.String(), mustHTML(t, "x")+"\n\n")
	assert.Contains(t, out.String(), mustHTML(t, "y")+"\n\n")
	assert.Contains(t, stderr.String(), "--> repl:2:0")

	data, err := os.ReadFile(pagePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Your formula: "+mustHTML(t, "y"))
	assert.NotContains(t, string(data), mustHTML(t, "x"))
}

func TestWriteSymbols(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, writeSymbols(&buf))
	out := buf.String()
	for _, want := range []string{
		"greek letters:\n", "  α  \\alpha\n", "  Ω  \\Omega\n",
		"symbols:\n", "  ⇒  \\implies\n",
		"n-ary operators:\n", "  ∑  \\sum\n",
		"macros:\n", "@fr ", "@tab ",
	} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, strings.Index(out, "greek letters:"), strings.Index(out, "macros:"))
}

func TestArity(t *testing.T) {
	t.Parallel()
	lines := map[string]string{}
	var buf bytes.Buffer
	require.NoError(t, writeSymbols(&buf))
	for _, line := range strings.Split(buf.String(), "\n") {
		if fields := strings.Fields(line); len(fields) > 0 && strings.HasPrefix(fields[0], "@") {
			lines[fields[0]] = line
		}
	}
	assert.Contains(t, lines["@fr"], "2 args")
	assert.Contains(t, lines["@v"], "1 arg ")
	assert.Contains(t, lines["@tab"], "1+ args")
	assert.Contains(t, lines["@at"], "0+ args")
	assert.Contains(t, lines["@na"], "1-3 args")
}

func TestLogger(t *testing.T) {
	t.Parallel()
	var logs bytes.Buffer
	cfg := testConfig(io.Discard)
	cfg.log = newLogger(&logs, true)
	var out bytes.Buffer
	require.NoError(t, renderFormulas(cfg, &out, literalFormulas([]string{"x"}), false))
	assert.Contains(t, logs.String(), "level=DEBUG")
	assert.Contains(t, logs.String(), `msg="formula compiled" name=arg1`)
	assert.NotContains(t, logs.String(), "time=")

	logs.Reset()
	newLogger(&logs, false).Info("quiet")
	assert.Empty(t, logs.String())
}
