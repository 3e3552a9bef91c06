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
	"os"
	"strings"

	"github.com/scott-cotton/cli"
	"golang.org/x/net/html"
)

const defaultStylesheet = "html_math.css"

const (
	pagePrologue = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <link rel="stylesheet" href="%s">
</head>
<body>
    <p>Formulas:</p>
`
	pageEpilogue = `</body>
</html>
`
)

// pageEntry is one formula shown on a page. HTML is the compiled formula;
// Label is plain text shown before it.
type pageEntry struct {
	Label string
	HTML  string
}

// writePage writes a standalone HTML document with a paragraph per entry,
// styled by the stylesheet at css.
func writePage(w io.Writer, css string, entries []pageEntry) error {
	var b strings.Builder
	fmt.Fprintf(&b, pagePrologue, html.EscapeString(css))
	for _, e := range entries {
		fmt.Fprintf(&b, "    <div class=\"math-p\">%s: %s</div>\n", html.EscapeString(e.Label), e.HTML)
	}
	b.WriteString(pageEpilogue)
	_, err := io.WriteString(w, b.String())
	return err
}

func page(cfg *PageConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	var f *formulas
	if len(args) == 0 {
		f, err = readLines(cc.In, "stdin")
	} else {
		f, err = readFiles(args)
	}
	if err != nil {
		return err
	}
	if cfg.Out == "" || cfg.Out == "-" {
		return writeFormulaPage(cfg.main, cc.Out, cfg.CSS, f)
	}
	out, err := os.Create(cfg.Out)
	if err != nil {
		return fmt.Errorf("could not create %q: %w", cfg.Out, err)
	}
	err = writeFormulaPage(cfg.main, out, cfg.CSS, f)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	return err
}

// writeFormulaPage compiles f and writes a page of the formulas that
// compiled. The page is written even if some did not.
func writeFormulaPage(cfg *MainConfig, w io.Writer, css string, f *formulas) error {
	results, diags, err := cfg.compile(f)
	if err != nil {
		return err
	}
	failed := false
	entries := make([]pageEntry, 0, len(results))
	for _, r := range results {
		if err := cfg.report(diags, r); err != nil {
			return err
		}
		if r.Root == nil {
			failed = true
			continue
		}
		entries = append(entries, pageEntry{Label: r.Name, HTML: r.HTML()})
	}
	if err := writePage(w, css, entries); err != nil {
		return fmt.Errorf("error writing page: %w", err)
	}
	if failed {
		return errFailed
	}
	return nil
}
