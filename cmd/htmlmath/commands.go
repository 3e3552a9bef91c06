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
	"context"

	"github.com/scott-cotton/cli"
)

func MainCommand(ctx context.Context) *cli.Command {
	cfg := newMainConfig(ctx)
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "htmlmath").
		WithSynopsis("htmlmath [opts] command [opts]").
		WithDescription("htmlmath compiles math notation into HTML and LaTeX.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return htmlmathMain(cfg, cc, args)
		}).
		WithSubs(
			HTMLCommand(cfg),
			LaTeXCommand(cfg),
			PageCommand(cfg),
			REPLCommand(cfg),
			SymbolsCommand(cfg))
}

func HTMLCommand(mainCfg *MainConfig) *cli.Command {
	return renderCommand(mainCfg, "html", "compile formulas into HTML fragments", false)
}

func LaTeXCommand(mainCfg *MainConfig) *cli.Command {
	return renderCommand(mainCfg, "latex", "compile formulas into LaTeX", true)
}

func renderCommand(mainCfg *MainConfig, name, desc string, latex bool) *cli.Command {
	cfg := &RenderConfig{main: mainCfg, latex: latex}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, name).
		WithSynopsis(name + " [-f] [formulas or files]").
		WithDescription(desc + "; formulas are read line by line from stdin when none are given").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return render(cfg, cc, args)
		})
}

func PageCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PageConfig{main: mainCfg, CSS: defaultStylesheet}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "page").
		WithAliases("p").
		WithSynopsis("page [-o out.html] [-css href] [files]").
		WithDescription("write an HTML page showing every formula in the given files").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return page(cfg, cc, args)
		})
}

func REPLCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &REPLConfig{main: mainCfg, Out: "test.html"}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "repl").
		WithAliases("r").
		WithSynopsis("repl [-o page.html]").
		WithDescription("compile formulas as they are typed, rewriting a preview page after each one").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return repl(cfg, cc, args)
		})
}

func SymbolsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SymbolsConfig{main: mainCfg}
	return cli.NewCommandAt(&cfg.Command, "symbols").
		WithAliases("s").
		WithSynopsis("symbols").
		WithDescription("list the recognized letters, symbols, and macros").
		WithRun(func(cc *cli.Context, args []string) error {
			return symbolsMain(cfg, cc, args)
		})
}
