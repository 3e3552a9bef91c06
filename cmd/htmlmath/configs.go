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
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/pb1729/html-math/reporter"
)

type MainConfig struct {
	Verbose bool `cli:"name=v aliases=verbose desc='log each compiled formula'"`
	Color   bool `cli:"name=color desc='color diagnostics'"`
	JSON    bool `cli:"name=json desc='print diagnostics as JSON objects'"`

	Main *cli.Command

	ctx    context.Context
	stderr io.Writer
	log    *slog.Logger
}

func newMainConfig(ctx context.Context) *MainConfig {
	return &MainConfig{
		ctx:    ctx,
		stderr: os.Stderr,
		log:    newLogger(os.Stderr, false),
	}
}

// newLogger logs to w without timestamps, at debug level if verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// renderer colors diagnostics if -color is given, or if it is not given
// and stderr is a terminal.
func (cfg *MainConfig) renderer() reporter.Renderer {
	if cfg.Color {
		return reporter.Renderer{Colorize: true}
	}
	if cfg.Main != nil {
		for _, opt := range cfg.Main.Opts {
			if opt.Name == "color" && opt.Value != nil {
				return reporter.Renderer{}
			}
		}
	}
	f, ok := cfg.stderr.(*os.File)
	if !ok {
		return reporter.Renderer{}
	}
	return reporter.Renderer{
		Colorize: isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()),
	}
}

type RenderConfig struct {
	*cli.Command
	main *MainConfig

	Files bool `cli:"name=f aliases=files desc='treat arguments as formula files or globs'"`
	latex bool
}

type PageConfig struct {
	*cli.Command
	main *MainConfig

	Out string `cli:"name=o desc='output file (default stdout)'"`
	CSS string `cli:"name=css desc='stylesheet href'"`
}

type REPLConfig struct {
	*cli.Command
	main *MainConfig

	Out string `cli:"name=o desc='preview page rewritten after each formula'"`
}

type SymbolsConfig struct {
	*cli.Command
	main *MainConfig
}
