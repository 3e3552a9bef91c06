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
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/pb1729/html-math/internal/symbols"
	"github.com/pb1729/html-math/macro"
)

func symbolsMain(cfg *SymbolsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: symbols takes no arguments", cli.ErrUsage)
	}
	return writeSymbols(cc.Out)
}

// writeSymbols lists the Greek letters, the symbols with LaTeX commands, and
// the macros, each in a section of its own.
func writeSymbols(w io.Writer) error {
	var b strings.Builder
	b.WriteString("greek letters:\n")
	for r, name := range symbols.Greek.All() {
		fmt.Fprintf(&b, "  %c  \\%s\n", r, name)
	}
	b.WriteString("symbols:\n")
	for sym, name := range symbols.Operators.All() {
		fmt.Fprintf(&b, "  %s  \\%s\n", sym, name)
	}
	b.WriteString("n-ary operators:\n")
	for sym, name := range symbols.NAry.All() {
		fmt.Fprintf(&b, "  %s  \\%s\n", sym, name)
	}
	b.WriteString("macros:\n")
	for _, name := range macro.All() {
		fmt.Fprintf(&b, "  @%-4s %-12s %s\n", name, arity(name), name.Doc())
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func arity(name macro.Name) string {
	minArgs, maxArgs := name.Arity()
	switch {
	case maxArgs < 0:
		return fmt.Sprintf("%d+ args", minArgs)
	case minArgs == maxArgs && minArgs == 1:
		return "1 arg"
	case minArgs == maxArgs:
		return fmt.Sprintf("%d args", minArgs)
	default:
		return fmt.Sprintf("%d-%d args", minArgs, maxArgs)
	}
}
