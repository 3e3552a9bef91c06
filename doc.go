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

// Package htmlmath compiles formulas written in a compact plain-text notation
// into HTML fragments for display and LaTeX for typesetting.
//
// The simplest entry points are [CompileHTML] and [CompileLaTeX], which
// compile a single formula held in a string:
//
//	html, err := htmlmath.CompileHTML("@fr«1⎖n» + x@^«2»")
//
// Compilation has two phases:
//  1. Parsing the notation into an AST (abstract syntax tree).
//     Also see: parser.Parse
//  2. Expanding the macro calls in the AST.
//     Also see: macro.Expand
//
// The expanded AST renders itself; see the HTML and LaTeX methods of
// [ast.Node]. The HTML refers to CSS classes, such as "math-fraction", that a
// companion stylesheet lays out.
//
// # Compiler
//
// To compile many formulas, for example one per file, use a [Compiler]. It
// compiles formulas in parallel and reports every problem through a
// [reporter.Reporter], so that callers can present all diagnostics at once.
//
// # Resolvers
//
// A Resolver is how the compiler locates the formulas to compile. It can
// answer a query with the text of a formula, which the compiler will parse,
// or with an already parsed AST, in which case only macro expansion remains.
//
// [SourceResolver] reads formula text using an accessor function, searching
// a list of directories. [SourceAccessorFromMap] makes an accessor for
// formulas held in memory.
package htmlmath
