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
	"strings"

	"github.com/pb1729/html-math/ast"
	"github.com/pb1729/html-math/macro"
	"github.com/pb1729/html-math/parser"
	"github.com/pb1729/html-math/reporter"
)

// CompileHTML compiles a formula into an HTML fragment.
//
// If the notation is malformed, the error wraps [reporter.ErrSyntax]; if a
// macro cannot use its arguments, it wraps [reporter.ErrMacro]. Either way it
// is a [reporter.ErrorWithPos] locating the problem.
func CompileHTML(notation string) (string, error) {
	root, err := compile(notation)
	if err != nil {
		return "", err
	}
	return root.HTML(), nil
}

// CompileLaTeX compiles a formula into LaTeX source. Errors are as for
// [CompileHTML].
func CompileLaTeX(notation string) (string, error) {
	root, err := compile(notation)
	if err != nil {
		return "", err
	}
	return root.LaTeX(), nil
}

func compile(notation string) (*ast.Root, error) {
	h := reporter.NewHandler(nil)
	root, err := parser.Parse("", strings.NewReader(notation), h)
	if err != nil {
		return nil, err
	}
	return macro.Expand(root, h)
}
