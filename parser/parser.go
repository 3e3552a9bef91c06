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

package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/pb1729/html-math/ast"
	"github.com/pb1729/html-math/internal/symbols"
	"github.com/pb1729/html-math/reporter"
)

// Parse parses the formula read from r. The name is used in error positions
// and may be empty.
//
// Parsing stops at the first error. The error is sent to handler, and Parse
// returns a nil root and the handler's result (see [reporter.Handler.Error]).
// So the returned error is non-nil even if the handler's reporter chose to
// swallow the syntax error.
func Parse(name string, r io.Reader, handler *reporter.Handler) (*ast.Root, error) {
	text, valid, err := readInput(r)
	if err != nil {
		return nil, handler.HandleError(err)
	}
	p := &parser{
		src:     ast.NewSource(name, text),
		input:   newRuneReader(text),
		handler: handler,
	}
	if !valid {
		return nil, p.fail(p.src.Len(), ErrInvalidEncoding, "bad byte after this point")
	}
	return p.parse()
}

type parser struct {
	src     *ast.Source
	input   *runeReader
	handler *reporter.Handler
}

// parse parses the top level of the formula: a single entry, which must not
// contain separators or group closers.
func (p *parser) parse() (*ast.Root, error) {
	var entry []ast.Node
	for !p.input.eof() {
		switch r := p.input.peek(); r {
		case ArgSep, CloseGroup:
			return nil, p.fail(p.input.offset(), ErrUnenclosedDelimiter, "%q outside of any group", r)
		default:
			n, err := p.item()
			if err != nil {
				return nil, err
			}
			entry = append(entry, n)
		}
	}
	return ast.NewRoot(ast.NewList(entry...)), nil
}

// group parses the entries of the group whose OpenGroup is at open, up to
// and including its CloseGroup. The reader must be just past the OpenGroup.
// Each entry is an [ast.List].
func (p *parser) group(open int) ([]ast.Node, error) {
	var entries []ast.Node
	var entry []ast.Node
	for {
		if p.input.eof() {
			return nil, p.fail(open, ErrUnterminatedGroup, "no %q for this %q", CloseGroup, OpenGroup)
		}
		switch p.input.peek() {
		case ArgSep:
			p.input.advance()
			entries = append(entries, ast.NewList(entry...))
			entry = nil
		case CloseGroup:
			p.input.advance()
			return append(entries, ast.NewList(entry...)), nil
		default:
			n, err := p.item()
			if err != nil {
				return nil, err
			}
			entry = append(entry, n)
		}
	}
}

// item parses one element of an entry: a call, an array literal, or a leaf.
func (p *parser) item() (ast.Node, error) {
	start := p.input.offset()
	switch r := p.input.peek(); r {
	case StartCall:
		return p.call()
	case OpenGroup:
		p.input.advance()
		entries, err := p.group(start)
		if err != nil {
			return nil, err
		}
		return ast.NewArray(entries...), nil
	default:
		p.input.advance()
		if symbols.IsVariable(r) {
			return ast.NewVariable(r), nil
		}
		return ast.NewRegular(string(r)), nil
	}
}

// call parses a macro call. The reader must be at its StartCall.
func (p *parser) call() (ast.Node, error) {
	start := p.input.offset()
	open := p.input.indexFrom(start+1, OpenGroup)
	if open < 0 {
		return nil, p.fail(start, ErrMissingGroup, "expected %q after %q", OpenGroup, StartCall)
	}
	name := p.input.slice(start+1, open)
	if i := strings.IndexFunc(name, invalidNameRune); i >= 0 {
		bad := []rune(name[:i])
		r := []rune(name[i:])[0]
		return nil, p.fail(start+1+len(bad), ErrInvalidFunctionName, "%q may not appear in a name", r)
	}

	p.input.seek(open + 1)
	args, err := p.group(open)
	if err != nil {
		return nil, err
	}
	return ast.NewCall(name, args, p.src.Pos(start)), nil
}

func invalidNameRune(r rune) bool {
	return r == StartCall || r == CloseGroup || r == ' '
}

// fail reports an error of the given kind at index and returns the result
// parsing must stop with.
func (p *parser) fail(index int, kind error, format string, args ...any) error {
	err := reporter.Error(p.src.Pos(index), fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...)))
	if err := p.handler.HandleError(err); err != nil {
		return err
	}
	return p.handler.Error()
}
