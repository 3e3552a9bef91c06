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

package reporter

import (
	"errors"
	"fmt"

	"github.com/pb1729/html-math/ast"
)

// ErrInvalidSource is a sentinel error that is returned by compilation in the
// event that syntax or macro errors are encountered, but the configured
// ErrorReporter always returns nil.
var ErrInvalidSource = errors.New("compile failed: invalid formula source")

// The two kinds of compile error. Every error a formula can fail with wraps
// exactly one of these; the parser and macro packages refine them further.
var (
	// ErrSyntax is wrapped by errors for malformed notation: unmatched or
	// unterminated delimiters, and invalid macro names.
	ErrSyntax = errors.New("syntax error")
	// ErrMacro is wrapped by errors for macro calls whose arguments a macro
	// cannot use.
	ErrMacro = errors.New("macro error")
)

// ErrorWithPos is an error about a formula that includes information about
// the location in the formula that caused the error.
//
// The value of Error() will contain the SourcePos, the Underlying error, and
// the text surrounding the location. The value of Unwrap() will only be the
// Underlying error.
type ErrorWithPos interface {
	error
	GetPosition() ast.SourcePos
	Unwrap() error
}

// Error creates a new ErrorWithPos from the given error and source position.
func Error(pos ast.SourcePos, err error) ErrorWithPos {
	return errorWithSourcePos{pos: pos, underlying: err}
}

// Errorf creates a new ErrorWithPos whose underlying error is created using
// the given message format and arguments (via fmt.Errorf).
func Errorf(pos ast.SourcePos, format string, args ...any) ErrorWithPos {
	return errorWithSourcePos{pos: pos, underlying: fmt.Errorf(format, args...)}
}

type errorWithSourcePos struct {
	underlying error
	pos        ast.SourcePos
}

func (e errorWithSourcePos) Error() string {
	if e.pos.Context == "" {
		return fmt.Sprintf("%s: %v", e.pos, e.underlying)
	}
	return fmt.Sprintf("%s: %v (near %q)", e.pos, e.underlying, e.pos.Context)
}

// GetPosition implements the ErrorWithPos interface, supplying a location in
// the formula that caused the error.
func (e errorWithSourcePos) GetPosition() ast.SourcePos {
	return e.pos
}

// Unwrap implements the ErrorWithPos interface, supplying the underlying
// error. This error will not include location information.
func (e errorWithSourcePos) Unwrap() error {
	return e.underlying
}

var _ ErrorWithPos = errorWithSourcePos{}
