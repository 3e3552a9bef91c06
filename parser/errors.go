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

	"github.com/pb1729/html-math/reporter"
)

// The control characters of the notation.
const (
	// StartCall begins a macro call. The macro name runs up to the next
	// OpenGroup.
	StartCall = '@'
	// OpenGroup begins the arguments of a call, or an array literal.
	OpenGroup = '«'
	// ArgSep separates the entries of a group.
	ArgSep = '⎖'
	// CloseGroup ends a group.
	CloseGroup = '»'
)

// Refinements of [reporter.ErrSyntax]. Every error returned by [Parse] for
// malformed notation wraps one of these.
var (
	// ErrInvalidFunctionName indicates a macro name containing a character
	// that may not appear in one.
	ErrInvalidFunctionName = fmt.Errorf("%w: invalid function name", reporter.ErrSyntax)
	// ErrUnenclosedDelimiter indicates an ArgSep or CloseGroup outside of
	// any group.
	ErrUnenclosedDelimiter = fmt.Errorf("%w: unenclosed delimiter", reporter.ErrSyntax)
	// ErrUnterminatedGroup indicates a group still open at the end of the
	// input. The error's position is the group's OpenGroup.
	ErrUnterminatedGroup = fmt.Errorf("%w: unterminated group", reporter.ErrSyntax)
	// ErrMissingGroup indicates a StartCall with no OpenGroup after it.
	ErrMissingGroup = fmt.Errorf("%w: missing group", reporter.ErrSyntax)
	// ErrInvalidEncoding indicates input that is not valid UTF-8.
	ErrInvalidEncoding = fmt.Errorf("%w: invalid UTF-8", reporter.ErrSyntax)
)
