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

package ast

import (
	"strings"

	"github.com/pb1729/html-math/internal/symbols"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	" ", "&nbsp;",
)

// EscapeHTML escapes the characters of s that are reserved in HTML. Spaces
// become non-breaking spaces, so that whitespace in a formula is kept.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// Variable is a single letter naming a mathematical variable.
type Variable struct {
	letter       rune
	italic, bold bool
}

var _ Node = (*Variable)(nil)

// NewVariable returns an italic, non-bold variable.
func NewVariable(letter rune) *Variable {
	return &Variable{letter: letter, italic: true}
}

// Letter returns the variable's letter.
func (v *Variable) Letter() rune {
	return v.letter
}

// Italic returns whether the variable is set in italics.
func (v *Variable) Italic() bool {
	return v.italic
}

// Bold returns whether the variable is set in bold.
func (v *Variable) Bold() bool {
	return v.bold
}

// WithStyle returns a copy of v with the given styling. v is not modified.
func (v *Variable) WithStyle(italic, bold bool) *Variable {
	return &Variable{letter: v.letter, italic: italic, bold: bold}
}

// HTML implements [Node].
func (v *Variable) HTML() string {
	out := EscapeHTML(string(v.letter))
	if v.bold {
		out = "<b>" + out + "</b>"
	}
	if v.italic {
		out = "<i>" + out + "</i>"
	}
	return out
}

// LaTeX implements [Node].
//
// Greek letters become their LaTeX commands regardless of styling.
func (v *Variable) LaTeX() string {
	if name, ok := symbols.Greek.Lookup(v.letter); ok {
		return `\` + name + " "
	}
	if v.bold {
		return `\mathbf{` + string(v.letter) + "}"
	}
	return string(v.letter)
}

// Height implements [Node].
func (v *Variable) Height() float64 { return 1 }

// Regular is any symbol that is not a variable: digits, operators,
// punctuation, or the name of a function such as sin.
type Regular struct {
	symbol string
}

var _ Node = (*Regular)(nil)

// NewRegular returns a node for symbol.
func NewRegular(symbol string) *Regular {
	return &Regular{symbol: symbol}
}

// Blank returns the placeholder for an absent sub- or superscript.
func Blank() *Regular {
	return NewRegular(" ")
}

// IsBlank returns whether n is the placeholder returned by [Blank].
func IsBlank(n Node) bool {
	r, ok := n.(*Regular)
	return ok && r.symbol == " "
}

// Symbol returns the symbol's text.
func (r *Regular) Symbol() string {
	return r.symbol
}

// HTML implements [Node].
func (r *Regular) HTML() string {
	return EscapeHTML(r.symbol)
}

// LaTeX implements [Node].
//
// Known operators become LaTeX commands. A symbol made only of letters, such
// as a function name, is set upright as text. Anything else is passed through.
func (r *Regular) LaTeX() string {
	if name, ok := symbols.Operators.Lookup(r.symbol); ok {
		return `\` + name + " "
	}
	if name, ok := symbols.NAry.Lookup(r.symbol); ok {
		return `\` + name + " "
	}
	if symbols.AllVariables(r.symbol) {
		return `\text{` + r.symbol + "}"
	}
	return r.symbol
}

// Height implements [Node].
func (r *Regular) Height() float64 { return 1 }
