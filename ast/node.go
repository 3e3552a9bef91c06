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
)

// Node is a node in a formula tree.
type Node interface {
	// HTML renders the node as an HTML fragment.
	HTML() string
	// LaTeX renders the node as LaTeX source.
	LaTeX() string
	// Height estimates the vertical extent of the node, in units of one
	// line of text.
	Height() float64
}

const (
	// UnimplementedHTML is what a node without an HTML rendering produces.
	UnimplementedHTML = "<b>&nbsp;UNIMPLEMENTED&nbsp;</b>"
	// UnimplementedLaTeX is what a node without a LaTeX rendering produces.
	UnimplementedLaTeX = `\text{ UNIMPLEMENTED }`

	// Height of an empty sequence. Not zero, so that scaling something by
	// the height of nothing does not collapse it.
	emptyHeight = 0.01
)

// Unimplemented may be embedded in a node type that does not render. It
// makes the missing rendering visible in the output instead of silently
// producing nothing.
type Unimplemented struct{}

// HTML implements [Node].
func (Unimplemented) HTML() string { return UnimplementedHTML }

// LaTeX implements [Node].
func (Unimplemented) LaTeX() string { return UnimplementedLaTeX }

// Height implements [Node].
func (Unimplemented) Height() float64 { return 1 }

// List is a concatenation of nodes.
type List struct {
	children []Node
}

var _ Node = (*List)(nil)

// NewList returns a list of the given nodes.
func NewList(children ...Node) *List {
	return &List{children: children}
}

// Children returns the nodes in the list. The result must not be modified.
func (l *List) Children() []Node {
	return l.children
}

// HTML implements [Node].
func (l *List) HTML() string {
	var b strings.Builder
	for _, child := range l.children {
		b.WriteString(child.HTML())
	}
	return b.String()
}

// LaTeX implements [Node].
func (l *List) LaTeX() string {
	var b strings.Builder
	for _, child := range l.children {
		b.WriteString(child.LaTeX())
	}
	return b.String()
}

// Height implements [Node]. It is the height of the tallest child.
func (l *List) Height() float64 {
	return maxHeight(l.children)
}

// Array is a bracketed group of entries, as written with the group
// delimiters but without a macro name.
//
// Arrays are mostly raw material for macros, e.g. the rows of a matrix. When
// one is rendered directly, it prints as a bracketed, comma separated list.
type Array struct {
	entries []Node
}

var _ Node = (*Array)(nil)

// NewArray returns an array of the given entries.
func NewArray(entries ...Node) *Array {
	return &Array{entries: entries}
}

// Entries returns the entries of the array. The result must not be modified.
func (a *Array) Entries() []Node {
	return a.entries
}

// HTML implements [Node].
func (a *Array) HTML() string {
	parts := make([]string, len(a.entries))
	for i, entry := range a.entries {
		parts[i] = entry.HTML()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// LaTeX implements [Node].
func (a *Array) LaTeX() string {
	parts := make([]string, len(a.entries))
	for i, entry := range a.entries {
		parts[i] = entry.LaTeX()
	}
	return `\left[` + strings.Join(parts, ", ") + `\right]`
}

// Height implements [Node].
func (a *Array) Height() float64 {
	return maxHeight(a.entries)
}

// Root is the top of a formula tree.
type Root struct {
	child Node
}

var _ Node = (*Root)(nil)

// NewRoot returns a root holding child.
func NewRoot(child Node) *Root {
	return &Root{child: child}
}

// Child returns the formula held by the root.
func (r *Root) Child() Node {
	return r.child
}

// HTML implements [Node].
func (r *Root) HTML() string {
	return htmlTag("span", []Class{ClassFormulaRoot, ClassFormula}, r.child.HTML(), "")
}

// LaTeX implements [Node].
func (r *Root) LaTeX() string {
	return r.child.LaTeX()
}

// Height implements [Node].
func (r *Root) Height() float64 {
	return r.child.Height()
}

func maxHeight(nodes []Node) float64 {
	if len(nodes) == 0 {
		return emptyHeight
	}
	h := nodes[0].Height()
	for _, n := range nodes[1:] {
		h = max(h, n.Height())
	}
	return h
}

// htmlTag wraps content in a tag carrying the given classes. attrs, if not
// empty, must start with a space.
func htmlTag(tag string, classes []Class, content, attrs string) string {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(tag)
	b.WriteString(` class="`)
	for i, class := range classes {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(string(class))
	}
	b.WriteString(`"`)
	b.WriteString(attrs)
	b.WriteString(">")
	b.WriteString(content)
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteString(">")
	return b.String()
}
