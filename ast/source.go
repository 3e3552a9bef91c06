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
	"fmt"

	"github.com/rivo/uniseg"
)

// contextRadius is how many grapheme clusters on each side of an offending
// character are included in a [SourcePos] context.
const contextRadius = 4

// SourcePos is a position in a formula's source text, for use in
// diagnostics.
type SourcePos struct {
	// The name of the formula, e.g. a file name. May be empty.
	Name string
	// The index of the character, counted in runes from the start of the
	// source. Equal to the length of the source for positions at its end.
	Index int
	// A short piece of the source around the character.
	Context string
	// The byte offset of the character within Context.
	ContextOffset int
}

// String returns the name and index of the position, e.g. "sum.math:12".
func (p SourcePos) String() string {
	if p.Name == "" {
		return fmt.Sprintf("offset %d", p.Index)
	}
	return fmt.Sprintf("%s:%d", p.Name, p.Index)
}

// Source is the text of a formula together with its name. It converts rune
// indices into positions.
type Source struct {
	name string
	text string
	size int
}

// NewSource returns a source for text.
func NewSource(name, text string) *Source {
	return &Source{name: name, text: text, size: len([]rune(text))}
}

// Name returns the name of the source.
func (s *Source) Name() string {
	return s.name
}

// Text returns the source text.
func (s *Source) Text() string {
	return s.text
}

// Len returns the length of the source in runes.
func (s *Source) Len() int {
	return s.size
}

// Pos returns the position of the rune at index.
//
// The context never splits a grapheme cluster, so a character and any
// combining marks that follow it are kept together.
func (s *Source) Pos(index int) SourcePos {
	if index < 0 || index > s.size {
		panic(fmt.Sprintf("ast: invalid index %d for source of length %d", index, s.size))
	}

	// starts holds the byte offset of every cluster, plus the end of the text.
	var starts []int
	target := -1
	var runes int
	g := uniseg.NewGraphemes(s.text)
	for g.Next() {
		from, _ := g.Positions()
		n := len(g.Runes())
		if target < 0 && runes+n > index {
			target = len(starts)
		}
		starts = append(starts, from)
		runes += n
	}
	starts = append(starts, len(s.text))
	clusters := len(starts) - 1
	if target < 0 {
		target = clusters
	}

	lo := max(target-contextRadius, 0)
	hi := min(target+contextRadius, clusters)
	return SourcePos{
		Name:          s.name,
		Index:         index,
		Context:       s.text[starts[lo]:starts[hi]],
		ContextOffset: starts[target] - starts[lo],
	}
}
