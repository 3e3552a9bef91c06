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

// Package symbols holds the static lookup tables used when rendering
// formulas: which characters are variables, and how variables and symbols
// are spelled in LaTeX.
package symbols

import (
	"iter"
	"slices"
	"strings"

	"github.com/tidwall/btree"
	"golang.org/x/exp/constraints" //nolint:exptostd // Matches btree's ordered constraint.
	"golang.org/x/text/unicode/runenames"
)

// GreekLetters is every Greek letter that the notation treats as a variable.
const GreekLetters = "ΑαΒβΓγΔδΕεΖζΗηΘθΙιΚκΛλΜμΝνΞξΟοΠπΡρΣσςΤτΥυΦφΧχΨψΩω"

// Table is an immutable symbol table. Iteration is in key order.
//
// A zero value is an empty table.
type Table[K constraints.Ordered, V any] struct {
	tree btree.Map[K, V]
}

func newTable[K constraints.Ordered, V any](entries map[K]V) *Table[K, V] {
	t := new(Table[K, V])
	for k, v := range entries {
		t.tree.Set(k, v)
	}
	return t
}

// Lookup returns the value for key, if present.
func (t *Table[K, V]) Lookup(key K) (V, bool) {
	return t.tree.Get(key)
}

// Len returns the number of entries in the table.
func (t *Table[K, V]) Len() int {
	return t.tree.Len()
}

// All returns an iterator over the table's entries in ascending key order.
func (t *Table[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		t.tree.Scan(func(k K, v V) bool {
			return yield(k, v)
		})
	}
}

// Greek maps each Greek letter to its LaTeX command name, without the
// leading backslash. The names are derived from the Unicode character names.
var Greek = func() *Table[rune, string] {
	entries := make(map[rune]string, len(GreekLetters))
	for _, r := range GreekLetters {
		entries[r] = greekName(r)
	}
	return newTable(entries)
}()

// greekName turns e.g. GREEK CAPITAL LETTER DELTA into "Delta" and
// GREEK SMALL LETTER FINAL SIGMA into "sigma".
func greekName(r rune) string {
	words := strings.Fields(runenames.Name(r))
	if len(words) == 0 {
		panic("symbols: no unicode name for " + string(r))
	}
	last := words[len(words)-1]
	name := strings.ToLower(last)
	if slices.Contains(words, "CAPITAL") {
		return last[:1] + name[1:]
	}
	return name
}

// Operators maps logic and math symbols to LaTeX command names.
var Operators = newTable(map[string]string{
	"¬": "neg",
	"⊺": "top",
	"⟂": "bot",
	"∨": "lor",
	"∧": "land",
	"⇒": "implies",
	"⇔": "iff",
	"☐": "Box",
	"∇": "nabla",
	"ℝ": "mathbb{R}",
	"𝓛": "mathcal{L}",
	"→": "to",
	"≤": "leq",
	"≥": "geq",
	"⟨": "langle",
	"⟩": "rangle",
	"~": "sim",
})

// NAry maps n-ary operator symbols to LaTeX command names.
var NAry = newTable(map[string]string{
	"∑": "sum",
	"∏": "prod",
	"∫": "int",
})

// IsVariable returns whether r is a variable: an ASCII letter or one of
// [GreekLetters].
func IsVariable(r rune) bool {
	if ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') {
		return true
	}
	_, ok := Greek.Lookup(r)
	return ok
}

// AllVariables returns whether every rune of s is a variable. It returns true
// for the empty string.
func AllVariables(s string) bool {
	for _, r := range s {
		if !IsVariable(r) {
			return false
		}
	}
	return true
}
