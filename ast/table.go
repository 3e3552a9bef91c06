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
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnsupportedShape is returned when a table is built with a number of rows
// or columns that its layout cannot render.
var ErrUnsupportedShape = errors.New("unsupported shape")

// Class is a CSS class attached to an HTML container. For tables, the classes
// also select the layout.
type Class string

const (
	ClassFormulaRoot Class = "math-formula-root"
	ClassFormula     Class = "math-formula"
	ClassTable       Class = "math-table"
	ClassMatrix      Class = "math-matrix"
	ClassBoxMatrix   Class = "math-box-matrix"
	ClassFraction    Class = "math-fraction"
	ClassScripts     Class = "math-ss"
	ClassNAry        Class = "math-nary"
)

// sizeMultipliers must agree with the font sizes the stylesheet gives each
// class.
var sizeMultipliers = map[Class]float64{
	ClassFraction: 0.75,
	ClassScripts:  0.67,
	ClassNAry:     0.67,
}

// NAryScale is how much larger than the surrounding text an n-ary operator
// symbol is drawn.
const NAryScale = 2.4

// Table lays out cells in rows. Depending on its classes, it is a plain
// table, a matrix, a fraction, a pair of sub- and superscripts, or an n-ary
// operator with its bounds.
type Table struct {
	rows    [][]Node
	classes []Class
}

var _ Node = (*Table)(nil)

// NewTable returns a table with the given rows. The table always has
// [ClassTable]; classes adds to it.
//
// Tables with [ClassFraction] or [ClassScripts] must have exactly two rows of
// one cell, and tables with [ClassNAry] one to three rows of one cell;
// otherwise NewTable returns an error wrapping [ErrUnsupportedShape]. Other
// tables may have any shape.
func NewTable(rows [][]Node, classes ...Class) (*Table, error) {
	t := &Table{
		rows:    rows,
		classes: append([]Class{ClassTable}, classes...),
	}
	switch {
	case t.Has(ClassNAry):
		if len(rows) < 1 || len(rows) > 3 || !singleColumn(rows) {
			return nil, fmt.Errorf("%w: n-ary operator needs 1 to 3 rows of one cell, got %s",
				ErrUnsupportedShape, shape(rows))
		}
	case t.Has(ClassScripts), t.Has(ClassFraction):
		if len(rows) != 2 || !singleColumn(rows) {
			return nil, fmt.Errorf("%w: %s needs 2 rows of one cell, got %s",
				ErrUnsupportedShape, t.layoutName(), shape(rows))
		}
	}
	return t, nil
}

// NewFraction returns a table drawing num over den.
func NewFraction(num, den Node) *Table {
	return mustTable([][]Node{{num}, {den}}, ClassFraction)
}

// NewScripts returns a table attaching a superscript and a subscript to
// whatever precedes it. A nil sup or sub is absent.
func NewScripts(sup, sub Node) *Table {
	if sup == nil {
		sup = Blank()
	}
	if sub == nil {
		sub = Blank()
	}
	return mustTable([][]Node{{sup}, {sub}}, ClassScripts)
}

// NewNAry returns an n-ary operator, such as a sum, with optional lower and
// upper bounds. symbol is drawn [NAryScale] times larger than normal text.
// A nil lower or upper is absent.
func NewNAry(symbol, lower, upper Node) *Table {
	rows := [][]Node{{NewScale(symbol, NAryScale)}}
	if lower != nil {
		rows = append(rows, []Node{lower})
	}
	if upper != nil {
		rows = append([][]Node{{upper}}, rows...)
	}
	return mustTable(rows, ClassNAry)
}

func mustTable(rows [][]Node, classes ...Class) *Table {
	t, err := NewTable(rows, classes...)
	if err != nil {
		panic(err)
	}
	return t
}

// Rows returns the table's rows. The result must not be modified.
func (t *Table) Rows() [][]Node {
	return t.rows
}

// Classes returns the table's classes, starting with [ClassTable]. The
// result must not be modified.
func (t *Table) Classes() []Class {
	return t.classes
}

// Has returns whether the table has the given class.
func (t *Table) Has(class Class) bool {
	return slices.Contains(t.classes, class)
}

// WithRows returns a copy of t with the same classes and different cells.
// It panics if rows does not have the same shape as t's rows.
func (t *Table) WithRows(rows [][]Node) *Table {
	if len(rows) != len(t.rows) {
		panic(fmt.Sprintf("ast: table shape changed from %s to %s", shape(t.rows), shape(rows)))
	}
	for i := range rows {
		if len(rows[i]) != len(t.rows[i]) {
			panic(fmt.Sprintf("ast: table shape changed from %s to %s", shape(t.rows), shape(rows)))
		}
	}
	return &Table{rows: rows, classes: t.classes}
}

// HTML implements [Node].
func (t *Table) HTML() string {
	var b strings.Builder
	for _, row := range t.rows {
		b.WriteString("<tr>")
		for _, cell := range row {
			b.WriteString("<td>")
			b.WriteString(htmlTag("span", []Class{ClassFormula}, cell.HTML(), ""))
			b.WriteString("</td>")
		}
		b.WriteString("</tr>")
	}
	return htmlTag("table", t.classes, b.String(), "")
}

// LaTeX implements [Node].
//
// LaTeX has a single matrix style here: plain tables and boxed matrices are
// also rendered as parenthesized matrices.
func (t *Table) LaTeX() string {
	switch {
	case t.Has(ClassNAry):
		var sup, symbol, sub Node
		switch len(t.rows) {
		case 1:
			symbol = t.rows[0][0]
		case 2:
			symbol, sub = t.rows[0][0], t.rows[1][0]
		default:
			sup, symbol, sub = t.rows[0][0], t.rows[1][0], t.rows[2][0]
		}
		out := symbol.LaTeX()
		if sub != nil {
			out += "_{" + sub.LaTeX() + "}"
		}
		if sup != nil {
			out += "^{" + sup.LaTeX() + "}"
		}
		return out

	case t.Has(ClassScripts):
		var out string
		if sup := t.rows[0][0]; !IsBlank(sup) {
			out += "^{" + sup.LaTeX() + "}"
		}
		if sub := t.rows[1][0]; !IsBlank(sub) {
			out += "_{" + sub.LaTeX() + "}"
		}
		return out

	case t.Has(ClassFraction):
		return `\frac{` + t.rows[0][0].LaTeX() + "}{" + t.rows[1][0].LaTeX() + "}"
	}

	var b strings.Builder
	b.WriteString(`\begin{pmatrix}`)
	for _, row := range t.rows {
		for i, cell := range row {
			if i > 0 {
				b.WriteString(" & ")
			}
			b.WriteString(cell.LaTeX())
		}
		b.WriteString(` \\`)
	}
	b.WriteString(`\end{pmatrix}`)
	return b.String()
}

// Height implements [Node]. It is the sum of the heights of the rows, shrunk
// by the layout's size multipliers.
func (t *Table) Height() float64 {
	multiplier := 1.0
	for _, class := range t.classes {
		if m, ok := sizeMultipliers[class]; ok {
			multiplier *= m
		}
	}
	var sum float64
	for _, row := range t.rows {
		sum += maxHeight(row)
	}
	return multiplier * sum
}

func (t *Table) layoutName() string {
	switch {
	case t.Has(ClassNAry):
		return "n-ary operator"
	case t.Has(ClassScripts):
		return "sub/superscript"
	case t.Has(ClassFraction):
		return "fraction"
	case t.Has(ClassBoxMatrix):
		return "boxed matrix"
	case t.Has(ClassMatrix):
		return "matrix"
	default:
		return "table"
	}
}

func singleColumn(rows [][]Node) bool {
	for _, row := range rows {
		if len(row) != 1 {
			return false
		}
	}
	return true
}

func shape(rows [][]Node) string {
	if len(rows) == 0 {
		return "no rows"
	}
	if singleColumn(rows) {
		return fmt.Sprintf("%d rows", len(rows))
	}
	widths := make([]string, len(rows))
	for i, row := range rows {
		widths[i] = fmt.Sprint(len(row))
	}
	return fmt.Sprintf("%d rows of %s cells", len(rows), strings.Join(widths, "/"))
}
