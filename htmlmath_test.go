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
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/runenames"

	"github.com/pb1729/html-math/ast"
	"github.com/pb1729/html-math/internal/symbols"
	"github.com/pb1729/html-math/macro"
	"github.com/pb1729/html-math/parser"
	"github.com/pb1729/html-math/reporter"
)

const rootOpen = `<span class="math-formula-root math-formula">`

const matrixFormula = "@box««@v«x»@^«T»@M«A»@v«y»⎖b»⎖«c⎖d»» + 17 + " +
	"@fr«3+x@ss«2⎖0»⎖4» - @sin« (5θ)»"

func TestCompileLaTeX_Matrix(t *testing.T) {
	t.Parallel()
	out, err := CompileLaTeX(matrixFormula)
	require.NoError(t, err)
	assert.Equal(t,
		`\begin{pmatrix}\mathbf{x}^{T}\mathbf{A}\mathbf{y} & b \\c & d \\\end{pmatrix}`+
			` + 17 + \frac{3+x^{2}_{0}}{4} - \text{sin} (5\theta )`,
		out,
	)
}

func TestCompileHTML_Matrix(t *testing.T) {
	t.Parallel()
	out, err := CompileHTML(matrixFormula)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, rootOpen))
	require.True(t, strings.HasSuffix(out, "</span>"))

	doc, err := html.Parse(strings.NewReader(out))
	require.NoError(t, err)

	boxes := findAll(doc, func(n *html.Node) bool { return hasClass(n, string(ast.ClassBoxMatrix)) })
	require.Len(t, boxes, 1)
	box := boxes[0]
	assert.Equal(t, "table", box.Data)
	assert.True(t, hasClass(box, string(ast.ClassMatrix)))
	assert.True(t, hasClass(box, string(ast.ClassTable)))
	assert.Equal(t, "span", box.Parent.Data)
	assert.True(t, hasClass(box.Parent, string(ast.ClassFormulaRoot)))

	rows := rowsOf(box)
	require.Len(t, rows, 2)
	first := cellsOf(rows[0])
	second := cellsOf(rows[1])
	require.Len(t, first, 2)
	require.Len(t, second, 2)

	// Every cell holds a formula span.
	for _, cell := range append(first, second...) {
		span := firstElement(cell)
		require.NotNil(t, span)
		assert.Equal(t, "span", span.Data)
		assert.True(t, hasClass(span, string(ast.ClassFormula)))
	}

	// The transpose is a script table nested in the first cell.
	scripts := findAll(first[0], func(n *html.Node) bool { return hasClass(n, string(ast.ClassScripts)) })
	require.Len(t, scripts, 1)
	assert.Equal(t, "T", textOf(cellsOf(rowsOf(scripts[0])[0])[0]))

	// Vectors are bold italics, the matrix is bold but upright.
	bold := findAll(first[0], func(n *html.Node) bool { return n.Type == html.ElementNode && n.Data == "b" })
	require.Len(t, bold, 3)
	parents := map[string]string{}
	for _, b := range bold {
		parents[textOf(b)] = b.Parent.Data
	}
	assert.Equal(t, map[string]string{"x": "i", "A": "span", "y": "i"}, parents)

	assert.Equal(t, "d", textOf(second[1]))

	fractions := findAll(doc, func(n *html.Node) bool { return hasClass(n, string(ast.ClassFraction)) })
	require.Len(t, fractions, 1)
	fracRows := rowsOf(fractions[0])
	require.Len(t, fracRows, 2)
	assert.Equal(t, "4", textOf(fracRows[1]))
}

func TestCompileLaTeX_Greek(t *testing.T) {
	t.Parallel()
	for _, r := range symbols.GreekLetters {
		out, err := CompileLaTeX(string(r))
		require.NoError(t, err)

		words := strings.Fields(runenames.Name(r))
		name := strings.ToLower(words[len(words)-1])
		if strings.Contains(runenames.Name(r), "CAPITAL") {
			name = strings.ToUpper(name[:1]) + name[1:]
		}
		assert.Equal(t, `\`+name+" ", out, "%c", r)
	}

	for r, want := range map[rune]string{
		'Α': `\Alpha `, 'α': `\alpha `, 'ς': `\sigma `, 'Ω': `\Omega `, 'θ': `\theta `,
		'λ': `\lamda `, 'Λ': `\Lamda `,
	} {
		out, err := CompileLaTeX(string(r))
		require.NoError(t, err)
		assert.Equal(t, want, out)
	}
}

func TestCompile_UnusualMacroNames(t *testing.T) {
	t.Parallel()
	out, err := CompileLaTeX("@«x»")
	require.NoError(t, err)
	assert.Equal(t, `\text{}x`, out)

	out, err = CompileLaTeX("@sin\t«x»")
	require.NoError(t, err)
	assert.Equal(t, "sin\tx", out)

	_, err = CompileLaTeX("@si n«x»")
	assert.ErrorIs(t, err, parser.ErrInvalidFunctionName)
}

func TestCompileLaTeX_FractionOrder(t *testing.T) {
	t.Parallel()
	testCases := []struct{ num, den string }{
		{"a", "b"},
		{"b", "a"},
		{"x+1", "@v«y»"},
		{"@fr«1⎖2»", "3"},
		{"∑", "⇒"},
	}
	for _, tc := range testCases {
		num, err := CompileLaTeX(tc.num)
		require.NoError(t, err)
		den, err := CompileLaTeX(tc.den)
		require.NoError(t, err)

		out, err := CompileLaTeX("@fr«" + tc.num + "⎖" + tc.den + "»")
		require.NoError(t, err)
		assert.Equal(t, `\frac{`+num+"}{"+den+"}", out)
	}
}

func TestCompileHTML_Escaping(t *testing.T) {
	t.Parallel()
	const alphabet = "0123456789 +-=*/<>&!?.,;:()[]{}|'\"∞∑∫≤→"
	chars := []rune(alphabet)
	rng := rand.New(rand.NewPCG(1, 2))
	for range 100 {
		input := make([]rune, rng.IntN(20))
		for i := range input {
			input[i] = chars[rng.IntN(len(chars))]
		}

		var want strings.Builder
		want.WriteString(rootOpen)
		for _, r := range input {
			want.WriteString(ast.EscapeHTML(string(r)))
		}
		want.WriteString("</span>")

		out, err := CompileHTML(string(input))
		require.NoError(t, err)
		assert.Equal(t, want.String(), out, "input %q", string(input))
	}
}

func TestCompile_Errors(t *testing.T) {
	t.Parallel()
	for _, compile := range []func(string) (string, error){CompileHTML, CompileLaTeX} {
		out, err := compile("»")
		assert.Empty(t, out)
		assert.ErrorIs(t, err, reporter.ErrSyntax)
		assert.ErrorIs(t, err, parser.ErrUnenclosedDelimiter)

		out, err = compile("1 + @fr«2»")
		assert.Empty(t, out)
		assert.ErrorIs(t, err, reporter.ErrMacro)
		assert.ErrorIs(t, err, macro.ErrShapeMismatch)
		var ewp reporter.ErrorWithPos
		require.ErrorAs(t, err, &ewp)
		assert.Equal(t, 4, ewp.GetPosition().Index)
		assert.Equal(t, "1 + @fr«", ewp.GetPosition().Context)

		out, err = compile("@na«∑⎖1⎖2⎖3»")
		assert.Empty(t, out)
		assert.ErrorIs(t, err, ast.ErrUnsupportedShape)
	}
}

func TestCompile_TestPageFormulas(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		notation string
		latex    string
	}{
		{"@p«{⎖@tab««n»⎖«k»»⎖}»", `{\begin{pmatrix}n \\k \\\end{pmatrix}}`},
		{"x < y > z", "x < y > z"},
		{"a@at«»&b", "a@&b"},
		{"@na«∫⎖0⎖∞» @exp« »@p«(⎖@fr«-x@^«2»⎖2»⎖)» dx", `\int _{0}^{∞} \text{exp} (\frac{-x^{2}}{2}) dx`},
		{"@na«⅀⎖s∈S» @fr«@sign« »(s)⎖|s|!»", `⅀_{s∈S} \frac{\text{sign} (s)}{|s|!}`},
	}
	for _, tc := range testCases {
		out, err := CompileLaTeX(tc.notation)
		require.NoError(t, err, tc.notation)
		assert.Equal(t, tc.latex, out, tc.notation)

		out, err = CompileHTML(tc.notation)
		require.NoError(t, err, tc.notation)
		_, err = html.Parse(strings.NewReader(out))
		assert.NoError(t, err)
	}
}

func findAll(n *html.Node, pred func(*html.Node) bool) []*html.Node {
	var found []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if pred(c) {
			found = append(found, c)
		}
		found = append(found, findAll(c, pred)...)
	}
	return found
}

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, attr := range n.Attr {
		if attr.Key == "class" {
			for _, c := range strings.Fields(attr.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

func elements(n *html.Node, tag string) []*html.Node {
	var found []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			found = append(found, c)
		}
	}
	return found
}

// rowsOf returns the rows of a table, looking through the tbody the HTML
// parser inserts.
func rowsOf(table *html.Node) []*html.Node {
	var rows []*html.Node
	for _, body := range elements(table, "tbody") {
		rows = append(rows, elements(body, "tr")...)
	}
	return append(rows, elements(table, "tr")...)
}

func cellsOf(row *html.Node) []*html.Node {
	return elements(row, "td")
}

func firstElement(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return b.String()
}
