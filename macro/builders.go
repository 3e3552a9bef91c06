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

package macro

import (
	"fmt"
	"math"

	"github.com/pb1729/html-math/ast"
)

type builder func(args []ast.Node) (ast.Node, error)

type definition struct {
	name, goName, doc string

	minArgs, maxArgs int
	// arityErr is the kind of error for a call with the wrong number of
	// arguments. Defaults to ErrShapeMismatch.
	arityErr error

	build builder
}

var macros = [numNames]definition{
	Table: {
		name: "tab", goName: "Table", doc: "table; one array argument per row",
		minArgs: 1, maxArgs: -1,
		build: grid(),
	},
	Matrix: {
		name: "mat", goName: "Matrix", doc: "matrix; one array argument per row",
		minArgs: 1, maxArgs: -1,
		build: grid(ast.ClassMatrix),
	},
	BoxMatrix: {
		name: "box", goName: "BoxMatrix", doc: "boxed matrix; one array argument per row",
		minArgs: 1, maxArgs: -1,
		build: grid(ast.ClassMatrix, ast.ClassBoxMatrix),
	},
	Fraction: {
		name: "fr", goName: "Fraction", doc: "fraction: numerator, denominator",
		minArgs: 2, maxArgs: 2,
		build: binary(func(num, den ast.Node) (ast.Node, error) {
			return ast.NewFraction(num, den), nil
		}),
	},
	Scripts: {
		name: "ss", goName: "Scripts", doc: "superscript and subscript",
		minArgs: 2, maxArgs: 2,
		build: binary(func(sup, sub ast.Node) (ast.Node, error) {
			return ast.NewScripts(sup, sub), nil
		}),
	},
	Sup: {
		name: "^", goName: "Sup", doc: "superscript",
		minArgs: 1, maxArgs: 1,
		build: unary(func(sup ast.Node) (ast.Node, error) {
			return ast.NewScripts(sup, nil), nil
		}),
	},
	Sub: {
		name: "_", goName: "Sub", doc: "subscript",
		minArgs: 1, maxArgs: 1,
		build: unary(func(sub ast.Node) (ast.Node, error) {
			return ast.NewScripts(nil, sub), nil
		}),
	},
	At: {
		name: "at", goName: "At", doc: "a literal @; the argument is ignored",
		minArgs: 0, maxArgs: -1,
		build: func([]ast.Node) (ast.Node, error) {
			return ast.NewRegular("@"), nil
		},
	},
	Vector: {
		name: "v", goName: "Vector", doc: "vector: a bold variable",
		minArgs: 1, maxArgs: 1,
		build: unary(styled(func(v *ast.Variable) *ast.Variable {
			return v.WithStyle(v.Italic(), true)
		})),
	},
	MatrixStyle: {
		name: "M", goName: "MatrixStyle", doc: "matrix: a bold upright variable",
		minArgs: 1, maxArgs: 1,
		build: unary(styled(func(v *ast.Variable) *ast.Variable {
			return v.WithStyle(false, true)
		})),
	},
	Surround: {
		name: "p", goName: "Surround", doc: "delimiters scaled to their content: left, middle, right",
		minArgs: 3, maxArgs: 3,
		build: ternary(surround),
	},
	NAry: {
		name: "na", goName: "NAry", doc: "n-ary operator: symbol, lower bound, upper bound",
		minArgs: 1, maxArgs: 3,
		arityErr: ast.ErrUnsupportedShape,
		build:    nary,
	},
}

// Build applies the macro to already expanded arguments.
//
// If the arguments do not suit the macro, the error wraps [ErrShapeMismatch]
// or [ast.ErrUnsupportedShape]. Build panics if n is [Unknown]; use
// [Fallback] for calls of unknown macros.
func (n Name) Build(args []ast.Node) (ast.Node, error) {
	if n == Unknown || n >= numNames {
		panic(fmt.Sprintf("macro: Build called on %#v", n))
	}
	m := &macros[n]
	if len(args) < m.minArgs || (m.maxArgs >= 0 && len(args) > m.maxArgs) {
		kind := m.arityErr
		if kind == nil {
			kind = ErrShapeMismatch
		}
		return nil, fmt.Errorf("%w: %s, got %d", kind, arityString(m.minArgs, m.maxArgs), len(args))
	}
	return m.build(args)
}

// Fallback returns the rendering of a call of a macro that does not exist:
// the name as an upright symbol, followed by the arguments.
func Fallback(name string, args []ast.Node) ast.Node {
	return ast.NewList(append([]ast.Node{ast.NewRegular(name)}, args...)...)
}

func arityString(minArgs, maxArgs int) string {
	plural := func(n int) string {
		if n == 1 {
			return "1 argument"
		}
		return fmt.Sprint(n, " arguments")
	}
	switch {
	case maxArgs < 0:
		return "want at least " + plural(minArgs)
	case minArgs == maxArgs:
		return "want " + plural(minArgs)
	default:
		return fmt.Sprintf("want %d to %s", minArgs, plural(maxArgs))
	}
}

func unary(f func(ast.Node) (ast.Node, error)) builder {
	return func(args []ast.Node) (ast.Node, error) { return f(args[0]) }
}

func binary(f func(ast.Node, ast.Node) (ast.Node, error)) builder {
	return func(args []ast.Node) (ast.Node, error) { return f(args[0], args[1]) }
}

func ternary(f func(ast.Node, ast.Node, ast.Node) (ast.Node, error)) builder {
	return func(args []ast.Node) (ast.Node, error) { return f(args[0], args[1], args[2]) }
}

// grid builds a table from rows given as array literals.
func grid(classes ...ast.Class) builder {
	return func(args []ast.Node) (ast.Node, error) {
		rows := make([][]ast.Node, len(args))
		for i, arg := range args {
			row, err := unpack[*ast.Array](arg)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			rows[i] = row.Entries()
		}
		t, err := ast.NewTable(rows, classes...)
		if err != nil {
			return nil, err
		}
		return t, nil
	}
}

// styled restyles a variable argument.
func styled(style func(*ast.Variable) *ast.Variable) func(ast.Node) (ast.Node, error) {
	return func(arg ast.Node) (ast.Node, error) {
		v, err := unpack[*ast.Variable](arg)
		if err != nil {
			return nil, err
		}
		return style(v), nil
	}
}

func surround(left, middle, right ast.Node) (ast.Node, error) {
	height := middle.Height()
	if math.IsInf(height, 0) || math.IsNaN(height) {
		return nil, fmt.Errorf("%w: middle is too tall to surround", ast.ErrUnsupportedShape)
	}
	return ast.NewList(ast.NewScale(left, height), middle, ast.NewScale(right, height)), nil
}

func nary(args []ast.Node) (ast.Node, error) {
	var lower, upper ast.Node
	if len(args) > 1 {
		lower = args[1]
	}
	if len(args) > 2 {
		upper = args[2]
	}
	return ast.NewNAry(args[0], lower, upper), nil
}

// unpack returns arg as a T. arg may be a T or a list holding only a T, as
// every argument of a call is parsed into a list.
func unpack[T ast.Node](arg ast.Node) (T, error) {
	if t, ok := arg.(T); ok {
		return t, nil
	}
	if l, ok := arg.(*ast.List); ok && len(l.Children()) == 1 {
		if t, ok := l.Children()[0].(T); ok {
			return t, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: want %s, got %s", ErrShapeMismatch, describe(zero), describe(arg))
}

// describe names the kind of n for error messages.
func describe(n ast.Node) string {
	switch n := n.(type) {
	case *ast.List:
		switch len(n.Children()) {
		case 0:
			return "nothing"
		case 1:
			return describe(n.Children()[0])
		default:
			return fmt.Sprintf("%d items", len(n.Children()))
		}
	case *ast.Array:
		return "an array"
	case *ast.Variable:
		if n == nil {
			return "a variable"
		}
		return fmt.Sprintf("variable %q", n.Letter())
	case *ast.Regular:
		return fmt.Sprintf("symbol %q", n.Symbol())
	case *ast.Table:
		return "a table"
	case *ast.Scale:
		return "a scaled expression"
	default:
		return fmt.Sprintf("%T", n)
	}
}
