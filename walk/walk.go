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

// Package walk provides traversal of formula trees: depth-first visits
// with enter and exit callbacks, and bottom-up rewriting.
package walk

import (
	"github.com/pb1729/html-math/ast"
)

// Nodes walks the tree rooted at n in depth-first pre-order, calling fn for
// each node. If fn returns an error, the walk stops and returns it.
func Nodes(n ast.Node, fn func(ast.Node) error) error {
	return NodesEnterAndExit(n, fn, nil)
}

// NodesEnterAndExit walks the tree rooted at n, calling enter before a
// node's children are visited and exit, if not nil, after. If either returns
// an error, the walk stops and returns it.
func NodesEnterAndExit(n ast.Node, enter, exit func(ast.Node) error) error {
	if err := enter(n); err != nil {
		return err
	}
	for _, child := range Children(n) {
		if err := NodesEnterAndExit(child, enter, exit); err != nil {
			return err
		}
	}
	if exit != nil {
		if err := exit(n); err != nil {
			return err
		}
	}
	return nil
}

// Children returns the direct children of n, in source order. Table cells
// are returned row by row.
func Children(n ast.Node) []ast.Node {
	switch n := n.(type) {
	case *ast.Root:
		return []ast.Node{n.Child()}
	case *ast.List:
		return n.Children()
	case *ast.Array:
		return n.Entries()
	case *ast.Scale:
		return []ast.Node{n.Child()}
	case *ast.Call:
		return n.Args()
	case *ast.Table:
		var cells []ast.Node
		for _, row := range n.Rows() {
			cells = append(cells, row...)
		}
		return cells
	default:
		return nil
	}
}

// Rewrite rebuilds the tree rooted at n bottom-up. The children of each node
// are rewritten first; then fn is called with the node, rebuilt around its
// rewritten children, and its result takes the node's place.
//
// Nodes whose subtree fn leaves unchanged are reused rather than copied. The
// input tree is never modified. If fn returns an error, Rewrite stops and
// returns it.
func Rewrite(n ast.Node, fn func(ast.Node) (ast.Node, error)) (ast.Node, error) {
	var rebuilt ast.Node = n
	switch n := n.(type) {
	case *ast.Root:
		child, err := Rewrite(n.Child(), fn)
		if err != nil {
			return nil, err
		}
		if child != n.Child() {
			rebuilt = ast.NewRoot(child)
		}

	case *ast.List:
		children, changed, err := rewriteAll(n.Children(), fn)
		if err != nil {
			return nil, err
		}
		if changed {
			rebuilt = ast.NewList(children...)
		}

	case *ast.Array:
		entries, changed, err := rewriteAll(n.Entries(), fn)
		if err != nil {
			return nil, err
		}
		if changed {
			rebuilt = ast.NewArray(entries...)
		}

	case *ast.Scale:
		child, err := Rewrite(n.Child(), fn)
		if err != nil {
			return nil, err
		}
		if child != n.Child() {
			rebuilt = ast.NewScale(child, n.Factor())
		}

	case *ast.Call:
		args, changed, err := rewriteAll(n.Args(), fn)
		if err != nil {
			return nil, err
		}
		if changed {
			rebuilt = n.WithArgs(args)
		}

	case *ast.Table:
		rows := make([][]ast.Node, len(n.Rows()))
		var changed bool
		for i, row := range n.Rows() {
			cells, rowChanged, err := rewriteAll(row, fn)
			if err != nil {
				return nil, err
			}
			rows[i] = cells
			changed = changed || rowChanged
		}
		if changed {
			rebuilt = n.WithRows(rows)
		}
	}
	return fn(rebuilt)
}

func rewriteAll(nodes []ast.Node, fn func(ast.Node) (ast.Node, error)) ([]ast.Node, bool, error) {
	out := make([]ast.Node, len(nodes))
	var changed bool
	for i, n := range nodes {
		rewritten, err := Rewrite(n, fn)
		if err != nil {
			return nil, false, err
		}
		out[i] = rewritten
		changed = changed || rewritten != n
	}
	if !changed {
		return nodes, false, nil
	}
	return out, true, nil
}
