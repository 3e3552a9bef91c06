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
	"errors"
	"fmt"

	"github.com/pb1729/html-math/ast"
	"github.com/pb1729/html-math/reporter"
	"github.com/pb1729/html-math/walk"
)

var (
	// ErrShapeMismatch indicates a macro argument of the wrong kind, such as
	// a table row that is not an array, or the wrong number of arguments.
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrUnknownMacro is wrapped by the warning reported for a call of a
	// name that is not a macro.
	ErrUnknownMacro = errors.New("unknown macro")
)

// Expand returns root with every macro call replaced by what its macro
// builds. Arguments are expanded before the calls they belong to. root is
// not modified.
//
// A failing macro is reported to handler as an error wrapping
// [reporter.ErrMacro], at the position of its call, and expansion stops.
// Calls of unknown names are reported as warnings and expanded with
// [Fallback]. A nil handler fails on the first error.
func Expand(root *ast.Root, handler *reporter.Handler) (*ast.Root, error) {
	n, err := ExpandNode(root, handler)
	if err != nil {
		return nil, err
	}
	return n.(*ast.Root), nil
}

// ExpandNode is like [Expand] but accepts any subtree.
func ExpandNode(n ast.Node, handler *reporter.Handler) (ast.Node, error) {
	if handler == nil {
		handler = reporter.NewHandler(nil)
	}
	return walk.Rewrite(n, func(n ast.Node) (ast.Node, error) {
		call, ok := n.(*ast.Call)
		if !ok {
			return n, nil
		}
		return expandCall(call, handler)
	})
}

func expandCall(call *ast.Call, handler *reporter.Handler) (ast.Node, error) {
	name := Lookup(call.Name())
	if name == Unknown {
		handler.HandleWarning(call.Pos(), fmt.Errorf("%w: @%s", ErrUnknownMacro, call.Name()))
		return Fallback(call.Name(), call.Args()), nil
	}

	n, err := name.Build(call.Args())
	if err != nil {
		ewp := reporter.Error(call.Pos(), fmt.Errorf("%w: @%v: %w", reporter.ErrMacro, name, err))
		if err := handler.HandleError(ewp); err != nil {
			return nil, err
		}
		return nil, handler.Error()
	}
	return n, nil
}
