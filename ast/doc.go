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

// Package ast defines the syntax tree of a compiled formula.
//
// Every node can render itself as an HTML fragment, render itself as LaTeX
// source, and estimate its own height. The height estimate is a unitless
// value used to size delimiters that must stretch to the content they
// surround.
//
// Nodes are immutable once constructed. A tree produced by the parser may
// contain [Call] nodes, which only describe a macro invocation; package macro
// expands them into concrete nodes before rendering. A [Call] that reaches a
// renderer prints an "unimplemented" marker.
//
// The class names attached to HTML containers (see [Class]) are a contract
// with the stylesheet that lays them out. The height multipliers of
// [Table] layouts encode the same shrink factors as that stylesheet.
package ast
