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

// Package parser contains the logic for parsing formula notation into an AST
// (abstract syntax tree).
//
// The notation is plain text with four control characters: [StartCall],
// [OpenGroup], [ArgSep], and [CloseGroup]. Every other character is a leaf of
// the tree: a letter becomes an [ast.Variable], anything else an
// [ast.Regular]. A macro call is written
//
//	@name«first⎖second»
//
// and a group with no macro name is an array literal, «a⎖b».
//
// Parsing produces a tree that may contain [ast.Call] nodes. Package macro
// expands those into the nodes their macros build.
package parser
