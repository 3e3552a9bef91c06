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

// Call is an unexpanded macro invocation, such as @fr«a⎖b».
//
// The parser produces calls; package macro replaces each of them with the
// node its macro builds. A call has no rendering of its own.
type Call struct {
	Unimplemented

	name string
	args []Node
	pos  SourcePos
}

var _ Node = (*Call)(nil)

// NewCall returns a call of the named macro. pos is the position of the
// call's start delimiter.
func NewCall(name string, args []Node, pos SourcePos) *Call {
	return &Call{name: name, args: args, pos: pos}
}

// Name returns the macro name.
func (c *Call) Name() string {
	return c.name
}

// Args returns the call's arguments. The result must not be modified.
func (c *Call) Args() []Node {
	return c.args
}

// Pos returns the position of the call in its source.
func (c *Call) Pos() SourcePos {
	return c.pos
}

// WithArgs returns a copy of c with different arguments.
func (c *Call) WithArgs(args []Node) *Call {
	return &Call{name: c.name, args: args, pos: c.pos}
}
