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

import "fmt"

// Name is one of the macros a formula can call.
type Name byte

const (
	Unknown Name = iota

	// Grids. Each argument is an array literal holding one row.
	Table     // @tab«...»: a plain table.
	Matrix    // @mat«...»: a matrix.
	BoxMatrix // @box«...»: a matrix drawn in a box.

	Fraction // @fr«num⎖den»
	Scripts  // @ss«sup⎖sub»
	Sup      // @^«sup»
	Sub      // @_«sub»

	At // @at«»: a literal @.

	// Variable styling. The argument must be a single variable.
	Vector      // @v«x»: bold.
	MatrixStyle // @M«A»: bold and upright.

	Surround // @p«left⎖middle⎖right»: delimiters scaled to the middle.
	NAry     // @na«symbol⎖lower⎖upper»: a large operator with bounds.

	numNames
)

// Lookup looks up a macro by the name it is called with.
//
// If name does not name a macro, returns [Unknown].
func Lookup(name string) Name {
	for n := Unknown + 1; n < numNames; n++ {
		if macros[n].name == name {
			return n
		}
	}
	return Unknown
}

// All returns every macro, in declaration order.
func All() []Name {
	all := make([]Name, 0, numNames-1)
	for n := Unknown + 1; n < numNames; n++ {
		all = append(all, n)
	}
	return all
}

// String implements [fmt.Stringer]. It returns the name the macro is called
// with.
func (n Name) String() string {
	if n == Unknown || n >= numNames {
		return fmt.Sprintf("Name(%d)", byte(n))
	}
	return macros[n].name
}

// GoString implements [fmt.GoStringer].
func (n Name) GoString() string {
	if n == Unknown || n >= numNames {
		return fmt.Sprintf("macro.Name(%d)", byte(n))
	}
	return "macro." + macros[n].goName
}

// Arity returns the least and greatest number of arguments the macro
// accepts. A max of -1 means any number.
func (n Name) Arity() (minArgs, maxArgs int) {
	if n == Unknown || n >= numNames {
		return 0, -1
	}
	return macros[n].minArgs, macros[n].maxArgs
}

// Doc returns a one-line description of the macro.
func (n Name) Doc() string {
	if n == Unknown || n >= numNames {
		return ""
	}
	return macros[n].doc
}
