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

// Package macro expands the macro calls in a parsed formula.
//
// Parsing leaves an [ast.Call] wherever the formula says @name«...». [Expand]
// replaces every call, innermost first, with the node its macro builds from
// the already expanded arguments. The result contains no calls and is ready
// to render.
//
// The macros are a closed set, enumerated by [Name]. A call of any other
// name is kept as generic function notation: the name set upright, followed
// by the arguments, as in @sin«x».
package macro
