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
	"fmt"
	"math"
	"strconv"
)

// Scale draws its child at a multiple of the surrounding font size.
//
// LaTeX sizes delimiters and operators on its own, so the factor only
// affects HTML output and height estimates.
type Scale struct {
	child  Node
	factor float64
}

var _ Node = (*Scale)(nil)

// NewScale returns child scaled by factor. It panics if factor is not a
// positive number.
func NewScale(child Node, factor float64) *Scale {
	if !(factor > 0) || math.IsInf(factor, 1) {
		panic(fmt.Sprintf("ast: invalid scale factor %v", factor))
	}
	return &Scale{child: child, factor: factor}
}

// Child returns the scaled node.
func (s *Scale) Child() Node {
	return s.child
}

// Factor returns the scale factor.
func (s *Scale) Factor() float64 {
	return s.factor
}

// HTML implements [Node].
func (s *Scale) HTML() string {
	percent := strconv.FormatFloat(math.Trunc(100*s.factor), 'f', 0, 64)
	style := ` style="font-size:` + percent + `%;"`
	return htmlTag("span", []Class{ClassFormula}, s.child.HTML(), style)
}

// LaTeX implements [Node].
func (s *Scale) LaTeX() string {
	return s.child.LaTeX()
}

// Height implements [Node].
func (s *Scale) Height() float64 {
	return s.factor * s.child.Height()
}
