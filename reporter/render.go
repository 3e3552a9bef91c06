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

package reporter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/rivo/uniseg"
)

// Level is the severity of a rendered diagnostic.
type Level int

const (
	LevelError Level = iota
	LevelWarning
)

func (l Level) String() string {
	if l == LevelWarning {
		return "warning"
	}
	return "error"
}

// Renderer formats errors for display in a terminal.
type Renderer struct {
	// If set, rendering results are enriched with ANSI color escapes.
	Colorize bool
	// If set, each diagnostic is rendered on one line, in the style of the
	// Go compiler, without the source excerpt.
	Compact bool
}

// Diagnostic renders err at the given level. If err carries a position (see
// ErrorWithPos), the text around the position is shown with a caret under
// the offending character.
func (r Renderer) Diagnostic(level Level, err error) string {
	c := r.colors(level)

	var ewp ErrorWithPos
	if !errors.As(err, &ewp) {
		return fmt.Sprintf("%s: %s\n", c.level.Sprint(level), err)
	}
	pos := ewp.GetPosition()
	msg := ewp.Unwrap().Error()

	if r.Compact {
		return fmt.Sprintf("%s: %s: %s\n", pos, c.level.Sprint(level), msg)
	}

	var out strings.Builder
	fmt.Fprintf(&out, "%s: %s\n", c.level.Sprint(level), c.message.Sprint(msg))
	fmt.Fprintf(&out, "  %s %s\n", c.accent.Sprint("-->"), pos)
	if pos.Context == "" {
		return out.String()
	}
	context := printable(pos.Context)
	column := uniseg.StringWidth(context[:min(pos.ContextOffset, len(context))])
	fmt.Fprintf(&out, "   %s\n", c.accent.Sprint("|"))
	fmt.Fprintf(&out, "   %s %s\n", c.accent.Sprint("|"), context)
	fmt.Fprintf(&out, "   %s %s%s\n", c.accent.Sprint("|"), strings.Repeat(" ", column), c.level.Sprint("^"))
	return out.String()
}

type stylesheet struct {
	level, message, accent *color.Color
}

func (r Renderer) colors(level Level) stylesheet {
	attr := color.FgRed
	if level == LevelWarning {
		attr = color.FgYellow
	}
	c := stylesheet{
		level:   color.New(attr, color.Bold),
		message: color.New(color.Bold),
		accent:  color.New(color.FgBlue, color.Bold),
	}
	for _, col := range []*color.Color{c.level, c.message, c.accent} {
		if r.Colorize {
			col.EnableColor()
		} else {
			col.DisableColor()
		}
	}
	return c
}

// printable replaces line breaks and tabs with spaces, so that an excerpt
// stays on one line and keeps its column widths.
func printable(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', '\t':
			return ' '
		}
		return r
	}, s)
}
