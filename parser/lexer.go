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

package parser

import (
	"bytes"
	"io"
	"unicode/utf8"
)

var utf8Bom = []byte{0xEF, 0xBB, 0xBF}

// runeReader walks the runes of a formula. Positions are rune indices.
type runeReader struct {
	data []rune
	pos  int
}

// readInput reads all of in. A leading byte order mark is dropped. If the
// input is not valid UTF-8, text is the valid part before the first bad byte
// and valid is false.
func readInput(in io.Reader) (text string, valid bool, err error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return "", false, err
	}
	data = bytes.TrimPrefix(data, utf8Bom)
	if utf8.Valid(data) {
		return string(data), true, nil
	}
	var n int
	for n < len(data) {
		r, size := utf8.DecodeRune(data[n:])
		if r == utf8.RuneError && size <= 1 {
			break
		}
		n += size
	}
	return string(data[:n]), false, nil
}

func newRuneReader(text string) *runeReader {
	return &runeReader{data: []rune(text)}
}

func (rr *runeReader) eof() bool {
	return rr.pos == len(rr.data)
}

// peek returns the current rune. It must not be called at EOF.
func (rr *runeReader) peek() rune {
	return rr.data[rr.pos]
}

func (rr *runeReader) offset() int {
	return rr.pos
}

func (rr *runeReader) advance() {
	rr.pos++
}

// indexFrom returns the index of the first r at or after from, or -1.
func (rr *runeReader) indexFrom(from int, r rune) int {
	for i := from; i < len(rr.data); i++ {
		if rr.data[i] == r {
			return i
		}
	}
	return -1
}

// slice returns the runes in [from, to) as a string.
func (rr *runeReader) slice(from, to int) string {
	return string(rr.data[from:to])
}

func (rr *runeReader) seek(pos int) {
	rr.pos = pos
}
