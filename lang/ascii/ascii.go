// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ascii provides utility functions to converse in text with intcode
// programs.
//
// Text programs read one character per input value and write one character
// per output value. Output values outside of the ASCII range are used to
// report results, like a final score, and are not part of the text.
package ascii

import (
	"io"
	"strconv"
	"strings"

	"github.com/db47h/intcode/internal/iox"
	"github.com/db47h/intcode/vm"
)

// MaxChar is the highest value considered as text by Decode.
const MaxChar = 127

// Encode returns the input values for the bytes of s.
func Encode(s string) []vm.Cell {
	c := make([]vm.Cell, len(s))
	for k := 0; k < len(s); k++ {
		c[k] = vm.Cell(s[k])
	}
	return c
}

// Line returns the input values for s followed by a new line.
func Line(s string) []vm.Cell {
	return append(Encode(s), '\n')
}

// Decode splits output values into text and the remaining non-text values.
// Values in the range 0..MaxChar go to text, others are returned in order in
// rest.
func Decode(cells []vm.Cell) (text string, rest []vm.Cell) {
	var b strings.Builder
	for _, c := range cells {
		if c < 0 || c > MaxChar {
			rest = append(rest, c)
			continue
		}
		b.WriteByte(byte(c))
	}
	return b.String(), rest
}

// Print writes output values to w. Text is written as is, other values are
// written in decimal on a line of their own.
func Print(w io.Writer, cells []vm.Cell) error {
	ew := iox.NewErrWriter(w)
	var b []byte
	nl := true
	for _, c := range cells {
		b = b[:0]
		if c < 0 || c > MaxChar {
			if !nl {
				b = append(b, '\n')
			}
			b = strconv.AppendInt(b, int64(c), 10)
			b = append(b, '\n')
		} else {
			b = append(b, byte(c))
		}
		nl = b[len(b)-1] == '\n'
		ew.Write(b)
	}
	return ew.Err
}
