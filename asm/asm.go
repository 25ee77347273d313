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

package asm

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/scanner"

	"github.com/db47h/intcode/internal/iox"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

var opcodeIndex = map[string]vm.Opcode{
	"add":  vm.OpAdd,
	"mul":  vm.OpMul,
	"in":   vm.OpIn,
	"out":  vm.OpOut,
	"jt":   vm.OpJumpIfTrue,
	"jnz":  vm.OpJumpIfTrue,
	"jf":   vm.OpJumpIfFalse,
	"jz":   vm.OpJumpIfFalse,
	"lt":   vm.OpLessThan,
	"eq":   vm.OpEquals,
	"arb":  vm.OpAdjustBase,
	"rb":   vm.OpAdjustBase,
	"hlt":  vm.OpHalt,
	"halt": vm.OpHalt,
}

// ErrAsmEntry is a single assembly error.
type ErrAsmEntry struct {
	Pos scanner.Position
	Msg string
}

func (e ErrAsmEntry) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// ErrAsm is the error type returned by Assemble. It holds up to 10 entries,
// sorted by position in the source.
type ErrAsm []ErrAsmEntry

func (e ErrAsm) Error() string {
	s := make([]string, len(e))
	for k := range e {
		s[k] = e[k].Error()
	}
	return strings.Join(s, "\n")
}

func (e ErrAsm) sort() {
	sort.SliceStable(e, func(i, j int) bool { return e[i].Pos.Offset < e[j].Pos.Offset })
}

// Assemble compiles assembly read from the supplied io.Reader and returns the
// resulting image and error if any.
//
// Then name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// The returned error, if not nil, can safely be cast to an ErrAsm value.
func Assemble(name string, r io.Reader) (vm.Image, error) {
	return newParser().Parse(name, r)
}

func operand(w io.Writer, m vm.Mode, v vm.Cell) {
	switch m {
	case vm.Immediate:
		w.Write([]byte{'#'})
	case vm.Relative:
		w.Write([]byte{'%'})
	}
	io.WriteString(w, strconv.FormatInt(int64(v), 10))
}

// Disassemble writes a disassembly of the instruction at position pc in the
// given slice to the specified io.Writer and returns the position of the next
// instruction and any write error.
//
// Cells that do not decode to a valid instruction are written as .dat
// directives. Operands past the end of the slice are written as ???. Nothing
// is written if pc is outside of mem.
func Disassemble(mem []vm.Cell, pc int, w io.Writer) (next int, err error) {
	if pc < 0 || pc >= len(mem) {
		return pc, errors.Errorf("Disassemble: pc %d out of range", pc)
	}
	ew := iox.NewErrWriter(w)
	ins, derr := vm.Decode(mem[pc])
	if derr != nil {
		io.WriteString(ew, ".dat ")
		io.WriteString(ew, strconv.FormatInt(int64(mem[pc]), 10))
		return pc + 1, ew.Err
	}
	io.WriteString(ew, ins.Op.String())
	pc++
	for k := 0; k < ins.Op.Arity(); k++ {
		ew.Write([]byte{' '})
		if pc >= len(mem) {
			io.WriteString(ew, "???")
			continue
		}
		operand(ew, ins.Modes[k], mem[pc])
		pc++
	}
	return pc, ew.Err
}

// DisassembleAll writes a disassembly of all cells in the given slice to
// the specified io.Writer. The base argument specifies the real address of the
// first cell (mem[0]). It will return any write error.
func DisassembleAll(mem []vm.Cell, base int, w io.Writer) error {
	ew := iox.NewErrWriter(w)
	for pc := 0; pc < len(mem); {
		fmt.Fprintf(ew, "% 10d\t", base+pc)
		pc, _ = Disassemble(mem, pc, ew)
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}
