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

package vm

import (
	"strconv"

	"github.com/pkg/errors"
)

// Opcode is the low two decimal digits of an instruction word.
type Opcode Cell

// Intcode VM Opcodes.
const (
	OpAdd Opcode = iota + 1
	OpMul
	OpIn
	OpOut
	OpJumpIfTrue
	OpJumpIfFalse
	OpLessThan
	OpEquals
	OpAdjustBase
	OpHalt Opcode = 99
)

var opcodes = map[Opcode]struct {
	name  string
	arity int
}{
	OpAdd:         {"add", 3},
	OpMul:         {"mul", 3},
	OpIn:          {"in", 1},
	OpOut:         {"out", 1},
	OpJumpIfTrue:  {"jt", 2},
	OpJumpIfFalse: {"jf", 2},
	OpLessThan:    {"lt", 3},
	OpEquals:      {"eq", 3},
	OpAdjustBase:  {"arb", 1},
	OpHalt:        {"hlt", 0},
}

func (op Opcode) valid() bool {
	_, ok := opcodes[op]
	return ok
}

// Arity returns the number of operands of the instruction. It returns -1 for
// unknown opcodes.
func (op Opcode) Arity() int {
	if o, ok := opcodes[op]; ok {
		return o.arity
	}
	return -1
}

// Width returns the number of cells occupied by the instruction, including
// the instruction word.
func (op Opcode) Width() Cell {
	return Cell(op.Arity() + 1)
}

// IsTarget returns true if operand k (0 based) of op is a write target.
func (op Opcode) IsTarget(k int) bool {
	switch op {
	case OpAdd, OpMul, OpLessThan, OpEquals:
		return k == 2
	case OpIn:
		return k == 0
	}
	return false
}

func (op Opcode) String() string {
	if o, ok := opcodes[op]; ok {
		return o.name
	}
	return "op" + strconv.Itoa(int(op))
}

// Mode is an operand addressing mode.
type Mode Cell

// Addressing modes.
const (
	Position  Mode = iota // operand is an address
	Immediate             // operand is a literal value
	Relative              // operand is an offset from the relative base
)

func (m Mode) String() string {
	switch m {
	case Position:
		return "position"
	case Immediate:
		return "immediate"
	case Relative:
		return "relative"
	}
	return "mode" + strconv.Itoa(int(m))
}

// MaxOperands is the number of operand modes encoded in an instruction word.
const MaxOperands = 3

// Instruction is a decoded instruction word.
type Instruction struct {
	Op    Opcode
	Modes [MaxOperands]Mode
}

// Decode splits an instruction word into its opcode and operand modes.
//
// Mode digits are checked before the opcode, so that a word like 399 fails
// with ErrInvalidMode.
func Decode(word Cell) (ins Instruction, err error) {
	if word < 0 {
		return ins, errors.Wrapf(ErrInvalidOpcode, "instruction word %d", word)
	}
	ins.Op = Opcode(word % 100)
	m := word / 100
	for k := range ins.Modes {
		d := Mode(m % 10)
		if d > Relative {
			return ins, errors.Wrapf(ErrInvalidMode, "instruction word %d, operand %d: %d", word, k+1, d)
		}
		ins.Modes[k] = d
		m /= 10
	}
	if !ins.Op.valid() {
		return ins, errors.Wrapf(ErrInvalidOpcode, "instruction word %d", word)
	}
	return ins, nil
}

// Encode returns the instruction word for ins.
func (ins Instruction) Encode() Cell {
	w := Cell(ins.Op)
	f := Cell(100)
	for _, m := range ins.Modes {
		w += Cell(m) * f
		f *= 10
	}
	return w
}
