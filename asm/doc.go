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

// Package asm provides utility functions to assemble and disassemble intcode
// programs.
//
// Supported assembler mnemonics:
//
//	opcode	asm		operands	description
//	------	---		--------	-----------------------------------------------
//	1	add		a b dst		dst = a + b
//	2	mul		a b dst		dst = a * b
//	3	in		dst		read one input value into dst
//	4	out		a		output a
//	5	jt, jnz		a target	jump to target if a != 0
//	6	jf, jz		a target	jump to target if a == 0
//	7	lt		a b dst		dst = 1 if a < b, else 0
//	8	eq		a b dst		dst = 1 if a == b, else 0
//	9	arb, rb		a		add a to the relative base
//	99	hlt, halt			halt
//
// Mnemonics are case insensitive.
//
// Operands:
//
// The addressing mode of an operand is selected by its prefix:
//
//	42	position mode: the value at address 42
//	#42	immediate mode: the value 42
//	%42	relative mode: the value at address relative base + 42
//
// The assembler computes the mode digits of the instruction word from the
// operand prefixes. Write targets (dst above) cannot be immediate; this is
// reported as an error.
//
// Comments:
//
// Comments are placed between parentheses, i.e. '(' and ')'. The body of the
// comment must be separated from the enclosing parentheses by a space:
//
//	( this is a valid comment )
//	( this is a
//	  rather long
//	  multiline comment )
//
// Literals and label/const identifiers:
//
// Input is split at white space (space, tab or new line) into tokens. An operand
// value can be:
//
//	- an integer literal, as accepted by strconv.ParseInt with base 0.
//	- a Go character literal between single quotes, converted to the
//	  corresponding rune value. The literal cannot contain white space: use 32
//	  instead of ' '.
//	- the name of a constant defined with .equ.
//	- anything else is a label reference. Forward references are ok.
//
// Where the parser is expecting an instruction, a literal or constant is
// compiled as-is into a data cell:
//
//	hlt
//	1 2 3	( three data cells )
//
// Labels:
//
// Labels are defined by prefixing them with a colon (:) and can be used as an
// operand value (without the ':' prefix). For example:
//
//	:loop	in buf
//		out buf
//		jt #1 #loop
//	:buf	0
//
// Local labels:
//
// Local labels work in the same way as in the GNU assembler. They are defined
// as a colon followed by a sequence of digits (i.e. :007, :0, :42) and can be
// defined multiple times. The assembler internally assigns them a unique name
// of the form N·counter (the middle character is '·'). References to such
// labels must be suffixed with either a '-' (backward reference to the last
// definition of this label), or a '+' (forward reference to the next
// definition of this label):
//
//	:1	jt #1 #1+
//	:1	jt #1 #1-
//
// Assembler directives:
//
//	.equ <IDENTIFIER> <value>
//
// defines a constant value. The value must be an integer, named constant or
// character literal.
//
//	.org <value>
//
// places the next instruction or data cell at the given address. Gaps are
// filled with zeros. The address must be lower than MaxImageSize.
//
//	.dat <value>
//
// compiles the given value as-is. Unlike bare literals, the value of a .dat
// directive can also be a label reference:
//
//	:ptr	.dat table
//
// Disassembly:
//
// Disassemble and DisassembleAll use the same syntax. Cells that are not valid
// instructions are written as .dat directives, and missing operands at the end
// of the input are written as ???.
package asm
