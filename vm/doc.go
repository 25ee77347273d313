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

// Package vm implements an intcode virtual machine.
//
// An intcode program is a sequence of signed integers loaded into memory at
// address 0. The memory is a sparse, auto-extending address space of 64 bits
// cells: reading an address that was never written returns 0.
//
// Each instruction word holds an opcode in its two lowest decimal digits and
// one addressing mode per operand in the higher digits: the hundreds digit is
// the mode of the first operand, the thousands digit the mode of the second,
// and so on. Supported modes are Position (0), Immediate (1) and Relative (2).
//
//	opcode	asm	operands	description
//	------	---	--------	---------------------------------------------------
//	1	add	a b dst		dst = a + b
//	2	mul	a b dst		dst = a * b
//	3	in	dst		read one value from the input queue into dst
//	4	out	a		append a to the output queue
//	5	jt	a target	jump to target if a != 0
//	6	jf	a target	jump to target if a == 0
//	7	lt	a b dst		dst = 1 if a < b, else 0
//	8	eq	a b dst		dst = 1 if a == b, else 0
//	9	arb	a		add a to the relative base
//	99	hlt			halt
//
// The VM communicates with the outside world through two FIFO queues. Run
// executes instructions until the VM needs input that is not available,
// produces an output (only if the StopOnOutput option is set) or halts. Each
// of these is reported as a Signal; faults are reported as errors wrapping
// one of the Err* fault kinds.
//
// A VM has no background activity: multiple instances can be chained or
// connected in a feedback loop by moving values between their queues between
// calls to Run. The pipeline package provides helpers for this.
//
// Instances are not safe for concurrent use.
package vm
