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

import "github.com/pkg/errors"

// Signal is the reason why Run returned control to the caller.
type Signal int

// Run signals.
const (
	NeedsInput     Signal = iota + 1 // a Read Input instruction found the input queue empty
	ProducedOutput                   // a Write Output instruction completed (StopOnOutput contract)
	Halted                           // a Halt instruction was reached
)

func (s Signal) String() string {
	switch s {
	case NeedsInput:
		return "needs input"
	case ProducedOutput:
		return "produced output"
	case Halted:
		return "halted"
	}
	return "none"
}

func (i *Instance) decode() (ins Instruction, err error) {
	if i.pc < 0 {
		return ins, errors.Wrapf(ErrNegativeAddress, "instruction pointer %d", i.pc)
	}
	w, err := i.mem.Read(i.pc)
	if err != nil {
		return ins, err
	}
	if ins, err = Decode(w); err != nil {
		return ins, err
	}
	if i.ops != nil && !i.ops[ins.Op] {
		return ins, errors.Wrapf(ErrInvalidOpcode, "opcode %d not in instruction set", ins.Op)
	}
	if i.modes != 0 {
		for k := 0; k < ins.Op.Arity(); k++ {
			if i.modes&(1<<uint(ins.Modes[k])) == 0 {
				return ins, errors.Wrapf(ErrInvalidMode, "operand %d: %s mode not supported", k+1, ins.Modes[k])
			}
		}
	}
	return ins, nil
}

// operand returns the value of operand k (0 based) of the current instruction.
func (i *Instance) operand(ins Instruction, k int) (Cell, error) {
	raw, err := i.mem.Read(i.pc + Cell(k) + 1)
	if err != nil {
		return 0, err
	}
	switch ins.Modes[k] {
	case Immediate:
		return raw, nil
	case Relative:
		raw += i.rb
	}
	v, err := i.mem.Read(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "operand %d", k+1)
	}
	return v, nil
}

// target returns the address designated by operand k (0 based) of the current
// instruction.
func (i *Instance) target(ins Instruction, k int) (Cell, error) {
	raw, err := i.mem.Read(i.pc + Cell(k) + 1)
	if err != nil {
		return 0, err
	}
	switch ins.Modes[k] {
	case Immediate:
		return 0, errors.Wrapf(ErrInvalidWriteTarget, "operand %d", k+1)
	case Relative:
		raw += i.rb
	}
	if raw < 0 {
		return 0, errors.Wrapf(ErrNegativeAddress, "operand %d: write %d", k+1, raw)
	}
	return raw, nil
}

// binop executes a three operand arithmetic or comparison instruction.
func (i *Instance) binop(ins Instruction, f func(a, b Cell) Cell) error {
	a, err := i.operand(ins, 0)
	if err != nil {
		return err
	}
	b, err := i.operand(ins, 1)
	if err != nil {
		return err
	}
	dst, err := i.target(ins, 2)
	if err != nil {
		return err
	}
	if err = i.mem.Write(dst, f(a, b)); err != nil {
		return err
	}
	i.pc += 4
	return nil
}

// jump executes a conditional jump. The jump is taken if the first operand
// being zero matches ifZero.
func (i *Instance) jump(ins Instruction, ifZero bool) error {
	v, err := i.operand(ins, 0)
	if err != nil {
		return err
	}
	dst, err := i.operand(ins, 1)
	if err != nil {
		return err
	}
	if (v == 0) == ifZero {
		i.pc = dst
	} else {
		i.pc += 3
	}
	return nil
}

func add(a, b Cell) Cell { return a + b }
func mul(a, b Cell) Cell { return a * b }

func lessThan(a, b Cell) Cell {
	if a < b {
		return 1
	}
	return 0
}

func equals(a, b Cell) Cell {
	if a == b {
		return 1
	}
	return 0
}

// Run resumes execution of the VM from the current instruction pointer.
//
// Run returns NeedsInput if a Read Input instruction finds the input queue
// empty. In this case, the instruction pointer is left on the Read Input
// instruction, which will be executed again by the next call to Run.
//
// If the VM was configured with StopOnOutput(true), Run returns ProducedOutput
// and the output value after each Write Output instruction. The value is also
// appended to the output queue.
//
// Run returns Halted when the program executes a Halt instruction, along with
// the last value output during this call, if any (0 otherwise). Calling Run on
// a halted VM returns Halted immediately.
//
// Any other condition is a fault: the VM stops with the instruction pointer
// on the faulting instruction, switches to StateFaulted and Run returns the
// error. Memory changes made by the faulting instruction are not rolled back.
// Calling Run on a faulted VM returns the same error.
func (i *Instance) Run() (Signal, Cell, error) {
	return i.run(i.stopOnOut)
}

func (i *Instance) run(stopOnOut bool) (Signal, Cell, error) {
	switch i.state {
	case StateHalted:
		return Halted, 0, nil
	case StateFaulted:
		return 0, 0, i.err
	}
	i.state = StateRunning
	var out Cell
	for {
		ins, err := i.decode()
		if err != nil {
			return i.fault(err)
		}
		if i.trace != nil {
			i.trace(i, i.pc, ins)
		}
		switch ins.Op {
		case OpAdd:
			err = i.binop(ins, add)
		case OpMul:
			err = i.binop(ins, mul)
		case OpIn:
			if i.input.Empty() {
				i.state = StateSuspendedForInput
				return NeedsInput, 0, nil
			}
			var dst Cell
			if dst, err = i.target(ins, 0); err != nil {
				break
			}
			v, _ := i.input.Dequeue()
			if err = i.mem.Write(dst, v.(Cell)); err == nil {
				i.pc += 2
			}
		case OpOut:
			var v Cell
			if v, err = i.operand(ins, 0); err != nil {
				break
			}
			i.output.Enqueue(v)
			i.last, i.hasLast, out = v, true, v
			i.pc += 2
			if stopOnOut {
				i.insCount++
				i.state = StateSuspendedForOutput
				return ProducedOutput, v, nil
			}
		case OpJumpIfTrue:
			err = i.jump(ins, false)
		case OpJumpIfFalse:
			err = i.jump(ins, true)
		case OpLessThan:
			err = i.binop(ins, lessThan)
		case OpEquals:
			err = i.binop(ins, equals)
		case OpAdjustBase:
			var v Cell
			if v, err = i.operand(ins, 0); err == nil {
				i.rb += v
				i.pc += 2
			}
		case OpHalt:
			i.insCount++
			i.state = StateHalted
			return Halted, out, nil
		}
		if err != nil {
			return i.fault(err)
		}
		i.insCount++
	}
}

// RunToCompletion runs the VM until it halts, buffering all outputs, and
// returns the drained output queue.
//
// If the VM needs input and none is available, RunToCompletion returns the
// outputs produced so far and an error wrapping ErrInputExhausted. The VM
// itself is left suspended for input and may be resumed with Run after more
// input has been pushed.
func (i *Instance) RunToCompletion() ([]Cell, error) {
	sig, _, err := i.run(false)
	if err != nil {
		return i.DrainOutput(), err
	}
	if sig == NeedsInput {
		return i.DrainOutput(), errors.Wrapf(ErrInputExhausted, "@pc=%d", i.pc)
	}
	return i.DrainOutput(), nil
}

// Exec is a convenience function that creates a new VM for the given image and
// inputs, runs it to completion and returns its outputs.
func Exec(image Image, inputs ...Cell) ([]Cell, error) {
	i, err := New(image, Input(inputs...))
	if err != nil {
		return nil, err
	}
	return i.RunToCompletion()
}
