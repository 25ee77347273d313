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
	"fmt"
	"io"

	"github.com/db47h/intcode/internal/iox"
	"github.com/emirpasic/gods/queues/linkedlistqueue"
	"github.com/pkg/errors"
)

// Cell is the raw type stored in a memory location.
type Cell int64

// State is the run state of an Instance.
type State int

// VM states.
const (
	StateReady State = iota
	StateRunning
	StateSuspendedForInput
	StateSuspendedForOutput
	StateHalted
	StateFaulted
)

var stateNames = [...]string{
	"ready",
	"running",
	"suspended for input",
	"suspended for output",
	"halted",
	"faulted",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// Instance represents an intcode VM instance.
type Instance struct {
	mem       Memory
	pc        Cell
	rb        Cell
	state     State
	err       error
	input     *linkedlistqueue.Queue
	output    *linkedlistqueue.Queue
	last      Cell
	hasLast   bool
	insCount  int64
	stopOnOut bool
	trace     TraceFunc
	ops       *[100]bool
	modes     uint8
}

// Option interface
type Option func(*Instance) error

// TraceFunc is the function prototype for instruction trace hooks. It is
// called before each instruction is executed.
type TraceFunc func(i *Instance, pc Cell, ins Instruction)

// Input appends the given values to the input queue.
func Input(values ...Cell) Option {
	return func(i *Instance) error { i.PushInput(values...); return nil }
}

// StopOnOutput selects the run contract used by Run. If stop is true, Run
// returns control to the caller after each Write Output instruction. The
// default is false: Run only returns when the VM needs input or halts.
func StopOnOutput(stop bool) Option {
	return func(i *Instance) error { i.stopOnOut = stop; return nil }
}

// Trace sets the trace hook. A nil fn disables tracing.
func Trace(fn TraceFunc) Option {
	return func(i *Instance) error { i.trace = fn; return nil }
}

// InstructionSet restricts the VM to the given opcodes. Any other opcode will
// fail with ErrInvalidOpcode. This is mostly useful to emulate the earlier,
// partial variants of the machine.
func InstructionSet(ops ...Opcode) Option {
	return func(i *Instance) error {
		var set [100]bool
		for _, op := range ops {
			if !op.valid() {
				return errors.Wrapf(ErrInvalidOpcode, "InstructionSet: %d", op)
			}
			set[op] = true
		}
		i.ops = &set
		return nil
	}
}

// AddressingModes restricts the addressing modes accepted by the decoder. Any
// other mode will fail with ErrInvalidMode.
func AddressingModes(modes ...Mode) Option {
	return func(i *Instance) error {
		var m uint8
		for _, mode := range modes {
			if mode < Position || mode > Relative {
				return errors.Wrapf(ErrInvalidMode, "AddressingModes: %d", mode)
			}
			m |= 1 << uint(mode)
		}
		i.modes = m
		return nil
	}
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new intcode VM instance.
//
// The image is copied into the VM memory, so the same image can be used to
// create any number of instances. Options will be set by calling SetOptions.
func New(image Image, opts ...Option) (*Instance, error) {
	i := &Instance{
		mem:    newMemory(image),
		state:  StateReady,
		input:  linkedlistqueue.New(),
		output: linkedlistqueue.New(),
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	return i, nil
}

// PC returns the instruction pointer.
func (i *Instance) PC() Cell {
	return i.pc
}

// RelativeBase returns the current value of the relative base register.
func (i *Instance) RelativeBase() Cell {
	return i.rb
}

// State returns the run state of the VM.
func (i *Instance) State() State {
	return i.state
}

// Halted returns true once the VM has executed a Halt instruction.
func (i *Instance) Halted() bool {
	return i.state == StateHalted
}

// Err returns the fault that stopped the VM, if any.
func (i *Instance) Err() error {
	return i.err
}

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

// Memory returns the VM memory. Changes made through the returned value are
// visible to the VM.
func (i *Instance) Memory() *Memory {
	return &i.mem
}

// Peek returns the value stored at address addr.
func (i *Instance) Peek(addr Cell) (Cell, error) {
	return i.mem.Read(addr)
}

// Poke stores v at address addr.
func (i *Instance) Poke(addr, v Cell) error {
	return i.mem.Write(addr, v)
}

// Dump writes the VM registers and the contents of its memory to the specified
// io.Writer.
//
// Memory is written as runs of consecutive cells, one run per line, each
// prefixed with the address of its first cell. Zero cells at either end of a
// run are omitted, as are unallocated pages.
func (i *Instance) Dump(w io.Writer) error {
	ew := iox.NewErrWriter(w)
	fmt.Fprintf(ew, "pc=%d rb=%d state=%s count=%d len=%d\n", i.pc, i.rb, i.state, i.insCount, i.mem.Len())
	var (
		run   []Cell
		start Cell
		next  Cell = -1
	)
	flush := func() {
		lead := 0
		for lead < len(run) && run[lead] == 0 {
			lead++
		}
		end := len(run)
		for end > lead && run[end-1] == 0 {
			end--
		}
		if end > lead {
			fmt.Fprintf(ew, "%d:", start+Cell(lead))
			iox.WriteCells(ew, run[lead:end], ",")
			ew.Write([]byte{'\n'})
		}
		run = run[:0]
	}
	i.mem.walk(func(addr Cell, cells []Cell) {
		if addr != next {
			flush()
			start = addr
		}
		run = append(run, cells...)
		next = addr + pageSize
	})
	flush()
	return ew.Err
}
