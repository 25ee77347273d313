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

	"github.com/emirpasic/gods/queues/linkedlistqueue"
	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
)

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("vm: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// snapshot is the serialized form of an Instance. The machine state and the
// StopOnOutput setting are saved; trace hooks and instruction set or
// addressing mode restrictions are not.
type snapshot struct {
	PC        Cell          `cbor:"1,keyasint"`
	Base      Cell          `cbor:"2,keyasint"`
	State     State         `cbor:"3,keyasint"`
	Count     int64         `cbor:"4,keyasint"`
	Size      Cell          `cbor:"5,keyasint"`
	Memory    map[Cell]Cell `cbor:"6,keyasint"`
	Input     []Cell        `cbor:"7,keyasint,omitempty"`
	Output    []Cell        `cbor:"8,keyasint,omitempty"`
	Last      *Cell         `cbor:"9,keyasint,omitempty"`
	StopOnOut bool          `cbor:"10,keyasint,omitempty"`
}

// Snapshot serializes the machine state (memory, registers, run state and I/O
// queues) and the StopOnOutput setting to CBOR. A faulted VM cannot be saved.
func (i *Instance) Snapshot() ([]byte, error) {
	if i.state == StateFaulted {
		return nil, errors.Wrap(i.err, "Snapshot: VM is faulted")
	}
	s := snapshot{
		PC:        i.pc,
		Base:      i.rb,
		State:     i.state,
		Count:     i.insCount,
		Size:      i.mem.Len(),
		Memory:    i.mem.nonZero(),
		Input:     cells(i.input.Values()),
		Output:    cells(i.output.Values()),
		StopOnOut: i.stopOnOut,
	}
	if i.hasLast {
		last := i.last
		s.Last = &last
	}
	b, err := cborEncMode.Marshal(&s)
	return b, errors.Wrap(err, "Snapshot")
}

// Restore creates a new VM from a snapshot returned by Snapshot. The given
// options are applied after the machine state has been restored.
func Restore(data []byte, opts ...Option) (*Instance, error) {
	var s snapshot
	if err := cbor.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(err, "Restore")
	}
	switch s.State {
	case StateReady, StateSuspendedForInput, StateSuspendedForOutput, StateHalted:
	default:
		return nil, errors.Errorf("Restore: invalid state %s", s.State)
	}
	i := &Instance{
		pc:        s.PC,
		rb:        s.Base,
		state:     s.State,
		insCount:  s.Count,
		input:     linkedlistqueue.New(),
		output:    linkedlistqueue.New(),
		stopOnOut: s.StopOnOut,
	}
	if err := i.mem.restore(s.Memory, s.Size); err != nil {
		return nil, errors.Wrap(err, "Restore")
	}
	i.PushInput(s.Input...)
	for _, v := range s.Output {
		i.output.Enqueue(v)
	}
	if s.Last != nil {
		i.last, i.hasLast = *s.Last, true
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	return i, nil
}
