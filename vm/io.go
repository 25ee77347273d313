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

// PushInput appends the given values to the input queue. It can be called in
// any state.
func (i *Instance) PushInput(values ...Cell) {
	for _, v := range values {
		i.input.Enqueue(v)
	}
}

// PopOutput removes and returns the oldest value in the output queue. The
// boolean result is false if the queue is empty.
func (i *Instance) PopOutput() (Cell, bool) {
	v, ok := i.output.Dequeue()
	if !ok {
		return 0, false
	}
	return v.(Cell), true
}

// DrainOutput removes all values from the output queue and returns them in
// FIFO order.
func (i *Instance) DrainOutput() []Cell {
	out := cells(i.output.Values())
	i.output.Clear()
	return out
}

// PendingInput returns the number of values waiting in the input queue.
func (i *Instance) PendingInput() int {
	return i.input.Size()
}

// PendingOutput returns the number of values waiting in the output queue.
func (i *Instance) PendingOutput() int {
	return i.output.Size()
}

// LastOutput returns the last value ever written by the VM. The boolean
// result is false if the VM never executed a Write Output instruction.
func (i *Instance) LastOutput() (Cell, bool) {
	return i.last, i.hasLast
}

func cells(values []interface{}) []Cell {
	if len(values) == 0 {
		return nil
	}
	c := make([]Cell, len(values))
	for k, v := range values {
		c[k] = v.(Cell)
	}
	return c
}
