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

package pipeline

import (
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// Ring is a feedback loop of VMs: the outputs of each VM are sent to the next
// one, and the outputs of the last VM are sent back to the first one.
type Ring struct {
	vms     []*vm.Instance
	rounds  int
	last    vm.Cell
	hasLast bool
}

// NewRing returns a new feedback ring for the given VMs.
func NewRing(vms ...*vm.Instance) *Ring {
	return &Ring{vms: vms}
}

// Rounds returns the number of rounds run so far. In a round, each VM that
// has not halted is run once.
func (r *Ring) Rounds() int {
	return r.rounds
}

// Run sends the seed values to the first VM and runs the VMs in turn until
// all of them have halted. It returns the last value output by the last VM.
//
// A VM runs until it needs input or halts. If a whole round goes by without
// any VM executing an instruction while some of them have not halted, Run
// returns ErrStalled. Outputs sent to a halted VM are discarded.
//
// Run can be called again after an error, to resume with more seed values.
func (r *Ring) Run(seed ...vm.Cell) (vm.Cell, error) {
	n := len(r.vms)
	if n == 0 {
		return 0, ErrEmpty
	}
	r.vms[0].PushInput(seed...)
	for {
		progress := false
		for k, i := range r.vms {
			if i.Halted() {
				continue
			}
			count := i.InstructionCount()
			sig, err := pump(i)
			if err != nil {
				return 0, errors.Wrapf(err, "ring vm %d, round %d", k, r.rounds+1)
			}
			if i.InstructionCount() != count {
				progress = true
			}
			out := i.DrainOutput()
			if len(out) > 0 {
				if k == n-1 {
					r.last, r.hasLast = out[len(out)-1], true
				}
				if next := r.vms[(k+1)%n]; !next.Halted() {
					next.PushInput(out...)
				}
			}
			log.Debugf("ring round %d, vm %d: %s, %d outputs", r.rounds+1, k, sig, len(out))
		}
		r.rounds++
		if r.halted() {
			break
		}
		if !progress {
			return 0, errors.Wrapf(ErrStalled, "ring round %d", r.rounds)
		}
	}
	if !r.hasLast {
		return 0, errors.Wrap(ErrNoOutput, "ring")
	}
	return r.last, nil
}

func (r *Ring) halted() bool {
	for _, i := range r.vms {
		if !i.Halted() {
			return false
		}
	}
	return true
}
