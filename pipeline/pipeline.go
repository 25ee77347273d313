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

// Package pipeline connects intcode VMs together.
//
// VMs do not run concurrently: the functions of this package drive each
// instance in turn with explicit calls to Run, moving values from the output
// queue of a VM to the input queue of the next one between calls.
package pipeline

import (
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("intcode.pipeline")

// Errors returned by pipelines.
var (
	ErrStalled  = errors.New("all VMs are waiting for input")
	ErrNoOutput = errors.New("no output")
	ErrEmpty    = errors.New("no VM to run")
)

// pump runs i until it needs input or halts. Outputs are left in the output
// queue, so the VM may or may not use the StopOnOutput contract.
func pump(i *vm.Instance) (vm.Signal, error) {
	for {
		sig, _, err := i.Run()
		if err != nil || sig != vm.ProducedOutput {
			return sig, err
		}
	}
}

// Chain connects the VMs in a line: the seed values are sent to the first VM,
// then each VM is run until it needs input or halts, and its outputs are sent
// to the next one. The outputs of the last VM are returned.
//
// Each VM is run only once, so a VM that needs more input than its
// predecessor produced is left suspended.
func Chain(vms []*vm.Instance, seed ...vm.Cell) ([]vm.Cell, error) {
	if len(vms) == 0 {
		return nil, ErrEmpty
	}
	values := seed
	for k, i := range vms {
		i.PushInput(values...)
		sig, err := pump(i)
		if err != nil {
			return nil, errors.Wrapf(err, "chain vm %d", k)
		}
		values = i.DrainOutput()
		log.Debugf("chain vm %d: %s, %d outputs", k, sig, len(values))
	}
	return values, nil
}

// Converse runs an interactive session with i. It sends first as input and
// runs the VM until it needs input, then calls fn with the outputs produced
// so far; the value returned by fn is the next input. This is repeated until
// the VM halts.
//
// When the VM halts, fn is called one last time with the remaining outputs, if
// any, and its answer is discarded.
func Converse(i *vm.Instance, first vm.Cell, fn func(outputs []vm.Cell) (next vm.Cell, err error)) error {
	i.PushInput(first)
	for turn := 1; ; turn++ {
		sig, err := pump(i)
		if err != nil {
			return err
		}
		out := i.DrainOutput()
		log.Debugf("converse turn %d: %s, %d outputs", turn, sig, len(out))
		if sig == vm.Halted && len(out) == 0 {
			return nil
		}
		next, err := fn(out)
		if err != nil {
			return errors.Wrapf(err, "converse turn %d", turn)
		}
		if sig == vm.Halted {
			return nil
		}
		i.PushInput(next)
	}
}
