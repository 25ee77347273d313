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

package main

import (
	"fmt"

	"github.com/db47h/intcode/pipeline"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type orchestrateFlags struct {
	init   []int64
	seed   []int64
	search bool
}

func (f *orchestrateFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.Int64SliceVar(&f.init, "init", nil, "comma separated initial input `values`, one VM per value")
	fl.Int64SliceVar(&f.seed, "seed", []int64{0}, "input `values` sent to the first VM")
	fl.BoolVar(&f.search, "search", false, "try every permutation of the initial values and print the best result")
	cmd.MarkFlagRequired("init")
}

func newChainCmd() *cobra.Command {
	var f orchestrateFlags
	cmd := &cobra.Command{
		Use:   "chain <image>",
		Short: "Run a chain of VMs",
		Long: `Run one VM per initial value, each VM's outputs being sent to the next
one. The last value output by the last VM is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return f.run(cmd, args[0], func(vms []*vm.Instance, seed []vm.Cell) (vm.Cell, error) {
				out, err := pipeline.Chain(vms, seed...)
				if err != nil {
					return 0, err
				}
				if len(out) == 0 {
					return 0, errors.Wrap(pipeline.ErrNoOutput, "chain")
				}
				return out[len(out)-1], nil
			})
		},
	}
	f.register(cmd)
	return cmd
}

func newRingCmd() *cobra.Command {
	var f orchestrateFlags
	cmd := &cobra.Command{
		Use:   "ring <image>",
		Short: "Run VMs in a feedback loop",
		Long: `Run one VM per initial value, each VM's outputs being sent to the next
one and the last VM's outputs to the first one, until all VMs halt. The last
value output by the last VM is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return f.run(cmd, args[0], func(vms []*vm.Instance, seed []vm.Cell) (vm.Cell, error) {
				r := pipeline.NewRing(vms...)
				v, err := r.Run(seed...)
				log.Debugf("ring: %d rounds", r.Rounds())
				return v, err
			})
		},
	}
	f.register(cmd)
	return cmd
}

func (f *orchestrateFlags) run(cmd *cobra.Command, fileName string, connect func([]*vm.Instance, []vm.Cell) (vm.Cell, error)) error {
	img, err := vm.Load(fileName)
	if err != nil {
		return err
	}
	seed := cells(f.seed)
	try := func(init []vm.Cell) (vm.Cell, error) {
		vms := make([]*vm.Instance, len(init))
		for k, v := range init {
			i, err := vm.New(img, vm.Input(v))
			if err != nil {
				return 0, err
			}
			vms[k] = i
		}
		return connect(vms, seed)
	}

	w := cmd.OutOrStdout()
	if !f.search {
		v, err := try(cells(f.init))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, v)
		return errors.Wrap(err, "write failed")
	}
	best, perm, err := pipeline.Search(cells(f.init), try)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, best, perm)
	return errors.Wrap(err, "write failed")
}
