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
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/internal/iox"
	"github.com/db47h/intcode/lang/ascii"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type runFlags struct {
	inputs       []int64
	lines        []string
	ascii        bool
	stopOnOutput bool
	dump         bool
	snapshot     string
	resume       string
	trace        bool
}

func newRunCmd(o *options) *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run [image]",
		Short: "Run a program",
		Long: `Run a program with the given input values and print its outputs.

If the program needs more input than provided, run fails, unless --snapshot
is given: the VM state is then saved and can be resumed later with --resume
and more input.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fl := cmd.Flags()
			if !fl.Changed("ascii") {
				f.ascii = o.config.Run.ASCII
			}
			if !fl.Changed("stop-on-output") {
				f.stopOnOutput = o.config.Run.StopOnOutput
			}
			f.trace = o.trace
			return f.run(cmd.OutOrStdout(), args)
		},
	}
	fl := cmd.Flags()
	fl.Int64SliceVarP(&f.inputs, "input", "i", nil, "comma separated input `values`")
	fl.StringArrayVar(&f.lines, "line", nil, "append `text` and a new line to the input (can be repeated)")
	fl.BoolVar(&f.ascii, "ascii", false, "print outputs as text")
	fl.BoolVar(&f.stopOnOutput, "stop-on-output", false, "print outputs as soon as they are produced")
	fl.BoolVar(&o.trace, "trace", false, "log each instruction before it is executed")
	fl.BoolVar(&f.dump, "dump", false, "dump the VM state on exit")
	fl.StringVar(&f.snapshot, "snapshot", "", "save the VM state to `file` on exit")
	fl.StringVar(&f.resume, "resume", "", "resume from a snapshot `file` instead of loading an image")
	return cmd
}

func (f *runFlags) inputOptions() []vm.Option {
	opts := []vm.Option{vm.Input(cells(f.inputs)...)}
	for _, l := range f.lines {
		opts = append(opts, vm.Input(ascii.Line(l)...))
	}
	return opts
}

func (f *runFlags) newInstance(args []string, opts ...vm.Option) (*vm.Instance, error) {
	if f.resume != "" {
		if len(args) > 0 {
			return nil, errors.New("cannot use an image file with --resume")
		}
		data, err := os.ReadFile(f.resume)
		if err != nil {
			return nil, errors.Wrap(err, "cannot read snapshot")
		}
		return vm.Restore(data, opts...)
	}
	if len(args) == 0 {
		return nil, errors.New("no image file")
	}
	img, err := vm.Load(args[0])
	if err != nil {
		return nil, err
	}
	return vm.New(img, opts...)
}

func (f *runFlags) run(w io.Writer, args []string) (err error) {
	opts := append(f.inputOptions(), vm.StopOnOutput(f.stopOnOutput))
	if f.trace {
		opts = append(opts, vm.Trace(traceInstruction))
	}
	i, err := f.newInstance(args, opts...)
	if err != nil {
		return err
	}

	out := bufio.NewWriter(w)
	defer func() {
		if f.dump {
			if derr := i.Dump(out); err == nil {
				err = derr
			}
		}
		if ferr := out.Flush(); err == nil && ferr != nil {
			err = errors.Wrap(ferr, "write failed")
		}
	}()

	for {
		sig, _, err := i.Run()
		if perr := f.print(out, i.DrainOutput()); err == nil {
			err = perr
		}
		if err != nil {
			return err
		}
		switch sig {
		case vm.ProducedOutput:
			if err = out.Flush(); err != nil {
				return errors.Wrap(err, "write failed")
			}
			continue
		case vm.NeedsInput:
			if f.snapshot == "" {
				return errors.Wrapf(vm.ErrInputExhausted, "@pc=%d", i.PC())
			}
			log.Noticef("program needs more input, use --resume %s to continue", f.snapshot)
		}
		log.Infof("%s after %d instructions", i.State(), i.InstructionCount())
		return f.save(i)
	}
}

func (f *runFlags) print(w io.Writer, values []vm.Cell) error {
	if len(values) == 0 {
		return nil
	}
	if f.ascii {
		return ascii.Print(w, values)
	}
	ew := iox.NewErrWriter(w)
	iox.WriteCells(ew, values, "\n")
	ew.Write([]byte{'\n'})
	return ew.Err
}

func (f *runFlags) save(i *vm.Instance) error {
	if f.snapshot == "" {
		return nil
	}
	data, err := i.Snapshot()
	if err != nil {
		return err
	}
	return errors.Wrap(os.WriteFile(f.snapshot, data, 0644), "cannot save snapshot")
}

func traceInstruction(i *vm.Instance, pc vm.Cell, ins vm.Instruction) {
	// operands past the end of the address space are not fetched
	mem := make([]vm.Cell, 0, ins.Op.Width())
	for addr := pc; addr >= 0 && len(mem) < cap(mem); addr++ {
		v, _ := i.Peek(addr)
		mem = append(mem, v)
	}
	var b strings.Builder
	asm.Disassemble(mem, 0, &b)
	log.Debugf("%8d rb=%-6d %s", pc, i.RelativeBase(), b.String())
}

func cells(values []int64) []vm.Cell {
	c := make([]vm.Cell, len(values))
	for k, v := range values {
		c[k] = vm.Cell(v)
	}
	return c
}
