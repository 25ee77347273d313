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

	"github.com/db47h/intcode/lang/ascii"
	"github.com/db47h/intcode/vm"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	keyEOF       = 4   // Ctrl-D
	keyBackspace = 8   // Ctrl-H
	keyDelete    = 127 // what most terminals send for backspace
)

func newConsoleCmd(o *options) *cobra.Command {
	var noRaw bool
	cmd := &cobra.Command{
		Use:   "console <image>",
		Short: "Run a text program interactively",
		Long: `Run a program that reads and writes text, using the terminal for input
and output. Input is sent to the program one line at a time. Values output by
the program that are not text are printed in decimal on a line of their own.

Press Ctrl-D to end the input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := vm.Load(args[0])
			if err != nil {
				return err
			}
			var opts []vm.Option
			if o.trace {
				opts = append(opts, vm.Trace(traceInstruction))
			}
			i, err := vm.New(img, opts...)
			if err != nil {
				return err
			}

			raw := false
			if !noRaw && isatty.IsTerminal(os.Stdin.Fd()) {
				tearDown, err := setRawIO()
				if err != nil {
					log.Warningf("raw terminal mode unavailable: %v", err)
				} else {
					raw = true
					defer tearDown()
				}
			}
			out := bufio.NewWriter(cmd.OutOrStdout())
			in := &lineReader{r: bufio.NewReader(cmd.InOrStdin()), echo: out, raw: raw}
			err = converse(i, in, out)
			if ferr := out.Flush(); err == nil && ferr != nil {
				err = errors.Wrap(ferr, "write failed")
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&noRaw, "noraw", false, "disable raw terminal IO")
	cmd.Flags().BoolVar(&o.trace, "trace", false, "log each instruction before it is executed")
	return cmd
}

// converse runs i, printing its outputs to out and feeding it lines read
// from in, until it halts or in is exhausted.
func converse(i *vm.Instance, in *lineReader, out *bufio.Writer) error {
	for {
		sig, _, err := i.Run()
		if err != nil {
			return err
		}
		if err = ascii.Print(out, i.DrainOutput()); err != nil {
			return err
		}
		if err = out.Flush(); err != nil {
			return errors.Wrap(err, "write failed")
		}
		if sig == vm.Halted {
			log.Infof("halted after %d instructions", i.InstructionCount())
			return nil
		}
		line, err := in.ReadLine()
		if err == io.EOF {
			log.Infof("end of input, program suspended at pc=%d", i.PC())
			return nil
		}
		if err != nil {
			return err
		}
		i.PushInput(ascii.Encode(line)...)
	}
}

// lineReader reads input lines. In raw mode, it handles echo, backspace and
// Ctrl-D itself.
type lineReader struct {
	r    *bufio.Reader
	echo *bufio.Writer
	raw  bool
	buf  []byte
}

// ReadLine returns the next line, including the trailing new line.
func (l *lineReader) ReadLine() (string, error) {
	if !l.raw {
		s, err := l.r.ReadString('\n')
		switch {
		case err == nil:
			return s, nil
		case err == io.EOF && s != "":
			return s + "\n", nil
		case err == io.EOF:
			return "", io.EOF
		}
		return "", errors.Wrap(err, "read failed")
	}
	l.buf = l.buf[:0]
	for {
		c, err := l.r.ReadByte()
		if err == io.EOF {
			return "", io.EOF
		}
		if err != nil {
			return "", errors.Wrap(err, "read failed")
		}
		switch c {
		case keyEOF:
			if len(l.buf) == 0 {
				return "", io.EOF
			}
		case keyBackspace, keyDelete:
			if len(l.buf) > 0 {
				l.buf = l.buf[:len(l.buf)-1]
				l.echo.WriteString("\b \b")
			}
		case '\r', '\n':
			l.buf = append(l.buf, '\n')
			l.echo.WriteByte('\n')
			l.echo.Flush()
			return string(l.buf), nil
		default:
			l.buf = append(l.buf, c)
			l.echo.WriteByte(c)
		}
		l.echo.Flush()
	}
}
