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
	"os"
	"path/filepath"
	"strings"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newAsmCmd() *cobra.Command {
	var outFileName string
	cmd := &cobra.Command{
		Use:   "asm <source>",
		Short: "Assemble a program",
		Long: `Assemble a program and save the resulting image. The image is written to
the source file name with an .ic extension unless -o is given. Use -o - to
write the image to the standard output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return errors.Wrap(err, "cannot read source")
			}
			defer f.Close()
			img, err := asm.Assemble(args[0], bufio.NewReader(f))
			if err != nil {
				return err
			}
			switch outFileName {
			case "-":
				_, err = cmd.OutOrStdout().Write([]byte(img.String() + "\n"))
				return errors.Wrap(err, "write failed")
			case "":
				outFileName = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".ic"
			}
			if outFileName == args[0] {
				return errors.Errorf("%s: refusing to overwrite the source file", outFileName)
			}
			log.Infof("%s: %d cells", outFileName, len(img))
			return img.Save(outFileName)
		},
	}
	cmd.Flags().StringVarP(&outFileName, "output", "o", "", "image `file` name")
	return cmd
}

func newDisasmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disasm <image>",
		Short: "Disassemble a program image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := vm.Load(args[0])
			if err != nil {
				return err
			}
			w := bufio.NewWriter(cmd.OutOrStdout())
			if err = asm.DisassembleAll(img, 0, w); err != nil {
				return err
			}
			return errors.Wrap(w.Flush(), "write failed")
		},
	}
}
