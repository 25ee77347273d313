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
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("intcode")

// options shared by all commands.
type options struct {
	configFile string
	verbose    int
	debug      bool
	trace      bool
	config     Config
}

func newRootCmd() (*cobra.Command, *options) {
	o := new(options)
	root := &cobra.Command{
		Use:   "intcode",
		Short: "Run, connect, assemble and disassemble intcode programs",
		Long: `intcode runs intcode programs, alone, chained or in a feedback loop,
and provides an assembler and a disassembler for intcode images.

Program images are text files of comma separated integers.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.setup(cmd)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	pf := root.PersistentFlags()
	pf.StringVar(&o.configFile, "config", "", "configuration `file` (default: "+ConfigFile+" in the working directory or above)")
	pf.CountVarP(&o.verbose, "verbose", "v", "increase log verbosity (can be repeated)")
	pf.BoolVar(&o.debug, "debug", false, "print errors with a stack trace")

	root.AddCommand(
		newRunCmd(o),
		newChainCmd(),
		newRingCmd(),
		newConsoleCmd(o),
		newAsmCmd(),
		newDisasmCmd(),
	)
	return root, o
}

// setup loads the configuration file and configures logging. Configuration
// values are overridden by the flags of cmd.
func (o *options) setup(cmd *cobra.Command) error {
	var c *Config
	var err error
	if o.configFile != "" {
		c, err = LoadConfig(o.configFile)
	} else {
		var wd string
		if wd, err = os.Getwd(); err != nil {
			return errors.Wrap(err, "Getwd")
		}
		c, err = FindConfig(wd)
	}
	if err != nil {
		return err
	}
	if c != nil {
		o.config = *c
	}
	o.config.Log.Verbosity += o.verbose
	if f := cmd.Flags().Lookup("trace"); f != nil && !f.Changed {
		o.trace = o.config.Run.Trace
	}
	if o.trace && o.config.Log.Verbosity < 2 {
		o.config.Log.Verbosity = 2
	}
	var path *string
	if o.config.Log.File != "" {
		path = &o.config.Log.File
	}
	commonlog.Configure(o.config.Log.Verbosity, path)
	if o.config.Path != "" {
		log.Infof("configuration loaded from %s", o.config.Path)
	}
	return nil
}

func atExit(err error, debug bool) {
	if err == nil {
		return
	}
	if debug {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
	} else {
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}
	os.Exit(1)
}

func main() {
	root, o := newRootCmd()
	atExit(root.Execute(), o.debug)
}
