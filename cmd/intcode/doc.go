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

/*
Command intcode runs intcode programs.

Usage:

	intcode [--config file] [-v...] [--debug] <command> [flags] [args]

Commands:

	run [image]		run a program with the given input
	chain <image>		run a chain of VMs, one per initial value
	ring <image>		run VMs in a feedback loop, one per initial value
	console <image>		run a text program interactively
	asm <source>		assemble a program
	disasm <image>		disassemble a program image

Run intcode help <command> for the flags of each command.

Configuration:

Default values for some flags are read from an intcode.toml file, looked up in
the working directory and its parents, or given with --config:

	[log]
	verbosity = 0	# 0 notice, 1 info, 2 debug. Each -v adds one.
	file = ""	# log file, default is stderr

	[run]
	stop-on-output = false
	ascii = false
	trace = false

Examples:

Find the best phase settings for a chain of amplifiers:

	intcode chain --init 0,1,2,3,4 --search amp.ic

Run a program in two steps, the first one saving its state when it runs out
of input:

	intcode run -i 1 --snapshot state.cbor prog.ic
	intcode run -i 2 --resume state.cbor

Play a text adventure:

	intcode console adventure.ic

In the console, the terminal is switched to raw mode when possible and Ctrl-D
ends the input.
*/
package main
