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

import "github.com/pkg/errors"

// Fault kinds. Errors returned by the VM wrap one of these; use errors.Is or
// errors.Cause to test for them.
var (
	ErrInvalidOpcode      = errors.New("invalid opcode")
	ErrInvalidMode        = errors.New("invalid addressing mode")
	ErrNegativeAddress    = errors.New("negative address")
	ErrInvalidWriteTarget = errors.New("immediate mode write target")
	ErrInputExhausted     = errors.New("input exhausted")
)

// fault stops the VM and records err as the reason.
func (i *Instance) fault(err error) (Signal, Cell, error) {
	i.state = StateFaulted
	i.err = errors.Wrapf(err, "@pc=%d rb=%d", i.pc, i.rb)
	return 0, 0, i.err
}
