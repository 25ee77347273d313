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

package asm_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble(t *testing.T) {
	data := []struct {
		name string
		code string
		want vm.Image
	}{
		{"modes", "add #1 #2 %3 hlt", vm.Image{21101, 1, 2, 3, 99}},
		{"org", ".org 5 99", vm.Image{0, 0, 0, 0, 0, 99}},
		{"dat_label", "hlt :p .dat p", vm.Image{99, 1}},
		{"equ", ".equ X 7 out #X hlt", vm.Image{104, 7, 99}},
		{"case", "HLT Halt", vm.Image{99, 99}},
		{"aliases", "jnz 1 2 jz 3 4 rb #5", vm.Image{5, 1, 2, 6, 3, 4, 109, 5}},
		{"char", "out #'A' hlt", vm.Image{104, 65, 99}},
		{"hex", ".dat 0x10 -0x10", vm.Image{16, -16}},
		{"comment", "( nothing here ) hlt ( nor here )", vm.Image{99}},
		{"forward", "jt #1 #end 0 :end hlt", vm.Image{1105, 1, 4, 0, 99}},
		{"empty", "", nil},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			img, err := asm.Assemble(d.name, strings.NewReader(d.code))
			require.NoError(t, err)
			assert.Equal(t, d.want, img)
		})
	}
}

func TestAssemble_errors(t *testing.T) {
	data := []struct {
		code string
		msg  string
		line int
		col  int
	}{
		{"in #5", "Immediate write target for operand 1 of in", 1, 4},
		{"add 1 2 #3", "Immediate write target for operand 3 of add", 1, 9},
		{"hlt\nfoo", "Unknown mnemonic foo", 2, 1},
		{"jt #1 #nowhere", "Undefined label nowhere", 1, 7},
		{":a hlt :a", "Label redefinition: a, previous definition here: test:1:1", 1, 8},
		{".foo", "Unknown dot directive: .foo", 1, 1},
		{".org -1", ".org: expected non-negative integer or constant, got -1", 1, 6},
		{".org 1000000000000 0", ".org: address 1000000000000 beyond maximum image size", 1, 6},
		{".equ END 0x1000000 .org END", ".org: address END beyond maximum image size", 1, 25},
		{`'\x'`, `Invalid character literal '\x'`, 1, 1},
		{"add 1 2 :x hlt", "Missing operand for add, got :x", 1, 9},
		{"jt #1 #1-", "Undefined label 1·0", 1, 7},
	}
	for _, d := range data {
		_, err := asm.Assemble("test", strings.NewReader(d.code))
		require.Error(t, err, d.code)
		var errs asm.ErrAsm
		require.True(t, errors.As(err, &errs), d.code)
		require.Len(t, errs, 1, d.code)
		assert.Equal(t, d.msg, errs[0].Msg, d.code)
		assert.Equal(t, d.line, errs[0].Pos.Line, d.code)
		assert.Equal(t, d.col, errs[0].Pos.Column, d.code)
	}
}

func TestAssemble_eofErrors(t *testing.T) {
	for _, code := range []string{"add 1 2", ".org", ".dat", ".equ X"} {
		_, err := asm.Assemble("test", strings.NewReader(code))
		require.Error(t, err, code)
		assert.Contains(t, err.Error(), "at end of input", code)
	}
}

func TestAssemble_maxErrors(t *testing.T) {
	code := strings.Repeat("foo ", 20)
	_, err := asm.Assemble("test", strings.NewReader(code))
	require.Error(t, err)
	errs := err.(asm.ErrAsm)
	assert.Len(t, errs, 10)
	for k := 1; k < len(errs); k++ {
		assert.True(t, errs[k-1].Pos.Offset < errs[k].Pos.Offset)
	}
}

func TestAssemble_run(t *testing.T) {
	// outputs 1 if the input is 8, 0 otherwise
	code := `
	in %0
	eq %0 #8 %1
	out %1
	hlt
	`
	img, err := asm.Assemble("cmp", strings.NewReader(code))
	require.NoError(t, err)
	assert.Equal(t, vm.Image{203, 0, 21208, 0, 8, 1, 204, 1, 99}, img)

	out, err := vm.Exec(img, 8)
	require.NoError(t, err)
	assert.Equal(t, []vm.Cell{1}, out)
	out, err = vm.Exec(img, 7)
	require.NoError(t, err)
	assert.Equal(t, []vm.Cell{0}, out)
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) { return 0, errors.New("broken") }

func TestDisassemble(t *testing.T) {
	var b bytes.Buffer
	next, err := asm.Disassemble([]vm.Cell{-1, 99}, 0, &b)
	require.NoError(t, err)
	assert.Equal(t, 1, next)
	assert.Equal(t, ".dat -1", b.String())

	b.Reset()
	next, err = asm.Disassemble([]vm.Cell{1, 1, 2, 3, 22201, 1, 2, 3}, 4, &b)
	require.NoError(t, err)
	assert.Equal(t, 8, next)
	assert.Equal(t, "add %1 %2 %3", b.String())

	// invalid mode digit
	b.Reset()
	_, err = asm.Disassemble([]vm.Cell{301}, 0, &b)
	require.NoError(t, err)
	assert.Equal(t, ".dat 301", b.String())

	b.Reset()
	next, err = asm.Disassemble(nil, 0, &b)
	assert.EqualError(t, err, "Disassemble: pc 0 out of range")
	assert.Equal(t, 0, next)
	_, err = asm.Disassemble([]vm.Cell{99}, 1, &b)
	assert.Error(t, err)
	assert.Empty(t, b.String())

	_, err = asm.Disassemble([]vm.Cell{99}, 0, failWriter{})
	assert.EqualError(t, err, "write failed: broken")
	assert.EqualError(t, asm.DisassembleAll([]vm.Cell{99}, 0, failWriter{}), "write failed: broken")
}

// Disassembly of an assembled program assembles back to the same image once
// the address column is stripped.
func TestDisassembleAll_roundTrip(t *testing.T) {
	img := vm.Image{109, 19, 204, -34, 1001, 100, 1, 100, 1008, 100, 16, 101, 1006, 101, 0, 99}
	var b bytes.Buffer
	require.NoError(t, asm.DisassembleAll(img, 0, &b))

	var src strings.Builder
	for _, l := range strings.Split(strings.TrimSpace(b.String()), "\n") {
		_, ins, ok := strings.Cut(l, "\t")
		require.True(t, ok, l)
		src.WriteString(ins)
		src.WriteByte('\n')
	}
	got, err := asm.Assemble("roundtrip", strings.NewReader(src.String()))
	require.NoError(t, err)
	assert.Equal(t, img, got)
}
