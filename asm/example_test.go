package asm_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/vm"
)

// Shows off some of the assembler features.
func ExampleAssemble() {
	code := `
	( doubles its input )
	.equ TWO 2

:start	in x
	MUL x #TWO x	( mnemonics are case insensitive )
	out x
	hlt
:x	0		( bare literal: data cell )
`

	img, err := asm.Assemble("double", strings.NewReader(code))
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(img)
	out, err := vm.Exec(img, 21)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(out)

	asm.DisassembleAll(img, 0, os.Stdout)

	// Output:
	// 3,9,1002,9,2,9,4,9,99,0
	// [42]
	//          0	in 9
	//          2	mul 9 #2 9
	//          6	out 9
	//          8	hlt
	//          9	.dat 0
}

// Disassemble writes one instruction at a time. Invalid instruction words are
// written as data.
func ExampleDisassemble() {
	mem := []vm.Cell{1002, 4, 3, 4, 33, 99, 21101, 1}

	for pc := 0; pc < len(mem); {
		fmt.Printf("% 4d\t", pc)
		var err error
		pc, err = asm.Disassemble(mem, pc, os.Stdout)
		if err != nil {
			panic(err)
		}
		fmt.Println()
	}

	// Output:
	//    0	mul 4 #3 4
	//    4	.dat 33
	//    5	hlt
	//    6	add #1 ??? ???
}

// Demonstrates use of local labels
func Example_locals() {
	code := `
	:1	jt #1 #1+
	:1	jf #0 #1-
	`

	img, err := asm.Assemble("locals", strings.NewReader(code))
	if err != nil {
		fmt.Println(err)
		return
	}

	asm.DisassembleAll(img, 0, os.Stdout)

	// Output:
	//          0	jt #1 #3
	//          3	jf #0 #3
}
