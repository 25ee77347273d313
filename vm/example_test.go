package vm_test

import (
	"fmt"

	"github.com/db47h/intcode/vm"
)

// Runs a program in batch mode with different inputs.
func ExampleExec() {
	img, err := vm.Load("testdata/cmp8.ic")
	if err != nil {
		panic(err)
	}

	// the program outputs 999 if its input is below 8, 1000 if it is equal to 8
	// and 1001 otherwise.
	for _, in := range []vm.Cell{7, 8, 9} {
		out, err := vm.Exec(img, in)
		if err != nil {
			panic(err)
		}
		fmt.Println(in, out)
	}

	// Output:
	// 7 [999]
	// 8 [1000]
	// 9 [1001]
}

// Shows the interactive run contract: the caller feeds input on demand and
// gets control back after each output.
func ExampleInstance_Run() {
	// doubles its input until it reads 0
	img := vm.Image{3, 100, 1006, 100, 14, 1002, 100, 2, 101, 4, 101, 1105, 1, 0, 99}

	i, err := vm.New(img, vm.StopOnOutput(true))
	if err != nil {
		panic(err)
	}

	inputs := []vm.Cell{1, 2, 3, 0}
	for {
		sig, v, err := i.Run()
		if err != nil {
			panic(err)
		}
		switch sig {
		case vm.NeedsInput:
			fmt.Println("input", inputs[0])
			i.PushInput(inputs[0])
			inputs = inputs[1:]
		case vm.ProducedOutput:
			fmt.Println("output", v)
		case vm.Halted:
			fmt.Println(sig)
			return
		}
	}

	// Output:
	// input 1
	// output 2
	// input 2
	// output 4
	// input 3
	// output 6
	// input 0
	// halted
}
