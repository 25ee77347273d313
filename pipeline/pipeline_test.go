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

package pipeline_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/pipeline"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVMs(t *testing.T, img vm.Image, init []vm.Cell, opts ...vm.Option) []*vm.Instance {
	t.Helper()
	vms := make([]*vm.Instance, len(init))
	for k, v := range init {
		i, err := vm.New(img, append([]vm.Option{vm.Input(v)}, opts...)...)
		require.NoError(t, err)
		vms[k] = i
	}
	return vms
}

func assemble(t *testing.T, src string) vm.Image {
	t.Helper()
	img, err := asm.Assemble(t.Name(), strings.NewReader(src))
	require.NoError(t, err)
	return img
}

func TestChain(t *testing.T) {
	data := []struct {
		img    vm.Image
		phases []vm.Cell
		want   vm.Cell
	}{
		{vm.Image{3, 15, 3, 16, 1002, 16, 10, 16, 1, 16, 15, 15, 4, 15, 99, 0, 0}, []vm.Cell{4, 3, 2, 1, 0}, 43210},
		{vm.Image{3, 23, 3, 24, 1002, 24, 10, 24, 1002, 23, -1, 23, 101, 5, 23, 23, 1, 24, 23, 23, 4, 23, 99, 0, 0}, []vm.Cell{0, 1, 2, 3, 4}, 54321},
	}
	for _, d := range data {
		for _, stop := range []bool{false, true} {
			out, err := pipeline.Chain(newVMs(t, d.img, d.phases, vm.StopOnOutput(stop)), 0)
			require.NoError(t, err)
			assert.Equal(t, []vm.Cell{d.want}, out)
		}
	}
}

func TestChain_errors(t *testing.T) {
	_, err := pipeline.Chain(nil)
	assert.Equal(t, pipeline.ErrEmpty, err)

	ok, err := vm.New(vm.Image{3, 0, 4, 0, 99})
	require.NoError(t, err)
	bad, err := vm.New(vm.Image{3, 0, 50})
	require.NoError(t, err)
	_, err = pipeline.Chain([]*vm.Instance{ok, bad}, 1)
	assert.ErrorIs(t, err, vm.ErrInvalidOpcode)
	assert.EqualError(t, err, "chain vm 1: @pc=2 rb=0: instruction word 50: invalid opcode")
}

// Two pass-through VMs that increment the value they relay. The first one
// halts after forwarding 9, the second one after forwarding 10.
func TestRing(t *testing.T) {
	img := assemble(t, `
	:loop	in x
		add x #1 x
		out x
		lt x #9 f
		jt f #loop
		hlt
	:x	0
	:f	0
	`)
	a, err := vm.New(img)
	require.NoError(t, err)
	b, err := vm.New(img)
	require.NoError(t, err)

	var trace []vm.Cell
	hook := vm.Trace(func(i *vm.Instance, pc vm.Cell, ins vm.Instruction) {
		if ins.Op == vm.OpOut {
			v, _ := i.Peek(pc + 1)
			v, _ = i.Peek(v)
			trace = append(trace, v)
		}
	})
	require.NoError(t, a.SetOptions(hook))
	require.NoError(t, b.SetOptions(hook))

	r := pipeline.NewRing(a, b)
	last, err := r.Run(0)
	require.NoError(t, err)
	assert.Equal(t, vm.Cell(10), last)
	assert.Equal(t, 5, r.Rounds())
	assert.Equal(t, []vm.Cell{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, trace)
	assert.True(t, a.Halted())
	assert.True(t, b.Halted())
}

func TestRing_passThrough(t *testing.T) {
	// in 100; out 100; in 100; out 100; hlt
	img := vm.Image{3, 100, 4, 100, 3, 100, 4, 100, 99}
	vms := newVMs(t, img, nil)
	for k := 0; k < 2; k++ {
		i, err := vm.New(img)
		require.NoError(t, err)
		vms = append(vms, i)
	}
	last, err := pipeline.NewRing(vms...).Run(42)
	require.NoError(t, err)
	assert.Equal(t, vm.Cell(42), last)
}

func TestRing_feedback(t *testing.T) {
	img := vm.Image{3, 26, 1001, 26, -4, 26, 3, 27, 1002, 27, 2, 27, 1, 27, 26,
		27, 4, 27, 1001, 28, -1, 28, 1005, 28, 6, 99, 0, 0, 5}
	r := pipeline.NewRing(newVMs(t, img, []vm.Cell{9, 8, 7, 6, 5})...)
	last, err := r.Run(0)
	require.NoError(t, err)
	assert.Equal(t, vm.Cell(139629729), last)
	assert.Equal(t, 5, r.Rounds())
}

func TestRing_errors(t *testing.T) {
	_, err := pipeline.NewRing().Run()
	assert.Equal(t, pipeline.ErrEmpty, err)

	// in 0; out 0; hlt
	img := vm.Image{3, 0, 4, 0, 99}
	vms := newVMs(t, img, nil)
	for k := 0; k < 2; k++ {
		i, err := vm.New(img)
		require.NoError(t, err)
		vms = append(vms, i)
	}
	r := pipeline.NewRing(vms...)
	_, err = r.Run()
	assert.ErrorIs(t, err, pipeline.ErrStalled)
	assert.Equal(t, 1, r.Rounds())

	// resume
	last, err := r.Run(7)
	require.NoError(t, err)
	assert.Equal(t, vm.Cell(7), last)

	// last VM never outputs
	a, err := vm.New(img)
	require.NoError(t, err)
	b, err := vm.New(vm.Image{3, 0, 99})
	require.NoError(t, err)
	_, err = pipeline.NewRing(a, b).Run(1)
	assert.ErrorIs(t, err, pipeline.ErrNoOutput)

	// fault
	a, err = vm.New(img)
	require.NoError(t, err)
	b, err = vm.New(vm.Image{3, 0, 50})
	require.NoError(t, err)
	_, err = pipeline.NewRing(a, b).Run(1)
	assert.ErrorIs(t, err, vm.ErrInvalidOpcode)
}

func TestConverse(t *testing.T) {
	// doubles its input until it reads 0
	img := vm.Image{3, 100, 1006, 100, 14, 1002, 100, 2, 101, 4, 101, 1105, 1, 0, 99}
	i, err := vm.New(img)
	require.NoError(t, err)

	var seen [][]vm.Cell
	err = pipeline.Converse(i, 1, func(out []vm.Cell) (vm.Cell, error) {
		seen = append(seen, out)
		if out[0] >= 16 {
			return 0, nil
		}
		return out[0], nil
	})
	require.NoError(t, err)
	assert.Equal(t, [][]vm.Cell{{2}, {4}, {8}, {16}}, seen)
	assert.True(t, i.Halted())
}

func TestConverse_final(t *testing.T) {
	// in 0; out 0; out #-1; hlt
	i, err := vm.New(vm.Image{3, 0, 4, 0, 104, -1, 99}, vm.StopOnOutput(true))
	require.NoError(t, err)
	var seen [][]vm.Cell
	err = pipeline.Converse(i, 5, func(out []vm.Cell) (vm.Cell, error) {
		seen = append(seen, out)
		return 0, nil
	})
	require.NoError(t, err)
	assert.Equal(t, [][]vm.Cell{{5, -1}}, seen)
}

func TestConverse_errors(t *testing.T) {
	img := vm.Image{3, 100, 4, 100, 1105, 1, 0}
	i, err := vm.New(img)
	require.NoError(t, err)
	boom := errors.New("boom")
	err = pipeline.Converse(i, 1, func(out []vm.Cell) (vm.Cell, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.EqualError(t, err, "converse turn 1: boom")

	i, err = vm.New(vm.Image{3, 0, 50})
	require.NoError(t, err)
	err = pipeline.Converse(i, 1, func(out []vm.Cell) (vm.Cell, error) {
		return 0, nil
	})
	assert.ErrorIs(t, err, vm.ErrInvalidOpcode)
}

func TestSearch(t *testing.T) {
	amp := vm.Image{3, 15, 3, 16, 1002, 16, 10, 16, 1, 16, 15, 15, 4, 15, 99, 0, 0}
	calls := 0
	seen := make(map[string]bool)
	best, perm, err := pipeline.Search([]vm.Cell{0, 1, 2, 3, 4}, func(phases []vm.Cell) (vm.Cell, error) {
		calls++
		seen[fmt.Sprint(phases)] = true
		out, err := pipeline.Chain(newVMs(t, amp, phases), 0)
		if err != nil {
			return 0, err
		}
		return out[len(out)-1], nil
	})
	require.NoError(t, err)
	assert.Equal(t, 120, calls)
	assert.Len(t, seen, 120)
	assert.Equal(t, vm.Cell(43210), best)
	assert.Equal(t, []vm.Cell{4, 3, 2, 1, 0}, perm)

	fb := vm.Image{3, 26, 1001, 26, -4, 26, 3, 27, 1002, 27, 2, 27, 1, 27, 26,
		27, 4, 27, 1001, 28, -1, 28, 1005, 28, 6, 99, 0, 0, 5}
	best, perm, err = pipeline.Search([]vm.Cell{5, 6, 7, 8, 9}, func(phases []vm.Cell) (vm.Cell, error) {
		return pipeline.NewRing(newVMs(t, fb, phases)...).Run(0)
	})
	require.NoError(t, err)
	assert.Equal(t, vm.Cell(139629729), best)
	assert.Equal(t, []vm.Cell{9, 8, 7, 6, 5}, perm)
}

func TestSearch_faults(t *testing.T) {
	// faulting permutations are skipped
	best, perm, err := pipeline.Search([]vm.Cell{1, 2, 3}, func(p []vm.Cell) (vm.Cell, error) {
		if p[0] == 3 {
			return 0, vm.ErrInvalidOpcode
		}
		return p[0]*100 + p[1]*10 + p[2], nil
	})
	require.NoError(t, err)
	assert.Equal(t, vm.Cell(231), best)
	assert.Equal(t, []vm.Cell{2, 3, 1}, perm)

	_, _, err = pipeline.Search([]vm.Cell{1, 2}, func(p []vm.Cell) (vm.Cell, error) {
		return 0, vm.ErrInvalidOpcode
	})
	assert.Equal(t, vm.ErrInvalidOpcode, err)

	_, _, err = pipeline.Search(nil, func(p []vm.Cell) (vm.Cell, error) {
		t.Fatal("called with no values")
		return 0, nil
	})
	assert.Equal(t, pipeline.ErrEmpty, err)
}
