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

import (
	"math"
	"slices"

	"github.com/pkg/errors"
)

const (
	pageBits = 10
	pageSize = 1 << pageBits
	pageMask = pageSize - 1
)

type page [pageSize]Cell

// Memory is a sparse, auto-extending address space. Addresses that have never
// been written to read as 0. Storage is allocated in pages of 1024 cells, and
// only for pages that have been written to.
//
// The zero value is an empty memory ready to use.
type Memory struct {
	pages map[Cell]*page
	size  Cell
}

func newMemory(img Image) Memory {
	var m Memory
	m.load(0, img)
	return m
}

func (m *Memory) load(base Cell, cells []Cell) {
	for k, v := range cells {
		m.store(base+Cell(k), v)
	}
}

func (m *Memory) store(addr, v Cell) {
	if m.pages == nil {
		m.pages = make(map[Cell]*page)
	}
	p := m.pages[addr>>pageBits]
	if p == nil {
		if v == 0 {
			// no need to allocate a page to store a zero
			m.grow(addr)
			return
		}
		p = new(page)
		m.pages[addr>>pageBits] = p
	}
	p[addr&pageMask] = v
	m.grow(addr)
}

func (m *Memory) grow(addr Cell) {
	if addr >= m.size {
		m.size = addr + 1
		if m.size < 0 {
			m.size = math.MaxInt64
		}
	}
}

// Read returns the value stored at address addr, or 0 if nothing was ever
// written there.
func (m *Memory) Read(addr Cell) (Cell, error) {
	if addr < 0 {
		return 0, errors.Wrapf(ErrNegativeAddress, "read %d", addr)
	}
	if p := m.pages[addr>>pageBits]; p != nil {
		return p[addr&pageMask], nil
	}
	return 0, nil
}

// Write stores v at address addr, extending the address space as needed.
func (m *Memory) Write(addr, v Cell) error {
	if addr < 0 {
		return errors.Wrapf(ErrNegativeAddress, "write %d", addr)
	}
	m.store(addr, v)
	return nil
}

// Len returns one past the highest address loaded or written so far. It
// saturates at math.MaxInt64.
func (m *Memory) Len() Cell {
	return m.size
}

// Pages returns the number of allocated pages.
func (m *Memory) Pages() int {
	return len(m.pages)
}

// MaxSlice is the maximum number of cells returned by Slice.
const MaxSlice = 1 << 20

// Slice returns a copy of the cells in the range [from, to). The range must
// not start at a negative address nor span more than MaxSlice cells.
func (m *Memory) Slice(from, to Cell) ([]Cell, error) {
	if from < 0 {
		return nil, errors.Wrapf(ErrNegativeAddress, "slice %d", from)
	}
	if to <= from {
		return nil, nil
	}
	if to-from > MaxSlice {
		return nil, errors.Errorf("slice [%d:%d]: range larger than %d cells", from, to, MaxSlice)
	}
	s := make([]Cell, to-from)
	for addr := from; addr < to; {
		p := m.pages[addr>>pageBits]
		end := (addr | pageMask) + 1
		if end > to || end < 0 {
			end = to
		}
		if p != nil {
			copy(s[addr-from:end-from], p[addr&pageMask:])
		}
		addr = end
	}
	return s, nil
}

// walk calls fn for each allocated page in ascending address order, with the
// address of the first cell of the page and its contents.
func (m *Memory) walk(fn func(addr Cell, cells []Cell)) {
	keys := make([]Cell, 0, len(m.pages))
	for k := range m.pages {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fn(k<<pageBits, m.pages[k][:])
	}
}

// nonZero returns all non-zero cells, keyed by address.
func (m *Memory) nonZero() map[Cell]Cell {
	cells := make(map[Cell]Cell)
	for base, p := range m.pages {
		for k, v := range p {
			if v != 0 {
				cells[base<<pageBits+Cell(k)] = v
			}
		}
	}
	return cells
}

// restore loads cells as returned by nonZero.
func (m *Memory) restore(cells map[Cell]Cell, size Cell) error {
	for addr, v := range cells {
		if addr < 0 {
			return errors.Wrapf(ErrNegativeAddress, "restore %d", addr)
		}
		m.store(addr, v)
	}
	m.grow(size - 1)
	return nil
}
