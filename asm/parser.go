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

package asm

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/scanner"
	"unicode"

	"github.com/db47h/intcode/vm"
)

const maxErrors = 10

// MaxImageSize is the maximum number of cells in an assembled image.
const MaxImageSize = 1 << 24

func isIdentRune(ch rune, i int) bool {
	return unicode.IsLetter(ch) || unicode.IsSymbol(ch) || unicode.IsPunct(ch) || unicode.IsDigit(ch)
}

// parser states
const (
	stateAny     = iota // accept anything
	stateOperand        // need an operand for the current instruction
	stateOrg            // accept integer or const (.org)
	stateEqu            // accept integer or const (.equ value)
	stateDat            // accept integer, const or label (.dat)
)

type labelSite struct {
	pos     scanner.Position
	address int
}

type label struct {
	labelSite
	uses []labelSite
}

type parser struct {
	i       []vm.Cell
	pc      int
	end     int
	s       scanner.Scanner
	labels  map[string]*label
	consts  map[string]labelSite
	locals  map[string]int
	cstName string
	cstPos  scanner.Position
	errs    ErrAsm

	// instruction being assembled
	ins   vm.Instruction
	insPC int
	argn  int
}

func newParser() *parser {
	return &parser{
		labels: make(map[string]*label),
		consts: make(map[string]labelSite),
		locals: make(map[string]int),
	}
}

func (p *parser) write(v vm.Cell) {
	for p.pc >= len(p.i) {
		p.i = append(p.i, make([]vm.Cell, 1024)...)
	}
	p.i[p.pc] = v
	p.pc++
	if p.pc > p.end {
		p.end = p.pc
	}
}

func (p *parser) error(msg string) {
	pos := p.s.Position
	if !pos.IsValid() {
		pos = p.s.Pos()
	}
	p.errorAt(pos, msg)
}

func (p *parser) errorAt(pos scanner.Position, msg string) {
	if len(p.errs) < maxErrors {
		p.errs = append(p.errs, ErrAsmEntry{pos, msg})
	}
}

// isLocal returns true if name is made of digits only.
func isLocal(name string) bool {
	if name == "" {
		return false
	}
	for _, c := range name {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// localRef converts a local label reference (N+ or N-) to its internal name.
func (p *parser) localRef(s string) (string, bool) {
	if len(s) < 2 {
		return "", false
	}
	n, dir := s[:len(s)-1], s[len(s)-1]
	if !isLocal(n) || (dir != '+' && dir != '-') {
		return "", false
	}
	c := p.locals[n]
	if dir == '+' {
		c++
	}
	return n + "·" + strconv.Itoa(c), true
}

func (p *parser) useLabel(name string) {
	lbl := p.labels[name]
	if lbl == nil {
		lbl = &label{
			// use current position as valid temp position
			labelSite{p.s.Position, -1},
			nil,
		}
		p.labels[name] = lbl
	}
	lbl.uses = append(lbl.uses, labelSite{p.s.Position, p.pc})
}

func (p *parser) defineLabel(name string) {
	if name == "" {
		p.error("Empty label name")
		return
	}
	if isLocal(name) {
		p.locals[name]++
		name = name + "·" + strconv.Itoa(p.locals[name])
	}
	if cst, ok := p.consts[name]; ok {
		p.error("Label redefinition: " + name + ", previously defined as a constant here: " + cst.pos.String())
		return
	}
	if l, ok := p.labels[name]; ok {
		if l.address != -1 {
			p.error("Label redefinition: " + name + ", previous definition here: " + l.pos.String())
			return
		}
		l.address = p.pc
		l.pos = p.s.Position
		return
	}
	p.labels[name] = &label{labelSite{p.s.Position, p.pc}, nil}
}

// literal converts s to an integer if it is an integer literal, a character
// literal or a constant.
func (p *parser) literal(s string) (vm.Cell, bool) {
	if n, err := strconv.ParseInt(s, 0, 64); err == nil {
		return vm.Cell(n), true
	}
	if len(s) > 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		r, _, tail, err := strconv.UnquoteChar(s[1:len(s)-1], '\'')
		if err != nil || tail != "" {
			p.error("Invalid character literal " + s)
			return 0, true
		}
		return vm.Cell(r), true
	}
	if c, ok := p.consts[s]; ok {
		return vm.Cell(c.address), true
	}
	return 0, false
}

// value writes the value of s at the current pc. s may be a literal or a label
// reference.
func (p *parser) value(s string) {
	if v, ok := p.literal(s); ok {
		p.write(v)
		return
	}
	if name, ok := p.localRef(s); ok {
		s = name
	} else if s == "" || s[0] == ':' || s[0] == '.' || s[0] == '#' || s[0] == '%' {
		p.error("Invalid value or label reference: " + s)
		p.write(0)
		return
	}
	p.useLabel(s)
	p.write(0)
}

func (p *parser) operand(s string) {
	mode := vm.Position
	switch s[0] {
	case '#':
		mode = vm.Immediate
		s = s[1:]
	case '%':
		mode = vm.Relative
		s = s[1:]
	}
	if mode == vm.Immediate && p.ins.Op.IsTarget(p.argn) {
		p.error(fmt.Sprintf("Immediate write target for operand %d of %s", p.argn+1, p.ins.Op))
	}
	p.ins.Modes[p.argn] = mode
	p.i[p.insPC] = p.ins.Encode()
	p.value(s)
	p.argn++
}

func (p *parser) instruction(op vm.Opcode) {
	p.ins = vm.Instruction{Op: op}
	p.insPC = p.pc
	p.argn = 0
	p.write(p.ins.Encode())
}

func (p *parser) pending() bool {
	return p.argn < p.ins.Op.Arity()
}

// Parse does the parsing and compiling.
func (p *parser) Parse(name string, r io.Reader) (vm.Image, error) {
	var state = stateAny

	p.s.Init(r)
	p.s.Error = func(s *scanner.Scanner, msg string) {
		p.error(msg)
	}
	p.s.IsIdentRune = isIdentRune
	p.s.Mode = scanner.ScanIdents
	p.s.Filename = name

	for tok := p.s.Scan(); len(p.errs) < maxErrors && tok != scanner.EOF; tok = p.s.Scan() {
		s := p.s.TokenText()
		if tok != scanner.Ident {
			p.error("Unexpected character " + strconv.QuoteRune(tok))
			continue
		}
		if s == "(" {
			// skip comments
			for ; tok != scanner.EOF && (tok != scanner.Ident || p.s.TokenText() != ")"); tok = p.s.Scan() {
			}
			continue
		}

		switch state {
		case stateOperand:
			if s[0] == ':' || s[0] == '.' {
				p.error("Missing operand for " + p.ins.Op.String() + ", got " + s)
				state = stateAny
				break
			}
			p.operand(s)
			if !p.pending() {
				state = stateAny
			}
			continue
		case stateOrg:
			v, ok := p.literal(s)
			switch {
			case !ok || v < 0:
				p.error(".org: expected non-negative integer or constant, got " + s)
			case v >= MaxImageSize:
				p.error(".org: address " + s + " beyond maximum image size")
			default:
				p.pc = int(v)
			}
			state = stateAny
			continue
		case stateEqu:
			if v, ok := p.literal(s); ok {
				p.consts[p.cstName] = labelSite{p.cstPos, int(v)}
			} else {
				p.error(".equ: expected integer or constant, got " + s)
			}
			state = stateAny
			continue
		case stateDat:
			p.value(s)
			state = stateAny
			continue
		}

		// stateAny
		switch s[0] {
		case ':':
			p.defineLabel(s[1:])
		case '.':
			switch s {
			case ".org":
				state = stateOrg
			case ".dat":
				state = stateDat
			case ".equ":
				t := p.s.Scan()
				if t != scanner.Ident {
					p.error(".equ: expected identifier, got " + p.s.TokenText())
					break
				}
				p.cstName = p.s.TokenText()
				if l, ok := p.labels[p.cstName]; ok {
					p.error(".equ: redefinition of " + p.cstName + ", previously defined/used as a label here: " + l.pos.String())
					break
				}
				p.cstPos = p.s.Position
				state = stateEqu
			default:
				p.error("Unknown dot directive: " + s)
			}
		default:
			if op, ok := opcodeIndex[strings.ToLower(s)]; ok {
				p.instruction(op)
				if p.pending() {
					state = stateOperand
				}
				break
			}
			if v, ok := p.literal(s); ok {
				// raw data
				p.write(v)
				break
			}
			p.error("Unknown mnemonic " + s)
		}
	}

	switch state {
	case stateOperand:
		p.error("Missing operand for " + p.ins.Op.String() + " at end of input")
	case stateOrg, stateEqu, stateDat:
		p.error("Missing directive argument at end of input")
	}

	// write labels
	for n, l := range p.labels {
		if l.address == -1 {
			p.errorAt(l.uses[0].pos, "Undefined label "+n)
			continue
		}
		for _, u := range l.uses {
			p.i[u.address] = vm.Cell(l.address)
		}
	}

	if len(p.errs) > 0 {
		p.errs.sort()
		return nil, p.errs
	}
	return vm.Image(p.i[:p.end]), nil
}
