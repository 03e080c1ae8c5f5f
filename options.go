package main

import (
	"bytes"
	"io"

	"github.com/jcorbin/gobf/internal/flushio"
)

// Defaults used when no option says otherwise.
const (
	DefaultTapeSize = 32768
	DefaultEOF      = '\n'
	DefaultComment  = ';'
	DefaultIndent   = "  "
)

// VMOption configures a VM.
type VMOption interface{ apply(vm *VM) }

// ParseOption configures Parse.
type ParseOption interface{ applyParse(p *parser) }

// GenOption configures GenerateC.
type GenOption interface{ applyGen(g *cgen) }

// TapeOption configures both a VM and GenerateC, so that interpreted and
// generated programs agree.
type TapeOption interface {
	VMOption
	GenOption
}

// VMOptions combines any number of options into one.
type VMOptions []VMOption

func (opts VMOptions) apply(vm *VM) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(vm)
		}
	}
}

var defaultVMOptions = VMOptions{
	inputOption{bytes.NewReader(nil)},
	outputOption{io.Discard},
	tapeSizeOption(DefaultTapeSize),
	eofOption(DefaultEOF),
}

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(vm *VM) {
	vm.logfn = logfn
}

type inputOption struct{ io.Reader }
type outputOption struct{ io.Writer }
type teeOption struct{ io.Writer }

func (i inputOption) apply(vm *VM) {
	vm.in = newByteReader(i.Reader)
}

func (o outputOption) apply(vm *VM) {
	if vm.out != nil {
		vm.out.Flush()
	}
	vm.out = flushio.NewWriteFlusher(o.Writer)
}

func (o teeOption) apply(vm *VM) {
	vm.out = flushio.WriteFlushers(vm.out, flushio.NewWriteFlusher(o.Writer))
}

type tapeSizeOption int
type eofOption byte

func (size tapeSizeOption) apply(vm *VM) {
	vm.tapeSize = int(size)
	vm.tape.Limit = uint(size)
}

func (size tapeSizeOption) applyGen(g *cgen) {
	g.tapeSize = int(size)
}

func (b eofOption) apply(vm *VM)     { vm.eof = byte(b) }
func (b eofOption) applyGen(g *cgen) { g.eof = byte(b) }

type nameOption string
type commentOption rune

func (name nameOption) applyParse(p *parser) { p.name = string(name) }
func (r commentOption) applyParse(p *parser) { p.comment = rune(r) }

type indentOption string

func (indent indentOption) applyGen(g *cgen) { g.indent = string(indent) }
