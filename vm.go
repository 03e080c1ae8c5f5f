package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jcorbin/gobf/internal/mem"
	"github.com/jcorbin/gobf/internal/panicerr"
	"github.com/jcorbin/gobf/internal/runeio"
)

// VM interprets program trees against a tape of byte cells.
//
// The tape holds a fixed number of cells, all initially zero; cell arithmetic
// wraps modulo 256. A single cursor selects the current cell. Moving the
// cursor is never checked, but reading or writing a cell while the cursor is
// off the tape halts the VM with an OutOfBoundsError.
type VM struct {
	ioCore

	tape     mem.Bytes
	tapeSize int
	cursor   int

	// eof is stored by input instructions once input is exhausted.
	eof byte
}

// OutOfBoundsError reports a cell access with the cursor off the tape.
type OutOfBoundsError struct {
	Cursor int
	Size   int
	Op     string
}

func (err OutOfBoundsError) Error() string {
	return fmt.Sprintf("%v out of bounds: cursor %v not within tape [0, %v)", err.Op, err.Cursor, err.Size)
}

type opError Op
type bodyError Op

func (op opError) Error() string   { return fmt.Sprintf("invalid node kind %v", Op(op)) }
func (op bodyError) Error() string { return fmt.Sprintf("%v node may not have a body", Op(op)) }

// Run executes code to completion, or until ctx is done. Output is flushed
// before Run returns.
func (vm *VM) Run(ctx context.Context, code Seq) error {
	err := panicerr.Recover("VM", func() error {
		vm.exec(ctx, code)
		vm.halt(nil)
		return nil
	})
	var halt haltError
	if errors.As(err, &halt) {
		return halt.error
	}
	return err
}

// Cursor returns the index of the current cell.
func (vm *VM) Cursor() int { return vm.cursor }

// TapeSize returns the number of tape cells.
func (vm *VM) TapeSize() int { return vm.tapeSize }

// Cell returns the value of the cell at addr, or 0 if addr is off the tape.
func (vm *VM) Cell(addr int) byte {
	if addr < 0 || addr >= vm.tapeSize {
		return 0
	}
	val, _ := vm.tape.Load(uint(addr))
	return val
}

// Cells returns n cell values starting at addr; cells off the tape read as 0.
func (vm *VM) Cells(addr, n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = vm.Cell(addr + i)
	}
	return buf
}

func (vm *VM) exec(ctx context.Context, seq Seq) {
	for _, node := range seq {
		vm.step(ctx, node)
	}
}

func (vm *VM) step(ctx context.Context, node Node) {
	if vm.logfn != nil {
		vm.logf("exec", "%v @%v", node.Op, vm.cursor)
	}

	switch node.Op {
	case OpInc:
		vm.add(1)
	case OpDec:
		vm.add(-1)
	case OpAdd:
		vm.add(node.Amount)

	case OpRight:
		vm.cursor++
	case OpLeft:
		vm.cursor--
	case OpMove:
		vm.cursor += node.Amount

	case OpOutput:
		vm.output()
	case OpInput:
		vm.input()

	case OpLoop:
		vm.loop(ctx, node.Body)

	default:
		vm.halt(opError(node.Op))
	}
}

func (vm *VM) loop(ctx context.Context, body Seq) {
	if vm.logfn != nil {
		defer vm.withLogPrefix("  ")()
	}
	for vm.load("loop") != 0 {
		vm.exec(ctx, body)
		vm.haltif(ctx.Err())
	}
}

// addr returns the cursor as a tape address, halting if it is off the tape.
func (vm *VM) addr(op string) uint {
	if vm.cursor < 0 || vm.cursor >= vm.tapeSize {
		vm.halt(OutOfBoundsError{vm.cursor, vm.tapeSize, op})
	}
	return uint(vm.cursor)
}

func (vm *VM) load(op string) byte {
	val, err := vm.tape.Load(vm.addr(op))
	vm.haltif(err)
	return val
}

func (vm *VM) add(delta int) {
	val, err := vm.tape.Add(vm.addr("add"), delta)
	vm.haltif(err)
	if vm.logfn != nil {
		vm.logf("=", "@%v %v", vm.cursor, val)
	}
}

func (vm *VM) output() {
	val := vm.load("output")
	if vm.logfn != nil {
		vm.logf(">", "%v", byteString(val))
	}
	vm.haltif(writeByte(vm.out, val))
}

func (vm *VM) input() {
	addr := vm.addr("input")
	vm.haltif(vm.out.Flush())

	val, err := vm.in.ReadByte()
	if err == io.EOF {
		val = vm.eof
		vm.logf("<", "EOF, using %v", byteString(val))
	} else if err != nil {
		vm.halt(err)
	} else if vm.logfn != nil {
		vm.logf("<", "%v", byteString(val))
	}

	vm.haltif(vm.tape.Stor(addr, val))
}

// byteString formats a cell value for logs, like "72 'H'" or "10 <NL>".
func byteString(b byte) string {
	if name := runeio.ControlName(rune(b)); name != "" {
		return fmt.Sprintf("%v %v", b, name)
	}
	if b < 0x80 {
		return fmt.Sprintf("%v %q", b, rune(b))
	}
	return fmt.Sprint(b)
}
