package main

import (
	"context"
	"io"
)

// Program owns a parsed program tree.
type Program struct {
	Code Seq
}

// Optimize replaces the program's tree with its optimized form.
func (prog *Program) Optimize() {
	prog.Code = Optimize(prog.Code)
}

// Run interprets the program on a fresh VM.
func (prog *Program) Run(ctx context.Context, opts ...VMOption) error {
	return New(opts...).Run(ctx, prog.Code)
}

// GenerateC returns C source equivalent to the program.
func (prog *Program) GenerateC(opts ...GenOption) string {
	return GenerateC(prog.Code, opts...)
}

// New creates a VM with a zeroed tape, reading no input and discarding
// output unless configured otherwise.
func New(opts ...VMOption) *VM {
	var vm VM
	defaultVMOptions.apply(&vm)
	VMOptions(opts).apply(&vm)
	return &vm
}

// WithInput sets the stream that input instructions read from.
func WithInput(r io.Reader) VMOption { return inputOption{r} }

// WithOutput sets the stream that output instructions write to.
func WithOutput(w io.Writer) VMOption { return outputOption{w} }

// WithTee additionally copies output to w.
func WithTee(w io.Writer) VMOption { return teeOption{w} }

// WithLogf enables trace logging of every executed node.
func WithLogf(logfn func(mess string, args ...interface{})) VMOption { return withLogfn(logfn) }

// WithTapeSize sets the number of tape cells.
func WithTapeSize(size int) TapeOption { return tapeSizeOption(size) }

// WithEOF sets the byte stored by an input instruction once input is
// exhausted.
func WithEOF(b byte) TapeOption { return eofOption(b) }

// WithName sets the source name used in parse error locations, in place of
// any Name() method of the reader.
func WithName(name string) ParseOption { return nameOption(name) }

// WithComment sets the line comment marker; 0 disables line comments.
func WithComment(r rune) ParseOption { return commentOption(r) }

// WithIndent sets the per-level indentation of generated code.
func WithIndent(indent string) GenOption { return indentOption(indent) }
