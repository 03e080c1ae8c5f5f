package main

import (
	"fmt"
	"strings"
)

// GenerateC returns the source of a C program that behaves like the
// interpreter running code: same tape size, same modulo 256 cell arithmetic
// (through unsigned char cells), same byte output, and the same byte stored
// when input runs out. Cursor bounds are not checked by the generated code.
func GenerateC(code Seq, opts ...GenOption) string {
	g := cgen{
		tapeSize: DefaultTapeSize,
		eof:      DefaultEOF,
		indent:   DefaultIndent,
	}
	for _, opt := range opts {
		if opt != nil {
			opt.applyGen(&g)
		}
	}
	g.program(code)
	return g.buf.String()
}

type cgen struct {
	tapeSize int
	eof      byte
	indent   string

	buf strings.Builder
}

func (g *cgen) program(code Seq) {
	g.line(0, "#include <stdio.h>")
	g.line(0, "")
	g.line(0, "int main() {")
	g.linef(1, "static unsigned char array[%d];", g.tapeSize)
	g.line(1, "unsigned char *ptr = array;")
	if code.Uses(OpInput) {
		g.line(1, "int c;")
	}
	g.seq(1, code)
	g.line(1, "return 0;")
	g.line(0, "}")
}

func (g *cgen) seq(nest int, seq Seq) {
	for _, node := range seq {
		g.node(nest, node)
	}
}

func (g *cgen) node(nest int, node Node) {
	switch node.Op {
	case OpInc:
		g.line(nest, "++*ptr;")
	case OpDec:
		g.line(nest, "--*ptr;")
	case OpAdd:
		g.adjust(nest, "*ptr", node.Amount)

	case OpRight:
		g.line(nest, "++ptr;")
	case OpLeft:
		g.line(nest, "--ptr;")
	case OpMove:
		g.adjust(nest, "ptr", node.Amount)

	case OpOutput:
		g.line(nest, "putchar(*ptr);")
	case OpInput:
		g.linef(nest, "*ptr = (c = getchar()) == EOF ? %d : c;", g.eof)

	case OpLoop:
		g.line(nest, "while (*ptr) {")
		g.seq(nest+1, node.Body)
		g.line(nest, "}")

	default:
		panic(opError(node.Op))
	}
}

func (g *cgen) adjust(nest int, lvalue string, amount int) {
	if amount < 0 {
		g.linef(nest, "%v -= %d;", lvalue, -amount)
	} else {
		g.linef(nest, "%v += %d;", lvalue, amount)
	}
}

func (g *cgen) linef(nest int, format string, args ...interface{}) {
	g.line(nest, fmt.Sprintf(format, args...))
}

func (g *cgen) line(nest int, s string) {
	if s != "" {
		for i := 0; i < nest; i++ {
			g.buf.WriteString(g.indent)
		}
		g.buf.WriteString(s)
	}
	g.buf.WriteByte('\n')
}
