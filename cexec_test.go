package main

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// cProgram is a generated C program, read back into a form that can be
// evaluated without a C compiler. Only the statements that GenerateC writes
// are understood.
type cProgram struct {
	size int
	body []cStmt
}

type cStmt struct {
	kind   byte // one of +>.,[
	amount int
	eof    byte
	body   []cStmt
}

var (
	cArray  = regexp.MustCompile(`^static unsigned char array\[(\d+)\];$`)
	cInput  = regexp.MustCompile(`^\*ptr = \(c = getchar\(\)\) == EOF \? (\d+) : c;$`)
	cAdjust = regexp.MustCompile(`^(\*?ptr) ([+-])= (\d+);$`)
)

func parseCProgram(src string) (*cProgram, error) {
	var prog cProgram
	stack := [][]cStmt{nil}
	inMain := false
	for i, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		top := len(stack) - 1
		stmt := cStmt{amount: 1}

		switch {
		case !inMain:
			inMain = line == "int main() {"
			continue
		case line == "", line == "unsigned char *ptr = array;", line == "int c;":
			continue
		case line == "return 0;":
			if top != 0 {
				return nil, fmt.Errorf("line %v: return inside loop", i+1)
			}
			prog.body = stack[0]
			return &prog, nil

		case cArray.MatchString(line):
			prog.size, _ = strconv.Atoi(cArray.FindStringSubmatch(line)[1])
			continue

		case line == "++*ptr;":
			stmt.kind = '+'
		case line == "--*ptr;":
			stmt.kind, stmt.amount = '+', -1
		case line == "++ptr;":
			stmt.kind = '>'
		case line == "--ptr;":
			stmt.kind, stmt.amount = '>', -1
		case line == "putchar(*ptr);":
			stmt.kind = '.'
		case cInput.MatchString(line):
			eof, _ := strconv.Atoi(cInput.FindStringSubmatch(line)[1])
			stmt.kind, stmt.eof = ',', byte(eof)
		case cAdjust.MatchString(line):
			m := cAdjust.FindStringSubmatch(line)
			stmt.kind = '>'
			if m[1] == "*ptr" {
				stmt.kind = '+'
			}
			stmt.amount, _ = strconv.Atoi(m[3])
			if m[2] == "-" {
				stmt.amount = -stmt.amount
			}

		case line == "while (*ptr) {":
			stack = append(stack, nil)
			continue
		case line == "}":
			if top == 0 {
				return nil, fmt.Errorf("line %v: unbalanced }", i+1)
			}
			stmt = cStmt{kind: '[', body: stack[top]}
			stack = stack[:top]
			top--

		default:
			return nil, fmt.Errorf("line %v: unexpected %q", i+1, line)
		}
		stack[top] = append(stack[top], stmt)
	}
	return nil, errors.New("missing main body")
}

// cMachine evaluates a cProgram.
type cMachine struct {
	tape  []byte
	ptr   int
	in    *bytes.Reader
	out   bytes.Buffer
	steps int
}

var errCStepLimit = errors.New("step limit exceeded")

const cStepLimit = 10000000

func (prog *cProgram) run(input string) (*cMachine, error) {
	m := cMachine{
		tape: make([]byte, prog.size),
		in:   bytes.NewReader([]byte(input)),
	}
	return &m, m.exec(prog.body)
}

func (m *cMachine) cell() (*byte, error) {
	if m.ptr < 0 || m.ptr >= len(m.tape) {
		return nil, fmt.Errorf("ptr %v outside array[%v]", m.ptr, len(m.tape))
	}
	return &m.tape[m.ptr], nil
}

func (m *cMachine) exec(body []cStmt) error {
	for _, stmt := range body {
		if m.steps++; m.steps > cStepLimit {
			return errCStepLimit
		}
		if stmt.kind == '>' {
			m.ptr += stmt.amount
			continue
		}

		cell, err := m.cell()
		if err != nil {
			return err
		}
		switch stmt.kind {
		case '+':
			*cell += byte(stmt.amount)
		case '.':
			m.out.WriteByte(*cell)
		case ',':
			if b, err := m.in.ReadByte(); err == nil {
				*cell = b
			} else {
				*cell = stmt.eof
			}
		case '[':
			for *cell != 0 {
				if err := m.exec(stmt.body); err != nil {
					return err
				}
				if cell, err = m.cell(); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
