package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jcorbin/gobf/internal/fileinput"
)

// Bracket mismatches reported as StructuralError causes.
var (
	ErrUnmatchedClose   = errors.New("unmatched ]")
	ErrUnterminatedLoop = errors.New("unterminated [")
)

// StructuralError reports a bracket nesting mismatch found while parsing.
// For an unterminated loop, Loc is the position of its opening bracket.
type StructuralError struct {
	Loc fileinput.Location
	Err error
}

func (err StructuralError) Error() string { return fmt.Sprintf("%v: %v", err.Loc, err.Err) }
func (err StructuralError) Unwrap() error { return err.Err }

// Parse reads Brainfuck source from r and returns its program tree.
//
// Only the eight command symbols are significant; all other characters are
// ignored, and a line comment marker (";" by default) discards the rest of
// its line. Brackets must balance: no partial tree is returned on error.
func Parse(r io.Reader, opts ...ParseOption) (*Program, error) {
	p := parser{comment: DefaultComment}
	for _, opt := range opts {
		if opt != nil {
			opt.applyParse(&p)
		}
	}
	if p.name == "" {
		p.in = fileinput.New(r, "<input>")
		p.name = p.in.Name()
	} else {
		p.in = fileinput.NewNamed(r, p.name)
	}

	code, err := p.parse()
	if err != nil {
		return nil, err
	}
	return &Program{Code: code}, nil
}

// ParseString parses Brainfuck source from a string.
func ParseString(src string, opts ...ParseOption) (*Program, error) {
	return Parse(strings.NewReader(src), opts...)
}

type parser struct {
	name    string
	comment rune

	in *fileinput.Input

	// seq collects the innermost open sequence; open holds each enclosing
	// sequence, and where its loop began, while its body is parsed.
	seq  Seq
	open []openLoop
}

type openLoop struct {
	outer Seq
	start fileinput.Location
}

func (p *parser) parse() (Seq, error) {
	for {
		r, _, err := p.in.ReadRune()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("%v: %w", p.in.Name(), err)
		}

		if op, ok := opSymbols[r]; ok {
			p.seq = append(p.seq, Node{Op: op})
			continue
		}

		switch {
		case r == '[':
			p.open = append(p.open, openLoop{p.seq, p.in.Last})
			p.seq = nil

		case r == ']':
			i := len(p.open) - 1
			if i < 0 {
				return nil, StructuralError{p.in.Last, ErrUnmatchedClose}
			}
			loop := Node{Op: OpLoop, Body: p.seq}
			p.seq = append(p.open[i].outer, loop)
			p.open = p.open[:i]

		case p.comment != 0 && r == p.comment:
			if err := p.in.SkipLine(); err != nil {
				return nil, fmt.Errorf("%v: %w", p.in.Name(), err)
			}
		}
	}

	if i := len(p.open) - 1; i >= 0 {
		return nil, StructuralError{p.open[i].start, ErrUnterminatedLoop}
	}
	return p.seq, nil
}
