// Package fileinput provides location-tracking rune input.
package fileinput

import (
	"bufio"
	"fmt"
	"io"
)

// Location names a position in an Input: 1-based line and column.
type Location struct {
	Name string
	Line int
	Col  int
}

func (loc Location) String() string {
	return fmt.Sprintf("%v:%v:%v", loc.Name, loc.Line, loc.Col)
}

// Input implements rune reading from a single stream, tracking the location
// of the last rune read.
type Input struct {
	rr   io.RuneReader
	Last Location
	next Location
}

// New creates an Input reading from r, buffering it unless it already reads
// runes. The location name is taken from any Name() string method on r,
// falling back to defaultName.
func New(r io.Reader, defaultName string) *Input {
	return NewNamed(r, nameOf(r, defaultName))
}

// NewNamed is like New, but always uses name for locations.
func NewNamed(r io.Reader, name string) *Input {
	rr, ok := r.(io.RuneReader)
	if !ok {
		rr = bufio.NewReader(r)
	}
	in := &Input{rr: rr}
	in.next.Name = name
	in.next.Line = 1
	in.next.Col = 1
	return in
}

// Name returns the location name of the input stream.
func (in *Input) Name() string { return in.next.Name }

// ReadRune reads one rune, recording its location in Last.
func (in *Input) ReadRune() (rune, int, error) {
	r, n, err := in.rr.ReadRune()
	if n == 0 {
		return r, n, err
	}
	in.Last = in.next
	if r == '\n' {
		in.next.Line++
		in.next.Col = 1
	} else {
		in.next.Col++
	}
	return r, n, err
}

// SkipLine discards input up to and including the next line feed.
// Returns nil if the stream ends before one.
func (in *Input) SkipLine() error {
	for {
		r, _, err := in.ReadRune()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if r == '\n' {
			return nil
		}
	}
}

func nameOf(obj interface{}, defaultName string) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		if name := nom.Name(); name != "" {
			return name
		}
	}
	return defaultName
}
