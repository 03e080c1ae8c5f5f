package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const helloWorld = "++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]>>.>---.+++++++..+++.>>.<-.<.+++.------.--------.>>+.>++."

func TestVM(t *testing.T) {
	bfTestCases{
		bfTest("empty").expectOutput("").expectCursor(0),
		bfTest("only comments").withSource("hello world").expectOutput("").expectCells(0, 0),

		// cell arithmetic
		bfTest("inc").withSource("+++").expectCells(0, 3),
		bfTest("dec").withSource("+++--").expectCells(0, 1),
		bfTest("wrap up").withCells(0, 255).withSource("+").expectCells(0, 0),
		bfTest("wrap down").withSource("-").expectCells(0, 255),
		bfTest("wrap around").withSource(strings.Repeat("+", 257)).expectCells(0, 1),

		// cursor movement
		bfTest("move").withSource(">>+<").expectCursor(1).expectCells(0, 0, 0, 1),
		bfTest("move off and back").withTapeSize(2).withSource("<<>>+").expectCursor(0).expectCells(0, 1, 0),

		// loops
		bfTest("zero iteration loop").withSource("[+++.]").expectOutput("").expectCells(0, 0),
		bfTest("clear loop").withSource("+++++[-]").expectCells(0, 0),
		bfTest("copy loop").withSource("++>+++>+<<[->+>+<<]>>").
			expectCursor(2).
			expectCells(0, 0, 5, 3),
		bfTest("nested loops").withSource("++[>+++[>+<-]<-]").expectCells(0, 0, 0, 6),
		bfTest("hello world").withSource(helloWorld).expectOutput("Hello World!\n"),

		bfTest("dump").
			withTapeSize(40).
			withSource("++++++++[>++++++++<-]>+>>").
			expectDump(lines(
				"# VM Dump",
				"  cursor: 3",
				"  tape: 40 cells",
				"  @ 0 00 41 00 [00] 00 00 00 00 00 00 00 00 00 00 00 00  .A..............",
			)),
	}.run(t)
}

func TestVM_io(t *testing.T) {
	echoAll := []func(bfTestCase) bfTestCase{
		withBFSource(",[.,]"),
		withBFEOF(0),
	}
	brokenOutput := []func(bfTestCase) bfTestCase{
		withBFOptions(WithOutput(errWriter{errTestOutput})),
		expectBFError(errTestOutput),
	}

	bfTestCases{
		bfTest("echo").withSource(",.,.,.").withInput("abc").expectOutput("abc"),
		bfTest("eof fallback").withSource(",.,.").withInput("a").expectOutput("a\n"),
		bfTest("eof custom").withEOF(0).withCells(0, 42).withSource(",.").expectOutput("\x00").expectCells(0, 0),

		bfTest("echo all").apply(echoAll...).apply(
			withBFInput("abc"),
			expectBFOutput("abc"),
			expectBFCells(0, 0)),
		bfTest("echo nothing").apply(echoAll...).apply(
			expectBFOutput("")),
		bfTest("echo over preset").apply(echoAll...).apply(
			withBFCells(0, 7, 7),
			withBFInput("x"),
			expectBFOutput("x"),
			expectBFCells(0, 0, 7)),

		bfTest("output error").withSource("+.").apply(brokenOutput...),
		bfTest("output error in loop").withSource("+[.-]").apply(brokenOutput...),
		bfTest("output error after input").withSource(",.").withInput("a").apply(brokenOutput...).
			expectCells(0, 'a'),
		bfTest("output error before input").withSource("+.,").withInput("a").apply(brokenOutput...).
			expectCells(0, 1),
	}.run(t)
}

func TestVM_bounds(t *testing.T) {
	const size = 8
	onSmallTape := withBFTapeSize(size)
	faultAt := func(cursor int, op string) func(bfTestCase) bfTestCase {
		return func(bft bfTestCase) bfTestCase {
			return bft.apply(
				expectBFError(OutOfBoundsError{cursor, size, op}),
				expectBFCursor(cursor))
		}
	}

	bfTestCases{
		bfTest("left of tape").withSource("<+").apply(onSmallTape, faultAt(-1, "add")),
		bfTest("right of tape").withSource(">>>>>>>>.").apply(onSmallTape, faultAt(size, "output")),
		bfTest("loop test off tape").withSource("<[]").apply(onSmallTape, faultAt(-1, "loop")),
		bfTest("input off tape").withSource("<,").apply(onSmallTape, faultAt(-1, "input")),
		bfTest("far right in loop").withSource("+[>+]").apply(onSmallTape, faultAt(size, "add")).
			expectCells(0, 1, 1, 1, 1, 1, 1, 1, 1),
		bfTest("default tape").withSource("<-").expectError(OutOfBoundsError{-1, DefaultTapeSize, "add"}),
		bfTest("move past without access").withTapeSize(1).withSource(">>>>>><<<<<<+").expectCells(0, 1),
	}.run(t)
}

func TestVM_timeout(t *testing.T) {
	spin := []func(bfTestCase) bfTestCase{
		withBFTimeout(10 * time.Millisecond),
		expectBFError(context.DeadlineExceeded),
	}

	bfTestCases{
		bfTest("timeout").withSource("+[]").apply(spin...),
		bfTest("timeout after output").withSource("+.[]").apply(spin...).
			expectOutput("\x01"),
		bfTest("timeout in nested loop").withSource("+[>+[]<]").apply(spin...).
			expectCursor(1).
			expectCells(0, 1, 1),
		bfTest("timeout with dump").withTapeSize(16).withSource("+>++[]").apply(spin...).apply(
			expectBFDump(lines(
				"# VM Dump",
				"  cursor: 1",
				"  tape: 16 cells",
				"  @ 0 01 [02] 00 00 00 00 00 00 00 00 00 00 00 00 00 00  ................",
			))),
	}.run(t)
}

func TestVM_parse(t *testing.T) {
	hashComments := withBFParseOptions(WithComment('#'))

	bfTestCases{
		bfTest("unterminated").withSource("[+").expectParseError(ErrUnterminatedLoop),
		bfTest("unmatched").withSource("+]").expectParseError(ErrUnmatchedClose),
		bfTest("commented bracket").withSource("+; [\n+").expectCells(0, 2),
		bfTest("comments disabled").withSource("+; [\n+").
			withParseOptions(WithComment(0)).
			expectParseError(ErrUnterminatedLoop),

		bfTest("hash comment").apply(
			hashComments,
			withBFSource("+# [\n+"),
			expectBFCells(0, 2)),
		bfTest("semicolon not a marker").apply(
			hashComments,
			withBFSource("+; ]"),
			expectBFParseError(ErrUnmatchedClose)),
	}.run(t)
}

var errTestOutput = errors.New("test output error")

func TestVM_trace(t *testing.T) {
	var logged []string
	logf := func(mess string, args ...interface{}) {
		logged = append(logged, fmt.Sprintf(mess, args...))
	}

	prog, err := ParseString("+[-].")
	assert.NoError(t, err)
	var out strings.Builder
	assert.NoError(t, prog.Run(context.Background(), WithOutput(&out), WithLogf(logf)))
	assert.Equal(t, "\x00", out.String())
	assert.Equal(t, []string{
		"exec inc @0",
		"==== @0 1",
		"exec loop @0",
		"  exec dec @0",
		"  ==== @0 0",
		"exec output @0",
		">>>> 0 <NUL>",
		"#### halt",
	}, logged)
}

func TestVM_invalidNode(t *testing.T) {
	for _, tc := range []struct {
		name string
		code Seq
		want error
	}{
		{"zero op", Seq{{}}, opError(0)},
		{"unknown op", Seq{{Op: opMax}}, opError(opMax)},
		{"nested unknown op", Seq{{Op: OpInc}, {Op: OpLoop, Body: Seq{{Op: 42}}}}, opError(42)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := New().Run(context.Background(), tc.code)
			assert.True(t, errors.Is(err, tc.want), "expected %v, got %+v", tc.want, err)
		})
	}
}

func TestVM_tee(t *testing.T) {
	var out, tee strings.Builder
	prog, err := ParseString(",+.")
	assert.NoError(t, err)
	assert.NoError(t, prog.Run(context.Background(),
		WithInput(strings.NewReader("A")),
		WithOutput(&out),
		WithTee(&tee)))
	assert.Equal(t, "B", out.String())
	assert.Equal(t, "B", tee.String())
}
