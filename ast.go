package main

import (
	"strconv"
	"strings"
)

// Op names the kind of a Node. The set of kinds is closed: every switch over
// Op in the interpreter and code generator covers all of them, and treats
// anything else as an invalid tree.
type Op uint8

// Instruction kinds, one per source symbol.
const (
	OpInc    Op = iota + 1 // +  increment the current cell
	OpDec                  // -  decrement the current cell
	OpRight                // >  move the cursor right
	OpLeft                 // <  move the cursor left
	OpOutput               // .  output the current cell
	OpInput                // ,  input into the current cell
	OpLoop                 // [] repeat Body while the current cell is nonzero

	// Adjustments only appear in optimized trees.
	OpAdd  // add a signed Amount to the current cell
	OpMove // add a signed Amount to the cursor

	opMax
)

var opNames = [opMax]string{
	OpInc:    "inc",
	OpDec:    "dec",
	OpRight:  "right",
	OpLeft:   "left",
	OpOutput: "output",
	OpInput:  "input",
	OpLoop:   "loop",
	OpAdd:    "add",
	OpMove:   "move",
}

// opSymbols maps the source symbols of plain instructions to their kind.
var opSymbols = map[rune]Op{
	'+': OpInc,
	'-': OpDec,
	'>': OpRight,
	'<': OpLeft,
	'.': OpOutput,
	',': OpInput,
}

func (op Op) String() string {
	if op > 0 && op < opMax {
		return opNames[op]
	}
	return "op(" + strconv.Itoa(int(op)) + ")"
}

// Node is one element of a program tree: a plain instruction, a loop around
// a body sequence, or an adjustment by a signed amount.
type Node struct {
	Op     Op  `cbor:"1,keyasint"`
	Amount int `cbor:"2,keyasint,omitempty"`
	Body   Seq `cbor:"3,keyasint,omitempty"`
}

// Seq is an ordered sequence of nodes; a program's root and every loop body
// is a Seq.
type Seq []Node

// String renders a compact form of the node, like "+", "+3", "<2", or "[-1]".
func (node Node) String() string {
	var sb strings.Builder
	node.writeTo(&sb)
	return sb.String()
}

// String renders the sequence's nodes separated by spaces, e.g. "+2 [-1 >1]".
func (seq Seq) String() string {
	var sb strings.Builder
	seq.writeTo(&sb)
	return sb.String()
}

func (seq Seq) writeTo(sb *strings.Builder) {
	for i, node := range seq {
		if i > 0 {
			sb.WriteByte(' ')
		}
		node.writeTo(sb)
	}
}

func (node Node) writeTo(sb *strings.Builder) {
	switch node.Op {
	case OpInc:
		sb.WriteByte('+')
	case OpDec:
		sb.WriteByte('-')
	case OpRight:
		sb.WriteByte('>')
	case OpLeft:
		sb.WriteByte('<')
	case OpOutput:
		sb.WriteByte('.')
	case OpInput:
		sb.WriteByte(',')
	case OpLoop:
		sb.WriteByte('[')
		node.Body.writeTo(sb)
		sb.WriteByte(']')
	case OpAdd:
		writeAmount(sb, node.Amount, '+', '-')
	case OpMove:
		writeAmount(sb, node.Amount, '>', '<')
	default:
		sb.WriteString(node.Op.String())
	}
}

func writeAmount(sb *strings.Builder, n int, pos, neg byte) {
	if n < 0 {
		sb.WriteByte(neg)
		n = -n
	} else {
		sb.WriteByte(pos)
	}
	sb.WriteString(strconv.Itoa(n))
}

// Count returns the total number of nodes in the sequence, including those
// nested inside loops.
func (seq Seq) Count() (n int) {
	for _, node := range seq {
		n++
		if node.Op == OpLoop {
			n += node.Body.Count()
		}
	}
	return n
}

// Uses returns true if any node in the sequence, at any depth, has the given
// kind.
func (seq Seq) Uses(op Op) bool {
	for _, node := range seq {
		if node.Op == op {
			return true
		}
		if node.Op == OpLoop && node.Body.Uses(op) {
			return true
		}
	}
	return false
}

// validate checks that every node has a known kind and that only loops have
// bodies.
func (seq Seq) validate() error {
	for _, node := range seq {
		if node.Op == 0 || node.Op >= opMax {
			return opError(node.Op)
		}
		if node.Op == OpLoop {
			if err := node.Body.validate(); err != nil {
				return err
			}
		} else if len(node.Body) > 0 {
			return bodyError(node.Op)
		}
	}
	return nil
}
