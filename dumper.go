package main

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// tapeDumper writes a human readable dump of a VM's tape: rows of cells in
// hex, followed by their printable ASCII form. Rows that are all zero and do
// not hold the cursor are skipped.
type tapeDumper struct {
	vm  *VM
	out io.Writer

	rowWidth  int
	addrWidth int
}

func (dump tapeDumper) dump() {
	fmt.Fprintf(dump.out, "# VM Dump\n")
	fmt.Fprintf(dump.out, "  cursor: %v\n", dump.vm.cursor)
	fmt.Fprintf(dump.out, "  tape: %v cells\n", dump.vm.tapeSize)
	dump.dumpTape()
}

func (dump tapeDumper) dumpTape() {
	if dump.rowWidth == 0 {
		dump.rowWidth = 16
	}

	end := int(dump.vm.tape.Size())
	if end > dump.vm.tapeSize {
		end = dump.vm.tapeSize
	}
	if c := dump.vm.cursor + 1; c > end && c <= dump.vm.tapeSize {
		end = c
	}
	if dump.addrWidth == 0 {
		dump.addrWidth = len(strconv.Itoa(end))
	}

	var buf bytes.Buffer
	row := make([]byte, dump.rowWidth)
	for addr := 0; addr < end; addr += dump.rowWidth {
		n := dump.rowWidth
		if addr+n > dump.vm.tapeSize {
			n = dump.vm.tapeSize - addr
		}
		cells := row[:n]
		dump.vm.tape.LoadInto(uint(addr), cells)

		hasCursor := addr <= dump.vm.cursor && dump.vm.cursor < addr+n
		if !hasCursor && allZero(cells) {
			continue
		}

		fmt.Fprintf(&buf, "  @%*v", dump.addrWidth, addr)
		for i, b := range cells {
			if addr+i == dump.vm.cursor {
				fmt.Fprintf(&buf, " [%02x]", b)
			} else {
				fmt.Fprintf(&buf, " %02x", b)
			}
		}
		buf.WriteString("  ")
		for _, b := range cells {
			if 0x20 <= b && b < 0x7f {
				buf.WriteByte(b)
			} else {
				buf.WriteByte('.')
			}
		}
		buf.WriteByte('\n')
		buf.WriteTo(dump.out)
	}
}

func allZero(cells []byte) bool {
	for _, b := range cells {
		if b != 0 {
			return false
		}
	}
	return true
}
