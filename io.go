package main

import (
	"bufio"
	"io"
)

func newByteReader(r io.Reader) io.ByteReader {
	if br, is := r.(io.ByteReader); is {
		return br
	}
	return bufio.NewReader(r)
}

func writeByte(w io.Writer, b byte) (err error) {
	if bw, ok := w.(io.ByteWriter); ok {
		err = bw.WriteByte(b)
	} else {
		_, err = w.Write([]byte{b})
	}
	return err
}
