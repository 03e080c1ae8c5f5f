package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jcorbin/gobf/internal/flushio"
)

type ioCore struct {
	logging
	in  io.ByteReader
	out flushio.WriteFlusher
}

// halt stops the VM by panicking a haltError, after flushing output. A nil
// err means a normal halt.
func (ioc *ioCore) halt(err error) {
	// ignore any panics while trying to flush output
	func() {
		defer func() { recover() }()
		if ioc.out != nil {
			if ferr := ioc.out.Flush(); err == nil {
				err = ferr
			}
		}
	}()

	// ignore any panics while logging
	func() {
		defer func() { recover() }()
		if err != nil {
			ioc.logf("#", "halt error: %v", err)
		} else {
			ioc.logf("#", "halt")
		}
	}()

	panic(haltError{err})
}

func (ioc *ioCore) haltif(err error) {
	if err != nil {
		ioc.halt(err)
	}
}

type haltError struct{ error }

func (err haltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("halted: %v", err.error)
	}
	return "halted"
}
func (err haltError) Unwrap() error { return err.error }

type logging struct {
	logfn func(mess string, args ...interface{})

	markWidth int
}

// withLogPrefix indents all log lines until the returned function is called.
func (log *logging) withLogPrefix(prefix string) func() {
	logfn := log.logfn
	log.logfn = func(mess string, args ...interface{}) {
		logfn(prefix+mess, args...)
	}
	return func() {
		log.logfn = logfn
	}
}

// logf logs "mark message", padding mark to the widest one seen so far by
// repeating its first rune.
func (log *logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if n := log.markWidth - len(mark); n > 0 {
		for _, r := range mark {
			mark = strings.Repeat(string(r), n) + mark
			break
		}
	} else if n < 0 {
		log.markWidth = len(mark)
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}
