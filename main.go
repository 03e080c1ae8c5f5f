package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jcorbin/gobf/internal/logio"
	"github.com/jcorbin/gobf/internal/panicerr"
)

const usage = `bf - a Brainfuck interpreter and C compiler

Usage:
    bf <command> [flags] <file>

Commands:
    run <file>      Interpret a Brainfuck program
    compile <file>  Translate a Brainfuck program to C (or an encoded tree)
    check <file>    Run interpreted and compiled C side by side, comparing output
    help            Show this help message

<file> may be Brainfuck source or a tree written by "bf compile -emit tree".

Use "bf <command> -h" for more information about a command.
`

func main() {
	var log logio.Logger
	log.SetOutput(os.Stderr)

	c := cli{
		log:    &log,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	if err := c.main(context.Background(), os.Args[1:]); err != nil {
		if panicerr.IsPanic(err) {
			log.Errorf("%+v", err)
		} else {
			log.ErrorIf(err)
		}
	}
	os.Exit(log.ExitCode())
}

var errUsage = errors.New("missing command")

func (c cli) main(ctx context.Context, args []string) error {
	if len(args) == 0 {
		io.WriteString(c.stderr, usage)
		return errUsage
	}
	cmd, args := args[0], args[1:]
	var err error
	switch cmd {
	case "run":
		err = c.run(ctx, args)
	case "compile":
		err = c.compile(ctx, args)
	case "check":
		err = c.check(ctx, args)
	case "help", "-h", "-help", "--help":
		io.WriteString(c.stdout, usage)
		return nil
	default:
		io.WriteString(c.stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return err
}
