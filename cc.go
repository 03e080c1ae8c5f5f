package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

var errNoCompiler = errors.New("no C compiler command given")

// buildC compiles C source into an executable at exe, by piping the source
// into the compiler command cc (e.g. "cc -O2") reading from stdin.
func buildC(ctx context.Context, cc []string, src, exe string) error {
	if len(cc) == 0 {
		return errNoCompiler
	}
	args := append(cc[1:len(cc):len(cc)], "-x", "c", "-o", exe, "-")
	cmd := exec.CommandContext(ctx, cc[0], args...)
	cmd.Stdin = strings.NewReader(src)
	var stderr bytes.Buffer
	cmd.Stdout = &stderr
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%v failed: %w\n%s", cc[0], err, stderr.Bytes())
	}
	return nil
}

// withBuiltC builds C source in a temporary directory, and calls f with the
// path of the resulting executable.
func withBuiltC(ctx context.Context, cc []string, src string, f func(exe string) error) error {
	dir, err := os.MkdirTemp("", "gobf")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	exe := filepath.Join(dir, "prog")
	if err := buildC(ctx, cc, src, exe); err != nil {
		return err
	}
	return f(exe)
}

// compileAndRun builds C source, then runs the resulting executable with the
// given standard streams.
func compileAndRun(ctx context.Context, cc []string, src string, stdin io.Reader, stdout io.Writer) error {
	return withBuiltC(ctx, cc, src, func(exe string) error {
		cmd := exec.CommandContext(ctx, exe)
		cmd.Stdin = stdin
		cmd.Stdout = stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("compiled program failed: %w", err)
		}
		return nil
	})
}

// MismatchError reports differing output between the interpreter and the
// compiled C program.
type MismatchError struct {
	Interpreted []byte
	Compiled    []byte
}

func (err MismatchError) Error() string {
	i := 0
	for i < len(err.Interpreted) && i < len(err.Compiled) && err.Interpreted[i] == err.Compiled[i] {
		i++
	}
	return fmt.Sprintf("output mismatch at byte %v: interpreted %v bytes, compiled %v bytes",
		i, len(err.Interpreted), len(err.Compiled))
}

// crossCheck runs the program both through the interpreter and as compiled C,
// concurrently, feeding each the same input, and returns a MismatchError if
// their outputs differ. Options apply to both the VM and the generated code.
func crossCheck(ctx context.Context, prog *Program, cc []string, input []byte, opts ...TapeOption) ([]byte, error) {
	var interpreted, compiled bytes.Buffer

	vmOpts := []VMOption{WithInput(bytes.NewReader(input)), WithOutput(&interpreted)}
	genOpts := make([]GenOption, 0, len(opts))
	for _, opt := range opts {
		vmOpts = append(vmOpts, opt)
		genOpts = append(genOpts, opt)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return prog.Run(ctx, vmOpts...)
	})
	eg.Go(func() error {
		src := prog.GenerateC(genOpts...)
		return compileAndRun(ctx, cc, src, bytes.NewReader(input), &compiled)
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if !bytes.Equal(interpreted.Bytes(), compiled.Bytes()) {
		return nil, MismatchError{interpreted.Bytes(), compiled.Bytes()}
	}
	return interpreted.Bytes(), nil
}
