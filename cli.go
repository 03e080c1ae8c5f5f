package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jcorbin/gobf/internal/config"
	"github.com/jcorbin/gobf/internal/logio"
)

// DefaultTreeOutput is where "compile -emit tree" writes when no -o is given.
const DefaultTreeOutput = "out.bfo"

type cli struct {
	log    *logio.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// commonFlags are flags shared by every subcommand. Flags explicitly given on
// the command line override settings loaded from bf.toml.
type commonFlags struct {
	fs         *flag.FlagSet
	configPath string
	optimize   bool
	tapeSize   int
}

func (c cli) flags(name, synopsis, summary string) *commonFlags {
	cf := &commonFlags{fs: flag.NewFlagSet(name, flag.ContinueOnError)}
	cf.fs.SetOutput(c.stderr)
	cf.fs.Usage = func() {
		fmt.Fprintf(c.stderr, "Usage: bf %v %v\n", name, synopsis)
		fmt.Fprintf(c.stderr, "%v\n\nFlags:\n", summary)
		cf.fs.PrintDefaults()
	}
	cf.fs.StringVar(&cf.configPath, "config", "", "load settings from this file instead of searching for "+config.FileName)
	cf.fs.BoolVar(&cf.optimize, "O", false, "fold runs of +- and <> before running or compiling")
	cf.fs.IntVar(&cf.tapeSize, "tape", DefaultTapeSize, "number of tape cells")
	return cf
}

// parse parses args, requiring exactly one file argument, and returns the
// loaded configuration with any explicit flags applied.
func (cf *commonFlags) parse(args []string) (string, config.Config, error) {
	if err := cf.fs.Parse(args); err != nil {
		return "", config.Config{}, err
	}
	if cf.fs.NArg() != 1 {
		cf.fs.Usage()
		return "", config.Config{}, fmt.Errorf("expected exactly one file argument, got %v", cf.fs.NArg())
	}

	var cfg config.Config
	var err error
	if cf.configPath != "" {
		cfg, err = config.Load(cf.configPath)
	} else {
		cfg, err = config.Find(".")
	}
	if err != nil {
		return "", cfg, err
	}

	cf.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "O":
			cfg.Compile.Optimize = cf.optimize
		case "tape":
			cfg.Tape.Size = cf.tapeSize
		}
	})
	return cf.fs.Arg(0), cfg, cfg.Validate()
}

// tapeOptions returns the options that interpreter and generated code must
// agree on.
func tapeOptions(cfg config.Config) []TapeOption {
	eof, _ := cfg.EOFByte()
	return []TapeOption{
		WithTapeSize(cfg.Tape.Size),
		WithEOF(eof),
	}
}

// loadProgram reads either Brainfuck source or an encoded tree from the named
// file, optimizing it if so configured.
func loadProgram(name string, cfg config.Config) (*Program, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}

	var prog *Program
	if IsEncodedProgram(data) {
		prog, err = DecodeProgram(data)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", name, err)
		}
	} else {
		comment, _ := cfg.CommentRune()
		prog, err = Parse(bytes.NewReader(data), WithName(name), WithComment(comment))
		if err != nil {
			return nil, err
		}
	}

	if cfg.Compile.Optimize {
		prog.Optimize()
	}
	return prog, nil
}

func (c cli) run(ctx context.Context, args []string) error {
	cf := c.flags("run", "[flags] <file>", "Interpret a Brainfuck program, reading stdin and writing stdout.")
	trace := cf.fs.Bool("trace", false, "log every executed node")
	dump := cf.fs.Bool("dump", false, "log a dump of the tape after the run")
	timeout := cf.fs.Duration("timeout", 0, "specify a time limit")

	name, cfg, err := cf.parse(args)
	if err != nil {
		return err
	}
	prog, err := loadProgram(name, cfg)
	if err != nil {
		return err
	}

	opts := []VMOption{
		WithInput(c.stdin),
		WithOutput(c.stdout),
	}
	for _, opt := range tapeOptions(cfg) {
		opts = append(opts, opt)
	}
	if *trace {
		opts = append(opts, WithLogf(c.log.Leveledf("TRACE")))
	}
	vm := New(opts...)

	if *timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	err = vm.Run(ctx, prog.Code)
	if *dump {
		lw := c.log.Writer("DUMP")
		tapeDumper{vm: vm, out: lw}.dump()
		lw.Close()
	}
	return err
}

var errExecTree = errors.New("-exec requires -emit c")

func (c cli) compile(ctx context.Context, args []string) error {
	cf := c.flags("compile", "[flags] <file>", "Translate a Brainfuck program to C, or to an encoded tree.")
	output := cf.fs.String("o", "", `output file, "-" for stdout (default from config, or `+DefaultTreeOutput+` for trees)`)
	emit := cf.fs.String("emit", "c", "output form: c or tree")
	execute := cf.fs.Bool("exec", false, "build the C with the configured compiler and run it; C is only written out if -o is given")

	name, cfg, err := cf.parse(args)
	if err != nil {
		return err
	}

	var data []byte
	prog, err := loadProgram(name, cfg)
	if err != nil {
		return err
	}
	switch *emit {
	case "c":
		genOpts := []GenOption{WithIndent(cfg.Compile.Indent)}
		for _, opt := range tapeOptions(cfg) {
			genOpts = append(genOpts, opt)
		}
		data = []byte(prog.GenerateC(genOpts...))
	case "tree":
		if *execute {
			return errExecTree
		}
		if data, err = EncodeProgram(prog); err != nil {
			return err
		}
	default:
		return fmt.Errorf("invalid -emit %q, must be c or tree", *emit)
	}

	out := *output
	if out == "" && !*execute {
		out = cfg.Compile.Output
		if *emit == "tree" {
			out = DefaultTreeOutput
		}
	}
	switch out {
	case "":
	case "-":
		if _, err := c.stdout.Write(data); err != nil {
			return err
		}
	default:
		if err := os.WriteFile(out, data, 0644); err != nil {
			return err
		}
	}

	if *execute {
		return compileAndRun(ctx, cfg.Compile.CC, string(data), c.stdin, c.stdout)
	}
	return nil
}

func (c cli) check(ctx context.Context, args []string) error {
	cf := c.flags("check", "[flags] <file>", "Run a program both interpreted and compiled to C on the same input, failing if their outputs differ.")
	timeout := cf.fs.Duration("timeout", 0, "specify a time limit")

	name, cfg, err := cf.parse(args)
	if err != nil {
		return err
	}
	prog, err := loadProgram(name, cfg)
	if err != nil {
		return err
	}
	input, err := io.ReadAll(c.stdin)
	if err != nil {
		return err
	}

	if *timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	out, err := crossCheck(ctx, prog, cfg.Compile.CC, input, tapeOptions(cfg)...)
	if err != nil {
		return err
	}
	_, err = c.stdout.Write(out)
	return err
}
