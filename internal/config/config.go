// Package config handles bf.toml settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"

	"github.com/jcorbin/gobf/internal/runeio"
)

// FileName is the name of the configuration file searched for by Find.
const FileName = "bf.toml"

// Config represents a bf.toml file.
type Config struct {
	Tape    Tape    `toml:"tape"`
	Input   Input   `toml:"input"`
	Parse   Parse   `toml:"parse"`
	Compile Compile `toml:"compile"`

	// Path is the file the config was loaded from, if any.
	Path string `toml:"-"`
}

// Tape configures the interpreter memory.
type Tape struct {
	Size int `toml:"size"`
}

// Input configures the interpreter input.
type Input struct {
	// EOF is a rune literal, like "<NL>" or "'\n'" or "^@", stored into a cell
	// when input is exhausted.
	EOF string `toml:"eof"`
}

// Parse configures the source parser.
type Parse struct {
	// Comment is the line comment marker; empty disables line comments.
	Comment string `toml:"comment"`
}

// Compile configures optimization and C generation.
type Compile struct {
	Optimize bool     `toml:"optimize"`
	Indent   string   `toml:"indent"`
	Output   string   `toml:"output"`
	CC       []string `toml:"cc"`
}

// Default returns the settings used when no bf.toml is found.
func Default() Config {
	return Config{
		Tape:  Tape{Size: 32768},
		Input: Input{EOF: "<NL>"},
		Parse: Parse{Comment: ";"},
		Compile: Compile{
			Indent: "  ",
			Output: "out.c",
			CC:     []string{"cc", "-O2"},
		},
	}
}

// Load parses the given bf.toml file; settings it leaves out keep their
// Default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("cannot read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse error in %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, cfg.Validate()
}

// Find walks up from startDir to find a bf.toml file, then loads it.
// Returns Default settings if none is found.
func Find(startDir string) (Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return Default(), err
	}
	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Default(), nil
		}
		dir = parent
	}
}

// Validate checks setting values.
func (cfg Config) Validate() error {
	if cfg.Tape.Size <= 0 {
		return fmt.Errorf("%v: tape size must be positive, got %v", cfg.where(), cfg.Tape.Size)
	}
	if _, err := cfg.EOFByte(); err != nil {
		return err
	}
	if _, err := cfg.CommentRune(); err != nil {
		return err
	}
	if len(cfg.Compile.CC) == 0 {
		return fmt.Errorf("%v: compile.cc must name a C compiler", cfg.where())
	}
	return nil
}

// EOFByte returns the byte stored when input is exhausted.
func (cfg Config) EOFByte() (byte, error) {
	r, err := runeio.UnquoteRune(cfg.Input.EOF)
	if err != nil {
		return 0, fmt.Errorf("%v: invalid input.eof %q: %w", cfg.where(), cfg.Input.EOF, err)
	}
	if r > 0xff {
		return 0, fmt.Errorf("%v: input.eof %q does not fit in a byte", cfg.where(), cfg.Input.EOF)
	}
	return byte(r), nil
}

var (
	errCommentRune    = errors.New("must be a single character")
	errCommentCommand = errors.New("must not be a command character")
)

// commandChars are the Brainfuck commands; they always parse as commands, so
// none of them can introduce a comment.
const commandChars = "+-<>.,[]"

// CommentRune returns the line comment marker, or 0 if comments are disabled.
func (cfg Config) CommentRune() (rune, error) {
	s := cfg.Parse.Comment
	if s == "" {
		return 0, nil
	}
	r, n := utf8.DecodeRuneInString(s)
	if n != len(s) || r == utf8.RuneError {
		return 0, fmt.Errorf("%v: invalid parse.comment %q: %w", cfg.where(), s, errCommentRune)
	}
	if strings.ContainsRune(commandChars, r) {
		return 0, fmt.Errorf("%v: invalid parse.comment %q: %w", cfg.where(), s, errCommentCommand)
	}
	return r, nil
}

func (cfg Config) where() string {
	if cfg.Path != "" {
		return cfg.Path
	}
	return "config"
}
