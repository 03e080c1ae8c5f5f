// Package runeio names control runes, and parses rune literals that may use
// those names.
package runeio

import (
	"errors"
	"strconv"
	"strings"
)

// c0Names holds the classic ASCII control character mnemonics.
var c0Names = [32]string{
	"NUL", "SOH", "STX", "ETX", "EOT", "ENQ", "ACK", "BEL",
	"BS", "HT", "NL", "VT", "NP", "CR", "SO", "SI",
	"DLE", "DC1", "DC2", "DC3", "DC4", "NAK", "SYN", "ETB",
	"CAN", "EM", "SUB", "ESC", "FS", "GS", "RS", "US",
}

// ControlWords maps control mnemonic strings like "<NL>" or "<esc>", and
// caret forms like "^J", to runes.
var ControlWords map[string]rune

func init() {
	ControlWords = make(map[string]rune, 3*len(c0Names)+4)
	add := func(name string, r rune) {
		ControlWords["<"+strings.ToUpper(name)+">"] = r
		ControlWords["<"+strings.ToLower(name)+">"] = r
		if caret := CaretForm(r); caret != "" {
			ControlWords[caret] = r
		}
	}
	for i, name := range c0Names {
		add(name, rune(i))
	}
	add("SP", 0x20)
	add("DEL", 0x7f)
}

// ControlName returns the "<NAME>" mnemonic of an ASCII control rune, or ""
// if r is not one.
func ControlName(r rune) string {
	switch {
	case 0 <= r && int(r) < len(c0Names):
		return "<" + c0Names[r] + ">"
	case r == 0x7f:
		return "<DEL>"
	}
	return ""
}

// CaretForm computes the ^-escaped printable form of a C0 control rune, or ""
// if r is not one.
func CaretForm(r rune) string {
	if (0 <= r && r < 0x20) || r == 0x7f {
		return "^" + string(r^0x40)
	}
	return ""
}

var errInvalidRune = errors.New(`rune literal must be "^X" "<NAME>" or 'X'`)

// UnquoteRune extends strconv.UnquoteChar parsing of a single quoted rune
// like 'x' or '\n' with control mnemonics like <NL> and caret forms like ^J.
func UnquoteRune(token string) (rune, error) {
	if r, defined := ControlWords[token]; defined {
		return r, nil
	}

	if len(token) < 3 || token[0] != '\'' || token[len(token)-1] != '\'' {
		return 0, errInvalidRune
	}

	value, _, tail, err := strconv.UnquoteChar(token[1:len(token)-1], '\'')
	if err != nil {
		return 0, err
	}
	if tail != "" {
		return 0, errInvalidRune
	}
	return value, nil
}
