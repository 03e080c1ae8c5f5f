package main

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Encoded programs are a CBOR self-described (tag 55799) map holding a format
// version and the program tree, encoded canonically so that equal trees
// encode to equal bytes.
const (
	selfDescribeTag      = 55799
	encodedProgramFormat = 1
)

var selfDescribePrefix = []byte{0xd9, 0xd9, 0xf7}

// Decoder limits, the largest the cbor library allows. Each loop costs two
// nesting levels; each instruction in a sequence is an array element.
const (
	maxEncodedLevels   = 65535
	maxEncodedElements = 2147483647
)

var (
	progEncMode cbor.EncMode
	progDecMode cbor.DecMode
)

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("cbor: failed to create encoding mode: %v", err))
	}
	progEncMode = em

	dm, err := cbor.DecOptions{
		MaxNestedLevels:  maxEncodedLevels,
		MaxArrayElements: maxEncodedElements,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("cbor: failed to create decoding mode: %v", err))
	}
	progDecMode = dm
}

type encodedProgram struct {
	Format int `cbor:"1,keyasint"`
	Code   Seq `cbor:"2,keyasint"`
}

var (
	errNotEncodedProgram = errors.New("not an encoded program")
	errProgramTooDeep    = errors.New("program nested too deeply to encode")
)

// EncodeProgram serializes the program tree, optimized or not.
// Trees too deep for DecodeProgram to read back are refused.
func EncodeProgram(prog *Program) ([]byte, error) {
	if levels := encodedLevels(prog.Code); levels > maxEncodedLevels {
		return nil, fmt.Errorf("%w: %v levels, max %v", errProgramTooDeep, levels, maxEncodedLevels)
	}
	return progEncMode.Marshal(cbor.Tag{
		Number:  selfDescribeTag,
		Content: encodedProgram{encodedProgramFormat, prog.Code},
	})
}

// encodedLevels counts the CBOR nesting of an encoded program: the tag and
// outer map, then an array per sequence and a map per node within it.
func encodedLevels(code Seq) int {
	return 2 + seqLevels(code)
}

func seqLevels(seq Seq) int {
	deepest := 0
	for _, node := range seq {
		levels := 1
		if len(node.Body) > 0 {
			levels += seqLevels(node.Body)
		}
		if levels > deepest {
			deepest = levels
		}
	}
	return 1 + deepest
}

// IsEncodedProgram returns true if data starts like an EncodeProgram result.
// Source text in UTF-8 never does: 0xd9 cannot follow a 0xd9 lead byte.
func IsEncodedProgram(data []byte) bool {
	return bytes.HasPrefix(data, selfDescribePrefix)
}

// DecodeProgram deserializes an EncodeProgram result, checking that the tree
// is well formed.
func DecodeProgram(data []byte) (*Program, error) {
	if !IsEncodedProgram(data) {
		return nil, errNotEncodedProgram
	}

	// the self-describe tag is stripped by the decoder
	var enc encodedProgram
	if err := progDecMode.Unmarshal(data, &enc); err != nil {
		return nil, fmt.Errorf("failed to decode program: %w", err)
	}
	if enc.Format != encodedProgramFormat {
		return nil, fmt.Errorf("unsupported program format %v", enc.Format)
	}
	if err := enc.Code.validate(); err != nil {
		return nil, fmt.Errorf("invalid program: %w", err)
	}
	return &Program{Code: enc.Code}, nil
}
