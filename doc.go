/* Command bf interprets Brainfuck programs, and translates them to C.

Brainfuck has eight instructions, operating on a tape of byte cells and a
cursor into it:

	+  increment the cell under the cursor (255 wraps to 0)
	-  decrement the cell under the cursor (0 wraps to 255)
	>  move the cursor right
	<  move the cursor left
	.  write the cell under the cursor to output
	,  read a byte of input into the cell under the cursor
	[  skip past the matching ] if the cell under the cursor is zero
	]  jump back to the matching [ unless the cell under the cursor is zero

Every other character is a comment. Additionally, a line comment marker
(";" by default) ignores the rest of its line, so that instruction characters
may be used in prose.

Source is parsed into a tree of nodes, where each loop node owns its body;
unmatched brackets are reported with their line and column. The tree may be
optimized, folding runs of +- into a single add node and runs of <> into a
single move node. Optimization never changes what a program does, it only
makes it run in fewer steps.

The tape has a fixed number of cells (32768 by default). Moving the cursor
off the tape is allowed, but accessing a cell there halts the program with an
out of bounds error. Once input is exhausted, reading stores a configurable
byte (newline by default).

Usage:

	bf run [-O] [-trace] [-dump] [-timeout d] [-tape n] <file>
	bf compile [-O] [-tape n] [-o out.c] [-emit c|tree] [-exec] <file>
	bf check [-O] [-tape n] [-timeout d] <file>

The compile command writes a C program that behaves like the interpreter,
or, with -emit tree, an encoded (CBOR) program tree that run, compile and
check all accept in place of source.

Settings are read from a bf.toml file in the current directory, or the
nearest parent directory that has one:

	[tape]
	size = 32768

	[input]
	eof = "<NL>"    # or "^@", "'x'", ...

	[parse]
	comment = ";"   # "" to disable line comments

	[compile]
	optimize = false
	indent = "  "
	output = "out.c"
	cc = ["cc", "-O2"]

Flags given on the command line override the file.
*/
package main
