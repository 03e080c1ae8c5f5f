// Command gen_expects writes free function wrappers for test case builder
// methods, so that shared expectations can be passed to a builder's apply
// method. For example, given
//
//	func (bft bfTestCase) expectOutput(output string) bfTestCase
//
// it writes
//
//	func expectBFOutput(output string) func(bfTestCase) bfTestCase
//
// Output is piped through goimports.
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"
)

var (
	typeName = flag.String("type", "bfTestCase", "builder type name")
	recvName = flag.String("recv", "bft", "builder receiver name")
	tag      = flag.String("tag", "BF", "infix for wrapper names, as in expectBFOutput")
)

type generator struct {
	inName string
	args   []string
	method *regexp.Regexp
}

func main() {
	flag.Parse()
	args := flag.Args()

	var in io.ReadCloser = os.Stdin
	var out io.WriteCloser = os.Stdout
	gen := generator{inName: "<stdin>", args: args}
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			log.Fatalf("failed to open %v: %v", args[0], err)
		}
		in, gen.inName = f, args[0]
	}
	if len(args) > 1 {
		f, err := os.Create(args[1])
		if err != nil {
			log.Fatalf("failed to create %v: %v", args[1], err)
		}
		out = f
	}
	gen.method = regexp.MustCompile(fmt.Sprintf(
		`func \(%s %s\) (expect|with)(.+?)\((.+?)\) %s`,
		regexp.QuoteMeta(*recvName), regexp.QuoteMeta(*typeName), regexp.QuoteMeta(*typeName)))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pr, pw := io.Pipe()
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		defer out.Close()
		goimports := exec.CommandContext(ctx, "goimports")
		goimports.Stdin = pr
		goimports.Stdout = out
		goimports.Stderr = os.Stderr
		if err := goimports.Run(); err != nil {
			pr.CloseWithError(err)
			return fmt.Errorf("goimports failed: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		defer in.Close()
		err := gen.run(ctx, in, pw)
		pw.CloseWithError(err)
		return err
	})

	if err := eg.Wait(); err != nil {
		log.Fatalln(err)
	}
}

func (gen generator) run(ctx context.Context, in io.Reader, out io.Writer) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "package main\n\n// @generated from %v\n\n", gen.inName)
	if len(gen.args) >= 2 {
		fmt.Fprintf(&buf, "//go:generate go run scripts/gen_expects.go -- %v\n\n", strings.Join(gen.args, " "))
	}

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if match := gen.method.FindSubmatch(sc.Bytes()); len(match) > 0 {
			gen.writeWrapper(&buf, match[1], match[2], match[3])
		}
		if buf.Len() > 0 {
			if _, err := buf.WriteTo(out); err != nil {
				return err
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return sc.Err()
}

func (gen generator) writeWrapper(buf *bytes.Buffer, baseName, whatName, params []byte) {
	typ, recv := *typeName, *recvName
	fmt.Fprintf(buf, "func %s%s%s(%s) func(%s) %s {\n", baseName, *tag, whatName, params, typ, typ)
	fmt.Fprintf(buf, "return func(%s %s) %s {\n", recv, typ, typ)
	fmt.Fprintf(buf, "return %s.%s%s(%s)\n", recv, baseName, whatName, argNames(params))
	buf.WriteString("}\n}\n\n")
}

// argNames returns the arguments that forward a parameter list, e.g.
// "addr, values..." for "addr int, values ...byte". Grouped parameters, like
// "a, b int", are supported.
func argNames(params []byte) []byte {
	var args []byte
	for i, part := range bytes.Split(params, []byte(",")) {
		if i > 0 {
			args = append(args, ", "...)
		}
		fields := bytes.Fields(part)
		if len(fields) == 0 {
			continue
		}
		args = append(args, fields[0]...)
		if len(fields) > 1 && bytes.HasPrefix(fields[1], []byte("...")) {
			args = append(args, "..."...)
		}
	}
	return args
}
