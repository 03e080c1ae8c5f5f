package main

import "time"

// @generated from bf_test.go

//go:generate go run scripts/gen_expects.go -- bf_test.go bf_expects_test.go

func withBFSource(source string) func(bfTestCase) bfTestCase {
	return func(bft bfTestCase) bfTestCase {
		return bft.withSource(source)
	}
}

func withBFParseOptions(opts ...ParseOption) func(bfTestCase) bfTestCase {
	return func(bft bfTestCase) bfTestCase {
		return bft.withParseOptions(opts...)
	}
}

func withBFOptions(opts ...VMOption) func(bfTestCase) bfTestCase {
	return func(bft bfTestCase) bfTestCase {
		return bft.withOptions(opts...)
	}
}

func withBFInput(input string) func(bfTestCase) bfTestCase {
	return func(bft bfTestCase) bfTestCase {
		return bft.withInput(input)
	}
}

func withBFTapeSize(size int) func(bfTestCase) bfTestCase {
	return func(bft bfTestCase) bfTestCase {
		return bft.withTapeSize(size)
	}
}

func withBFEOF(b byte) func(bfTestCase) bfTestCase {
	return func(bft bfTestCase) bfTestCase {
		return bft.withEOF(b)
	}
}

func withBFCells(addr int, values ...byte) func(bfTestCase) bfTestCase {
	return func(bft bfTestCase) bfTestCase {
		return bft.withCells(addr, values...)
	}
}

func withBFTimeout(timeout time.Duration) func(bfTestCase) bfTestCase {
	return func(bft bfTestCase) bfTestCase {
		return bft.withTimeout(timeout)
	}
}

func expectBFError(err error) func(bfTestCase) bfTestCase {
	return func(bft bfTestCase) bfTestCase {
		return bft.expectError(err)
	}
}

func expectBFParseError(err error) func(bfTestCase) bfTestCase {
	return func(bft bfTestCase) bfTestCase {
		return bft.expectParseError(err)
	}
}

func expectBFOutput(output string) func(bfTestCase) bfTestCase {
	return func(bft bfTestCase) bfTestCase {
		return bft.expectOutput(output)
	}
}

func expectBFCursor(cursor int) func(bfTestCase) bfTestCase {
	return func(bft bfTestCase) bfTestCase {
		return bft.expectCursor(cursor)
	}
}

func expectBFCells(addr int, values ...byte) func(bfTestCase) bfTestCase {
	return func(bft bfTestCase) bfTestCase {
		return bft.expectCells(addr, values...)
	}
}

func expectBFDump(dump string) func(bfTestCase) bfTestCase {
	return func(bft bfTestCase) bfTestCase {
		return bft.expectDump(dump)
	}
}
