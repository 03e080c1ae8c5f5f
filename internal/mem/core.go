// Package mem provides a lazily allocated byte memory with an optional
// capacity limit.
package mem

import "fmt"

// LimitError indicates that a memory operation, like load or store, addressed
// a cell outside of the memory's capacity.
type LimitError struct {
	Addr  uint
	Limit uint
	Op    string
}

func (lim LimitError) Error() string {
	return fmt.Sprintf("%v @%v exceeds memory limit %v", lim.Op, lim.Addr, lim.Limit)
}

// checkAddr checks a single cell address against limit; zero means unlimited.
func checkAddr(limit, addr uint, op string) error {
	if limit != 0 && addr >= limit {
		return LimitError{addr, limit, op}
	}
	return nil
}

// checkRange checks the [addr, end) range against limit, reporting the first
// address past it.
func checkRange(limit, addr, end uint, op string) error {
	if limit != 0 && end > limit {
		if addr < limit {
			addr = limit
		}
		return LimitError{addr, limit, op}
	}
	return nil
}
