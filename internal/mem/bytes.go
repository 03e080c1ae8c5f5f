package mem

// DefaultBytesPageSize provides a default for Bytes.PageSize.
const DefaultBytesPageSize = 4096

// Bytes implements a paged byte memory, suitable for a large tape that
// programs only ever touch a small part of. Pages are allocated on first
// store; cells in unallocated pages read as 0.
type Bytes struct {
	// PageSize specifies the length of every page; it must not change once
	// anything has been stored.
	PageSize uint

	// Limit specifies the capacity of the memory: any load or store at or past
	// Limit results in a LimitError. Zero means unlimited.
	Limit uint

	// pages[i] holds cells [i*PageSize, (i+1)*PageSize), or is nil if none of
	// them has been stored yet.
	pages [][]byte
}

// Size returns an address one position higher than the last position in the
// last page allocated so far.
func (m *Bytes) Size() uint {
	return uint(len(m.pages)) * m.PageSize
}

// Load returns a single value from the given address.
func (m *Bytes) Load(addr uint) (byte, error) {
	if err := checkAddr(m.Limit, addr, "load"); err != nil {
		return 0, err
	}
	if page, off := m.page(addr, false); page != nil {
		return page[off], nil
	}
	return 0, nil
}

// LoadInto reads len(buf) bytes from memory starting at addr, zeroing buf
// where unallocated pages are encountered. No partial load is done when the
// range exceeds Limit.
func (m *Bytes) LoadInto(addr uint, buf []byte) error {
	if err := checkRange(m.Limit, addr, addr+uint(len(buf)), "load"); err != nil {
		return err
	}
	for len(buf) > 0 {
		page, off := m.page(addr, false)
		n := min(uint(len(buf)), m.PageSize-off)
		if page == nil {
			clear(buf[:n])
		} else {
			copy(buf[:n], page[off:])
		}
		buf = buf[n:]
		addr += n
	}
	return nil
}

// Stor stores values at addr, allocating pages as necessary. No partial store
// is done when the range exceeds Limit.
func (m *Bytes) Stor(addr uint, values ...byte) error {
	if err := checkRange(m.Limit, addr, addr+uint(len(values)), "stor"); err != nil {
		return err
	}
	for len(values) > 0 {
		page, off := m.page(addr, true)
		n := copy(page[off:], values)
		values = values[n:]
		addr += uint(n)
	}
	return nil
}

// Add adds delta to the byte at addr, wrapping modulo 256, and returns the
// new value. Adding a multiple of 256 allocates nothing.
func (m *Bytes) Add(addr uint, delta int) (byte, error) {
	if err := checkAddr(m.Limit, addr, "add"); err != nil {
		return 0, err
	}
	if delta%256 == 0 {
		return m.Load(addr)
	}
	page, off := m.page(addr, true)
	page[off] += byte(delta)
	return page[off], nil
}

// page returns the page holding addr, and addr's offset within it. The page
// is nil if it has not been allocated, unless alloc is true.
func (m *Bytes) page(addr uint, alloc bool) ([]byte, uint) {
	if m.PageSize == 0 {
		m.PageSize = DefaultBytesPageSize
	}
	i, off := addr/m.PageSize, addr%m.PageSize
	if i >= uint(len(m.pages)) {
		if !alloc {
			return nil, off
		}
		m.pages = append(m.pages, make([][]byte, i+1-uint(len(m.pages)))...)
	}
	if alloc && m.pages[i] == nil {
		m.pages[i] = make([]byte, m.PageSize)
	}
	return m.pages[i], off
}
