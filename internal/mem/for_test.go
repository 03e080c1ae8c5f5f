package mem

// Pages exposes the page index for testing; unallocated pages are nil.
func (m *Bytes) Pages() [][]byte { return m.pages }
