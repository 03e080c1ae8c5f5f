package logio

import (
	"bytes"
	"sync"
)

// Writer is an io.WriteCloser that passes each line written to Logf, without
// its trailing newline. Any final partial line is passed on Flush or Close.
type Writer struct {
	Logf func(mess string, args ...interface{})

	mu      sync.Mutex
	partial []byte
}

// Writer returns a Writer that logs lines at the given level.
func (log *Logger) Writer(level string) *Writer {
	return &Writer{Logf: log.Leveledf(level)}
}

func (lw *Writer) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	n := len(p)
	for {
		i := bytes.IndexByte(p, '\n')
		if i < 0 {
			break
		}
		line := p[:i]
		if len(lw.partial) > 0 {
			line = append(lw.partial, line...)
			lw.partial = lw.partial[:0]
		}
		lw.Logf("%s", line)
		p = p[i+1:]
	}
	lw.partial = append(lw.partial, p...)
	return n, nil
}

// Flush passes any partial line to Logf.
func (lw *Writer) Flush() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	if len(lw.partial) > 0 {
		lw.Logf("%s", lw.partial)
		lw.partial = lw.partial[:0]
	}
	return nil
}

// Close calls Flush.
func (lw *Writer) Close() error {
	return lw.Flush()
}
