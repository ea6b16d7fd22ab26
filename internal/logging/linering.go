package logging

import (
	"bytes"
	"os"
	"sync"
)

// LineRing keeps the last N complete log lines in memory for crash dumps.
// It implements io.Writer; each slog record arrives as one newline-terminated
// write, but partial writes are buffered until their newline shows up.
type LineRing struct {
	mu      sync.Mutex
	lines   [][]byte
	next    int
	full    bool
	partial []byte
}

// NewLineRing creates a ring holding up to n lines.
func NewLineRing(n int) *LineRing {
	if n <= 0 {
		n = 2000
	}
	return &LineRing{lines: make([][]byte, n)}
}

// Write implements io.Writer.
func (r *LineRing) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := p
	if len(r.partial) > 0 {
		data = append(r.partial, p...)
		r.partial = nil
	}
	for {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			break
		}
		r.push(data[:i+1])
		data = data[i+1:]
	}
	if len(data) > 0 {
		r.partial = append([]byte(nil), data...)
	}
	return len(p), nil
}

func (r *LineRing) push(line []byte) {
	r.lines[r.next] = append([]byte(nil), line...)
	r.next++
	if r.next == len(r.lines) {
		r.next = 0
		r.full = true
	}
}

// Lines returns the stored lines, oldest first.
func (r *LineRing) Lines() [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.full {
		out := make([][]byte, r.next)
		copy(out, r.lines[:r.next])
		return out
	}
	out := make([][]byte, 0, len(r.lines))
	out = append(out, r.lines[r.next:]...)
	out = append(out, r.lines[:r.next]...)
	return out
}

// DumpToFile writes the stored lines to path, oldest first.
func (r *LineRing) DumpToFile(path string) error {
	return os.WriteFile(path, bytes.Join(r.Lines(), nil), 0o644)
}
