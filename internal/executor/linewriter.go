package executor

import (
	"bytes"
	"strings"
	"sync"
)

// lineWriter splits written bytes into lines and hands each complete line
// to onLine as soon as its newline arrives.
type lineWriter struct {
	mu      sync.Mutex
	pending []byte
	lines   []string
	onLine  func(string)
}

func newLineWriter(onLine func(string)) *lineWriter {
	return &lineWriter{onLine: onLine}
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending = append(w.pending, p...)
	for {
		idx := bytes.IndexByte(w.pending, '\n')
		if idx < 0 {
			break
		}
		line := string(w.pending[:idx])
		w.pending = w.pending[idx+1:]
		w.emit(line)
	}
	return len(p), nil
}

// Flush emits a trailing line that had no newline.
func (w *lineWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.pending) > 0 {
		line := string(w.pending)
		w.pending = nil
		w.emit(line)
	}
}

func (w *lineWriter) emit(line string) {
	line = strings.TrimSuffix(line, "\r")
	w.lines = append(w.lines, line)
	if w.onLine != nil {
		w.onLine(line)
	}
}

// Lines returns a copy of the lines seen so far.
func (w *lineWriter) Lines() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.lines...)
}
