package trace

import (
	"fmt"
	"os"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// FileLogger appends trace events to a file. Events from several runs may
// share one file; each parse has its own session ID.
// It is safe for concurrent use.
type FileLogger struct {
	path string

	mu     sync.Mutex
	file   *os.File // nil once closed
	enc    *cbor.Encoder
	events int
	err    error
}

// NewFileLogger opens path for appending, creating it if needed.
func NewFileLogger(path string) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace file: %w", err)
	}
	return &FileLogger{path: path, file: f, enc: NewEncoder(f)}, nil
}

// Log appends event to the file. Write errors are kept for Close and
// never reach the parser. Events logged after Close are dropped.
func (l *FileLogger) Log(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return
	}
	if err := l.enc.Encode(event); err != nil {
		if l.err == nil {
			l.err = err
		}
		return
	}
	l.events++
}

// Events returns the number of events written.
func (l *FileLogger) Events() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.events
}

// Path returns the trace file path.
func (l *FileLogger) Path() string {
	return l.path
}

// Close closes the file and returns the first write error, if any.
// Further calls return nil.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	if l.err != nil {
		return fmt.Errorf("failed to write trace file %s: %w", l.path, l.err)
	}
	return err
}

var _ Logger = (*FileLogger)(nil)
