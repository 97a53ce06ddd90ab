// Package runlog implements the append-only failure log shared by discovery
// and the read paths.
package runlog

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/mcdonaldj/textgather/internal/ports"
)

// timeFormat matches the log lines written by earlier releases, so existing
// consumers of the log file keep parsing.
const timeFormat = "2006-01-02 15:04:05,000"

// Logger writes one line per failure record to an append-only sink and
// mirrors the bare message to an error stream. Safe for concurrent use;
// each record is a single atomic line.
type Logger struct {
	mu     sync.Mutex
	sink   io.Writer
	errOut io.Writer
	closer io.Closer
	now    func() time.Time
}

// New creates a Logger writing records to sink and mirroring them to errOut.
// Either writer may be nil to disable that side.
func New(sink, errOut io.Writer) *Logger {
	return &Logger{sink: sink, errOut: errOut, now: time.Now}
}

// Open opens the log file at path in append mode, creating it if needed,
// and returns a Logger over it. Close releases the file.
func Open(fs ports.FileSystem, path string, errOut io.Writer) (*Logger, error) {
	w, err := fs.OpenAppend(path)
	if err != nil {
		return nil, fmt.Errorf("opening log %s: %w", path, err)
	}
	l := New(w, errOut)
	l.closer = w
	return l, nil
}

// Warningf records a recoverable failure: a missing root or an undecodable file.
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.write("WARNING", fmt.Sprintf(format, args...))
}

// Errorf records an unexpected read or write failure.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.write("ERROR", fmt.Sprintf(format, args...))
}

func (l *Logger) write(severity, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.sink != nil {
		fmt.Fprintf(l.sink, "%s - %s - %s\n", l.now().Format(timeFormat), severity, msg)
	}
	if l.errOut != nil {
		fmt.Fprintln(l.errOut, msg)
	}
}

// Close closes the underlying log file, if the Logger owns one.
func (l *Logger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}
