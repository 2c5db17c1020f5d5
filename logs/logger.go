// Package logs writes the editor's event log as JSON lines.
package logs

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Logger writes one JSON object per event, tagged with a timestamp and the
// session id. A nil or disabled Logger drops everything.
type Logger struct {
	mu      sync.Mutex
	w       *bufio.Writer
	c       io.Closer
	session string
}

// NewFromEnv enables logging when GAPEDIT_LOG is set to a truthy value or
// GAPEDIT_LOG_FILE names a file. Without a file it appends to ./gapedit.log.
// A file that cannot be opened leaves logging off.
func NewFromEnv() *Logger {
	path := os.Getenv("GAPEDIT_LOG_FILE")
	enabled := path != ""
	if v := os.Getenv("GAPEDIT_LOG"); v != "" && v != "0" && v != "false" {
		enabled = true
	}
	if !enabled {
		return &Logger{}
	}
	if path == "" {
		path = filepath.Join(".", "gapedit.log")
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return &Logger{}
	}
	return New(f)
}

// New logs to w. If w is an io.Closer, Close closes it.
func New(w io.Writer) *Logger {
	l := &Logger{w: bufio.NewWriter(w), session: uuid.NewString()}
	if c, ok := w.(io.Closer); ok {
		l.c = c
	}
	return l
}

// Enabled reports whether events are written anywhere.
func (l *Logger) Enabled() bool {
	return l != nil && l.w != nil
}

// Session returns the id stamped on every record.
func (l *Logger) Session() string {
	if l == nil {
		return ""
	}
	return l.session
}

// Close flushes and closes the underlying writer.
func (l *Logger) Close() {
	if !l.Enabled() {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.w.Flush()
	if l.c != nil {
		_ = l.c.Close()
	}
	l.w = nil
}

// Event writes a record with the event name and fields.
// Common fields: key, offset, len, free, file, error.
func (l *Logger) Event(event string, fields map[string]any) {
	if !l.Enabled() {
		return
	}
	rec := map[string]any{
		"time":    time.Now().Format(time.RFC3339Nano),
		"session": l.session,
		"event":   event,
	}
	for k, v := range fields {
		rec[k] = v
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.w == nil {
		return
	}
	_ = json.NewEncoder(l.w).Encode(rec)
	_ = l.w.Flush()
}
