package editor

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// SessionData is what is remembered about a file between runs.
type SessionData struct {
	Path    string `json:"path"`
	Offset  int    `json:"offset"`
	SavedAt string `json:"saved_at"`
}

func sessionDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "gapedit", "sessions")
}

func sessionPath(file string) string {
	hash := sha256.Sum256([]byte(file))
	return filepath.Join(sessionDir(), fmt.Sprintf("%x.json", hash[:8]))
}

// SaveSession records the cursor offset of the open file. Unnamed buffers
// have nothing to key the session on.
func (e *Editor) SaveSession() {
	if e.path == "" {
		return
	}
	path := sessionPath(e.path)
	session := SessionData{
		Path:    e.path,
		Offset:  e.buf.Pos(),
		SavedAt: time.Now().Format(time.RFC3339),
	}
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		e.log.Event("session_failed", map[string]any{"file": e.path, "error": err.Error()})
	}
}

func loadSession(file string) (*SessionData, error) {
	data, err := os.ReadFile(sessionPath(file))
	if err != nil {
		return nil, err
	}
	var session SessionData
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	if session.Path != file {
		return nil, fmt.Errorf("session for %s belongs to %s", file, session.Path)
	}
	return &session, nil
}

// RestoreSession moves the cursor to the remembered offset, clamped to the
// current text.
func (e *Editor) RestoreSession() bool {
	if e.path == "" {
		return false
	}
	session, err := loadSession(e.path)
	if err != nil {
		return false
	}
	offset := max(0, min(session.Offset, e.buf.Len()))
	return e.buf.Seek(offset) == nil
}
