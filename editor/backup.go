package editor

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gapedit/buffer"
)

type backupInfo struct {
	OriginalPath string `json:"original_path"`
	LineEnding   string `json:"line_ending"`
	Session      string `json:"session"`
	Timestamp    string `json:"timestamp"`
}

func backupDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "gapedit", "backups")
}

func backupPathForFile(key string) string {
	h := sha256.Sum256([]byte(key))
	name := fmt.Sprintf("%x.bak", h[:8])
	return filepath.Join(backupDir(), name)
}

func backupMetaPath(backupPath string) string {
	return backupPath + ".json"
}

// noteEdit counts a modifying operation and writes a backup every
// BackupEvery edits.
func (e *Editor) noteEdit() {
	e.dirty = true
	e.edits++
	if e.cfg.BackupEvery > 0 && e.edits >= e.cfg.BackupEvery {
		e.edits = 0
		if err := e.saveBackup(); err != nil {
			e.log.Event("backup_failed", map[string]any{"file": e.path, "error": err.Error()})
		}
	}
}

// saveBackup writes the whole text next to a small metadata file. It runs on
// the event loop so the buffer is never read while it changes.
func (e *Editor) saveBackup() error {
	if err := os.MkdirAll(backupDir(), 0755); err != nil {
		return err
	}
	bpath := backupPathForFile(e.backupKey)
	if err := buffer.SaveFile(bpath, e.buf, e.ending); err != nil {
		return err
	}
	meta := backupInfo{
		OriginalPath: e.path,
		LineEnding:   string(e.ending),
		Session:      e.log.Session(),
		Timestamp:    time.Now().Format(time.RFC3339),
	}
	metaData, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	if err := os.WriteFile(backupMetaPath(bpath), metaData, 0644); err != nil {
		return err
	}
	e.log.Event("backup", map[string]any{"file": e.path, "len": e.buf.Len()})
	return nil
}

func (e *Editor) cleanBackup(key string) {
	if key == "" {
		return
	}
	bpath := backupPathForFile(key)
	os.Remove(bpath)
	os.Remove(backupMetaPath(bpath))
}

// recoverBackup replaces the loaded text with the backup of e.path when the
// backup is newer than the file on disk, or the file is gone. The buffer is
// left dirty so the recovered text still has to be saved.
func (e *Editor) recoverBackup() bool {
	if e.path == "" {
		return false
	}
	bpath := backupPathForFile(e.path)
	binfo, err := os.Stat(bpath)
	if err != nil {
		return false
	}
	if finfo, err := os.Stat(e.path); err == nil && !binfo.ModTime().After(finfo.ModTime()) {
		return false
	}

	ending := e.ending
	if data, err := os.ReadFile(backupMetaPath(bpath)); err == nil {
		var meta backupInfo
		if json.Unmarshal(data, &meta) == nil && meta.OriginalPath == e.path {
			ending, _ = buffer.ParseLineEnding(meta.LineEnding, e.ending)
		}
	}

	// The backup may hold a nearly full buffer, so no headroom is kept.
	if _, err := buffer.LoadFile(bpath, e.buf, buffer.LoadOptions{TabWidth: e.tabWidth}); err != nil {
		e.log.Event("recover_failed", map[string]any{"file": e.path, "error": err.Error()})
		// Fall back to the file itself.
		if _, err := buffer.LoadFile(e.path, e.buf, e.loadOptions()); err != nil {
			e.buf.Reset()
		}
		return false
	}
	e.ending = ending
	e.dirty = true
	e.log.Event("recover", map[string]any{"file": e.path, "len": e.buf.Len()})
	return true
}
