package editor

import (
	"os"
	"path/filepath"
	"time"

	"gapedit/buffer"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

// fileWatchEvent carries a change to the open file to the event loop.
type fileWatchEvent struct {
	Path string
	Op   fsnotify.Op
}

// watchFile watches the directory of the open file. Editors save through
// rename, so watching the file itself would lose track of it after the first
// external save.
func (e *Editor) watchFile() {
	if e.path == "" {
		return
	}
	dir := filepath.Dir(e.path)
	if e.fileWatcher == nil {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			// Continue without watching.
			e.log.Event("watch_failed", map[string]any{"file": e.path, "error": err.Error()})
			return
		}
		e.fileWatcher = watcher
		go e.forwardWatchEvents(watcher)
	}
	if dir == e.watchedDir {
		return
	}
	if e.watchedDir != "" {
		_ = e.fileWatcher.Remove(e.watchedDir)
	}
	if err := e.fileWatcher.Add(dir); err != nil {
		e.log.Event("watch_failed", map[string]any{"file": e.path, "error": err.Error()})
		e.watchedDir = ""
		return
	}
	e.watchedDir = dir
}

// forwardWatchEvents runs on its own goroutine. It never touches editor
// state: events are collected until the directory has been quiet for
// watchDebounce and then posted to the screen's event queue.
func (e *Editor) forwardWatchEvents(watcher *fsnotify.Watcher) {
	debounceTimer := time.NewTimer(watchDebounce)
	debounceTimer.Stop()
	pending := make(map[string]fsnotify.Op)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			pending[event.Name] |= event.Op
			debounceTimer.Reset(watchDebounce)

		case <-debounceTimer.C:
			for name, op := range pending {
				_ = e.screen.Post(fileWatchEvent{Path: name, Op: op})
			}
			clear(pending)

		case _, ok := <-watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (e *Editor) closeWatcher() {
	if e.fileWatcher != nil {
		e.fileWatcher.Close()
		e.fileWatcher = nil
		e.watchedDir = ""
	}
}

func (e *Editor) handleFileWatchEvent(ev fileWatchEvent) {
	if e.path == "" || filepath.Clean(ev.Path) != e.path {
		return
	}
	name := filepath.Base(e.path)
	info, err := os.Stat(e.path)
	if err != nil {
		// Removed or renamed away.
		if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
			e.setTemporaryError("Warning: " + name + " was deleted externally")
			e.log.Event("external_remove", map[string]any{"file": e.path})
		}
		return
	}
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}

	// Allow 1 second grace period after our last save
	modTime := info.ModTime()
	if !e.lastSaveTime.IsZero() && modTime.Sub(e.lastSaveTime) <= time.Second {
		return
	}
	e.log.Event("external_write", map[string]any{"file": e.path, "dirty": e.dirty})
	if e.dirty {
		e.setTemporaryError("Warning: " + name + " was modified externally (unsaved changes)")
		return
	}
	if err := e.reload(); err != nil {
		e.setTemporaryError("Error reloading: " + err.Error())
		return
	}
	e.lastSaveTime = modTime
	e.setTemporaryMessage(name + " (reloaded)")
}

// reload reads the file again, keeping the cursor offset where the new text
// allows it. On failure the current text is kept.
func (e *Editor) reload() error {
	scratch := buffer.New(e.buf.Cap())
	ending, err := buffer.LoadFile(e.path, scratch, e.loadOptions())
	if err != nil {
		return err
	}
	offset := e.buf.Pos()
	text := scratch.String()
	e.buf.Reset()
	for i := 0; i < len(text); i++ {
		// Same capacity, so this cannot run out of space.
		_ = e.buf.Insert(text[i])
	}
	e.ending = ending
	e.dirty = false
	e.edits = 0
	e.buf.Seek(min(offset, e.buf.Len()))
	e.view.Redraw()
	return nil
}
