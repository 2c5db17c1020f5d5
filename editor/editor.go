package editor

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"gapedit/buffer"
	"gapedit/clipboardx"
	"gapedit/config"
	"gapedit/logs"
	"gapedit/term"
	"gapedit/ui"
	"gapedit/view"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
)

// Editor ties one gap buffer and its view to a terminal, a status line and
// the files behind them.
type Editor struct {
	screen *term.Screen
	cfg    *config.Config
	log    *logs.Logger
	clip   *clipboardx.Clipboard

	buf      *buffer.GapBuffer
	view     *view.View
	path     string
	ending   buffer.LineEnding
	tabWidth int
	dirty    bool

	statusBar *ui.StatusBar
	dialog    *ui.Dialog

	quit        bool
	quitPending bool // true after first Ctrl+Q with unsaved changes
	killing     bool // the previous key was a kill, so the next one appends

	// Backups are keyed by path, or by a random name until the text has one.
	backupKey string
	edits     int

	lastSaveTime time.Time
	fileWatcher  *fsnotify.Watcher
	watchedDir   string

	// Temporary status messages
	statusMessageTime time.Time
}

// New creates an editor with an empty buffer drawing on screen, which should
// already be initialized. A nil clipboard uses the system one.
func New(cfg *config.Config, screen *term.Screen, log *logs.Logger, clip *clipboardx.Clipboard) *Editor {
	if clip == nil {
		clip = clipboardx.New(true)
	}
	ending, _ := buffer.ParseLineEnding(cfg.LineEnding, buffer.LF)
	e := &Editor{
		screen:    screen,
		cfg:       cfg,
		log:       log,
		clip:      clip,
		buf:       buffer.New(cfg.Capacity),
		ending:    ending,
		tabWidth:  max(1, cfg.TabWidth),
		statusBar: ui.NewStatusBar(),
		backupKey: "untitled-" + uuid.NewString(),
	}
	theme := cfg.GetTheme()
	e.statusBar.Theme = theme
	screen.SetStyle(theme.Text())
	e.view = view.New(e.buf, screen, e.geometry())
	return e
}

// geometry sizes the grid to the terminal less the status row, or to the
// configured size when that is smaller.
func (e *Editor) geometry() view.Geometry {
	w, h := e.screen.Size()
	geo := view.Geometry{
		Width:     w,
		Height:    h - 1,
		CursorRow: e.cfg.CursorRow,
		PageSize:  e.cfg.PageSize,
		TabWidth:  e.tabWidth,
	}
	if e.cfg.Width > 0 && e.cfg.Width < geo.Width {
		geo.Width = e.cfg.Width
	}
	if e.cfg.Height > 0 && e.cfg.Height < geo.Height {
		geo.Height = e.cfg.Height
	}
	return geo.Normalize()
}

func (e *Editor) loadOptions() buffer.LoadOptions {
	return buffer.LoadOptions{TabWidth: e.tabWidth, Headroom: e.cfg.LoadHeadroom}
}

// Open loads path into the buffer. A missing file starts an empty buffer
// that will be created on save. Any other failure leaves the editor empty
// and unnamed so nothing can overwrite the file.
func (e *Editor) Open(path string) error {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	settings := *e.cfg
	config.FindEditorConfig(path).Apply(&settings)
	e.tabWidth = settings.TabWidth
	def, _ := buffer.ParseLineEnding(settings.LineEnding, buffer.LF)

	ending, err := buffer.LoadFile(path, e.buf, e.loadOptions())
	switch {
	case err == nil:
		e.ending = ending
	case errors.Is(err, fs.ErrNotExist):
		e.buf.Reset()
		e.ending = def
		e.setTemporaryMessage("New file")
	default:
		e.buf.Reset()
		e.log.Event("open_failed", map[string]any{"file": path, "error": err.Error()})
		return fmt.Errorf("opening %s: %w", path, err)
	}

	e.path = path
	e.backupKey = path
	e.dirty = false
	e.edits = 0
	if e.recoverBackup() {
		e.setStatusMessage("Recovered unsaved changes from backup")
	} else {
		e.RestoreSession()
	}
	e.log.Event("open", map[string]any{
		"file":   path,
		"len":    e.buf.Len(),
		"free":   e.buf.Free(),
		"ending": string(e.ending),
		"offset": e.buf.Pos(),
	})
	e.view.SetGeometry(e.geometry())
	e.watchFile()
	return nil
}

// Run reads and handles events until the user quits or the terminal goes
// away.
func (e *Editor) Run() error {
	e.view.Redraw()
	var err error
	for !e.quit {
		e.clearExpiredMessages()
		e.render()

		var ev term.Event
		ev, err = e.screen.ReadEvent()
		if err != nil {
			break
		}
		switch ev := ev.(type) {
		case term.KeyEvent:
			e.handleKey(ev)
		case term.ResizeEvent:
			e.view.SetGeometry(e.geometry())
		case term.PostedEvent:
			if fe, ok := ev.Data.(fileWatchEvent); ok {
				e.handleFileWatchEvent(fe)
			}
		}
	}
	e.Close()
	if errors.Is(err, term.ErrClosed) {
		return nil
	}
	return err
}

// Close records the session, drops the backup and stops the watcher.
func (e *Editor) Close() {
	e.SaveSession()
	e.cleanBackup(e.backupKey)
	e.closeWatcher()
	e.log.Event("exit", map[string]any{"file": e.path, "dirty": e.dirty})
}

func (e *Editor) render() {
	w, _ := e.screen.Size()
	row := e.view.Geometry().Height
	if e.dialog != nil {
		e.dialog.Render(e.screen.Tcell(), 0, row, w)
	} else {
		e.updateStatusBar()
		e.statusBar.Render(e.screen.Tcell(), 0, row, w)
	}
	e.screen.Show()
}

func (e *Editor) updateStatusBar() {
	s := e.statusBar
	s.Filename = e.path
	s.Dirty = e.dirty
	s.Offset = e.buf.Pos()
	s.Length = e.buf.Len()
	s.Free = e.buf.Free()
	s.LineEnd = string(e.ending)
}

func (e *Editor) saveCurrentFile() {
	if e.path == "" {
		e.openSaveAsDialog()
		return
	}
	e.saveTo(e.path)
}

func (e *Editor) openSaveAsDialog() {
	d := ui.NewSaveAsDialog()
	d.Theme = e.cfg.GetTheme()
	d.OnSubmit = func(name string) {
		name = strings.TrimSpace(name)
		if name == "" {
			e.setTemporaryMessage("Save cancelled")
			return
		}
		if abs, err := filepath.Abs(name); err == nil {
			name = abs
		}
		e.saveTo(name)
	}
	d.OnCancel = func() {
		e.setTemporaryMessage("Save cancelled")
	}
	e.dialog = d
}

func (e *Editor) saveTo(path string) bool {
	if err := buffer.SaveFile(path, e.buf, e.ending); err != nil {
		e.setTemporaryError("Error saving: " + err.Error())
		e.log.Event("save_failed", map[string]any{"file": path, "error": err.Error()})
		return false
	}
	e.onSaveSuccess(path)
	return true
}

func (e *Editor) onSaveSuccess(path string) {
	renamed := path != e.path
	e.cleanBackup(e.backupKey)
	e.path = path
	e.backupKey = path
	e.cleanBackup(path)
	e.dirty = false
	e.edits = 0
	e.quitPending = false
	e.lastSaveTime = time.Now()
	e.setTemporaryMessage("Saved " + filepath.Base(path))
	e.log.Event("save", map[string]any{"file": path, "len": e.buf.Len(), "ending": string(e.ending)})
	if renamed {
		e.watchFile()
	}
}

func (e *Editor) handleQuit() {
	if e.dirty && !e.quitPending {
		e.quitPending = true
		e.setTemporaryMessage("Unsaved changes! Press Ctrl+Q again to quit")
		return
	}
	e.quit = true
}

func (e *Editor) setStatusMessage(msg string) {
	e.statusBar.Message = msg
	e.statusMessageTime = time.Time{} // zero time = permanent
}

// setTemporaryMessage sets a message that will auto-clear after 5 seconds
func (e *Editor) setTemporaryMessage(msg string) {
	e.statusBar.Message = msg
	e.statusMessageTime = time.Now()
}

// setTemporaryError is setTemporaryMessage with a beep.
func (e *Editor) setTemporaryError(msg string) {
	e.setTemporaryMessage(msg)
	e.screen.Beep()
}

func (e *Editor) clearExpiredMessages() {
	if !e.statusMessageTime.IsZero() && time.Since(e.statusMessageTime) > 5*time.Second {
		e.statusBar.Message = ""
		e.statusMessageTime = time.Time{}
	}
}

// SetMessage shows msg on the status line until the user dismisses it.
func (e *Editor) SetMessage(msg string) {
	e.setStatusMessage(msg)
}
