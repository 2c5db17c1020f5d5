package editor

import (
	"errors"
	"strings"

	"gapedit/buffer"
	"gapedit/term"
)

func (e *Editor) handleKey(ev term.KeyEvent) {
	// Dialog gets priority
	if e.dialog != nil {
		if e.dialog.HandleKey(ev) {
			e.dialog = nil
		}
		return
	}

	// Reset force-quit state on any key except Ctrl+Q
	if ev.Key != term.KeyQuit {
		e.quitPending = false
	}
	appendKill := e.killing
	e.killing = false

	var err error
	switch ev.Key {
	case term.KeyRune:
		if !term.Printable(ev.Rune, e.cfg.PassthroughBytes()) {
			e.screen.Beep()
			return
		}
		err = e.edit(func() error { return e.view.Insert(byte(ev.Rune)) })
	case term.KeyEnter:
		err = e.edit(func() error { return e.view.Insert(buffer.EOL) })
	case term.KeyTab:
		err = e.edit(e.view.InsertTab)
	case term.KeyBackspace:
		err = e.edit(e.view.DeleteBefore)
	case term.KeyDelete:
		err = e.edit(e.view.DeleteAfter)
	case term.KeyLeft:
		err = e.view.Left()
	case term.KeyRight:
		err = e.view.Right()
	case term.KeyUp:
		err = e.view.Up()
	case term.KeyDown:
		err = e.view.Down()
	case term.KeyHome:
		err = e.view.Home()
	case term.KeyEnd:
		err = e.view.End()
	case term.KeyPageUp:
		err = e.view.PageUp()
	case term.KeyPageDown:
		err = e.view.PageDown()
	case term.KeyRefresh:
		e.screen.Tcell().Sync()
		e.view.Redraw()
	case term.KeySave:
		e.saveCurrentFile()
	case term.KeyQuit:
		e.handleQuit()
	case term.KeyKill:
		err = e.killLine(appendKill)
	case term.KeyYank:
		err = e.yank()
	case term.KeyEscape:
		e.setStatusMessage("")
	}

	if e.log.Enabled() {
		e.log.Event("key", map[string]any{
			"key":    ev.Key.String(),
			"offset": e.buf.Pos(),
			"len":    e.buf.Len(),
			"free":   e.buf.Free(),
		})
	}
	e.report(err)
}

// edit runs a modifying view operation and counts it when the text changed,
// which a partly applied tab or yank can do even when it fails.
func (e *Editor) edit(op func() error) error {
	before := e.buf.Len()
	err := op()
	if e.buf.Len() != before {
		e.noteEdit()
	}
	return err
}

// report turns an operation error into feedback. Running into either end of
// the text only beeps; a full buffer also says so.
func (e *Editor) report(err error) {
	switch {
	case err == nil:
	case errors.Is(err, buffer.ErrAtStart), errors.Is(err, buffer.ErrAtEnd):
		e.screen.Beep()
	case errors.Is(err, buffer.ErrOutOfSpace):
		e.screen.Beep()
		e.setTemporaryMessage("Buffer full")
		e.log.Event("out_of_space", map[string]any{
			"file":   e.path,
			"offset": e.buf.Pos(),
			"len":    e.buf.Len(),
		})
	default:
		e.setTemporaryError(err.Error())
	}
}

// killLine removes the rest of the line into the clipboard. Kills in a row
// collect into one clipboard entry.
func (e *Editor) killLine(appendKill bool) error {
	var killed string
	err := e.edit(func() error {
		var err error
		killed, err = e.view.KillLine()
		return err
	})
	if err != nil {
		return err
	}
	text := strings.ReplaceAll(killed, string(buffer.EOL), "\n")
	if appendKill {
		e.clip.Append(text)
	} else {
		e.clip.Copy(text)
	}
	e.killing = true
	return nil
}

// yank inserts the clipboard at the cursor. It stops at the first byte that
// does not fit.
func (e *Editor) yank() error {
	text := e.normalizeText(e.clip.Paste())
	if text == "" {
		return nil
	}
	var n int
	err := e.edit(func() error {
		var err error
		n, err = e.view.InsertText(text)
		return err
	})
	if errors.Is(err, buffer.ErrOutOfSpace) {
		e.log.Event("yank_truncated", map[string]any{"wanted": len(text), "inserted": n})
	}
	return err
}

// normalizeText makes pasted text look like loaded text: every line ending
// becomes EOL, tabs become spaces and bytes that cannot be typed are dropped.
func (e *Editor) normalizeText(s string) string {
	allowed := e.cfg.PassthroughBytes()
	var b strings.Builder
	col := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
			b.WriteByte(buffer.EOL)
			col = 0
		case c == '\n':
			b.WriteByte(buffer.EOL)
			col = 0
		case c == '\t':
			n := e.tabWidth - col%e.tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
		case term.Printable(rune(c), allowed):
			b.WriteByte(c)
			col++
		}
	}
	return b.String()
}
