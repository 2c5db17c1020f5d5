// Package term defines the terminal capabilities the renderer draws through
// and a tcell-backed implementation of them.
package term

import (
	"errors"

	"github.com/mattn/go-runewidth"
)

// ErrClosed is returned by ReadKey and ReadEvent once the screen is gone.
var ErrClosed = errors.New("terminal closed")

// Terminal is the output side of a character-cell display. Writes happen at
// an output position that WriteChar advances by one column; MoveCursor sets
// both the output position and the visible cursor.
type Terminal interface {
	WriteChar(c byte)
	MoveCursor(col, row int)
	// ClearToEOL blanks the current row from the output position rightwards.
	ClearToEOL()
	ClearScreen()
	SetCursorVisible(visible bool)
	// Beep is the audible or visible alert.
	Beep()
	// Show flushes pending output to the display.
	Show()
	Size() (width, height int)
}

// Driver is a Terminal that also reads keys.
type Driver interface {
	Terminal
	// ReadKey blocks until a key is pressed.
	ReadKey() (KeyEvent, error)
}

// Key identifies a keyboard key.
type Key int

const (
	KeyNone Key = iota
	KeyRune     // printable character, see KeyEvent.Rune
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyEscape
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyRefresh // Ctrl+L
	KeySave    // Ctrl+S
	KeyQuit    // Ctrl+Q
	KeyKill    // Ctrl+K
	KeyYank    // Ctrl+Y
)

var keyNames = map[Key]string{
	KeyNone:      "none",
	KeyRune:      "rune",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyEscape:    "escape",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pgup",
	KeyPageDown:  "pgdn",
	KeyRefresh:   "refresh",
	KeySave:      "save",
	KeyQuit:      "quit",
	KeyKill:      "kill",
	KeyYank:      "yank",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// KeyEvent is one key press.
type KeyEvent struct {
	Key  Key
	Rune rune
}

// Printable reports whether r may be typed into the text: a single-cell
// character in the 7-bit range, or one of the extra bytes the caller allows.
func Printable(r rune, allowed []byte) bool {
	if r >= 0x20 && r < 0x7f && runewidth.RuneWidth(r) == 1 {
		return true
	}
	for _, a := range allowed {
		if rune(a) == r {
			return true
		}
	}
	return false
}
