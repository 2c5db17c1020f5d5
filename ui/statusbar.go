package ui

import (
	"fmt"
	"path/filepath"

	"gapedit/config"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// StatusBar is the row under the text grid.
type StatusBar struct {
	Filename string
	Dirty    bool
	Offset   int
	Length   int
	Free     int
	LineEnd  string
	Message  string // temporary status message
	Theme    *config.ColorScheme
}

func NewStatusBar() *StatusBar {
	return &StatusBar{LineEnd: "LF"}
}

// Text returns the left and right parts of the bar for the given width. The
// left part is truncated so the right part always fits.
func (s *StatusBar) Text(width int) (left, right string) {
	right = fmt.Sprintf(" %d/%d free %d %s ", s.Offset, s.Length, s.Free, s.LineEnd)
	if s.Message != "" {
		left = " " + s.Message
	} else {
		name := s.Filename
		if name == "" {
			name = "untitled"
		} else {
			name = filepath.Base(name)
		}
		if s.Dirty {
			name += " [+]"
		}
		left = " " + name
	}
	room := width - runewidth.StringWidth(right)
	if room < 0 {
		return runewidth.Truncate(left, width, ""), ""
	}
	return runewidth.Truncate(left, room, "…"), right
}

func (s *StatusBar) Render(screen tcell.Screen, x, y, width int) {
	theme := s.Theme
	if theme == nil {
		theme = config.Themes["plain"]
	}
	style := theme.Status()
	msgStyle := style.Foreground(theme.MessageFg).Bold(true)

	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, style)
	}

	left, right := s.Text(width)
	leftStyle := style
	if s.Message != "" {
		leftStyle = msgStyle
	}
	col := x
	for _, ch := range left {
		screen.SetContent(col, y, ch, nil, leftStyle)
		col += runewidth.RuneWidth(ch)
	}
	col = x + width - runewidth.StringWidth(right)
	for _, ch := range right {
		screen.SetContent(col, y, ch, nil, style)
		col += runewidth.RuneWidth(ch)
	}
}
