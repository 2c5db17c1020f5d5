package ui

import (
	"gapedit/config"
	"gapedit/term"

	"github.com/gdamore/tcell/v2"
)

// Dialog is a one-line text prompt drawn over the status row.
type Dialog struct {
	Prompt string
	Input  []rune
	Cursor int
	Theme  *config.ColorScheme

	OnSubmit func(value string)
	OnCancel func()
}

func NewInputDialog(prompt string) *Dialog {
	return &Dialog{Prompt: prompt}
}

func NewSaveAsDialog() *Dialog {
	return NewInputDialog("Save as: ")
}

// Value returns the text typed so far.
func (d *Dialog) Value() string { return string(d.Input) }

// HandleKey applies one key. It returns true once the dialog is finished,
// after calling OnSubmit or OnCancel.
func (d *Dialog) HandleKey(ev term.KeyEvent) bool {
	switch ev.Key {
	case term.KeyEscape, term.KeyQuit:
		if d.OnCancel != nil {
			d.OnCancel()
		}
		return true
	case term.KeyEnter:
		if d.OnSubmit != nil {
			d.OnSubmit(d.Value())
		}
		return true
	case term.KeyBackspace:
		if d.Cursor > 0 {
			d.Input = append(d.Input[:d.Cursor-1], d.Input[d.Cursor:]...)
			d.Cursor--
		}
	case term.KeyDelete:
		if d.Cursor < len(d.Input) {
			d.Input = append(d.Input[:d.Cursor], d.Input[d.Cursor+1:]...)
		}
	case term.KeyLeft:
		if d.Cursor > 0 {
			d.Cursor--
		}
	case term.KeyRight:
		if d.Cursor < len(d.Input) {
			d.Cursor++
		}
	case term.KeyHome:
		d.Cursor = 0
	case term.KeyEnd:
		d.Cursor = len(d.Input)
	case term.KeyRune:
		d.Input = append(d.Input[:d.Cursor], append([]rune{ev.Rune}, d.Input[d.Cursor:]...)...)
		d.Cursor++
	}
	return false
}

func (d *Dialog) Render(screen tcell.Screen, x, y, width int) {
	theme := d.Theme
	if theme == nil {
		theme = config.Themes["plain"]
	}
	style := tcell.StyleDefault.Background(theme.PromptBg).Foreground(theme.StatusBarFg)
	promptStyle := style.Bold(true)

	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, style)
	}

	col := x
	for _, ch := range d.Prompt {
		if col < x+width {
			screen.SetContent(col, y, ch, nil, promptStyle)
			col++
		}
	}

	// Scroll the input so the cursor stays visible.
	room := x + width - col - 1
	first := 0
	if room > 0 && d.Cursor > room {
		first = d.Cursor - room
	}
	for i := first; i < len(d.Input) && col < x+width; i++ {
		st := style
		if i == d.Cursor {
			st = style.Reverse(true)
		}
		screen.SetContent(col, y, d.Input[i], nil, st)
		col++
	}
	if d.Cursor >= len(d.Input) && col < x+width {
		screen.SetContent(col, y, ' ', nil, style.Reverse(true))
	}
}
