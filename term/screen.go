package term

import (
	"github.com/gdamore/tcell/v2"
)

// Event is anything ReadEvent can return: KeyEvent, ResizeEvent or PostedEvent.
type Event interface {
	isEvent()
}

// ResizeEvent reports a new terminal size.
type ResizeEvent struct {
	Width, Height int
}

// PostedEvent carries a value handed to Post from another goroutine.
type PostedEvent struct {
	Data any
}

func (KeyEvent) isEvent()    {}
func (ResizeEvent) isEvent() {}
func (PostedEvent) isEvent() {}

// Screen implements Driver on top of a tcell.Screen.
type Screen struct {
	screen  tcell.Screen
	style   tcell.Style
	x, y    int
	visible bool
}

// NewScreen creates a Screen for the controlling terminal.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return Wrap(s), nil
}

// Wrap uses an existing tcell screen, such as a simulation screen.
func Wrap(s tcell.Screen) *Screen {
	return &Screen{screen: s, style: tcell.StyleDefault, visible: true}
}

// Init prepares the terminal for full-screen use.
func (s *Screen) Init() error {
	if err := s.screen.Init(); err != nil {
		return err
	}
	s.screen.SetStyle(s.style)
	s.screen.Clear()
	return nil
}

// Fini restores the terminal.
func (s *Screen) Fini() {
	s.screen.Fini()
}

// Tcell exposes the underlying screen for widgets drawn outside the grid.
func (s *Screen) Tcell() tcell.Screen {
	return s.screen
}

// SetStyle sets the style used for text and blank cells.
func (s *Screen) SetStyle(style tcell.Style) {
	s.style = style
	s.screen.SetStyle(style)
}

func (s *Screen) WriteChar(c byte) {
	w, h := s.screen.Size()
	if s.x >= 0 && s.x < w && s.y >= 0 && s.y < h {
		s.screen.SetContent(s.x, s.y, rune(c), nil, s.style)
	}
	s.x++
}

func (s *Screen) MoveCursor(col, row int) {
	s.x, s.y = col, row
	if s.visible {
		s.screen.ShowCursor(col, row)
	}
}

func (s *Screen) ClearToEOL() {
	w, _ := s.screen.Size()
	for x := s.x; x < w; x++ {
		s.screen.SetContent(x, s.y, ' ', nil, s.style)
	}
}

func (s *Screen) ClearScreen() {
	s.screen.Clear()
	s.x, s.y = 0, 0
}

func (s *Screen) SetCursorVisible(visible bool) {
	s.visible = visible
	if visible {
		s.screen.ShowCursor(s.x, s.y)
	} else {
		s.screen.HideCursor()
	}
}

func (s *Screen) Beep() {
	_ = s.screen.Beep()
}

func (s *Screen) Show() {
	s.screen.Show()
}

func (s *Screen) Size() (int, int) {
	return s.screen.Size()
}

// Post queues data for ReadEvent. It is safe to call from any goroutine.
func (s *Screen) Post(data any) error {
	return s.screen.PostEvent(tcell.NewEventInterrupt(data))
}

// ReadKey blocks until a key event arrives, dropping everything else.
func (s *Screen) ReadKey() (KeyEvent, error) {
	for {
		ev, err := s.ReadEvent()
		if err != nil {
			return KeyEvent{}, err
		}
		if k, ok := ev.(KeyEvent); ok {
			return k, nil
		}
	}
}

// ReadEvent blocks until a key, resize or posted event arrives. Keys the
// editor has no use for are skipped.
func (s *Screen) ReadEvent() (Event, error) {
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return nil, ErrClosed
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if k := translateKey(ev); k.Key != KeyNone {
				return k, nil
			}
		case *tcell.EventResize:
			s.screen.Sync()
			w, h := ev.Size()
			return ResizeEvent{Width: w, Height: h}, nil
		case *tcell.EventInterrupt:
			return PostedEvent{Data: ev.Data()}, nil
		}
	}
}

func translateKey(ev *tcell.EventKey) KeyEvent {
	switch ev.Key() {
	case tcell.KeyRune:
		return KeyEvent{Key: KeyRune, Rune: ev.Rune()}
	case tcell.KeyEnter:
		return KeyEvent{Key: KeyEnter}
	case tcell.KeyTab:
		return KeyEvent{Key: KeyTab}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyEvent{Key: KeyBackspace}
	case tcell.KeyDelete, tcell.KeyCtrlD:
		return KeyEvent{Key: KeyDelete}
	case tcell.KeyEscape:
		return KeyEvent{Key: KeyEscape}
	case tcell.KeyLeft:
		return KeyEvent{Key: KeyLeft}
	case tcell.KeyRight:
		return KeyEvent{Key: KeyRight}
	case tcell.KeyUp:
		return KeyEvent{Key: KeyUp}
	case tcell.KeyDown:
		return KeyEvent{Key: KeyDown}
	case tcell.KeyHome, tcell.KeyCtrlA:
		return KeyEvent{Key: KeyHome}
	case tcell.KeyEnd, tcell.KeyCtrlE:
		return KeyEvent{Key: KeyEnd}
	case tcell.KeyPgUp:
		return KeyEvent{Key: KeyPageUp}
	case tcell.KeyPgDn:
		return KeyEvent{Key: KeyPageDown}
	case tcell.KeyCtrlL:
		return KeyEvent{Key: KeyRefresh}
	case tcell.KeyCtrlS:
		return KeyEvent{Key: KeySave}
	case tcell.KeyCtrlQ:
		return KeyEvent{Key: KeyQuit}
	case tcell.KeyCtrlK:
		return KeyEvent{Key: KeyKill}
	case tcell.KeyCtrlY:
		return KeyEvent{Key: KeyYank}
	}
	return KeyEvent{}
}
