package term

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newSimScreen(t *testing.T) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	s := Wrap(sim)
	if err := s.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	sim.SetSize(10, 4)
	t.Cleanup(s.Fini)
	return s, sim
}

func cellAt(sim tcell.SimulationScreen, x, y int) rune {
	r, _, _, _ := sim.GetContent(x, y)
	return r
}

func TestWriteCharAdvances(t *testing.T) {
	s, sim := newSimScreen(t)
	s.MoveCursor(2, 1)
	s.WriteChar('h')
	s.WriteChar('i')
	if cellAt(sim, 2, 1) != 'h' || cellAt(sim, 3, 1) != 'i' {
		t.Fatalf("expected \"hi\" at (2,1), got %q%q", cellAt(sim, 2, 1), cellAt(sim, 3, 1))
	}
}

func TestWriteCharClipsAtEdge(t *testing.T) {
	s, sim := newSimScreen(t)
	s.MoveCursor(9, 0)
	s.WriteChar('x')
	s.WriteChar('y')
	if cellAt(sim, 9, 0) != 'x' {
		t.Fatalf("expected x in the last column, got %q", cellAt(sim, 9, 0))
	}
	if cellAt(sim, 0, 1) == 'y' {
		t.Fatalf("output must not wrap onto the next row")
	}
}

func TestClearToEOL(t *testing.T) {
	s, sim := newSimScreen(t)
	s.MoveCursor(0, 2)
	for _, c := range []byte("abcdef") {
		s.WriteChar(c)
	}
	s.MoveCursor(3, 2)
	s.ClearToEOL()
	if cellAt(sim, 2, 2) != 'c' {
		t.Fatalf("expected cells left of the position kept, got %q", cellAt(sim, 2, 2))
	}
	for x := 3; x < 10; x++ {
		if r := cellAt(sim, x, 2); r != ' ' {
			t.Fatalf("expected blank at column %d, got %q", x, r)
		}
	}
}

func TestClearScreenHomesOutput(t *testing.T) {
	s, sim := newSimScreen(t)
	s.MoveCursor(4, 3)
	s.WriteChar('z')
	s.ClearScreen()
	s.WriteChar('a')
	if cellAt(sim, 4, 3) == 'z' {
		t.Fatalf("expected screen cleared")
	}
	if cellAt(sim, 0, 0) != 'a' {
		t.Fatalf("expected output at the top-left after clear, got %q", cellAt(sim, 0, 0))
	}
}

func TestReadKeyTranslates(t *testing.T) {
	s, sim := newSimScreen(t)
	tests := []struct {
		key  tcell.Key
		r    rune
		want KeyEvent
	}{
		{tcell.KeyRune, 'q', KeyEvent{Key: KeyRune, Rune: 'q'}},
		{tcell.KeyEnter, 0, KeyEvent{Key: KeyEnter}},
		{tcell.KeyBackspace2, 0, KeyEvent{Key: KeyBackspace}},
		{tcell.KeyCtrlD, 0, KeyEvent{Key: KeyDelete}},
		{tcell.KeyPgDn, 0, KeyEvent{Key: KeyPageDown}},
		{tcell.KeyCtrlS, 0, KeyEvent{Key: KeySave}},
	}
	for _, tt := range tests {
		sim.InjectKey(tt.key, tt.r, tcell.ModNone)
		got, err := s.ReadKey()
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if got != tt.want {
			t.Fatalf("expected %+v, got %+v", tt.want, got)
		}
	}
}

func TestReadEventPosted(t *testing.T) {
	s, _ := newSimScreen(t)
	if err := s.Post("reload"); err != nil {
		t.Fatalf("post failed: %v", err)
	}
	var ev Event
	for {
		var err error
		ev, err = s.ReadEvent()
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if _, resize := ev.(ResizeEvent); !resize {
			break
		}
	}
	p, ok := ev.(PostedEvent)
	if !ok || p.Data != "reload" {
		t.Fatalf("expected posted event, got %#v", ev)
	}
}

func TestPrintable(t *testing.T) {
	tests := []struct {
		r    rune
		want bool
	}{
		{'a', true},
		{' ', true},
		{'~', true},
		{0x7f, false},
		{0x1b, false},
		{'é', false},
	}
	for _, tt := range tests {
		if got := Printable(tt.r, nil); got != tt.want {
			t.Fatalf("%q: expected %v, got %v", tt.r, tt.want, got)
		}
	}
	if !Printable(0xe9, []byte{0xe9}) {
		t.Fatalf("expected allowed byte to be printable")
	}
}

func TestKeyString(t *testing.T) {
	if KeyPageUp.String() != "pgup" {
		t.Fatalf("expected pgup, got %s", KeyPageUp)
	}
	if Key(99).String() != "unknown" {
		t.Fatalf("expected unknown, got %s", Key(99))
	}
}
