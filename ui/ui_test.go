package ui

import (
	"strings"
	"testing"

	"gapedit/term"

	"github.com/gdamore/tcell/v2"
)

func rowText(screen tcell.Screen, y, width int) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestStatusBarText(t *testing.T) {
	s := NewStatusBar()
	s.Filename = "/tmp/notes.txt"
	s.Dirty = true
	s.Offset, s.Length, s.Free = 4, 10, 19990
	left, right := s.Text(60)
	if left != " notes.txt [+]" {
		t.Fatalf("unexpected left part %q", left)
	}
	if right != " 4/10 free 19990 LF " {
		t.Fatalf("unexpected right part %q", right)
	}

	s.Message = "Buffer full"
	if left, _ := s.Text(60); left != " Buffer full" {
		t.Fatalf("expected message to replace the name, got %q", left)
	}
}

func TestStatusBarTruncatesName(t *testing.T) {
	s := NewStatusBar()
	s.Filename = strings.Repeat("x", 50) + ".txt"
	left, right := s.Text(30)
	if len([]rune(left))+len(right) > 30 {
		t.Fatalf("expected bar to fit 30 columns, got %q + %q", left, right)
	}
	if !strings.HasSuffix(left, "…") {
		t.Fatalf("expected truncation marker, got %q", left)
	}
}

func TestStatusBarRender(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init failed: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(40, 3)

	s := NewStatusBar()
	s.Render(screen, 0, 2, 40)
	got := rowText(screen, 2, 40)
	if !strings.HasPrefix(got, " untitled") {
		t.Fatalf("expected untitled on the left, got %q", got)
	}
	if !strings.HasSuffix(got, "LF ") {
		t.Fatalf("expected line ending on the right, got %q", got)
	}
}

func TestDialogEditing(t *testing.T) {
	d := NewSaveAsDialog()
	for _, r := range "ab.txt" {
		d.HandleKey(term.KeyEvent{Key: term.KeyRune, Rune: r})
	}
	d.HandleKey(term.KeyEvent{Key: term.KeyHome})
	d.HandleKey(term.KeyEvent{Key: term.KeyDelete})
	d.HandleKey(term.KeyEvent{Key: term.KeyRune, Rune: 'x'})
	d.HandleKey(term.KeyEvent{Key: term.KeyEnd})
	d.HandleKey(term.KeyEvent{Key: term.KeyBackspace})
	if d.Value() != "xb.tx" {
		t.Fatalf("expected \"xb.tx\", got %q", d.Value())
	}

	var submitted string
	d.OnSubmit = func(v string) { submitted = v }
	if !d.HandleKey(term.KeyEvent{Key: term.KeyEnter}) {
		t.Fatalf("expected enter to finish the dialog")
	}
	if submitted != "xb.tx" {
		t.Fatalf("expected submit with \"xb.tx\", got %q", submitted)
	}
}

func TestDialogCancel(t *testing.T) {
	d := NewInputDialog("Name: ")
	cancelled := false
	d.OnCancel = func() { cancelled = true }
	if d.HandleKey(term.KeyEvent{Key: term.KeyLeft}) {
		t.Fatalf("expected left to keep the dialog open")
	}
	if !d.HandleKey(term.KeyEvent{Key: term.KeyEscape}) || !cancelled {
		t.Fatalf("expected escape to cancel")
	}
}

func TestDialogRender(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init failed: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(20, 1)

	d := NewInputDialog("> ")
	d.Input = []rune("hello")
	d.Cursor = 5
	d.Render(screen, 0, 0, 20)
	if got := rowText(screen, 0, 20); !strings.HasPrefix(got, "> hello") {
		t.Fatalf("expected prompt and input, got %q", got)
	}
}
