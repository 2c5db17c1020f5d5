package view

import (
	"bytes"
	"testing"

	"gapedit/buffer"
	"gapedit/layout"
)

// grid is an in-memory terminal that keeps every cell.
type grid struct {
	w, h    int
	cells   [][]byte
	x, y    int
	curCol  int
	curRow  int
	visible bool
	beeps   int
}

func newGrid(w, h int) *grid {
	g := &grid{w: w, h: h}
	g.ClearScreen()
	return g
}

func (g *grid) WriteChar(c byte) {
	if g.y >= 0 && g.y < g.h && g.x >= 0 && g.x < g.w {
		g.cells[g.y][g.x] = c
	}
	g.x++
}

func (g *grid) MoveCursor(col, row int) {
	g.x, g.y = col, row
	g.curCol, g.curRow = col, row
}

func (g *grid) ClearToEOL() {
	if g.y < 0 || g.y >= g.h {
		return
	}
	for x := max(g.x, 0); x < g.w; x++ {
		g.cells[g.y][x] = ' '
	}
}

func (g *grid) ClearScreen() {
	g.cells = make([][]byte, g.h)
	for i := range g.cells {
		g.cells[i] = bytes.Repeat([]byte{' '}, g.w)
	}
	g.x, g.y = 0, 0
}

func (g *grid) SetCursorVisible(visible bool) { g.visible = visible }
func (g *grid) Beep()                         { g.beeps++ }
func (g *grid) Show()                         {}
func (g *grid) Size() (int, int)              { return g.w, g.h }

func (g *grid) line(r int) string { return string(g.cells[r]) }

// reference lays out text the slow way for comparison.
type reference struct {
	cells [][]byte
	rows  []int
}

func (r *reference) Char(c byte, row, col int) {
	r.cells[row][col] = c
	r.rows[row] = col + 1
}

func (r *reference) EndOfLine(row, col int) {
	r.rows[row] = col + 1
}

// checkView asserts that the grid, the row lengths and the cursor all match
// a fresh layout of the text from the view's start offset.
func checkView(t *testing.T, v *View, g *grid) {
	t.Helper()
	geo := v.Geometry()
	ref := &reference{rows: make([]int, geo.Height)}
	for i := 0; i < geo.Height; i++ {
		ref.cells = append(ref.cells, bytes.Repeat([]byte{' '}, geo.Width))
	}
	layout.Run(v.Buffer(), geo.Width, layout.Pass{
		From:  layout.State{Offset: v.Start()},
		Until: -1,
		Rows:  geo.Height,
		Visit: ref,
	})
	for r := 0; r < geo.Height; r++ {
		if got, want := g.line(r), string(ref.cells[r]); got != want {
			t.Fatalf("row %d: expected %q, got %q (text %q)", r, want, got, v.Buffer().String())
		}
		if got := v.RowLen(r); got != ref.rows[r] {
			t.Fatalf("row %d: expected length %d, got %d (text %q)", r, ref.rows[r], got, v.Buffer().String())
		}
	}
	m := layout.Measure(v.Buffer(), geo.Width, v.Start(), v.Buffer().Pos())
	col, row := v.Cursor()
	if col != m.Col || row != m.Row {
		t.Fatalf("expected cursor (%d,%d), got (%d,%d)", m.Col, m.Row, col, row)
	}
	if row < 0 || row >= geo.Height {
		t.Fatalf("cursor row %d outside the grid", row)
	}
	if g.curCol != col || g.curRow != row || !g.visible {
		t.Fatalf("terminal cursor at (%d,%d) visible=%v, view cursor at (%d,%d)", g.curCol, g.curRow, g.visible, col, row)
	}
}

func newTestView(t *testing.T, text string, cursor int, geo Geometry) (*View, *grid) {
	t.Helper()
	buf := buffer.NewFromString(text, 1024)
	if err := buf.Seek(cursor); err != nil {
		t.Fatalf("seek failed: %v", err)
	}
	geo = geo.Normalize()
	g := newGrid(geo.Width, geo.Height)
	v := New(buf, g, geo)
	v.Redraw()
	checkView(t, v, g)
	return v, g
}

func smallGeometry() Geometry {
	return Geometry{Width: 4, Height: 5, CursorRow: 2, PageSize: 2, TabWidth: 4}
}
