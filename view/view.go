// Package view keeps a fixed character grid in step with a gap buffer.
//
// A View owns the screen model: the offset drawn at the top-left cell, the
// length of every visible row and the cursor's grid coordinates. Edits go
// through the View so it can repaint only the rows they disturb; navigation
// goes through it so the cursor can follow rows of differing lengths.
package view

import (
	"gapedit/buffer"
	"gapedit/layout"
	"gapedit/term"
)

// Geometry is the size of the text grid and the cursor placement policy.
type Geometry struct {
	Width  int
	Height int
	// CursorRow is the row a full repaint puts the cursor on when enough
	// text precedes it.
	CursorRow int
	// PageSize is the number of rows PageUp and PageDown move.
	PageSize int
	TabWidth int
}

// DefaultGeometry is an 80×23 grid leaving one terminal row for status.
func DefaultGeometry() Geometry {
	return Geometry{Width: 80, Height: 23, CursorRow: 10, PageSize: 15, TabWidth: 8}
}

// Normalize clamps g to values the renderer can work with.
func (g Geometry) Normalize() Geometry {
	if g.Width < 1 {
		g.Width = 1
	}
	if g.Height < 3 {
		g.Height = 3
	}
	if g.CursorRow < 1 {
		g.CursorRow = 1
	}
	if g.CursorRow > g.Height-2 {
		g.CursorRow = g.Height - 2
	}
	if g.PageSize < 1 {
		g.PageSize = 1
	}
	if g.TabWidth < 1 {
		g.TabWidth = 1
	}
	return g
}

// View renders a GapBuffer onto a Terminal.
type View struct {
	buf  *buffer.GapBuffer
	term term.Terminal
	geo  Geometry

	rows  []int
	start int
	row   int
	col   int
}

// New creates a View. Nothing is drawn until Redraw.
func New(buf *buffer.GapBuffer, t term.Terminal, geo Geometry) *View {
	geo = geo.Normalize()
	return &View{
		buf:  buf,
		term: t,
		geo:  geo,
		rows: make([]int, geo.Height),
	}
}

// Buffer returns the text the view renders.
func (v *View) Buffer() *buffer.GapBuffer { return v.buf }

func (v *View) Geometry() Geometry { return v.geo }

// SetGeometry changes the grid size and repaints.
func (v *View) SetGeometry(geo Geometry) {
	v.geo = geo.Normalize()
	v.rows = make([]int, v.geo.Height)
	v.Redraw()
}

// Cursor returns the cursor's grid coordinates.
func (v *View) Cursor() (col, row int) { return v.col, v.row }

// Start returns the offset drawn at the top-left cell.
func (v *View) Start() int { return v.start }

// RowLen returns how many cells of row r hold text, counting a terminator.
func (v *View) RowLen(r int) int {
	if r < 0 || r >= len(v.rows) {
		return 0
	}
	return v.rows[r]
}

// place shows the terminal cursor at the cursor's cell.
func (v *View) place() {
	v.term.MoveCursor(v.col, v.row)
	v.term.SetCursorVisible(true)
}

// painter is the layout.Visitor that draws. It keeps track of the terminal
// output position so consecutive cells need no cursor movement, and records
// row lengths as it goes.
type painter struct {
	v    *View
	x, y int
}

func (v *View) painter() *painter {
	v.term.SetCursorVisible(false)
	return &painter{v: v, x: -1, y: -1}
}

func (p *painter) at(row, col int) {
	if p.x != col || p.y != row {
		p.v.term.MoveCursor(col, row)
		p.x, p.y = col, row
	}
}

func (p *painter) Char(c byte, row, col int) {
	if row >= len(p.v.rows) {
		return
	}
	p.at(row, col)
	p.v.term.WriteChar(c)
	p.x++
	p.v.rows[row] = col + 1
}

func (p *painter) EndOfLine(row, col int) {
	if row >= len(p.v.rows) {
		return
	}
	p.at(row, col)
	p.v.term.ClearToEOL()
	p.v.rows[row] = col + 1
}

var _ layout.Visitor = (*painter)(nil)
