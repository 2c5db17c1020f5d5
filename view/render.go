package view

import (
	"gapedit/layout"
)

// Redraw repaints the whole grid. The window is chosen so the cursor sits on
// Geometry.CursorRow, or higher when less text precedes it.
func (v *View) Redraw() {
	for i := range v.rows {
		v.rows[i] = 0
	}
	w, h, k := v.geo.Width, v.geo.Height, v.geo.CursorRow
	pos := v.buf.Pos()

	start := layout.LookbackStart(v.buf, w, h, pos)
	above := layout.Measure(v.buf, w, start, pos).Row
	if above > k {
		start = layout.Skip(v.buf, w, start, above-k).Offset
	}
	v.start = start

	p := v.painter()
	v.term.ClearScreen()
	res := layout.Run(v.buf, w, layout.Pass{
		From:  layout.State{Offset: start},
		Until: pos,
		Visit: p,
	})
	v.row, v.col = res.Row, res.Col
	layout.Run(v.buf, w, layout.Pass{
		From:  res.State,
		Until: -1,
		Rows:  h,
		Visit: p,
	})
	v.place()
}

// repaintTail redraws from st to the end of the logical line. When cascade
// is set, or the line's terminator was read at column edge, wrapping below
// the line may have moved and every row down to the bottom is redrawn too.
func (v *View) repaintTail(st layout.State, cascade bool, edge int, p *painter) {
	w, h := v.geo.Width, v.geo.Height
	res := layout.Run(v.buf, w, layout.Pass{
		From:      st,
		Until:     -1,
		Rows:      h,
		StopAtEOL: true,
		Visit:     p,
	})
	if res.EOL && res.LastCol == edge {
		cascade = true
	}
	if cascade && res.EOL {
		res = layout.Run(v.buf, w, layout.Pass{
			From:  res.State,
			Until: -1,
			Rows:  h,
			Visit: p,
		})
	}
	if res.Offset >= v.buf.Len() && res.Row < h {
		v.clearFrom(res.Row, res.Col, p)
	}
}

// clearFrom blanks the grid after the end of the text.
func (v *View) clearFrom(row, col int, p *painter) {
	p.at(row, col)
	v.term.ClearToEOL()
	v.rows[row] = col
	for r := row + 1; r < len(v.rows); r++ {
		if v.rows[r] == 0 {
			continue
		}
		p.at(r, 0)
		v.term.ClearToEOL()
		v.rows[r] = 0
	}
}
