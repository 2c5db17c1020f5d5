package view

import (
	"gapedit/buffer"
)

// Left moves the cursor back one byte. Leaving the top row scrolls.
func (v *View) Left() error {
	if _, err := v.buf.Prev(); err != nil {
		return err
	}
	switch {
	case v.col > 0:
		v.col--
	case v.row > 0:
		v.row--
		v.col = v.rows[v.row] - 1
	default:
		v.Redraw()
		return nil
	}
	v.place()
	return nil
}

// Right moves the cursor forward one byte. Leaving the bottom row scrolls.
func (v *View) Right() error {
	c, err := v.buf.Next()
	if err != nil {
		return err
	}
	v.col++
	if c == buffer.EOL || v.col == v.geo.Width {
		v.row++
		v.col = 0
	}
	if v.row >= v.geo.Height {
		v.Redraw()
		return nil
	}
	v.place()
	return nil
}

// Up moves to the row above, keeping the column when that row is long
// enough and landing on its last column otherwise.
func (v *View) Up() error {
	if v.row == 0 {
		if v.buf.Pos()-v.col == 0 {
			return buffer.ErrAtStart
		}
		v.Redraw()
	}
	rowStart := v.buf.Pos() - v.col
	target := v.row - 1
	targetStart := rowStart - v.rows[target]
	col := min(v.col, v.lastCol(target, targetStart))
	if err := v.buf.Seek(targetStart + col); err != nil {
		return err
	}
	v.row, v.col = target, col
	v.place()
	return nil
}

// Down moves to the row below with the same column rule as Up.
func (v *View) Down() error {
	if !v.continues(v.row, v.buf.Pos()-v.col) {
		return buffer.ErrAtEnd
	}
	if v.row == v.geo.Height-1 {
		v.Redraw()
	}
	target := v.row + 1
	targetStart := v.buf.Pos() - v.col + v.rows[v.row]
	col := min(v.col, v.lastCol(target, targetStart))
	if err := v.buf.Seek(targetStart + col); err != nil {
		return err
	}
	v.row, v.col = target, col
	v.place()
	return nil
}

// Home moves to column 0 of the current row.
func (v *View) Home() error {
	for v.col > 0 {
		if err := v.Left(); err != nil {
			return err
		}
	}
	return nil
}

// End moves to the last column of the current row: the terminator, the
// last cell of a wrapped row, or the end of the text.
func (v *View) End() error {
	last := v.lastCol(v.row, v.buf.Pos()-v.col)
	for v.col < last {
		if err := v.Right(); err != nil {
			return err
		}
	}
	return nil
}

// PageUp moves up PageSize rows, stopping at the start of the text. It
// fails only when the cursor could not move at all.
func (v *View) PageUp() error {
	return v.page(v.Up)
}

// PageDown moves down PageSize rows, stopping at the end of the text.
func (v *View) PageDown() error {
	return v.page(v.Down)
}

func (v *View) page(move func() error) error {
	for i := 0; i < v.geo.PageSize; i++ {
		if err := move(); err != nil {
			if i == 0 {
				return err
			}
			return nil
		}
	}
	return nil
}

// endsWithEOL reports whether row r, starting at offset rowStart, ends on
// a terminator.
func (v *View) endsWithEOL(r, rowStart int) bool {
	n := v.rows[r]
	if n == 0 {
		return false
	}
	c, ok := v.buf.Peek(rowStart + n - 1 - v.buf.Pos())
	return ok && c == buffer.EOL
}

// continues reports whether text goes on past row r onto another row.
func (v *View) continues(r, rowStart int) bool {
	return v.rows[r] == v.geo.Width || v.endsWithEOL(r, rowStart)
}

// lastCol is the rightmost column the cursor may occupy on row r.
func (v *View) lastCol(r, rowStart int) int {
	n := v.rows[r]
	switch {
	case n == 0:
		return 0
	case v.continues(r, rowStart):
		return n - 1
	default:
		// Last row of the text: the cursor may sit past its final byte.
		return n
	}
}
