package view

import (
	"gapedit/buffer"
	"gapedit/layout"
)

// Insert adds c at the cursor and repaints the rest of its line. Rows above
// the edit are never touched.
func (v *View) Insert(c byte) error {
	if err := v.buf.Insert(c); err != nil {
		return err
	}
	p := v.painter()
	st := layout.State{Offset: v.buf.Pos() - 1, Row: v.row, Col: v.col}
	layout.Step(v.buf, v.geo.Width, &st, p)
	v.row, v.col = st.Row, st.Col
	if v.row >= v.geo.Height {
		v.Redraw()
		return nil
	}
	// A terminator pushed to column 0 means the line grew a row.
	v.repaintTail(st, c == buffer.EOL, 0, p)
	v.place()
	return nil
}

// DeleteBefore removes the byte left of the cursor. Removing a terminator
// joins the line to the one above it.
func (v *View) DeleteBefore() error {
	if v.buf.Pos() > 0 && v.row == 0 && v.col == 0 {
		if _, err := v.buf.DeleteBefore(); err != nil {
			return err
		}
		v.Redraw()
		return nil
	}
	c, err := v.buf.DeleteBefore()
	if err != nil {
		return err
	}
	if v.col > 0 {
		v.col--
	} else {
		v.row--
		v.col = v.rows[v.row] - 1
	}
	v.repaintShrink(c)
	return nil
}

// DeleteAfter removes the byte under the cursor.
func (v *View) DeleteAfter() error {
	c, err := v.buf.DeleteAfter()
	if err != nil {
		return err
	}
	v.repaintShrink(c)
	return nil
}

// repaintShrink repaints after one byte was removed at the cursor. A
// terminator landing in the last column means the line lost a row.
func (v *View) repaintShrink(removed byte) {
	p := v.painter()
	st := layout.State{Offset: v.buf.Pos(), Row: v.row, Col: v.col}
	v.repaintTail(st, removed == buffer.EOL, v.geo.Width-1, p)
	v.place()
}

// InsertTab inserts spaces up to the next tab stop. On ErrOutOfSpace the
// spaces already inserted stay.
func (v *View) InsertTab() error {
	n := v.geo.TabWidth - v.col%v.geo.TabWidth
	for i := 0; i < n; i++ {
		if err := v.Insert(' '); err != nil {
			return err
		}
	}
	return nil
}

// KillLine deletes from the cursor to the end of the logical line, leaving
// the terminator. On a terminator it deletes just that, joining the next
// line. It returns the removed text.
func (v *View) KillLine() (string, error) {
	c, ok := v.buf.Peek(0)
	if !ok {
		return "", buffer.ErrAtEnd
	}
	var killed []byte
	if c == buffer.EOL {
		v.buf.DeleteAfter()
		killed = append(killed, c)
	} else {
		for {
			c, ok := v.buf.Peek(0)
			if !ok || c == buffer.EOL {
				break
			}
			v.buf.DeleteAfter()
			killed = append(killed, c)
		}
	}
	p := v.painter()
	st := layout.State{Offset: v.buf.Pos(), Row: v.row, Col: v.col}
	v.repaintTail(st, true, -1, p)
	v.place()
	return string(killed), nil
}

// InsertText inserts s byte by byte and repaints once. It stops at the first
// failure and reports how many bytes went in.
func (v *View) InsertText(s string) (int, error) {
	for i := 0; i < len(s); i++ {
		if err := v.buf.Insert(s[i]); err != nil {
			v.Redraw()
			return i, err
		}
	}
	v.Redraw()
	return len(s), nil
}
