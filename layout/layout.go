// Package layout computes how a stream of single-byte text wraps onto a
// fixed-width character grid.
//
// Text is laid out left to right; a row ends after a terminator or once it
// holds width characters, whichever comes first. The same walk serves both
// measuring and drawing: a pass with a nil Visitor only computes positions,
// a pass with a Visitor also reports every character and line end it places.
package layout

import "gapedit/buffer"

// Source is read-only, offset-addressed text.
type Source interface {
	Len() int
	At(offset int) byte
}

// Visitor receives the placement of each byte a pass consumes.
type Visitor interface {
	// Char is called for an ordinary character placed at (col, row).
	Char(c byte, row, col int)
	// EndOfLine is called when a terminator is read at (col, row). The rest
	// of the row is empty.
	EndOfLine(row, col int)
}

// State is a position in the text together with the grid cell it maps to.
type State struct {
	Offset int
	Row    int
	Col    int
}

// Step consumes the byte at st.Offset and advances st. It reports whether
// the byte was a terminator.
func Step(src Source, width int, st *State, v Visitor) bool {
	c := src.At(st.Offset)
	st.Offset++
	if c == buffer.EOL {
		if v != nil {
			v.EndOfLine(st.Row, st.Col)
		}
		st.Row++
		st.Col = 0
		return true
	}
	if v != nil {
		v.Char(c, st.Row, st.Col)
	}
	st.Col++
	if st.Col == width {
		st.Row++
		st.Col = 0
	}
	return false
}

// Pass describes one walk over the text.
type Pass struct {
	From State
	// Until is the offset the pass stops before. A negative value means
	// the end of the source.
	Until int
	// Rows stops the pass once this row is reached. Zero means no limit.
	Rows int
	// StopAtEOL ends the pass right after the first terminator.
	StopAtEOL bool
	Visit     Visitor
}

// Span is one row's worth of consumed text.
type Span struct {
	Offset int
	Len    int
}

// Result is where a pass ended.
type Result struct {
	State
	// LastCol is the column the last consumed byte was placed at, or -1
	// when the pass consumed nothing.
	LastCol int
	// EOL is set when the pass stopped because of StopAtEOL.
	EOL bool
	// Spans lists the row segments consumed, in order. The first span
	// starts at From and may begin mid-row; the last may be partial.
	Spans []Span
}

// Run performs p over src laid out at the given width.
func Run(src Source, width int, p Pass) Result {
	until := p.Until
	if until < 0 || until > src.Len() {
		until = src.Len()
	}
	res := Result{State: p.From, LastCol: -1}
	spanStart := p.From.Offset
	for res.Offset < until && (p.Rows == 0 || res.Row < p.Rows) {
		row := res.Row
		res.LastCol = res.Col
		eol := Step(src, width, &res.State, p.Visit)
		if res.Row != row {
			res.Spans = append(res.Spans, Span{Offset: spanStart, Len: res.Offset - spanStart})
			spanStart = res.Offset
		}
		if eol && p.StopAtEOL {
			res.EOL = true
			break
		}
	}
	if res.Offset > spanStart {
		res.Spans = append(res.Spans, Span{Offset: spanStart, Len: res.Offset - spanStart})
	}
	return res
}

// Measure lays out [start, until) from the top-left cell without drawing.
// The returned Row is the number of complete rows before until.
func Measure(src Source, width, start, until int) Result {
	return Run(src, width, Pass{From: State{Offset: start}, Until: until})
}

// Skip consumes exactly rows rows starting at start and returns the
// position of the first byte of the next row.
func Skip(src Source, width, start, rows int) Result {
	if rows <= 0 {
		return Result{State: State{Offset: start}, LastCol: -1}
	}
	return Run(src, width, Pass{From: State{Offset: start}, Until: -1, Rows: rows})
}

// LookbackStart returns where to begin measuring so that everything a
// width×height window around cursor can show is covered. It backs up one
// screenful and then to the start of the logical line it landed in, so rows
// wrap exactly as they would from offset 0.
func LookbackStart(src Source, width, height, cursor int) int {
	start := cursor - width*height
	if start <= 0 {
		return 0
	}
	for start > 0 && src.At(start-1) != buffer.EOL {
		start--
	}
	return start
}
