package buffer

// EOL is the sentinel that ends a logical line. A line holding only EOL is
// an empty line.
const EOL byte = '\r'

// DefaultCapacity is the number of bytes a buffer holds unless told otherwise.
const DefaultCapacity = 20000

// GapBuffer is a fixed-capacity byte store with a single gap at the cursor.
// Bytes in [0, gapStart) precede the cursor and bytes in (gapEnd, cap)
// follow it. The gap itself is [gapStart, gapEnd], inclusive, and is empty
// when gapStart == gapEnd+1.
type GapBuffer struct {
	data     []byte
	gapStart int
	gapEnd   int
}

// New returns an empty buffer able to hold capacity bytes.
func New(capacity int) *GapBuffer {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &GapBuffer{
		data:   make([]byte, capacity),
		gapEnd: capacity - 1,
	}
}

// NewFromString returns a buffer holding s with the cursor at offset 0.
// Bytes that do not fit are dropped.
func NewFromString(s string, capacity int) *GapBuffer {
	g := New(capacity)
	for i := 0; i < len(s); i++ {
		if g.Insert(s[i]) != nil {
			break
		}
	}
	g.Seek(0)
	return g
}

// Cap returns the total number of slots.
func (g *GapBuffer) Cap() int { return len(g.data) }

// Free returns the number of empty slots in the gap.
func (g *GapBuffer) Free() int { return g.gapEnd - g.gapStart + 1 }

// Len returns the number of bytes of text.
func (g *GapBuffer) Len() int { return len(g.data) - g.Free() }

// Pos returns the cursor offset, which is where the next insert lands.
func (g *GapBuffer) Pos() int { return g.gapStart }

// Reset discards all text.
func (g *GapBuffer) Reset() {
	g.gapStart = 0
	g.gapEnd = len(g.data) - 1
}

// Insert writes c at the cursor and advances past it.
func (g *GapBuffer) Insert(c byte) error {
	if g.gapStart > g.gapEnd {
		return ErrOutOfSpace
	}
	g.data[g.gapStart] = c
	g.gapStart++
	return nil
}

// DeleteBefore removes the byte left of the cursor and returns it.
func (g *GapBuffer) DeleteBefore() (byte, error) {
	if g.gapStart == 0 {
		return 0, ErrAtStart
	}
	g.gapStart--
	return g.data[g.gapStart], nil
}

// DeleteAfter removes the byte right of the cursor and returns it.
func (g *GapBuffer) DeleteAfter() (byte, error) {
	if g.gapEnd == len(g.data)-1 {
		return 0, ErrAtEnd
	}
	g.gapEnd++
	return g.data[g.gapEnd], nil
}

// Next returns the byte right of the cursor and moves the cursor past it by
// copying the byte across the gap.
func (g *GapBuffer) Next() (byte, error) {
	if g.gapEnd == len(g.data)-1 {
		return 0, ErrAtEnd
	}
	g.gapEnd++
	c := g.data[g.gapEnd]
	g.data[g.gapStart] = c
	g.gapStart++
	return c, nil
}

// Prev moves the cursor one byte to the left and returns the byte it
// stepped over.
func (g *GapBuffer) Prev() (byte, error) {
	if g.gapStart == 0 {
		return 0, ErrAtStart
	}
	g.gapStart--
	c := g.data[g.gapStart]
	g.data[g.gapEnd] = c
	g.gapEnd--
	return c, nil
}

// Seek moves the cursor to offset one byte at a time.
func (g *GapBuffer) Seek(offset int) error {
	if offset < 0 || offset > g.Len() {
		return ErrInvalidOffset
	}
	for g.gapStart < offset {
		g.Next()
	}
	for g.gapStart > offset {
		g.Prev()
	}
	return nil
}

// At returns the byte at a logical offset, or 0 when offset is outside the text.
func (g *GapBuffer) At(offset int) byte {
	if offset < 0 || offset >= g.Len() {
		return 0
	}
	if offset < g.gapStart {
		return g.data[offset]
	}
	return g.data[offset+g.Free()]
}

// Peek returns the byte delta positions from the cursor without moving it.
// Peek(0) is the byte right of the cursor and Peek(-1) the byte left of it.
func (g *GapBuffer) Peek(delta int) (byte, bool) {
	offset := g.gapStart + delta
	if offset < 0 || offset >= g.Len() {
		return 0, false
	}
	return g.At(offset), true
}

// String returns the text with the gap removed.
func (g *GapBuffer) String() string {
	out := make([]byte, 0, g.Len())
	out = append(out, g.data[:g.gapStart]...)
	out = append(out, g.data[g.gapEnd+1:]...)
	return string(out)
}
