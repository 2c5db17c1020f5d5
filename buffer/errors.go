package buffer

import "errors"

// Errors returned by gap buffer operations. None of them leave the buffer
// in a modified state.
var (
	// ErrOutOfSpace indicates the gap is empty and nothing more can be inserted.
	ErrOutOfSpace = errors.New("buffer full")

	// ErrAtStart indicates there is no character before the cursor.
	ErrAtStart = errors.New("at start of buffer")

	// ErrAtEnd indicates there is no character after the cursor.
	ErrAtEnd = errors.New("at end of buffer")

	// ErrInvalidOffset indicates a seek target beyond the end of the text.
	ErrInvalidOffset = errors.New("offset out of range")

	// ErrFileTooLarge indicates loaded content does not fit in the buffer.
	ErrFileTooLarge = errors.New("file too large for buffer")
)
