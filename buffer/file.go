package buffer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LineEnding is the on-disk convention EOL is translated to and from.
type LineEnding string

const (
	LF   LineEnding = "LF"
	CRLF LineEnding = "CRLF"
	CR   LineEnding = "CR"
)

// ParseLineEnding accepts LF, CRLF or CR in any case. An empty string
// yields def.
func ParseLineEnding(s string, def LineEnding) (LineEnding, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return def, nil
	case "LF":
		return LF, nil
	case "CRLF":
		return CRLF, nil
	case "CR":
		return CR, nil
	}
	return def, fmt.Errorf("unknown line ending %q", s)
}

// Bytes returns the byte sequence written for one EOL.
func (le LineEnding) Bytes() []byte {
	switch le {
	case CRLF:
		return []byte{'\r', '\n'}
	case CR:
		return []byte{'\r'}
	default:
		return []byte{'\n'}
	}
}

// DefaultTabWidth is the tab stop interval used when loading text.
const DefaultTabWidth = 8

// LoadOptions controls how external text is normalized on the way in.
type LoadOptions struct {
	TabWidth int
	// Headroom is the number of free slots that must remain after loading,
	// so a freshly opened file can still be edited.
	Headroom int
}

// Load replaces the contents of g with text read from r. Every line ending
// convention becomes EOL and tabs are expanded to spaces up to the next tab
// stop. It returns the first line ending seen, LF when the text has none.
// On failure g is left empty.
func Load(r io.Reader, g *GapBuffer, opts LoadOptions) (LineEnding, error) {
	tabWidth := opts.TabWidth
	if tabWidth < 1 {
		tabWidth = DefaultTabWidth
	}
	g.Reset()

	var ending LineEnding
	br := bufio.NewReader(r)
	col := 0
	put := func(c byte) error {
		if err := g.Insert(c); err != nil {
			return fmt.Errorf("%w: %v", ErrFileTooLarge, err)
		}
		if g.Free() < opts.Headroom {
			return fmt.Errorf("%w: less than %d bytes would remain free", ErrFileTooLarge, opts.Headroom)
		}
		return nil
	}

	for {
		c, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			g.Reset()
			return LF, err
		}
		switch c {
		case '\r':
			if next, err := br.Peek(1); err == nil && next[0] == '\n' {
				br.ReadByte()
				if ending == "" {
					ending = CRLF
				}
			} else if ending == "" {
				ending = CR
			}
			col = 0
			err = put(EOL)
		case '\n':
			if ending == "" {
				ending = LF
			}
			col = 0
			err = put(EOL)
		case '\t':
			n := tabWidth - col%tabWidth
			for i := 0; i < n && err == nil; i++ {
				err = put(' ')
			}
			col += n
		default:
			col++
			err = put(c)
		}
		if err != nil {
			g.Reset()
			return LF, err
		}
	}

	if ending == "" {
		ending = LF
	}
	g.Seek(0)
	return ending, nil
}

// Save writes the text of g to w, translating EOL to ending. The walk goes
// through Seek and Next; the cursor is put back where it was afterwards.
func Save(w io.Writer, g *GapBuffer, ending LineEnding) error {
	pos := g.Pos()
	defer g.Seek(pos)

	if err := g.Seek(0); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	eol := ending.Bytes()
	for {
		c, err := g.Next()
		if errors.Is(err, ErrAtEnd) {
			break
		}
		if c == EOL {
			_, err = bw.Write(eol)
		} else {
			err = bw.WriteByte(c)
		}
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

// LoadFile opens path and loads it into g.
func LoadFile(path string, g *GapBuffer, opts LoadOptions) (LineEnding, error) {
	info, err := os.Stat(path)
	if err != nil {
		return LF, err
	}
	if info.IsDir() {
		return LF, fmt.Errorf("%s is a directory", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return LF, err
	}
	defer f.Close()

	ending, err := Load(f, g, opts)
	if err != nil {
		return ending, fmt.Errorf("loading %s: %w", path, err)
	}
	return ending, nil
}

// SaveFile writes g to path through a temporary file in the same directory,
// so a failed write never truncates the original.
func SaveFile(path string, g *GapBuffer, ending LineEnding) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if err := Save(tmp, g, ending); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("saving %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	os.Chmod(tmpName, mode)
	return os.Rename(tmpName, path)
}
