package buffer

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadNormalizesLineEndings(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   string
		ending LineEnding
	}{
		{"unix", "ab\ncd\n", "ab\rcd\r", LF},
		{"dos", "ab\r\ncd\r\n", "ab\rcd\r", CRLF},
		{"classic", "ab\rcd\r", "ab\rcd\r", CR},
		{"none", "abc", "abc", LF},
		{"empty lines", "\n\n", "\r\r", LF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(64)
			ending, err := Load(strings.NewReader(tt.in), g, LoadOptions{})
			if err != nil {
				t.Fatalf("load failed: %v", err)
			}
			if got := g.String(); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
			if ending != tt.ending {
				t.Fatalf("expected ending %s, got %s", tt.ending, ending)
			}
			if g.Pos() != 0 {
				t.Fatalf("expected cursor at 0 after load, got %d", g.Pos())
			}
		})
	}
}

func TestLoadExpandsTabs(t *testing.T) {
	g := New(64)
	if _, err := Load(strings.NewReader("\tx\nab\tc\n"), g, LoadOptions{TabWidth: 4}); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	want := "    x\rab  c\r"
	if got := g.String(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestLoadTooLarge(t *testing.T) {
	g := New(8)
	_, err := Load(strings.NewReader("0123456789"), g, LoadOptions{})
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
	if g.Len() != 0 {
		t.Fatalf("expected buffer emptied after failed load, got %q", g.String())
	}

	g = New(16)
	_, err = Load(strings.NewReader("0123456789"), g, LoadOptions{Headroom: 8})
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected headroom to reject the file, got %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	for _, ending := range []LineEnding{LF, CRLF, CR} {
		text := strings.ReplaceAll("first line\n\nthird\nlast", "\n", string(ending.Bytes()))
		g := New(128)
		if _, err := Load(strings.NewReader(text), g, LoadOptions{}); err != nil {
			t.Fatalf("load failed: %v", err)
		}
		g.Seek(5)

		var out bytes.Buffer
		if err := Save(&out, g, ending); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		if out.String() != text {
			t.Fatalf("%s: expected %q, got %q", ending, text, out.String())
		}
		if g.Pos() != 5 {
			t.Fatalf("save must restore the cursor, got %d", g.Pos())
		}
	}
}

func TestSaveConvertsEnding(t *testing.T) {
	g := NewFromString("a\rb\r", 16)
	var out bytes.Buffer
	if err := Save(&out, g, CRLF); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if out.String() != "a\r\nb\r\n" {
		t.Fatalf("expected CRLF output, got %q", out.String())
	}
}

func TestLoadFileAndSaveFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("hello\nworld\n"), 0600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	g := New(DefaultCapacity)
	ending, err := LoadFile(path, g, LoadOptions{})
	if err != nil {
		t.Fatalf("load file failed: %v", err)
	}
	g.Seek(5)
	g.Insert('!')

	if err := SaveFile(path, g, ending); err != nil {
		t.Fatalf("save file failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if string(data) != "hello!\nworld\n" {
		t.Fatalf("unexpected file content %q", data)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Fatalf("expected mode 0600 to be kept, got %v", info.Mode().Perm())
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.txt"), g, LoadOptions{}); !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestParseLineEnding(t *testing.T) {
	if le, err := ParseLineEnding("crlf", LF); err != nil || le != CRLF {
		t.Fatalf("expected CRLF, got %s err=%v", le, err)
	}
	if le, err := ParseLineEnding("", CR); err != nil || le != CR {
		t.Fatalf("expected default CR, got %s err=%v", le, err)
	}
	if _, err := ParseLineEnding("nl", LF); err == nil {
		t.Fatalf("expected error for unknown ending")
	}
}
