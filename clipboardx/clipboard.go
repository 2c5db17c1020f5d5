// Package clipboardx holds killed text and mirrors it to the system
// clipboard when one is reachable.
package clipboardx

import (
	"encoding/base64"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
)

type command struct {
	name string
	args []string
}

var (
	copyCommands = []command{
		{name: "wl-copy"},
		{name: "xclip", args: []string{"-selection", "clipboard"}},
		{name: "xsel", args: []string{"--clipboard", "--input"}},
		{name: "pbcopy"},
		{name: "clip.exe"},
	}
	pasteCommands = []command{
		{name: "wl-paste", args: []string{"--no-newline"}},
		{name: "xclip", args: []string{"-o", "-selection", "clipboard"}},
		{name: "xsel", args: []string{"--clipboard", "--output"}},
		{name: "pbpaste"},
	}
)

// Clipboard is the kill buffer. The in-memory copy always works; the system
// clipboard is best effort.
type Clipboard struct {
	mu     sync.Mutex
	text   string
	system bool
}

// New creates a Clipboard. With system unset nothing leaves the process.
func New(system bool) *Clipboard {
	return &Clipboard{system: system}
}

// Copy replaces the kill buffer with text. It reports whether a system
// clipboard accepted it too.
func (c *Clipboard) Copy(text string) bool {
	c.mu.Lock()
	c.text = text
	c.mu.Unlock()
	if !c.system {
		return false
	}
	ok := false
	if !clipboard.Unsupported {
		if err := clipboard.WriteAll(text); err == nil {
			ok = true
		}
	}
	if !ok {
		ok = runCopyCommand(text)
	}
	if !ok {
		ok = writeOSC52(text)
	}
	return ok
}

// Append adds text to the end of the kill buffer, so consecutive kills
// yank back as one piece.
func (c *Clipboard) Append(text string) bool {
	c.mu.Lock()
	joined := c.text + text
	c.mu.Unlock()
	return c.Copy(joined)
}

// Paste returns the system clipboard when it has text, else the kill buffer.
func (c *Clipboard) Paste() string {
	if c.system {
		if !clipboard.Unsupported {
			if text, err := clipboard.ReadAll(); err == nil && text != "" {
				return text
			}
		}
		if text, ok := runPasteCommand(); ok {
			return text
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

func runCopyCommand(text string) bool {
	for _, cmd := range copyCommands {
		if _, err := exec.LookPath(cmd.name); err != nil {
			continue
		}
		run := exec.Command(cmd.name, cmd.args...)
		run.Stdin = strings.NewReader(text)
		if err := run.Run(); err == nil {
			return true
		}
	}
	return false
}

func runPasteCommand() (string, bool) {
	for _, cmd := range pasteCommands {
		if _, err := exec.LookPath(cmd.name); err != nil {
			continue
		}
		out, err := exec.Command(cmd.name, cmd.args...).Output()
		if err == nil && len(out) > 0 {
			return string(out), true
		}
	}
	return "", false
}

// writeOSC52 asks the terminal itself to set the clipboard.
func writeOSC52(text string) bool {
	if text == "" {
		return false
	}
	if fi, err := os.Stdout.Stat(); err != nil || fi.Mode()&os.ModeCharDevice == 0 {
		return false
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	_, err := fmt.Fprintf(os.Stdout, "\x1b]52;c;%s\x07", encoded)
	return err == nil
}
