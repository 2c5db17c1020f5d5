package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gapedit/buffer"
)

// FileSettings are the per-file overrides found in .editorconfig files.
// Zero values mean unset.
type FileSettings struct {
	TabWidth  int
	EndOfLine buffer.LineEnding
}

// Apply copies the overrides that are set onto cfg.
func (s *FileSettings) Apply(cfg *Config) {
	if s == nil {
		return
	}
	if s.TabWidth > 0 {
		cfg.TabWidth = s.TabWidth
	}
	if s.EndOfLine != "" {
		cfg.LineEnding = strings.ToLower(string(s.EndOfLine))
	}
}

// FindEditorConfig walks from the file's directory up to the filesystem root
// or a root = true file, and merges the sections matching the file name.
// Closer files win. It returns nil when nothing applies.
func FindEditorConfig(filePath string) *FileSettings {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil
	}
	name := filepath.Base(absPath)

	var layers []map[string]string
	for dir := filepath.Dir(absPath); ; {
		props, root := readEditorConfig(filepath.Join(dir, ".editorconfig"), name)
		if props != nil {
			layers = append(layers, props)
		}
		if root {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	merged := make(map[string]string)
	for i := len(layers) - 1; i >= 0; i-- {
		for k, v := range layers[i] {
			merged[k] = v
		}
	}
	return settingsFrom(merged)
}

// readEditorConfig returns the properties of the sections in path that match
// name, and whether the file declares itself the root.
func readEditorConfig(path, name string) (map[string]string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false
	}
	defer f.Close()

	var props map[string]string
	root := false
	section := ""
	matching := false

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = line[1 : len(line)-1]
			matching = globMatch(section, name)
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.ToLower(strings.TrimSpace(value))
		switch {
		case section == "" && key == "root":
			root = value == "true"
		case matching:
			if props == nil {
				props = make(map[string]string)
			}
			props[key] = value
		}
	}
	return props, root
}

// globMatch matches name against an editorconfig section pattern, expanding
// {a,b} alternatives.
func globMatch(pattern, name string) bool {
	for _, p := range expandBraces(pattern) {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}

func expandBraces(pattern string) []string {
	open := strings.IndexByte(pattern, '{')
	if open < 0 {
		return []string{pattern}
	}
	closing := strings.IndexByte(pattern[open:], '}')
	if closing < 0 {
		return []string{pattern}
	}
	closing += open
	var out []string
	for _, alt := range strings.Split(pattern[open+1:closing], ",") {
		out = append(out, expandBraces(pattern[:open]+alt+pattern[closing+1:])...)
	}
	return out
}

func settingsFrom(m map[string]string) *FileSettings {
	s := &FileSettings{}
	// tab_width wins over indent_size, which editorconfig defines as its
	// fallback.
	for _, key := range []string{"indent_size", "tab_width"} {
		if n, err := strconv.Atoi(m[key]); err == nil && n > 0 {
			s.TabWidth = n
		}
	}
	if le, err := buffer.ParseLineEnding(m["end_of_line"], ""); err == nil {
		s.EndOfLine = le
	}
	if s.TabWidth == 0 && s.EndOfLine == "" {
		return nil
	}
	return s
}
