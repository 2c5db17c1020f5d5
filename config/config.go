package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"gapedit/buffer"
)

type Config struct {
	// Width and Height size the text grid. Zero follows the terminal, less
	// the status row.
	Width     int `json:"width" yaml:"width" toml:"width"`
	Height    int `json:"height" yaml:"height" toml:"height"`
	CursorRow int `json:"cursor_row" yaml:"cursor_row" toml:"cursor_row"`
	PageSize  int `json:"page_size" yaml:"page_size" toml:"page_size"`
	TabWidth  int `json:"tab_width" yaml:"tab_width" toml:"tab_width"`

	Capacity     int `json:"capacity" yaml:"capacity" toml:"capacity"`
	LoadHeadroom int `json:"load_headroom" yaml:"load_headroom" toml:"load_headroom"`
	// LineEnding is used for new files: "lf", "crlf" or "cr".
	LineEnding string `json:"line_ending" yaml:"line_ending" toml:"line_ending"`
	// Passthrough lists byte values outside printable ASCII that may be typed.
	Passthrough []int `json:"passthrough" yaml:"passthrough" toml:"passthrough"`
	// BackupEvery is the number of edits between backups. Zero disables them.
	BackupEvery int    `json:"backup_every" yaml:"backup_every" toml:"backup_every"`
	Theme       string `json:"theme" yaml:"theme" toml:"theme"`
}

// ParseError reports a config file that could not be decoded.
type ParseError struct {
	Path   string
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %v", e.Path, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

var ErrUnknownFormat = errors.New("unknown config format")

type ColorScheme struct {
	Name        string
	Background  tcell.Color
	Foreground  tcell.Color
	StatusBarBg tcell.Color
	StatusBarFg tcell.Color
	MessageFg   tcell.Color
	PromptBg    tcell.Color
}

// Text is the style of the editing grid.
func (s *ColorScheme) Text() tcell.Style {
	return tcell.StyleDefault.Background(s.Background).Foreground(s.Foreground)
}

// Status is the style of the status row.
func (s *ColorScheme) Status() tcell.Style {
	return tcell.StyleDefault.Background(s.StatusBarBg).Foreground(s.StatusBarFg)
}

var Themes = map[string]*ColorScheme{
	"plain": {
		Name:        "Plain",
		Background:  tcell.ColorDefault,
		Foreground:  tcell.ColorDefault,
		StatusBarBg: tcell.ColorSilver,
		StatusBarFg: tcell.ColorBlack,
		MessageFg:   tcell.ColorMaroon,
		PromptBg:    tcell.ColorSilver,
	},
	"dark": {
		Name:        "Dark",
		Background:  tcell.ColorBlack,
		Foreground:  tcell.ColorWhite,
		StatusBarBg: tcell.ColorDarkBlue,
		StatusBarFg: tcell.ColorWhite,
		MessageFg:   tcell.ColorYellow,
		PromptBg:    tcell.ColorBlue,
	},
	"light": {
		Name:        "Light",
		Background:  tcell.ColorWhite,
		Foreground:  tcell.ColorBlack,
		StatusBarBg: tcell.ColorLightBlue,
		StatusBarFg: tcell.ColorBlack,
		MessageFg:   tcell.ColorDarkRed,
		PromptBg:    tcell.ColorLightGray,
	},
	"monokai": {
		Name:        "Monokai",
		Background:  tcell.NewRGBColor(39, 40, 34),
		Foreground:  tcell.NewRGBColor(248, 248, 242),
		StatusBarBg: tcell.NewRGBColor(73, 72, 62),
		StatusBarFg: tcell.NewRGBColor(248, 248, 242),
		MessageFg:   tcell.NewRGBColor(230, 219, 116),
		PromptBg:    tcell.NewRGBColor(102, 217, 239),
	},
	"nord": {
		Name:        "Nord",
		Background:  tcell.NewRGBColor(46, 52, 64),
		Foreground:  tcell.NewRGBColor(236, 239, 244),
		StatusBarBg: tcell.NewRGBColor(67, 76, 94),
		StatusBarFg: tcell.NewRGBColor(236, 239, 244),
		MessageFg:   tcell.NewRGBColor(235, 203, 139),
		PromptBg:    tcell.NewRGBColor(136, 192, 208),
	},
	"gruvbox": {
		Name:        "Gruvbox Dark",
		Background:  tcell.NewRGBColor(40, 40, 40),
		Foreground:  tcell.NewRGBColor(235, 219, 178),
		StatusBarBg: tcell.NewRGBColor(60, 56, 54),
		StatusBarFg: tcell.NewRGBColor(235, 219, 178),
		MessageFg:   tcell.NewRGBColor(250, 189, 47),
		PromptBg:    tcell.NewRGBColor(184, 187, 38),
	},
}

func Default() *Config {
	return &Config{
		CursorRow:    10,
		PageSize:     15,
		TabWidth:     buffer.DefaultTabWidth,
		Capacity:     buffer.DefaultCapacity,
		LoadHeadroom: 1000,
		LineEnding:   "lf",
		BackupEvery:  50,
		Theme:        "plain",
	}
}

func (c *Config) GetTheme() *ColorScheme {
	theme, ok := Themes[c.Theme]
	if !ok {
		return Themes["plain"]
	}
	return theme
}

// PassthroughBytes returns the extra typeable bytes, dropping values that do
// not fit in a byte or would collide with the line terminator.
func (c *Config) PassthroughBytes() []byte {
	var out []byte
	for _, v := range c.Passthrough {
		if v <= 0 || v > 0xff || byte(v) == buffer.EOL {
			continue
		}
		out = append(out, byte(v))
	}
	return out
}

// Validate resets out-of-range values to their defaults and reports the
// settings it could not make sense of.
func (c *Config) Validate() error {
	def := Default()
	var errs []error
	if c.Width < 0 {
		c.Width = 0
	}
	if c.Height < 0 {
		c.Height = 0
	}
	if c.CursorRow < 1 {
		c.CursorRow = def.CursorRow
	}
	if c.PageSize < 1 {
		c.PageSize = def.PageSize
	}
	if c.TabWidth < 1 {
		c.TabWidth = def.TabWidth
	}
	if c.Capacity < 1 {
		c.Capacity = def.Capacity
	}
	if c.LoadHeadroom < 0 || c.LoadHeadroom >= c.Capacity {
		c.LoadHeadroom = min(def.LoadHeadroom, c.Capacity/2)
	}
	if c.BackupEvery < 0 {
		c.BackupEvery = 0
	}
	if _, err := buffer.ParseLineEnding(c.LineEnding, buffer.LF); err != nil {
		errs = append(errs, err)
		c.LineEnding = def.LineEnding
	}
	if _, ok := Themes[c.Theme]; !ok {
		errs = append(errs, fmt.Errorf("unknown theme %q", c.Theme))
		c.Theme = def.Theme
	}
	return errors.Join(errs...)
}

func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gapedit", "settings.json")
}

// Load reads the settings file in the user's config directory. A missing
// file yields the defaults.
func Load() (*Config, error) {
	cfg, err := LoadFile(ConfigPath())
	if os.IsNotExist(err) {
		return Default(), nil
	}
	return cfg, err
}

// LoadFile reads settings from path, choosing the decoder by extension:
// .json, .yaml, .yml or .toml. Fields absent from the file keep their
// defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			perr := &ParseError{Path: path, Err: err}
			var syn *json.SyntaxError
			if errors.As(err, &syn) {
				perr.Line, perr.Column = position(data, int(syn.Offset))
			}
			return nil, perr
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, &ParseError{Path: path, Err: err}
		}
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			perr := &ParseError{Path: path, Err: err}
			var derr *toml.DecodeError
			if errors.As(err, &derr) {
				perr.Line, perr.Column = derr.Position()
			}
			return nil, perr
		}
	default:
		return nil, fmt.Errorf("%s: %w %q", path, ErrUnknownFormat, ext)
	}
	return cfg, nil
}

// position converts a byte offset into a 1-based line and column.
func position(data []byte, offset int) (line, col int) {
	line, col = 1, 1
	for i := 0; i < offset && i < len(data); i++ {
		if data[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

func (c *Config) Save() error {
	path := ConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
