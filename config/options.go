// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/options.go
// Summary: Typed terminal options, one struct per config section, overridable by flags.

package config

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrInvalidGeometry is returned for a geometry that is not COLSxROWS.
	ErrInvalidGeometry = errors.New("config: invalid geometry")
	// ErrInvalidColor is returned for a color that is not a hex RGB triplet.
	ErrInvalidColor = errors.New("config: invalid color")
	// ErrInvalidValue is returned for an out of range number or unknown choice.
	ErrInvalidValue = errors.New("config: invalid value")
)

// WindowOptions is the "window" section.
type WindowOptions struct {
	Cols, Rows int
	Border     int
	Title      string
}

// Geometry formats the grid size as "COLSxROWS".
func (w WindowOptions) Geometry() string { return fmt.Sprintf("%dx%d", w.Cols, w.Rows) }

func (w *WindowOptions) load(c Config) error {
	var errs []error
	cols, rows, err := ParseGeometry(c.GetString(sectionWindow, "geometry", w.Geometry()))
	if err != nil {
		errs = append(errs, err)
	} else {
		w.Cols, w.Rows = cols, rows
	}
	if border := c.GetInt(sectionWindow, "border", w.Border); border >= 0 {
		w.Border = border
	} else {
		errs = append(errs, fmt.Errorf("%w: border %d", ErrInvalidValue, border))
	}
	w.Title = c.GetString(sectionWindow, "title", w.Title)
	return errors.Join(errs...)
}

func (w WindowOptions) section() Section {
	return Section{"geometry": w.Geometry(), "border": w.Border, "title": w.Title}
}

// FontOptions is the "font" section. The tty host ignores it; it is kept
// for renderers that draw their own glyphs.
type FontOptions struct {
	Name string
	Size int
	Path string
}

func (f *FontOptions) load(c Config) error {
	f.Name = c.GetString(sectionFont, "name", f.Name)
	f.Path = c.GetString(sectionFont, "path", f.Path)
	size := c.GetInt(sectionFont, "size", f.Size)
	if size < 1 {
		return fmt.Errorf("%w: font size %d", ErrInvalidValue, size)
	}
	f.Size = size
	return nil
}

func (f FontOptions) section() Section {
	return Section{"name": f.Name, "size": f.Size, "path": f.Path}
}

// ColorOptions is the "colors" section.
type ColorOptions struct {
	FG, BG       colorful.Color
	BoldAsBright bool
	// Reverse swaps the default foreground and background.
	Reverse bool
}

// Defaults returns the default foreground and background with Reverse applied.
func (p ColorOptions) Defaults() (fg, bg colorful.Color) {
	if p.Reverse {
		return p.BG, p.FG
	}
	return p.FG, p.BG
}

func (p *ColorOptions) load(c Config) error {
	var errs []error
	if fg, err := ParseColor(c.GetString(sectionColors, "fg", hexColor(p.FG))); err != nil {
		errs = append(errs, fmt.Errorf("fg: %w", err))
	} else {
		p.FG = fg
	}
	if bg, err := ParseColor(c.GetString(sectionColors, "bg", hexColor(p.BG))); err != nil {
		errs = append(errs, fmt.Errorf("bg: %w", err))
	} else {
		p.BG = bg
	}
	p.BoldAsBright = c.GetBool(sectionColors, "boldAsBright", p.BoldAsBright)
	p.Reverse = c.GetBool(sectionColors, "rv", p.Reverse)
	return errors.Join(errs...)
}

func (p ColorOptions) section() Section {
	return Section{"fg": hexColor(p.FG), "bg": hexColor(p.BG), "boldAsBright": p.BoldAsBright, "rv": p.Reverse}
}

// InputOptions is the "input" section.
type InputOptions struct {
	AltScroll bool
	// Selection is "primary" or "clipboard".
	Selection        string
	MultiClick       time.Duration
	ClipboardTimeout time.Duration
}

func (in *InputOptions) load(c Config) error {
	var errs []error
	in.AltScroll = c.GetBool(sectionInput, "altScroll", in.AltScroll)
	if sel := c.GetString(sectionInput, "selection", in.Selection); validSelection(sel) {
		in.Selection = sel
	} else {
		errs = append(errs, fmt.Errorf("%w: selection must be primary or clipboard, got %q", ErrInvalidValue, sel))
	}
	in.MultiClick = c.GetDuration(sectionInput, "multiClickMs", in.MultiClick)
	in.ClipboardTimeout = c.GetDuration(sectionInput, "clipboardTimeoutMs", in.ClipboardTimeout)
	return errors.Join(errs...)
}

func (in InputOptions) section() Section {
	return Section{
		"altScroll":          in.AltScroll,
		"selection":          in.Selection,
		"multiClickMs":       millis(in.MultiClick),
		"clipboardTimeoutMs": millis(in.ClipboardTimeout),
	}
}

func validSelection(s string) bool { return s == "primary" || s == "clipboard" }

// EngineOptions is the "engine" section.
type EngineOptions struct {
	Scrollback int
	// SyncTimeout bounds how long synchronized output may defer a frame.
	SyncTimeout time.Duration
	// MaxStringLength bounds OSC and DCS payloads in bytes.
	MaxStringLength int
	// CellWidth and CellHeight are the pixel size of one cell.
	CellWidth, CellHeight int
}

func (e *EngineOptions) load(c Config) error {
	var errs []error
	positive := func(key string, dst *int, min int) {
		v := c.GetInt(sectionEngine, key, *dst)
		if v < min {
			errs = append(errs, fmt.Errorf("%w: %s %d", ErrInvalidValue, key, v))
			return
		}
		*dst = v
	}
	positive("scrollback", &e.Scrollback, 0)
	positive("maxStringLength", &e.MaxStringLength, 1)
	positive("cellWidth", &e.CellWidth, 1)
	positive("cellHeight", &e.CellHeight, 1)
	e.SyncTimeout = c.GetDuration(sectionEngine, "syncTimeoutMs", e.SyncTimeout)
	return errors.Join(errs...)
}

func (e EngineOptions) section() Section {
	return Section{
		"scrollback":      e.Scrollback,
		"syncTimeoutMs":   millis(e.SyncTimeout),
		"maxStringLength": e.MaxStringLength,
		"cellWidth":       e.CellWidth,
		"cellHeight":      e.CellHeight,
	}
}

// ShellOptions is the "shell" section.
type ShellOptions struct {
	// Command is split on spaces; empty means the login shell.
	Command string
}

// Argv returns Command split into arguments, or nil.
func (s ShellOptions) Argv() []string { return strings.Fields(s.Command) }

func (s *ShellOptions) load(c Config) error {
	s.Command = c.GetString(sectionShell, "command", s.Command)
	return nil
}

func (s ShellOptions) section() Section { return Section{"command": s.Command} }

// LoggingOptions is the "logging" section of the system document.
type LoggingOptions struct {
	Quiet   bool
	Verbose bool
}

func (l *LoggingOptions) load(c Config) error {
	l.Quiet = c.GetBool(sectionLogging, "quiet", l.Quiet)
	l.Verbose = c.GetBool(sectionLogging, "verbose", l.Verbose)
	return nil
}

func (l LoggingOptions) section() Section {
	return Section{"quiet": l.Quiet, "verbose": l.Verbose}
}

// Options is the full terminal option set.
type Options struct {
	Window  WindowOptions
	Font    FontOptions
	Colors  ColorOptions
	Input   InputOptions
	Engine  EngineOptions
	Shell   ShellOptions
	Logging LoggingOptions
}

// LoadOptions reads options from the stored system and terminal documents.
func LoadOptions() (Options, error) {
	return OptionsFrom(System(), Terminal())
}

// OptionsFrom builds options from a system and a terminal document. Missing
// keys and invalid values keep their defaults; every invalid value is
// reported in the joined error.
func OptionsFrom(sys, term Config) (Options, error) {
	o := DefaultOptions()
	err := errors.Join(
		o.Window.load(term),
		o.Font.load(term),
		o.Colors.load(term),
		o.Input.load(term),
		o.Engine.load(term),
		o.Shell.load(term),
		o.Logging.load(sys),
	)
	return o, err
}

func (o Options) systemSections() map[string]Section {
	return map[string]Section{sectionLogging: o.Logging.section()}
}

func (o Options) terminalSections() map[string]Section {
	return map[string]Section{
		sectionWindow: o.Window.section(),
		sectionFont:   o.Font.section(),
		sectionColors: o.Colors.section(),
		sectionInput:  o.Input.section(),
		sectionEngine: o.Engine.section(),
		sectionShell:  o.Shell.section(),
	}
}

// ParseGeometry parses "COLSxROWS".
func ParseGeometry(s string) (cols, rows int, err error) {
	c, r, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidGeometry, s)
	}
	cols, errC := strconv.Atoi(c)
	rows, errR := strconv.Atoi(r)
	if errC != nil || errR != nil || cols < 1 || rows < 1 || cols > 65535 || rows > 65535 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidGeometry, s)
	}
	return cols, rows, nil
}

// ParseColor parses a hex RGB color with or without a leading '#'.
func ParseColor(s string) (colorful.Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return c, nil
}

func hexColor(c colorful.Color) string { return strings.TrimPrefix(c.Hex(), "#") }

// RegisterFlags binds command-line flags to o. Current values become the
// flag defaults, so parsed flags override stored settings.
func (o *Options) RegisterFlags(fs *flag.FlagSet) {
	colorFlag := func(name string, dst *colorful.Color, usage string) {
		fs.Func(name, usage+" (default "+hexColor(*dst)+")", func(s string) error {
			c, err := ParseColor(s)
			if err == nil {
				*dst = c
			}
			return err
		})
	}

	fs.Func("geometry", "Terminal size in chars (default "+o.Window.Geometry()+")", func(s string) error {
		cols, rows, err := ParseGeometry(s)
		if err == nil {
			o.Window.Cols, o.Window.Rows = cols, rows
		}
		return err
	})
	fs.IntVar(&o.Window.Border, "border", o.Window.Border, "Border width in pixels")
	fs.StringVar(&o.Window.Title, "title", o.Window.Title, "Window title")

	fs.StringVar(&o.Font.Name, "font", o.Font.Name, "Font to use")
	fs.IntVar(&o.Font.Size, "fontsize", o.Font.Size, "Font size")
	fs.StringVar(&o.Font.Path, "fontpath", o.Font.Path, "Font search path")

	colorFlag("fg", &o.Colors.FG, "Foreground color")
	colorFlag("bg", &o.Colors.BG, "Background color")
	fs.BoolVar(&o.Colors.BoldAsBright, "boldAsBright", o.Colors.BoldAsBright, "Display bold text in bright colors")
	fs.BoolVar(&o.Colors.Reverse, "rv", o.Colors.Reverse, "Reverse video")

	fs.BoolVar(&o.Input.AltScroll, "altScroll", o.Input.AltScroll, "Alternate scroll mode")
	fs.Func("selection", "Selection target: primary or clipboard (default "+o.Input.Selection+")", func(s string) error {
		if !validSelection(s) {
			return fmt.Errorf("must be primary or clipboard")
		}
		o.Input.Selection = s
		return nil
	})
	fs.DurationVar(&o.Input.MultiClick, "multiClick", o.Input.MultiClick, "Multi-click window")
	fs.DurationVar(&o.Input.ClipboardTimeout, "clipboardTimeout", o.Input.ClipboardTimeout, "Clipboard request timeout")

	fs.IntVar(&o.Engine.Scrollback, "scrollback", o.Engine.Scrollback, "Scrollback lines")
	fs.DurationVar(&o.Engine.SyncTimeout, "syncTimeout", o.Engine.SyncTimeout, "Longest synchronized output may hold a frame")
	fs.IntVar(&o.Engine.MaxStringLength, "maxStringLength", o.Engine.MaxStringLength, "OSC and DCS payload limit in bytes")
	fs.IntVar(&o.Engine.CellWidth, "cellWidth", o.Engine.CellWidth, "Cell width in pixels")
	fs.IntVar(&o.Engine.CellHeight, "cellHeight", o.Engine.CellHeight, "Cell height in pixels")

	fs.StringVar(&o.Shell.Command, "shell", o.Shell.Command, "Shell program to run")

	fs.BoolVar(&o.Logging.Quiet, "quiet", o.Logging.Quiet, "Silence logging output")
	fs.BoolVar(&o.Logging.Verbose, "verbose", o.Logging.Verbose, "Output debug messages")
}
