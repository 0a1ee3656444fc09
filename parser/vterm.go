// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/vterm.go
// Summary: VTerm holds the grid and cursor model driven by the Parser.
// Usage: Created per session; mutated only from the session goroutine.
// Notes: Callbacks are plain function fields injected with Options.

package parser

import "github.com/mattn/go-runewidth"

// ScreenID selects one of the two grids.
type ScreenID int

const (
	ScreenPrimary ScreenID = iota
	ScreenAlternate
)

// DefaultScrollback is the number of history lines kept by the primary screen.
const DefaultScrollback = 1000

// Pen is the SGR state applied to newly printed cells.
type Pen struct {
	FG   Color
	BG   Color
	Attr Attribute
}

// Cursor is the cursor position and presentation. Row and Col are 0-based
// and always inside the grid.
type Cursor struct {
	Row, Col int
	Visible  bool
	// Style is the DECSCUSR shape (0 means the renderer default).
	Style int
}

type savedCursor struct {
	row, col    int
	pen         Pen
	originMode  bool
	autoWrap    bool
	pendingWrap bool
	charsets    [2]charset
	gl          int
	valid       bool
}

// VTerm is the grid and cursor model of one terminal.
type VTerm struct {
	cols, rows int

	screens [2]*Grid
	active  ScreenID
	saved   [2]savedCursor

	cursor      Cursor
	pendingWrap bool
	pen         Pen

	marginTop, marginBottom int
	tabStops                []bool

	modes    Modes
	charsets [2]charset
	gl       int

	lastPrinted rune
	title       string
	iconName    string
	version     uint64
	scrollback  int
	altScroll   bool
	width       *runewidth.Condition

	// WriteToPty receives device replies (DSR, DA, DECRQM).
	WriteToPty func([]byte)
	// TitleChanged is called on OSC 0 and 2.
	TitleChanged func(string)
	// OnBell is called on BEL in the ground state.
	OnBell func()
	// OnScreenSwitch is called after the active grid changes or is reset.
	OnScreenSwitch func(ScreenID)
	// OnOSC receives every complete OSC string after internal handling.
	OnOSC func(command int, payload string)
	// OnDCS receives complete DCS strings.
	OnDCS func(data []byte)
}

// Option configures a VTerm.
type Option func(*VTerm)

// WithPtyWriter sets the sink for device replies.
func WithPtyWriter(writer func([]byte)) Option {
	return func(v *VTerm) { v.WriteToPty = writer }
}

// WithTitleChangeHandler sets the window title callback.
func WithTitleChangeHandler(handler func(string)) Option {
	return func(v *VTerm) { v.TitleChanged = handler }
}

// WithBellHandler sets the bell callback.
func WithBellHandler(handler func()) Option {
	return func(v *VTerm) { v.OnBell = handler }
}

// WithScreenSwitchHandler sets the callback run when the active grid changes.
func WithScreenSwitchHandler(handler func(ScreenID)) Option {
	return func(v *VTerm) { v.OnScreenSwitch = handler }
}

// WithOSCHandler sets the callback for OSC strings.
func WithOSCHandler(handler func(command int, payload string)) Option {
	return func(v *VTerm) { v.OnOSC = handler }
}

// WithDCSHandler sets the callback for DCS strings.
func WithDCSHandler(handler func(data []byte)) Option {
	return func(v *VTerm) { v.OnDCS = handler }
}

// WithScrollback sets the primary screen history capacity.
func WithScrollback(lines int) Option {
	return func(v *VTerm) { v.scrollback = lines }
}

// WithAltScroll makes mode 1007 (wheel as cursor keys on the alternate
// screen) on by default, including after a reset.
func WithAltScroll(on bool) Option {
	return func(v *VTerm) { v.altScroll = on }
}

// NewVTerm creates a cols x rows terminal. Sizes below 1 are raised to 1.
func NewVTerm(cols, rows int, opts ...Option) *VTerm {
	v := &VTerm{
		scrollback: DefaultScrollback,
		width:      &runewidth.Condition{EastAsianWidth: false},
	}
	for _, opt := range opts {
		opt(v)
	}
	v.cols, v.rows = max(cols, 1), max(rows, 1)
	v.screens[ScreenPrimary] = NewGrid(v.cols, v.rows, v.scrollback)
	v.screens[ScreenAlternate] = NewGrid(v.cols, v.rows, 0)
	v.resetState()
	return v
}

// resetState restores modes, margins, tabs, pen and cursor to power-on values.
func (v *VTerm) resetState() {
	v.modes = defaultModes()
	v.modes.AltScroll = v.altScroll
	v.marginTop, v.marginBottom = 0, v.rows-1
	v.resetTabStops(0)
	v.pen = Pen{FG: DefaultFG, BG: DefaultBG}
	v.cursor = Cursor{Visible: true}
	v.pendingWrap = false
	v.charsets = [2]charset{charsetASCII, charsetASCII}
	v.gl = 0
	v.saved = [2]savedCursor{}
	v.lastPrinted = 0
}

// Reset performs RIS: both grids are cleared, history is dropped and the
// primary screen becomes active.
func (v *VTerm) Reset() {
	for _, g := range v.screens {
		g.Fill(BlankCell)
		g.History().Clear()
	}
	switched := v.active != ScreenPrimary
	v.active = ScreenPrimary
	v.resetState()
	v.MarkDirty()
	if switched && v.OnScreenSwitch != nil {
		v.OnScreenSwitch(v.active)
	}
}

// Grid returns the active grid.
func (v *VTerm) Grid() *Grid { return v.screens[v.active] }

// ActiveScreen reports which grid is active.
func (v *VTerm) ActiveScreen() ScreenID { return v.active }

// Size returns the terminal dimensions in cells.
func (v *VTerm) Size() (cols, rows int) { return v.cols, v.rows }

// Cursor returns the cursor state.
func (v *VTerm) Cursor() Cursor { return v.cursor }

// PendingWrap reports whether the next printable character wraps first.
func (v *VTerm) PendingWrap() bool { return v.pendingWrap }

// Pen returns the current SGR state.
func (v *VTerm) Pen() Pen { return v.pen }

// Modes returns a copy of the mode set.
func (v *VTerm) Modes() Modes { return v.modes }

// Title returns the last title set by OSC 0 or 2.
func (v *VTerm) Title() string { return v.title }

// IconName returns the last icon name set by OSC 0 or 1.
func (v *VTerm) IconName() string { return v.iconName }

// Margins returns the scroll region, 0-based and inclusive.
func (v *VTerm) Margins() (top, bottom int) { return v.marginTop, v.marginBottom }

// CellAt returns the visible cell at (row, col).
func (v *VTerm) CellAt(row, col int) Cell { return v.Grid().Cell(row, col) }

// RowWrapped reports whether a visible row soft-wraps into the next.
func (v *VTerm) RowWrapped(row int) bool {
	if row < 0 || row >= v.rows {
		return false
	}
	return v.Grid().Line(row).Wrapped
}

// eraseCell is the blank written by erase operations: default foreground,
// current background.
func (v *VTerm) eraseCell() Cell {
	return Cell{Rune: ' ', FG: DefaultFG, BG: v.pen.BG}
}

func (v *VTerm) reply(s string) {
	if v.WriteToPty != nil {
		v.WriteToPty([]byte(s))
	}
}
