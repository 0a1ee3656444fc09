// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/vterm_modes.go
// Summary: ANSI and DEC private mode handling, alternate screen switching.
// Usage: Part of VTerm terminal emulator.

package parser

import "fmt"

// MouseMode selects which pointer events are reported to the child.
type MouseMode int

const (
	MouseOff MouseMode = iota
	MouseX10
	MouseNormal
	MouseButtonMotion
	MouseAnyMotion
)

func (m MouseMode) String() string {
	switch m {
	case MouseOff:
		return "off"
	case MouseX10:
		return "x10"
	case MouseNormal:
		return "normal"
	case MouseButtonMotion:
		return "button-motion"
	case MouseAnyMotion:
		return "any-motion"
	}
	return fmt.Sprintf("MouseMode(%d)", int(m))
}

// Modes is the set of independent terminal modes.
type Modes struct {
	Origin         bool
	AutoWrap       bool
	Insert         bool
	LineFeedNL     bool
	AppKeypad      bool
	AppCursorKeys  bool
	BracketedPaste bool
	Mouse          MouseMode
	MouseSGR       bool
	FocusReporting bool
	AltScroll      bool
	ReverseVideo   bool
	SyncOutput     bool
}

// AltScreen reports whether the alternate grid is active.
func (v *VTerm) AltScreen() bool { return v.active == ScreenAlternate }

func defaultModes() Modes {
	return Modes{AutoWrap: true}
}

// setANSIMode handles SM/RM.
func (v *VTerm) setANSIMode(mode int, on bool) {
	switch mode {
	case 4: // IRM
		v.modes.Insert = on
	case 20: // LNM
		v.modes.LineFeedNL = on
	default:
		debugLog.Printf("Parser: unhandled ANSI mode %d", mode)
	}
}

// setPrivateMode handles DECSET/DECRST.
func (v *VTerm) setPrivateMode(mode int, on bool) {
	switch mode {
	case 1:
		v.modes.AppCursorKeys = on
	case 3, 4, 8, 12, 1005:
		// Column switching, smooth scroll, autorepeat, blink and UTF-8 mouse are accepted and ignored.
	case 5: // DECSCNM
		if v.modes.ReverseVideo != on {
			v.modes.ReverseVideo = on
			v.MarkDirty()
		}
	case 6: // DECOM
		v.modes.Origin = on
		v.homeCursor()
	case 7:
		v.modes.AutoWrap = on
		if !on {
			v.pendingWrap = false
		}
	case 9:
		v.setMouseMode(MouseX10, on)
	case 25:
		if v.cursor.Visible != on {
			v.cursor.Visible = on
			v.MarkDirty()
		}
	case 47:
		v.switchScreen(on, false, false)
	case 1047:
		v.switchScreen(on, !on, false)
	case 1049:
		v.switchScreen(on, on, true)
	case 1000:
		v.setMouseMode(MouseNormal, on)
	case 1002:
		v.setMouseMode(MouseButtonMotion, on)
	case 1003:
		v.setMouseMode(MouseAnyMotion, on)
	case 1004:
		v.modes.FocusReporting = on
	case 1006:
		v.modes.MouseSGR = on
	case 1007:
		v.modes.AltScroll = on
	case 2004:
		v.modes.BracketedPaste = on
	case 2026:
		v.modes.SyncOutput = on
	default:
		debugLog.Printf("Parser: unhandled private mode %d", mode)
	}
}

func (v *VTerm) setMouseMode(m MouseMode, on bool) {
	if on {
		v.modes.Mouse = m
	} else if v.modes.Mouse == m {
		v.modes.Mouse = MouseOff
	}
}

// privateModeState answers DECRQM: 1 set, 2 reset, 0 unknown.
func (v *VTerm) privateModeState(mode int) int {
	flag := func(b bool) int {
		if b {
			return 1
		}
		return 2
	}
	m := v.modes
	switch mode {
	case 1:
		return flag(m.AppCursorKeys)
	case 5:
		return flag(m.ReverseVideo)
	case 6:
		return flag(m.Origin)
	case 7:
		return flag(m.AutoWrap)
	case 9:
		return flag(m.Mouse == MouseX10)
	case 25:
		return flag(v.cursor.Visible)
	case 47, 1047, 1049:
		return flag(v.AltScreen())
	case 1000:
		return flag(m.Mouse == MouseNormal)
	case 1002:
		return flag(m.Mouse == MouseButtonMotion)
	case 1003:
		return flag(m.Mouse == MouseAnyMotion)
	case 1004:
		return flag(m.FocusReporting)
	case 1006:
		return flag(m.MouseSGR)
	case 1007:
		return flag(m.AltScroll)
	case 2004:
		return flag(m.BracketedPaste)
	case 2026:
		return flag(m.SyncOutput)
	}
	return 0
}

// switchScreen activates or leaves the alternate grid. clear blanks the
// alternate grid (on entry when entering, before leaving otherwise) and
// saveCursor stores the cursor on entry and restores it on exit.
func (v *VTerm) switchScreen(alt, clear, saveCursor bool) {
	target := ScreenPrimary
	if alt {
		target = ScreenAlternate
	}
	if target == v.active {
		return
	}
	if alt && saveCursor {
		v.SaveCursor()
	}
	if !alt && clear {
		v.screens[ScreenAlternate].Fill(v.eraseCell())
	}
	v.active = target
	if alt && clear {
		v.screens[ScreenAlternate].Fill(v.eraseCell())
	}
	if !alt && saveCursor {
		v.RestoreCursor()
	}
	v.pendingWrap = false
	v.MarkDirty()
	if v.OnScreenSwitch != nil {
		v.OnScreenSwitch(v.active)
	}
}
