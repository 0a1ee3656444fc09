// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/vterm_reports.go
// Summary: Device status, attribute and mode reports written back to the PTY.
// Usage: Part of VTerm terminal emulator.

package parser

import "fmt"

// DeviceStatusReport answers DSR 5 (status) and 6 (cursor position).
func (v *VTerm) DeviceStatusReport(mode int) {
	switch mode {
	case 5:
		v.reply("\x1b[0n")
	case 6:
		row, col := v.reportedCursor()
		v.reply(fmt.Sprintf("\x1b[%d;%dR", row, col))
	}
}

// PrivateDeviceStatusReport answers CSI ? 6 n with DECXCPR.
func (v *VTerm) PrivateDeviceStatusReport(mode int) {
	if mode == 6 {
		row, col := v.reportedCursor()
		v.reply(fmt.Sprintf("\x1b[?%d;%dR", row, col))
	}
}

// reportedCursor is the 1-based cursor position, relative to the top
// margin in origin mode.
func (v *VTerm) reportedCursor() (row, col int) {
	row = v.cursor.Row
	if v.modes.Origin {
		row -= v.marginTop
	}
	return row + 1, v.cursor.Col + 1
}

// PrimaryDeviceAttributes reports a VT220 with ANSI color.
func (v *VTerm) PrimaryDeviceAttributes() { v.reply("\x1b[?62;22c") }

// SecondaryDeviceAttributes reports the terminal type and version.
func (v *VTerm) SecondaryDeviceAttributes() { v.reply("\x1b[>1;10;0c") }

// ReportPrivateMode answers DECRQM for a DEC private mode.
func (v *VTerm) ReportPrivateMode(mode int) {
	v.reply(fmt.Sprintf("\x1b[?%d;%d$y", mode, v.privateModeState(mode)))
}

// ReportANSIMode answers DECRQM for an ANSI mode.
func (v *VTerm) ReportANSIMode(mode int) {
	state := 0
	switch mode {
	case 4:
		state = boolState(v.modes.Insert)
	case 20:
		state = boolState(v.modes.LineFeedNL)
	}
	v.reply(fmt.Sprintf("\x1b[%d;%d$y", mode, state))
}

func boolState(b bool) int {
	if b {
		return 1
	}
	return 2
}

// SoftReset implements DECSTR.
func (v *VTerm) SoftReset() {
	v.modes.Insert = false
	v.modes.Origin = false
	v.modes.AutoWrap = true
	v.modes.AppCursorKeys = false
	v.modes.AppKeypad = false
	v.cursor.Visible = true
	v.marginTop, v.marginBottom = 0, v.rows-1
	v.pen = Pen{FG: DefaultFG, BG: DefaultBG}
	v.charsets = [2]charset{charsetASCII, charsetASCII}
	v.gl = 0
	v.saved[v.active] = savedCursor{}
	v.pendingWrap = false
	v.MarkDirty()
}
