// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/vterm_cursor.go
// Summary: Cursor movement, tab stops, save/restore.
// Usage: Part of VTerm terminal emulator.

package parser

// SetCursorPos moves to an absolute position. In origin mode row is relative
// to the top margin and confined to the scroll region.
func (v *VTerm) SetCursorPos(row, col int) {
	if v.modes.Origin {
		row = clamp(row+v.marginTop, v.marginTop, v.marginBottom)
	} else {
		row = clamp(row, 0, v.rows-1)
	}
	v.cursor.Row = row
	v.cursor.Col = clamp(col, 0, v.cols-1)
	v.pendingWrap = false
	v.MarkDirty()
}

func (v *VTerm) homeCursor() { v.SetCursorPos(0, 0) }

// SetCursorRow moves vertically to an absolute row (VPA).
func (v *VTerm) SetCursorRow(row int) { v.SetCursorPos(row, v.cursor.Col) }

// SetCursorCol moves horizontally to an absolute column (CHA, HPA).
func (v *VTerm) SetCursorCol(col int) {
	v.cursor.Col = clamp(col, 0, v.cols-1)
	v.pendingWrap = false
	v.MarkDirty()
}

// MoveCursorUp stops at the top margin when starting inside the region.
func (v *VTerm) MoveCursorUp(n int) {
	top := 0
	if v.cursor.Row >= v.marginTop {
		top = v.marginTop
	}
	v.cursor.Row = max(v.cursor.Row-n, top)
	v.pendingWrap = false
	v.MarkDirty()
}

// MoveCursorDown stops at the bottom margin when starting inside the region.
func (v *VTerm) MoveCursorDown(n int) {
	bottom := v.rows - 1
	if v.cursor.Row <= v.marginBottom {
		bottom = v.marginBottom
	}
	v.cursor.Row = min(v.cursor.Row+n, bottom)
	v.pendingWrap = false
	v.MarkDirty()
}

// MoveCursorForward moves right, stopping at the last column.
func (v *VTerm) MoveCursorForward(n int) { v.SetCursorCol(v.cursor.Col + n) }

// MoveCursorBackward moves left, stopping at column 0.
func (v *VTerm) MoveCursorBackward(n int) { v.SetCursorCol(v.cursor.Col - n) }

// CarriageReturn moves to column 0.
func (v *VTerm) CarriageReturn() { v.SetCursorCol(0) }

// Backspace moves one column left.
func (v *VTerm) Backspace() { v.MoveCursorBackward(1) }

// SaveCursor implements DECSC for the active screen.
func (v *VTerm) SaveCursor() {
	v.saved[v.active] = savedCursor{
		row:         v.cursor.Row,
		col:         v.cursor.Col,
		pen:         v.pen,
		originMode:  v.modes.Origin,
		autoWrap:    v.modes.AutoWrap,
		pendingWrap: v.pendingWrap,
		charsets:    v.charsets,
		gl:          v.gl,
		valid:       true,
	}
}

// RestoreCursor implements DECRC. Without a prior save the cursor homes and
// the pen resets.
func (v *VTerm) RestoreCursor() {
	s := v.saved[v.active]
	if !s.valid {
		v.pen = Pen{FG: DefaultFG, BG: DefaultBG}
		v.modes.Origin = false
		v.charsets = [2]charset{charsetASCII, charsetASCII}
		v.gl = 0
		v.homeCursor()
		return
	}
	v.pen = s.pen
	v.modes.Origin = s.originMode
	v.modes.AutoWrap = s.autoWrap
	v.charsets = s.charsets
	v.gl = s.gl
	v.cursor.Row = clamp(s.row, 0, v.rows-1)
	v.cursor.Col = clamp(s.col, 0, v.cols-1)
	v.pendingWrap = s.pendingWrap && v.modes.AutoWrap && v.cursor.Col == v.cols-1
	v.MarkDirty()
}

// resetTabStops sets a stop every 8 columns from column from onward.
func (v *VTerm) resetTabStops(from int) {
	stops := make([]bool, v.cols)
	copy(stops, v.tabStops)
	for i := max(from, 0); i < v.cols; i++ {
		stops[i] = i%8 == 0 && i > 0
	}
	v.tabStops = stops
}

// Tab advances to the next n-th tab stop or the last column.
func (v *VTerm) Tab(n int) {
	col := v.cursor.Col
	for ; n > 0 && col < v.cols-1; n-- {
		col++
		for col < v.cols-1 && !v.tabStops[col] {
			col++
		}
	}
	v.SetCursorCol(col)
}

// BackTab moves to the previous n-th tab stop or column 0.
func (v *VTerm) BackTab(n int) {
	col := v.cursor.Col
	for ; n > 0 && col > 0; n-- {
		col--
		for col > 0 && !v.tabStops[col] {
			col--
		}
	}
	v.SetCursorCol(col)
}

// SetTabStop implements HTS.
func (v *VTerm) SetTabStop() { v.tabStops[v.cursor.Col] = true }

// ClearTabStops implements TBC: mode 0 clears the stop at the cursor, 3 all.
func (v *VTerm) ClearTabStops(mode int) {
	switch mode {
	case 0:
		v.tabStops[v.cursor.Col] = false
	case 3:
		for i := range v.tabStops {
			v.tabStops[i] = false
		}
	}
}

// SetCursorStyle records DECSCUSR.
func (v *VTerm) SetCursorStyle(style int) {
	if style >= 0 && style <= 6 && v.cursor.Style != style {
		v.cursor.Style = style
		v.MarkDirty()
	}
}
