// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/vterm_erase.go
// Summary: Erase in display/line and erase characters.
// Usage: Part of VTerm terminal emulator.

package parser

// EraseInDisplay implements ED. Mode 0 erases to the end of the screen, 1 to
// the start, 2 the whole screen (and homes the cursor), 3 the scrollback.
func (v *VTerm) EraseInDisplay(mode int) {
	g := v.Grid()
	blank := v.eraseCell()
	row, col := v.cursor.Row, v.cursor.Col
	switch mode {
	case 0:
		g.ClearRange(row, col, v.cols, blank)
		g.Line(row).Wrapped = false
		g.ClearRows(row+1, v.rows, blank)
	case 1:
		g.ClearRows(0, row, blank)
		g.ClearRange(row, 0, col+1, blank)
	case 2:
		g.ClearRows(0, v.rows, blank)
		v.homeCursor()
	case 3:
		g.History().Clear()
	default:
		return
	}
	v.pendingWrap = false
	v.MarkDirty()
}

// EraseInLine implements EL. Mode 0 erases to the end of the line, 1 to the
// start, 2 the whole line.
func (v *VTerm) EraseInLine(mode int) {
	g := v.Grid()
	blank := v.eraseCell()
	row, col := v.cursor.Row, v.cursor.Col
	switch mode {
	case 0:
		g.ClearRange(row, col, v.cols, blank)
		g.Line(row).Wrapped = false
	case 1:
		g.ClearRange(row, 0, col+1, blank)
	case 2:
		g.ClearRange(row, 0, v.cols, blank)
		g.Line(row).Wrapped = false
	default:
		return
	}
	v.pendingWrap = false
	v.MarkDirty()
}

// EraseCharacters implements ECH: blanks n cells from the cursor without
// moving it.
func (v *VTerm) EraseCharacters(n int) {
	v.Grid().ClearRange(v.cursor.Row, v.cursor.Col, v.cursor.Col+n, v.eraseCell())
	v.pendingWrap = false
	v.MarkDirty()
}

// AlignmentTest implements DECALN.
func (v *VTerm) AlignmentTest() {
	v.Grid().Fill(Cell{Rune: 'E'})
	v.marginTop, v.marginBottom = 0, v.rows-1
	v.homeCursor()
}
